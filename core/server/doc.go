// Package server holds the HTTP server configuration.
//
// The start command reads Address, BodyLimit and ReadTimeout when building the
// fiber app, and the auth middleware is only installed when AuthEnabled.
package server
