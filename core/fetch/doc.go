// Package fetch is the HTTP client shared by the backend adapters.
//
// Every request goes through a token-bucket limiter and carries set-top box
// headers. Non-2xx responses become *StatusError.
package fetch
