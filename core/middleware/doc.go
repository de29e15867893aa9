// Package middleware contains HTTP middleware for the Fiber application.
//
//   - auth: API key validation (X-API-Key header or api_key query).
//   - rayid: assigns every request a RayID, stored in locals under "ray_id"
//     and echoed in the X-Ray-ID response header.
package middleware
