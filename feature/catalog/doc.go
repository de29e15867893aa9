// Package catalog persists accounts and their cached catalogs and exposes
// reloads over HTTP.
//
// Store implements reconcile.Store on top of gorm. Service wraps the reload
// engine: reloads of one account are coalesced, reload-all runs on a bounded
// ants pool, and each finished reload is recorded in Prometheus.
//
// Locking comes in two flavours. LocalLocker serializes reloads inside one
// process. RedisLocker adds a SET NX lock so instances sharing a database
// never reload the same account at the same time.
//
// # HTTP Endpoints
//
//   - POST /reload : Reloads every account.
//   - GET, POST /accounts : Lists or saves accounts.
//   - GET, DELETE /accounts/:id : Reads or removes one account.
//   - POST /accounts/:id/reload : Reloads one account and returns its progress lines.
//   - PUT /accounts/:id/pause : Pauses or resumes caching.
//   - POST /accounts/:id/verify-mac : Checks a MAC address against a portal.
//   - POST /accounts/:id/playlist : Uploads a playlist to object storage.
//   - GET /accounts/:id/categories?mode= : Lists saved itv, vod or series categories.
//   - GET /accounts/:id/channels?category= : Lists saved channels.
//   - GET /accounts/:id/channels/count : Counts saved channels.
package catalog
