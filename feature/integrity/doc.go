// Package integrity provides health checks over the catalog cache and the
// infrastructure it depends on.
//
// # Checks Provided
//
//   - Schema: Validates that every catalog table has the columns declared by the gorm models.
//   - Bucket: Checks that the playlist bucket exists in object storage.
//   - Playlists: Stats the object behind every account whose playlist was uploaded to the bucket.
//   - Catalog: Finds accounts with no saved categories and channel rows whose category row is gone.
//     Such rows are what a reload interrupted after its clear leaves behind.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/schema : Runs the schema check.
//   - GET /integrity/bucket : Runs the bucket check (supports ?fix=true).
//   - GET /integrity/playlists : Runs the playlist check.
//   - GET /integrity/catalog : Runs the catalog check (supports ?fix=true).
package integrity
