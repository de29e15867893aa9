// Package config provides configuration management for catalog-sync.
//
// Values come from environment variables, optionally seeded from a .env file,
// and fall back to the `default` tags of each sub-configuration.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, fiber prefork workers
//   - Database: catalog database driver (mysql, sqlite, postgres) and credentials
//   - Storage: S3/MinIO settings for uploaded playlists
//   - Log: logging level and format
//   - Sync: backend timeouts, request rate, playlist cache and reload locking
//
// Nested keys map to environment variables by replacing dots with underscores,
// so sync.rate_per_second is read from SYNC_RATE_PER_SECOND.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
