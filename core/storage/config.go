package storage

import "time"

// Config holds the object storage connection for uploaded playlists.
// An empty Endpoint disables uploads and s3:// locators.
type Config struct {
	Endpoint  string `mapstructure:"endpoint" default:"localhost:9000"`
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	UseSSL    bool   `mapstructure:"use_ssl" default:"false"`
	// Bucket receives playlists uploaded through the API.
	Bucket string `mapstructure:"bucket" default:"playlists"`
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds bounds dialing and response headers.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Timeout returns TimeoutSeconds as a duration, 30s when unset.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
