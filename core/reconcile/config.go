package reconcile

import "time"

// Config holds settings for reloads and the adapters they drive.
type Config struct {
	// HTTPTimeoutSeconds bounds every backend request.
	HTTPTimeoutSeconds int `mapstructure:"http_timeout_seconds" default:"30"`
	// RatePerSecond caps backend requests per adapter.
	RatePerSecond int `mapstructure:"rate_per_second" default:"10"`
	// PlaylistCacheTTLSeconds keeps parsed playlists and feeds for the length of a reload.
	PlaylistCacheTTLSeconds int `mapstructure:"playlist_cache_ttl_seconds" default:"60"`
	// LockTTLSeconds expires a distributed reload lock left behind by a dead process.
	LockTTLSeconds int `mapstructure:"lock_ttl_seconds" default:"900"`
	// RedisURL enables the distributed reload lock when set.
	RedisURL string `mapstructure:"redis_url" default:""`
	// Workers is the size of the reload-all worker pool.
	Workers int `mapstructure:"workers" default:"4"`
	// UserAgent is sent to every backend.
	UserAgent string `mapstructure:"user_agent" default:"Mozilla/5.0 (QtEmbedded; U; Linux; C) AppleWebKit/533.3 (KHTML, like Gecko) MAG200 stbapp ver: 2 rev: 250 Safari/533.3"`
}

// HTTPTimeout returns HTTPTimeoutSeconds as a duration.
func (c Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// PlaylistCacheTTL returns PlaylistCacheTTLSeconds as a duration.
func (c Config) PlaylistCacheTTL() time.Duration {
	return time.Duration(c.PlaylistCacheTTLSeconds) * time.Second
}

// LockTTL returns LockTTLSeconds as a duration.
func (c Config) LockTTL() time.Duration {
	return time.Duration(c.LockTTLSeconds) * time.Second
}
