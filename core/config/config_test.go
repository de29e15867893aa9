package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 30, cfg.Sync.HTTPTimeoutSeconds)
	assert.Equal(t, 10, cfg.Sync.RatePerSecond)
	assert.Equal(t, 4, cfg.Sync.Workers)
	assert.Empty(t, cfg.Sync.RedisURL)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SYNC_RATE_PER_SECOND", "3")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Sync.RatePerSecond)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "9090", cfg.Server.Port)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SYNC_REDIS_URL=redis://cache:6379/2\nLOG_FORMAT=console\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("SYNC_REDIS_URL")
		os.Unsetenv("LOG_FORMAT")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "redis://cache:6379/2", cfg.Sync.RedisURL)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "sync:\n  workers: 8\n  rate_per_second: 2\nstorage:\n  bucket: uploads\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName+".yaml"), []byte(yaml), 0o600))
	t.Setenv("SYNC_RATE_PER_SECOND", "5")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Sync.Workers)
	assert.Equal(t, 5, cfg.Sync.RatePerSecond, "environment wins over the file")
	assert.Equal(t, "uploads", cfg.Storage.Bucket)
}

func TestLoadConfig_BrokenYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName+".yaml"), []byte("sync: [\n"), 0o600))

	_, err := LoadConfig(dir)
	assert.ErrorContains(t, err, "failed to read catalog-sync.yaml")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults"},
		{name: "driver", mutate: func(c *Config) { c.Database.Driver = "oracle" }, wantErr: "unsupported database driver"},
		{name: "port", mutate: func(c *Config) { c.Server.Port = " " }, wantErr: "server.port"},
		{name: "rate", mutate: func(c *Config) { c.Sync.RatePerSecond = -1 }, wantErr: "rate_per_second"},
		{name: "workers", mutate: func(c *Config) { c.Sync.Workers = 0 }, wantErr: "sync.workers"},
		{name: "bucket", mutate: func(c *Config) { c.Storage.Bucket = "" }, wantErr: "storage.bucket"},
		{name: "no storage", mutate: func(c *Config) { c.Storage.Endpoint = ""; c.Storage.Bucket = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			if tt.mutate != nil {
				tt.mutate(cfg)
			}
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
