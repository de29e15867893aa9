package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"catalog-sync/core/database"
	"catalog-sync/core/logger"
	"catalog-sync/core/reconcile"
	"catalog-sync/core/server"
	"catalog-sync/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileName is the optional YAML config file looked up next to .env.
const FileName = "catalog-sync"

// Config is the complete service configuration.
type Config struct {
	Server   server.Config    `mapstructure:"server"`
	Storage  storage.Config   `mapstructure:"storage"`
	Log      logger.Config    `mapstructure:"log"`
	Database database.Config  `mapstructure:"database"`
	Sync     reconcile.Config `mapstructure:"sync"`
}

// LoadConfig reads configuration from dir. Sources in increasing precedence:
// struct defaults, dir/catalog-sync.yaml, dir/.env and the process environment.
func LoadConfig(dir string) (*Config, error) {
	// A missing .env is normal outside development
	_ = godotenv.Overload(filepath.Join(dir, ".env"))

	v := viper.New()
	registerKeys(v, reflect.TypeOf(Config{}), "")

	// Explicit path: viper's name lookup would also match the binary itself
	file := filepath.Join(dir, FileName+".yaml")
	if _, err := os.Stat(file); err == nil {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read %s.yaml: %w", FileName, err)
		}
	}

	// SYNC_REDIS_URL -> sync.redis_url
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case database.DriverMySQL, database.DriverSQLite, database.DriverPostgres:
	default:
		return fmt.Errorf("invalid config: unsupported database driver %q", c.Database.Driver)
	}
	if strings.TrimSpace(c.Server.Port) == "" {
		return errors.New("invalid config: server.port is empty")
	}
	if c.Sync.RatePerSecond < 0 {
		return errors.New("invalid config: sync.rate_per_second must not be negative")
	}
	if c.Sync.Workers < 1 {
		return errors.New("invalid config: sync.workers must be at least 1")
	}
	if c.Storage.Endpoint != "" && c.Storage.Bucket == "" {
		return errors.New("invalid config: storage.bucket is required with an endpoint")
	}
	return nil
}

// registerKeys walks the mapstructure tags of t and registers every leaf key
// with its default tag. AutomaticEnv only resolves keys viper already knows.
func registerKeys(v *viper.Viper, t reflect.Type, prefix string) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := field.Tag.Get("mapstructure")
		if name == "" {
			continue
		}
		if prefix != "" {
			name = prefix + "." + name
		}
		if field.Type.Kind() == reflect.Struct {
			registerKeys(v, field.Type, name)
			continue
		}
		v.SetDefault(name, field.Tag.Get("default"))
	}
}
