package logger

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the service logger. The debug level switches to zap's
// development preset, every other level to the production one.
func New(cfg *Config) (*zap.Logger, error) {
	zc, err := buildConfig(cfg)
	if err != nil {
		return nil, err
	}
	return zc.Build()
}

func buildConfig(cfg *Config) (zap.Config, error) {
	var zc zap.Config
	switch cfg.Level {
	case "debug":
		zc = zap.NewDevelopmentConfig()
	case "":
		zc = zap.NewProductionConfig()
	default:
		level, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return zc, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		zc = zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(level)
	}

	switch cfg.Format {
	case "console":
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zc.DisableStacktrace = true
	case "", "json":
		zc.Encoding = "json"
	default:
		return zc, fmt.Errorf("invalid log format %q", cfg.Format)
	}

	zc.EncoderConfig.LevelKey = "level"
	zc.EncoderConfig.TimeKey = "time"
	zc.EncoderConfig.MessageKey = "message"
	return zc, nil
}

// WithRayID adds the request's ray_id to l.
func WithRayID(l *zap.Logger, c *fiber.Ctx) *zap.Logger {
	if rid, ok := c.Locals("ray_id").(string); ok && rid != "" {
		return l.With(zap.String("ray_id", rid))
	}
	return l
}

// WithAccount returns a logger scoped to one account.
func WithAccount(l *zap.Logger, id, name string) *zap.Logger {
	return l.With(zap.String("account_id", id), zap.String("account", name))
}

// Progress turns l into a progress sink that logs every line at Info.
func Progress(l *zap.Logger) func(message string) {
	return func(message string) {
		l.Info(message)
	}
}
