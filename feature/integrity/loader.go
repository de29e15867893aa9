package integrity

import (
	"catalog-sync/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature wires the integrity checks into the server.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the integrity feature. client may be nil when object
// storage is not configured.
func NewFeature(client storage.Client, bucket, region string, db *gorm.DB, logger *zap.Logger) *Feature {
	service := NewService(client, bucket, region, db, logger)
	return &Feature{
		service: service,
		handler: NewHandler(service),
	}
}

// Name returns the feature name.
func (f *Feature) Name() string {
	return "integrity"
}

// IsEnabled reports whether the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the integrity routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service exposes the integrity service to the CLI.
func (f *Feature) Service() *Service {
	return f.service
}
