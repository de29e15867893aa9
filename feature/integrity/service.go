package integrity

import (
	"context"
	"errors"

	"catalog-sync/core/storage"
	"catalog-sync/feature/catalog/models"
	"catalog-sync/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNoStorage is returned by storage checks when object storage is not configured.
var ErrNoStorage = errors.New("object storage is not configured")

// Service handles integrity checks.
type Service struct {
	client storage.Client
	bucket string
	region string
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new integrity service. client may be nil.
func NewService(client storage.Client, bucket, region string, db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		region: region,
		db:     db,
		logger: logger,
	}
}

// CheckSchema compares the catalog tables with the models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, models.All())
}

// CheckBucket reports whether the playlist bucket exists.
func (s *Service) CheckBucket(ctx context.Context) (*checks.BucketReport, error) {
	if s.client == nil {
		return nil, ErrNoStorage
	}
	return checks.CheckBucket(ctx, s.client, s.bucket)
}

// FixBucket creates the playlist bucket.
func (s *Service) FixBucket(ctx context.Context) error {
	if s.client == nil {
		return ErrNoStorage
	}
	return checks.FixBucket(ctx, s.client, s.bucket, s.region, s.logger)
}

// CheckPlaylists returns the accounts whose uploaded playlist is missing.
func (s *Service) CheckPlaylists(ctx context.Context) ([]checks.MissingPlaylist, error) {
	if s.client == nil {
		return nil, ErrNoStorage
	}
	if s.db == nil {
		return nil, errors.New("database connection is nil")
	}
	var accounts []models.Account
	if err := s.db.WithContext(ctx).Order("id").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return checks.CheckPlaylists(ctx, s.client, accounts)
}

// CheckCatalog looks for empty accounts and dangling channel rows.
func (s *Service) CheckCatalog(ctx context.Context) (*checks.CatalogReport, error) {
	return checks.CheckCatalog(ctx, s.db)
}

// FixCatalog removes dangling channel rows.
func (s *Service) FixCatalog(ctx context.Context) (int64, error) {
	return checks.FixCatalog(ctx, s.db, s.logger)
}
