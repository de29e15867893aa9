package checks

import (
	"context"
	"fmt"

	"catalog-sync/feature/catalog/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CatalogReport lists cache rows a reload interrupted after its clear can leave behind.
type CatalogReport struct {
	// EmptyAccounts have no saved live categories.
	EmptyAccounts []string `json:"empty_accounts"`
	// DanglingChannels reference a category row that no longer exists.
	DanglingChannels int64 `json:"dangling_channels"`
}

func danglingChannels(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Channel{}).
		Where("category_db_id NOT IN (?)", db.Model(&models.Category{}).Select("id"))
}

// CheckCatalog looks for accounts without categories and for orphaned channel rows.
func CheckCatalog(ctx context.Context, db *gorm.DB) (*CatalogReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	db = db.WithContext(ctx)

	report := &CatalogReport{EmptyAccounts: []string{}}
	err := db.Model(&models.Account{}).
		Where("id NOT IN (?)", db.Model(&models.Category{}).Select("account_id")).
		Order("id").
		Pluck("id", &report.EmptyAccounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find empty accounts: %w", err)
	}

	if err := danglingChannels(db).Count(&report.DanglingChannels).Error; err != nil {
		return nil, fmt.Errorf("failed to count dangling channels: %w", err)
	}
	return report, nil
}

// FixCatalog deletes channel rows whose category is gone.
func FixCatalog(ctx context.Context, db *gorm.DB, logger *zap.Logger) (int64, error) {
	if db == nil {
		return 0, fmt.Errorf("database connection is nil")
	}
	db = db.WithContext(ctx)

	result := db.Where("category_db_id NOT IN (?)", db.Model(&models.Category{}).Select("id")).
		Delete(&models.Channel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete dangling channels: %w", result.Error)
	}
	logger.Info("Removed dangling channels", zap.Int64("count", result.RowsAffected))
	return result.RowsAffected, nil
}
