package catalog

import (
	"context"
	"errors"
	"fmt"

	"catalog-sync/core/reconcile"
	"catalog-sync/feature/catalog/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrAccountNotFound is returned when an account id is unknown.
var ErrAccountNotFound = errors.New("account not found")

const batchSize = 500

// Store persists accounts and their catalogs with gorm.
// It implements reconcile.Store.
type Store struct {
	db *gorm.DB
}

// NewStore creates a catalog store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the catalog tables.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate catalog schema: %w", err)
	}
	return nil
}

// ClearAll removes the live categories and channels of an account.
func (s *Store) ClearAll(ctx context.Context, account *reconcile.Account) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", account.ID).Delete(&models.Channel{}).Error; err != nil {
			return err
		}
		return tx.Where("account_id = ?", account.ID).Delete(&models.Category{}).Error
	})
}

// ReplaceCategories replaces the live categories of an account.
func (s *Store) ReplaceCategories(ctx context.Context, account *reconcile.Account, categories []reconcile.Category) error {
	rows := make([]models.Category, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, models.NewCategory(account.ID, c))
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", account.ID).Delete(&models.Category{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(&rows, batchSize).Error
	})
}

// ReadCategories returns the saved live categories in insertion order.
func (s *Store) ReadCategories(ctx context.Context, account *reconcile.Account) ([]reconcile.Category, error) {
	rows, err := s.Categories(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	categories := make([]reconcile.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, row.ToDomain())
	}
	return categories, nil
}

// ReplaceChannelsForCategory replaces the channels saved under a category row.
func (s *Store) ReplaceChannelsForCategory(ctx context.Context, categoryDBID uint, account *reconcile.Account, channels []reconcile.Channel) error {
	rows := make([]models.Channel, 0, len(channels))
	for _, c := range channels {
		rows = append(rows, models.NewChannel(account.ID, categoryDBID, c))
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ? AND category_db_id = ?", account.ID, categoryDBID).Delete(&models.Channel{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(&rows, batchSize).Error
	})
}

// ReplaceModeCategories replaces the vod or series categories of an account.
func (s *Store) ReplaceModeCategories(ctx context.Context, account *reconcile.Account, action reconcile.Action, categories []reconcile.Category) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		switch action {
		case reconcile.ActionVOD:
			rows := make([]models.VodCategory, 0, len(categories))
			for _, c := range categories {
				rows = append(rows, models.VodCategory{ModeCategory: models.NewModeCategory(account.ID, c)})
			}
			return replaceRows(tx, account.ID, &models.VodCategory{}, rows)
		case reconcile.ActionSeries:
			rows := make([]models.SeriesCategory, 0, len(categories))
			for _, c := range categories {
				rows = append(rows, models.SeriesCategory{ModeCategory: models.NewModeCategory(account.ID, c)})
			}
			return replaceRows(tx, account.ID, &models.SeriesCategory{}, rows)
		default:
			return fmt.Errorf("no category table for mode %q", action)
		}
	})
}

func replaceRows[T any](tx *gorm.DB, accountID string, model any, rows []T) error {
	if err := tx.Where("account_id = ?", accountID).Delete(model).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.CreateInBatches(&rows, batchSize).Error
}

// Categories returns the live category rows of an account.
func (s *Store) Categories(ctx context.Context, accountID string) ([]models.Category, error) {
	var rows []models.Category
	if err := s.db.WithContext(ctx).Where("account_id = ?", accountID).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ModeCategories returns the vod or series category rows of an account.
func (s *Store) ModeCategories(ctx context.Context, accountID string, action reconcile.Action) ([]models.ModeCategory, error) {
	var model any
	switch action {
	case reconcile.ActionVOD:
		model = &models.VodCategory{}
	case reconcile.ActionSeries:
		model = &models.SeriesCategory{}
	default:
		return nil, fmt.Errorf("no category table for mode %q", action)
	}

	var rows []models.ModeCategory
	err := s.db.WithContext(ctx).Model(model).Where("account_id = ?", accountID).Order("id").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Channels returns the channel rows of a category. A zero categoryDBID
// returns every channel of the account.
func (s *Store) Channels(ctx context.Context, accountID string, categoryDBID uint) ([]models.Channel, error) {
	query := s.db.WithContext(ctx).Where("account_id = ?", accountID)
	if categoryDBID != 0 {
		query = query.Where("category_db_id = ?", categoryDBID)
	}
	var rows []models.Channel
	if err := query.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ChannelCount returns how many channels are saved for an account.
func (s *Store) ChannelCount(ctx context.Context, accountID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Channel{}).Where("account_id = ?", accountID).Count(&count).Error
	return count, err
}

// SaveAccount inserts or updates an account by id.
func (s *Store) SaveAccount(ctx context.Context, account *models.Account) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "kind", "action", "url", "mac", "username", "password", "playlist_path", "pause_caching", "updated_at"}),
	}).Create(account).Error
	if err != nil {
		return fmt.Errorf("failed to save account %s: %w", account.ID, err)
	}
	return nil
}

// GetAccount returns one account.
func (s *Store) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	var account models.Account
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%s: %w", id, ErrAccountNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// ListAccounts returns every account ordered by name.
func (s *Store) ListAccounts(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	if err := s.db.WithContext(ctx).Order("name").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// SetPause toggles caching for an account.
func (s *Store) SetPause(ctx context.Context, id string, paused bool) error {
	result := s.db.WithContext(ctx).Model(&models.Account{}).Where("id = ?", id).Update("pause_caching", paused)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s: %w", id, ErrAccountNotFound)
	}
	return nil
}

// DeleteAccount removes an account together with its catalog.
func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&models.Channel{}, &models.Category{}, &models.VodCategory{}, &models.SeriesCategory{}} {
			if err := tx.Where("account_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		result := tx.Where("id = ?", id).Delete(&models.Account{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%s: %w", id, ErrAccountNotFound)
		}
		return nil
	})
}
