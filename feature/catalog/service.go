package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	"catalog-sync/core/reconcile"
	"catalog-sync/core/storage"
	"catalog-sync/feature/catalog/models"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrInvalidAccount is returned when an account fails validation.
	ErrInvalidAccount = errors.New("invalid account")
	// ErrNotPortal is returned when a portal-only operation targets another kind.
	ErrNotPortal = errors.New("account is not a stalker portal")
	// ErrNoStorage is returned by uploads when object storage is not configured.
	ErrNoStorage = errors.New("object storage is not configured")
)

// Service coordinates account management and catalog reloads.
type Service struct {
	store   *Store
	engine  *reconcile.Engine
	portal  reconcile.PortalAdapter
	cached  Forgetter
	client  storage.Client
	bucket  string
	region  string
	workers int
	logger  *zap.Logger
	group   singleflight.Group
}

// Forgetter drops whatever an adapter cached for an account.
type Forgetter interface {
	Forget(account *reconcile.Account)
}

// Forgetters fans Forget out to several caches.
type Forgetters []Forgetter

// Forget implements Forgetter.
func (fs Forgetters) Forget(account *reconcile.Account) {
	for _, f := range fs {
		if f != nil {
			f.Forget(account)
		}
	}
}

// ServiceConfig collects what the service needs besides the store and engine.
type ServiceConfig struct {
	Portal  reconcile.PortalAdapter
	Cached  Forgetter
	Storage storage.Client
	Bucket  string
	Region  string
	Workers int
}

// NewService creates a catalog service.
func NewService(store *Store, engine *reconcile.Engine, cfg ServiceConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	return &Service{
		store:   store,
		engine:  engine,
		portal:  cfg.Portal,
		cached:  cfg.Cached,
		client:  cfg.Storage,
		bucket:  cfg.Bucket,
		region:  cfg.Region,
		workers: workers,
		logger:  logger,
	}
}

// Reload refreshes one account. Concurrent reloads of the same account share
// one run, and only the first caller's progress sink sees its lines.
func (s *Service) Reload(ctx context.Context, accountID string, progress reconcile.Progress) (*reconcile.Result, error) {
	row, err := s.store.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	v, err, shared := s.group.Do(accountID, func() (any, error) {
		result, err := s.engine.Reload(ctx, row.ToDomain(), progress)
		observe(result)
		return result, err
	})
	if shared {
		s.logger.Debug("Joined running reload", zap.String("account", accountID))
	}
	result, _ := v.(*reconcile.Result)
	return result, err
}

// ReloadAll refreshes every account on a bounded worker pool. Paused accounts
// are reported as skipped. Per-account failures are in the results, the error
// is only set when the run could not start.
func (s *Service) ReloadAll(ctx context.Context, progress reconcile.Progress) ([]*reconcile.Result, error) {
	accounts, err := s.store.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	pool, err := ants.NewPool(s.workers, ants.WithPreAlloc(true))
	if err != nil {
		return nil, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	results := make([]*reconcile.Result, len(accounts))
	var wg sync.WaitGroup
	for i, account := range accounts {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			result, err := s.Reload(ctx, account.ID, progress)
			if result == nil {
				result = &reconcile.Result{AccountID: account.ID, AccountName: account.Name, Kind: reconcile.Kind(account.Kind), Err: err}
				if err != nil {
					result.Error = err.Error()
				}
			}
			results[i] = result
		}
		if err := pool.Submit(task); err != nil {
			wg.Done()
			results[i] = &reconcile.Result{AccountID: account.ID, AccountName: account.Name, Kind: reconcile.Kind(account.Kind), Err: err, Error: err.Error()}
		}
	}
	wg.Wait()

	s.logger.Info("Reload of all accounts finished", zap.Int("accounts", len(accounts)))
	return results, nil
}

// VerifyMAC reports whether the portal of an account accepts mac.
func (s *Service) VerifyMAC(ctx context.Context, accountID, mac string) (bool, error) {
	row, err := s.store.GetAccount(ctx, accountID)
	if err != nil {
		return false, err
	}
	if reconcile.Kind(row.Kind) != reconcile.KindStalkerPortal || s.portal == nil {
		return false, ErrNotPortal
	}
	return reconcile.VerifyMAC(ctx, s.portal, row.ToDomain(), strings.TrimSpace(mac)), nil
}

// UploadPlaylist stores a playlist in object storage and points the account at it.
func (s *Service) UploadPlaylist(ctx context.Context, accountID, filename string, body io.Reader, size int64) (string, error) {
	if s.client == nil {
		return "", ErrNoStorage
	}
	row, err := s.store.GetAccount(ctx, accountID)
	if err != nil {
		return "", err
	}

	if err := storage.EnsureBucket(ctx, s.client, s.bucket, s.region); err != nil {
		return "", err
	}

	object := path.Join(accountID, path.Base(filename))
	_, err = s.client.PutObject(ctx, s.bucket, object, body, size, minio.PutObjectOptions{ContentType: storage.PlaylistContentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload playlist: %w", err)
	}

	s.forget(row)
	previous := row.PlaylistPath
	row.PlaylistPath = storage.Locator(s.bucket, object)
	if err := s.store.SaveAccount(ctx, row); err != nil {
		return "", err
	}
	s.forget(row)
	if storage.IsLocator(previous) && previous != row.PlaylistPath {
		s.removeUpload(ctx, accountID, previous)
	}
	s.logger.Info("Playlist uploaded",
		zap.String("account", accountID),
		zap.String("locator", row.PlaylistPath))
	return row.PlaylistPath, nil
}

// SaveAccount validates and stores an account. A missing id is generated.
// Cached sources of both the previous and the new settings are dropped.
func (s *Service) SaveAccount(ctx context.Context, account *models.Account) error {
	if err := validate(account); err != nil {
		return err
	}
	if previous, err := s.store.GetAccount(ctx, account.ID); err == nil {
		s.forget(previous)
	}
	if err := s.store.SaveAccount(ctx, account); err != nil {
		return err
	}
	s.forget(account)
	return nil
}

// GetAccount returns one account.
func (s *Service) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	return s.store.GetAccount(ctx, id)
}

// ListAccounts returns every account.
func (s *Service) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return s.store.ListAccounts(ctx)
}

// DeleteAccount removes an account and its catalog.
func (s *Service) DeleteAccount(ctx context.Context, id string) error {
	row, err := s.store.GetAccount(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteAccount(ctx, id); err != nil {
		return err
	}
	s.forget(row)
	s.engine.Tracker().Forget(id)
	FetchedChannels.DeleteLabelValues(id)
	if storage.IsLocator(row.PlaylistPath) {
		s.removeUpload(ctx, id, row.PlaylistPath)
	}
	return nil
}

// removeUpload deletes an uploaded playlist nothing points at anymore.
// Failures only leave garbage behind and are logged.
func (s *Service) removeUpload(ctx context.Context, accountID, locator string) {
	if s.client == nil {
		return
	}
	if err := storage.Remove(ctx, s.client, locator); err != nil {
		s.logger.Warn("Failed to remove uploaded playlist",
			zap.String("account", accountID),
			zap.String("locator", locator),
			zap.Error(err))
	}
}

// SetPause toggles caching for an account.
func (s *Service) SetPause(ctx context.Context, id string, paused bool) error {
	return s.store.SetPause(ctx, id, paused)
}

// Categories returns the categories of an account for a mode.
func (s *Service) Categories(ctx context.Context, accountID string, action reconcile.Action) ([]reconcile.Category, error) {
	if _, err := s.store.GetAccount(ctx, accountID); err != nil {
		return nil, err
	}
	if action == "" || action == reconcile.ActionITV {
		return s.store.ReadCategories(ctx, &reconcile.Account{ID: accountID})
	}

	rows, err := s.store.ModeCategories(ctx, accountID, action)
	if err != nil {
		return nil, err
	}
	categories := make([]reconcile.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, reconcile.Category{
			DBID:       row.ID,
			CategoryID: row.CategoryID,
			Title:      row.Title,
			Alias:      row.Alias,
			Censored:   row.Censored,
			ActiveSub:  row.ActiveSub,
		})
	}
	return categories, nil
}

// Channels returns the channels of one category, or of the whole account when categoryDBID is zero.
func (s *Service) Channels(ctx context.Context, accountID string, categoryDBID uint) ([]models.Channel, error) {
	if _, err := s.store.GetAccount(ctx, accountID); err != nil {
		return nil, err
	}
	return s.store.Channels(ctx, accountID, categoryDBID)
}

// ChannelCount returns how many channels are saved for an account.
func (s *Service) ChannelCount(ctx context.Context, accountID string) (int64, error) {
	if _, err := s.store.GetAccount(ctx, accountID); err != nil {
		return 0, err
	}
	return s.store.ChannelCount(ctx, accountID)
}

func (s *Service) forget(row *models.Account) {
	if s.cached != nil {
		s.cached.Forget(row.ToDomain())
	}
}

func validate(account *models.Account) error {
	account.Name = strings.TrimSpace(account.Name)
	if account.Name == "" {
		return fmt.Errorf("name is required: %w", ErrInvalidAccount)
	}

	known := false
	for _, kind := range reconcile.Kinds {
		if reconcile.Kind(account.Kind) == kind {
			known = true
		}
	}
	if !known {
		return fmt.Errorf("kind %q: %w", account.Kind, ErrInvalidAccount)
	}

	switch reconcile.Action(account.Action) {
	case "":
		account.Action = string(reconcile.ActionITV)
	case reconcile.ActionITV, reconcile.ActionVOD, reconcile.ActionSeries:
	default:
		return fmt.Errorf("action %q: %w", account.Action, ErrInvalidAccount)
	}

	if strings.TrimSpace(account.ID) == "" {
		account.ID = uuid.NewString()
	}
	return nil
}
