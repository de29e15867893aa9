package cmd

import (
	"context"
	"fmt"

	"catalog-sync/core/config"
	"catalog-sync/core/database"
	"catalog-sync/core/fetch"
	"catalog-sync/core/logger"
	"catalog-sync/core/reconcile"
	"catalog-sync/core/storage"
	"catalog-sync/feature/catalog"
	"catalog-sync/feature/playlist"
	"catalog-sync/feature/rss"
	"catalog-sync/feature/source"
	"catalog-sync/feature/stalker"
	"catalog-sync/feature/xtream"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime holds everything a command needs to work on the catalog.
type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	storage storage.Client
	store   *catalog.Store
	service *catalog.Service
	closers []func() error
}

// loadConfig loads configuration and creates the logger.
func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logg, nil
}

// newStorage connects to object storage. Storage is optional: without an
// endpoint, uploads and s3:// playlists are unavailable.
func newStorage(cfg *config.Config, logg *zap.Logger) storage.Client {
	if cfg.Storage.Endpoint == "" {
		logg.Info("Object storage not configured")
		return nil
	}
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		logg.Warn("Optional storage client failed", zap.Error(err))
		return nil
	}
	return client
}

// newRuntime connects the database, migrates the catalog schema and builds
// the reload engine with every backend adapter.
func newRuntime(ctx context.Context, cfg *config.Config, logg *zap.Logger) (*runtime, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	store := catalog.NewStore(db)
	if err := store.Migrate(); err != nil {
		return nil, err
	}

	rt := &runtime{cfg: cfg, logger: logg, db: db, storage: newStorage(cfg, logg), store: store}

	locker, err := rt.newLocker(ctx)
	if err != nil {
		return nil, err
	}

	syncCfg := cfg.Sync
	httpClient := fetch.New(fetch.Options{
		Timeout:       syncCfg.HTTPTimeout(),
		RatePerSecond: syncCfg.RatePerSecond,
		UserAgent:     syncCfg.UserAgent,
	}, logg.Named("fetch"))
	opener := source.NewOpener(httpClient, rt.storage)

	portal := stalker.NewClient(syncCfg, logg.Named("stalker"))
	playlists := playlist.NewSource(opener, source.NewCache[[]reconcile.PlaylistEntry](0, syncCfg.PlaylistCacheTTL()))
	feeds := rss.NewSource(opener, source.NewCache[[]reconcile.PlaylistEntry](0, syncCfg.PlaylistCacheTTL()))

	selector := reconcile.NewSelector(store, reconcile.Adapters{
		Portal:   portal,
		Catalog:  xtream.NewClient(syncCfg, logg.Named("xtream")),
		Feed:     feeds,
		Playlist: playlists,
	})
	engine := reconcile.NewEngine(selector, locker, logg)

	rt.service = catalog.NewService(store, engine, catalog.ServiceConfig{
		Portal:  portal,
		Cached:  catalog.Forgetters{playlists, feeds},
		Storage: rt.storage,
		Bucket:  cfg.Storage.Bucket,
		Region:  cfg.Storage.Region,
		Workers: syncCfg.Workers,
	}, logg)
	return rt, nil
}

func (rt *runtime) newLocker(ctx context.Context) (reconcile.Locker, error) {
	if rt.cfg.Sync.RedisURL == "" {
		return catalog.NewLocalLocker(), nil
	}

	locker, err := catalog.NewRedisLocker(rt.cfg.Sync.RedisURL, rt.cfg.Sync.LockTTL())
	if err != nil {
		return nil, err
	}
	if err := locker.Ping(ctx); err != nil {
		_ = locker.Close()
		return nil, fmt.Errorf("failed to reach redis: %w", err)
	}
	rt.closers = append(rt.closers, locker.Close)
	rt.logger.Info("Using distributed reload lock")
	return locker, nil
}

// Close releases connections held by the runtime.
func (rt *runtime) Close() {
	for _, closeFn := range rt.closers {
		if err := closeFn(); err != nil {
			rt.logger.Warn("Failed to close resource", zap.Error(err))
		}
	}
	if sqlDB, err := rt.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
