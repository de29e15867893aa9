package reconcile

import (
	"context"
	"fmt"
)

// Strategy reloads the cached catalog of one account.
type Strategy interface {
	Reload(ctx context.Context, account *Account, progress Progress) error
}

// Adapters groups the backend adapters the strategies fetch from.
// A nil adapter leaves its kinds unregistered.
type Adapters struct {
	Portal   PortalAdapter
	Catalog  CatalogAdapter
	Feed     EntrySource
	Playlist EntrySource
}

// Selector maps a backend kind to its strategy.
type Selector struct {
	strategies map[Kind]Strategy
}

// NewSelector registers a strategy for every kind that has an adapter.
func NewSelector(store Store, adapters Adapters) *Selector {
	s := &Selector{strategies: make(map[Kind]Strategy)}
	if adapters.Portal != nil {
		s.strategies[KindStalkerPortal] = &PortalStrategy{store: store, adapter: adapters.Portal}
	}
	if adapters.Catalog != nil {
		s.strategies[KindXtreamAPI] = &CatalogStrategy{store: store, adapter: adapters.Catalog}
	}
	if adapters.Feed != nil {
		s.strategies[KindRSSFeed] = &FeedStrategy{store: store, source: adapters.Feed}
	}
	if adapters.Playlist != nil {
		playlist := &PlaylistStrategy{store: store, source: adapters.Playlist}
		s.strategies[KindM3U8Local] = playlist
		s.strategies[KindM3U8URL] = playlist
	}
	return s
}

// Select returns the strategy for kind.
func (s *Selector) Select(kind Kind) (Strategy, error) {
	if kind == "" {
		return nil, fmt.Errorf("account has no kind: %w", ErrUnknownKind)
	}
	strategy, ok := s.strategies[kind]
	if !ok {
		return nil, fmt.Errorf("%q: %w", kind, ErrUnknownKind)
	}
	return strategy, nil
}
