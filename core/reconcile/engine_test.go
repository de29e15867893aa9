package reconcile

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// countingLocker records lock and unlock calls.
type countingLocker struct {
	mu       sync.Mutex
	locked   []string
	unlocked int
	err      error
}

func (l *countingLocker) Lock(ctx context.Context, key string) (func(), error) {
	if l.err != nil {
		return nil, l.err
	}
	l.mu.Lock()
	l.locked = append(l.locked, key)
	l.mu.Unlock()
	return func() {
		l.mu.Lock()
		l.unlocked++
		l.mu.Unlock()
	}, nil
}

func newTestEngine(store Store, adapters Adapters, locker Locker) *Engine {
	return NewEngine(NewSelector(store, adapters), locker, zap.NewNop())
}

func TestEngine_Reload(t *testing.T) {
	store := newMemStore()
	locker := &countingLocker{}
	adapter := &fakeCatalog{
		categories: map[Action][]Category{ActionITV: {cat("1", "News")}},
		global:     []Channel{ch("a", "1"), ch("b", "1")},
	}
	engine := newTestEngine(store, Adapters{Catalog: adapter}, locker)
	rec := &recorder{}

	result, err := engine.Reload(context.Background(), catalogAccount(), rec.progress())

	require.NoError(t, err)
	assert.Equal(t, "acc", result.AccountID)
	assert.Equal(t, KindXtreamAPI, result.Kind)
	assert.Equal(t, 2, result.FetchedChannels)
	assert.False(t, result.CriticalFailure)
	assert.False(t, result.Skipped)
	assert.Empty(t, result.Error)
	assert.Equal(t, []string{"acc"}, locker.locked)
	assert.Equal(t, 1, locker.unlocked)
	assert.True(t, rec.contains("Found Categories 1"))
}

func TestEngine_ReloadFailure(t *testing.T) {
	boom := errors.New("boom")
	adapter := &fakeCatalog{
		categories:   map[Action][]Category{ActionITV: {cat("1", "News")}},
		globalErr:    boom,
		categoryErrs: map[string]error{"1": boom},
	}
	locker := &countingLocker{}
	engine := newTestEngine(newMemStore(), Adapters{Catalog: adapter}, locker)
	rec := &recorder{}

	result, err := engine.Reload(context.Background(), catalogAccount(), rec.progress())

	assert.ErrorIs(t, err, ErrAllCategoryFetchesFailed)
	assert.ErrorIs(t, result.Err, ErrAllCategoryFetchesFailed)
	assert.Equal(t, "All category channel requests failed.", result.Error)
	assert.True(t, result.CriticalFailure)
	assert.True(t, rec.contains("Reload failed: All category channel requests failed."))
	assert.Equal(t, 1, locker.unlocked)
}

func TestEngine_PausedAccountIsSkipped(t *testing.T) {
	adapter := &fakeCatalog{}
	engine := newTestEngine(newMemStore(), Adapters{Catalog: adapter}, nil)
	account := catalogAccount()
	account.PauseCaching = true
	rec := &recorder{}

	result, err := engine.Reload(context.Background(), account, rec.progress())

	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.True(t, rec.contains("Caching paused for: Catalog"))
	assert.Empty(t, adapter.calls)
}

func TestEngine_UnknownKind(t *testing.T) {
	engine := newTestEngine(newMemStore(), Adapters{}, nil)

	result, err := engine.Reload(context.Background(), &Account{ID: "x", Kind: "carrier_pigeon"}, nil)

	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.True(t, result.CriticalFailure)
}

func TestEngine_LockFailure(t *testing.T) {
	adapter := &fakeCatalog{}
	engine := newTestEngine(newMemStore(), Adapters{Catalog: adapter}, &countingLocker{err: errors.New("held")})

	_, err := engine.Reload(context.Background(), catalogAccount(), nil)

	assert.ErrorContains(t, err, "failed to lock account acc")
	assert.Empty(t, adapter.calls)
}

// TestEngine_HandshakeFailureIsCritical tests that a failed handshake is not
// an error but is still reported as a critical outcome.
func TestEngine_HandshakeFailureIsCritical(t *testing.T) {
	engine := newTestEngine(newMemStore(), Adapters{Portal: &fakePortal{handshakeErr: errors.New("401")}}, nil)

	result, err := engine.Reload(context.Background(), portalAccount(), nil)

	require.NoError(t, err)
	assert.True(t, result.CriticalFailure)
	assert.Equal(t, 0, result.FetchedChannels)
}

// TestEngine_FallbackRescueIsNotCritical tests that bulk fetch errors rescued
// by the category fallback leave the outcome clean.
func TestEngine_FallbackRescueIsNotCritical(t *testing.T) {
	adapter := &fakePortal{
		token:      "t",
		categories: liveCategories(cat("A", "Alpha")),
		bulkErr:    errors.New("connection reset"),
		pages:      map[pageKey]pageResult{{"A", 0}: {channels: []Channel{ch("1", "A")}}},
	}
	engine := newTestEngine(newMemStore(), Adapters{Portal: adapter}, nil)

	result, err := engine.Reload(context.Background(), portalAccount(), nil)

	require.NoError(t, err)
	assert.False(t, result.CriticalFailure)
	assert.Equal(t, 1, result.FetchedChannels)
}
