package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogAccount() *Account {
	return &Account{ID: "acc", Name: "Catalog", Kind: KindXtreamAPI, Action: ActionITV}
}

func TestCatalogStrategy_GlobalLookup(t *testing.T) {
	store := newMemStore()
	account := catalogAccount()
	adapter := &fakeCatalog{
		categories: map[Action][]Category{
			ActionITV: {cat("1", "News"), cat("2", "Sports")},
			ActionVOD: {cat("10", "Movies")},
		},
		global: []Channel{ch("a", "1"), ch("b", "2"), ch("c", "77")},
	}
	rec := &recorder{}

	err := (&CatalogStrategy{store: store, adapter: adapter}).Reload(context.Background(), account, rec.progress())

	require.NoError(t, err)
	assert.Equal(t, []string{"global"}, adapter.calls)
	assert.True(t, rec.contains("Found Channels 3. Found 1 Orphaned channels."))
	byTitle := store.channelsByTitle("acc")
	assert.Len(t, byTitle["News"], 1)
	assert.Len(t, byTitle["Sports"], 1)
	assert.Len(t, byTitle[UncategorizedTitle], 1)
	assert.Len(t, store.modes["acc/vod"], 1)
	assert.Equal(t, ActionITV, account.Action)
}

// TestCatalogStrategy_FallsBackPerCategory tests every reason the global list
// is rejected.
func TestCatalogStrategy_FallsBackPerCategory(t *testing.T) {
	tests := []struct {
		name      string
		global    []Channel
		globalErr error
		wantLine  string
	}{
		{name: "error", globalErr: errors.New("502"), wantLine: "Global channel lookup failed."},
		{name: "empty", wantLine: "Global channel lookup returned no channels."},
		{name: "no assignments", global: []Channel{ch("a", ""), ch("b", " ")}, wantLine: "Global channel lookup returned uncategorized rows only."},
		{name: "no ids", global: []Channel{ch("", "1"), ch(" ", "2")}, wantLine: "Global channel lookup returned rows without ids."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			adapter := &fakeCatalog{
				categories:  map[Action][]Category{ActionITV: {cat("1", "News"), cat("2", "Sports")}},
				global:      tt.global,
				globalErr:   tt.globalErr,
				perCategory: map[string][]Channel{"1": {ch("a", "")}, "2": {ch("b", "9"), ch("a", "2")}},
			}
			rec := &recorder{}

			err := (&CatalogStrategy{store: store, adapter: adapter}).Reload(context.Background(), catalogAccount(), rec.progress())

			require.NoError(t, err)
			assert.True(t, rec.contains(tt.wantLine))
			assert.Equal(t, []string{"global", "1", "2"}, adapter.calls)
			byTitle := store.channelsByTitle("acc")
			assert.Len(t, byTitle["News"], 1)
			require.Len(t, byTitle["Sports"], 1)
			assert.Equal(t, "b", byTitle["Sports"][0].ChannelID)
			assert.NotContains(t, byTitle, UncategorizedTitle)
		})
	}
}

// TestCatalogStrategy_AllCategoriesFail tests that a catalog failing every
// category request is a hard failure and the cache is left alone.
func TestCatalogStrategy_AllCategoriesFail(t *testing.T) {
	store := newMemStore()
	account := catalogAccount()
	store.seed(account, []Category{cat("1", "News")}, map[string][]Channel{"1": {ch("a", "1")}})
	boom := errors.New("boom")
	adapter := &fakeCatalog{
		categories:   map[Action][]Category{ActionITV: {cat("1", "News"), cat("2", "Sports"), cat("3", "Kids")}},
		globalErr:    boom,
		categoryErrs: map[string]error{"1": boom, "2": boom, "3": boom},
	}
	rec := &recorder{}

	err := (&CatalogStrategy{store: store, adapter: adapter}).Reload(context.Background(), account, rec.progress())

	assert.ErrorIs(t, err, ErrAllCategoryFetchesFailed)
	assert.Equal(t, "All category channel requests failed.", err.Error())
	assert.True(t, rec.contains("Category fetch failed (Sports): boom"))
	assert.Empty(t, store.calls)
	assert.Len(t, store.channelsByTitle("acc")["News"], 1)
}

func TestCatalogStrategy_PartialFailures(t *testing.T) {
	boom := errors.New("boom")

	t.Run("failures with nothing usable", func(t *testing.T) {
		store := newMemStore()
		adapter := &fakeCatalog{
			categories:   map[Action][]Category{ActionITV: {cat("1", "News"), cat("2", "Sports")}},
			categoryErrs: map[string]error{"1": boom},
		}

		err := (&CatalogStrategy{store: store, adapter: adapter}).Reload(context.Background(), catalogAccount(), nil)

		assert.ErrorIs(t, err, ErrNoUsableChannels)
		assert.Empty(t, store.calls)
	})

	t.Run("no failures and nothing found", func(t *testing.T) {
		store := newMemStore()
		adapter := &fakeCatalog{categories: map[Action][]Category{ActionITV: {cat("1", "News")}}}
		rec := &recorder{}

		err := (&CatalogStrategy{store: store, adapter: adapter}).Reload(context.Background(), catalogAccount(), rec.progress())

		assert.NoError(t, err)
		assert.True(t, rec.contains("No channels found in any category. Keeping existing cache."))
		assert.Empty(t, store.calls)
	})

	t.Run("failures with some channels", func(t *testing.T) {
		store := newMemStore()
		adapter := &fakeCatalog{
			categories:   map[Action][]Category{ActionITV: {cat("1", "News"), cat("2", "Sports")}},
			perCategory:  map[string][]Channel{"2": {ch("b", "2")}},
			categoryErrs: map[string]error{"1": boom},
		}

		err := (&CatalogStrategy{store: store, adapter: adapter}).Reload(context.Background(), catalogAccount(), nil)

		require.NoError(t, err)
		assert.Len(t, store.channelsByTitle("acc")["Sports"], 1)
	})
}

func TestCatalogStrategy_ModeReload(t *testing.T) {
	store := newMemStore()
	account := catalogAccount()
	account.Action = ActionSeries
	adapter := &fakeCatalog{categories: map[Action][]Category{ActionSeries: {cat("s", "Shows")}}}

	err := (&CatalogStrategy{store: store, adapter: adapter}).Reload(context.Background(), account, nil)

	require.NoError(t, err)
	assert.Empty(t, adapter.calls)
	assert.Len(t, store.modes["acc/series"], 1)
	assert.Empty(t, store.calls)
}

// TestCatalogStrategy_RowsWithoutIDsKeepCache tests that a catalog answering
// only with id-less rows is treated as having no data.
func TestCatalogStrategy_RowsWithoutIDsKeepCache(t *testing.T) {
	store := newMemStore()
	account := catalogAccount()
	store.seed(account, []Category{cat("1", "News")}, map[string][]Channel{"1": {ch("a", "1")}})
	adapter := &fakeCatalog{
		categories:  map[Action][]Category{ActionITV: {cat("1", "News")}},
		global:      []Channel{ch("", "1")},
		perCategory: map[string][]Channel{"1": {ch("", "1")}},
	}
	rec := &recorder{}

	err := (&CatalogStrategy{store: store, adapter: adapter}).Reload(context.Background(), account, rec.progress())

	require.NoError(t, err)
	assert.True(t, rec.contains("No channels found in any category. Keeping existing cache."))
	assert.Empty(t, store.calls)
	assert.Len(t, store.allChannels("acc"), 1)
}
