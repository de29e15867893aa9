package reconcile

import (
	"context"
	"fmt"
	"strings"
)

// CatalogStrategy reloads REST catalog accounts.
type CatalogStrategy struct {
	store   Store
	adapter CatalogAdapter
}

// Reload refreshes the catalog for the account's mode. Live reloads try the
// global channel list first and fall back to one request per category.
func (s *CatalogStrategy) Reload(ctx context.Context, account *Account, progress Progress) error {
	if account.Action == ActionVOD || account.Action == ActionSeries {
		return reloadModeCategories(ctx, s.store, s.adapter, account, progress)
	}

	categories, err := s.adapter.ListCategories(ctx, account)
	if err != nil {
		progress.Logf("Network error while loading categories: %v", err)
		return fmt.Errorf("failed to load categories: %w", err)
	}
	categories = WithoutAll(categories)
	if len(categories) == 0 {
		progress.Logf("No categories found. Keeping existing cache.")
		return nil
	}
	progress.Logf("Found Categories %d", len(categories))

	channels, ok := s.fetchGlobal(ctx, account, progress)
	if !ok {
		channels, err = s.fetchPerCategory(ctx, account, categories, progress)
		if err != nil {
			return err
		}
		if len(channels) == 0 {
			progress.Logf("No channels found in any category. Keeping existing cache.")
			return nil
		}
	}

	buckets := Bucket(categories, channels)
	if buckets.Total == 0 {
		progress.Logf("No channels found. Keeping existing cache.")
		return nil
	}
	progress.Logf("Found Channels %d. Found %d Orphaned channels.", buckets.Total, len(buckets.Orphans))
	if _, err := Commit(ctx, s.store, account, buckets, progress); err != nil {
		return err
	}

	sweepModeCategories(ctx, s.store, s.adapter, account, progress)
	return nil
}

// fetchGlobal reports false when the global list is unusable: an error, no
// rows, rows without ids, or rows that carry no category at all.
func (s *CatalogStrategy) fetchGlobal(ctx context.Context, account *Account, progress Progress) ([]Channel, bool) {
	channels, err := s.adapter.ListChannels(ctx, account)
	if err != nil {
		progress.Logf("Global channel lookup failed. Falling back to category fetch.")
		return nil, false
	}
	if len(channels) == 0 {
		progress.Logf("Global channel lookup returned no channels. Falling back to category fetch.")
		return nil, false
	}
	if !HasChannelIDs(channels) {
		progress.Logf("Global channel lookup returned rows without ids. Falling back to category fetch.")
		return nil, false
	}
	for _, ch := range channels {
		if strings.TrimSpace(ch.CategoryID) != "" {
			return channels, true
		}
	}
	progress.Logf("Global channel lookup returned uncategorized rows only. Falling back to category fetch.")
	return nil, false
}

// fetchPerCategory requests each category once. It fails when every request
// fails, or when some fail and the rest return nothing.
func (s *CatalogStrategy) fetchPerCategory(ctx context.Context, account *Account, categories []Category, progress Progress) ([]Channel, error) {
	var merged []Channel
	failed := 0
	for _, c := range categories {
		channels, err := s.adapter.ListCategoryChannels(ctx, account, c.CategoryID)
		if err != nil {
			failed++
			progress.Logf("Category fetch failed (%s): %v", c.Title, err)
			continue
		}
		for _, ch := range channels {
			ch.CategoryID = c.CategoryID
			merged = append(merged, ch)
		}
	}

	if failed == len(categories) {
		return nil, ErrAllCategoryFetchesFailed
	}
	merged = DedupeChannels(merged)
	if len(merged) == 0 && failed > 0 {
		return nil, ErrNoUsableChannels
	}
	return merged, nil
}
