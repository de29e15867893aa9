package reconcile

import (
	"context"
	"fmt"
)

// FeedStrategy reloads RSS feed accounts.
type FeedStrategy struct {
	store  Store
	source EntrySource
}

// Reload refreshes the catalog of a feed account.
func (s *FeedStrategy) Reload(ctx context.Context, account *Account, progress Progress) error {
	return reloadFromEntries(ctx, s.store, s.source, account, progress)
}

// reloadFromEntries is shared by the feed and playlist strategies. Each
// category's channels are extracted from the source's entries. A category
// whose entries cannot be read is skipped.
func reloadFromEntries(ctx context.Context, store Store, source EntrySource, account *Account, progress Progress) error {
	categories, err := source.ListCategories(ctx, account)
	if err != nil {
		progress.Logf("Network error while loading categories: %v", err)
		return fmt.Errorf("failed to load categories: %w", err)
	}
	if len(categories) == 0 {
		progress.Logf("No categories found. Keeping existing cache.")
		return nil
	}
	progress.Logf("Found Categories %d", len(categories))

	byTitle := make(map[string][]Channel, len(categories))
	total := 0
	for _, c := range categories {
		entries, err := source.ListEntries(ctx, account)
		if err != nil {
			progress.Logf("Category fetch failed (%s): %v", c.Title, err)
			continue
		}
		channels := Extract(c.Title, entries)
		if len(channels) == 0 {
			continue
		}
		byTitle[c.Title] = channels
		total += len(channels)
	}

	if total == 0 {
		progress.Logf("No channels found in any category. Keeping existing cache.")
		return nil
	}
	progress.Logf("Found Channels %d. Found 0 Orphaned channels.", total)

	_, err = CommitByTitle(ctx, store, account, categories, byTitle, total, progress)
	return err
}
