package reconcile

import (
	"context"
	"fmt"
)

// Commit replaces the cached catalog of an account with b.
//
// Nothing is cleared unless b holds at least one channel. Categories are read
// back after being written so channels can be filed under the ids the store
// assigned. A failure after the clear is returned as is and leaves the cache
// partially written.
func Commit(ctx context.Context, store Store, account *Account, b Buckets, progress Progress) ([]Category, error) {
	if b.Total == 0 {
		return nil, ErrNothingToCommit
	}

	saved, err := replaceAndReadBack(ctx, store, account, b.Categories)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]uint, len(saved))
	var uncategorized uint
	for _, c := range saved {
		byID[c.CategoryID] = c.DBID
		if uncategorized == 0 && c.IsUncategorized() {
			uncategorized = c.DBID
		}
	}

	for _, g := range b.Matched {
		dbID, ok := byID[g.CategoryID]
		if !ok {
			continue
		}
		if err := store.ReplaceChannelsForCategory(ctx, dbID, account, g.Channels); err != nil {
			return nil, fmt.Errorf("failed to save channels for category %s: %w", g.CategoryID, err)
		}
	}

	if len(b.Orphans) > 0 {
		if uncategorized == 0 {
			return nil, ErrMissingUncategorized
		}
		if err := store.ReplaceChannelsForCategory(ctx, uncategorized, account, b.Orphans); err != nil {
			return nil, fmt.Errorf("failed to save uncategorized channels: %w", err)
		}
	}

	progress.Logf("%d Categories & %d Channels saved Successfully ✓", len(saved), b.Total)
	return saved, nil
}

// CommitByTitle is the commit protocol for sources whose channels are already
// scoped to a category. byTitle maps a category title to its channels.
func CommitByTitle(ctx context.Context, store Store, account *Account, categories []Category, byTitle map[string][]Channel, total int, progress Progress) ([]Category, error) {
	if total == 0 {
		return nil, ErrNothingToCommit
	}

	saved, err := replaceAndReadBack(ctx, store, account, categories)
	if err != nil {
		return nil, err
	}

	for _, c := range saved {
		channels := byTitle[c.Title]
		if len(channels) == 0 {
			continue
		}
		if err := store.ReplaceChannelsForCategory(ctx, c.DBID, account, channels); err != nil {
			return nil, fmt.Errorf("failed to save channels for category %s: %w", c.Title, err)
		}
	}

	progress.Logf("%d Categories & %d Channels saved Successfully ✓", len(saved), total)
	return saved, nil
}

func replaceAndReadBack(ctx context.Context, store Store, account *Account, categories []Category) ([]Category, error) {
	if err := store.ClearAll(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to clear catalog: %w", err)
	}
	if err := store.ReplaceCategories(ctx, account, categories); err != nil {
		return nil, fmt.Errorf("failed to save categories: %w", err)
	}
	saved, err := store.ReadCategories(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to read back categories: %w", err)
	}
	return saved, nil
}
