package reconcile

import (
	"context"
	"fmt"
)

// sweptModes are the category-only modes refreshed after a live reload.
var sweptModes = []Action{ActionVOD, ActionSeries}

// reloadModeCategories refreshes the category tree of a vod or series
// account. Channels are resolved on demand elsewhere and are never fetched.
func reloadModeCategories(ctx context.Context, store Store, source CategorySource, account *Account, progress Progress) error {
	categories, err := source.ListCategories(ctx, account)
	if err != nil {
		progress.Logf("Network error while loading categories: %v", err)
		return fmt.Errorf("failed to load %s categories: %w", account.Action, err)
	}
	progress.Logf("Found Categories %d", len(categories))
	if len(categories) == 0 {
		progress.Logf("No categories found. Keeping existing cache.")
		return nil
	}
	if err := store.ReplaceModeCategories(ctx, account, account.Action, categories); err != nil {
		return fmt.Errorf("failed to save %s categories: %w", account.Action, err)
	}
	progress.Logf("%d Categories & 0 Channels saved Successfully ✓", len(categories))
	return nil
}

// sweepModeCategories caches the vod and series category trees of a live
// account. The account's action is switched for each mode and restored on
// every exit path. Failures are reported to progress only.
func sweepModeCategories(ctx context.Context, store Store, source CategorySource, account *Account, progress Progress) {
	original := account.Action
	defer func() { account.Action = original }()

	for _, mode := range sweptModes {
		account.Action = mode
		categories, err := source.ListCategories(ctx, account)
		if err != nil {
			progress.Logf("Category fetch failed (%s): %v", mode, err)
			continue
		}
		if len(categories) == 0 {
			continue
		}
		if err := store.ReplaceModeCategories(ctx, account, mode, categories); err != nil {
			progress.Logf("Saving %s categories failed: %v", mode, err)
		}
	}
}
