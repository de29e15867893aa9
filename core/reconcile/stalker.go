package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// PortalStrategy reloads session-portal accounts.
type PortalStrategy struct {
	store   Store
	adapter PortalAdapter
}

// Reload opens a portal session and refreshes the catalog for the account's mode.
func (s *PortalStrategy) Reload(ctx context.Context, account *Account, progress Progress) error {
	if err := s.adapter.Handshake(ctx, account); err != nil || !account.IsConnected() {
		progress.Logf("Handshake failed for: %s", account.Name)
		return nil
	}

	if account.Action == ActionVOD || account.Action == ActionSeries {
		return reloadModeCategories(ctx, s.store, s.adapter, account, progress)
	}

	return s.reloadLive(ctx, account, progress)
}

func (s *PortalStrategy) reloadLive(ctx context.Context, account *Account, progress Progress) error {
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

	channels := s.fetchBulk(ctx, account, progress)
	if len(channels) == 0 {
		progress.Logf("No channels returned by get_all_channels. Trying last-resort category-by-category fetch.")
		channels = s.fetchLastResort(ctx, account, categories, progress)
		if len(channels) == 0 {
			progress.Logf("No channels found. Keeping existing cache.")
			return nil
		}
		progress.Logf("Last-resort fetch succeeded. Collected %d channels.", len(channels))
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

// fetchBulk tries each get_all_channels shape and keeps the first that yields
// channels with ids. A parse failure is only reported once no shape worked.
func (s *PortalStrategy) fetchBulk(ctx context.Context, account *Account, progress Progress) []Channel {
	var malformed error
	for _, shape := range bulkShapes() {
		channels, err := s.adapter.ListAllChannels(ctx, account, shape[0], shape[1])
		if err != nil {
			if errors.Is(err, ErrMalformedResponse) {
				malformed = err
			}
			progress.Logf("get_all_channels attempt failed: %v", err)
			continue
		}
		if HasChannelIDs(channels) {
			return channels
		}
	}
	if malformed != nil {
		progress.Logf("Failed to parse channels from get_all_channels: %v", malformed)
	}
	return nil
}

// fetchLastResort pages through every category and merges the results.
func (s *PortalStrategy) fetchLastResort(ctx context.Context, account *Account, categories []Category, progress Progress) []Channel {
	var merged []Channel
	for _, c := range categories {
		categoryID := strings.TrimSpace(c.CategoryID)
		if categoryID == "" {
			continue
		}
		for _, ch := range s.fetchCategory(ctx, account, categoryID, progress) {
			if strings.TrimSpace(ch.CategoryID) == "" {
				ch.CategoryID = categoryID
			}
			merged = append(merged, ch)
		}
	}
	return DedupeChannels(merged)
}

// fetchCategory reads a category starting at page 0, or at page 1 when page 0 is empty.
func (s *PortalStrategy) fetchCategory(ctx context.Context, account *Account, categoryID string, progress Progress) []Channel {
	if channels := s.fetchPages(ctx, account, categoryID, 0, progress); len(channels) > 0 {
		return channels
	}
	return s.fetchPages(ctx, account, categoryID, 1, progress)
}

// fetchPages reads start and up to max(pageCount, 2) further pages,
// stopping at the first empty or failed page.
func (s *PortalStrategy) fetchPages(ctx context.Context, account *Account, categoryID string, start int, progress Progress) []Channel {
	var channels []Channel
	extra := 2
	for page := start; page <= start+extra; page++ {
		if ctx.Err() != nil {
			break
		}
		batch, hint, err := s.adapter.ListCategoryPage(ctx, account, categoryID, page)
		if err != nil {
			progress.Logf("Last-resort fetch failed for category %s at page %d: %v", categoryID, page, err)
			break
		}
		if page == start && hint != nil {
			extra = max(hint.PageCount(), 2)
		}
		if len(batch) == 0 {
			break
		}
		channels = append(channels, batch...)
	}
	return DedupeChannels(channels)
}
