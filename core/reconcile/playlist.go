package reconcile

import "context"

// PlaylistStrategy reloads local and remote M3U playlist accounts. The
// adapter decides how the account's locator is opened.
type PlaylistStrategy struct {
	store  Store
	source EntrySource
}

// Reload refreshes the catalog from the playlist's group labels.
func (s *PlaylistStrategy) Reload(ctx context.Context, account *Account, progress Progress) error {
	return reloadFromEntries(ctx, s.store, s.source, account, progress)
}
