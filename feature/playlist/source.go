package playlist

import (
	"context"
	"errors"
	"fmt"

	"catalog-sync/core/reconcile"
	"catalog-sync/core/utils"
	"catalog-sync/feature/source"
)

// Source implements reconcile.EntrySource for M3U accounts.
type Source struct {
	opener *source.Opener
	cache  *source.Cache[[]reconcile.PlaylistEntry]
}

// NewSource creates a playlist source. Parsed playlists are shared through cache.
func NewSource(opener *source.Opener, cache *source.Cache[[]reconcile.PlaylistEntry]) *Source {
	return &Source{opener: opener, cache: cache}
}

// ListCategories returns "All", the playlist's groups and, when some entries
// carry no group, "Uncategorized".
func (s *Source) ListCategories(ctx context.Context, account *reconcile.Account) ([]reconcile.Category, error) {
	entries, err := s.ListEntries(ctx, account)
	if err != nil {
		return nil, err
	}
	return reconcile.PlaylistCategories(entries), nil
}

// ListEntries returns every entry of the account's playlist.
func (s *Source) ListEntries(ctx context.Context, account *reconcile.Account) ([]reconcile.PlaylistEntry, error) {
	locator := Locator(account)
	if locator == "" {
		return nil, errors.New("account has no playlist locator")
	}
	return s.cache.Get(ctx, string(account.Kind)+"|"+locator, func(ctx context.Context) ([]reconcile.PlaylistEntry, error) {
		return s.load(ctx, locator)
	})
}

// Forget drops the cached playlist of account.
func (s *Source) Forget(account *reconcile.Account) {
	s.cache.Invalidate(string(account.Kind) + "|" + Locator(account))
}

func (s *Source) load(ctx context.Context, locator string) ([]reconcile.PlaylistEntry, error) {
	reader, err := s.opener.Open(ctx, locator)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	playlist, err := Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse playlist: %w", err)
	}
	return Entries(playlist), nil
}

// Locator returns where the playlist of account lives. Local playlists prefer
// the playlist path, downloaded ones the URL.
func Locator(account *reconcile.Account) string {
	if account.Kind == reconcile.KindM3U8URL {
		return utils.FirstNonEmpty(account.URL, account.PlaylistPath)
	}
	return utils.FirstNonEmpty(account.PlaylistPath, account.URL)
}
