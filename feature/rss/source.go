package rss

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalog-sync/core/reconcile"
	"catalog-sync/core/utils"
	"catalog-sync/feature/source"

	"github.com/mmcdole/gofeed"
)

// Source implements reconcile.EntrySource for RSS and Atom feeds.
// A feed has a single "All" category.
type Source struct {
	opener *source.Opener
	cache  *source.Cache[[]reconcile.PlaylistEntry]
}

// NewSource creates a feed source.
func NewSource(opener *source.Opener, cache *source.Cache[[]reconcile.PlaylistEntry]) *Source {
	return &Source{opener: opener, cache: cache}
}

// ListCategories always returns the single "All" category.
func (s *Source) ListCategories(ctx context.Context, account *reconcile.Account) ([]reconcile.Category, error) {
	return []reconcile.Category{{CategoryID: reconcile.AllTitle, Title: reconcile.AllTitle}}, nil
}

// ListEntries downloads and parses the feed.
func (s *Source) ListEntries(ctx context.Context, account *reconcile.Account) ([]reconcile.PlaylistEntry, error) {
	locator := strings.TrimSpace(account.URL)
	if locator == "" {
		return nil, errors.New("account has no feed URL")
	}
	return s.cache.Get(ctx, cacheKey(account), func(ctx context.Context) ([]reconcile.PlaylistEntry, error) {
		return s.load(ctx, locator)
	})
}

// Forget drops the cached feed of account.
func (s *Source) Forget(account *reconcile.Account) {
	s.cache.Invalidate(cacheKey(account))
}

func cacheKey(account *reconcile.Account) string {
	return string(account.Kind) + "|" + strings.TrimSpace(account.URL)
}

func (s *Source) load(ctx context.Context, locator string) ([]reconcile.PlaylistEntry, error) {
	reader, err := s.opener.Open(ctx, locator)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	feed, err := gofeed.NewParser().Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}
	return Entries(feed), nil
}

// Entries converts feed items to playlist entries. The first enclosure wins
// over the item link, relative links are resolved against the feed link and
// items without any link are dropped.
func Entries(feed *gofeed.Feed) []reconcile.PlaylistEntry {
	entries := make([]reconcile.PlaylistEntry, 0, len(feed.Items))
	for _, item := range feed.Items {
		link := item.Link
		if len(item.Enclosures) > 0 && item.Enclosures[0] != nil {
			link = utils.FirstNonEmpty(item.Enclosures[0].URL, link)
		}
		link = strings.TrimSpace(link)
		if link == "" {
			continue
		}
		if !strings.HasPrefix(strings.ToLower(link), "http") {
			link = feed.Link + link
		}

		e := reconcile.PlaylistEntry{
			ID:      strings.TrimSpace(item.GUID),
			Title:   strings.TrimSpace(item.Title),
			Locator: link,
		}
		if len(item.Categories) > 0 {
			e.GroupTitle = item.Categories[0]
		}
		if item.Image != nil {
			e.Logo = item.Image.URL
		}
		entries = append(entries, e)
	}
	return entries
}
