package playlist

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"catalog-sync/core/fetch"
	"catalog-sync/core/reconcile"
	"catalog-sync/feature/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSource() *Source {
	opener := source.NewOpener(fetch.New(fetch.Options{Timeout: 5 * time.Second}, zap.NewNop()), nil)
	return NewSource(opener, source.NewCache[[]reconcile.PlaylistEntry](16, time.Minute))
}

func TestSource_ListCategories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.m3u")
	require.NoError(t, os.WriteFile(path, []byte(samplePlaylist), 0o644))
	account := &reconcile.Account{ID: "acc", Kind: reconcile.KindM3U8Local, PlaylistPath: path}

	categories, err := newTestSource().ListCategories(context.Background(), account)

	require.NoError(t, err)
	titles := make([]string, 0, len(categories))
	for _, c := range categories {
		titles = append(titles, c.Title)
	}
	assert.Equal(t, []string{reconcile.AllTitle, "News", "Movies", "Sports", reconcile.UncategorizedTitle}, titles)
}

// TestSource_ReadsOncePerReload tests that the playlist is parsed once and
// served from the cache until forgotten.
func TestSource_ReadsOncePerReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.m3u")
	require.NoError(t, os.WriteFile(path, []byte(samplePlaylist), 0o644))
	account := &reconcile.Account{ID: "acc", Kind: reconcile.KindM3U8Local, PlaylistPath: path}
	src := newTestSource()

	first, err := src.ListEntries(context.Background(), account)
	require.NoError(t, err)
	require.NoError(t, os.Remove(path))

	second, err := src.ListEntries(context.Background(), account)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	src.Forget(account)
	_, err = src.ListEntries(context.Background(), account)
	assert.Error(t, err)
}

func TestLocator(t *testing.T) {
	local := &reconcile.Account{Kind: reconcile.KindM3U8Local, URL: "http://u", PlaylistPath: "/p"}
	remote := &reconcile.Account{Kind: reconcile.KindM3U8URL, URL: "http://u", PlaylistPath: "/p"}

	assert.Equal(t, "/p", Locator(local))
	assert.Equal(t, "http://u", Locator(remote))

	_, err := newTestSource().ListEntries(context.Background(), &reconcile.Account{Kind: reconcile.KindM3U8URL})
	assert.Error(t, err)
}
