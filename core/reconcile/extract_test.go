package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(id, group, title string) PlaylistEntry {
	return PlaylistEntry{ID: id, GroupTitle: group, Title: title, Locator: "http://example.test/" + title + ".m3u8"}
}

// TestExtract_SingleGroupNeverSplits tests that a playlist with one blank
// group yields nothing for Uncategorized and everything for All.
func TestExtract_SingleGroupNeverSplits(t *testing.T) {
	entries := []PlaylistEntry{entry("1", "", "One"), entry("2", " ", "Two"), entry("3", "", "Three")}

	assert.Empty(t, Extract(UncategorizedTitle, entries))
	assert.Len(t, Extract(AllTitle, entries), 3)
	assert.Len(t, Extract("all", entries), 3)
}

func TestExtract_Targets(t *testing.T) {
	entries := []PlaylistEntry{
		entry("1", "News", "One"),
		entry("2", "news", "Two"),
		entry("3", "", "Three"),
		entry("4", "Uncategorized", "Four"),
		entry("5", "Sports", "Five"),
	}

	tests := []struct {
		name   string
		target string
		want   []string
	}{
		{name: "group ignores case", target: "NEWS", want: []string{"1", "2"}},
		{name: "uncategorized with other groups", target: "Uncategorized", want: []string{"3", "4"}},
		{name: "native id", target: "5", want: []string{"5"}},
		{name: "unknown", target: "Movies", want: nil},
		{name: "all", target: "All", want: []string{"1", "2", "3", "4", "5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, c := range Extract(tt.target, entries) {
				got = append(got, c.ChannelID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestExtract_DerivedIDsAreStable tests that entries without an id get the
// same derived id on every pass and are deduplicated by it.
func TestExtract_DerivedIDsAreStable(t *testing.T) {
	entries := []PlaylistEntry{
		entry("", "News", "One"),
		entry("", "News", "One"),
		entry("", "News", "Two"),
	}

	first := Extract("News", entries)
	second := Extract("News", entries)

	require.Len(t, first, 2)
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first[0].ChannelID)
	assert.NotEqual(t, first[0].ChannelID, first[1].ChannelID)
	assert.Equal(t, EntryID(entries[0]), first[0].ChannelID)
}

func TestExtract_PassesDRMThrough(t *testing.T) {
	e := entry("1", "News", "One")
	e.DrmType = "com.widevine.alpha"
	e.DrmLicenseURL = "https://license.example.test"
	e.ClearKeys = "{}"
	e.InputstreamAddon = "inputstream.adaptive"
	e.ManifestType = "mpd"
	e.Logo = "logo.png"

	got := Extract("News", []PlaylistEntry{e})

	require.Len(t, got, 1)
	assert.Equal(t, "com.widevine.alpha", got[0].DrmType)
	assert.Equal(t, "https://license.example.test", got[0].DrmLicenseURL)
	assert.Equal(t, "{}", got[0].ClearKeys)
	assert.Equal(t, "inputstream.adaptive", got[0].InputstreamAddon)
	assert.Equal(t, "mpd", got[0].ManifestType)
	assert.Equal(t, "logo.png", got[0].Logo)
	assert.Equal(t, e.Locator, got[0].Cmd)
}

func TestPlaylistCategories(t *testing.T) {
	entries := []PlaylistEntry{
		entry("1", "News", "One"),
		entry("2", "Sports", "Two"),
		entry("3", "news", "Three"),
		entry("4", "", "Four"),
	}

	var titles []string
	for _, c := range PlaylistCategories(entries) {
		titles = append(titles, c.Title)
	}

	assert.Equal(t, []string{AllTitle, "News", "Sports", UncategorizedTitle}, titles)
	assert.Equal(t, []string{AllTitle}, func() []string {
		var out []string
		for _, c := range PlaylistCategories(nil) {
			out = append(out, c.Title)
		}
		return out
	}())
}
