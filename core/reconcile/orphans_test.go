package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBucket_OrphansGoToUncategorized tests the reference partition of one
// matched channel and two orphans.
func TestBucket_OrphansGoToUncategorized(t *testing.T) {
	categories := []Category{cat("A", "Alpha"), cat("B", "Beta")}
	channels := []Channel{ch("1", "A"), ch("2", "Z"), ch("3", "")}

	b := Bucket(categories, channels)

	require.Len(t, b.Categories, 3)
	assert.Equal(t, UncategorizedID, b.Categories[2].CategoryID)
	assert.Equal(t, UncategorizedTitle, b.Categories[2].Title)
	require.Len(t, b.Matched, 1)
	assert.Equal(t, "A", b.Matched[0].CategoryID)
	assert.Len(t, b.Orphans, 2)
	assert.Equal(t, "2", b.Orphans[0].ChannelID)
	assert.Equal(t, "3", b.Orphans[1].ChannelID)
	assert.Equal(t, 3, b.Total)
}

func TestBucket_Uncategorized(t *testing.T) {
	tests := []struct {
		name       string
		categories []Category
		channels   []Channel
		wantCats   int
	}{
		{
			name:       "no orphans adds nothing",
			categories: []Category{cat("A", "Alpha")},
			channels:   []Channel{ch("1", "A")},
			wantCats:   1,
		},
		{
			name:       "existing bucket by id",
			categories: []Category{cat("A", "Alpha"), cat(UncategorizedID, "Misc")},
			channels:   []Channel{ch("1", "Q")},
			wantCats:   2,
		},
		{
			name:       "existing bucket by title ignores case",
			categories: []Category{cat("A", "Alpha"), cat("99", " UNCATEGORIZED ")},
			channels:   []Channel{ch("1", "")},
			wantCats:   2,
		},
		{
			name:       "duplicate category ids collapse",
			categories: []Category{cat("A", "Alpha"), cat("A", "Alpha again")},
			channels:   []Channel{ch("1", "A")},
			wantCats:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Bucket(tt.categories, tt.channels)
			assert.Len(t, b.Categories, tt.wantCats)
		})
	}
}

// TestBucket_DedupesByChannelID tests that the first occurrence of an id wins
// and that order is preserved.
func TestBucket_DedupesByChannelID(t *testing.T) {
	first := ch("1", "A")
	first.Name = "first"
	second := ch("1", "B")
	second.Name = "second"

	b := Bucket([]Category{cat("A", "Alpha"), cat("B", "Beta")}, []Channel{first, ch("2", "B"), second, ch("", "A")})

	assert.Equal(t, 2, b.Total)
	require.Len(t, b.Matched, 2)
	assert.Equal(t, "first", b.Matched[0].Channels[0].Name)
	assert.Equal(t, "B", b.Matched[1].CategoryID)
	assert.Equal(t, "2", b.Matched[1].Channels[0].ChannelID)
}

func TestWithoutAll(t *testing.T) {
	out := WithoutAll([]Category{cat("*", "All"), cat("1", "News"), cat("2", " all ")})
	require.Len(t, out, 1)
	assert.Equal(t, "News", out[0].Title)
}

// TestCommit_OrphanExample tests that the orphan example lands in the store
// under the ids the store assigned.
func TestCommit_OrphanExample(t *testing.T) {
	store := newMemStore()
	account := &Account{ID: "acc"}
	b := Bucket([]Category{cat("A", "Alpha"), cat("B", "Beta")}, []Channel{ch("1", "A"), ch("2", "Z"), ch("3", "")})

	saved, err := Commit(context.Background(), store, account, b, nil)
	require.NoError(t, err)
	assert.Len(t, saved, 3)

	byTitle := store.channelsByTitle("acc")
	assert.Len(t, byTitle["Alpha"], 1)
	assert.Empty(t, byTitle["Beta"])
	require.Len(t, byTitle[UncategorizedTitle], 2)
	assert.Equal(t, "2", byTitle[UncategorizedTitle][0].ChannelID)
	assert.Equal(t, "3", byTitle[UncategorizedTitle][1].ChannelID)
	assert.Equal(t, []string{"clear", "categories", "read", "channels", "channels"}, store.calls)
}

func TestCommit_RefusesEmptySet(t *testing.T) {
	store := newMemStore()
	account := &Account{ID: "acc"}
	store.seed(account, []Category{cat("A", "Alpha")}, map[string][]Channel{"A": {ch("1", "A")}})

	_, err := Commit(context.Background(), store, account, Bucket([]Category{cat("A", "Alpha")}, nil), nil)

	assert.ErrorIs(t, err, ErrNothingToCommit)
	assert.Empty(t, store.calls)
	assert.Len(t, store.allChannels("acc"), 1)
}

func TestCommit_Errors(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name    string
		setup   func(*memStore)
		wantIs  error
		wantMsg string
	}{
		{
			name:    "clear fails",
			setup:   func(s *memStore) { s.clearErr = boom },
			wantIs:  boom,
			wantMsg: "failed to clear catalog",
		},
		{
			name:    "category write fails",
			setup:   func(s *memStore) { s.replaceErr = boom },
			wantIs:  boom,
			wantMsg: "failed to save categories",
		},
		{
			name:    "channel write fails",
			setup:   func(s *memStore) { s.channelErr = boom },
			wantIs:  boom,
			wantMsg: "failed to save channels",
		},
		{
			name:   "uncategorized lost by store",
			setup:  func(s *memStore) { s.dropUncategorized = true },
			wantIs: ErrMissingUncategorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			tt.setup(store)
			b := Bucket([]Category{cat("A", "Alpha")}, []Channel{ch("1", "A"), ch("2", "")})

			_, err := Commit(context.Background(), store, &Account{ID: "acc"}, b, nil)

			assert.ErrorIs(t, err, tt.wantIs)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestCommitByTitle(t *testing.T) {
	store := newMemStore()
	account := &Account{ID: "acc"}
	rec := &recorder{}
	categories := []Category{cat(AllTitle, AllTitle), cat("News", "News")}
	byTitle := map[string][]Channel{
		AllTitle: {ch("1", AllTitle), ch("2", AllTitle)},
		"News":   {ch("1", "News")},
	}

	saved, err := CommitByTitle(context.Background(), store, account, categories, byTitle, 3, rec.progress())
	require.NoError(t, err)
	assert.Len(t, saved, 2)
	assert.Len(t, store.channelsByTitle("acc")[AllTitle], 2)
	assert.Len(t, store.channelsByTitle("acc")["News"], 1)
	assert.True(t, rec.contains("2 Categories & 3 Channels saved Successfully"))

	_, err = CommitByTitle(context.Background(), store, account, categories, nil, 0, nil)
	assert.ErrorIs(t, err, ErrNothingToCommit)
}
