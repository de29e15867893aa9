package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcomeTracker_FetchedChannels(t *testing.T) {
	tests := []struct {
		message string
		want    int
	}{
		{"Found Channels 120. Found 3 Orphaned channels.", 120},
		{"found   channels 7", 7},
		{"Last-resort fetch succeeded. Collected 42 channels.", 42},
		{"Found Categories 9", 0},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			tracker := NewOutcomeTracker()
			tracker.RecordMessage("acc", tt.message)
			assert.Equal(t, tt.want, tracker.FetchedChannels("acc"))
		})
	}
}

func TestOutcomeTracker_CriticalFailures(t *testing.T) {
	critical := []string{
		"Reload failed: boom",
		"Handshake failed.",
		"  Handshake failed for: Portal",
		"Network error while loading categories: eof",
		"Failed to parse channels from get_all_channels: bad json",
		"Last-resort fetch failed for category 3 at page 0: 500",
	}
	for _, msg := range critical {
		tracker := NewOutcomeTracker()
		tracker.RecordMessage("acc", msg)
		assert.True(t, tracker.HasCriticalFailure("acc"), msg)
	}

	tracker := NewOutcomeTracker()
	tracker.RecordMessage("acc", "Category fetch failed (News): timeout")
	tracker.RecordMessage("", "Reload failed: ignored")
	assert.False(t, tracker.HasCriticalFailure("acc"))
	assert.False(t, tracker.HasCriticalFailure(""))
}

func TestOutcomeTracker_ForgetAndClear(t *testing.T) {
	tracker := NewOutcomeTracker()
	tracker.Sink("a")("Found Channels 3")
	tracker.Sink("b")("Reload failed: x")

	tracker.Forget("a")
	assert.Equal(t, 0, tracker.FetchedChannels("a"))
	assert.True(t, tracker.HasCriticalFailure("b"))

	tracker.Clear()
	assert.False(t, tracker.HasCriticalFailure("b"))
}

func TestVerifyMAC(t *testing.T) {
	categories := map[Action][]Category{ActionITV: {cat("1", "News")}}

	tests := []struct {
		name    string
		adapter *fakePortal
		want    bool
	}{
		{name: "accepted", adapter: &fakePortal{token: "t", categories: categories}, want: true},
		{name: "handshake rejected", adapter: &fakePortal{handshakeErr: errors.New("403")}},
		{name: "no token", adapter: &fakePortal{categories: categories}},
		{name: "no categories", adapter: &fakePortal{token: "t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := portalAccount()
			account.MAC = "00:1A:79:00:00:01"
			account.Token = "original"

			got := VerifyMAC(context.Background(), tt.adapter, account, "00:1A:79:FF:FF:FF")

			assert.Equal(t, tt.want, got)
			assert.Equal(t, "00:1A:79:00:00:01", account.MAC)
			assert.Equal(t, "original", account.Token)
		})
	}
}
