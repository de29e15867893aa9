package reconcile

import (
	"strconv"
	"strings"

	"github.com/grafana/regexp"
	"github.com/puzpuzpuz/xsync/v3"
)

var (
	foundChannelsRegex = regexp.MustCompile(`(?i)Found\s+Channels\s+(\d+)`)
	collectedRegex     = regexp.MustCompile(`(?i)Collected\s+(\d+)\s+channels`)
)

// criticalPrefixes mark progress lines that mean the reload did not do its job,
// even when no error was returned.
var criticalPrefixes = []string{
	"Reload failed:",
	"Handshake failed for",
	"Network error while loading categories",
	"Failed to parse channels",
	"Last-resort fetch failed for category",
}

// OutcomeTracker derives per-account reload outcomes from progress lines.
// It is safe for concurrent use.
type OutcomeTracker struct {
	fetched  *xsync.MapOf[string, int]
	critical *xsync.MapOf[string, struct{}]
}

// NewOutcomeTracker returns an empty tracker.
func NewOutcomeTracker() *OutcomeTracker {
	return &OutcomeTracker{
		fetched:  xsync.NewMapOf[string, int](),
		critical: xsync.NewMapOf[string, struct{}](),
	}
}

// RecordMessage inspects one progress line of an account.
func (t *OutcomeTracker) RecordMessage(accountID, message string) {
	if strings.TrimSpace(accountID) == "" {
		return
	}
	if n, ok := fetchedChannels(message); ok {
		t.fetched.Store(accountID, n)
	}
	if isCritical(message) {
		t.critical.Store(accountID, struct{}{})
	}
}

// FetchedChannels returns the last channel count reported for an account.
func (t *OutcomeTracker) FetchedChannels(accountID string) int {
	n, _ := t.fetched.Load(accountID)
	return n
}

// HasCriticalFailure reports whether any critical line was seen for an account.
func (t *OutcomeTracker) HasCriticalFailure(accountID string) bool {
	_, ok := t.critical.Load(accountID)
	return ok
}

// Forget drops what was recorded for one account.
func (t *OutcomeTracker) Forget(accountID string) {
	t.fetched.Delete(accountID)
	t.critical.Delete(accountID)
}

// Clear drops everything.
func (t *OutcomeTracker) Clear() {
	t.fetched.Clear()
	t.critical.Clear()
}

// Sink returns a Progress that records every line for accountID.
func (t *OutcomeTracker) Sink(accountID string) Progress {
	return func(message string) {
		t.RecordMessage(accountID, message)
	}
}

func fetchedChannels(message string) (int, bool) {
	for _, re := range []*regexp.Regexp{foundChannelsRegex, collectedRegex} {
		m := re.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func isCritical(message string) bool {
	trimmed := strings.TrimSpace(message)
	if trimmed == "Handshake failed." {
		return true
	}
	for _, prefix := range criticalPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}
