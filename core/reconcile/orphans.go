package reconcile

import "strings"

// Group is the set of channels claimed by one backend category.
type Group struct {
	CategoryID string
	Channels   []Channel
}

// Buckets is the result of partitioning a channel set against a category set.
type Buckets struct {
	// Categories is the commit set, including a synthesized Uncategorized when needed.
	Categories []Category
	// Matched keeps the order in which categories were first claimed.
	Matched []Group
	// Orphans claim a blank or unknown category.
	Orphans []Channel
	// Total counts every channel in Matched and Orphans.
	Total int
}

// Bucket partitions channels into matched groups and orphans. Channels are
// deduplicated by id first. When orphans exist and categories has no
// Uncategorized entry, one is appended to the commit set.
func Bucket(categories []Category, channels []Channel) Buckets {
	cats := dedupeCategories(categories)
	known := make(map[string]struct{}, len(cats))
	for _, c := range cats {
		known[c.CategoryID] = struct{}{}
	}

	var b Buckets
	index := make(map[string]int)
	for _, ch := range DedupeChannels(channels) {
		id := strings.TrimSpace(ch.CategoryID)
		if _, ok := known[id]; id == "" || !ok {
			b.Orphans = append(b.Orphans, ch)
			continue
		}
		i, ok := index[id]
		if !ok {
			i = len(b.Matched)
			index[id] = i
			b.Matched = append(b.Matched, Group{CategoryID: id})
		}
		b.Matched[i].Channels = append(b.Matched[i].Channels, ch)
	}

	if len(b.Orphans) > 0 && !hasUncategorized(cats) {
		cats = append(cats, Category{CategoryID: UncategorizedID, Title: UncategorizedTitle})
	}

	b.Categories = cats
	b.Total = len(b.Orphans)
	for _, g := range b.Matched {
		b.Total += len(g.Channels)
	}
	return b
}

// DedupeChannels keeps the first occurrence of each channel id and drops
// channels without one.
func DedupeChannels(channels []Channel) []Channel {
	seen := make(map[string]struct{}, len(channels))
	out := make([]Channel, 0, len(channels))
	for _, ch := range channels {
		id := strings.TrimSpace(ch.ChannelID)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, ch)
	}
	return out
}

// HasChannelIDs reports whether any channel carries an id.
func HasChannelIDs(channels []Channel) bool {
	for _, ch := range channels {
		if strings.TrimSpace(ch.ChannelID) != "" {
			return true
		}
	}
	return false
}

// WithoutAll drops the "All" pseudo-category some portals report.
func WithoutAll(categories []Category) []Category {
	out := make([]Category, 0, len(categories))
	for _, c := range categories {
		if strings.EqualFold(strings.TrimSpace(c.Title), AllTitle) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func dedupeCategories(categories []Category) []Category {
	seen := make(map[string]struct{}, len(categories))
	out := make([]Category, 0, len(categories))
	for _, c := range categories {
		c.CategoryID = strings.TrimSpace(c.CategoryID)
		if _, dup := seen[c.CategoryID]; dup {
			continue
		}
		seen[c.CategoryID] = struct{}{}
		out = append(out, c)
	}
	return out
}

func hasUncategorized(categories []Category) bool {
	for _, c := range categories {
		if c.IsUncategorized() {
			return true
		}
	}
	return false
}
