package reconcile

import (
	"strings"

	"github.com/google/uuid"
)

// EntryID returns the native id of e, or a name-based UUID over its title and
// locator when the entry has none. The derived id is stable across runs.
func EntryID(e PlaylistEntry) string {
	if id := strings.TrimSpace(e.ID); id != "" {
		return id
	}
	return uuid.NewMD5(uuid.NameSpaceURL, []byte(e.Title+"\n"+e.Locator)).String()
}

// Extract selects the entries that belong to target and converts them to channels.
//
//   - "All" selects every entry.
//   - "Uncategorized" selects entries without a group, but only when the
//     playlist has at least two distinct groups.
//   - Any other target matches the group title or the entry id, ignoring case.
//
// The result is deduplicated by id, first occurrence wins.
func Extract(target string, entries []PlaylistEntry) []Channel {
	target = strings.TrimSpace(target)
	all := strings.EqualFold(target, AllTitle)
	uncategorized := strings.EqualFold(target, UncategorizedTitle)
	if uncategorized && distinctGroups(entries) < 2 {
		return nil
	}

	seen := make(map[string]struct{})
	var out []Channel
	for _, e := range entries {
		group := strings.TrimSpace(e.GroupTitle)
		id := EntryID(e)

		var match bool
		switch {
		case all:
			match = true
		case uncategorized:
			match = isUncategorizedGroup(group)
		default:
			match = strings.EqualFold(group, target) || strings.EqualFold(strings.TrimSpace(e.ID), target)
		}
		if !match {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, entryChannel(id, target, e))
	}
	return out
}

// PlaylistCategories derives the category set of a playlist: "All", each
// distinct group in order of appearance, then "Uncategorized" when some
// entries carry no group.
func PlaylistCategories(entries []PlaylistEntry) []Category {
	categories := []Category{{CategoryID: AllTitle, Title: AllTitle}}
	seen := make(map[string]struct{})
	var orphaned bool
	for _, e := range entries {
		group := strings.TrimSpace(e.GroupTitle)
		if isUncategorizedGroup(group) {
			orphaned = true
			continue
		}
		key := strings.ToLower(group)
		if _, dup := seen[key]; dup || strings.EqualFold(group, AllTitle) {
			continue
		}
		seen[key] = struct{}{}
		categories = append(categories, Category{CategoryID: group, Title: group})
	}
	if orphaned {
		categories = append(categories, Category{CategoryID: UncategorizedID, Title: UncategorizedTitle})
	}
	return categories
}

func distinctGroups(entries []PlaylistEntry) int {
	groups := make(map[string]struct{})
	for _, e := range entries {
		group := strings.ToLower(strings.TrimSpace(e.GroupTitle))
		if isUncategorizedGroup(group) {
			group = UncategorizedID
		}
		groups[group] = struct{}{}
	}
	return len(groups)
}

func isUncategorizedGroup(group string) bool {
	return group == "" || strings.EqualFold(group, UncategorizedTitle)
}

func entryChannel(id, category string, e PlaylistEntry) Channel {
	return Channel{
		ChannelID:        id,
		CategoryID:       category,
		Name:             e.Title,
		Cmd:              e.Locator,
		Logo:             e.Logo,
		DrmType:          e.DrmType,
		DrmLicenseURL:    e.DrmLicenseURL,
		ClearKeys:        e.ClearKeys,
		InputstreamAddon: e.InputstreamAddon,
		ManifestType:     e.ManifestType,
	}
}
