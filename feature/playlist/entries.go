package playlist

import (
	"sort"
	"strings"

	"catalog-sync/core/reconcile"

	"github.com/jamesnetherton/m3u"
)

const (
	drmWidevine = "com.widevine.alpha"
	drmClearKey = "org.w3.clearkey"
)

// Entries converts parsed tracks into playlist entries.
func Entries(playlist m3u.Playlist) []reconcile.PlaylistEntry {
	entries := make([]reconcile.PlaylistEntry, 0, len(playlist.Tracks))
	for _, track := range playlist.Tracks {
		entries = append(entries, entry(track))
	}
	return entries
}

func entry(track m3u.Track) reconcile.PlaylistEntry {
	e := reconcile.PlaylistEntry{
		ID:         tagValue(track.Tags, "tvg-id"),
		GroupTitle: tagValue(track.Tags, "group-title"),
		Title:      track.Name,
		Locator:    track.URI,
		Logo:       tagValue(track.Tags, "tvg-logo"),
	}

	clearKeys := map[string]string{}
	for _, tag := range track.Tags {
		switch {
		case tag.Name == TagKey:
			if strings.EqualFold(attribute(tag.Value, "KEYFORMAT"), drmWidevine) {
				e.DrmType = drmWidevine
			}
			e.DrmLicenseURL = attribute(tag.Value, "URI")
		case strings.EqualFold(tag.Name, TagKodiPrefix+"inputstreamaddon"):
			e.InputstreamAddon = tag.Value
		case strings.EqualFold(tag.Name, TagKodiPrefix+"inputstream.adaptive.manifest_type"):
			e.ManifestType = tag.Value
		case strings.EqualFold(tag.Name, TagKodiPrefix+"inputstream.adaptive.license_type"):
			if drm := licenseType(tag.Value); drm != "" {
				e.DrmType = drm
			}
		case strings.EqualFold(tag.Name, TagKodiPrefix+"inputstream.adaptive.license_key"):
			if e.DrmType == drmClearKey {
				for kid, key := range parseClearKeys(tag.Value) {
					clearKeys[kid] = key
				}
			} else {
				e.DrmLicenseURL = tag.Value
			}
		}
	}
	e.ClearKeys = formatClearKeys(clearKeys)
	return e
}

func licenseType(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case drmWidevine:
		return drmWidevine
	case "clearkey", drmClearKey, "com.clearkey.alpha":
		return drmClearKey
	}
	return ""
}

// parseClearKeys reads "kid:key;kid:key" pairs.
func parseClearKeys(value string) map[string]string {
	keys := map[string]string{}
	for _, pair := range strings.Split(value, ";") {
		parts := strings.Split(strings.TrimSpace(pair), ":")
		if len(parts) == 2 {
			keys[parts[0]] = parts[1]
		}
	}
	return keys
}

// formatClearKeys writes keys back in kid order so stored values are stable.
func formatClearKeys(keys map[string]string) string {
	if len(keys) == 0 {
		return ""
	}
	kids := make([]string, 0, len(keys))
	for kid := range keys {
		kids = append(kids, kid)
	}
	sort.Strings(kids)

	pairs := make([]string, 0, len(kids))
	for _, kid := range kids {
		pairs = append(pairs, kid+":"+keys[kid])
	}
	return strings.Join(pairs, ";")
}

func attribute(list, name string) string {
	for _, match := range attributePattern.FindAllStringSubmatch(list, -1) {
		if strings.EqualFold(match[1], name) {
			return match[2]
		}
	}
	return ""
}
