package reconcile

import "strings"

// Kind identifies the backend protocol an account talks to.
type Kind string

const (
	// KindStalkerPortal is a session-based portal (handshake + token).
	KindStalkerPortal Kind = "stalker_portal"
	// KindXtreamAPI is a REST catalog (player_api.php).
	KindXtreamAPI Kind = "xtream_api"
	// KindRSSFeed is an RSS/Atom feed whose items are treated as channels.
	KindRSSFeed Kind = "rss_feed"
	// KindM3U8Local is a playlist read from a local path or object storage.
	KindM3U8Local Kind = "m3u8_local"
	// KindM3U8URL is a playlist downloaded from a remote URL.
	KindM3U8URL Kind = "m3u8_url"
)

// Kinds lists every supported backend kind.
var Kinds = []Kind{KindStalkerPortal, KindXtreamAPI, KindRSSFeed, KindM3U8Local, KindM3U8URL}

// Action is the content mode an account is browsed in.
type Action string

const (
	// ActionITV is live television.
	ActionITV Action = "itv"
	// ActionVOD is video on demand.
	ActionVOD Action = "vod"
	// ActionSeries is episodic content.
	ActionSeries Action = "series"
)

const (
	// UncategorizedID is the backend id of the synthetic orphan bucket.
	UncategorizedID = "uncategorized"
	// UncategorizedTitle is the display title of the synthetic orphan bucket.
	UncategorizedTitle = "Uncategorized"
	// AllTitle is the pseudo-category that selects every playlist entry.
	AllTitle = "All"
)

// Account is one IPTV subscription.
// Credential and locator fields are only interpreted by adapters.
type Account struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Kind         Kind   `json:"kind"`
	Action       Action `json:"action"`
	URL          string `json:"url"`
	MAC          string `json:"mac"`
	Username     string `json:"username"`
	Password     string `json:"-"`
	PlaylistPath string `json:"playlist_path"`
	Token        string `json:"-"`
	PauseCaching bool   `json:"pause_caching"`
}

// IsConnected reports whether the account holds a usable session.
// Only portal accounts need one.
func (a *Account) IsConnected() bool {
	if a.Kind != KindStalkerPortal {
		return true
	}
	return strings.TrimSpace(a.Token) != ""
}

// Category is a channel grouping reported by a backend.
type Category struct {
	// DBID is assigned by the store; zero until the category has been committed.
	DBID       uint   `json:"db_id"`
	CategoryID string `json:"category_id"`
	Title      string `json:"title"`
	Alias      string `json:"alias,omitempty"`
	Censored   bool   `json:"censored"`
	ActiveSub  bool   `json:"active_sub"`
}

// IsUncategorized reports whether c is the orphan bucket, matched by id or title.
func (c Category) IsUncategorized() bool {
	return c.CategoryID == UncategorizedID || strings.EqualFold(strings.TrimSpace(c.Title), UncategorizedTitle)
}

// Channel is a playable entry. CategoryID is the category the backend claims,
// which may be blank or unknown.
type Channel struct {
	ChannelID        string `json:"channel_id"`
	CategoryID       string `json:"category_id"`
	Name             string `json:"name"`
	Number           string `json:"number,omitempty"`
	Cmd              string `json:"cmd"`
	Cmd1             string `json:"cmd_1,omitempty"`
	Cmd2             string `json:"cmd_2,omitempty"`
	Cmd3             string `json:"cmd_3,omitempty"`
	Logo             string `json:"logo,omitempty"`
	Censored         int    `json:"censored"`
	Status           int    `json:"status"`
	HD               int    `json:"hd"`
	DrmType          string `json:"drm_type,omitempty"`
	DrmLicenseURL    string `json:"drm_license_url,omitempty"`
	ClearKeys        string `json:"clear_keys,omitempty"`
	InputstreamAddon string `json:"inputstream_addon,omitempty"`
	ManifestType     string `json:"manifest_type,omitempty"`
}

// Pagination is the paging hint a portal returns with a channel page.
type Pagination struct {
	// PaginationLimit is the page size.
	PaginationLimit int
	// MaxPageItems is the total number of items the server reports.
	MaxPageItems int
}

// PageCount is ceil(MaxPageItems / PaginationLimit), or 0 without a page size.
func (p Pagination) PageCount() int {
	if p.PaginationLimit <= 0 || p.MaxPageItems <= 0 {
		return 0
	}
	return (p.MaxPageItems + p.PaginationLimit - 1) / p.PaginationLimit
}

// PlaylistEntry is one item of a playlist or feed.
type PlaylistEntry struct {
	ID               string
	GroupTitle       string
	Title            string
	Locator          string
	Logo             string
	DrmType          string
	DrmLicenseURL    string
	ClearKeys        string
	InputstreamAddon string
	ManifestType     string
}
