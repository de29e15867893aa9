// Package source opens the playlists and feeds that file-based accounts
// point at, and caches what was parsed from them.
package source
