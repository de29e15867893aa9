// Package playlist reads extended M3U playlists into the entries the
// playlist reload strategy works on.
//
// The parser keeps #EXTINF attributes as m3u track tags. #KODIPROP and
// #EXT-X-KEY lines are kept too and turned into DRM fields on conversion.
package playlist
