package playlist

import (
	"strings"
	"testing"

	"github.com/jamesnetherton/m3u"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePlaylist = "\ufeff#EXTM3U x-tvg-url=\"http://epg\"\n" +
	"#EXTINF:-1 tvg-id=\"news.uk\" tvg-logo=\"http://logo/news.png\" group-title=\"News\",News HD\n" +
	"http://stream/news.m3u8\n" +
	"\n" +
	"#EXTINF:-1 tvg-id=\"\" group-title=\"\",No Group\n" +
	"#EXTVLCOPT:http-user-agent=VLC\n" +
	"http:\\/\\/stream\\/nogroup.ts\n" +
	"#EXTINF:-1,Broken\n" +
	"not a url\n" +
	"#EXTINF:5 group-title=\"Movies\",Trailer\n" +
	"#KODIPROP:inputstreamaddon=inputstream.adaptive\n" +
	"#KODIPROP:inputstream.adaptive.manifest_type=mpd\n" +
	"#KODIPROP:inputstream.adaptive.license_type=clearkey\n" +
	"#KODIPROP:inputstream.adaptive.license_key=kid2:key2;kid1:key1\n" +
	"https://cdn/trailer.mpd\n" +
	"#EXTINF:-1,Grouped Below\n" +
	"#EXTGRP:Sports\n" +
	"#EXT-X-KEY:METHOD=SAMPLE-AES,URI=\"https://license/wv\",KEYFORMAT=\"com.widevine.alpha\"\n" +
	"rtmp://live/sports\n"

func TestParse(t *testing.T) {
	playlist, err := Parse(strings.NewReader(samplePlaylist))

	require.NoError(t, err)
	require.Len(t, playlist.Tracks, 4)

	news := playlist.Tracks[0]
	assert.Equal(t, "News HD", news.Name)
	assert.Equal(t, -1, news.Length)
	assert.Equal(t, "http://stream/news.m3u8", news.URI)
	assert.Contains(t, news.Tags, m3u.Tag{Name: "group-title", Value: "News"})

	assert.Equal(t, "http://stream/nogroup.ts", playlist.Tracks[1].URI)
	assert.Equal(t, 5, playlist.Tracks[2].Length)
	assert.Equal(t, "Grouped Below", playlist.Tracks[3].Name)
}

func TestEntries(t *testing.T) {
	playlist, err := Parse(strings.NewReader(samplePlaylist))
	require.NoError(t, err)

	entries := Entries(playlist)

	require.Len(t, entries, 4)
	assert.Equal(t, "news.uk", entries[0].ID)
	assert.Equal(t, "News", entries[0].GroupTitle)
	assert.Equal(t, "http://logo/news.png", entries[0].Logo)
	assert.Empty(t, entries[1].GroupTitle)

	trailer := entries[2]
	assert.Equal(t, "inputstream.adaptive", trailer.InputstreamAddon)
	assert.Equal(t, "mpd", trailer.ManifestType)
	assert.Equal(t, drmClearKey, trailer.DrmType)
	assert.Equal(t, "kid1:key1;kid2:key2", trailer.ClearKeys)
	assert.Empty(t, trailer.DrmLicenseURL)

	sports := entries[3]
	assert.Equal(t, "Sports", sports.GroupTitle)
	assert.Equal(t, drmWidevine, sports.DrmType)
	assert.Equal(t, "https://license/wv", sports.DrmLicenseURL)
}

func TestIsStreamURI(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"udp://239.0.0.1:1234", true},
		{"/media/a.ts", true},
		{"../rel/a.ts", true},
		{`C:\media\a.ts`, true},
		{"a.m3u8?token=1", true},
		{"channel-name", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isStreamURI(tt.value), tt.value)
	}
}
