package playlist

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/grafana/regexp"
	"github.com/jamesnetherton/m3u"
)

const (
	extinf   = "#EXTINF"
	extgrp   = "#EXTGRP:"
	extXKey  = "#EXT-X-KEY:"
	kodiProp = "#KODIPROP:"

	// TagKey holds the attribute list of an #EXT-X-KEY line.
	TagKey = "EXT-X-KEY"
	// TagKodiPrefix prefixes the tag name of every #KODIPROP line.
	TagKodiPrefix = "KODIPROP:"
)

var (
	attributePattern = regexp.MustCompile(`([A-Za-z0-9_-]+)="([^"]*)"`)
	schemePattern    = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)
	drivePattern     = regexp.MustCompile(`^[a-zA-Z]:\\`)
	mediaPattern     = regexp.MustCompile(`(?i)^.+\.(m3u8|mpd|ts|aac|mp3|mp4|m4s)(\?.*)?$`)
	escapeReplacer   = strings.NewReplacer(
		`\/`, "/",
		`\u002f`, "/", `\u002F`, "/",
		`\u003a`, ":", `\u003A`, ":",
		`\u003f`, "?", `\u003F`, "?",
		`\u003d`, "=", `\u003D`, "=",
		`\u0026`, "&",
	)
)

// Parse reads an extended M3U playlist.
//
// Every #EXTINF attribute becomes a track tag, as do the #KODIPROP and
// #EXT-X-KEY lines between an #EXTINF and its URI. An #EXTINF without a
// usable URI before the next #EXTINF is dropped.
func Parse(r io.Reader) (m3u.Playlist, error) {
	var (
		playlist m3u.Playlist
		current  *m3u.Track
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		switch {
		case line == "":
		case strings.HasPrefix(line, extinf):
			current = parseExtinf(line)
		case current == nil:
		case strings.HasPrefix(line, extgrp):
			if tagValue(current.Tags, "group-title") == "" {
				current.Tags = append(current.Tags, m3u.Tag{Name: "group-title", Value: strings.TrimSpace(line[len(extgrp):])})
			}
		case strings.HasPrefix(line, extXKey):
			current.Tags = append(current.Tags, m3u.Tag{Name: TagKey, Value: line[len(extXKey):]})
		case strings.HasPrefix(line, kodiProp):
			name, value, _ := strings.Cut(line[len(kodiProp):], "=")
			current.Tags = append(current.Tags, m3u.Tag{Name: TagKodiPrefix + strings.TrimSpace(name), Value: strings.TrimSpace(value)})
		case strings.HasPrefix(line, "#"):
		default:
			uri := escapeReplacer.Replace(line)
			if !isStreamURI(uri) {
				continue
			}
			current.URI = uri
			playlist.Tracks = append(playlist.Tracks, *current)
			current = nil
		}
	}
	if err := scanner.Err(); err != nil {
		return m3u.Playlist{}, fmt.Errorf("failed to read playlist: %w", err)
	}
	return playlist, nil
}

func parseExtinf(line string) *m3u.Track {
	track := &m3u.Track{Length: -1}

	info := strings.TrimPrefix(line[len(extinf):], ":")
	if comma := strings.LastIndex(info, ","); comma >= 0 {
		track.Name = strings.TrimSpace(info[comma+1:])
		info = info[:comma]
	}

	head, _, _ := strings.Cut(strings.TrimSpace(info), " ")
	if length, err := strconv.Atoi(head); err == nil {
		track.Length = length
	}

	for _, match := range attributePattern.FindAllStringSubmatch(info, -1) {
		track.Tags = append(track.Tags, m3u.Tag{Name: match[1], Value: match[2]})
	}
	return track
}

func isStreamURI(value string) bool {
	switch {
	case schemePattern.MatchString(value):
		return true
	case strings.HasPrefix(value, "/"), strings.HasPrefix(value, "./"), strings.HasPrefix(value, "../"):
		return true
	case drivePattern.MatchString(value), strings.Contains(value, "/"):
		return true
	default:
		return mediaPattern.MatchString(value)
	}
}

func tagValue(tags []m3u.Tag, name string) string {
	for _, tag := range tags {
		if strings.EqualFold(tag.Name, name) {
			return tag.Value
		}
	}
	return ""
}
