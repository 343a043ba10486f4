package domain

import (
	"regexp"
	"strings"
)

// trackLinkMarker is the substring every Spotify track link contains.
const trackLinkMarker = "open.spotify.com/track/"

var trackLinkPattern = regexp.MustCompile(
	`https?://open\.spotify\.com/track/([A-Za-z0-9]+)(\?si=[A-Za-z0-9]+)?`,
)

// TrackRef is an opaque Spotify track identifier.
type TrackRef string

// String returns the raw track identifier.
func (r TrackRef) String() string {
	return string(r)
}

// TrackLinkMatch is the result of scanning message content for a track link.
type TrackLinkMatch struct {
	Found     bool
	Malformed bool // marker present but no well-formed link
	Track     TrackRef
}

// FindTrackLink returns the first Spotify track link in content.
// Only the first link is used when several are present.
func FindTrackLink(content string) *TrackLinkMatch {
	if !strings.Contains(content, trackLinkMarker) {
		return &TrackLinkMatch{}
	}

	groups := trackLinkPattern.FindStringSubmatch(content)
	if groups == nil {
		return &TrackLinkMatch{Malformed: true}
	}

	return &TrackLinkMatch{
		Found: true,
		Track: TrackRef(groups[1]),
	}
}
