package lawtext

import (
	"regexp"
	"strings"
)

// Paragraph-start markers recognised inside an article body.
const (
	CircledNumeralMarker = `^[①②③④⑤⑥⑦⑧⑨⑩⑪⑫⑬⑭⑮]`
	DecimalItemMarker    = `^\d+\.\s`
	OrdinalItemMarker    = `^[가나다라마바사아자차카타파하]\.\s`
)

// MarkerSet decides whether a trimmed line opens a new paragraph.
type MarkerSet struct {
	patterns []*regexp.Regexp
}

// DefaultMarkers is the marker table used by Normalize and Segment.
var DefaultMarkers = NewMarkerSet(CircledNumeralMarker, DecimalItemMarker, OrdinalItemMarker)

// NewMarkerSet compiles the given patterns. It panics on an invalid pattern,
// so it is meant for package-level tables.
func NewMarkerSet(patterns ...string) *MarkerSet {
	set := &MarkerSet{patterns: make([]*regexp.Regexp, 0, len(patterns))}
	for _, p := range patterns {
		set.patterns = append(set.patterns, regexp.MustCompile(p))
	}
	return set
}

// StartsParagraph reports whether line begins with one of the markers.
func (m *MarkerSet) StartsParagraph(line string) bool {
	if m == nil {
		return false
	}
	line = strings.TrimSpace(line)
	for _, p := range m.patterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}
