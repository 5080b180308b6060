// Package lawtext turns line-wrapped Korean legal prose into article records.
//
// The same paragraph rules drive both ingestion paths: text segmented out of
// PDF pages and article bodies delivered by the law information API.
package lawtext

import (
	"regexp"
	"strings"
)

var horizontalRunPattern = regexp.MustCompile(`[ \t]{2,}`)

// paragraphBuilder accumulates trimmed lines into newline-separated
// paragraphs. A forced break never produces two consecutive newlines.
type paragraphBuilder struct {
	markers *MarkerSet
	buf     strings.Builder
	last    byte
	empty   bool
}

func newParagraphBuilder(markers *MarkerSet) *paragraphBuilder {
	if markers == nil {
		markers = DefaultMarkers
	}
	return &paragraphBuilder{markers: markers, empty: true}
}

// Break records a forced paragraph break (a blank source line).
func (b *paragraphBuilder) Break() {
	if b.empty || b.last == '\n' {
		return
	}
	b.write("\n")
}

// Line appends one trimmed, non-empty source line.
func (b *paragraphBuilder) Line(line string) {
	switch {
	case b.empty || b.last == '\n':
		b.write(line)
	case b.markers.StartsParagraph(line):
		b.write("\n" + line)
	case b.last == '-':
		// drop the hyphen of a word wrapped across lines
		s := b.buf.String()
		b.buf.Reset()
		b.buf.WriteString(s[:len(s)-1])
		b.write(line)
	default:
		b.write(" " + line)
	}
}

// Raw appends s verbatim (used to seed an article with its heading line).
func (b *paragraphBuilder) Raw(s string) {
	if s == "" {
		return
	}
	b.write(s)
}

func (b *paragraphBuilder) write(s string) {
	b.buf.WriteString(s)
	b.last = s[len(s)-1]
	b.empty = false
}

func (b *paragraphBuilder) String() string {
	out := horizontalRunPattern.ReplaceAllString(b.buf.String(), " ")
	return strings.TrimSpace(out)
}

// Normalize reflows raw legal text so that line breaks only separate
// paragraphs. Lines opening with a paragraph marker start a new line, other
// lines are joined with a single space, and a trailing hyphen is removed
// when the word continues on the next line. A blank line forces the next
// line onto a new paragraph; repeated blank lines collapse into one break.
func Normalize(text string) string {
	return NormalizeWith(DefaultMarkers, text)
}

// NormalizeWith is Normalize with a custom marker table.
func NormalizeWith(markers *MarkerSet, text string) string {
	b := newParagraphBuilder(markers)
	for _, line := range splitLines(text) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			b.Break()
			continue
		}
		b.Line(trimmed)
	}
	return b.String()
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}
