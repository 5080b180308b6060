package lawtext

import (
	"strings"
	"unicode/utf8"
)

// DefaultMinBodyLength is the shortest article body, in characters, that is
// not treated as a table-of-contents line.
const DefaultMinBodyLength = 30

// Segmenter splits a paginated text stream into articles.
type Segmenter struct {
	Markers       *MarkerSet
	MinBodyLength int
}

// NewSegmenter returns a Segmenter using DefaultMarkers.
func NewSegmenter() *Segmenter {
	return &Segmenter{Markers: DefaultMarkers, MinBodyLength: DefaultMinBodyLength}
}

// Segment splits pages with the default Segmenter.
func Segment(pages []Page) []Article {
	return NewSegmenter().Segment(pages)
}

type articleDraft struct {
	number string
	title  string
	page   int
	body   *paragraphBuilder
}

func (d *articleDraft) finish() Article {
	return Article{
		Number: d.number,
		Title:  d.title,
		Text:   d.body.String(),
		Page:   d.page,
	}
}

// Segment walks the lines of all pages in order. A line starting with an
// article number ("제15조", "제15조의2") opens a new article; following lines
// are folded into its paragraphs. Lines before the first article are
// dropped, as are table-of-contents entries and empty candidates.
func (s *Segmenter) Segment(pages []Page) []Article {
	markers := s.Markers
	if markers == nil {
		markers = DefaultMarkers
	}

	var (
		articles []Article
		current  *articleDraft
	)
	flush := func() {
		if current == nil {
			return
		}
		articles = append(articles, current.finish())
		current = nil
	}

	for _, page := range pages {
		for _, line := range splitLines(page.Text) {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				if current != nil {
					current.body.Break()
				}
				continue
			}

			if raw := MatchArticleNumber(trimmed); raw != "" {
				flush()
				current = &articleDraft{
					number: NormalizeArticleNumber(raw),
					title:  articleTitle(trimmed),
					page:   page.Number,
					body:   newParagraphBuilder(markers),
				}
				current.body.Raw(trimmed)
				current.body.Break()
				continue
			}

			if current != nil {
				current.body.Line(trimmed)
			}
		}
	}
	flush()

	kept := articles[:0]
	for _, a := range articles {
		if a.Text == "" || s.IsTableOfContents(a) {
			continue
		}
		kept = append(kept, a)
	}
	return kept
}

// IsTableOfContents reports whether a looks like a table-of-contents line
// rather than a real article: it carries a dotted leader, or its body is
// shorter than MinBodyLength characters.
func (s *Segmenter) IsTableOfContents(a Article) bool {
	if tocLeaderPattern.MatchString(a.Text) {
		return true
	}
	minLen := s.MinBodyLength
	if minLen <= 0 {
		minLen = DefaultMinBodyLength
	}
	return utf8.RuneCountInString(articleBody(a.Text)) < minLen
}
