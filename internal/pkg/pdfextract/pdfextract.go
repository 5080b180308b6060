package pdfextract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"sentinel-ds/internal/lawtext"
)

// ExtractionError reports that a file could not be turned into page text:
// it is corrupt, encrypted, not a PDF, or decoding ran out of time.
type ExtractionError struct {
	Page int
	Err  error
}

func (e *ExtractionError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("extract pdf page %d failed: %v", e.Page, e.Err)
	}
	return fmt.Sprintf("extract pdf failed: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

var errEmptyInput = errors.New("empty input")

// Extractor reads PDF bytes page by page.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// ExtractPages returns the plain text of every page, numbered from 1. Pages
// without a content stream yield an empty Text. Every failure, including a
// panic inside the decoder, is returned as *ExtractionError.
func (e *Extractor) ExtractPages(ctx context.Context, r io.Reader) ([]lawtext.Page, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, &ExtractionError{Err: err}
	}
	return e.ExtractBytes(ctx, b)
}

// ExtractBytes is ExtractPages over an in-memory file.
func (e *Extractor) ExtractBytes(ctx context.Context, b []byte) (pages []lawtext.Page, err error) {
	if len(b) == 0 {
		return nil, &ExtractionError{Err: errEmptyInput}
	}

	current := 0
	defer func() {
		if rec := recover(); rec != nil {
			pages = nil
			err = &ExtractionError{Page: current, Err: fmt.Errorf("decoder panic: %v", rec)}
		}
	}()

	pdfReader, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, &ExtractionError{Err: err}
	}

	total := pdfReader.NumPage()
	pages = make([]lawtext.Page, 0, total)
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, &ExtractionError{Page: i, Err: err}
		}
		current = i
		p := pdfReader.Page(i)
		if p.V.IsNull() {
			pages = append(pages, lawtext.Page{Number: i})
			continue
		}
		pages = append(pages, lawtext.Page{Number: i, Text: pageText(p.Content().Text)})
	}
	return pages, nil
}

// ExtractText reads the whole file and joins its pages with newlines.
func ExtractText(ctx context.Context, r io.Reader) (string, error) {
	pages, err := New().ExtractPages(ctx, r)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		parts = append(parts, p.Text)
	}
	return strings.Join(parts, "\n"), nil
}

type textLine struct {
	y      float64
	glyphs []pdf.Text
}

// pageText rebuilds the lines of a page from positioned glyphs. Glyphs whose
// baselines are within half a font size belong to one line; lines run top to
// bottom. Within a line, glyphs keep content-stream order unless every glyph
// has a known width, in which case they are ordered by X and a visible gap
// becomes a space.
func pageText(glyphs []pdf.Text) string {
	var lines []*textLine
	for _, g := range glyphs {
		if g.S == "" {
			continue
		}
		var line *textLine
		for i := len(lines) - 1; i >= 0; i-- {
			if math.Abs(lines[i].y-g.Y) <= lineTolerance(g.FontSize) {
				line = lines[i]
				break
			}
		}
		if line == nil {
			line = &textLine{y: g.Y}
			lines = append(lines, line)
		}
		line.glyphs = append(line.glyphs, g)
	}
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].y > lines[j].y })

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, line.String())
	}
	return strings.Join(out, "\n")
}

func lineTolerance(fontSize float64) float64 {
	return math.Max(math.Abs(fontSize)/2, 1)
}

func (l *textLine) String() string {
	measured := true
	for _, g := range l.glyphs {
		if g.W <= 0 {
			measured = false
			break
		}
	}
	if measured {
		sort.SliceStable(l.glyphs, func(i, j int) bool { return l.glyphs[i].X < l.glyphs[j].X })
	}

	var b strings.Builder
	for i, g := range l.glyphs {
		if measured && i > 0 {
			prev := l.glyphs[i-1]
			gap := g.X - (prev.X + prev.W)
			if gap > math.Abs(g.FontSize)/4 && !strings.HasSuffix(prev.S, " ") && !strings.HasPrefix(g.S, " ") {
				b.WriteByte(' ')
			}
		}
		b.WriteString(g.S)
	}
	return strings.TrimRight(b.String(), " ")
}
