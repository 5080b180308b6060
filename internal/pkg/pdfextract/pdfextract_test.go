package pdfextract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentinel-ds/internal/lawtext"
)

var regulationPages = [][]string{
	{
		"리스크관리규정",
		"제1조(목적) 이 규정은 회사의 리스크관리에 필요한 기본적인 사항을 정함을 목적으로 한다.",
		"제2조(적용범위) ① 이 규정은 회사의 모든 임직원과 업무에 적용한다.",
	},
	{
		"② 제1항에도 불구하고 리스크관리위원회가 따로 정하는",
		"경우에는 그에 따른다.",
		"부칙 이 규정은 2024년 3월 15일부터 시행한다.",
	},
}

func TestExtractPages_EmptyInput(t *testing.T) {
	_, err := New().ExtractPages(context.Background(), bytes.NewReader(nil))

	var extractErr *ExtractionError
	require.True(t, errors.As(err, &extractErr))
	assert.ErrorIs(t, err, errEmptyInput)
}

func TestExtractPages_NotAPDF(t *testing.T) {
	_, err := New().ExtractPages(context.Background(), strings.NewReader("이것은 PDF 파일이 아니다"))

	var extractErr *ExtractionError
	require.True(t, errors.As(err, &extractErr))
	assert.Contains(t, err.Error(), "extract pdf failed")
}

func TestExtractPages_TruncatedPDF(t *testing.T) {
	data := []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n%%EOF")

	_, err := New().ExtractPages(context.Background(), bytes.NewReader(data))

	var extractErr *ExtractionError
	assert.True(t, errors.As(err, &extractErr))
}

func TestExtractionError_Message(t *testing.T) {
	cause := errors.New("boom")

	assert.Equal(t, "extract pdf page 3 failed: boom", (&ExtractionError{Page: 3, Err: cause}).Error())
	assert.Equal(t, "extract pdf failed: boom", (&ExtractionError{Err: cause}).Error())
	assert.ErrorIs(t, &ExtractionError{Err: cause}, cause)
}

func TestExtractPages_LinesFromTextPositioning(t *testing.T) {
	pages, err := New().ExtractPages(context.Background(), bytes.NewReader(buildPDF(t, regulationPages)))
	require.NoError(t, err)

	require.Len(t, pages, 2)
	assert.Equal(t, 1, pages[0].Number)
	assert.Equal(t, 2, pages[1].Number)
	assert.Equal(t, strings.Join(regulationPages[0], "\n"), pages[0].Text)
	assert.Equal(t, strings.Join(regulationPages[1], "\n"), pages[1].Text)
}

func TestExtractPages_FeedsSegmenter(t *testing.T) {
	pages, err := New().ExtractPages(context.Background(), bytes.NewReader(buildPDF(t, regulationPages)))
	require.NoError(t, err)

	articles := lawtext.Segment(pages)

	require.Len(t, articles, 2)
	assert.Equal(t, "제1조", articles[0].Number)
	assert.Equal(t, "목적", articles[0].Title)
	assert.Equal(t, 1, articles[0].Page)

	assert.Equal(t, "제2조", articles[1].Number)
	assert.Equal(t, "적용범위", articles[1].Title)
	assert.Equal(t, 1, articles[1].Page)
	assert.True(t, strings.HasPrefix(articles[1].Text,
		"제2조(적용범위) ① 이 규정은 회사의 모든 임직원과 업무에 적용한다.\n② 제1항에도 불구하고 리스크관리위원회가 따로 정하는 경우에는 그에 따른다."))
}

func TestExtractText_JoinsPages(t *testing.T) {
	text, err := ExtractText(context.Background(), bytes.NewReader(buildPDF(t, regulationPages)))
	require.NoError(t, err)

	var lines []string
	for _, page := range regulationPages {
		lines = append(lines, page...)
	}
	assert.Equal(t, strings.Join(lines, "\n"), text)

	date, ok := lawtext.ExtractEnactedDate(text)
	require.True(t, ok)
	assert.Equal(t, "2024-03-15", date)
}

// buildPDF writes an uncompressed PDF with one page per entry. Each line is
// placed with its own Td, the way typesetters lay out body text, and the
// font maps UTF-16 codes to Unicode through a ToUnicode CMap.
func buildPDF(t *testing.T, pages [][]string) []byte {
	t.Helper()

	runes := map[rune]bool{}
	for _, lines := range pages {
		for _, line := range lines {
			for _, r := range line {
				runes[r] = true
			}
		}
	}
	codes := make([]string, 0, len(runes))
	for r := range runes {
		codes = append(codes, utf16Hex(string(r)))
	}
	sort.Strings(codes)

	var cmap strings.Builder
	cmap.WriteString("begincmap\n1 begincodespacerange <0000> <FFFF> endcodespacerange\n")
	fmt.Fprintf(&cmap, "%d beginbfchar\n", len(codes))
	for _, c := range codes {
		fmt.Fprintf(&cmap, "<%s> <%s>\n", c, c)
	}
	cmap.WriteString("endbfchar\nendcmap\n")

	// 1 catalog, 2 page tree, then the pages, the font, its CMap and one
	// content stream per page.
	fontObj := 3 + len(pages)
	firstContent := fontObj + 2
	kids := make([]string, 0, len(pages))
	for i := range pages {
		kids = append(kids, fmt.Sprintf("%d 0 R", 3+i))
	}

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
	}
	for i := range pages {
		objects = append(objects, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>",
			fontObj, firstContent+i))
	}
	objects = append(objects,
		fmt.Sprintf("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /ToUnicode %d 0 R >>", fontObj+1),
		pdfStream(cmap.String()),
	)
	for _, lines := range pages {
		var content strings.Builder
		content.WriteString("BT\n/F1 12 Tf\n72 720 Td\n")
		for i, line := range lines {
			if i > 0 {
				content.WriteString("0 -14 Td\n")
			}
			fmt.Fprintf(&content, "<%s> Tj\n", utf16Hex(line))
		}
		content.WriteString("ET\n")
		objects = append(objects, pdfStream(content.String()))
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func pdfStream(data string) string {
	return fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", len(data), data)
}

func utf16Hex(s string) string {
	var b strings.Builder
	for _, u := range utf16.Encode([]rune(s)) {
		fmt.Fprintf(&b, "%04X", u)
	}
	return b.String()
}
