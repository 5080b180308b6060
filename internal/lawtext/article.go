package lawtext

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Page is the plain text of one source page, numbered from 1.
type Page struct {
	Number int
	Text   string
}

// Article is one numbered clause recovered from a regulatory text.
type Article struct {
	Number string `json:"number"`
	Title  string `json:"title,omitempty"`
	Text   string `json:"text"`
	// Page is the 1-indexed page the article starts on; zero when the
	// source has no pagination.
	Page int `json:"page,omitempty"`
}

// sp also admits the no-break and ideographic spaces PDF extraction emits.
const (
	sp                = `[\s\x{00A0}\x{3000}]*`
	articleNumberExpr = `^제` + sp + `\d+` + sp + `조(?:` + sp + `의` + sp + `\d+)?`
)

var (
	articleNumberPattern  = regexp.MustCompile(articleNumberExpr)
	articleTitlePattern   = regexp.MustCompile(articleNumberExpr + sp + `[（(]([^）)\n]+)[）)]`)
	articleHeadingPattern = regexp.MustCompile(articleNumberExpr + sp + `(?:[（(][^）)\n]*[）)])?`)
	tocLeaderPattern      = regexp.MustCompile(`[.·‥…]{3,}|\.{2,}\s*\d+\s*$`)
)

// MatchArticleNumber returns the raw article number at the start of line,
// or "" when the line does not open an article. The number must be followed
// by whitespace, an opening parenthesis or the end of the line, so that
// references such as "제3조에 따른" inside a body are not taken as headings.
func MatchArticleNumber(line string) string {
	loc := articleNumberPattern.FindStringIndex(line)
	if loc == nil {
		return ""
	}
	rest := line[loc[1]:]
	if rest != "" {
		r, _ := utf8.DecodeRuneInString(rest)
		if !unicode.IsSpace(r) && r != '(' && r != '（' {
			return ""
		}
	}
	return line[loc[0]:loc[1]]
}

// NormalizeArticleNumber strips every whitespace character, so "제 15 조의 2"
// becomes "제15조의2".
func NormalizeArticleNumber(raw string) string {
	return strings.Join(strings.Fields(raw), "")
}

// articleTitle returns the parenthesised title right after the number.
func articleTitle(line string) string {
	m := articleTitlePattern.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// articleBody returns the article text without its heading, flattened to a
// single line.
func articleBody(text string) string {
	loc := articleHeadingPattern.FindStringIndex(text)
	if loc != nil {
		text = text[loc[1]:]
	}
	return strings.TrimSpace(strings.Join(strings.Fields(text), " "))
}
