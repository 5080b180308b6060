package lawtext

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	addendumPattern = regexp.MustCompile(`부\s*칙`)

	// Tried in order; the first pattern that matches anywhere wins.
	enactedPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d{4})\s*년\s*(\d{1,2})\s*월\s*(\d{1,2})\s*일\s*(?:부터\s*)?시행`),
		regexp.MustCompile(`시행일?\s*[：:\s]\s*(\d{4})[.\s]\s*(\d{1,2})[.\s]\s*(\d{1,2})`),
		regexp.MustCompile(`(\d{4})[.]\s*(\d{1,2})[.]\s*(\d{1,2})[.]?\s*시행`),
	}

	compactDatePattern = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})$`)
	looseDatePattern   = regexp.MustCompile(`^(\d{4})\s*[.\-/년]\s*(\d{1,2})\s*[.\-/월]\s*(\d{1,2})\s*[.일]?$`)
)

// ExtractEnactedDate looks for an enforcement-date announcement such as
// "2024년 3월 15일부터 시행" or "시행일: 2023.11.1" and returns it as
// YYYY-MM-DD. Text from the first addendum (부칙) heading onward is searched
// before the whole text.
func ExtractEnactedDate(text string) (string, bool) {
	window := text
	if loc := addendumPattern.FindStringIndex(text); loc != nil {
		window = text[loc[0]:]
	}

	for _, p := range enactedPatterns {
		m := p.FindStringSubmatch(window)
		if m == nil {
			m = p.FindStringSubmatch(text)
		}
		if m != nil {
			return formatDate(m[1], m[2], m[3]), true
		}
	}
	return "", false
}

// NormalizeDate converts the date spellings used by the law information API
// ("20240315", "2024.3.15", "2024-03-15") to YYYY-MM-DD. Unrecognised values
// are returned trimmed but otherwise unchanged.
func NormalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if m := compactDatePattern.FindStringSubmatch(raw); m != nil {
		return formatDate(m[1], m[2], m[3])
	}
	if m := looseDatePattern.FindStringSubmatch(raw); m != nil {
		return formatDate(m[1], m[2], m[3])
	}
	return raw
}

func formatDate(year, month, day string) string {
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	return fmt.Sprintf("%s-%02d-%02d", year, m, d)
}
