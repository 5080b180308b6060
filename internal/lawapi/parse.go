package lawapi

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"

	"sentinel-ds/internal/lawtext"
)

var errNoRootElement = errors.New("no root element")

// Checked in order; the first non-empty value is the effective date.
var dateElements = []string{"시행일", "시행일자", "공포일", "공포일자"}

// ParseResponse reads a law document response. Every element named 조문 or
// 조문단위 with a 조문내용 child yields one article; empty bodies are skipped.
func ParseResponse(r io.Reader) (*Result, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	root := rootElement(doc)
	if root == nil {
		return nil, &ParseError{Err: errNoRootElement}
	}

	result := &Result{EnactedDate: effectiveDate(root)}
	walk(root, func(n *xmlquery.Node) {
		if n.Data != "조문" && n.Data != "조문단위" {
			return
		}
		body := child(n, "조문내용")
		if body == nil {
			return
		}
		text := lawtext.Normalize(body.InnerText())
		if text == "" {
			return
		}
		number := articleNumber(childText(n, "조문번호"), childText(n, "조문가지번호"))
		result.Articles = append(result.Articles, lawtext.Article{
			Number: number,
			Title:  strings.TrimSpace(childText(n, "조문제목")),
			Text:   text,
		})
	})
	return result, nil
}

func effectiveDate(root *xmlquery.Node) string {
	for _, name := range dateElements {
		var found string
		walk(root, func(n *xmlquery.Node) {
			if found != "" || n.Data != name {
				return
			}
			found = strings.TrimSpace(n.InnerText())
		})
		if found != "" {
			return lawtext.NormalizeDate(found)
		}
	}
	return ""
}

// articleNumber renders the service's numeric fields as "제N조" or "제N조의M".
// Values that already carry the 제/조 spelling are only stripped of spaces.
func articleNumber(number, branch string) string {
	number = lawtext.NormalizeArticleNumber(number)
	branch = lawtext.NormalizeArticleNumber(branch)
	if number == "" {
		return ""
	}
	if isDigits(number) {
		n, _ := strconv.Atoi(number)
		number = fmt.Sprintf("제%d조", n)
	}
	if isDigits(branch) && !strings.Contains(number, "의") {
		if b, _ := strconv.Atoi(branch); b > 0 {
			number += fmt.Sprintf("의%d", b)
		}
	}
	return number
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func rootElement(doc *xmlquery.Node) *xmlquery.Node {
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode {
			return n
		}
	}
	return nil
}

// walk visits n and its element descendants in document order.
func walk(n *xmlquery.Node, fn func(*xmlquery.Node)) {
	if n.Type == xmlquery.ElementNode {
		fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func child(n *xmlquery.Node, name string) *xmlquery.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == name {
			return c
		}
	}
	return nil
}

func childText(n *xmlquery.Node, name string) string {
	c := child(n, name)
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.InnerText())
}
