package lawtext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegment_TwoPageDocument(t *testing.T) {
	pages := []Page{
		{Number: 1, Text: "리스크관리규정\n\n제1조(목적) 이 규정은 회사의 리스크관리에 필요한 기본적인 사항을 정함을 목적으로 한다."},
		{Number: 2, Text: "제2조(위험한도)\n① 회사는 위험유형별 한도를 설정하여\n운영하여야 한다.\n② 리스크관리위원회는 한도의 적정성을 매년 점검한다."},
	}

	articles := Segment(pages)

	require.Len(t, articles, 2)

	assert.Equal(t, "제1조", articles[0].Number)
	assert.Equal(t, "목적", articles[0].Title)
	assert.Equal(t, 1, articles[0].Page)
	assert.Equal(t, "제1조(목적) 이 규정은 회사의 리스크관리에 필요한 기본적인 사항을 정함을 목적으로 한다.", articles[0].Text)

	assert.Equal(t, "제2조", articles[1].Number)
	assert.Equal(t, "위험한도", articles[1].Title)
	assert.Equal(t, 2, articles[1].Page)
	assert.Equal(t,
		"제2조(위험한도)\n① 회사는 위험유형별 한도를 설정하여 운영하여야 한다.\n② 리스크관리위원회는 한도의 적정성을 매년 점검한다.",
		articles[1].Text)
}

func TestSegment_ParagraphOnHeadingLine(t *testing.T) {
	pages := []Page{
		{Number: 1, Text: "제1조(목적) 이 규정은 회사의 리스크관리에 관한 기본 원칙을 정하여 건전한 경영을 도모하기 위함이다."},
		{Number: 2, Text: "제2조(적용범위) ① 이 규정은 회사의 모든 임직원과 업무에 적용한다.\n② 제1항에도 불구하고 이사회가 따로 정하는 경우에는 그에 따른다."},
	}

	articles := Segment(pages)

	require.Len(t, articles, 2)
	assert.Equal(t, 1, articles[0].Page)
	assert.Equal(t, "제2조", articles[1].Number)
	assert.Equal(t, "적용범위", articles[1].Title)
	assert.Equal(t, 2, articles[1].Page)
	assert.Equal(t,
		"제2조(적용범위) ① 이 규정은 회사의 모든 임직원과 업무에 적용한다.\n② 제1항에도 불구하고 이사회가 따로 정하는 경우에는 그에 따른다.",
		articles[1].Text)

	paragraphs := strings.Split(articles[1].Text, "\n")
	require.Len(t, paragraphs, 2)
	assert.Contains(t, paragraphs[0], "① 이 규정은")
	assert.True(t, strings.HasPrefix(paragraphs[1], "②"))
}

func TestSegment_SpacedArticleNumber(t *testing.T) {
	pages := []Page{{Number: 3, Text: "제 15 조 (용어의 정의) 이 규정에서 사용하는 용어의 뜻은 관계 법령에서 정하는 바에 따른다."}}

	articles := Segment(pages)

	require.Len(t, articles, 1)
	assert.Equal(t, "제15조", articles[0].Number)
	assert.Equal(t, "용어의 정의", articles[0].Title)
	assert.Equal(t, 3, articles[0].Page)
}

func TestSegment_BranchArticleNumber(t *testing.T) {
	pages := []Page{{Number: 1, Text: "제15조의 2(특례) 제15조에도 불구하고 위원회가 인정하는 경우에는 한도를 초과하여 운영할 수 있다."}}

	articles := Segment(pages)

	require.Len(t, articles, 1)
	assert.Equal(t, "제15조의2", articles[0].Number)
	assert.Equal(t, "특례", articles[0].Title)
}

func TestSegment_SkipsTableOfContents(t *testing.T) {
	pages := []Page{
		{Number: 1, Text: "목 차\n제1조(목적) ........ 1\n제2조(정의) ..... 2\n제3조(적용범위)"},
		{Number: 2, Text: "제1조(목적) 이 규정은 회사의 리스크관리에 필요한 기본적인 사항을 정함을 목적으로 한다."},
	}

	articles := Segment(pages)

	require.Len(t, articles, 1)
	assert.Equal(t, "제1조", articles[0].Number)
	assert.Equal(t, 2, articles[0].Page)
}

func TestSegment_InlineReferenceIsNotHeading(t *testing.T) {
	pages := []Page{{Number: 1, Text: "제4조(한도관리) 회사는 위험한도를 관리하여야 한다.\n제3조에 따른 위원회는 한도 초과 시 즉시 보고를 받아야 한다."}}

	articles := Segment(pages)

	require.Len(t, articles, 1)
	assert.Equal(t, "제4조", articles[0].Number)
	assert.Contains(t, articles[0].Text, "제3조에 따른 위원회는")
}

func TestSegment_ArticleSpansPages(t *testing.T) {
	pages := []Page{
		{Number: 1, Text: "제7조(보고) 리스크관리책임자는 다음 각 호의 사항을\n"},
		{Number: 2, Text: "이사회에 보고하여야 한다.\n1. 위험한도 준수 현황\n2. 한도 초과 내역"},
	}

	articles := Segment(pages)

	require.Len(t, articles, 1)
	assert.Equal(t, 1, articles[0].Page)
	assert.Equal(t,
		"제7조(보고) 리스크관리책임자는 다음 각 호의 사항을\n이사회에 보고하여야 한다.\n1. 위험한도 준수 현황\n2. 한도 초과 내역",
		articles[0].Text)
}

func TestSegment_NoArticles(t *testing.T) {
	assert.Empty(t, Segment(nil))
	assert.Empty(t, Segment([]Page{{Number: 1, Text: "표지\n\n작성부서: 리스크관리팀"}}))
}

func TestSegmenter_MinBodyLength(t *testing.T) {
	pages := []Page{{Number: 1, Text: "제1조(목적) 짧은 본문이다."}}

	assert.Empty(t, NewSegmenter().Segment(pages))

	s := &Segmenter{MinBodyLength: 5}
	articles := s.Segment(pages)
	require.Len(t, articles, 1)
	assert.Equal(t, "제1조(목적) 짧은 본문이다.", articles[0].Text)
}

func TestMatchArticleNumber(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"제1조(목적)", "제1조"},
		{"제1조 목적", "제1조"},
		{"제12조", "제12조"},
		{"제 15 조 (정의)", "제 15 조"},
		{"제15조의2(특례)", "제15조의2"},
		{"제3조에 따른", ""},
		{"부칙 제1조", ""},
		{"제목", ""},
	}

	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			assert.Equal(t, tc.want, MatchArticleNumber(tc.line))
		})
	}
}

func TestNormalizeArticleNumber(t *testing.T) {
	assert.Equal(t, "제15조", NormalizeArticleNumber("제 15 조"))
	assert.Equal(t, "제15조의2", NormalizeArticleNumber("제 15 조의 2"))
	assert.Equal(t, "제1조", NormalizeArticleNumber("제1조"))
}
