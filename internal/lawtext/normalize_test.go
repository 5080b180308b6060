package lawtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "only blank lines",
			in:   "\n  \n\t\n",
			want: "",
		},
		{
			name: "wrapped prose merges with single spaces",
			in:   "이 규정은 회사의\n  리스크관리에 필요한\n사항을 정한다.",
			want: "이 규정은 회사의 리스크관리에 필요한 사항을 정한다.",
		},
		{
			name: "circled numeral starts a paragraph",
			in:   "① 회사는 위험한도를 정한다.\n② 위원회는 이를 승인한다.",
			want: "① 회사는 위험한도를 정한다.\n② 위원회는 이를 승인한다.",
		},
		{
			name: "decimal and ordinal items start paragraphs",
			in:   "다음 각 호의 사항\n1. 시장위험\n가. 금리위험 및\n환율위험\n2. 신용위험",
			want: "다음 각 호의 사항\n1. 시장위험\n가. 금리위험 및 환율위험\n2. 신용위험",
		},
		{
			name: "trailing hyphen joins without space",
			in:   "Value-at-Ri-\nsk 한도를 설정한다.",
			want: "Value-at-Risk 한도를 설정한다.",
		},
		{
			name: "ordinal without period is prose",
			in:   "위원회는\n가 결정한 사항을",
			want: "위원회는 가 결정한 사항을",
		},
		{
			name: "decimal without trailing space is prose",
			in:   "비율은\n10.5% 이상으로 한다.",
			want: "비율은 10.5% 이상으로 한다.",
		},
		{
			name: "runs of spaces and tabs collapse",
			in:   "순자본비율은   100%\t\t이상",
			want: "순자본비율은 100% 이상",
		},
		{
			name: "CRLF line endings",
			in:   "① 첫째\r\n② 둘째",
			want: "① 첫째\n② 둘째",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

// The blank-line rule is shared by the PDF and API paths: a blank line after
// content forces a new paragraph, repeated blanks never stack, and blanks
// before any content are ignored.
func TestNormalize_BlankLinePolicy(t *testing.T) {
	in := "\n\n첫 문단의 내용은\n\n\n둘째 문단으로\n이어진다."

	assert.Equal(t, "첫 문단의 내용은\n둘째 문단으로 이어진다.", Normalize(in))
}

func TestNormalize_BlankLineBeforeMarkerDoesNotDoubleBreak(t *testing.T) {
	in := "본문\n\n① 항목"

	assert.Equal(t, "본문\n① 항목", Normalize(in))
}

func TestNormalizeWith_CustomMarkers(t *testing.T) {
	markers := NewMarkerSet(`^\(\d+\)`)

	got := NormalizeWith(markers, "전문\n(1) 첫째\n① 둘째")

	assert.Equal(t, "전문\n(1) 첫째 ① 둘째", got)
}

func TestMarkerSet_StartsParagraph(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"① 내용", true},
		{"⑮ 내용", true},
		{"⑯ 내용", false},
		{"1. 내용", true},
		{"12. 내용", true},
		{"1.내용", false},
		{"가. 내용", true},
		{"하. 내용", true},
		{"거. 내용", false},
		{"  나. 들여쓰기", true},
		{"일반 문장", false},
	}

	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			assert.Equal(t, tc.want, DefaultMarkers.StartsParagraph(tc.line))
		})
	}
}
