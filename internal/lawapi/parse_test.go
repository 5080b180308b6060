package lawapi

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse_EmptyBody(t *testing.T) {
	_, err := ParseResponse(strings.NewReader(""))

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.ErrorIs(t, err, errNoRootElement)
}

func TestParseResponse_DatePrecedence(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		want string
	}{
		{"시행일 first", `<r><공포일>2020.1.2</공포일><시행일>2021.3.4</시행일></r>`, "2021-03-04"},
		{"시행일자 when 시행일 empty", `<r><시행일> </시행일><시행일자>20220701</시행일자></r>`, "2022-07-01"},
		{"공포일자 last", `<r><공포일자>2019-12-31</공포일자></r>`, "2019-12-31"},
		{"unrecognised kept", `<r><시행일>미정</시행일></r>`, "미정"},
		{"none", `<r/>`, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParseResponse(strings.NewReader(tc.xml))
			require.NoError(t, err)
			assert.Equal(t, tc.want, result.EnactedDate)
		})
	}
}

func TestParseResponse_BlankLinesInBody(t *testing.T) {
	xml := "<r><조문><조문번호>2</조문번호><조문내용>제2조(정의)\n\n\n이 법에서 사용하는\n용어는 다음과 같다.</조문내용></조문></r>"

	result, err := ParseResponse(strings.NewReader(xml))

	require.NoError(t, err)
	require.Len(t, result.Articles, 1)
	assert.Equal(t, "제2조(정의)\n이 법에서 사용하는 용어는 다음과 같다.", result.Articles[0].Text)
}

func TestArticleNumber(t *testing.T) {
	tests := []struct {
		number, branch, want string
	}{
		{"15", "", "제15조"},
		{"0015", "0", "제15조"},
		{"15", "2", "제15조의2"},
		{"제 15 조", "", "제15조"},
		{"제15조의2", "2", "제15조의2"},
		{"", "3", ""},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, articleNumber(tc.number, tc.branch), tc.number+"/"+tc.branch)
	}
}
