package mdast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdxlint/pkg/mdast"
)

func TestBuildLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []mdast.LineInfo
	}{
		{name: "empty", content: "", want: []mdast.LineInfo{}},
		{
			name:    "no terminator",
			content: "<Steps>",
			want:    []mdast.LineInfo{{StartOffset: 0, NewlineStart: 7, EndOffset: 7}},
		},
		{
			name:    "LF",
			content: "a\nbc\n",
			want: []mdast.LineInfo{
				{StartOffset: 0, NewlineStart: 1, EndOffset: 2},
				{StartOffset: 2, NewlineStart: 4, EndOffset: 5},
				{StartOffset: 5, NewlineStart: 5, EndOffset: 5},
			},
		},
		{
			name:    "CRLF",
			content: "a\r\nb",
			want: []mdast.LineInfo{
				{StartOffset: 0, NewlineStart: 1, EndOffset: 3},
				{StartOffset: 3, NewlineStart: 4, EndOffset: 4},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, mdast.BuildLines([]byte(tt.content)))
		})
	}
}

func TestFileSnapshot_LineAt(t *testing.T) {
	t.Parallel()

	snap := mdast.NewFileSnapshot("doc.mdx", []byte("<Tabs>\n  <TabsBar>\n</Tabs>"))

	tests := []struct {
		offset   int
		wantLine int
		wantCol  int
	}{
		{offset: 0, wantLine: 1, wantCol: 1},
		{offset: 6, wantLine: 1, wantCol: 7},
		{offset: 7, wantLine: 2, wantCol: 1},
		{offset: 9, wantLine: 2, wantCol: 3},
		{offset: 19, wantLine: 3, wantCol: 1},
		{offset: 100, wantLine: 3, wantCol: 82},
		{offset: -1, wantLine: 0, wantCol: 0},
	}

	for _, tt := range tests {
		line, col := snap.LineAt(tt.offset)
		assert.Equal(t, tt.wantLine, line, "line for offset %d", tt.offset)
		assert.Equal(t, tt.wantCol, col, "column for offset %d", tt.offset)
	}
}

func TestFileSnapshot_OffsetAndLineContent(t *testing.T) {
	t.Parallel()

	snap := mdast.NewFileSnapshot("", []byte("one\r\ntwo\n"))

	offset, ok := snap.Offset(2, 2)
	assert.True(t, ok)
	assert.Equal(t, 6, offset)

	_, ok = snap.Offset(9, 1)
	assert.False(t, ok)

	assert.Equal(t, "one", string(snap.LineContent(1)))
	assert.Equal(t, "two", string(snap.LineContent(2)))
	assert.Empty(t, snap.LineContent(3))
	assert.Nil(t, snap.LineContent(4))
	assert.Equal(t, 3, snap.LineCount())
}
