package mdx

import (
	"sort"

	"github.com/yaklabco/mdxlint/pkg/mdast"
)

// findTokenAtOffset returns the index of the token containing offset, or the
// first token after it. It returns -1 when offset is past the last token.
func findTokenAtOffset(tokens []mdast.Token, offset int) int {
	if len(tokens) == 0 || offset < 0 {
		return -1
	}

	idx := sort.Search(len(tokens), func(i int) bool {
		return tokens[i].EndOffset > offset
	})
	if idx >= len(tokens) {
		return -1
	}

	return idx
}

// findLastTokenAtOffset returns the index of the last token that starts
// before end.
func findLastTokenAtOffset(tokens []mdast.Token, end int) int {
	if len(tokens) == 0 || end <= 0 {
		return -1
	}

	idx := sort.Search(len(tokens), func(i int) bool {
		return tokens[i].StartOffset >= end
	})

	return idx - 1
}
