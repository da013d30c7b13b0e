package lint

import (
	"context"

	"github.com/yaklabco/mdxlint/pkg/mdast"
)

// Parser turns raw MDX into a FileSnapshot. It is declared here, where it is
// consumed; parser/mdx provides the implementation.
//
// A returned snapshot must have Path == path, Content equal to content, a
// token stream that passes mdast.ValidateTokens, a Document root, and every
// node's File set to the snapshot. On error no snapshot is returned.
type Parser interface {
	Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error)
}
