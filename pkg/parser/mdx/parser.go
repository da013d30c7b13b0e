// Package mdx turns MDX source into an mdast tree.
//
// Component tags that start a line become element nodes and nest by their
// opening and closing tags. Everything between tags is ordinary Markdown and
// is parsed with goldmark, one run at a time.
package mdx

import (
	"context"
	"errors"
	"fmt"

	"github.com/yuin/goldmark"

	"github.com/yaklabco/mdxlint/pkg/mdast"
)

// Markdown flavors for the text between component tags.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Parser implements lint.Parser for MDX files.
type Parser struct {
	flavor string
	md     goldmark.Markdown
}

// New returns a parser for flavor. Unknown flavors fall back to GFM, which
// is what MDX itself enables in most documentation toolchains.
func New(flavor string) *Parser {
	f := flavorOrDefault(flavor)
	return &Parser{
		flavor: f,
		md:     newGoldmarkInstance(f),
	}
}

// Flavor returns the Markdown flavor in use.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Parse builds a snapshot of content: line index, token stream and tree.
// Unbalanced component tags produce a *SyntaxError.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	snapshot := mdast.NewFileSnapshot(path, copyContent(content))

	if err := newTreeBuilder(ctx, snapshot, p.md).build(); err != nil {
		return nil, err
	}

	if !mdast.ValidateTokens(snapshot.Tokens, len(snapshot.Content)) {
		return nil, errors.New("invalid token stream: tokens do not cover content")
	}

	return snapshot, nil
}

func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorGFM
	}
}

func copyContent(content []byte) []byte {
	if content == nil {
		return nil
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp
}
