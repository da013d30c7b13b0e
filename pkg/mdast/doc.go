// Package mdast is the lossless document model shared by the mdxlint parser,
// rule engine and reporters.
//
// A FileSnapshot owns the raw bytes, a line index and a token stream that
// classifies every byte. Nodes form a tree over that stream: each node points
// at the first and last token it spans, so positions are always derived from
// the source rather than stored twice. MDX component tags are modelled as
// NodeElement nodes whose children are the blocks (or further elements)
// written between the opening and closing tag.
package mdast
