package mdx

import (
	"bytes"
	"reflect"
	"slices"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/mdxlint/pkg/mdast"
)

// newGoldmarkInstance builds a goldmark instance for the Markdown runs
// between component tags. MDX has no indented code, and component content is
// routinely indented, so the indented code block parser is left out and
// paragraphs may start at any indentation.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	indentedCode := reflect.TypeOf(parser.NewCodeBlockParser())
	paragraph := reflect.TypeOf(parser.NewParagraphParser())

	var blocks []util.PrioritizedValue
	for _, pv := range parser.DefaultBlockParsers() {
		switch reflect.TypeOf(pv.Value) {
		case indentedCode:
			continue
		case paragraph:
			pv.Value = indentedParagraphParser{pv.Value.(parser.BlockParser)}
		}
		blocks = append(blocks, pv)
	}

	opts := []goldmark.Option{
		goldmark.WithParser(parser.NewParser(
			parser.WithBlockParsers(blocks...),
			parser.WithInlineParsers(parser.DefaultInlineParsers()...),
			parser.WithParagraphTransformers(parser.DefaultParagraphTransformers()...),
		)),
	}
	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}

	return goldmark.New(opts...)
}

// indentedParagraphParser opens paragraphs on lines indented by four or more
// columns. goldmark skips such lines for every parser that refuses them, and
// with indented code gone nothing else would claim them.
type indentedParagraphParser struct {
	parser.BlockParser
}

func (indentedParagraphParser) CanAcceptIndentedLine() bool { return true }

// dedentedRun is a Markdown run with the indentation its lines share
// removed, so content nested in indented components keeps its block
// structure. The first line continues the line of the preceding tag and is
// never stripped.
type dedentedRun struct {
	src []byte

	// starts holds the offset of each line in src and shifts the bytes
	// removed up to and including that line.
	starts []int
	shifts []int
}

func dedentRun(run []byte) dedentedRun {
	lines := bytes.SplitAfter(run, []byte("\n"))

	var common []byte
	found := false
	for _, line := range lines[1:] {
		if isBlank(line) {
			continue
		}
		indent := line[:len(line)-len(bytes.TrimLeft(line, " \t"))]
		if !found {
			common, found = indent, true
			continue
		}
		n := 0
		for n < len(common) && n < len(indent) && common[n] == indent[n] {
			n++
		}
		common = common[:n]
	}
	if len(common) == 0 {
		return dedentedRun{src: run}
	}

	d := dedentedRun{src: make([]byte, 0, len(run))}
	removed := 0
	for i, line := range lines {
		if i > 0 && bytes.HasPrefix(line, common) {
			line = line[len(common):]
			removed += len(common)
		}
		d.starts = append(d.starts, len(d.src))
		d.shifts = append(d.shifts, removed)
		d.src = append(d.src, line...)
	}
	return d
}

// original maps an offset in the dedented run back to the run as written.
func (d dedentedRun) original(offset int) int {
	if d.starts == nil {
		return offset
	}
	i, found := slices.BinarySearch(d.starts, offset)
	if !found {
		i--
	}
	return offset + d.shifts[max(i, 0)]
}

// originalEnd maps an exclusive end offset. An end at the start of a line
// belongs to the line before, so the next line's indentation is not pulled in.
func (d dedentedRun) originalEnd(offset int) int {
	if offset == 0 {
		return d.original(0)
	}
	return d.original(offset-1) + 1
}

// span is a half-open byte range in the whole file.
type span struct {
	start int
	end   int
}

// blockMapper converts the goldmark blocks of one Markdown run into mdast
// nodes. Offsets reported by goldmark are relative to the dedented run; run
// and base map them back into file coordinates.
type blockMapper struct {
	src   []byte // the dedented run only
	run   dedentedRun
	base  int
	spans map[*mdast.Node]span
}

func newBlockMapper(run []byte, base int, spans map[*mdast.Node]span) *blockMapper {
	d := dedentRun(run)
	return &blockMapper{src: d.src, run: d, base: base, spans: spans}
}

// mapBlocks appends the block children of gmParent to parent. cursor is the
// run-relative offset where the first child may start.
func (m *blockMapper) mapBlocks(gmParent ast.Node, parent *mdast.Node, cursor int) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		if child.Type() != ast.TypeBlock {
			continue
		}

		node := m.mapBlock(child)
		start, end := m.blockBounds(child, cursor)
		m.spans[node] = span{start: m.base + m.run.original(start), end: m.base + m.run.originalEnd(end)}
		if node.Kind == mdast.NodeCodeBlock && start < len(m.src) && m.src[start] == '~' {
			node.Block.CodeBlock.FenceChar = '~'
		}
		mdast.AppendChild(parent, node)

		m.mapBlocks(child, node, start)
		cursor = end
	}
}

func (m *blockMapper) mapBlock(gmNode ast.Node) *mdast.Node {
	switch gmn := gmNode.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return mdast.NewNode(mdast.NodeParagraph)

	case *ast.Heading:
		node := mdast.NewNode(mdast.NodeHeading)
		node.Block = &mdast.BlockAttrs{HeadingLevel: gmn.Level}
		return node

	case *ast.List:
		node := mdast.NewNode(mdast.NodeList)
		attrs := &mdast.ListAttrs{
			Ordered:     gmn.IsOrdered(),
			StartNumber: gmn.Start,
			Tight:       gmn.IsTight,
		}
		if !gmn.IsOrdered() {
			attrs.BulletMarker = string(gmn.Marker)
		}
		node.Block = &mdast.BlockAttrs{List: attrs}
		return node

	case *ast.ListItem:
		return mdast.NewNode(mdast.NodeListItem)

	case *ast.Blockquote:
		return mdast.NewNode(mdast.NodeBlockquote)

	case *ast.FencedCodeBlock:
		node := mdast.NewNode(mdast.NodeCodeBlock)
		attrs := &mdast.CodeBlockAttrs{FenceChar: '`'}
		if gmn.Info != nil {
			attrs.Info = string(gmn.Info.Segment.Value(m.src))
		}
		node.Block = &mdast.BlockAttrs{CodeBlock: attrs}
		return node

	case *ast.HTMLBlock:
		return mdast.NewNode(mdast.NodeHTMLBlock)

	case *ast.ThematicBreak:
		return mdast.NewNode(mdast.NodeThematicBreak)

	case *east.Table:
		return mdast.NewNode(mdast.NodeTable)

	default:
		return mdast.NewNode(mdast.NodeRaw)
	}
}

// blockBounds returns the run-relative range of a block. The start is the
// first non-blank byte of the line the block begins on, so markers such as
// '#', '-' and '>' are included.
func (m *blockMapper) blockBounds(gmNode ast.Node, cursor int) (int, int) {
	if fenced, ok := gmNode.(*ast.FencedCodeBlock); ok {
		return m.fenceBounds(fenced, cursor)
	}

	start, end, ok := contentRange(gmNode)
	if !ok {
		start = firstNonBlank(m.src, cursor)
		return start, lineEnd(m.src, start)
	}

	start = firstNonBlank(m.src, max(lineStart(m.src, start), cursor))
	return start, max(start, end)
}

// fenceBounds covers both fence lines, which goldmark leaves out of the
// block's content lines.
func (m *blockMapper) fenceBounds(fenced *ast.FencedCodeBlock, cursor int) (int, int) {
	start := firstNonBlank(m.src, cursor)
	if fenced.Info != nil {
		start = firstNonBlank(m.src, max(lineStart(m.src, fenced.Info.Segment.Start), cursor))
	}

	last := lineEnd(m.src, start)
	if lines := fenced.Lines(); lines.Len() > 0 {
		last = lines.At(lines.Len() - 1).Stop
		if last > 0 && m.src[last-1] == '\n' {
			last--
		}
	}

	// The closing fence, when present, is the next line.
	next := last
	if next < len(m.src) && m.src[next] == '\n' {
		next++
	}
	closing := firstNonBlank(m.src, next)
	if closing < len(m.src) && lineStart(m.src, closing) == next &&
		(m.src[closing] == '`' || m.src[closing] == '~') {
		return start, lineEnd(m.src, closing)
	}

	return start, last
}

// contentRange unions the line segments of a node and its descendants.
func contentRange(gmNode ast.Node) (int, int, bool) {
	start, end := -1, -1
	extend := func(s, e int) {
		if start < 0 || s < start {
			start = s
		}
		if e > end {
			end = e
		}
	}

	if gmNode.Type() == ast.TypeBlock {
		if lines := gmNode.Lines(); lines != nil && lines.Len() > 0 {
			extend(lines.At(0).Start, lines.At(lines.Len()-1).Stop)
		}
	}
	if html, ok := gmNode.(*ast.HTMLBlock); ok && html.HasClosure() {
		extend(html.ClosureLine.Start, html.ClosureLine.Stop)
	}

	for child := gmNode.FirstChild(); child != nil; child = child.NextSibling() {
		if child.Type() != ast.TypeBlock {
			continue
		}
		if s, e, ok := contentRange(child); ok {
			extend(s, e)
		}
	}

	return start, end, start >= 0
}

func lineStart(src []byte, offset int) int {
	if offset > len(src) {
		offset = len(src)
	}
	return bytes.LastIndexByte(src[:offset], '\n') + 1
}

func lineEnd(src []byte, offset int) int {
	if offset >= len(src) {
		return len(src)
	}
	idx := bytes.IndexByte(src[offset:], '\n')
	if idx < 0 {
		return len(src)
	}
	end := offset + idx
	if end > offset && src[end-1] == '\r' {
		end--
	}
	return end
}

func firstNonBlank(src []byte, offset int) int {
	for offset < len(src) {
		switch src[offset] {
		case ' ', '\t', '\n', '\r':
			offset++
		default:
			return offset
		}
	}
	return offset
}

// parseRun parses one Markdown run.
func parseRun(md goldmark.Markdown, src []byte) ast.Node {
	return md.Parser().Parse(text.NewReader(src), parser.WithContext(parser.NewContext()))
}
