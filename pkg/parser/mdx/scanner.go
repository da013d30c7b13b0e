package mdx

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"

	"github.com/yaklabco/mdxlint/pkg/mdast"
)

// openElement is a flow element whose closing tag has not been seen yet.
type openElement struct {
	node  *mdast.Node
	start int
}

// fence tracks an open fenced code block; tags inside it are not scanned.
type fence struct {
	char   byte
	length int
}

// treeBuilder scans one file. Component tags that start a line become
// element nodes; the Markdown between them is handed to goldmark.
type treeBuilder struct {
	ctx  context.Context
	snap *mdast.FileSnapshot
	md   goldmark.Markdown

	src    []byte
	tokens []mdast.Token
	spans  map[*mdast.Node]span

	stack []openElement

	// textStart is where the pending Markdown run begins.
	textStart int

	// lineHasText is set once anything other than whitespace or a flow tag
	// has been seen on the current line.
	lineHasText bool

	// inline counts open inline tags by name within the current run, so
	// their closing tags stay inline too.
	inline map[string]int

	fence *fence
}

func newTreeBuilder(ctx context.Context, snap *mdast.FileSnapshot, md goldmark.Markdown) *treeBuilder {
	return &treeBuilder{
		ctx:    ctx,
		snap:   snap,
		md:     md,
		src:    snap.Content,
		spans:  make(map[*mdast.Node]span),
		inline: make(map[string]int),
	}
}

func (b *treeBuilder) build() error {
	b.snap.Root = mdast.NewDocument()

	pos := 0
	atLineStart := true

	for pos < len(b.src) {
		if atLineStart {
			atLineStart = false
			b.lineHasText = false

			if next, ok := b.fenceLine(pos); ok {
				pos = next
				atLineStart = true
				continue
			}

			if len(b.stack) == 0 && isESMLine(b.src[pos:]) {
				next, err := b.esm(pos)
				if err != nil {
					return err
				}
				pos = next
				atLineStart = true
				continue
			}
		}

		switch b.src[pos] {
		case '\n':
			pos++
			atLineStart = true
		case ' ', '\t', '\r':
			pos++
		case '`':
			pos = skipCodeSpan(b.src, pos)
			b.lineHasText = true
		case '{':
			next, err := b.expression(pos)
			if err != nil {
				return err
			}
			pos = next
		case '<':
			next, err := b.tag(pos)
			if err != nil {
				return err
			}
			pos = next
		default:
			b.lineHasText = true
			pos++
		}
	}

	if err := b.flushText(len(b.src)); err != nil {
		return err
	}

	if len(b.stack) > 0 {
		open := b.stack[len(b.stack)-1]
		return b.syntaxError(open.start, "unclosed <%s>: expected </%s> before end of file",
			open.node.ElementName(), open.node.ElementName())
	}

	b.assignTokens()
	return nil
}

// parent is the node new children attach to.
func (b *treeBuilder) parent() *mdast.Node {
	if len(b.stack) == 0 {
		return b.snap.Root
	}
	return b.stack[len(b.stack)-1].node
}

func (b *treeBuilder) tag(pos int) (int, error) {
	if bytes.HasPrefix(b.src[pos:], []byte("<!--")) {
		b.lineHasText = true
		if idx := bytes.Index(b.src[pos+4:], []byte("-->")); idx >= 0 {
			return pos + 4 + idx + 3, nil
		}
		return len(b.src), nil
	}

	tag, ok := scanTag(b.src, pos)
	if !ok {
		b.lineHasText = true
		return pos + 1, nil
	}

	if tag.closing {
		if b.inline[tag.name] > 0 {
			b.inline[tag.name]--
			b.lineHasText = true
			return tag.end, nil
		}
		return tag.end, b.closeElement(tag)
	}

	if b.lineHasText {
		if !tag.selfClosing {
			b.inline[tag.name]++
		}
		return tag.end, nil
	}

	return tag.end, b.openElement(tag)
}

func (b *treeBuilder) openElement(tag rawTag) error {
	if err := b.flushText(tag.start); err != nil {
		return err
	}

	node := mdast.NewElement(tag.name, tag.attrs...)
	node.Element.SelfClosing = tag.selfClosing
	mdast.AppendChild(b.parent(), node)

	b.emit(mdast.TokTagOpen, tag.start, tag.end, tag.name)
	if tag.selfClosing {
		b.spans[node] = span{start: tag.start, end: tag.end}
	} else {
		b.stack = append(b.stack, openElement{node: node, start: tag.start})
	}

	b.startRun(tag.end)
	return nil
}

func (b *treeBuilder) closeElement(tag rawTag) error {
	if len(b.stack) == 0 {
		return b.syntaxError(tag.start, "unexpected closing tag </%s>", tag.name)
	}

	top := b.stack[len(b.stack)-1]
	if name := top.node.ElementName(); name != tag.name {
		line, _ := b.snap.LineAt(top.start)
		return b.syntaxError(tag.start, "expected closing tag </%s> for <%s> opened on line %d, found </%s>",
			name, name, line, tag.name)
	}

	if err := b.flushText(tag.start); err != nil {
		return err
	}

	b.emit(mdast.TokTagClose, tag.start, tag.end, tag.name)
	b.spans[top.node] = span{start: top.start, end: tag.end}
	b.stack = b.stack[:len(b.stack)-1]

	b.startRun(tag.end)
	return nil
}

// expression turns a {...} that fills the rest of its line into an
// expression node. Anywhere else braces are ordinary text.
func (b *treeBuilder) expression(pos int) (int, error) {
	if b.lineHasText {
		return pos + 1, nil
	}

	_, end, ok := scanBraces(b.src, pos)
	if !ok {
		b.lineHasText = true
		return pos + 1, nil
	}
	if !isBlank(b.src[end:lineEnd(b.src, end)]) {
		// Text follows on the same line, so this is part of a paragraph.
		b.lineHasText = true
		return end, nil
	}

	if err := b.flushText(pos); err != nil {
		return 0, err
	}

	node := mdast.NewNode(mdast.NodeExpression)
	mdast.AppendChild(b.parent(), node)
	b.emit(mdast.TokExpression, pos, end, nil)
	b.spans[node] = span{start: pos, end: end}

	b.startRun(end)
	return end, nil
}

// esm consumes a top-level import/export block up to the next blank line.
func (b *treeBuilder) esm(pos int) (int, error) {
	if err := b.flushText(pos); err != nil {
		return 0, err
	}

	end := pos
	for end < len(b.src) {
		lineStop := lineEnd(b.src, end)
		if isBlank(b.src[end:lineStop]) {
			break
		}
		end = lineStop
		if end < len(b.src) && b.src[end] == '\r' {
			end++
		}
		if end < len(b.src) && b.src[end] == '\n' {
			end++
		}
	}
	end = trimTrailingNewline(b.src, pos, end)

	node := mdast.NewNode(mdast.NodeESM)
	mdast.AppendChild(b.snap.Root, node)
	b.emit(mdast.TokESM, pos, end, nil)
	b.spans[node] = span{start: pos, end: end}

	b.textStart = end
	return end, nil
}

// fenceLine handles a line that opens, closes or sits inside a fenced code
// block. It returns the offset of the next line.
func (b *treeBuilder) fenceLine(pos int) (int, bool) {
	stop := lineEnd(b.src, pos)
	next := stop
	for next < len(b.src) && b.src[next] != '\n' {
		next++
	}
	if next < len(b.src) {
		next++
	}

	line := bytes.TrimLeft(b.src[pos:stop], " \t")

	if b.fence != nil {
		n := countLeading(line, b.fence.char)
		if n >= b.fence.length && isBlank(line[n:]) {
			b.fence = nil
		}
		return next, true
	}

	if len(line) == 0 || (line[0] != '`' && line[0] != '~') {
		return 0, false
	}

	n := countLeading(line, line[0])
	if n < 3 || (line[0] == '`' && bytes.IndexByte(line[n:], '`') >= 0) {
		return 0, false
	}

	b.fence = &fence{char: line[0], length: n}
	return next, true
}

// flushText closes the pending Markdown run at end, tokenising it and
// attaching its blocks to the current parent.
func (b *treeBuilder) flushText(end int) error {
	if err := b.ctx.Err(); err != nil {
		return fmt.Errorf("parse cancelled: %w", err)
	}

	start := b.textStart
	if end <= start {
		return nil
	}
	b.textStart = end

	b.tokenize(start, end)

	run := b.src[start:end]
	if isBlank(run) {
		return nil
	}

	mapper := newBlockMapper(run, start, b.spans)
	mapper.mapBlocks(parseRun(b.md, mapper.src), b.parent(), 0)
	return nil
}

// startRun begins a new Markdown run after a flow tag or expression.
func (b *treeBuilder) startRun(pos int) {
	b.textStart = pos
	b.lineHasText = false
	clear(b.inline)
}

func (b *treeBuilder) emit(kind mdast.TokenKind, start, end int, meta any) {
	b.tokens = append(b.tokens, mdast.Token{Kind: kind, StartOffset: start, EndOffset: end, Meta: meta})
}

// tokenize splits src[start:end] into words, whitespace and newlines.
func (b *treeBuilder) tokenize(start, end int) {
	i := start
	for i < end {
		j := i
		switch c := b.src[i]; {
		case c == '\n':
			j++
			b.emit(mdast.TokNewline, i, j, nil)
		case c == '\r' && i+1 < end && b.src[i+1] == '\n':
			j += 2
			b.emit(mdast.TokNewline, i, j, nil)
		case c == ' ' || c == '\t' || c == '\r':
			for j < end && (b.src[j] == ' ' || b.src[j] == '\t' ||
				(b.src[j] == '\r' && (j+1 >= end || b.src[j+1] != '\n'))) {
				j++
			}
			b.emit(mdast.TokWhitespace, i, j, nil)
		default:
			for j < end && !isSpaceByte(b.src[j]) {
				j++
			}
			b.emit(mdast.TokText, i, j, nil)
		}
		i = j
	}
}

// assignTokens converts the byte spans gathered while scanning into token
// ranges and attaches every node to the snapshot.
func (b *treeBuilder) assignTokens() {
	b.snap.Tokens = b.tokens

	if len(b.tokens) > 0 {
		mdast.SetTokenRange(b.snap.Root, 0, len(b.tokens)-1)
	}

	for node, sp := range b.spans {
		first := findTokenAtOffset(b.tokens, sp.start)
		last := findLastTokenAtOffset(b.tokens, sp.end)
		if first >= 0 && last >= first {
			mdast.SetTokenRange(node, first, last)
		}
	}

	mdast.SetFile(b.snap.Root, b.snap)
}

func (b *treeBuilder) syntaxError(offset int, format string, args ...any) error {
	line, col := b.snap.LineAt(offset)
	return &SyntaxError{
		Path:    b.snap.Path,
		Line:    line,
		Column:  col,
		Message: fmt.Sprintf(format, args...),
	}
}

// skipCodeSpan returns the offset past the code span opening at pos, or past
// the backtick run when no closing run follows on the same line.
func skipCodeSpan(src []byte, pos int) int {
	n := countLeading(src[pos:], '`')
	stop := lineEnd(src, pos)

	for i := pos + n; i < stop; {
		if src[i] != '`' {
			i++
			continue
		}
		m := countLeading(src[i:stop], '`')
		if m == n {
			return i + m
		}
		i += m
	}

	return pos + n
}

func isESMLine(line []byte) bool {
	return bytes.HasPrefix(line, []byte("import ")) || bytes.HasPrefix(line, []byte("export "))
}

func countLeading(line []byte, c byte) int {
	n := 0
	for n < len(line) && line[n] == c {
		n++
	}
	return n
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isBlank(b []byte) bool {
	return len(bytes.TrimSpace(b)) == 0
}

func trimTrailingNewline(src []byte, start, end int) int {
	for end > start && (src[end-1] == '\n' || src[end-1] == '\r') {
		end--
	}
	return end
}
