package mdast

// FileSnapshot is an immutable view of one MDX file at parse time.
type FileSnapshot struct {
	// Path is the file path. Empty for in-memory content.
	Path string

	// Content is the full file bytes.
	Content []byte

	// Lines indexes line boundaries in Content.
	Lines []LineInfo

	// Tokens covers every byte of Content, in order.
	Tokens []Token

	// Root is the document node.
	Root *Node
}

// LineInfo holds the byte boundaries of a single line.
type LineInfo struct {
	// StartOffset is the byte index of the first byte of the line.
	StartOffset int

	// NewlineStart is where the line terminator begins. It equals EndOffset
	// for a final line without a terminator.
	NewlineStart int

	// EndOffset is the byte index just past the terminator.
	EndOffset int
}

// NewFileSnapshot indexes the lines of content. Tokens and Root are filled in
// by a parser.
func NewFileSnapshot(path string, content []byte) *FileSnapshot {
	return &FileSnapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}
