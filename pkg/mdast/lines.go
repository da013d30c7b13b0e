package mdast

import (
	"bytes"
	"sort"
)

// BuildLines splits content into line records. LF and CRLF terminators are
// both recognised; a trailing terminator yields a final empty line.
func BuildLines(content []byte) []LineInfo {
	lines := []LineInfo{}
	if len(content) == 0 {
		return lines
	}

	start := 0
	for {
		idx := bytes.IndexByte(content[start:], '\n')
		if idx < 0 {
			break
		}

		nl := start + idx
		newlineStart := nl
		if nl > start && content[nl-1] == '\r' {
			newlineStart = nl - 1
		}

		lines = append(lines, LineInfo{
			StartOffset:  start,
			NewlineStart: newlineStart,
			EndOffset:    nl + 1,
		})
		start = nl + 1
	}

	return append(lines, LineInfo{
		StartOffset:  start,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})
}

// LineCount returns the number of lines in the file.
func (f *FileSnapshot) LineCount() int {
	return len(f.Lines)
}

// LineAt converts a byte offset into a 1-based line and byte column.
// Offsets at or past the end of content resolve to the last line.
// It returns (0, 0) when the offset cannot be placed.
func (f *FileSnapshot) LineAt(offset int) (int, int) {
	if offset < 0 || len(f.Lines) == 0 {
		return 0, 0
	}

	if offset >= len(f.Content) {
		last := f.Lines[len(f.Lines)-1]
		return len(f.Lines), offset - last.StartOffset + 1
	}

	idx := sort.Search(len(f.Lines), func(i int) bool {
		return f.Lines[i].EndOffset > offset
	})
	if idx >= len(f.Lines) {
		idx = len(f.Lines) - 1
	}

	info := f.Lines[idx]
	if offset < info.StartOffset {
		return 0, 0
	}

	return idx + 1, offset - info.StartOffset + 1
}

// Offset converts a 1-based line and column back into a byte offset.
func (f *FileSnapshot) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(f.Lines) || col < 1 {
		return 0, false
	}

	info := f.Lines[line-1]
	offset := info.StartOffset + col - 1
	if offset > info.EndOffset {
		return 0, false
	}

	return offset, true
}

// LineContent returns line (1-based) without its terminator, or nil when out
// of range.
func (f *FileSnapshot) LineContent(line int) []byte {
	if line < 1 || line > len(f.Lines) {
		return nil
	}

	info := f.Lines[line-1]
	return f.Content[info.StartOffset:info.NewlineStart]
}
