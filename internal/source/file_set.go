package source

import (
	"fmt"

	"fortio.org/safecast"
)

// buffer is one named chunk of text registered with a FileSet, along
// with the byte offsets of each newline so a Span can be resolved back
// to a human-readable line/column.
type buffer struct {
	name    string
	content []byte
	lineIdx []uint32
}

// FileSet is a small registry of in-memory buffers used to resolve
// blame spans to line/column positions for diagnostics. Unlike a
// compiler's FileSet it never touches disk: the CLI registers the
// contract expression text it hands to the cexpr lexer.
type FileSet struct {
	buffers []buffer
}

// NewFileSet creates an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{}
}

// Add registers content under name and returns its FileID.
func (fs *FileSet) Add(name string, content []byte) FileID {
	id, err := safecast.Conv[uint32](len(fs.buffers))
	if err != nil {
		panic(fmt.Errorf("file set overflow: %w", err))
	}
	fs.buffers = append(fs.buffers, buffer{
		name:    name,
		content: content,
		lineIdx: buildLineIndex(content),
	})
	return FileID(id)
}

// Name returns the registered name for id.
func (fs *FileSet) Name(id FileID) string {
	if int(id) >= len(fs.buffers) {
		return "<unknown>"
	}
	return fs.buffers[id].name
}

// Resolve converts a span's start and end offsets into line/column
// positions within its registered buffer.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	if int(span.File) >= len(fs.buffers) {
		return LineCol{}, LineCol{}
	}
	idx := fs.buffers[span.File].lineIdx
	return toLineCol(idx, span.Start), toLineCol(idx, span.End)
}

func buildLineIndex(content []byte) []uint32 {
	idx := make([]uint32, 0, 16)
	for i, b := range content {
		if b == '\n' {
			off, err := safecast.Conv[uint32](i)
			if err != nil {
				continue
			}
			idx = append(idx, off)
		}
	}
	return idx
}

// toLineCol maps a byte offset to a 1-based line/column using the
// newline offsets recorded in lineIdx (each entry is the offset of a
// '\n' byte terminating that line).
func toLineCol(lineIdx []uint32, offset uint32) LineCol {
	line := uint32(1)
	lineStart := uint32(0)
	for _, nl := range lineIdx {
		if nl >= offset {
			break
		}
		line++
		lineStart = nl + 1
	}
	return LineCol{Line: line, Col: offset - lineStart + 1}
}
