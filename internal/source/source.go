// Package source maps absolute byte offsets in a file to line/column
// positions and renders diagnostics against the file's text.
package source

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/auvred/resyntax"
)

// File is the text of one source file with an index of its line starts.
type File struct {
	name       string
	content    []byte
	lineStarts []int
}

// NewFile indexes content. name is used as the prefix of rendered
// diagnostics.
func NewFile(name string, content []byte) *File {
	f := &File{name: name, content: content}
	f.lineStarts = make([]int, 1, bytes.Count(content, []byte("\n"))+1)
	for i, b := range content {
		if b == '\n' {
			f.lineStarts = append(f.lineStarts, i+1)
		}
	}
	return f
}

// Name returns the name given to NewFile.
func (f *File) Name() string {
	return f.name
}

// Content returns the indexed text.
func (f *File) Content() []byte {
	return f.content
}

// Position returns the 1-based line and column of offset. Columns count
// runes. Offsets outside the file are clamped to its bounds.
func (f *File) Position(offset int) (line, col int) {
	offset = max(0, min(offset, len(f.content)))
	idx := f.lineIndex(offset)
	return idx + 1, utf8.RuneCount(f.content[f.lineStarts[idx]:offset]) + 1
}

// Line returns the text of the 1-based line without its terminator.
func (f *File) Line(line int) string {
	if line <= 0 || line > len(f.lineStarts) {
		return ""
	}
	start, end := f.lineBounds(line - 1)
	return string(f.content[start:end])
}

func (f *File) lineIndex(offset int) int {
	lo, hi := 0, len(f.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if f.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

func (f *File) lineBounds(idx int) (start, end int) {
	start = f.lineStarts[idx]
	end = len(f.content)
	if idx+1 < len(f.lineStarts) {
		end = f.lineStarts[idx+1] - 1
	}
	if end > start && f.content[end-1] == '\r' {
		end--
	}
	return start, end
}

// Render writes err as `name:line:col: severity: message` followed by the
// offending line and a caret marker under the error span. The span is
// clipped to the line it starts on.
func (f *File) Render(w io.Writer, severity string, err *resyntax.SyntaxError) error {
	line, col := f.Position(err.Span.Start)
	if _, werr := fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", f.name, line, col, severity, err.Message); werr != nil {
		return werr
	}

	start, end := f.lineBounds(line - 1)
	text := f.content[start:end]
	from := max(0, min(err.Span.Start, end)-start)
	to := max(from, min(err.Span.End, end)-start)

	var marker strings.Builder
	for _, r := range string(text[:from]) {
		if r == '\t' {
			marker.WriteByte('\t')
		} else {
			marker.WriteByte(' ')
		}
	}
	marker.WriteString(strings.Repeat("^", max(1, utf8.RuneCount(text[from:to]))))

	_, werr := fmt.Fprintf(w, "    %s\n    %s\n", text, marker.String())
	return werr
}
