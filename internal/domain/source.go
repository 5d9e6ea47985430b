package domain

import "strings"

// NoPath is the path reported for source that did not come from a file.
const NoPath = "<input>"

// Span is a half-open byte range [Start, End) into a SourceFile's text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// StatementKind tags a top-level statement as a directive or anything else.
type StatementKind int

const (
	StatementOther StatementKind = iota
	StatementDirective
)

// Statement is a top-level statement of a parsed program.
// Directive holds the raw text between the quotes and is only set when
// Kind is StatementDirective.
type Statement struct {
	Span      Span          `json:"span"`
	Kind      StatementKind `json:"kind"`
	Directive string        `json:"directive,omitempty"`
}

// IsDirective reports whether the statement is a bare string-literal expression.
func (s Statement) IsDirective() bool { return s.Kind == StatementDirective }

// SourceFile is the unit of analysis: raw text plus its top-level statements.
type SourceFile struct {
	Path       string      `json:"path"`
	Text       string      `json:"-"`
	Statements []Statement `json:"statements"`
}

// IsSynthetic reports whether the file has no real path on disk.
func (f *SourceFile) IsSynthetic() bool {
	return IsSyntheticPath(f.Path)
}

// IsSyntheticPath reports whether path is empty or a placeholder like "<input>".
func IsSyntheticPath(path string) bool {
	return path == "" || (strings.HasPrefix(path, "<") && strings.HasSuffix(path, ">"))
}

// Clamp bounds a span to the file text so slicing never panics.
func (f *SourceFile) Clamp(s Span) Span {
	n := len(f.Text)
	s.Start = min(max(s.Start, 0), n)
	s.End = min(max(s.End, s.Start), n)
	return s
}

// Slice returns the text covered by s after clamping.
func (f *SourceFile) Slice(s Span) string {
	s = f.Clamp(s)
	return f.Text[s.Start:s.End]
}

// ShebangEnd returns the offset just past a leading "#!" line (including its
// newline), or 0 when the file has no shebang.
func (f *SourceFile) ShebangEnd() int {
	if !strings.HasPrefix(f.Text, "#!") {
		return 0
	}
	if i := strings.IndexByte(f.Text, '\n'); i >= 0 {
		return i + 1
	}
	return len(f.Text)
}

// LineEnding returns "\r\n" when the first line break in the file is CRLF,
// else "\n".
func (f *SourceFile) LineEnding() string {
	if i := strings.IndexByte(f.Text, '\n'); i > 0 && f.Text[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

// FirstTokenOffset returns the offset of the first non-comment token. Comments
// and the shebang are never statements, so this is where the first statement
// begins; files without statements report 0.
func (f *SourceFile) FirstTokenOffset() int {
	if len(f.Statements) == 0 {
		return 0
	}
	return f.Clamp(f.Statements[0].Span).Start
}

// Position converts a byte offset into 1-based line and column numbers.
func (f *SourceFile) Position(offset int) (line, col int) {
	offset = min(max(offset, 0), len(f.Text))
	before := f.Text[:offset]
	line = strings.Count(before, "\n") + 1
	col = offset - (strings.LastIndexByte(before, '\n') + 1) + 1
	return line, col
}
