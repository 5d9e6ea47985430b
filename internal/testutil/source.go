// Package testutil builds SourceFile fixtures without a real parser.
package testutil

import (
	"strings"
	"testing"

	"github.com/abdidvp/usedirective/internal/domain"
)

// File builds a SourceFile from text and the source snippets of its top-level
// statements, in order. A snippet that is a quoted string, optionally followed
// by a semicolon, becomes a directive statement.
func File(t testing.TB, path, text string, statements ...string) *domain.SourceFile {
	t.Helper()

	f := &domain.SourceFile{Path: path, Text: text}
	cursor := 0
	for _, snippet := range statements {
		i := strings.Index(text[cursor:], snippet)
		if i < 0 {
			t.Fatalf("statement %q not found in text after offset %d", snippet, cursor)
		}
		start := cursor + i
		end := start + len(snippet)
		cursor = end

		st := domain.Statement{Span: domain.Span{Start: start, End: end}}
		if value, ok := directiveValue(snippet); ok {
			st.Kind = domain.StatementDirective
			st.Directive = value
		}
		f.Statements = append(f.Statements, st)
	}
	return f
}

func directiveValue(snippet string) (string, bool) {
	s := strings.TrimSuffix(snippet, ";")
	if len(s) < 2 {
		return "", false
	}
	q := s[0]
	if (q != '"' && q != '\'') || s[len(s)-1] != q {
		return "", false
	}
	inner := s[1 : len(s)-1]
	if strings.IndexByte(inner, q) >= 0 {
		return "", false
	}
	return inner, true
}
