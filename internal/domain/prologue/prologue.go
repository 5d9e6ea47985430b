// Package prologue extracts the directive prologue of a program: the leading
// run of bare string-literal statements.
package prologue

import "github.com/abdidvp/usedirective/internal/domain"

// Entry is one directive of the prologue.
type Entry struct {
	Span  domain.Span `json:"span"`
	Value string      `json:"value"`
}

// Scan returns the maximal leading run of directive statements. Statements
// after the first non-directive are never inspected.
func Scan(statements []domain.Statement) []Entry {
	var entries []Entry
	for _, st := range statements {
		if !st.IsDirective() {
			break
		}
		entries = append(entries, Entry{Span: st.Span, Value: st.Directive})
	}
	return entries
}

// Values returns the directive strings of entries in order.
func Values(entries []Entry) []string {
	values := make([]string, len(entries))
	for i, e := range entries {
		values[i] = e.Value
	}
	return values
}
