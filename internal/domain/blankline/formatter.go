// Package blankline implements the blank-line-after-directive rule, which
// normalizes the whitespace between the directive prologue and the code that
// follows it.
package blankline

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/abdidvp/usedirective/internal/domain"
	"github.com/abdidvp/usedirective/internal/domain/prologue"
)

// Mode selects the required gap after the last directive.
type Mode string

const (
	Always Mode = "always"
	Never  Mode = "never"
)

// ParseMode resolves a configured mode; anything other than "never" means always.
func ParseMode(s string) Mode {
	if Mode(strings.ToLower(strings.TrimSpace(s))) == Never {
		return Never
	}
	return Always
}

// Valid reports whether s names a known mode. Empty is valid and means always.
func Valid(s string) bool {
	switch Mode(s) {
	case "", Always, Never:
		return true
	}
	return false
}

// Gap returns the canonical gap text for the mode.
func (m Mode) Gap() string {
	if m == Never {
		return "\n"
	}
	return "\n\n"
}

// Formatter checks the gap after the directive prologue.
type Formatter struct {
	mode Mode
}

// New returns a Formatter for mode, defaulting to Always.
func New(mode Mode) *Formatter {
	if mode != Never {
		mode = Always
	}
	return &Formatter{mode: mode}
}

func (f *Formatter) Name() string { return domain.RuleBlankLine }

// Mode returns the mode in effect.
func (f *Formatter) Mode() Mode { return f.mode }

// Check returns at most one violation. Leading blank lines before the first
// directive are reported first; the gap after the prologue is only checked
// once the file starts cleanly.
func (f *Formatter) Check(file *domain.SourceFile) *domain.Violation {
	entries := prologue.Scan(file.Statements)
	if len(entries) == 0 {
		return nil
	}

	first := file.Clamp(entries[0].Span)
	if lead := file.Text[:first.Start]; lead != "" && strings.TrimSpace(lead) == "" {
		return domain.NewViolation(file, f.Name(), domain.KindUnexpectedBlank, 0,
			"Unexpected blank lines before the directive prologue.",
			&domain.Edit{Span: domain.Span{Start: 0, End: first.Start}})
	}

	gap := gapSpan(file, len(entries), entries[len(entries)-1].Span)
	text := strings.ReplaceAll(file.Text[gap.Start:gap.End], "\r\n", "\n")
	want := f.mode.Gap()
	if text == want {
		return nil
	}

	kind, msg := domain.KindExpectedBlank, "Expected exactly one blank line after the directive prologue."
	if f.mode == Never {
		kind, msg = domain.KindUnexpectedBlank, "Unexpected blank line after the directive prologue."
	}
	if eol := file.LineEnding(); eol != "\n" {
		want = strings.ReplaceAll(want, "\n", eol)
	}
	return domain.NewViolation(file, f.Name(), kind, gap.Start, msg,
		&domain.Edit{Span: gap, Text: want})
}

// gapSpan covers the whitespace between the last directive and the next
// content: the next statement, a comment, or the end of the file.
func gapSpan(file *domain.SourceFile, prologueLen int, last domain.Span) domain.Span {
	start := file.Clamp(last).End
	end := len(file.Text)
	if prologueLen < len(file.Statements) {
		end = max(file.Clamp(file.Statements[prologueLen].Span).Start, start)
	}

	stop := start
	for stop < end {
		r, size := utf8.DecodeRuneInString(file.Text[stop:end])
		if !unicode.IsSpace(r) {
			break
		}
		stop += size
	}
	return domain.Span{Start: start, End: stop}
}
