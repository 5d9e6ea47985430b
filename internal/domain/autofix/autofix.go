// Package autofix applies rule edits to source text and repeats the
// check/apply cycle until the text reaches a fixed point.
package autofix

import (
	"sort"
	"strings"

	"github.com/abdidvp/usedirective/internal/domain"
)

// MaxPasses bounds the fix loop.
const MaxPasses = 10

// Apply splices non-conflicting edits into text in a single pass. An edit that
// overlaps an earlier one, or a second insertion at the same offset, is left
// for the next pass. It returns the new text and the number of edits applied.
func Apply(text string, edits []domain.Edit) (string, int) {
	if len(edits) == 0 {
		return text, 0
	}

	sorted := make([]domain.Edit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Span.Start != sorted[j].Span.Start {
			return sorted[i].Span.Start < sorted[j].Span.Start
		}
		return sorted[i].Span.End < sorted[j].Span.End
	})

	var b strings.Builder
	cursor, lastStart, applied := 0, -1, 0
	for _, e := range sorted {
		s := clamp(e.Span, len(text))
		if s.Start < cursor || (s.Start == lastStart && s.Start == cursor && s.Len() == 0) {
			continue
		}
		b.WriteString(text[cursor:s.Start])
		b.WriteString(e.Text)
		cursor = s.End
		lastStart = s.Start
		applied++
	}
	b.WriteString(text[cursor:])

	return b.String(), applied
}

// PassFunc re-checks text and returns the edits to apply next.
type PassFunc func(text string) ([]domain.Edit, error)

// Result describes the outcome of Loop.
type Result struct {
	Text      string `json:"-"`
	Passes    int    `json:"passes"`
	Applied   int    `json:"applied"`
	Converged bool   `json:"converged"`
}

// Loop calls pass and applies its edits until no edits remain or MaxPasses is
// reached. Passes counts the rounds that changed the text.
func Loop(text string, pass PassFunc) (Result, error) {
	res := Result{Text: text}
	for res.Passes < MaxPasses {
		edits, err := pass(res.Text)
		if err != nil {
			return res, err
		}
		if len(edits) == 0 {
			res.Converged = true
			return res, nil
		}

		next, n := Apply(res.Text, edits)
		if next == res.Text {
			// Edits that change nothing would spin forever.
			return res, nil
		}
		res.Text = next
		res.Applied += n
		res.Passes++
	}

	edits, err := pass(res.Text)
	if err != nil {
		return res, err
	}
	res.Converged = len(edits) == 0
	return res, nil
}

func clamp(s domain.Span, n int) domain.Span {
	s.Start = min(max(s.Start, 0), n)
	s.End = min(max(s.End, s.Start), n)
	return s
}
