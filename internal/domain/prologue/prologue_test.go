package prologue_test

import (
	"testing"

	"github.com/abdidvp/usedirective/internal/domain"
	"github.com/abdidvp/usedirective/internal/domain/prologue"
	"github.com/stretchr/testify/assert"
)

func directive(start, end int, value string) domain.Statement {
	return domain.Statement{
		Span:      domain.Span{Start: start, End: end},
		Kind:      domain.StatementDirective,
		Directive: value,
	}
}

func other(start, end int) domain.Statement {
	return domain.Statement{Span: domain.Span{Start: start, End: end}}
}

func TestScan_Empty(t *testing.T) {
	assert.Empty(t, prologue.Scan(nil))
}

func TestScan_LeadingRun(t *testing.T) {
	entries := prologue.Scan([]domain.Statement{
		directive(0, 13, "use client"),
		directive(14, 27, "use strict"),
		other(29, 40),
	})

	assert.Equal(t, []string{"use client", "use strict"}, prologue.Values(entries))
	assert.Equal(t, domain.Span{Start: 14, End: 27}, entries[1].Span)
}

func TestScan_StopsAtFirstNonDirective(t *testing.T) {
	entries := prologue.Scan([]domain.Statement{
		other(0, 10),
		directive(11, 24, "use client"),
	})
	assert.Empty(t, entries)
}

func TestScan_IgnoresLaterDirectives(t *testing.T) {
	entries := prologue.Scan([]domain.Statement{
		directive(0, 13, "use server"),
		other(14, 20),
		directive(21, 34, "use client"),
	})
	assert.Equal(t, []string{"use server"}, prologue.Values(entries))
}
