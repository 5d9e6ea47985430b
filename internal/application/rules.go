package application

import (
	"fmt"

	"github.com/abdidvp/usedirective/internal/domain"
	"github.com/abdidvp/usedirective/internal/domain/blankline"
	"github.com/abdidvp/usedirective/internal/domain/directive"
)

// BuildRules turns configuration into the enabled rule instances. Setup
// errors such as a missing directive surface here, once per run.
func BuildRules(cfg domain.ProjectConfig, root string) ([]domain.Rule, error) {
	var rules []domain.Rule

	if rd := cfg.RequireDirective; rd.IsEnabled() {
		e, err := directive.New(directive.Options{
			Directive:          rd.Directive,
			Ignore:             rd.Ignore,
			IgnoredDirectives:  rd.IgnoredDirectives,
			RequireExact:       rd.RequireExact,
			RequireOneOf:       rd.RequireOneOf,
			Extensions:         rd.Extensions,
			IncludeNodeModules: rd.IncludeNodeModules,
			Root:               root,
		})
		if err != nil {
			return nil, fmt.Errorf("require_directive: %w", err)
		}
		rules = append(rules, e)
	}

	if cfg.BlankLine.IsEnabled() {
		rules = append(rules, blankline.New(blankline.ParseMode(cfg.BlankLine.Mode)))
	}

	return rules, nil
}

// runRules checks f with every rule and returns the findings in rule order.
func runRules(rules []domain.Rule, f *domain.SourceFile) []domain.Violation {
	var out []domain.Violation
	for _, r := range rules {
		if v := r.Check(f); v != nil {
			out = append(out, *v)
		}
	}
	return out
}

func editsOf(violations []domain.Violation) []domain.Edit {
	var edits []domain.Edit
	for _, v := range violations {
		if v.Edit != nil {
			edits = append(edits, *v.Edit)
		}
	}
	return edits
}
