// Package directive implements the require-directive rule: a file's directive
// prologue must satisfy an acceptance policy, and a fix inserts the configured
// directive when it does not.
package directive

import (
	"fmt"
	"strings"

	"github.com/abdidvp/usedirective/internal/domain"
	"github.com/abdidvp/usedirective/internal/domain/pathfilter"
	"github.com/abdidvp/usedirective/internal/domain/prologue"
)

// UsePrefix marks a prologue entry as a use-directive.
const UsePrefix = "use "

// Options mirrors the rule's configuration surface.
type Options struct {
	Directive          string
	Ignore             []string
	IgnoredDirectives  []string
	RequireExact       bool
	RequireOneOf       []string
	Extensions         []string
	IncludeNodeModules bool
	Root               string
}

// Enforcer checks files against a resolved acceptance policy.
type Enforcer struct {
	directive string
	policy    Policy
	filter    *pathfilter.Filter
}

// New validates opts and resolves the acceptance policy once.
// A missing directive is a setup error.
func New(opts Options) (*Enforcer, error) {
	if opts.Directive == "" {
		return nil, fmt.Errorf("%w: option %q is required", domain.ErrMissingDirective, "directive")
	}

	return &Enforcer{
		directive: opts.Directive,
		policy:    ResolvePolicy(opts),
		filter: pathfilter.New(pathfilter.Options{
			Ignore:             opts.Ignore,
			Extensions:         opts.Extensions,
			IncludeNodeModules: opts.IncludeNodeModules,
			Root:               opts.Root,
		}),
	}, nil
}

func (e *Enforcer) Name() string { return domain.RuleRequireDirective }

// Policy returns the acceptance policy in effect.
func (e *Enforcer) Policy() Policy { return e.policy }

// Check returns an addDirective violation with an insertion edit when the
// prologue is not acceptable, or nil.
func (e *Enforcer) Check(f *domain.SourceFile) *domain.Violation {
	if !e.filter.ShouldCheck(f.Path) {
		return nil
	}

	values := prologue.Values(prologue.Scan(f.Statements))
	if e.policy.Accepts(values) {
		return nil
	}

	at := e.insertAt(f)
	eol := f.LineEnding()
	text := `"` + e.directive + `";` + eol
	if at == len(f.Text) && f.ShebangEnd() == at && !strings.HasSuffix(f.Text, "\n") {
		// shebang with no line break: the directive needs its own line
		text = eol + text
	}
	edit := &domain.Edit{
		Span: domain.Span{Start: at, End: at},
		Text: text,
	}
	return domain.NewViolation(f, e.Name(), domain.KindAddDirective, 0, e.message(), edit)
}

// insertAt picks the insertion offset: after a shebang line, else before the
// first non-comment token, else 0.
func (e *Enforcer) insertAt(f *domain.SourceFile) int {
	if end := f.ShebangEnd(); end > 0 {
		return end
	}
	return f.FirstTokenOffset()
}

func (e *Enforcer) message() string {
	switch p := e.policy.(type) {
	case OneOf:
		return fmt.Sprintf("File must start with one of the directives: %s.", quoteAll(p.Allowed))
	case Exact:
		return fmt.Sprintf("File must start with the %q directive.", p.Directive)
	default:
		return fmt.Sprintf("File must start with a use directive such as %q.", e.directive)
	}
}

// InsertionText is the text inserted for a missing directive in an LF file.
// Double quotes are used regardless of the file's own quoting style; Check
// follows the file's line ending.
func InsertionText(directive string) string {
	return `"` + directive + `";` + "\n"
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, ", ")
}
