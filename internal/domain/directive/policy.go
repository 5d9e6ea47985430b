package directive

import "strings"

// Policy decides whether a prologue's directive values are acceptable.
// Exactly one variant is active per rule instance: OneOf, Exact or
// AnyRecognized, in that order of precedence.
type Policy interface {
	Accepts(values []string) bool
	Name() string
}

// OneOf accepts a prologue containing at least one of Allowed.
type OneOf struct {
	Allowed []string
}

func (p OneOf) Name() string { return "one_of" }

func (p OneOf) Accepts(values []string) bool {
	for _, v := range values {
		for _, a := range p.Allowed {
			if v == a {
				return true
			}
		}
	}
	return false
}

// Exact accepts a prologue containing Directive verbatim.
type Exact struct {
	Directive string
}

func (p Exact) Name() string { return "exact" }

func (p Exact) Accepts(values []string) bool {
	for _, v := range values {
		if v == p.Directive {
			return true
		}
	}
	return false
}

// AnyRecognized accepts any use-directive that is not in Ignored.
type AnyRecognized struct {
	Prefix  string
	Ignored []string
}

func (p AnyRecognized) Name() string { return "any_recognized" }

func (p AnyRecognized) Accepts(values []string) bool {
	ignored := make(map[string]bool, len(p.Ignored))
	for _, d := range p.Ignored {
		ignored[d] = true
	}
	for _, v := range values {
		if ignored[v] {
			continue
		}
		if strings.HasPrefix(v, p.Prefix) {
			return true
		}
	}
	return false
}

// ResolvePolicy selects the active policy variant from opts.
func ResolvePolicy(opts Options) Policy {
	switch {
	case len(opts.RequireOneOf) > 0:
		return OneOf{Allowed: append([]string(nil), opts.RequireOneOf...)}
	case opts.RequireExact:
		return Exact{Directive: opts.Directive}
	default:
		return AnyRecognized{Prefix: UsePrefix, Ignored: append([]string(nil), opts.IgnoredDirectives...)}
	}
}
