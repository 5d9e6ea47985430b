// Package pathfilter decides whether a file is subject to the
// require-directive rule, based on ignore globs and an extension allow-list.
package pathfilter

import (
	"path"
	"regexp"
	"strings"

	"github.com/abdidvp/usedirective/internal/domain"
)

// NodeModulesPattern is appended to the ignore list unless node_modules is
// explicitly included.
const NodeModulesPattern = "**/node_modules/**"

// DefaultExtensions is used when no extensions are configured.
var DefaultExtensions = []string{"jsx", "tsx"}

// Options configures a Filter.
type Options struct {
	Ignore             []string
	Extensions         []string
	IncludeNodeModules bool
	// Root, when set, lets patterns match the root-relative form of a path too.
	Root string
}

// Filter holds compiled ignore patterns and the effective extension set.
type Filter struct {
	patterns   []*regexp.Regexp
	extensions map[string]bool
	root       string
}

// New compiles the effective ignore patterns once.
func New(opts Options) *Filter {
	f := &Filter{
		extensions: make(map[string]bool),
	}

	for _, p := range EffectiveIgnore(opts.Ignore, opts.IncludeNodeModules) {
		f.patterns = append(f.patterns, Compile(p))
	}

	for _, ext := range EffectiveExtensions(opts.Extensions) {
		f.extensions[ext] = true
	}

	if opts.Root != "" {
		f.root = strings.TrimSuffix(toSlash(opts.Root), "/")
	}

	return f
}

// EffectiveIgnore returns the configured patterns plus the node_modules
// pattern unless includeNodeModules is set.
func EffectiveIgnore(ignore []string, includeNodeModules bool) []string {
	out := append([]string(nil), ignore...)
	if !includeNodeModules {
		out = append(out, NodeModulesPattern)
	}
	return out
}

// EffectiveExtensions lower-cases the configured extensions, or returns the
// defaults when none are configured.
func EffectiveExtensions(exts []string) []string {
	var out []string
	for _, e := range exts {
		e = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "."))
		if e != "" {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), DefaultExtensions...)
	}
	return out
}

// ShouldCheck reports whether filePath passes the ignore and extension rules.
// Synthetic paths always pass.
func (f *Filter) ShouldCheck(filePath string) bool {
	if domain.IsSyntheticPath(filePath) {
		return true
	}

	p := toSlash(filePath)
	if f.Ignored(p) {
		return false
	}

	return f.extensions[Extension(p)]
}

// Ignored reports whether any ignore pattern matches the path or, when a root
// is configured, its root-relative form.
func (f *Filter) Ignored(filePath string) bool {
	candidates := []string{toSlash(filePath)}
	if f.root != "" && strings.HasPrefix(candidates[0], f.root+"/") {
		candidates = append(candidates, strings.TrimPrefix(candidates[0], f.root+"/"))
	}

	for _, re := range f.patterns {
		for _, c := range candidates {
			if re.MatchString(c) {
				return true
			}
		}
	}
	return false
}

// Extension returns the lower-cased text after the last dot of the final path
// segment, or "" when there is none.
func Extension(filePath string) string {
	base := path.Base(toSlash(filePath))
	i := strings.LastIndexByte(base, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(base[i+1:])
}

// toSlash normalizes both separator styles regardless of the host OS.
func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}
