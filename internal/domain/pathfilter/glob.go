package pathfilter

import (
	"regexp"
	"strings"
)

// globTokens maps glob syntax to regular-expression fragments. Longer tokens
// come first so "**/" wins over "**" and "*".
var globTokens = []struct {
	glob  string
	regex string
}{
	{"**/", "(?:.*/)?"},
	{"**", ".*"},
	{"*", "[^/]*"},
	{"?", "[^/]"},
}

// Compile translates a glob pattern into an anchored regular expression.
// Every input produces a valid matcher; characters outside the token table
// are matched literally.
func Compile(pattern string) *regexp.Regexp {
	return regexp.MustCompile("^" + translate(pattern) + "$")
}

func translate(pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); {
		matched := false
		for _, tok := range globTokens {
			if strings.HasPrefix(pattern[i:], tok.glob) {
				b.WriteString(tok.regex)
				i += len(tok.glob)
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		// Copy a run of literal bytes so multi-byte runes stay intact.
		j := i + 1
		for j < len(pattern) && !strings.ContainsRune("*?", rune(pattern[j])) {
			j++
		}
		b.WriteString(regexp.QuoteMeta(pattern[i:j]))
		i = j
	}
	return b.String()
}
