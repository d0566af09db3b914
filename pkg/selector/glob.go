package selector

import (
	"regexp"
	"strings"
)

// globMatch implements standard filename-glob semantics (spec.md §4.3):
// `*` matches any run of characters (including path separators — unlike
// path/filepath.Match, a glob here is not separator-aware, matching the
// behavior of a plain fnmatch), `?` matches exactly one character, and
// `[...]` introduces a character class. Matching is anchored to the whole
// string.
//
// No example repo in the pack wires a third-party glob library into
// product code (the only occurrences are indirect lint-tool dependencies),
// so this is implemented directly rather than imported; see DESIGN.md.
func globMatch(pattern, value string) bool {
	re, err := compileGlob(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(value)
}

// isGlobPattern reports whether s contains any glob metacharacter.
func isGlobPattern(s string) bool {
	return strings.ContainsAny(s, "*?[]")
}

func compileGlob(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")
	inClass := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case inClass:
			if c == ']' {
				inClass = false
				b.WriteByte(c)
			} else {
				b.WriteByte(c)
			}
		case c == '[':
			inClass = true
			b.WriteByte(c)
		case c == '*':
			b.WriteString(".*")
		case c == '?':
			b.WriteString(".")
		default:
			if strings.ContainsRune(`.+()^$|\{}`, rune(c)) {
				b.WriteByte('\\')
			}
			b.WriteByte(c)
		}
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}
