package hookmux

import (
	"regexp"
	"strings"
)

// WildcardAll is the reserved pattern string that matches any namespace or
// event. It is only special when it is the whole pattern: "ball" and
// "all:users" are literal.
const WildcardAll = "all"

// Pattern is a compiled wildcard matcher for a namespace or event string.
//
// Compilation rules:
//   - "*" matches zero or more of any character
//   - the whole string [WildcardAll] matches anything
//   - everything else is literal (regexp metacharacters are escaped)
//   - the match is anchored to the entire target
//
// Example:
//
//	p := hookmux.CompilePattern("obj:*")
//	p.Match("obj:blog")    // true
//	p.Match("obj:comment") // true
//	p.Match("user")        // false
type Pattern struct {
	raw string
	re  *regexp.Regexp
}

// CompilePattern compiles a wildcard string into a Pattern.
// Every input compiles: literal portions are quoted before wildcard
// expansion, so there is no syntax error to report.
func CompilePattern(raw string) *Pattern {
	return &Pattern{
		raw: raw,
		re:  regexp.MustCompile(patternSource(raw)),
	}
}

// patternSource returns the anchored regexp source for a wildcard string.
func patternSource(raw string) string {
	if raw == WildcardAll {
		return `(?s)^.*$`
	}

	parts := strings.Split(raw, "*")
	for i, part := range parts {
		parts[i] = regexp.QuoteMeta(part)
	}
	return `(?s)^` + strings.Join(parts, ".*") + `$`
}

// Match reports whether s matches the pattern in full.
func (p *Pattern) Match(s string) bool {
	return p.re.MatchString(s)
}

// Raw returns the wildcard string the pattern was compiled from.
func (p *Pattern) Raw() string {
	return p.raw
}

// String returns the compiled regexp source. Two patterns with the same
// source match exactly the same strings and share a registry bucket.
func (p *Pattern) String() string {
	return p.re.String()
}
