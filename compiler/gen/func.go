package gen

import (
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
)

var (
	rules = inflect.NewDefaultRuleset()

	// acronyms are upper-cased as a whole by Pascal.
	acronyms = map[string]bool{
		"api":  true,
		"html": true,
		"http": true,
		"id":   true,
		"ip":   true,
		"json": true,
		"sql":  true,
		"url":  true,
		"uuid": true,
		"xml":  true,
	}
)

// Plural returns the plural form of a type name.
func Plural(name string) string {
	return rules.Pluralize(name)
}

// UpperFirst upper-cases the first byte of s.
func UpperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// LowerFirst lower-cases the first byte of s.
func LowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// Pascal converts a field or type name to an exported Go identifier.
//
//	Pascal("screenTime") // ScreenTime
//	Pascal("user_id")    // UserID
func Pascal(s string) string {
	var b strings.Builder
	for _, w := range words(s) {
		lw := strings.ToLower(w)
		if acronyms[lw] {
			b.WriteString(strings.ToUpper(lw))
			continue
		}
		b.WriteString(UpperFirst(w))
	}
	return b.String()
}

// words splits s on separators and lower-to-upper case boundaries.
func words(s string) []string {
	var (
		ws  []string
		cur []rune
	)
	flush := func() {
		if len(cur) > 0 {
			ws = append(ws, string(cur))
			cur = cur[:0]
		}
	}
	rs := []rune(s)
	for i, r := range rs {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
		case unicode.IsUpper(r) && i > 0 && unicode.IsLower(rs[i-1]):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()
	return ws
}
