package gen

import "slices"

// DefaultIndent is the indentation used when printing the schema.
const DefaultIndent = "  "

// Config holds the global configuration of a compile.
type Config struct {
	// Header is an optional comment printed at the top of the schema document,
	// for example "Code generated by augment. DO NOT EDIT.".
	Header string

	// Indent is the indentation used by the printer. Defaults to two spaces.
	Indent string

	// Features enables optional features on top of the defaults.
	Features []Feature

	// Disabled lists names of default features that were turned off.
	Disabled []string
}

// FeatureEnabled reports if the given feature is enabled.
func (c *Config) FeatureEnabled(f Feature) bool {
	if c == nil {
		return f.Default
	}
	if slices.Contains(c.Disabled, f.Name) {
		return false
	}
	for _, e := range c.Features {
		if e.Name == f.Name {
			return true
		}
	}
	return f.Default
}

// IndentOrDefault returns the configured indentation or DefaultIndent.
func (c *Config) IndentOrDefault() string {
	if c == nil || c.Indent == "" {
		return DefaultIndent
	}
	return c.Indent
}
