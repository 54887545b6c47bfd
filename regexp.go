package tagjson

import (
	"fmt"
	"regexp"
	"strings"
)

// RegExp is a compiled pattern that remembers the source and flags it was
// built from, so it can be written out and rebuilt exactly.
//
// Flags are a subset of "gmi": m makes ^ and $ match at line breaks, i makes
// matching case-insensitive, g marks the pattern as global for callers that
// care and has no effect on matching.
type RegExp struct {
	*regexp.Regexp
	source     string
	global     bool
	multiline  bool
	ignoreCase bool
}

// NewRegExp compiles source with the given flags.
func NewRegExp(source, flags string) (*RegExp, error) {
	r := &RegExp{source: source}
	for _, f := range flags {
		var set *bool
		switch f {
		case 'g':
			set = &r.global
		case 'm':
			set = &r.multiline
		case 'i':
			set = &r.ignoreCase
		default:
			return nil, fmt.Errorf("invalid regular expression flag %q in %q", f, flags)
		}
		if *set {
			return nil, fmt.Errorf("duplicate regular expression flag %q in %q", f, flags)
		}
		*set = true
	}

	var inline strings.Builder
	if r.multiline {
		inline.WriteByte('m')
	}
	if r.ignoreCase {
		inline.WriteByte('i')
	}
	expr := source
	if inline.Len() > 0 {
		expr = "(?" + inline.String() + ")" + source
	}

	compiled, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile regular expression: %w", err)
	}
	r.Regexp = compiled
	return r, nil
}

// MustRegExp is like NewRegExp but panics if the pattern does not compile.
func MustRegExp(source, flags string) *RegExp {
	r, err := NewRegExp(source, flags)
	if err != nil {
		panic(err)
	}
	return r
}

// Source returns the pattern without the inline flag group.
func (r *RegExp) Source() string { return r.source }

// Flags returns the set flags in "gmi" order.
func (r *RegExp) Flags() string {
	var b strings.Builder
	if r.global {
		b.WriteByte('g')
	}
	if r.multiline {
		b.WriteByte('m')
	}
	if r.ignoreCase {
		b.WriteByte('i')
	}
	return b.String()
}

func (r *RegExp) Global() bool     { return r.global }
func (r *RegExp) Multiline() bool  { return r.multiline }
func (r *RegExp) IgnoreCase() bool { return r.ignoreCase }

// String returns the pattern in /source/flags notation.
func (r *RegExp) String() string {
	return "/" + r.source + "/" + r.Flags()
}
