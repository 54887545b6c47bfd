package tagjson

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultMarker is the prefix used when none is configured.
const DefaultMarker = "#!"

// validateMarker rejects markers that would make tagged text ambiguous.
// Marker runes must not be identifier characters or brackets, so a prefix
// run always ends where the serializer name begins. A marker in doubled
// form ("##", "##!!") is rejected because it is also the escape of a
// shorter prefix run.
func validateMarker(marker string) error {
	if marker == "" {
		return NewInvalidMarkerError(marker, "cannot be empty")
	}
	if !utf8.ValidString(marker) {
		return NewInvalidMarkerError(marker, "must be valid UTF-8")
	}
	for _, r := range marker {
		if isIdentifierRune(r) || r == '[' || r == ']' {
			return NewInvalidMarkerError(marker, fmt.Sprintf("cannot contain %q", r))
		}
	}
	if isDoubled([]rune(marker)) {
		return NewInvalidMarkerError(marker, "cannot consist of doubled characters")
	}
	return nil
}

func isIdentifierRune(r rune) bool {
	return r == '_' || r == '$' ||
		('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')
}

func isDoubled(runes []rune) bool {
	if len(runes)%2 != 0 {
		return false
	}
	for i := 0; i < len(runes); i += 2 {
		if runes[i] != runes[i+1] {
			return false
		}
	}
	return true
}

// markerPatterns holds the two expressions that classify strings.
type markerPatterns struct {
	// tagged matches <marker><name><[args]> and captures name and args.
	tagged *regexp.Regexp
	// prefixed matches a run of marker runes followed by tag-like text and
	// captures the run and the rest.
	prefixed *regexp.Regexp
}

func compileMarkerPatterns(marker string) markerPatterns {
	var class strings.Builder
	for _, r := range marker {
		fmt.Fprintf(&class, `\x{%x}`, r)
	}

	return markerPatterns{
		tagged: regexp.MustCompile(`(?s)^` + regexp.QuoteMeta(marker) +
			`(` + identifierFormat + `)(\[.*\])$`),
		prefixed: regexp.MustCompile(`(?s)^([` + class.String() + `]+)(` +
			identifierFormat + `\[.*\])$`),
	}
}

// doubleRun writes every rune of run twice.
func doubleRun(run string) string {
	var b strings.Builder
	b.Grow(2 * len(run))
	for _, r := range run {
		b.WriteRune(r)
		b.WriteRune(r)
	}
	return b.String()
}

// halveRun collapses each pair of equal adjacent runes into one, scanning
// left to right. It inverts doubleRun.
func halveRun(run string) string {
	runes := []rune(run)
	var b strings.Builder
	b.Grow(len(run) / 2)
	for i := 0; i < len(runes); {
		b.WriteRune(runes[i])
		if i+1 < len(runes) && runes[i+1] == runes[i] {
			i += 2
		} else {
			i++
		}
	}
	return b.String()
}
