package tagjson

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/hengadev/errsx"
)

const identifierFormat = `[a-zA-Z_$][0-9a-zA-Z_$]*`

var identifierPattern = regexp.MustCompile(`^` + identifierFormat + `$`)

func isIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// Serializer describes how one custom value type is written to and read
// back from tagged JSON strings.
//
// A serializer with a static Name renders a claimed value as
// <marker><Name><json-array>, where the array is the result of Serialize,
// and decodes it by spreading that array into Deserialize. The invariant
// Deserialize(Serialize(v)...) == v must hold for every v that IsInstance
// claims.
//
// A serializer with a NameFunc computes the tag name per value. It must not
// define Deserialize; Restore decodes every tag whose name it recognizes.
//
// Replace, when set, takes over encoding entirely: its result is emitted
// as-is without tagging.
type Serializer struct {
	// Name is used literally in the tagged text and must match
	// [a-zA-Z_$][0-9a-zA-Z_$]*.
	Name string

	// NameFunc computes the tag name for a value. Mutually exclusive with Name.
	NameFunc func(v any) string

	// IsInstance reports whether this serializer owns v. Serializers are
	// tested in install order and the first match wins.
	IsInstance func(v any) bool

	// Serialize returns the arguments Deserialize needs, as a slice or array.
	Serialize func(v any) (any, error)

	// Deserialize rebuilds a value from the decoded arguments.
	Deserialize func(args ...any) (any, error)

	// Restore decodes tags produced with a NameFunc. It reports false when
	// name is not one of its own.
	Restore func(name string, args []any) (any, bool, error)

	// Replace fully overrides how a claimed value is encoded.
	Replace func(v any) (any, error)
}

// Validate checks that the serializer can take part in a round trip. All
// problems are reported at once, keyed by the offending field.
func (s Serializer) Validate() error {
	errs := errsx.Map{}

	if s.NameFunc != nil {
		if s.Name != "" {
			errs.Set("name", errors.New("Name and NameFunc are mutually exclusive"))
		}
		if s.Deserialize != nil {
			errs.Set("deserialize", errors.New("serializers with a computed name must not define Deserialize"))
		}
		if s.Restore == nil {
			errs.Set("restore", errors.New("serializers with a computed name must define Restore"))
		}
	} else {
		if !isIdentifier(s.Name) {
			errs.Set("name", fmt.Errorf("name %q must be a valid identifier", s.Name))
		}
		if s.Deserialize == nil && s.Replace == nil {
			errs.Set("deserialize", errors.New("a Deserialize function is required that rebuilds the value from the arguments returned by Serialize"))
		}
	}

	if s.Serialize == nil && s.Replace == nil {
		errs.Set("serialize", errors.New("a Serialize function is required that returns the arguments needed to rebuild the value"))
	}

	if s.IsInstance == nil {
		errs.Set("isInstance", errors.New("an IsInstance function is required that tells whether a value belongs to this serializer"))
	}

	return errs.AsError()
}

// tagName returns the name written into the tag for v.
func (s Serializer) tagName(v any) string {
	if s.NameFunc != nil {
		return s.NameFunc(v)
	}
	return s.Name
}

// computed reports whether the serializer derives its tag name per value.
func (s Serializer) computed() bool {
	return s.NameFunc != nil
}
