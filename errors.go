package tagjson

import (
	"errors"
	"fmt"

	"github.com/hengadev/tagjson/internal/jsonbase"
)

var (
	// Construction-time errors
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// Stringify errors
	ErrEncoding         = errors.New("encoding failed")
	ErrUnsupportedValue = errors.New("unsupported value")

	// Parse errors
	ErrInvalidJSON = jsonbase.ErrSyntax
)

func NewInvalidSerializerError(name string, problems error) error {
	if name == "" {
		return fmt.Errorf("%w: serializer: %w", ErrInvalidConfiguration, problems)
	}
	return fmt.Errorf("%w: serializer '%s': %w", ErrInvalidConfiguration, name, problems)
}

func NewDuplicateSerializerError(name string) error {
	return fmt.Errorf("%w: a serializer named '%s' is already installed", ErrInvalidConfiguration, name)
}

func NewInvalidMarkerError(marker string, reason string) error {
	return fmt.Errorf("%w: marker %q %s", ErrInvalidConfiguration, marker, reason)
}

func NewNonSequenceArgumentsError(name string, got any) error {
	return fmt.Errorf("%w: serializer '%s' must return a slice of arguments for Deserialize, got %T",
		ErrEncoding, name, got)
}

func NewArgumentEncodingError(name string, err error) error {
	return fmt.Errorf("%w: arguments of serializer '%s': %w", ErrEncoding, name, err)
}

func NewInvalidComputedNameError(name string) error {
	return fmt.Errorf("%w: computed serializer name %q is not a valid identifier", ErrEncoding, name)
}

func NewUnsupportedValueError(typeName string, details string) error {
	return fmt.Errorf("%w: %s: %s", ErrUnsupportedValue, typeName, details)
}

// IsConfigurationError returns true if the error was raised while validating a marker or serializer.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}

// IsEncodingError returns true if a serializer produced output the codec cannot tag.
func IsEncodingError(err error) bool {
	return errors.Is(err, ErrEncoding)
}

// IsUnsupportedValueError returns true if a serializer refused a value it claimed.
func IsUnsupportedValueError(err error) bool {
	return errors.Is(err, ErrUnsupportedValue)
}
