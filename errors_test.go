package tagjson

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{"Invalid Configuration", ErrInvalidConfiguration, ErrInvalidConfiguration},
		{"Encoding", ErrEncoding, ErrEncoding},
		{"Unsupported Value", ErrUnsupportedValue, ErrUnsupportedValue},
		{"Invalid JSON", ErrInvalidJSON, ErrInvalidJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("context: %w", tt.err)
			if !errors.Is(wrapped, tt.expected) {
				t.Errorf("Expected errors.Is(wrapped, %v) to be true", tt.expected)
			}
		})
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		isConfig      bool
		isEncoding    bool
		isUnsupported bool
	}{
		{
			name:     "Invalid Serializer",
			err:      NewInvalidSerializerError("Date", errors.New("missing")),
			isConfig: true,
		},
		{
			name:     "Duplicate Serializer",
			err:      NewDuplicateSerializerError("Date"),
			isConfig: true,
		},
		{
			name:     "Invalid Marker",
			err:      NewInvalidMarkerError("", "cannot be empty"),
			isConfig: true,
		},
		{
			name:       "Non-sequence Arguments",
			err:        NewNonSequenceArgumentsError("Date", 1),
			isEncoding: true,
		},
		{
			name:       "Invalid Computed Name",
			err:        NewInvalidComputedNameError("1abc"),
			isEncoding: true,
		},
		{
			name:          "Unsupported Value",
			err:           NewUnsupportedValueError("func()", "no source"),
			isUnsupported: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsConfigurationError(tt.err); got != tt.isConfig {
				t.Errorf("IsConfigurationError() = %v, want %v", got, tt.isConfig)
			}
			if got := IsEncodingError(tt.err); got != tt.isEncoding {
				t.Errorf("IsEncodingError() = %v, want %v", got, tt.isEncoding)
			}
			if got := IsUnsupportedValueError(tt.err); got != tt.isUnsupported {
				t.Errorf("IsUnsupportedValueError() = %v, want %v", got, tt.isUnsupported)
			}
		})
	}
}

func TestNewInvalidSerializerError_Unwraps(t *testing.T) {
	problems := errors.New("name must be a valid identifier")
	err := NewInvalidSerializerError("", problems)

	if !errors.Is(err, problems) {
		t.Errorf("expected %v to wrap %v", err, problems)
	}
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("expected %v to wrap ErrInvalidConfiguration", err)
	}
}
