package tagjson

import (
	"fmt"
	"log/slog"
)

type Option func(c *Codec) error

// WithMarker sets the prefix that introduces a tagged value. It is
// validated when the codec is built.
func WithMarker(marker string) Option {
	return func(c *Codec) error {
		c.marker = marker
		return nil
	}
}

// WithSerializers replaces the default serializer list. Order matters:
// the first serializer whose IsInstance claims a value encodes it.
func WithSerializers(serializers ...Serializer) Option {
	return func(c *Codec) error {
		c.initial = append([]Serializer(nil), serializers...)
		return nil
	}
}

// WithAdditionalSerializers appends serializers after the current list.
func WithAdditionalSerializers(serializers ...Serializer) Option {
	return func(c *Codec) error {
		c.initial = append(c.initial, serializers...)
		return nil
	}
}

// WithSerializerNames replaces the default serializer list with built-in
// serializers looked up by name.
func WithSerializerNames(names ...string) Option {
	return func(c *Codec) error {
		serializers := make([]Serializer, 0, len(names))
		for _, name := range names {
			s, ok := SerializerByName(name)
			if !ok {
				return fmt.Errorf("%w: unknown built-in serializer '%s'", ErrInvalidConfiguration, name)
			}
			serializers = append(serializers, s)
		}
		c.initial = serializers
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Codec) error {
		if logger == nil {
			return fmt.Errorf("%w: logger cannot be nil", ErrInvalidConfiguration)
		}
		c.logger = logger
		return nil
	}
}

func WithMetricsCollector(metrics MetricsCollector) Option {
	return func(c *Codec) error {
		if metrics == nil {
			return fmt.Errorf("%w: metrics collector cannot be nil", ErrInvalidConfiguration)
		}
		c.metrics = metrics
		return nil
	}
}

// WithLenientParsing makes Parse accept comments and trailing commas.
func WithLenientParsing() Option {
	return func(c *Codec) error {
		c.lenient = true
		return nil
	}
}

// WithUseNumber makes Parse decode numbers as json.Number, including the
// arguments handed to Deserialize.
func WithUseNumber() Option {
	return func(c *Codec) error {
		c.useNumber = true
		return nil
	}
}
