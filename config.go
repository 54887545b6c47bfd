package tagjson

import (
	"fmt"
	"os"
	"strings"

	"github.com/hengadev/errsx"
	"gopkg.in/yaml.v3"
)

// Config holds a codec configuration that can be loaded from a file or the
// environment and turned into options with Options.
//
// Example usage:
//
//	cfg := tagjson.Config{
//	    Marker:      "#!",
//	    Serializers: []string{"Date", "RegExp"},
//	    Extra:       []string{"UUID"},
//	}
//
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
//	codec, err := tagjson.NewFromConfig(cfg)
type Config struct {
	// Marker is the tag prefix. Default: "#!"
	Marker string `yaml:"marker"`

	// Serializers lists built-in serializer names in install order.
	// Default: Date, RegExp, Function, Symbol
	Serializers []string `yaml:"serializers"`

	// Extra lists built-in serializers appended after Serializers.
	Extra []string `yaml:"extra,omitempty"`

	// Lenient accepts comments and trailing commas when parsing.
	Lenient bool `yaml:"lenient"`

	// UseNumber decodes numbers as json.Number.
	UseNumber bool `yaml:"use_number"`

	// Indent is the number of spaces per level used by tools that print
	// JSON with this configuration. Zero means compact output.
	Indent int `yaml:"indent"`
}

// DefaultConfig returns the configuration New uses without options.
func DefaultConfig() Config {
	return Config{
		Marker:      DefaultMarker,
		Serializers: serializerNames(DefaultSerializers()),
	}
}

// Validate applies defaults to empty fields and checks every field,
// reporting all problems at once.
func (c *Config) Validate() error {
	if c.Marker == "" {
		c.Marker = DefaultMarker
	}
	if c.Serializers == nil {
		c.Serializers = serializerNames(DefaultSerializers())
	}

	errs := errsx.Map{}
	if err := validateMarker(c.Marker); err != nil {
		errs.Set("marker", err)
	}

	seen := make(map[string]bool)
	for _, name := range append(append([]string(nil), c.Serializers...), c.Extra...) {
		if _, ok := SerializerByName(name); !ok {
			errs.Set("serializers", fmt.Errorf("unknown serializer '%s', must be one of [%s]",
				name, strings.Join(BuiltinSerializerNames(), ", ")))
			continue
		}
		if seen[name] {
			errs.Set("serializers", fmt.Errorf("serializer '%s' is listed more than once", name))
		}
		seen[name] = true
	}

	if c.Indent < 0 || c.Indent > maxIndent {
		errs.Set("indent", fmt.Errorf("indent must be between 0 and %d, got %d", maxIndent, c.Indent))
	}

	if err := errs.AsError(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	return nil
}

// Options converts the configuration to codec options.
func (c Config) Options() []Option {
	names := append(append([]string(nil), c.Serializers...), c.Extra...)
	opts := []Option{
		WithMarker(c.Marker),
		WithSerializerNames(names...),
	}
	if c.Lenient {
		opts = append(opts, WithLenientParsing())
	}
	if c.UseNumber {
		opts = append(opts, WithUseNumber())
	}
	return opts
}

// NewFromConfig validates cfg and builds a codec from it. Extra options are
// applied after the configuration, so WithAdditionalSerializers can add
// custom serializers to a configured list.
func NewFromConfig(cfg Config, opts ...Option) (*Codec, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return New(append(cfg.Options(), opts...)...)
}

// LoadConfigFile reads a YAML configuration file and validates it.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// SaveConfigFile writes cfg as YAML.
func SaveConfigFile(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func serializerNames(serializers []Serializer) []string {
	names := make([]string, 0, len(serializers))
	for _, s := range serializers {
		names = append(names, s.Name)
	}
	return names
}
