package tagjson

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadConfigFromEnvironment loads configuration from environment variables.
//
// All variables are optional; defaults are applied for any that are unset:
//   - TAGJSON_MARKER: tag prefix (default: #!)
//   - TAGJSON_SERIALIZERS: comma-separated built-in serializer names
//     (default: Date,RegExp,Function,Symbol)
//   - TAGJSON_EXTRA_SERIALIZERS: comma-separated names appended after them
//   - TAGJSON_LENIENT: accept comments and trailing commas ("true"/"false")
//   - TAGJSON_USE_NUMBER: decode numbers as json.Number ("true"/"false")
//   - TAGJSON_INDENT: spaces per level for pretty output
//
// Example usage:
//
//	// export TAGJSON_MARKER="@@!"
//	// export TAGJSON_EXTRA_SERIALIZERS="UUID,Duration"
//
//	cfg, err := tagjson.LoadConfigFromEnvironment()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	codec, err := tagjson.NewFromConfig(cfg)
func LoadConfigFromEnvironment() (Config, error) {
	cfg := Config{
		Marker:      os.Getenv(EnvMarker),
		Serializers: splitList(os.Getenv(EnvSerializers)),
		Extra:       splitList(os.Getenv(EnvExtraSerializers)),
	}

	var err error
	if cfg.Lenient, err = boolFromEnv(EnvLenient); err != nil {
		return Config{}, err
	}
	if cfg.UseNumber, err = boolFromEnv(EnvUseNumber); err != nil {
		return Config{}, err
	}
	if v := os.Getenv(EnvIndent); v != "" {
		if cfg.Indent, err = strconv.Atoi(v); err != nil {
			return Config{}, fmt.Errorf("%s must be an integer: %w", EnvIndent, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func boolFromEnv(key string) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}

// splitList splits a comma-separated list, dropping blanks. An empty input
// yields nil so that defaults apply.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
