// Package jsonbase provides the JSON text primitives the tagging codec is
// layered on: an encoder and a decoder built on encoding/json that expose a
// replacer and a reviver hook over the generic value tree.
package jsonbase

import (
	"bytes"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"

	"github.com/tidwall/jsonc"
)

// ErrSyntax is returned when the input is not a single valid JSON value.
var ErrSyntax = errors.New("invalid json")

// Replacer is called by Stringify for the root value with an empty key and
// then, pre-order, for every member of every container it returns. Array
// members receive their decimal index as key. The returned value is encoded
// in place of the original.
type Replacer func(key string, value any) (any, error)

// Reviver is called by Parse after decoding, post-order: members before
// their container, the root last with an empty key. The returned value
// replaces the decoded one.
type Reviver func(key string, value any) (any, error)

// Stringify encodes v as JSON. A nil replacer is the identity. Object keys
// are emitted in sorted order and HTML characters are not escaped. An empty
// indent produces compact output.
func Stringify(v any, replacer Replacer, indent string) ([]byte, error) {
	tree, err := replace("", v, replacer)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(tree); err != nil {
		return nil, fmt.Errorf("failed to encode json: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func replace(key string, v any, replacer Replacer) (any, error) {
	if replacer != nil {
		var err error
		if v, err = replacer(key, v); err != nil {
			return nil, err
		}
	}

	container, ok := Container(v)
	if !ok {
		return v, nil
	}

	switch members := container.(type) {
	case []any:
		out := make([]any, len(members))
		for i, member := range members {
			replaced, err := replace(strconv.Itoa(i), member, replacer)
			if err != nil {
				return nil, err
			}
			out[i] = replaced
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(members))
		for k, member := range members {
			replaced, err := replace(k, member, replacer)
			if err != nil {
				return nil, err
			}
			out[k] = replaced
		}
		return out, nil
	}
	return v, nil
}

// Container reports whether v is a JSON array or object and, if so, returns
// a shallow copy normalized to []any or map[string]any. Typed slices, arrays,
// string-keyed maps and pointers to them are containers. Byte slices and
// values that marshal themselves are not.
func Container(v any) (any, bool) {
	switch c := v.(type) {
	case nil:
		return nil, false
	case []any:
		return c, true
	case map[string]any:
		return c, true
	case json.Marshaler, encoding.TextMarshaler:
		return nil, false
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
		if rv.CanInterface() {
			switch rv.Interface().(type) {
			case json.Marshaler, encoding.TextMarshaler:
				return nil, false
			}
		}
	}

	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() || rv.Type().Elem().Kind() == reflect.Uint8 {
			return nil, false
		}
		return sliceMembers(rv), true
	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return nil, false
		}
		return sliceMembers(rv), true
	case reflect.Map:
		if rv.IsNil() || rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, true
	}
	return nil, false
}

func sliceMembers(rv reflect.Value) []any {
	out := make([]any, rv.Len())
	for i := range rv.Len() {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

type parseOptions struct {
	useNumber bool
	lenient   bool
}

// ParseOption configures Parse.
type ParseOption func(*parseOptions)

// UseNumber decodes numbers as json.Number instead of float64.
func UseNumber() ParseOption {
	return func(o *parseOptions) { o.useNumber = true }
}

// Lenient accepts // and /* */ comments and trailing commas in the input.
func Lenient() ParseOption {
	return func(o *parseOptions) { o.lenient = true }
}

// Parse decodes exactly one JSON value from data into the generic tree and
// applies reviver to it. A nil reviver is the identity.
func Parse(data []byte, reviver Reviver, opts ...ParseOption) (any, error) {
	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.lenient {
		data = jsonc.ToJSON(data)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if o.useNumber {
		dec.UseNumber()
	}

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after top-level value", ErrSyntax)
	}

	if reviver == nil {
		return v, nil
	}
	return revive("", v, reviver)
}

func revive(key string, v any, reviver Reviver) (any, error) {
	switch container := v.(type) {
	case []any:
		for i, member := range container {
			revived, err := revive(strconv.Itoa(i), member, reviver)
			if err != nil {
				return nil, err
			}
			container[i] = revived
		}
	case map[string]any:
		keys := make([]string, 0, len(container))
		for k := range container {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			revived, err := revive(k, container[k], reviver)
			if err != nil {
				return nil, err
			}
			container[k] = revived
		}
	}
	return reviver(key, v)
}
