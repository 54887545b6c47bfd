package tagjson

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// DateSerializer encodes time.Time as milliseconds since the Unix epoch.
// Decoded times are in UTC and lose sub-millisecond precision.
var DateSerializer = Serializer{
	Name: "Date",
	IsInstance: func(v any) bool {
		switch t := v.(type) {
		case time.Time:
			return true
		case *time.Time:
			return t != nil
		}
		return false
	},
	Serialize: func(v any) (any, error) {
		switch t := v.(type) {
		case time.Time:
			return []any{t.UnixMilli()}, nil
		case *time.Time:
			return []any{t.UnixMilli()}, nil
		}
		return nil, NewUnsupportedValueError(fmt.Sprintf("%T", v), "not a time")
	},
	Deserialize: func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("Date expects 1 argument, got %d", len(args))
		}
		ms, err := int64Argument(args[0])
		if err != nil {
			return nil, fmt.Errorf("Date time value: %w", err)
		}
		return time.UnixMilli(ms).UTC(), nil
	},
}

// RegExpSerializer encodes *RegExp as [source, flags]. A plain
// *regexp.Regexp is accepted too and decodes as a *RegExp without flags.
var RegExpSerializer = Serializer{
	Name: "RegExp",
	IsInstance: func(v any) bool {
		switch r := v.(type) {
		case *RegExp:
			return r != nil
		case *regexp.Regexp:
			return r != nil
		}
		return false
	},
	Serialize: func(v any) (any, error) {
		switch r := v.(type) {
		case *RegExp:
			return []any{r.Source(), r.Flags()}, nil
		case *regexp.Regexp:
			return []any{r.String(), ""}, nil
		}
		return nil, NewUnsupportedValueError(fmt.Sprintf("%T", v), "not a regular expression")
	},
	Deserialize: func(args ...any) (any, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("RegExp expects 2 arguments, got %d", len(args))
		}
		source, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("RegExp source must be a string, got %T", args[0])
		}
		flags, ok := args[1].(string)
		if !ok {
			return nil, fmt.Errorf("RegExp flags must be a string, got %T", args[1])
		}
		return NewRegExp(source, flags)
	},
}

// FunctionSerializer encodes callables that expose their source text as
// [params, body]. Go funcs are claimed too, so they fail loudly with
// ErrUnsupportedValue instead of being dropped.
var FunctionSerializer = Serializer{
	Name: "Function",
	IsInstance: func(v any) bool {
		if _, ok := v.(FunctionSource); ok {
			return true
		}
		return v != nil && reflect.TypeOf(v).Kind() == reflect.Func
	},
	Serialize: func(v any) (any, error) {
		fn, ok := v.(FunctionSource)
		if !ok {
			return nil, NewUnsupportedValueError(fmt.Sprintf("%T", v), "Go functions have no source text to serialize")
		}
		params, body, err := parseFunctionSource(fn.FuncSource())
		if err != nil {
			return nil, err
		}
		return []any{params, body}, nil
	},
	Deserialize: func(args ...any) (any, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("Function expects 2 arguments, got %d", len(args))
		}
		params, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("Function parameters must be a string, got %T", args[0])
		}
		body, ok := args[1].(string)
		if !ok {
			return nil, fmt.Errorf("Function body must be a string, got %T", args[1])
		}
		return &Function{Params: params, Body: body}, nil
	},
}

// SymbolSerializer encodes *Symbol as a 3-tuple where exactly one position
// is set: [key, 0, 0] for registered symbols, [0, name, 0] for well-known
// ones and [0, 0, description] for local ones.
var SymbolSerializer = Serializer{
	Name: "Symbol",
	IsInstance: func(v any) bool {
		s, ok := v.(*Symbol)
		return ok && s != nil
	},
	Serialize: func(v any) (any, error) {
		s := v.(*Symbol)
		if key, ok := KeyFor(s); ok {
			return []any{key, 0, 0}, nil
		}
		if s.wellKnown != "" {
			return []any{0, s.wellKnown, 0}, nil
		}
		return []any{0, 0, s.description}, nil
	},
	Deserialize: func(args ...any) (any, error) {
		if len(args) != 3 {
			return nil, fmt.Errorf("Symbol expects 3 arguments, got %d", len(args))
		}
		if key, ok := args[0].(string); ok {
			return SymbolFor(key), nil
		}
		if name, ok := args[1].(string); ok {
			s, ok := WellKnownSymbol(name)
			if !ok {
				return nil, fmt.Errorf("unknown well-known symbol %q", name)
			}
			return s, nil
		}
		description, _ := args[2].(string)
		return NewSymbol(description), nil
	},
}

// UUIDSerializer encodes uuid.UUID as its canonical string. It is not part
// of the default list; uuid.UUID otherwise encodes as a plain string and
// decodes as one.
var UUIDSerializer = Serializer{
	Name: "UUID",
	IsInstance: func(v any) bool {
		switch id := v.(type) {
		case uuid.UUID:
			return true
		case *uuid.UUID:
			return id != nil
		}
		return false
	},
	Serialize: func(v any) (any, error) {
		switch id := v.(type) {
		case uuid.UUID:
			return []any{id.String()}, nil
		case *uuid.UUID:
			return []any{id.String()}, nil
		}
		return nil, NewUnsupportedValueError(fmt.Sprintf("%T", v), "not a UUID")
	},
	Deserialize: func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("UUID expects 1 argument, got %d", len(args))
		}
		s, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("UUID value must be a string, got %T", args[0])
		}
		return uuid.Parse(s)
	},
}

// DurationSerializer encodes time.Duration in its string form ("1h2m3s"),
// which parses back exactly.
var DurationSerializer = Serializer{
	Name: "Duration",
	IsInstance: func(v any) bool {
		_, ok := v.(time.Duration)
		return ok
	},
	Serialize: func(v any) (any, error) {
		return []any{v.(time.Duration).String()}, nil
	},
	Deserialize: func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("Duration expects 1 argument, got %d", len(args))
		}
		s, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("Duration value must be a string, got %T", args[0])
		}
		return time.ParseDuration(s)
	},
}

// DefaultSerializers returns the serializers a codec installs when none are
// configured: Date, RegExp, Function and Symbol, in that order.
func DefaultSerializers() []Serializer {
	return []Serializer{DateSerializer, RegExpSerializer, FunctionSerializer, SymbolSerializer}
}

var builtinSerializers = map[string]Serializer{
	DateSerializer.Name:     DateSerializer,
	RegExpSerializer.Name:   RegExpSerializer,
	FunctionSerializer.Name: FunctionSerializer,
	SymbolSerializer.Name:   SymbolSerializer,
	UUIDSerializer.Name:     UUIDSerializer,
	DurationSerializer.Name: DurationSerializer,
}

// SerializerByName returns the built-in serializer with the given name.
func SerializerByName(name string) (Serializer, bool) {
	s, ok := builtinSerializers[name]
	return s, ok
}

// BuiltinSerializerNames lists every built-in serializer name.
func BuiltinSerializerNames() []string {
	return []string{
		DateSerializer.Name, RegExpSerializer.Name, FunctionSerializer.Name,
		SymbolSerializer.Name, UUIDSerializer.Name, DurationSerializer.Name,
	}
}

// int64Argument converts a decoded JSON number to an int64.
func int64Argument(v any) (int64, error) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.IsNaN(n) {
			return 0, fmt.Errorf("%v is not an integer", n)
		}
		if n < -(1<<63) || n >= 1<<63 {
			return 0, fmt.Errorf("%v overflows int64", n)
		}
		return int64(n), nil
	case json.Number:
		return n.Int64()
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	}
	return 0, fmt.Errorf("expected a number, got %T", v)
}
