package tagjson

import (
	"encoding"
	"encoding/json"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/hengadev/tagjson/internal/jsonbase"
)

// maxIndent caps the indentation width, as JSON.stringify does.
const maxIndent = 10

// Replacer is called for the root value (key "") and then for every member
// of every container it returns. See StringifyWithReplacer.
type Replacer = jsonbase.Replacer

// Reviver is called bottom-up for every decoded value, the root last with
// key "". See ParseWithReviver.
type Reviver = jsonbase.Reviver

// Codec stringifies and parses JSON text in which values of registered
// types travel as tagged strings. Build one with New and reuse it: the
// configuration is fixed after construction and every method is safe for
// concurrent use.
type Codec struct {
	marker    string
	patterns  markerPatterns
	initial   []Serializer
	registry  *Registry
	logger    *slog.Logger
	metrics   MetricsCollector
	lenient   bool
	useNumber bool
}

// New builds a codec. Without options it uses DefaultMarker and
// DefaultSerializers.
func New(opts ...Option) (*Codec, error) {
	c := &Codec{
		marker:  DefaultMarker,
		initial: DefaultSerializers(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: &NoOpMetricsCollector{},
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if err := validateMarker(c.marker); err != nil {
		return nil, err
	}
	c.patterns = compileMarkerPatterns(c.marker)

	registry, err := NewRegistry(c.initial...)
	if err != nil {
		return nil, err
	}
	c.registry = registry
	c.initial = nil
	return c, nil
}

// Marker returns the configured tag prefix.
func (c *Codec) Marker() string {
	return c.marker
}

// Registry returns the serializers installed in this codec.
func (c *Codec) Registry() *Registry {
	return c.registry
}

// InstallSerializer appends a serializer after construction.
func (c *Codec) InstallSerializer(s Serializer) error {
	return c.registry.Install(s)
}

// Stringify encodes v as compact JSON, tagging every value a serializer
// claims and escaping every string that would otherwise read as a tag.
func (c *Codec) Stringify(v any) ([]byte, error) {
	return c.stringify(v, nil, 0)
}

// StringifyIndent is Stringify with indent spaces per nesting level
// (at most 10). Indentation does not change the decoded value.
func (c *Codec) StringifyIndent(v any, indent int) ([]byte, error) {
	return c.stringify(v, nil, indent)
}

// StringifyWithReplacer hands v and replacer straight to the JSON encoder.
// No tagging or escaping takes place, so nothing protects strings that
// look like tags. A nil replacer behaves like StringifyIndent.
func (c *Codec) StringifyWithReplacer(v any, replacer Replacer, indent int) ([]byte, error) {
	return c.stringify(v, replacer, indent)
}

func (c *Codec) stringify(v any, replacer Replacer, indent int) ([]byte, error) {
	start := time.Now()
	defer func() {
		c.metrics.RecordTiming(MetricStringify, time.Since(start), nil)
	}()

	space := indentString(indent)
	if replacer != nil {
		return jsonbase.Stringify(v, replacer, space)
	}

	replaced, ok, err := c.replaceValue(v)
	if err != nil {
		return nil, err
	}
	if ok {
		return jsonbase.Stringify(replaced, nil, space)
	}
	return jsonbase.Stringify(v, c.replaceMembers, space)
}

func indentString(indent int) string {
	if indent <= 0 {
		return ""
	}
	return strings.Repeat(" ", min(indent, maxIndent))
}

// replaceMembers is the replacer the encoder calls for every value. It
// rewrites the direct members of containers; the encoder then descends into
// whatever members are still containers.
func (c *Codec) replaceMembers(_ string, value any) (any, error) {
	container, ok := jsonbase.Container(value)
	if !ok {
		return value, nil
	}

	switch members := container.(type) {
	case []any:
		out := make([]any, len(members))
		for i, member := range members {
			replaced, ok, err := c.replaceValue(member)
			if err != nil {
				return nil, err
			}
			if !ok {
				replaced = member
			}
			out[i] = replaced
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(members))
		for k, member := range members {
			replaced, ok, err := c.replaceValue(member)
			if err != nil {
				return nil, err
			}
			if !ok {
				replaced = member
			}
			out[k] = replaced
		}
		return out, nil
	}
	return value, nil
}

// replaceValue escapes a tag-like string or tags a value some serializer
// claims. It reports false when v is to be encoded as is.
func (c *Codec) replaceValue(v any) (any, bool, error) {
	if s, ok := v.(string); ok {
		return c.escape(s)
	}

	s, ok := c.registry.ResolveByValue(v)
	if !ok {
		if text, ok := stringValue(v); ok {
			return c.escape(text)
		}
		return nil, false, nil
	}
	tagged, err := c.tag(s, v)
	if err != nil {
		return nil, false, err
	}
	return tagged, true, nil
}

// escape doubles the marker run of a tag-like string.
func (c *Codec) escape(s string) (any, bool, error) {
	m := c.patterns.prefixed.FindStringSubmatch(s)
	if m == nil {
		return nil, false, nil
	}
	c.metrics.IncrementCounter(MetricEncodeEscaped, nil)
	return doubleRun(m[1]) + m[2], true, nil
}

// stringValue returns the text of a value the encoder writes as a JSON
// string: named string types and non-nil pointers or interfaces to them.
// Types with their own JSON or text encoding are left alone.
func stringValue(v any) (string, bool) {
	rv := reflect.ValueOf(v)
	for {
		if !rv.IsValid() {
			return "", false
		}
		if rv.CanInterface() {
			switch rv.Interface().(type) {
			case json.Marshaler, encoding.TextMarshaler:
				return "", false
			}
		}
		if rv.Kind() != reflect.Pointer && rv.Kind() != reflect.Interface {
			break
		}
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.String {
		return "", false
	}
	return rv.String(), true
}

// tag renders v as <marker><name><json-array>. Errors returned by the
// serializer itself are passed through untouched.
func (c *Codec) tag(s Serializer, v any) (any, error) {
	if s.Replace != nil {
		return s.Replace(v)
	}

	name := s.tagName(v)
	if !isIdentifier(name) {
		return nil, NewInvalidComputedNameError(name)
	}

	args, err := s.Serialize(v)
	if err != nil {
		return nil, err
	}
	if !isArgumentList(args) {
		return nil, NewNonSequenceArgumentsError(name, args)
	}
	if rv := reflect.ValueOf(args); rv.Kind() == reflect.Slice && rv.IsNil() {
		args = []any{}
	}

	encoded, err := jsonbase.Stringify(args, nil, "")
	if err != nil {
		return nil, NewArgumentEncodingError(name, err)
	}

	c.metrics.IncrementCounter(MetricEncodeTagged, map[string]string{"serializer": name})
	return c.marker + name + string(encoded), nil
}

// isArgumentList reports whether args encodes as a JSON array.
func isArgumentList(args any) bool {
	if args == nil {
		return false
	}
	rv := reflect.ValueOf(args)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Type().Elem().Kind() != reflect.Uint8
	}
	return false
}

// Parse decodes JSON text, reviving tagged strings through the registry and
// restoring escaped ones. A tag whose arguments do not decode, whose
// serializer is unknown, or whose Deserialize fails stays a plain string:
// Parse only fails when data is not valid JSON.
func (c *Codec) Parse(data []byte) (any, error) {
	return c.ParseWithReviver(data, nil)
}

// ParseWithReviver hands data and reviver straight to the JSON decoder
// without reviving tags. A nil reviver behaves like Parse.
func (c *Codec) ParseWithReviver(data []byte, reviver Reviver) (any, error) {
	start := time.Now()
	defer func() {
		c.metrics.RecordTiming(MetricParse, time.Since(start), nil)
	}()

	if reviver != nil {
		return jsonbase.Parse(data, reviver, c.parseOptions()...)
	}

	v, err := jsonbase.Parse(data, c.reviveMembers, c.parseOptions()...)
	if err != nil {
		return nil, err
	}
	if s, ok := v.(string); ok {
		if revived, ok := c.reviveValue(s); ok {
			return revived, nil
		}
	}
	return v, nil
}

func (c *Codec) parseOptions() []jsonbase.ParseOption {
	var opts []jsonbase.ParseOption
	if c.lenient {
		opts = append(opts, jsonbase.Lenient())
	}
	if c.useNumber {
		opts = append(opts, jsonbase.UseNumber())
	}
	return opts
}

// reviveMembers is the reviver the decoder calls post-order for every value.
// Members are already revived by the time their container is visited, so
// each decoded string is seen exactly once.
func (c *Codec) reviveMembers(_ string, value any) (any, error) {
	switch container := value.(type) {
	case map[string]any:
		for k, member := range container {
			s, ok := member.(string)
			if !ok {
				continue
			}
			if revived, ok := c.reviveValue(s); ok {
				container[k] = revived
			}
		}
	case []any:
		for i, member := range container {
			s, ok := member.(string)
			if !ok {
				continue
			}
			if revived, ok := c.reviveValue(s); ok {
				container[i] = revived
			}
		}
	}
	return value, nil
}

// stringKind is how Parse reads a decoded string.
type stringKind int

const (
	plainString stringKind = iota
	taggedString
	degradedString
	escapedString
)

type decodedString struct {
	kind   stringKind
	name   string
	value  any
	reason string
	err    error
}

// decodeString classifies s as tagged, escaped or plain, in that order, and
// computes the value it stands for. It has no side effects beyond calling
// the serializer.
func (c *Codec) decodeString(s string) decodedString {
	if m := c.patterns.tagged.FindStringSubmatch(s); m != nil {
		name, argText := m[1], m[2]

		parsed, err := jsonbase.Parse([]byte(argText), nil, c.argumentOptions()...)
		if err != nil {
			return decodedString{kind: degradedString, name: name, reason: "arguments are not a JSON array", err: err}
		}
		args, ok := parsed.([]any)
		if !ok {
			return decodedString{kind: degradedString, name: name, reason: "arguments are not a JSON array"}
		}

		v, ok, err := c.registry.restore(name, args)
		if err != nil {
			return decodedString{kind: degradedString, name: name, reason: "deserialize failed", err: err}
		}
		if !ok {
			return decodedString{kind: degradedString, name: name, reason: "no serializer with this name"}
		}
		return decodedString{kind: taggedString, name: name, value: v}
	}

	if m := c.patterns.prefixed.FindStringSubmatch(s); m != nil {
		return decodedString{kind: escapedString, value: halveRun(m[1]) + m[2]}
	}
	return decodedString{kind: plainString}
}

// reviveValue returns the value s stands for. It reports false for plain
// strings and for tags that degrade to their literal text.
func (c *Codec) reviveValue(s string) (any, bool) {
	d := c.decodeString(s)
	switch d.kind {
	case taggedString:
		c.metrics.IncrementCounter(MetricDecodeTagged, map[string]string{"serializer": d.name})
		return d.value, true
	case escapedString:
		c.metrics.IncrementCounter(MetricDecodeUnescaped, nil)
		return d.value, true
	case degradedString:
		c.degrade(d.name, d.reason, d.err)
	}
	return nil, false
}

func (c *Codec) argumentOptions() []jsonbase.ParseOption {
	if c.useNumber {
		return []jsonbase.ParseOption{jsonbase.UseNumber()}
	}
	return nil
}

func (c *Codec) degrade(name string, reason string, err error) {
	c.metrics.IncrementCounter(MetricDecodeDegraded, map[string]string{"serializer": name})
	attrs := []any{"serializer", name, "reason", reason}
	if err != nil {
		attrs = append(attrs, "error", err)
	}
	c.logger.Debug("tagged string left as text", attrs...)
}
