// Package tagjson extends JSON with round-tripping of values outside its
// type set (times, regular expressions, symbols, callables with source text,
// and any type you register) while producing ordinary, valid JSON text.
//
// A value claimed by a registered serializer is written as a tagged string:
//
//	<marker><name><json-array>
//
// With the default marker "#!", a time becomes "#!Date[1700000000000]".
// Parsing recognizes the tag, looks the serializer up by name and rebuilds
// the value from the argument array.
//
// # Escaping
//
// A user string that merely looks like a tag is never misread. On
// Stringify, any string made of a run of marker characters followed by
// tag-like text has every character of that run doubled; Parse halves the
// run again. The string "#!Date[x]" is written as "##!!Date[x]" and reads
// back as "#!Date[x]", and "##!!Date[x]" is written as "####!!!!Date[x]".
// Stringify followed by Parse reproduces every string byte for byte. This
// covers named string types and pointers to strings held in maps, slices
// and arrays. Struct fields are the exception: a struct no serializer claims
// is encoded as is, so its string fields are not escaped.
//
// # Quick Start
//
//	codec, err := tagjson.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	text, err := codec.Stringify(map[string]any{
//	    "created": time.UnixMilli(343434).UTC(),
//	    "match":   tagjson.MustRegExp(`abc\d`, "gi"),
//	})
//	// {"created":"#!Date[343434]","match":"#!RegExp[\"abc\\\\d\",\"gi\"]"}
//
//	v, err := codec.Parse(text)
//	// v.(map[string]any)["created"] is a time.Time again
//
// # Custom Serializers
//
//	type Point struct{ X, Y float64 }
//
//	codec, err := tagjson.New(tagjson.WithAdditionalSerializers(tagjson.Serializer{
//	    Name:       "Point",
//	    IsInstance: func(v any) bool { _, ok := v.(Point); return ok },
//	    Serialize:  func(v any) (any, error) { p := v.(Point); return []any{p.X, p.Y}, nil },
//	    Deserialize: func(args ...any) (any, error) {
//	        return Point{X: args[0].(float64), Y: args[1].(float64)}, nil
//	    },
//	}))
//
// Serializers are tried in install order and the first whose IsInstance
// claims a value wins. Arguments are encoded as plain JSON: custom values
// nested inside them are not tagged.
//
// # Error Handling
//
// Construction and InstallSerializer fail with ErrInvalidConfiguration when
// a marker or serializer is unusable. Stringify fails with ErrEncoding when
// a serializer returns something other than an argument slice, and passes
// serializer errors such as ErrUnsupportedValue through unchanged.
//
// Parse never fails because of tags. A tag with malformed arguments, an
// unknown name or a failing Deserialize stays a plain string; Parse only
// fails when the input is not valid JSON:
//
//	v, _ := codec.Parse([]byte(`"#!Unknown[1,2]"`))
//	// v == "#!Unknown[1,2]"
//
// # Configuration
//
// A Codec is configured once and then only read, so it can be shared by
// any number of goroutines. Configuration can also come from YAML
// (LoadConfigFile) or the environment (LoadConfigFromEnvironment).
package tagjson
