package jsonbase

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringify(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		indent string
		want   string
	}{
		{name: "null", value: nil, want: `null`},
		{name: "string without html escaping", value: "<a&b>", want: `"<a&b>"`},
		{name: "sorted object keys", value: map[string]any{"b": 1, "a": true}, want: `{"a":true,"b":1}`},
		{name: "typed slice", value: []int{1, 2, 3}, want: `[1,2,3]`},
		{name: "typed map", value: map[string]string{"k": "v"}, want: `{"k":"v"}`},
		{name: "byte slice stays base64", value: []byte("hi"), want: `"aGk="`},
		{name: "indented", value: map[string]any{"a": []any{1}}, indent: "  ", want: "{\n  \"a\": [\n    1\n  ]\n}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Stringify(tt.value, nil, tt.indent)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestStringify_ReplacerOrder(t *testing.T) {
	var keys []string
	replacer := func(key string, value any) (any, error) {
		keys = append(keys, key)
		return value, nil
	}

	_, err := Stringify(map[string]any{"a": []any{"x", "y"}, "b": 1}, replacer, "")
	require.NoError(t, err)

	require.NotEmpty(t, keys)
	assert.Equal(t, "", keys[0], "root is visited first")
	assert.ElementsMatch(t, []string{"", "a", "0", "1", "b"}, keys)
}

func TestStringify_ReplacerResultIsWalked(t *testing.T) {
	replacer := func(key string, value any) (any, error) {
		if key == "" {
			return []any{"first", "second"}, nil
		}
		if s, ok := value.(string); ok {
			return s + "!", nil
		}
		return value, nil
	}

	got, err := Stringify("ignored", replacer, "")
	require.NoError(t, err)
	assert.Equal(t, `["first!","second!"]`, string(got))
}

func TestStringify_ReplacerError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Stringify([]any{1}, func(key string, value any) (any, error) {
		if key == "0" {
			return nil, boom
		}
		return value, nil
	}, "")
	assert.ErrorIs(t, err, boom)
}

func TestContainer(t *testing.T) {
	type named []string
	arr := [2]int{1, 2}

	tests := []struct {
		name  string
		value any
		want  any
		ok    bool
	}{
		{name: "nil", value: nil, ok: false},
		{name: "generic slice", value: []any{1}, want: []any{1}, ok: true},
		{name: "named slice", value: named{"a"}, want: []any{"a"}, ok: true},
		{name: "array", value: arr, want: []any{1, 2}, ok: true},
		{name: "pointer to array", value: &arr, want: []any{1, 2}, ok: true},
		{name: "string map", value: map[string]int{"a": 1}, want: map[string]any{"a": 1}, ok: true},
		{name: "int keyed map", value: map[int]int{1: 1}, ok: false},
		{name: "byte slice", value: []byte("x"), ok: false},
		{name: "raw message", value: json.RawMessage(`1`), ok: false},
		{name: "time marshals itself", value: time.Unix(0, 0), ok: false},
		{name: "nil typed slice", value: []string(nil), ok: false},
		{name: "scalar", value: 42, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Container(tt.value)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("generic tree", func(t *testing.T) {
		v, err := Parse([]byte(`{"a":[1,"x",null,true]}`), nil)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": []any{float64(1), "x", nil, true}}, v)
	})
	t.Run("use number", func(t *testing.T) {
		v, err := Parse([]byte(`[9007199254740993]`), nil, UseNumber())
		require.NoError(t, err)
		assert.Equal(t, []any{json.Number("9007199254740993")}, v)
	})
	t.Run("lenient input", func(t *testing.T) {
		v, err := Parse([]byte("{\n  // comment\n  /* block */\n  \"a\": [1, 2,], // trailing\n}"), nil, Lenient())
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"a": []any{float64(1), float64(2)}}, v)
	})
	t.Run("strict rejects comments", func(t *testing.T) {
		_, err := Parse([]byte(`[1 /* no */]`), nil)
		assert.ErrorIs(t, err, ErrSyntax)
	})
	t.Run("trailing data", func(t *testing.T) {
		_, err := Parse([]byte(`[1] [2]`), nil)
		assert.ErrorIs(t, err, ErrSyntax)
	})
	t.Run("empty input", func(t *testing.T) {
		_, err := Parse([]byte(``), nil)
		assert.ErrorIs(t, err, ErrSyntax)
	})
	t.Run("surrounding whitespace", func(t *testing.T) {
		v, err := Parse([]byte(" \n\"x\"\n "), nil)
		require.NoError(t, err)
		assert.Equal(t, "x", v)
	})
}

func TestParse_ReviverOrder(t *testing.T) {
	var keys []string
	_, err := Parse([]byte(`{"b":{"c":1},"a":[2,3]}`), func(key string, value any) (any, error) {
		keys = append(keys, key)
		return value, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1", "a", "c", "b", ""}, keys)
}

func TestParse_ReviverReplaces(t *testing.T) {
	v, err := Parse([]byte(`{"a":"x","b":["y"]}`), func(key string, value any) (any, error) {
		if s, ok := value.(string); ok {
			return s + s, nil
		}
		return value, nil
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "xx", "b": []any{"yy"}}, v)
}
