package tagjson

import (
	"testing"

	"github.com/hengadev/errsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializerValidate(t *testing.T) {
	always := func(any) bool { return true }
	serialize := func(any) (any, error) { return []any{}, nil }
	deserialize := func(...any) (any, error) { return nil, nil }
	restore := func(string, []any) (any, bool, error) { return nil, false, nil }
	nameFunc := func(any) string { return "X" }

	tests := []struct {
		name         string
		serializer   Serializer
		expectedKeys []string
	}{
		{
			name:       "complete static serializer",
			serializer: Serializer{Name: "Ok", IsInstance: always, Serialize: serialize, Deserialize: deserialize},
		},
		{
			name:       "replace only",
			serializer: Serializer{Name: "Ok", IsInstance: always, Replace: serialize},
		},
		{
			name:       "complete computed serializer",
			serializer: Serializer{NameFunc: nameFunc, IsInstance: always, Serialize: serialize, Restore: restore},
		},
		{
			name:         "empty",
			serializer:   Serializer{},
			expectedKeys: []string{"name", "deserialize", "serialize", "isInstance"},
		},
		{
			name:         "name is not an identifier",
			serializer:   Serializer{Name: "has space", IsInstance: always, Serialize: serialize, Deserialize: deserialize},
			expectedKeys: []string{"name"},
		},
		{
			name:         "missing deserialize",
			serializer:   Serializer{Name: "Ok", IsInstance: always, Serialize: serialize},
			expectedKeys: []string{"deserialize"},
		},
		{
			name: "computed with static name and deserialize",
			serializer: Serializer{Name: "Ok", NameFunc: nameFunc, IsInstance: always,
				Serialize: serialize, Deserialize: deserialize},
			expectedKeys: []string{"name", "deserialize", "restore"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.serializer.Validate()
			if len(tt.expectedKeys) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			errs, ok := err.(errsx.Map)
			require.True(t, ok, "expected errsx.Map, got %T", err)
			assert.Len(t, errs, len(tt.expectedKeys))
			for _, key := range tt.expectedKeys {
				assert.Contains(t, errs, key)
			}
		})
	}
}

func TestRegistry_Install(t *testing.T) {
	registry, err := NewRegistry(DefaultSerializers()...)
	require.NoError(t, err)
	assert.Equal(t, 4, registry.Len())

	t.Run("duplicate name is rejected", func(t *testing.T) {
		err := registry.Install(DateSerializer)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
		assert.Equal(t, 4, registry.Len())
	})

	t.Run("invalid serializer leaves registry unchanged", func(t *testing.T) {
		err := registry.Install(Serializer{Name: "Broken"})
		assert.True(t, IsConfigurationError(err))
		assert.Equal(t, []string{"Date", "RegExp", "Function", "Symbol"}, registry.Names())
	})

	t.Run("computed serializers may share the registry", func(t *testing.T) {
		require.NoError(t, registry.Install(computedSerializer()))
		require.NoError(t, registry.Install(computedSerializer()))
		assert.Equal(t, 6, registry.Len())
		assert.Equal(t, []string{"Date", "RegExp", "Function", "Symbol"}, registry.Names())
	})
}

func TestRegistry_Resolve(t *testing.T) {
	registry, err := NewRegistry(DefaultSerializers()...)
	require.NoError(t, err)

	s, ok := registry.ResolveByValue(MustRegExp("a", ""))
	require.True(t, ok)
	assert.Equal(t, "RegExp", s.Name)

	_, ok = registry.ResolveByValue(42)
	assert.False(t, ok)

	s, ok = registry.ResolveByName("Symbol")
	require.True(t, ok)
	assert.Equal(t, "Symbol", s.Name)

	_, ok = registry.ResolveByName("UUID")
	assert.False(t, ok)
}

func TestRegistry_Restore(t *testing.T) {
	registry, err := NewRegistry(DateSerializer, computedSerializer())
	require.NoError(t, err)

	v, ok, err := registry.restore("Point", []any{1.0, 2.0})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, point{1, 2}, v)

	_, ok, err = registry.restore("Nope", nil)
	assert.NoError(t, err)
	assert.False(t, ok)

	_, _, err = registry.restore("Date", []any{"x"})
	assert.Error(t, err)
}
