package tagjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect(t *testing.T) {
	collector := NewInMemoryMetricsCollector()
	codec := newTestCodec(t, WithMetricsCollector(collector))

	input := `{
		"created": "#!Date[343434]",
		"notes": ["plain", "##!!Date[1]", "#!Nope[1]"],
		"a/b": {"~x": "#!Date[1,2]"}
	}`

	findings, err := codec.Inspect([]byte(input))
	require.NoError(t, err)

	require.Len(t, findings, 4)
	assert.Equal(t, Finding{Path: "/a~1b/~0x", Kind: FindingDegraded, Serializer: "Date",
		Text: "#!Date[1,2]", Reason: "deserialize failed: Date expects 1 argument, got 2"}, findings[0])
	assert.Equal(t, Finding{Path: "/created", Kind: FindingTagged, Serializer: "Date", Text: "#!Date[343434]"}, findings[1])
	assert.Equal(t, Finding{Path: "/notes/1", Kind: FindingEscaped, Text: "##!!Date[1]"}, findings[2])
	assert.Equal(t, Finding{Path: "/notes/2", Kind: FindingDegraded, Serializer: "Nope",
		Text: "#!Nope[1]", Reason: "no serializer with this name"}, findings[3])

	assert.Empty(t, collector.Counters())
}

func TestInspect_TopLevel(t *testing.T) {
	codec := newTestCodec(t)

	findings, err := codec.Inspect([]byte(`"#!Date[0]"`))
	require.NoError(t, err)
	assert.Equal(t, []Finding{{Path: "", Kind: FindingTagged, Serializer: "Date", Text: "#!Date[0]"}}, findings)

	findings, err = codec.Inspect([]byte(`[1, "x", null]`))
	require.NoError(t, err)
	assert.Empty(t, findings)

	_, err = codec.Inspect([]byte(`[`))
	assert.ErrorIs(t, err, ErrInvalidJSON)
}
