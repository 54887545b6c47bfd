package tagjson

// Environment variable names
const (
	// EnvMarker is the environment variable name for the tag prefix.
	// Example: "#!" or "@@!"
	EnvMarker = "TAGJSON_MARKER"

	// EnvSerializers is the environment variable name for the comma-separated
	// list of built-in serializers, in install order.
	// Example: "Date,RegExp"
	EnvSerializers = "TAGJSON_SERIALIZERS"

	// EnvExtraSerializers is the environment variable name for serializers
	// appended after EnvSerializers.
	// Example: "UUID,Duration"
	EnvExtraSerializers = "TAGJSON_EXTRA_SERIALIZERS"

	// EnvLenient is the environment variable name that enables comments and
	// trailing commas in parsed input.
	EnvLenient = "TAGJSON_LENIENT"

	// EnvUseNumber is the environment variable name that makes Parse decode
	// numbers as json.Number.
	EnvUseNumber = "TAGJSON_USE_NUMBER"

	// EnvIndent is the environment variable name for the indentation width
	// used by the command line tool.
	EnvIndent = "TAGJSON_INDENT"
)
