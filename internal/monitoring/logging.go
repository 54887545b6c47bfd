package monitoring

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// LogFormat represents the output format for logs
type LogFormat int

const (
	FormatJSON LogFormat = iota
	FormatText
	FormatConsole
)

// String returns the name accepted by ParseFormat.
func (f LogFormat) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatText:
		return "text"
	case FormatConsole:
		return "console"
	default:
		return "unknown"
	}
}

// LoggerConfig configures NewStructuredLogger
type LoggerConfig struct {
	Level     slog.Level
	Format    LogFormat
	Output    io.Writer
	Component string
	Fields    map[string]any
}

// NewStructuredLogger builds a slog logger from config. Component and
// Fields are attached to every record.
func NewStructuredLogger(config LoggerConfig) *slog.Logger {
	if config.Output == nil {
		config.Output = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     config.Level,
		AddSource: config.Level <= slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				a.Value = slog.StringValue(a.Value.Time().Format(time.RFC3339Nano))
			}
			return a
		},
	}

	var handler slog.Handler
	switch config.Format {
	case FormatText:
		handler = slog.NewTextHandler(config.Output, opts)
	case FormatConsole:
		handler = NewConsoleHandler(config.Output, opts)
	default:
		handler = slog.NewJSONHandler(config.Output, opts)
	}

	attrs := make([]slog.Attr, 0, len(config.Fields)+2)
	attrs = append(attrs, slog.String("service", "tagjson"))
	if config.Component != "" {
		attrs = append(attrs, slog.String("component", config.Component))
	}
	for k, v := range config.Fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	return slog.New(handler.WithAttrs(attrs))
}

// ParseLevel accepts debug, info, warn and error, in any case.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// ParseFormat accepts json, text and console.
func ParseFormat(s string) (LogFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "text":
		return FormatText, nil
	case "console":
		return FormatConsole, nil
	}
	return 0, fmt.Errorf("unknown log format %q", s)
}

// ConsoleHandler provides colorized console output
type ConsoleHandler struct {
	opts   *slog.HandlerOptions
	output io.Writer
	attrs  []slog.Attr
	group  string
}

// NewConsoleHandler creates a new console handler
func NewConsoleHandler(output io.Writer, opts *slog.HandlerOptions) *ConsoleHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &ConsoleHandler{opts: opts, output: output}
}

func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}
	return level >= threshold
}

func (h *ConsoleHandler) Handle(_ context.Context, record slog.Record) error {
	var levelStr string
	switch {
	case record.Level >= slog.LevelError:
		levelStr = "\033[31mERROR\033[0m" // Red
	case record.Level >= slog.LevelWarn:
		levelStr = "\033[33mWARN\033[0m" // Yellow
	case record.Level >= slog.LevelInfo:
		levelStr = "\033[32mINFO\033[0m" // Green
	default:
		levelStr = "\033[36mDEBUG\033[0m" // Cyan
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] %s", record.Time.Format("15:04:05.000"), levelStr, record.Message)

	for _, a := range h.attrs {
		fmt.Fprintf(&b, " %s=%s", a.Key, a.Value)
	}
	record.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%s", h.qualify(a.Key), a.Value)
		return true
	})
	b.WriteByte('\n')

	_, err := io.WriteString(h.output, b.String())
	return err
}

// WithAttrs records attrs with keys qualified by the current group.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append([]slog.Attr(nil), h.attrs...)
	for _, a := range attrs {
		next.attrs = append(next.attrs, slog.Attr{Key: h.qualify(a.Key), Value: a.Value})
	}
	return &next
}

func (h *ConsoleHandler) qualify(key string) string {
	if h.group == "" {
		return key
	}
	return h.group + "." + key
}

func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	next := *h
	if next.group != "" {
		name = next.group + "." + name
	}
	next.group = name
	return &next
}

// NewLoggerFromEnvironment builds a logger configured by TAGJSON_LOG_LEVEL
// and TAGJSON_LOG_FORMAT. Unknown values fall back to info and console.
func NewLoggerFromEnvironment(component string, output io.Writer) *slog.Logger {
	level, err := ParseLevel(os.Getenv("TAGJSON_LOG_LEVEL"))
	if err != nil {
		level = slog.LevelInfo
	}

	format := FormatConsole
	if v := os.Getenv("TAGJSON_LOG_FORMAT"); v != "" {
		if parsed, err := ParseFormat(v); err == nil {
			format = parsed
		}
	}

	return NewStructuredLogger(LoggerConfig{
		Level:     level,
		Format:    format,
		Output:    output,
		Component: component,
		Fields: map[string]any{
			"pid": os.Getpid(),
		},
	})
}
