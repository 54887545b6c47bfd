package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/hengadev/tagjson"
	"github.com/hengadev/tagjson/internal/monitoring"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	cli := &cli{stdin: stdin, stdout: stdout, stderr: stderr}

	command := args[0]
	var err error
	switch command {
	case "fmt":
		err = cli.fmtCommand(args[1:])
	case "inspect":
		err = cli.inspectCommand(args[1:])
	case "stats":
		err = cli.statsCommand(args[1:])
	case "init":
		err = cli.initCommand(args[1:])
	case "version":
		fmt.Fprintln(stdout, tagjson.VersionInfo())
		return 0
	case "-h", "-help", "help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage(stderr)
		return 1
	}

	if err == flag.ErrHelp {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", command, err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage: tagjson <command> [options] [file]\n")
	fmt.Fprintf(w, "\nCommands:\n")
	fmt.Fprintf(w, "  fmt      Re-encode tagged JSON with indentation\n")
	fmt.Fprintf(w, "  inspect  List tagged, escaped and degraded strings\n")
	fmt.Fprintf(w, "  stats    Count tags by serializer\n")
	fmt.Fprintf(w, "  init     Write a default configuration file\n")
	fmt.Fprintf(w, "  version  Show version information\n")
	fmt.Fprintf(w, "\nWithout -config, settings come from TAGJSON_* variables and an optional .env file.\n")
	fmt.Fprintf(w, "Run 'tagjson <command> -h' for help on a specific command.\n")
}

type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// commonFlags are shared by every command that reads tagged JSON.
type commonFlags struct {
	configPath string
	envFile    string
	verbose    bool
}

func (c *cli) newFlagSet(name string, common *commonFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.StringVar(&common.configPath, "config", "", "Path to a YAML configuration file")
	fs.StringVar(&common.envFile, "env", "", "Environment file to load (default .env if present)")
	fs.BoolVar(&common.verbose, "v", false, "Log degraded tags to stderr")
	return fs
}

func (c *cli) logger(common commonFlags, component string) *slog.Logger {
	if !common.verbose {
		return monitoring.NewLoggerFromEnvironment(component, c.stderr)
	}
	return monitoring.NewStructuredLogger(monitoring.LoggerConfig{
		Level:     slog.LevelDebug,
		Format:    monitoring.FormatConsole,
		Output:    c.stderr,
		Component: component,
	})
}

// readInput reads the single file argument, or stdin when there is none or it is "-".
func (c *cli) readInput(fs *flag.FlagSet) ([]byte, error) {
	switch fs.NArg() {
	case 0:
		return io.ReadAll(c.stdin)
	case 1:
		if fs.Arg(0) == "-" {
			return io.ReadAll(c.stdin)
		}
		return os.ReadFile(fs.Arg(0))
	}
	return nil, fmt.Errorf("expected at most one input file, got %d", fs.NArg())
}

func (c *cli) fmtCommand(args []string) error {
	var common commonFlags
	fs := c.newFlagSet("fmt", &common)
	indent := fs.Int("indent", -1, "Spaces per level, 0 for compact (default from configuration, else 2)")
	output := fs.String("o", "", "Write to this file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(common.configPath, common.envFile)
	if err != nil {
		return err
	}
	codec, err := tagjson.NewFromConfig(cfg, tagjson.WithLogger(c.logger(common, "fmt")))
	if err != nil {
		return err
	}

	data, err := c.readInput(fs)
	if err != nil {
		return err
	}
	v, err := codec.Parse(data)
	if err != nil {
		return err
	}

	width := *indent
	if width < 0 {
		width = cfg.Indent
		if width == 0 {
			width = 2
		}
	}
	text, err := codec.StringifyIndent(v, width)
	if err != nil {
		return err
	}
	text = append(text, '\n')

	if *output != "" {
		return os.WriteFile(*output, text, 0644)
	}
	_, err = c.stdout.Write(text)
	return err
}

func (c *cli) inspectCommand(args []string) error {
	var common commonFlags
	fs := c.newFlagSet("inspect", &common)
	asJSON := fs.Bool("json", false, "Print findings as a JSON array")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(common.configPath, common.envFile)
	if err != nil {
		return err
	}
	codec, err := tagjson.NewFromConfig(cfg, tagjson.WithLogger(c.logger(common, "inspect")))
	if err != nil {
		return err
	}

	data, err := c.readInput(fs)
	if err != nil {
		return err
	}
	findings, err := codec.Inspect(data)
	if err != nil {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(c.stdout)
		enc.SetIndent("", "  ")
		if findings == nil {
			findings = []tagjson.Finding{}
		}
		return enc.Encode(findings)
	}

	w := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PATH\tKIND\tSERIALIZER\tDETAIL")
	for _, f := range findings {
		path := f.Path
		if path == "" {
			path = "(root)"
		}
		serializer := f.Serializer
		if serializer == "" {
			serializer = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", path, f.Kind, serializer, f.Reason)
	}
	return w.Flush()
}

func (c *cli) statsCommand(args []string) error {
	var common commonFlags
	fs := c.newFlagSet("stats", &common)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(common.configPath, common.envFile)
	if err != nil {
		return err
	}
	metrics := tagjson.NewInMemoryMetricsCollector()
	codec, err := tagjson.NewFromConfig(cfg,
		tagjson.WithLogger(c.logger(common, "stats")),
		tagjson.WithMetricsCollector(metrics))
	if err != nil {
		return err
	}

	data, err := c.readInput(fs)
	if err != nil {
		return err
	}
	if _, err := codec.Parse(data); err != nil {
		return err
	}

	counters := metrics.Counters()
	keys := make([]string, 0, len(counters))
	for k := range counters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tCOUNT")
	for _, k := range keys {
		fmt.Fprintf(w, "%s\t%d\n", k, counters[k])
	}
	return w.Flush()
}

func (c *cli) initCommand(args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	force := fs.Bool("force", false, "Overwrite existing configuration file")
	configPath := fs.String("path", defaultConfigFile, "Where to write the configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !*force {
		if _, err := os.Stat(*configPath); err == nil {
			return fmt.Errorf("configuration file %s already exists, use -force to overwrite", *configPath)
		}
	}

	if err := tagjson.SaveConfigFile(tagjson.DefaultConfig(), *configPath); err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "Configuration file created at %s\n", *configPath)
	return nil
}
