package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"github.com/aromatt/shape/internal/config"
	"github.com/aromatt/shape/internal/errors"
	"github.com/aromatt/shape/internal/formatter"
	"github.com/aromatt/shape/internal/models"
	"github.com/aromatt/shape/internal/parser"
	"github.com/aromatt/shape/internal/schema"
	"github.com/aromatt/shape/internal/shaper"
)

// CLI defines the command-line interface
var CLI struct {
	Data            string   `arg:"" optional:"" name:"json" help:"JSON value to shape. If omitted, input comes from --input or stdin."`
	Input           string   `help:"Path to input JSON file." short:"i" type:"path"`
	Output          string   `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Pattern         []string `help:"Key rewrite rule in 'regex=replacement' form. May be repeated; rules apply in order after any config-file rules." short:"p"`
	Normalize       string   `help:"Normalize mapping keys: none, snake, camel, pascal, kebab or screaming-snake."`
	DescribeNumbers bool     `help:"Qualify numeric labels with :zero or :nonzero." short:"n"`
	Sort            bool     `help:"Sort paths for deterministic output." short:"s"`
	Indent          int      `help:"Pretty-print the output with this many spaces per level."`
	Schema          bool     `help:"Emit a JSON Schema document instead of the raw shape."`
	Config          string   `help:"Path to a config file. Defaults to the nearest .shape.yml." short:"c" type:"path"`
	Version         bool     `help:"Show version information." short:"v"`
	Interactive     bool     `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	// Parse CLI arguments with Kong
	kongParser := kong.Must(&CLI,
		kong.Name("shape"),
		kong.Description("Infer a compact structural schema from a JSON value"),
		kong.UsageOnError(),
	)

	// No arguments on a terminal means interactive mode
	if len(os.Args) == 1 && isTerminal(os.Stdin) {
		CLI.Interactive = true
	}

	_, err := kongParser.Parse(os.Args[1:])
	if err != nil {
		// Usage is already shown by kong.UsageOnError()
		os.Exit(1)
	}

	// Show version and exit if requested
	if CLI.Version {
		fmt.Printf("shape version %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: shape --help\n")
		os.Exit(1)
	}
}

// run executes the main program logic
func run() error {
	// 1. Resolve configuration (file first, CLI flags win)
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts, err := resolveOptions(cfg)
	if err != nil {
		return err
	}

	// 2. Parse JSON input
	data, err := parseInput()
	if err != nil {
		return err
	}

	// 3. Infer the shape
	sh, err := shaper.New(opts)
	if err != nil {
		return err
	}
	result, err := sh.Shape(data)
	if err != nil {
		return err
	}

	// 4. Optionally convert to JSON Schema
	if CLI.Schema || cfg.Output.Schema {
		result, err = schema.Export(result)
		if err != nil {
			return err
		}
	}

	// 5. Render and output
	indent := cfg.Output.Indent
	if CLI.Indent > 0 {
		indent = CLI.Indent
	}
	out, err := (&formatter.Formatter{Indent: indent}).Format(result)
	if err != nil {
		return err
	}
	return writeOutput(out)
}

// loadConfig loads the explicit config file, or the nearest discovered one,
// or defaults.
func loadConfig() (*config.Config, error) {
	path := CLI.Config
	if path == "" {
		path = config.FindConfigFile()
	}
	if path == "" {
		return config.NewConfig(), nil
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, errors.NewInputError(fmt.Sprintf("failed to load config file '%s'", path), err)
	}
	return cfg, nil
}

// resolveOptions merges CLI flags over the config file's options.
func resolveOptions(cfg *config.Config) (shaper.Options, error) {
	opts := cfg.ShaperOptions()

	for _, p := range CLI.Pattern {
		pattern, replace, ok := strings.Cut(p, "=")
		if !ok {
			return shaper.Options{}, errors.NewPatternError(
				fmt.Sprintf("pattern '%s' is not in 'regex=replacement' form", p),
				errors.ErrInvalidPattern,
			)
		}
		opts.KeyPatterns = append(opts.KeyPatterns, shaper.KeyPattern{Pattern: pattern, Replace: replace})
	}
	if CLI.Normalize != "" {
		opts.NormalizeKeys = CLI.Normalize
	}
	if CLI.DescribeNumbers {
		opts.DescribeNumbers = true
	}
	if CLI.Sort {
		opts.Sort = true
	}
	return opts, nil
}

// parseInput reads JSON from the positional argument, a file, or stdin
func parseInput() (models.JSONValue, error) {
	if CLI.Data != "" {
		return parser.ParseString(CLI.Data)
	}
	if CLI.Input != "" {
		return parser.ParseFile(CLI.Input)
	}

	if isTerminal(os.Stdin) {
		if CLI.Interactive {
			return readInteractiveInput()
		}
		// No data provided on stdin and not in interactive mode
		return nil, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	// Read from stdin (piped input)
	jsonData, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, errors.NewInputError("failed to read from stdin", err)
	}
	if len(jsonData) == 0 {
		return nil, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return parser.ParseString(string(jsonData))
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// writeOutput writes the rendered shape to file or stdout
func writeOutput(out string) error {
	if CLI.Output != "" {
		err := os.WriteFile(CLI.Output, []byte(out+"\n"), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Shape written to %s\n", CLI.Output)
		return nil
	}

	_, err := fmt.Println(out)
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste JSON
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput() (models.JSONValue, error) {
	fmt.Fprintln(os.Stderr, "shape interactive mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(os.Stdin)
	var jsonBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			jsonBuilder.WriteString(line)
			break
		}
		if err != nil {
			return nil, errors.NewInputError("error reading input", err)
		}
		jsonBuilder.WriteString(line)
	}

	jsonData := jsonBuilder.String()
	if len(jsonData) == 0 {
		return nil, errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	return parser.ParseString(jsonData)
}
