package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/dupehound/dupehound/internal/output"
	"github.com/dupehound/dupehound/pkg/config"
)

var (
	version = "dev"
	commit  = "none"    //nolint:unused // set via ldflags at build time
	date    = "unknown" //nolint:unused // set via ldflags at build time
)

func main() {
	app := &cli.App{
		Name:    "dupehound",
		Usage:   "Multi-language duplicate code detection",
		Version: version,
		Description: `Dupehound finds exact, near, renamed, and embedded-stylesheet duplicates
across a source tree and plans the refactorings to remove them.

Supports: Python, JavaScript/TypeScript, Java, C, C++, Go, Ruby, PHP,
Rust, Kotlin, Swift, C#, HTML, and the CSS preprocessor family`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"DUPEHOUND_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text",
				Usage:   "Output format: text, json, markdown, csv, toon",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to file",
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "Disable result caching",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Parallel workers for scanning and parsing (0 = auto)",
			},
		},
		Commands: []*cli.Command{
			analyzeCmd(),
			refactorCmd(),
			cacheCmd(),
			mcpCmd(),
		},
		// Bare invocation runs an analysis of the current tree.
		Action: runAnalyze,
	}

	if err := app.Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

// signalContext returns a context cancelled on SIGINT or SIGTERM, so a
// long detection run exits with partial work instead of hanging.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// getPaths returns paths from positional args, defaulting to ["."]
func getPaths(c *cli.Context) []string {
	if c.Args().Len() > 0 {
		return c.Args().Slice()
	}
	return []string{"."}
}

// loadConfig resolves configuration from --config or standard locations.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault(), nil
}

// newFormatter builds the output formatter from the global flags.
func newFormatter(c *cli.Context) (*output.Formatter, error) {
	return output.NewFormatter(
		output.ParseFormat(c.String("format")),
		c.String("output"),
		true,
	)
}
