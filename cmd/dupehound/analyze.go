package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/dupehound/dupehound/internal/output"
	"github.com/dupehound/dupehound/internal/progress"
	"github.com/dupehound/dupehound/internal/report"
	"github.com/dupehound/dupehound/internal/service/analysis"
	"github.com/dupehound/dupehound/pkg/config"
	"github.com/dupehound/dupehound/pkg/detect"
)

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"dup", "clones"},
		Usage:     "Detect duplicate and near-duplicate code",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "min-lines",
				Usage: "Minimum line window for block-level matching",
			},
			&cli.IntFlag{
				Name:  "min-tokens",
				Usage: "Token window size for sequence matching",
			},
			&cli.Float64Flag{
				Name:  "threshold",
				Usage: "Similarity threshold (0.0-1.0)",
			},
			&cli.StringSliceFlag{
				Name:  "languages",
				Usage: "Restrict to these language tags (e.g. python, javascript)",
			},
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "Skip display-level suppression of redundant findings",
			},
			&cli.BoolFlag{
				Name:  "show-snippets",
				Usage: "Include code snippets in the report",
			},
			&cli.IntFlag{
				Name:  "max-show",
				Value: 20,
				Usage: "Maximum groups rendered in detail (0 = all)",
			},
			&cli.IntFlag{
				Name:  "max-blocks",
				Value: 5,
				Usage: "Maximum members shown per group (0 = all)",
			},
			&cli.IntFlag{
				Name:  "snippet-lines",
				Value: 12,
				Usage: "Maximum lines per snippet (0 = all)",
			},
		},
		Action: runAnalyze,
	}
}

func runAnalyze(c *cli.Context) error {
	ctx, cancel := signalContext()
	defer cancel()

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	result, err := runDetection(ctx, c, cfg)
	if err != nil {
		return err
	}
	if result.TotalFiles == 0 {
		color.Yellow("No source files found")
		return nil
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	// Structured formats persist the full merged sequence; the readable
	// formats get the suppressed view.
	switch formatter.Format() {
	case output.FormatJSON, output.FormatTOON, output.FormatCSV:
		return formatter.Output(result)
	}

	display := *result
	if !c.Bool("raw") {
		display.Duplicates = report.Suppress(result.Duplicates)
		display.DuplicatesFound = len(display.Duplicates)
	}

	rep := report.Build(&display, report.Options{
		ShowSnippets: c.Bool("show-snippets"),
		MaxShow:      c.Int("max-show"),
		MaxBlocks:    c.Int("max-blocks"),
		SnippetLines: c.Int("snippet-lines"),
	})
	if err := formatter.Output(rep); err != nil {
		return err
	}

	if display.DuplicatesFound == 0 {
		formatter.Success("No duplicates found")
	} else if c.Bool("verbose") && display.DuplicatesFound < result.DuplicatesFound {
		formatter.Info("%d redundant findings suppressed (use --raw to see them)",
			result.DuplicatesFound-display.DuplicatesFound)
	}
	return nil
}

// runDetection executes the shared analysis pipeline with CLI progress.
func runDetection(ctx context.Context, c *cli.Context, cfg *config.Config) (*detect.Analysis, error) {
	var tracker *progress.Tracker
	svc := analysis.New(cfg)
	result, err := svc.Run(ctx, getPaths(c), analysis.Options{
		MinLines:            c.Int("min-lines"),
		MinTokens:           c.Int("min-tokens"),
		SimilarityThreshold: c.Float64("threshold"),
		Languages:           c.StringSlice("languages"),
		NoCache:             c.Bool("no-cache"),
		Workers:             c.Int("workers"),
		OnScanned: func(files int) {
			if files > 0 {
				tracker = progress.NewTracker("Analyzing files...", files)
			}
		},
		OnParsed: func() {
			if tracker != nil {
				tracker.Tick()
			}
		},
	})
	if err != nil {
		if tracker != nil {
			tracker.FinishError(err)
		}
		return nil, fmt.Errorf("analysis failed: %w", err)
	}
	if tracker != nil {
		tracker.FinishSuccess()
	}
	return result, nil
}
