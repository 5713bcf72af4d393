package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/dupehound/dupehound/internal/output"
	"github.com/dupehound/dupehound/pkg/refactor"
)

func refactorCmd() *cli.Command {
	return &cli.Command{
		Name:      "refactor",
		Usage:     "Plan refactorings for detected duplicates",
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
				Usage: "Restrict to these language tags",
			},
			&cli.StringFlag{
				Name:  "select",
				Usage: "1-based suggestion selection, e.g. 1,3-5",
			},
			&cli.BoolFlag{
				Name:  "apply",
				Usage: "Record the selected suggestions as applied plans",
			},
		},
		Action: runRefactor,
	}
}

func runRefactor(c *cli.Context) error {
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

	plan := refactor.Plan(result.Duplicates)
	if len(plan) == 0 {
		color.Green("No refactorable duplicates found")
		return nil
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	selected := plan
	if expr := c.String("select"); expr != "" {
		picked, err := refactor.ParseSelection(expr, len(plan))
		if err != nil {
			return err
		}
		selected = selected[:0:0]
		for _, i := range picked {
			selected = append(selected, plan[i-1])
		}
	}

	if c.Bool("apply") {
		results := make([]refactor.Result, len(selected))
		for i, s := range selected {
			results[i] = refactor.Apply(s)
		}
		return formatter.Output(results)
	}

	rows := make([][]string, len(selected))
	for i, s := range selected {
		preview := refactor.PreviewSuggestion(s)
		rows[i] = []string{
			fmt.Sprintf("%d", s.Index),
			fmt.Sprintf("%d", s.Priority),
			string(s.Strategy),
			fmt.Sprintf("%d", preview.FilesTouched),
			fmt.Sprintf("%d", preview.LinesRemoved),
			truncate(s.Description, 60),
		}
	}

	table := output.NewTable(
		"Refactoring Plan",
		[]string{"#", "Priority", "Strategy", "Files", "Est. Lines Saved", "Description"},
		rows,
		[]string{fmt.Sprintf("Suggestions: %d", len(plan))},
		selected,
	)
	return formatter.Output(table)
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return s[:maxLen]
	}
	return strings.TrimRight(s[:maxLen-3], " ") + "..."
}
