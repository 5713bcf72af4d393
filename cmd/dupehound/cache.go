package main

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dupehound/dupehound/internal/cache"
	"github.com/dupehound/dupehound/internal/output"
)

func cacheCmd() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect or clear the analysis result cache",
		Subcommands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Show cache entry count and size",
				Action: runCacheStats,
			},
			{
				Name:   "clear",
				Usage:  "Remove all cached results",
				Action: runCacheClear,
			},
		},
	}
}

func openCache(c *cli.Context) (*cache.Cache, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	return cache.New(cfg.Cache.Dir, cfg.Cache.TTL, true)
}

func runCacheStats(c *cli.Context) error {
	store, err := openCache(c)
	if err != nil {
		return err
	}

	stats, err := store.GetStats()
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	table := output.NewTable(
		"Cache",
		[]string{"Metric", "Value"},
		[][]string{
			{"Entries", fmt.Sprintf("%d", stats.Entries)},
			{"Total size", fmt.Sprintf("%d bytes", stats.TotalSize)},
			{"Oldest entry", stats.OldestAge.Round(time.Second).String()},
			{"Newest entry", stats.NewestAge.Round(time.Second).String()},
		},
		nil,
		stats,
	)
	return formatter.Output(table)
}

func runCacheClear(c *cli.Context) error {
	store, err := openCache(c)
	if err != nil {
		return err
	}
	if err := store.Clear(); err != nil {
		return err
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()
	formatter.Success("Cache cleared")
	return nil
}
