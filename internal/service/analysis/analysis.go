// Package analysis orchestrates a full detection run: scan, load, analyze,
// detect, summarize. The CLI and the MCP server both go through this
// service so their results stay identical.
package analysis

import (
	"context"
	"fmt"
	"os"

	"github.com/dupehound/dupehound/internal/cache"
	"github.com/dupehound/dupehound/internal/fileproc"
	"github.com/dupehound/dupehound/pkg/analyzer"
	"github.com/dupehound/dupehound/pkg/config"
	"github.com/dupehound/dupehound/pkg/detect"
	"github.com/dupehound/dupehound/pkg/scanner"
)

// Options tunes one detection run. Zero values fall back to the loaded
// configuration.
type Options struct {
	MinLines            int
	MinTokens           int
	SimilarityThreshold float64
	Languages           []string
	NoCache             bool
	Workers             int

	// Phase callbacks for progress display. Either may be nil.
	OnScanned func(files int)
	OnParsed  fileproc.ProgressFunc
}

// Service runs detection over directory trees.
type Service struct {
	config *config.Config
}

// New creates an analysis service. A nil config uses defaults.
func New(cfg *config.Config) *Service {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Service{config: cfg}
}

// effectiveConfig folds option overrides into the configured thresholds.
func (s *Service) effectiveConfig(opts Options) *config.Config {
	cfg := *s.config
	if opts.MinLines > 0 {
		cfg.Detection.MinLines = opts.MinLines
	}
	if opts.MinTokens > 0 {
		cfg.Detection.MinTokens = opts.MinTokens
	}
	if opts.SimilarityThreshold > 0 {
		cfg.Detection.SimilarityThreshold = opts.SimilarityThreshold
	}
	if len(opts.Languages) > 0 {
		cfg.Languages = opts.Languages
	}
	if opts.NoCache {
		cfg.Cache.Enabled = false
	}
	return &cfg
}

// Run scans the given paths and produces the duplicate analysis. Paths may
// be directories or single files. Results are cached by configuration and
// corpus content unless caching is disabled.
func (s *Service) Run(ctx context.Context, paths []string, opts Options) (*detect.Analysis, error) {
	cfg := s.effectiveConfig(opts)
	detectCfg := cfg.DetectorConfig()
	if err := detectCfg.Validate(); err != nil {
		return nil, err
	}

	sc := scanner.New(cfg)
	var filePaths []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if info.IsDir() {
			found, err := sc.ScanDir(path)
			if err != nil {
				return nil, fmt.Errorf("scan %s: %w", path, err)
			}
			filePaths = append(filePaths, found...)
		} else {
			filePaths = append(filePaths, path)
		}
	}
	if opts.OnScanned != nil {
		opts.OnScanned(len(filePaths))
	}

	records := scanner.LoadAll(filePaths, opts.Workers, nil, nil)
	records = scanner.FilterByMinLines(records, detectCfg.MinLines)

	store, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, cfg.Cache.Enabled)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	key := cache.CorpusKey(detectCfg, records)
	if cached, ok := store.GetAnalysis(key); ok {
		return cached, nil
	}

	files := analyzer.New(analyzer.WithWorkers(opts.Workers)).Parse(records, opts.OnParsed)

	detector := detect.New(detect.WithConfig(detectCfg))
	groups, err := detector.Detect(ctx, files)
	if err != nil {
		return nil, err
	}

	analysis := detect.NewAnalysis(len(filePaths), len(files), groups)
	if err := store.SetAnalysis(key, analysis); err != nil {
		// Cache failures degrade to a cold run next time.
		fmt.Fprintf(os.Stderr, "warning: cache write failed: %v\n", err)
	}
	return analysis, nil
}
