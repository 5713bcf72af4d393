// Package detect implements the duplicate detection engine: a stable
// hashing primitive, seven matcher families, and the merge step that turns
// their raw output into one deterministic finding sequence.
package detect

import (
	"context"

	"github.com/sourcegraph/conc/pool"
)

// Detector runs all matcher families over a batch of file records.
type Detector struct {
	config Config
}

// Option is a functional option for configuring Detector.
type Option func(*Detector)

// WithMinLines sets the sliding-window size for block-level matching.
func WithMinLines(minLines int) Option {
	return func(d *Detector) {
		d.config.MinLines = minLines
	}
}

// WithMinTokens sets the window size for token-sequence matching.
func WithMinTokens(minTokens int) Option {
	return func(d *Detector) {
		d.config.MinTokens = minTokens
	}
}

// WithSimilarityThreshold sets the inclusive floor for fuzzy emission.
func WithSimilarityThreshold(threshold float64) Option {
	return func(d *Detector) {
		d.config.SimilarityThreshold = threshold
	}
}

// WithConfig replaces the whole detection configuration.
func WithConfig(cfg Config) Option {
	return func(d *Detector) {
		d.config = cfg
	}
}

// New creates a detector with default thresholds.
func New(opts ...Option) *Detector {
	d := &Detector{config: DefaultConfig()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Config returns the detector's configuration.
func (d *Detector) Config() Config {
	return d.config
}

// Detect runs every matcher over the batch and merges their findings.
// Matchers are pure functions of the immutable batch and the configuration,
// so they run concurrently; the merge is the join point. The quadratic
// passes honor ctx cancellation at each outer iteration, in which case the
// merged partial results are returned together with the context's error.
func (d *Detector) Detect(ctx context.Context, files []FileRecord) ([]Group, error) {
	if err := d.config.Validate(); err != nil {
		return nil, err
	}

	// One slot per matcher, concatenated in fixed order below so output
	// order never depends on goroutine scheduling.
	var (
		exactFiles  []Group
		exactBlocks []Group
		tokenSeqs   []Group
		fuzzyFiles  []Group
		similar     []Group
		structural  []Group
		stylesheets []Group
	)

	p := pool.New()
	p.Go(func() { exactFiles = d.exactFileGroups(files) })
	p.Go(func() { exactBlocks = d.exactBlockGroups(files) })
	p.Go(func() { tokenSeqs = d.tokenSequenceGroups(files) })
	p.Go(func() { fuzzyFiles = d.fuzzyFileGroups(ctx, files) })
	p.Go(func() { similar = d.similarBlockGroups(ctx, files) })
	p.Go(func() { structural = d.structuralGroups(ctx, files) })
	p.Go(func() { stylesheets = d.stylesheetGroups(files) })
	p.Wait()

	all := make([]Group, 0,
		len(exactFiles)+len(exactBlocks)+len(tokenSeqs)+
			len(fuzzyFiles)+len(similar)+len(structural)+len(stylesheets))
	all = append(all, exactFiles...)
	all = append(all, exactBlocks...)
	all = append(all, tokenSeqs...)
	all = append(all, fuzzyFiles...)
	all = append(all, similar...)
	all = append(all, structural...)
	all = append(all, stylesheets...)

	merged := mergeGroups(all)
	if err := ctx.Err(); err != nil {
		return merged, err
	}
	return merged, nil
}
