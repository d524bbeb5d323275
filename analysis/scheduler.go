// Package analysis runs the variant calling engine: every sample is analyzed
// at every locus by a fixed pool of workers, ambiguous calls are resolved
// across samples, and the finished table is returned with a run report.
package analysis

import (
	"fmt"
	"sort"
	"time"

	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/locus"
	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/resolve"
	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/sample"
	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/vpt"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Run analyzes every source at every locus. Configuration problems abort
// before any work starts. Failures of single work items do not: that sample
// is reported as NoCall at that locus and the run goes on. The returned table
// is sealed.
func Run(loci []locus.Locus, sources []sample.Source, cfg Config) (*vpt.Table, *Report, error) {
	if err := Validate(loci, sources, cfg); err != nil {
		return nil, nil, err
	}

	report := &Report{
		RunID:   uuid.New().String(),
		Started: time.Now(),
		Config:  cfg,
	}

	// Every shard exists before the first worker starts, so the table's
	// maps are only read while the pool runs.
	table := vpt.New()
	items := make([]workItem, 0, len(loci)*len(sources))
	for _, l := range loci {
		for _, src := range sources {
			shard, err := table.Register(l, src.Name())
			if err != nil {
				return nil, nil, err
			}
			items = append(items, workItem{locus: l, source: src, shard: shard})
		}
	}
	report.Items = len(items)

	log.Printf("Run %s: %d loci x %d samples = %d work items on %d threads", report.RunID, len(loci), len(sources), len(items), cfg.Threads)

	// Collect failures on their own goroutine
	failures := make(chan ItemError, cfg.Threads)
	collected := make(chan []ItemError)
	go func() {
		out := make([]ItemError, 0)
		for ie := range failures {
			out = append(out, ie)
		}
		collected <- out
	}()

	work := make(chan workItem)
	pool := runPool(cfg.Threads, work, failures, cfg)
	for _, item := range items {
		work <- item
	}
	close(work)

	// Resolution must see every worker's calls
	pool.Wait()
	close(failures)
	report.Failures = <-collected
	sort.Slice(report.Failures, func(i, j int) bool {
		a, b := report.Failures[i], report.Failures[j]
		if a.Locus != b.Locus {
			return a.Locus < b.Locus
		}
		return a.Sample < b.Sample
	})

	stats, err := resolve.Resolve(table, cfg.Thresholds)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving: %w", err)
	}
	report.Resolution = stats

	if err := table.Complete(); err != nil {
		return nil, nil, err
	}
	if err := table.InjectReference(); err != nil {
		return nil, nil, err
	}
	table.Seal()

	report.Summarize(table)
	report.Finished = time.Now()

	log.Printf("Run %s: %d failed items, %d MaybeCalls (%d upgraded, %d degraded) in %s",
		report.RunID, len(report.Failures), stats.Pending, stats.Upgraded, stats.Degraded,
		report.Finished.Sub(report.Started).Round(time.Millisecond))

	return table, report, nil
}
