package analysis

import (
	"math"
	"time"

	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/genotype"
	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/hwe"
	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/resolve"
	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/vpt"
	"github.com/montanaflynn/stats"
)

// HWECutoff is the approximate P-value below which a site's exact HWE test is
// computed.
const HWECutoff = 0.05

type Report struct {
	RunID    string
	Started  time.Time
	Finished time.Time
	Config   Config

	Items      int
	Failures   []ItemError
	Resolution resolve.Stats

	Samples []SampleSummary
	Sites   []SiteSummary
}

// SampleSummary counts one sample's calls over all kept positions.
type SampleSummary struct {
	Sample       string
	Reference    int
	Homozygous   int
	Heterozygous int
	NoCall       int

	// Coverage of the sample's non-NoCall calls
	MeanCoverage   float64
	MedianCoverage float64
}

// SiteSummary counts the calls of real samples at one kept position.
type SiteSummary struct {
	Locus     string
	Position  int
	Reference string
	Counts    hwe.Counts
	NoCall    int
	HWE       float64
}

// Summarize fills the per-sample and per-site diagnostics from a completed
// table.
func (r *Report) Summarize(t *vpt.Table) {
	bySample := make(map[string]*SampleSummary)
	coverage := make(map[string][]float64)
	order := make([]string, 0)

	r.Samples = r.Samples[:0]
	r.Sites = r.Sites[:0]

	for _, id := range t.Loci() {
		for _, pos := range t.Positions(id) {
			site := SiteSummary{Locus: id, Position: pos}
			if c, ok := t.Call(id, pos, vpt.ReferenceSample); ok {
				site.Reference = c.Symbol
			}

			for _, name := range t.Samples(id) {
				if name == vpt.ReferenceSample {
					continue
				}
				c, _ := t.Call(id, pos, name)

				s, ok := bySample[name]
				if !ok {
					s = &SampleSummary{Sample: name}
					bySample[name] = s
					order = append(order, name)
				}

				switch c.Zygosity {
				case genotype.Reference:
					s.Reference++
					site.Counts.HomRef++
				case genotype.Homozygous:
					s.Homozygous++
					site.Counts.HomAlt++
				case genotype.Heterozygous:
					s.Heterozygous++
					site.Counts.Het++
				default:
					s.NoCall++
					site.NoCall++
				}

				if c.Zygosity != genotype.NoCall && !math.IsInf(c.Coverage, 0) {
					coverage[name] = append(coverage[name], c.Coverage)
				}
			}

			site.HWE = math.NaN()
			if site.Counts.N() > 0 {
				site.HWE = site.Counts.Test(HWECutoff)
			}
			r.Sites = append(r.Sites, site)
		}
	}

	for _, name := range order {
		s := bySample[name]
		s.MeanCoverage, s.MedianCoverage = describe(coverage[name])
		r.Samples = append(r.Samples, *s)
	}
}

func describe(values []float64) (mean, median float64) {
	if len(values) == 0 {
		return 0, 0
	}
	data := stats.LoadRawData(values)
	mean, _ = stats.Mean(data)
	median, _ = stats.Median(data)
	return mean, median
}
