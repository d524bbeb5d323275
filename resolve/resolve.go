// Package resolve settles the MaybeCalls left by the classifier using the
// calls other samples made at the same position.
//
// Resolution is best effort. It runs once: a MaybeCall whose only
// disambiguating peer is itself a MaybeCall stays unresolved, since peers are
// read as the classifier left them and never re-resolved.
package resolve

import (
	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/genotype"
	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/vpt"
	log "github.com/sirupsen/logrus"
	"gopkg.in/guregu/null.v3"
)

const (
	Resolved   = "resolved"
	Unresolved = "unresolved"
)

// Store is the part of the table resolution needs.
type Store interface {
	Pending() []vpt.Pending
	Calls(locusID string, pos int) map[string]genotype.Call
	Settle(locusID, sample string, pos int, c genotype.Call) error
}

type Stats struct {
	Pending  int
	Upgraded int
	Degraded int
}

type decision struct {
	pending vpt.Pending
	call    genotype.Call
}

// Resolve decides every pending MaybeCall against the calls the classifier
// finalized, then applies all decisions. Deciding before applying makes the
// outcome independent of the order MaybeCalls are visited in.
//
// A MaybeCall is upgraded when exactly one of its candidates is an allele
// some other sample called at the same position; otherwise it is degraded
// to NoCall.
func Resolve(store Store, th genotype.Thresholds) (Stats, error) {
	pending := store.Pending()
	stats := Stats{Pending: len(pending)}

	decisions := make([]decision, 0, len(pending))
	for _, p := range pending {
		peers := peerAlleles(store.Calls(p.Locus, p.Maybe.Position), p.Maybe.Sample)
		c, ok := Decide(p.Maybe, peers, th)
		if ok {
			stats.Upgraded++
		} else {
			stats.Degraded++
		}
		decisions = append(decisions, decision{pending: p, call: c})
	}

	for _, d := range decisions {
		if err := store.Settle(d.pending.Locus, d.pending.Maybe.Sample, d.pending.Maybe.Position, d.call); err != nil {
			return stats, err
		}
	}

	log.Debugf("Resolved %d MaybeCalls: %d upgraded, %d degraded", stats.Pending, stats.Upgraded, stats.Degraded)

	return stats, nil
}

// peerAlleles collects the alleles confidently called by samples other than
// self. Calls inside deletion spans are not confident calls of their own.
func peerAlleles(calls map[string]genotype.Call, self string) map[string]struct{} {
	out := make(map[string]struct{})
	for name, c := range calls {
		if name == self || name == vpt.ReferenceSample || c.IsSpan() {
			continue
		}
		for _, a := range c.Alleles() {
			out[a] = struct{}{}
		}
	}
	return out
}

// Decide resolves a single MaybeCall against the set of peer alleles. The
// second return is false when the MaybeCall was degraded.
func Decide(m genotype.MaybeCall, peers map[string]struct{}, th genotype.Thresholds) (genotype.Call, bool) {
	matched := -1
	for i, cand := range m.Candidates {
		if _, ok := peers[cand.Symbol]; !ok {
			continue
		}
		if matched >= 0 {
			// More than one candidate is supported: still ambiguous
			return m.Degrade(Unresolved), false
		}
		matched = i
	}
	if matched < 0 {
		return m.Degrade(Unresolved), false
	}

	cand := m.Candidates[matched]
	c := genotype.Call{
		Symbol:     cand.Symbol,
		Coverage:   m.Coverage,
		Frequency:  cand.Frequency,
		Quality:    m.Quality,
		Zygosity:   genotype.Homozygous,
		Deletion:   cand.Deletion,
		Annotation: null.StringFrom(Resolved),
	}

	switch {
	case cand.Symbol == m.Reference:
		c.Zygosity = genotype.Reference
		c.Deletion = 0
	case th.Heterozygous && cand.Frequency < th.MaxHet && len(m.Candidates) > 1:
		c.Zygosity = genotype.Heterozygous
		c.Secondary = m.Candidates[1-matched].Symbol
	}

	return c, true
}
