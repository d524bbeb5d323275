package vpt

import (
	"sort"

	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/genotype"
	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/locus"
)

// The accessors below describe the completed table.

// Loci returns the locus ids in ascending order.
func (t *Table) Loci() []string {
	out := make([]string, 0, len(t.loci))
	for id := range t.loci {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (t *Table) Locus(id string) (locus.Locus, bool) {
	lt, ok := t.loci[id]
	if !ok {
		return locus.Locus{}, false
	}
	return lt.locus, true
}

// Positions returns the kept positions of a locus, ascending.
func (t *Table) Positions(locusID string) []int {
	lt, ok := t.loci[locusID]
	if !ok {
		return nil
	}
	return append([]int(nil), lt.positions...)
}

// Samples lists the samples of a locus: the reference row first, once
// injected, then the others by name.
func (t *Table) Samples(locusID string) []string {
	lt, ok := t.loci[locusID]
	if !ok {
		return nil
	}

	out := make([]string, 0, len(lt.shards)+1)
	for name := range lt.shards {
		out = append(out, name)
	}
	sort.Strings(out)

	if len(lt.positions) > 0 {
		if _, ok := lt.rows[lt.positions[0]][ReferenceSample]; ok {
			out = append([]string{ReferenceSample}, out...)
		}
	}
	return out
}

func (t *Table) Call(locusID string, pos int, sample string) (genotype.Call, bool) {
	lt, ok := t.loci[locusID]
	if !ok {
		return genotype.Call{}, false
	}
	c, ok := lt.rows[pos][sample]
	return c, ok
}

// Row returns a copy of all calls at one position, keyed by sample.
func (t *Table) Row(locusID string, pos int) map[string]genotype.Call {
	lt, ok := t.loci[locusID]
	if !ok {
		return nil
	}
	row, ok := lt.rows[pos]
	if !ok {
		return nil
	}

	out := make(map[string]genotype.Call, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

// Failures maps each failed sample of a locus to its error.
func (t *Table) Failures(locusID string) map[string]error {
	out := make(map[string]error)
	lt, ok := t.loci[locusID]
	if !ok {
		return out
	}
	for name, s := range lt.shards {
		if err := s.Err(); err != nil {
			out[name] = err
		}
	}
	return out
}
