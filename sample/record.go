package sample

import (
	"fmt"
	"math"
	"strings"

	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/genotype"
)

// Record is one VCF line seen through one sample column.
type Record struct {
	Chrom    string
	Position int // 1-based POS
	Ref      string
	Alts     []string
	Quality  float64

	// Depth is the sample's DP, or -1 when absent.
	Depth float64

	// AlleleDepths is the sample's AD, REF first. Nil when absent.
	AlleleDepths []float64

	// Genotype holds the GT allele indices; -1 for missing calls.
	Genotype []int
}

// IsDeletion reports whether every informative ALT removes bases after a
// shared first base, e.g. REF ACG with ALT A.
func (r Record) IsDeletion() bool {
	if len(r.Ref) < 2 {
		return false
	}
	n := 0
	for _, alt := range r.Alts {
		if skipAlt(alt) || alt == "*" {
			continue
		}
		if len(alt) != 1 || !strings.EqualFold(alt[:1], r.Ref[:1]) {
			return false
		}
		n++
	}
	return n > 0
}

// EventPosition is the genomic position the record's evidence applies to:
// POS, or the first deleted base for deletions.
func (r Record) EventPosition() int {
	if r.IsDeletion() {
		return r.Position + 1
	}
	return r.Position
}

// Evidence normalizes the record into classifier input. SNVs keep their ALT
// base, deletions become DeletionSymbol with a length, other ALTs are kept
// verbatim. Symbolic <NON_REF> and missing (.) ALTs carry no evidence.
func (r Record) Evidence() (genotype.Evidence, error) {
	if r.Position < 1 {
		return genotype.Evidence{}, fmt.Errorf("%w: %s position %d", genotype.ErrMalformed, r.Chrom, r.Position)
	}
	if r.Ref == "" {
		return genotype.Evidence{}, fmt.Errorf("%w: %s:%d has an empty REF", genotype.ErrMalformed, r.Chrom, r.Position)
	}
	if r.AlleleDepths != nil && len(r.AlleleDepths) != len(r.Alts)+1 {
		return genotype.Evidence{}, fmt.Errorf("%w: %s:%d has %d AD values for %d alleles",
			genotype.ErrMalformed, r.Chrom, r.Position, len(r.AlleleDepths), len(r.Alts)+1)
	}

	ref := strings.ToUpper(r.Ref)
	deletion := r.IsDeletion()

	ev := genotype.Evidence{
		Position:  r.Position,
		Reference: ref[:1],
		Depth:     math.Max(r.Depth, 0),
		Quality:   r.Quality,
	}
	if deletion {
		ev.Position = r.Position + 1
		ev.Reference = ref[1:2]
	}

	reads := r.readsPerAllele()

	ev.Alleles = append(ev.Alleles, genotype.Allele{
		Symbol:      ev.Reference,
		Reads:       reads[0],
		IsReference: true,
	})

	for i, alt := range r.Alts {
		if skipAlt(alt) {
			continue
		}
		a := genotype.Allele{Symbol: strings.ToUpper(alt), Reads: reads[i+1]}
		switch {
		case alt == "*":
			a.Symbol = genotype.DeletionSymbol
		case deletion:
			a.Symbol = genotype.DeletionSymbol
			a.Deletion = len(ref) - len(alt)
		}
		ev.Alleles = append(ev.Alleles, a)
	}

	return ev, nil
}

// readsPerAllele returns the read support of REF followed by each ALT. AD is
// used when present; otherwise DP is split across the GT alleles.
func (r Record) readsPerAllele() []float64 {
	out := make([]float64, len(r.Alts)+1)
	if r.AlleleDepths != nil {
		copy(out, r.AlleleDepths)
		return out
	}

	called := 0
	for _, gt := range r.Genotype {
		if gt >= 0 && gt < len(out) {
			called++
		}
	}
	if called == 0 || r.Depth <= 0 {
		return out
	}
	for _, gt := range r.Genotype {
		if gt >= 0 && gt < len(out) {
			out[gt] += r.Depth / float64(called)
		}
	}
	return out
}

func skipAlt(alt string) bool {
	return alt == "" || alt == "." || alt == "<NON_REF>" || alt == "<*>"
}
