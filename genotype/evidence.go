package genotype

import (
	"fmt"
	"math"
	"sort"
)

// Allele is one observed allele at a position with its read support.
type Allele struct {
	Symbol      string
	Reads       float64
	Deletion    int // length, when Symbol is DeletionSymbol
	IsReference bool
}

// Evidence is everything known about one sample at one position.
type Evidence struct {
	Position  int
	Reference string
	Depth     float64
	Alleles   []Allele
	Quality   float64
}

// Coverage is the larger of the reported depth and the summed allele support.
func (e Evidence) Coverage() float64 {
	var sum float64
	for _, a := range e.Alleles {
		sum += a.Reads
	}
	return math.Max(e.Depth, sum)
}

func (e Evidence) check() error {
	if badValue(e.Depth) {
		return fmt.Errorf("%w: depth %v at %d", ErrMalformed, e.Depth, e.Position)
	}
	if math.IsNaN(e.Quality) {
		return fmt.Errorf("%w: quality is NaN at %d", ErrMalformed, e.Position)
	}
	for _, a := range e.Alleles {
		if a.Symbol == "" {
			return fmt.Errorf("%w: empty allele at %d", ErrMalformed, e.Position)
		}
		if badValue(a.Reads) {
			return fmt.Errorf("%w: allele %s has %v reads at %d", ErrMalformed, a.Symbol, a.Reads, e.Position)
		}
	}
	return nil
}

func badValue(v float64) bool {
	return v < 0 || math.IsNaN(v) || math.IsInf(v, 0)
}

type rankedAllele struct {
	Allele
	Frequency float64
}

// rank orders supported alleles by frequency, highest first. Equal
// frequencies go to the lexicographically smaller symbol.
func (e Evidence) rank(coverage float64) []rankedAllele {
	out := make([]rankedAllele, 0, len(e.Alleles))
	for _, a := range e.Alleles {
		if a.Reads <= 0 {
			continue
		}
		out = append(out, rankedAllele{Allele: a, Frequency: a.Reads / coverage})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency > out[j].Frequency
		}
		if out[i].Symbol != out[j].Symbol {
			return out[i].Symbol < out[j].Symbol
		}
		return out[i].Deletion < out[j].Deletion
	})

	return out
}
