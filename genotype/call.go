package genotype

import (
	"fmt"

	"gopkg.in/guregu/null.v3"
)

const (
	// DeletionSymbol marks a deleted base.
	DeletionSymbol = "-"

	// NoCallSymbol is written for positions without a usable call.
	NoCallSymbol = "N"
)

// Call is the finalized genotype of one sample at one position of one locus.
type Call struct {
	Symbol    string
	Secondary string // second allele of a heterozygous call
	Coverage  float64
	Frequency float64
	Quality   float64
	Zygosity  Zygosity

	// Deletion is the length of a deletion event anchored at this position.
	Deletion int

	// Anchor is set on positions lying inside a deletion and names the
	// position the deletion is anchored at.
	Anchor int

	Annotation null.String
}

// NoCallWith returns a NoCall, optionally annotated.
func NoCallWith(annotation string) Call {
	return Call{
		Symbol:     NoCallSymbol,
		Zygosity:   NoCall,
		Annotation: null.NewString(annotation, annotation != ""),
	}
}

// IsSpan reports whether the call only marks a position covered by a
// deletion anchored elsewhere.
func (c Call) IsSpan() bool {
	return c.Anchor > 0
}

// Alleles lists the symbols the call asserts; empty for NoCall.
func (c Call) Alleles() []string {
	switch c.Zygosity {
	case NoCall:
		return nil
	case Heterozygous:
		return []string{c.Symbol, c.Secondary}
	default:
		return []string{c.Symbol}
	}
}

func (c Call) String() string {
	sym := c.Symbol
	if c.Zygosity == Heterozygous {
		sym = c.Symbol + "/" + c.Secondary
	}
	return fmt.Sprintf("%s[%s cov=%g freq=%.3f qual=%g]", sym, c.Zygosity, c.Coverage, c.Frequency, c.Quality)
}

// Candidate is one allele a MaybeCall could be resolved to.
type Candidate struct {
	Symbol    string
	Frequency float64
	Deletion  int
}

// MaybeCall holds evidence the classifier could not decide on its own. It
// only lives until cross-sample resolution turns it into a Call.
type MaybeCall struct {
	Position   int
	Sample     string
	Reference  string
	Candidates []Candidate
	Coverage   float64
	Quality    float64
}

// Degrade turns the MaybeCall into a NoCall that keeps its coverage and
// quality.
func (m MaybeCall) Degrade(annotation string) Call {
	c := NoCallWith(annotation)
	c.Coverage = m.Coverage
	c.Quality = m.Quality
	return c
}
