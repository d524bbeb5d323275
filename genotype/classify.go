// Package genotype turns per-position read evidence of one sample into a
// genotype Call, or into a MaybeCall when the evidence alone cannot decide.
package genotype

import (
	"errors"
)

// ErrMalformed marks evidence that cannot be classified at all.
var ErrMalformed = errors.New("malformed evidence")

// Outcome tells callers which field of a Result is meaningful.
type Outcome int

const (
	Called     Outcome = iota // Call is final
	Deferred                  // Maybe awaits cross-sample resolution
	NoEvidence                // nothing was observed; Call is a NoCall
	Malformed                 // Err describes the problem; Call is a NoCall
)

func (o Outcome) String() string {
	switch o {
	case Called:
		return "called"
	case Deferred:
		return "deferred"
	case NoEvidence:
		return "no evidence"
	case Malformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Reason explains the Call that was made.
type Reason int

const (
	Confident Reason = iota
	LowCoverage
	LowQuality
	Unobserved
	Ambiguous
	Invalid
)

func (r Reason) String() string {
	switch r {
	case Confident:
		return "confident"
	case LowCoverage:
		return "low coverage"
	case LowQuality:
		return "low quality"
	case Unobserved:
		return "no evidence"
	case Ambiguous:
		return "ambiguous"
	case Invalid:
		return "malformed"
	default:
		return "unknown"
	}
}

// Result is the classification of one position of one sample.
type Result struct {
	Outcome Outcome
	Reason  Reason
	Call    Call
	Maybe   *MaybeCall
	Err     error
}

// Classify makes the call for one position. It is a pure function of its
// arguments: identical evidence and thresholds give identical results.
func Classify(ev Evidence, th Thresholds) Result {
	if err := ev.check(); err != nil {
		return Result{Outcome: Malformed, Reason: Invalid, Call: NoCallWith(err.Error()), Err: err}
	}

	coverage := ev.Coverage()
	if coverage == 0 {
		return Result{Outcome: NoEvidence, Reason: Unobserved, Call: NoCallWith("")}
	}
	ranked := ev.rank(coverage)
	if len(ranked) == 0 {
		return Result{Outcome: NoEvidence, Reason: Unobserved, Call: NoCallWith("")}
	}

	if coverage < th.MinCoverage {
		c := NoCallWith("")
		c.Coverage = coverage
		c.Quality = ev.Quality
		return Result{Outcome: Called, Reason: LowCoverage, Call: c}
	}

	dominant := ranked[0]

	if dominant.Frequency >= th.MinFrequency {
		c := Call{
			Symbol:    dominant.Symbol,
			Coverage:  coverage,
			Frequency: dominant.Frequency,
			Quality:   ev.Quality,
			Zygosity:  Homozygous,
			Deletion:  dominant.Deletion,
		}
		if dominant.IsReference {
			c.Zygosity = Reference
			return Result{Outcome: Called, Reason: Confident, Call: c}
		}
		if ev.Quality < th.MinQuality {
			return lowQuality(coverage, ev.Quality)
		}
		return Result{Outcome: Called, Reason: Confident, Call: c}
	}

	if th.Heterozygous && len(ranked) > 1 &&
		dominant.Frequency > th.MinHet && dominant.Frequency < th.MaxHet {
		secondary := ranked[1]
		if (!dominant.IsReference || !secondary.IsReference) && ev.Quality < th.MinQuality {
			return lowQuality(coverage, ev.Quality)
		}
		return Result{Outcome: Called, Reason: Confident, Call: Call{
			Symbol:    dominant.Symbol,
			Secondary: secondary.Symbol,
			Coverage:  coverage,
			Frequency: dominant.Frequency,
			Quality:   ev.Quality,
			Zygosity:  Heterozygous,
			Deletion:  dominant.Deletion,
		}}
	}

	maybe := &MaybeCall{
		Position:  ev.Position,
		Reference: ev.Reference,
		Coverage:  coverage,
		Quality:   ev.Quality,
	}
	for i := 0; i < len(ranked) && i < 2; i++ {
		maybe.Candidates = append(maybe.Candidates, Candidate{
			Symbol:    ranked[i].Symbol,
			Frequency: ranked[i].Frequency,
			Deletion:  ranked[i].Deletion,
		})
	}

	return Result{Outcome: Deferred, Reason: Ambiguous, Call: maybe.Degrade(""), Maybe: maybe}
}

func lowQuality(coverage, quality float64) Result {
	c := NoCallWith("")
	c.Coverage = coverage
	c.Quality = quality
	return Result{Outcome: Called, Reason: LowQuality, Call: c}
}
