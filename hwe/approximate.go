package hwe

import (
	"math"

	"github.com/tokenme/probab/dst"
)

func approximate(homRef, het, homAlt float64) (p float64) {
	// dst panics on some degenerate inputs
	defer func() {
		if recover() != nil {
			p = math.NaN()
		}
	}()

	return 1.0 - dst.ChiSquareCDF(1)(chiSquare(homRef, het, homAlt))
}

// chiSquare compares observed genotype counts with those expected from the
// observed allele frequencies.
func chiSquare(homRef, het, homAlt float64) float64 {
	major := 2*homRef + het
	minor := 2*homAlt + het

	// Monomorphic sites are trivially in equilibrium
	if major == 0 || minor == 0 {
		return 0
	}

	n := homRef + het + homAlt
	p := major / (major + minor)
	q := minor / (major + minor)

	expected := [3]float64{p * p * n, 2 * p * q * n, q * q * n}
	observed := [3]float64{homRef, het, homAlt}

	var chi float64
	for i := range expected {
		chi += math.Pow(expected[i]-observed[i], 2) / expected[i]
	}
	return chi
}
