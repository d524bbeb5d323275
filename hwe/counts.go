// Package hwe tests genotype counts at a site for Hardy-Weinberg equilibrium.
package hwe

import "github.com/BenLubar/memoize"

// Counts are the genotype counts of one biallelic site.
type Counts struct {
	HomRef int64
	Het    int64
	HomAlt int64
}

func (c Counts) N() int64 {
	return c.HomRef + c.Het + c.HomAlt
}

var (
	memoizedExact       = memoize.Memoize(exact)
	memoizedApproximate = memoize.Memoize(approximate)
)

// Exact is the exact HWE P-value. Safe for concurrent use.
func (c Counts) Exact() float64 {
	return memoizedExact.(func(int64, int64, int64) float64)(c.HomRef, c.Het, c.HomAlt)
}

// Approximate is the 1 degree of freedom chi square P-value.
func (c Counts) Approximate() float64 {
	return memoizedApproximate.(func(float64, float64, float64) float64)(float64(c.HomRef), float64(c.Het), float64(c.HomAlt))
}

// Test uses the chi square approximation and only pays for the exact test
// when the approximation falls below cutoff.
func (c Counts) Test(cutoff float64) float64 {
	if p := c.Approximate(); p >= cutoff {
		return p
	}
	return c.Exact()
}
