package hwe

import (
	"math"
	"math/big"

	"github.com/BenLubar/memoize"
)

var (
	memoizedProbability = memoize.Memoize(probability)
	memoizedFactorial   = memoize.Memoize(factorial)
)

// exact follows Wigginton, Cutler and Abecasis: the P-value is the summed
// probability of every genotype configuration with the same allele counts
// that is at most as likely as the observed one.
func exact(homRef, het, homAlt int64) float64 {
	// Keep the rarer homozygote second
	if homAlt > homRef {
		homRef, homAlt = homAlt, homRef
	}

	observed := memoizedProbability.(func(int64, int64, int64) float64)(homRef, het, homAlt)

	return observed +
		tail(homRef, het, homAlt, observed, 1) +
		tail(homRef, het, homAlt, observed, -1)
}

// tail walks away from the observed configuration, trading two homozygotes
// for two heterozygotes (dir 1) or the reverse (dir -1).
func tail(homRef, het, homAlt int64, observed float64, dir int64) float64 {
	var sum float64
	for {
		homRef, het, homAlt = homRef-dir, het+2*dir, homAlt-dir
		if homRef < 0 || het < 0 || homAlt < 0 {
			return sum
		}

		p := memoizedProbability.(func(int64, int64, int64) float64)(homRef, het, homAlt)
		if p > observed {
			continue
		}
		if p <= math.SmallestNonzeroFloat64 {
			return sum
		}
		sum += p
	}
}

// probability of exactly het heterozygotes among homRef+het+homAlt samples,
// given the allele counts they imply.
func probability(homRef, het, homAlt int64) float64 {
	major := 2*homRef + het
	minor := 2*homAlt + het
	n := homRef + het + homAlt

	fact := memoizedFactorial.(func(int64, int64) *big.Int)

	num := new(big.Int).Exp(big.NewInt(2), big.NewInt(het), nil)
	num.Mul(num, fact(1, major))
	num.Mul(num, fact(1, minor))

	denom := new(big.Int).Set(fact(n+1, 2*n))
	denom.Mul(denom, fact(1, homRef))
	denom.Mul(denom, fact(1, het))
	denom.Mul(denom, fact(1, homAlt))

	p, _ := new(big.Rat).SetFrac(num, denom).Float64()
	return p
}

func factorial(a, b int64) *big.Int {
	return big.NewInt(1).MulRange(a, b)
}
