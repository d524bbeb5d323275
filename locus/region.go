package locus

import "fmt"

// Region is a tabix query window. It satisfies the irelate IPosition interface
// so it can be handed straight to bix: Start is 0-based and End is exclusive,
// which for a 1-based closed locus [s, e] means Start = s-1 and End = e.
type Region struct {
	chrom string
	start int
	end   int
}

func MakeRegion(chrom string, start, end int) Region {
	return Region{chrom, start, end}
}

func (r Region) Chrom() string {
	return r.chrom
}

func (r Region) Start() uint32 {
	return uint32(r.start)
}

func (r Region) End() uint32 {
	return uint32(r.end)
}

// Contains reports whether the 1-based position pos lies within the region.
func (r Region) Contains(pos int) bool {
	return pos > r.start && pos <= r.end
}

func (r Region) String() string {
	return fmt.Sprintf("%s:%d-%d", r.chrom, r.start+1, r.end)
}
