// Package locus describes the reference regions that samples are analyzed
// against.
package locus

import (
	"errors"
	"fmt"
)

var ErrInvalidLocus = errors.New("invalid locus")

// Locus is an analyzed reference region: a whole contig or a single feature of
// it. Coordinates are 1-based and closed. Sequence always holds the forward
// strand bases for [Start, End], whatever the feature's orientation; IsSense
// only records that orientation.
type Locus struct {
	ID       string
	Sequence []byte
	Location string // contig the locus lies on, as named in the VCFs
	Start    int
	End      int
	IsSense  bool
}

// New builds a Locus and validates it. The sequence is copied.
func New(id, location string, sequence []byte, start, end int, isSense bool) (Locus, error) {
	l := Locus{
		ID:       id,
		Sequence: append([]byte(nil), sequence...),
		Location: location,
		Start:    start,
		End:      end,
		IsSense:  isSense,
	}
	if err := l.Validate(); err != nil {
		return Locus{}, err
	}
	return l, nil
}

func (l Locus) Validate() error {
	switch {
	case l.ID == "":
		return fmt.Errorf("%w: empty id", ErrInvalidLocus)
	case l.Location == "":
		return fmt.Errorf("%w: %s has no location", ErrInvalidLocus, l.ID)
	case l.Start < 1:
		return fmt.Errorf("%w: %s starts at %d", ErrInvalidLocus, l.ID, l.Start)
	case l.End < l.Start:
		return fmt.Errorf("%w: %s ends (%d) before it starts (%d)", ErrInvalidLocus, l.ID, l.End, l.Start)
	case len(l.Sequence) != l.Length():
		return fmt.Errorf("%w: %s spans %d bases but has %d sequence bases", ErrInvalidLocus, l.ID, l.Length(), len(l.Sequence))
	}
	return nil
}

func (l Locus) Length() int {
	return l.End - l.Start + 1
}

// Contains reports whether the 1-based genomic position pos is inside the locus.
func (l Locus) Contains(pos int) bool {
	return pos >= l.Start && pos <= l.End
}

// Base returns the upper-case reference base at genomic position pos.
func (l Locus) Base(pos int) (byte, bool) {
	if !l.Contains(pos) {
		return 0, false
	}
	b := l.Sequence[pos-l.Start]
	if b >= 'a' && b <= 'z' {
		b -= 'a' - 'A'
	}
	return b, true
}

// Region is the tabix window covering the locus.
func (l Locus) Region() Region {
	return MakeRegion(l.Location, l.Start-1, l.End)
}

func (l Locus) String() string {
	strand := "+"
	if !l.IsSense {
		strand = "-"
	}
	return fmt.Sprintf("%s(%s:%d-%d%s)", l.ID, l.Location, l.Start, l.End, strand)
}
