package vpt

import (
	"fmt"
	"sync"

	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/genotype"
	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/locus"
)

// Shard holds the calls of one sample at one locus. Exactly one worker writes
// a shard, but the shard still locks so that readers never race it.
type Shard struct {
	table  *Table
	locus  locus.Locus
	sample string

	mu     sync.Mutex
	calls  map[int]genotype.Call
	maybes map[int]genotype.MaybeCall
	failed error
}

func newShard(t *Table, l locus.Locus, sample string) *Shard {
	return &Shard{
		table:  t,
		locus:  l,
		sample: sample,
		calls:  make(map[int]genotype.Call),
		maybes: make(map[int]genotype.MaybeCall),
	}
}

func (s *Shard) Locus() locus.Locus {
	return s.locus
}

func (s *Shard) Sample() string {
	return s.sample
}

// Ordering of what may overwrite what at one position. A MaybeCall sits
// between reference and variant calls.
const (
	rankNoCall = iota
	rankReference
	rankMaybe
	rankSpan
	rankVariant
)

func rank(c genotype.Call) int {
	switch {
	case c.IsSpan():
		return rankSpan
	case c.Zygosity.IsVariant():
		return rankVariant
	case c.Zygosity == genotype.Reference:
		return rankReference
	default:
		return rankNoCall
	}
}

func (s *Shard) check(pos int) error {
	if s.table.Sealed() {
		return ErrSealed
	}
	if !s.locus.Contains(pos) {
		return fmt.Errorf("%w: %d is outside %s", ErrOutOfLocus, pos, s.locus)
	}
	return nil
}

// existing reports the rank of whatever is stored at pos, and whether it is a
// span marker.
func (s *Shard) existing(pos int) (int, bool, bool) {
	if c, ok := s.calls[pos]; ok {
		return rank(c), c.IsSpan(), true
	}
	if _, ok := s.maybes[pos]; ok {
		return rankMaybe, false, true
	}
	return 0, false, false
}

// Put records c at pos unless something of higher precedence is already
// there. Equal precedence keeps the first value. Span markers never replace
// an explicit call.
func (s *Shard) Put(pos int, c genotype.Call) error {
	if err := s.check(pos); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if r, span, ok := s.existing(pos); ok {
		if c.IsSpan() && !span {
			return nil
		}
		if rank(c) <= r {
			return nil
		}
	}

	delete(s.maybes, pos)
	s.calls[pos] = c
	return nil
}

// Defer records a MaybeCall for later resolution, under the same precedence
// rules as Put.
func (s *Shard) Defer(m genotype.MaybeCall) error {
	if err := s.check(m.Position); err != nil {
		return err
	}
	m.Sample = s.sample

	s.mu.Lock()
	defer s.mu.Unlock()

	if r, _, ok := s.existing(m.Position); ok && r >= rankMaybe {
		return nil
	}

	delete(s.calls, m.Position)
	s.maybes[m.Position] = m
	return nil
}

// Fail marks the whole shard as failed. Its calls are discarded when the
// table is completed.
func (s *Shard) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failed == nil {
		s.failed = err
	}
}

func (s *Shard) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed
}

// Call returns the call at pos. MaybeCalls are not calls.
func (s *Shard) Call(pos int) (genotype.Call, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.calls[pos]
	return c, ok
}

func (s *Shard) Maybe(pos int) (genotype.MaybeCall, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.maybes[pos]
	return m, ok
}

func (s *Shard) settle(pos int, c genotype.Call) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.maybes[pos]; !ok {
		return fmt.Errorf("%w: %s has no MaybeCall at %s:%d", ErrNotPending, s.sample, s.locus.ID, pos)
	}
	delete(s.maybes, pos)
	s.calls[pos] = c
	return nil
}
