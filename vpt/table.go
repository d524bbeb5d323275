// Package vpt holds the variable positions table: the genotype call of every
// sample at every position of a locus where any sample made a call.
//
// A Table is filled in phases. Shards are registered up front, workers then
// write their own shard concurrently, and after the workers are done the
// table is resolved, completed, given its reference row and sealed. Only the
// shard writes may happen concurrently.
package vpt

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync/atomic"

	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/genotype"
	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/locus"
)

// ReferenceSample names the pseudo-sample holding the reference bases.
const ReferenceSample = "Reference"

var (
	ErrSealed         = errors.New("table is sealed")
	ErrOutOfLocus     = errors.New("position outside locus")
	ErrNotPending     = errors.New("no pending MaybeCall")
	ErrDuplicateShard = errors.New("shard already registered")
	ErrUnknownShard   = errors.New("no such shard")
	ErrReservedSample = errors.New("sample name is reserved")
)

type locusTable struct {
	locus  locus.Locus
	shards map[string]*Shard

	// Filled by Complete
	positions []int
	rows      map[int]map[string]genotype.Call
}

type Table struct {
	loci      map[string]*locusTable
	completed bool
	sealed    atomic.Bool
}

func New() *Table {
	return &Table{loci: make(map[string]*locusTable)}
}

// Register creates the shard for sample at l. All shards must be registered
// before any of them is written to.
func (t *Table) Register(l locus.Locus, sample string) (*Shard, error) {
	if t.Sealed() {
		return nil, ErrSealed
	}
	if sample == ReferenceSample {
		return nil, fmt.Errorf("%w: %s", ErrReservedSample, sample)
	}

	lt, ok := t.loci[l.ID]
	if !ok {
		lt = &locusTable{locus: l, shards: make(map[string]*Shard)}
		t.loci[l.ID] = lt
	}
	if _, exists := lt.shards[sample]; exists {
		return nil, fmt.Errorf("%w: %s at %s", ErrDuplicateShard, sample, l.ID)
	}

	s := newShard(t, l, sample)
	lt.shards[sample] = s
	return s, nil
}

func (t *Table) Shard(locusID, sample string) (*Shard, bool) {
	lt, ok := t.loci[locusID]
	if !ok {
		return nil, false
	}
	s, ok := lt.shards[sample]
	return s, ok
}

// Pending is a MaybeCall waiting for resolution.
type Pending struct {
	Locus string
	Maybe genotype.MaybeCall
}

// Pending lists the outstanding MaybeCalls of shards that did not fail,
// ordered by locus, position and sample.
func (t *Table) Pending() []Pending {
	out := make([]Pending, 0)
	for id, lt := range t.loci {
		for _, s := range lt.shards {
			s.mu.Lock()
			if s.failed == nil {
				for _, m := range s.maybes {
					out = append(out, Pending{Locus: id, Maybe: m})
				}
			}
			s.mu.Unlock()
		}
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Locus != b.Locus {
			return a.Locus < b.Locus
		}
		if a.Maybe.Position != b.Maybe.Position {
			return a.Maybe.Position < b.Maybe.Position
		}
		return a.Maybe.Sample < b.Maybe.Sample
	})
	return out
}

// Calls returns the calls made at one position by shards that did not fail,
// keyed by sample.
func (t *Table) Calls(locusID string, pos int) map[string]genotype.Call {
	out := make(map[string]genotype.Call)
	lt, ok := t.loci[locusID]
	if !ok {
		return out
	}
	for name, s := range lt.shards {
		s.mu.Lock()
		if c, ok := s.calls[pos]; ok && s.failed == nil {
			out[name] = c
		}
		s.mu.Unlock()
	}
	return out
}

// Settle replaces the MaybeCall of sample at pos with c.
func (t *Table) Settle(locusID, sample string, pos int, c genotype.Call) error {
	if t.Sealed() {
		return ErrSealed
	}
	s, ok := t.Shard(locusID, sample)
	if !ok {
		return fmt.Errorf("%w: %s at %s", ErrUnknownShard, sample, locusID)
	}
	return s.settle(pos, c)
}

// Complete reduces every locus to the positions where some sample holds a
// call other than NoCall, span markers included. Every sample gets an entry
// at each of them; a sample without one gets a NoCall. Failed shards lose all
// their calls and get NoCalls annotated with the failure. MaybeCalls still
// pending are degraded to NoCall.
func (t *Table) Complete() error {
	if t.Sealed() {
		return ErrSealed
	}

	for _, lt := range t.loci {
		kept := make(map[int]struct{})
		for _, s := range lt.shards {
			s.mu.Lock()
			if s.failed == nil {
				for pos, c := range s.calls {
					if c.Zygosity != genotype.NoCall {
						kept[pos] = struct{}{}
					}
				}
			}
			s.mu.Unlock()
		}

		lt.positions = make([]int, 0, len(kept))
		for pos := range kept {
			lt.positions = append(lt.positions, pos)
		}
		sort.Ints(lt.positions)

		lt.rows = make(map[int]map[string]genotype.Call, len(lt.positions))
		for _, pos := range lt.positions {
			row := make(map[string]genotype.Call, len(lt.shards)+1)
			for name, s := range lt.shards {
				row[name] = s.final(pos)
			}
			lt.rows[pos] = row
		}
	}

	t.completed = true
	return nil
}

func (s *Shard) final(pos int) genotype.Call {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failed != nil {
		return genotype.NoCallWith(s.failed.Error())
	}
	if c, ok := s.calls[pos]; ok {
		return c
	}
	if m, ok := s.maybes[pos]; ok {
		return m.Degrade("unresolved")
	}
	return genotype.NoCallWith("")
}

// InjectReference adds the ReferenceSample row at every kept position of
// every locus, as if the reference were a sample sequenced with infinite
// certainty.
func (t *Table) InjectReference() error {
	if t.Sealed() {
		return ErrSealed
	}
	if !t.completed {
		return errors.New("reference injected before completion")
	}

	for _, lt := range t.loci {
		for _, pos := range lt.positions {
			base, ok := lt.locus.Base(pos)
			if !ok {
				return fmt.Errorf("%w: %d is outside %s", ErrOutOfLocus, pos, lt.locus)
			}
			lt.rows[pos][ReferenceSample] = ReferenceCall(base)
		}
	}
	return nil
}

func ReferenceCall(base byte) genotype.Call {
	return genotype.Call{
		Symbol:    string(base),
		Coverage:  math.Inf(1),
		Frequency: 1,
		Quality:   math.Inf(1),
		Zygosity:  genotype.Reference,
	}
}

// Seal makes the table read-only.
func (t *Table) Seal() {
	t.sealed.Store(true)
}

func (t *Table) Sealed() bool {
	return t.sealed.Load()
}
