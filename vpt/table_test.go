package vpt

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/genotype"
	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/locus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLocus(t *testing.T) locus.Locus {
	l, err := locus.New("chr1", "chr1", []byte("ACGTACGTAC"), 1, 10, true)
	require.NoError(t, err)
	return l
}

func hom(sym string) genotype.Call {
	return genotype.Call{Symbol: sym, Coverage: 10, Frequency: 1, Quality: 60, Zygosity: genotype.Homozygous}
}

func ref(sym string) genotype.Call {
	return genotype.Call{Symbol: sym, Coverage: 10, Frequency: 1, Quality: 60, Zygosity: genotype.Reference}
}

func TestShardPrecedence(t *testing.T) {
	tbl := New()
	s, err := tbl.Register(testLocus(t), "S1")
	require.NoError(t, err)

	require.NoError(t, s.Put(2, ref("C")))
	require.NoError(t, s.Put(2, hom("T")))
	require.NoError(t, s.Put(2, ref("C")))
	c, _ := s.Call(2)
	assert.Equal(t, "T", c.Symbol)

	// First of equal precedence wins
	require.NoError(t, s.Put(3, hom("A")))
	require.NoError(t, s.Put(3, hom("C")))
	c, _ = s.Call(3)
	assert.Equal(t, "A", c.Symbol)

	// A MaybeCall beats a reference call but not a variant
	require.NoError(t, s.Put(4, ref("T")))
	require.NoError(t, s.Defer(genotype.MaybeCall{Position: 4}))
	_, ok := s.Call(4)
	assert.False(t, ok)
	m, ok := s.Maybe(4)
	assert.True(t, ok)
	assert.Equal(t, "S1", m.Sample)
	require.NoError(t, s.Defer(genotype.MaybeCall{Position: 3}))
	_, ok = s.Maybe(3)
	assert.False(t, ok)

	// Span markers never replace explicit calls
	span := hom(genotype.DeletionSymbol)
	span.Anchor = 4
	require.NoError(t, s.Put(5, ref("A")))
	require.NoError(t, s.Put(5, span))
	c, _ = s.Call(5)
	assert.Equal(t, genotype.Reference, c.Zygosity)

	require.NoError(t, s.Put(6, span))
	require.NoError(t, s.Put(6, ref("C")))
	c, _ = s.Call(6)
	assert.True(t, c.IsSpan())
	require.NoError(t, s.Put(6, hom("G")))
	c, _ = s.Call(6)
	assert.Equal(t, "G", c.Symbol)

	assert.True(t, errors.Is(s.Put(11, hom("A")), ErrOutOfLocus))
}

func TestRegister(t *testing.T) {
	tbl := New()
	_, err := tbl.Register(testLocus(t), "S1")
	require.NoError(t, err)

	_, err = tbl.Register(testLocus(t), "S1")
	assert.True(t, errors.Is(err, ErrDuplicateShard))

	_, err = tbl.Register(testLocus(t), ReferenceSample)
	assert.True(t, errors.Is(err, ErrReservedSample))
}

func TestCompleteFillsEverySample(t *testing.T) {
	tbl := New()
	l := testLocus(t)
	s1, _ := tbl.Register(l, "S1")
	s2, _ := tbl.Register(l, "S2")
	s3, _ := tbl.Register(l, "S3")

	require.NoError(t, s1.Put(3, hom("T")))
	require.NoError(t, s1.Put(4, ref("T")))
	require.NoError(t, s2.Put(3, ref("G")))
	require.NoError(t, s2.Put(7, ref("G")))
	require.NoError(t, s2.Defer(genotype.MaybeCall{Position: 3, Coverage: 4}))
	require.NoError(t, s3.Put(8, hom("A")))
	s3.Fail(errors.New("unreadable"))

	require.NoError(t, tbl.Complete())

	// Reference calls keep a position too; the failed shard's call at 8 is
	// dropped
	assert.Equal(t, []int{3, 4, 7}, tbl.Positions("chr1"))

	row := tbl.Row("chr1", 7)
	require.Len(t, row, 3)
	assert.Equal(t, genotype.NoCall, row["S1"].Zygosity)
	assert.Equal(t, genotype.Reference, row["S2"].Zygosity)
	assert.Equal(t, genotype.NoCall, row["S3"].Zygosity)

	row = tbl.Row("chr1", 3)
	require.Len(t, row, 3)
	assert.Equal(t, genotype.Homozygous, row["S1"].Zygosity)
	// The reference call at 3 was displaced by the MaybeCall, which is
	// degraded because nothing resolved it
	assert.Equal(t, genotype.NoCall, row["S2"].Zygosity)
	assert.Equal(t, "unresolved", row["S2"].Annotation.String)
	assert.Equal(t, 4.0, row["S2"].Coverage)
	assert.Equal(t, genotype.NoCall, row["S3"].Zygosity)
	assert.Equal(t, "unreadable", row["S3"].Annotation.String)

	assert.Contains(t, tbl.Failures("chr1"), "S3")

	require.NoError(t, tbl.InjectReference())
	tbl.Seal()

	c, ok := tbl.Call("chr1", 3, ReferenceSample)
	require.True(t, ok)
	assert.Equal(t, "G", c.Symbol)
	assert.Equal(t, genotype.Reference, c.Zygosity)
	assert.True(t, math.IsInf(c.Coverage, 1))
	assert.Equal(t, 1.0, c.Frequency)

	assert.Equal(t, []string{ReferenceSample, "S1", "S2", "S3"}, tbl.Samples("chr1"))

	assert.True(t, errors.Is(s1.Put(5, hom("C")), ErrSealed))
	assert.True(t, errors.Is(tbl.Complete(), ErrSealed))
	assert.True(t, errors.Is(tbl.InjectReference(), ErrSealed))
}

func TestSettle(t *testing.T) {
	tbl := New()
	s, _ := tbl.Register(testLocus(t), "S1")
	require.NoError(t, s.Defer(genotype.MaybeCall{Position: 9}))

	pending := tbl.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, "chr1", pending[0].Locus)
	assert.Equal(t, 9, pending[0].Maybe.Position)

	require.NoError(t, tbl.Settle("chr1", "S1", 9, hom("G")))
	assert.Empty(t, tbl.Pending())
	assert.True(t, errors.Is(tbl.Settle("chr1", "S1", 9, hom("G")), ErrNotPending))
	assert.True(t, errors.Is(tbl.Settle("chr1", "S9", 9, hom("G")), ErrUnknownShard))

	assert.Equal(t, map[string]genotype.Call{"S1": hom("G")}, tbl.Calls("chr1", 9))
}

func TestConcurrentShardWrites(t *testing.T) {
	tbl := New()
	loci := make([]locus.Locus, 0)
	for i := 0; i < 4; i++ {
		l, err := locus.New(fmt.Sprintf("L%d", i), "chr1", []byte("ACGTACGTAC"), 1, 10, true)
		require.NoError(t, err)
		loci = append(loci, l)
	}

	shards := make([]*Shard, 0)
	for _, l := range loci {
		for j := 0; j < 8; j++ {
			s, err := tbl.Register(l, fmt.Sprintf("S%d", j))
			require.NoError(t, err)
			shards = append(shards, s)
		}
	}

	var wg sync.WaitGroup
	for _, s := range shards {
		wg.Add(1)
		go func(s *Shard) {
			defer wg.Done()
			for pos := 1; pos <= 10; pos++ {
				if pos%3 == 0 {
					s.Put(pos, hom("T"))
				} else {
					s.Put(pos, ref("A"))
				}
			}
		}(s)
	}
	wg.Wait()

	require.NoError(t, tbl.Complete())
	for _, l := range loci {
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, tbl.Positions(l.ID))
		for _, pos := range tbl.Positions(l.ID) {
			assert.Len(t, tbl.Row(l.ID, pos), 8)
		}
	}
}
