package sample

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/locus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, it Iterator) ([]Record, error) {
	t.Helper()
	defer it.Close()

	out := make([]Record, 0)
	for {
		rec, err := it.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		} else if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}

func TestMemorySourceQuery(t *testing.T) {
	src := &MemorySource{
		SampleName: "S1",
		Records: []Record{
			{Chrom: "chr1", Position: 1, Ref: "A"},
			{Chrom: "chr1", Position: 5, Ref: "A"},
			{Chrom: "chr1", Position: 11, Ref: "A"},
			{Chrom: "chr2", Position: 5, Ref: "A"},
		},
	}

	it, err := src.Query(locus.MakeRegion("chr1", 0, 10))
	require.NoError(t, err)
	recs, err := drain(t, it)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 1, recs[0].Position)
	assert.Equal(t, 5, recs[1].Position)

	src.IterErr = errors.New("truncated")
	it, err = src.Query(locus.MakeRegion("chr1", 0, 10))
	require.NoError(t, err)
	recs, err = drain(t, it)
	assert.Len(t, recs, 2)
	assert.EqualError(t, err, "truncated")

	src.QueryErr = errors.New("gone")
	_, err = src.Query(locus.MakeRegion("chr1", 0, 10))
	assert.EqualError(t, err, "gone")
}

func TestMemorySourceQueryDeletionBeforeRegion(t *testing.T) {
	src := &MemorySource{
		SampleName: "S1",
		Records: []Record{
			{Chrom: "chr1", Position: 2, Ref: "CGT", Alts: []string{"C"}},
			{Chrom: "chr1", Position: 2, Ref: "C", Alts: []string{"A"}},
			{Chrom: "chr1", Position: 7, Ref: "GTA", Alts: []string{"G"}},
		},
	}

	// chr1:3-7; the deletion anchored at 2 removes bases 3 and 4, while the
	// one anchored at 7 only removes bases after the region
	it, err := src.Query(locus.MakeRegion("chr1", 2, 7))
	require.NoError(t, err)
	recs, err := drain(t, it)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 2, recs[0].Position)
	assert.Equal(t, "CGT", recs[0].Ref)
}

func TestParseSpec(t *testing.T) {
	assert.Equal(t, Spec{Name: "S1", Path: "a/b.vcf.gz", Column: "S1"}, ParseSpec("S1=a/b.vcf.gz"))
	assert.Equal(t, Spec{Path: "a/b.vcf.gz"}, ParseSpec("a/b.vcf.gz"))
	assert.Equal(t, Spec{Path: "./dir=x/b.vcf"}, ParseSpec("./dir=x/b.vcf"))
	assert.Equal(t, Spec{Path: "gs://bucket/k=v.vcf"}, ParseSpec("gs://bucket/k=v.vcf"))
}

const testVCF = `##fileformat=VCFv4.2
##contig=<ID=chr1,length=10>
##FORMAT=<ID=GT,Number=1,Type=String,Description="Genotype">
##FORMAT=<ID=DP,Number=1,Type=Integer,Description="Read depth">
##FORMAT=<ID=AD,Number=R,Type=Integer,Description="Allelic depths">
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO	FORMAT	S1	S2
chr1	3	.	G	T	60	PASS	.	GT:DP:AD	1:10:0,10	0:8:8,0
chr1	5	.	A	C	40	PASS	.	GT:DP:AD	0:3:3,0	1:9:1,8
`

func TestScanSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "samples.vcf")
	require.NoError(t, os.WriteFile(path, []byte(testVCF), 0o644))

	src := NewScan(path, "S2", "", nil)
	require.NoError(t, src.Load())
	assert.Equal(t, "S2", src.Name())

	it, err := src.Query(locus.MakeRegion("chr1", 0, 10))
	require.NoError(t, err)
	recs, err := drain(t, it)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, 3, recs[0].Position)
	assert.Equal(t, "G", recs[0].Ref)
	assert.Equal(t, []string{"T"}, recs[0].Alts)
	assert.Equal(t, 8.0, recs[0].Depth)
	assert.Equal(t, []float64{8, 0}, recs[0].AlleleDepths)
	assert.Equal(t, []float64{1, 8}, recs[1].AlleleDepths)

	_, err = Open(context.Background(), Spec{Path: path, Column: "S9", Name: "S9"}, nil)
	assert.True(t, errors.Is(err, ErrUnknownSample))
}

const deletionVCF = `##fileformat=VCFv4.2
##contig=<ID=chr1,length=10>
##FORMAT=<ID=GT,Number=1,Type=String,Description="Genotype">
##FORMAT=<ID=DP,Number=1,Type=Integer,Description="Read depth">
##FORMAT=<ID=AD,Number=R,Type=Integer,Description="Allelic depths">
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO	FORMAT	S1
chr1	2	.	CGT	C	60	PASS	.	GT:DP:AD	1:10:0,10
`

func TestScanSourceDeletionBeforeRegion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deletion.vcf")
	require.NoError(t, os.WriteFile(path, []byte(deletionVCF), 0o644))

	src, err := Open(context.Background(), Spec{Path: path}, nil)
	require.NoError(t, err)

	it, err := src.Query(locus.MakeRegion("chr1", 2, 7))
	require.NoError(t, err)
	recs, err := drain(t, it)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, 2, recs[0].Position)
	assert.Equal(t, 3, recs[0].EventPosition())
}
