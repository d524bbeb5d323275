package reference

import (
	"errors"
	"strings"
	"testing"

	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/locus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFASTA = `>chr1 test contig
ACGTACGTAC
GGTTA
>plasmid
ttaacc
`

const testGFF = "##gff-version 3\n" +
	"chr1\ttest\tgene\t3\t8\t.\t+\t.\tID=gene0001;Name=abcA\n" +
	"chr1\ttest\tCDS\t3\t8\t.\t+\t0\tID=cds0001;Name=abcA\n" +
	"chr1\ttest\tgene\t10\t14\t.\t-\t.\tID=gene0002;Name=abcB\n"

func TestReadFASTA(t *testing.T) {
	g, err := ReadFASTA(strings.NewReader(testFASTA))
	require.NoError(t, err)

	assert.Equal(t, []string{"chr1", "plasmid"}, g.Names())
	s, ok := g.Contig("chr1")
	require.True(t, ok)
	assert.Equal(t, "ACGTACGTACGGTTA", string(s))

	loci, err := g.WholeContigs()
	require.NoError(t, err)
	require.Len(t, loci, 2)
	assert.Equal(t, 15, loci[0].End)
	b, _ := loci[1].Base(1)
	assert.Equal(t, byte('T'), b)
}

func TestGenomeLocus(t *testing.T) {
	g, err := ReadFASTA(strings.NewReader(testFASTA))
	require.NoError(t, err)

	l, err := g.Locus("x", "chr1", 3, 6, false)
	require.NoError(t, err)
	assert.Equal(t, "GTAC", string(l.Sequence))
	assert.False(t, l.IsSense)

	_, err = g.Locus("x", "chr1", 3, 16, true)
	assert.True(t, errors.Is(err, locus.ErrInvalidLocus))
	_, err = g.Locus("x", "chr9", 1, 2, true)
	assert.True(t, errors.Is(err, locus.ErrInvalidLocus))

	loci, err := g.FromList([]locus.ListRow{{ID: "a", Contig: "plasmid", Start: 2, End: 4, IsSense: true}})
	require.NoError(t, err)
	assert.Equal(t, "taa", string(loci[0].Sequence))
}

func TestReadGFF(t *testing.T) {
	features, err := ReadGFF(strings.NewReader(testGFF))
	require.NoError(t, err)
	require.Len(t, features, 3)

	assert.Equal(t, Feature{ID: "gene0001", Name: "abcA", Type: "gene", Contig: "chr1", Start: 3, End: 8, IsSense: true}, features[0])
	assert.False(t, features[2].IsSense)

	g, err := ReadFASTA(strings.NewReader(testFASTA))
	require.NoError(t, err)

	loci, err := g.FromFeatures(features, []string{"abcA", "gene0002"})
	require.NoError(t, err)
	require.Len(t, loci, 2)
	assert.Equal(t, "abcA", loci[0].ID)
	assert.Equal(t, "GTACGT", string(loci[0].Sequence))
	assert.Equal(t, 10, loci[1].Start)
	assert.False(t, loci[1].IsSense)

	_, err = g.FromFeatures(features, []string{"nope"})
	assert.True(t, errors.Is(err, locus.ErrInvalidLocus))
}
