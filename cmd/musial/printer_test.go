package main

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/analysis"
	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/locus"
	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"
)

func TestPrintTable(t *testing.T) {
	l, err := locus.New("chr1", "chr1", []byte("ACGTACGTAC"), 1, 10, true)
	require.NoError(t, err)

	sources := []sample.Source{
		&sample.MemorySource{SampleName: "S1", Records: []sample.Record{{
			Chrom:        "chr1",
			Position:     3,
			Ref:          "G",
			Alts:         []string{"T"},
			Quality:      60,
			Depth:        10,
			AlleleDepths: []float64{0, 10},
		}}},
	}

	table, report, err := analysis.Run([]locus.Locus{l}, sources, analysis.DefaultConfig())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printTable(&buf, table))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "locus\tposition\tsample"))
	assert.Equal(t, "chr1\t3\tReference\tG\t\tREFERENCE\tInf\t1\tInf\t0\t0\t", lines[1])
	assert.Equal(t, "chr1\t3\tS1\tT\t\tHOMOZYGOUS\t10\t1\t60\t0\t0\t", lines[2])

	buf.Reset()
	printSites(&buf, report)
	lines = strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "chr1\t3\tG\t0\t0\t1\t0\t"))
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "Inf", FloatFormatter(math.Inf(1)))
	assert.Equal(t, "", FloatFormatter(math.NaN()))
	assert.Equal(t, "0.5", FloatFormatter(0.5))
	assert.Equal(t, "", NullStringFormatter(null.String{}))
	assert.Equal(t, "resolved", NullStringFormatter(null.StringFrom("resolved")))
}

func TestFlagSlice(t *testing.T) {
	var f flagSlice
	require.NoError(t, f.Set("a.vcf"))
	require.NoError(t, f.Set("S2=b.vcf"))
	assert.Equal(t, flagSlice{"a.vcf", "S2=b.vcf"}, f)
	assert.Equal(t, "a.vcf,S2=b.vcf", f.String())
}
