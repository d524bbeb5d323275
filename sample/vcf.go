package sample

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/genotype"
	"github.com/brentp/irelate/interfaces"
	"github.com/carbocation/vcfgo"
)

var ErrUnknownSample = errors.New("sample column not found")

// RecordFromVariant reads the sample at column sampleIdx of a parsed variant.
// Samples must already have been parsed from the variant's sample string.
func RecordFromVariant(v *vcfgo.Variant, sampleIdx int) (Record, error) {
	if v == nil {
		return Record{}, fmt.Errorf("%w: nil variant", genotype.ErrMalformed)
	}

	rec := Record{
		Chrom:    v.Chromosome,
		Position: int(v.Pos),
		Ref:      v.Reference,
		Alts:     append([]string(nil), v.Alternate...),
		Quality:  float64(v.Quality),
		Depth:    -1,
	}
	if v.Quality < 0 {
		rec.Quality = 0
	}

	if sampleIdx < 0 || sampleIdx >= len(v.Samples) {
		return Record{}, fmt.Errorf("%w: %s:%d has %d samples, wanted column %d",
			genotype.ErrMalformed, v.Chromosome, v.Pos, len(v.Samples), sampleIdx)
	}
	s := v.Samples[sampleIdx]
	if s == nil {
		// A missing sample column is no evidence, not bad evidence
		return rec, nil
	}

	rec.Genotype = append([]int(nil), s.GT...)

	if dp, ok := s.Fields["DP"]; ok && dp != "." && dp != "" {
		d, err := strconv.ParseFloat(dp, 64)
		if err != nil {
			return Record{}, fmt.Errorf("%w: %s:%d DP %q", genotype.ErrMalformed, v.Chromosome, v.Pos, dp)
		}
		rec.Depth = d
	} else if s.DP > 0 {
		rec.Depth = float64(s.DP)
	}

	if ad, ok := s.Fields["AD"]; ok && ad != "." && ad != "" {
		depths, err := parseAlleleDepths(ad)
		if err != nil {
			return Record{}, fmt.Errorf("%w: %s:%d AD %q: %v", genotype.ErrMalformed, v.Chromosome, v.Pos, ad, err)
		}
		rec.AlleleDepths = depths
	}

	return rec, nil
}

func parseAlleleDepths(ad string) ([]float64, error) {
	parts := strings.Split(ad, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		if p == "." {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, err
		}
		if v < 0 || math.IsNaN(v) {
			return nil, fmt.Errorf("allele depth %v", v)
		}
		out[i] = v
	}
	return out, nil
}

// sampleColumn finds name among the header's samples. The only column of a
// single-sample VCF is used when name is empty or not found.
func sampleColumn(h *vcfgo.Header, name string) (int, string, error) {
	if h == nil {
		return -1, "", fmt.Errorf("%w: VCF has no header", ErrUnknownSample)
	}
	for i, s := range h.SampleNames {
		if name != "" && s == name {
			return i, s, nil
		}
	}
	if len(h.SampleNames) == 1 {
		return 0, h.SampleNames[0], nil
	}
	if name == "" {
		return -1, "", fmt.Errorf("%w: VCF has %d samples; pick one by name", ErrUnknownSample, len(h.SampleNames))
	}
	return -1, "", fmt.Errorf("%w: %q is not among %d samples", ErrUnknownSample, name, len(h.SampleNames))
}

// unwrapVariant gets to the vcfgo.Variant behind a tabix query result.
func unwrapVariant(v interfaces.Relatable) (*vcfgo.Variant, error) {
	v2, ok := v.(interfaces.VarWrap)
	if !ok {
		return nil, fmt.Errorf("%s:%d: not a valid VarWrap", v.Chrom(), v.End())
	}

	snp, ok := v2.IVariant.(*vcfgo.Variant)
	if !ok {
		return nil, fmt.Errorf("%s:%d: not a valid IVariant", v.Chrom(), v.End())
	}

	return snp, nil
}
