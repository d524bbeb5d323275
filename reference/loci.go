package reference

import (
	"fmt"

	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/locus"
)

// Locus cuts [start, end] out of contig.
func (g *Genome) Locus(id, contig string, start, end int, isSense bool) (locus.Locus, error) {
	s, ok := g.contig[contig]
	if !ok {
		return locus.Locus{}, fmt.Errorf("%w: %s: no contig %q in the reference", locus.ErrInvalidLocus, id, contig)
	}
	if start < 1 || end > len(s) || end < start {
		return locus.Locus{}, fmt.Errorf("%w: %s: %d-%d is outside %s (length %d)", locus.ErrInvalidLocus, id, start, end, contig, len(s))
	}
	return locus.New(id, contig, s[start-1:end], start, end, isSense)
}

// WholeContigs makes one locus per contig, named after it.
func (g *Genome) WholeContigs() ([]locus.Locus, error) {
	out := make([]locus.Locus, 0, len(g.names))
	for _, name := range g.names {
		l, err := g.Locus(name, name, 1, len(g.contig[name]), true)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// FromList makes the loci of a locus list.
func (g *Genome) FromList(rows []locus.ListRow) ([]locus.Locus, error) {
	out := make([]locus.Locus, 0, len(rows))
	for _, row := range rows {
		l, err := g.Locus(row.ID, row.Contig, row.Start, row.End, row.IsSense)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// FromFeatures makes one locus per requested feature name. When a name
// matches several features, a "gene" feature is preferred over the first
// match.
func (g *Genome) FromFeatures(features []Feature, names []string) ([]locus.Locus, error) {
	out := make([]locus.Locus, 0, len(names))
	for _, name := range names {
		var match *Feature
		for i := range features {
			if !features[i].Matches(name) {
				continue
			}
			if match == nil || (match.Type != "gene" && features[i].Type == "gene") {
				match = &features[i]
			}
		}
		if match == nil {
			return nil, fmt.Errorf("%w: no feature named %q", locus.ErrInvalidLocus, name)
		}

		l, err := g.Locus(name, match.Contig, match.Start, match.End, match.IsSense)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}
