package main

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/analysis"
	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/vpt"
	log "github.com/sirupsen/logrus"
	"gopkg.in/guregu/null.v3"
)

// printTable writes one row per locus, position and sample.
func printTable(w io.Writer, t *vpt.Table) error {
	if _, err := fmt.Fprintln(w, "locus\tposition\tsample\tallele\tsecondary\tzygosity\tcoverage\tfrequency\tquality\tdeletion\tanchor\tannotation"); err != nil {
		return err
	}

	for _, id := range t.Loci() {
		samples := t.Samples(id)
		for _, pos := range t.Positions(id) {
			for _, name := range samples {
				c, ok := t.Call(id, pos, name)
				if !ok {
					continue
				}
				_, err := fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
					id, pos, name, c.Symbol, c.Secondary, c.Zygosity,
					FloatFormatter(c.Coverage), FloatFormatter(c.Frequency), FloatFormatter(c.Quality),
					c.Deletion, c.Anchor, NullStringFormatter(c.Annotation))
				if err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func printSamples(r *analysis.Report) {
	for _, s := range r.Samples {
		log.Printf("%s: %d reference, %d homozygous, %d heterozygous, %d no call; coverage mean %.1f median %.1f",
			s.Sample, s.Reference, s.Homozygous, s.Heterozygous, s.NoCall, s.MeanCoverage, s.MedianCoverage)
	}
	for _, f := range r.Failures {
		log.Warnln(f)
	}
}

func printSites(w io.Writer, r *analysis.Report) {
	fmt.Fprintln(w, "locus\tposition\treference\thom_ref\thet\thom_alt\tno_call\thwe_p")
	for _, s := range r.Sites {
		fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%d\t%d\t%d\t%s\n",
			s.Locus, s.Position, s.Reference, s.Counts.HomRef, s.Counts.Het, s.Counts.HomAlt, s.NoCall, FloatFormatter(s.HWE))
	}
}

func FloatFormatter(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Inf"
	case math.IsNaN(f):
		return ""
	}
	return strconv.FormatFloat(f, 'g', 6, 64)
}

func NullStringFormatter(n null.String) string {
	if !n.Valid {
		return ""
	}

	return n.String
}
