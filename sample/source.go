// Package sample exposes the variant records of one sample, restricted to a
// genomic region, from indexed or plain VCF files.
package sample

import (
	"io"

	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/locus"
)

// Source is a named, range-queryable stream of one sample's records. Query may
// be called from several goroutines at once.
type Source interface {
	Name() string
	Query(region locus.Region) (Iterator, error)
}

// Iterator yields records in file order. Next returns io.EOF when exhausted.
type Iterator interface {
	Next() (Record, error)
	Close() error
}

// sliceIterator serves records that were already materialized.
type sliceIterator struct {
	records []Record
	err     error // returned once the records run out, instead of io.EOF
	i       int
}

func (it *sliceIterator) Next() (Record, error) {
	if it.i >= len(it.records) {
		if it.err != nil {
			return Record{}, it.err
		}
		return Record{}, io.EOF
	}
	rec := it.records[it.i]
	it.i++
	return rec, nil
}

func (it *sliceIterator) Close() error {
	it.records = nil
	return nil
}

// filterRegion keeps the records whose evidence lands in region. A deletion
// anchored on the base before the region still deletes bases inside it.
func filterRegion(records []Record, region locus.Region) []Record {
	out := make([]Record, 0)
	for _, rec := range records {
		if rec.Chrom == region.Chrom() && region.Contains(rec.EventPosition()) {
			out = append(out, rec)
		}
	}
	return out
}
