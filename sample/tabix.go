package sample

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"cloud.google.com/go/storage"
	musial "github.com/Integrative-Transcriptomics/MUSIAL-sub002"
	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/locus"
	"github.com/carbocation/bix"
	"github.com/carbocation/pfx"
	"github.com/carbocation/vcfgo"
)

// TabixSource answers region queries from a bgzipped, tabix-indexed VCF, local
// or on Google Storage.
type TabixSource struct {
	name   string
	path   string
	column int

	// The index handle is not safe for concurrent queries
	mu  sync.Mutex
	tbx *bix.Bix
}

// OpenTabix opens path and selects the sample column called column (or the
// only one, if column is empty). The source is named name, falling back to
// the column's name.
func OpenTabix(path, column, name string, client *storage.Client) (*TabixSource, error) {
	// NewGCP reads local paths itself and only needs the client for gs://
	tbx, err := bix.NewGCP(musial.ExpandHome(path), client)
	if err != nil {
		return nil, pfx.Err(err)
	}

	idx, sampleName, err := sampleColumn(tbx.VReader.Header, column)
	if err != nil {
		tbx.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if name == "" {
		name = sampleName
	}

	return &TabixSource{name: name, path: path, column: idx, tbx: tbx}, nil
}

func (s *TabixSource) Name() string {
	return s.name
}

// Query materializes every record of the region while holding the index, so
// the returned iterator never touches shared state.
func (s *TabixSource) Query(region locus.Region) (Iterator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vals, err := s.tbx.Query(region)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer vals.Close()

	records := make([]Record, 0)
	for {
		v, err := vals.Next()
		if err != nil && !errors.Is(err, io.EOF) {
			// Records read so far stay usable; the error surfaces once they
			// are consumed.
			return &sliceIterator{records: records, err: pfx.Err(err)}, nil
		} else if errors.Is(err, io.EOF) {
			break
		}

		snp, err := unwrapVariant(v)
		if err != nil {
			return &sliceIterator{records: records, err: err}, nil
		}

		rec, err := s.record(snp)
		if err != nil {
			return &sliceIterator{records: records, err: err}, nil
		}
		records = append(records, rec)
	}

	return &sliceIterator{records: records}, nil
}

func (s *TabixSource) record(snp *vcfgo.Variant) (Record, error) {
	if err := s.tbx.VReader.Header.ParseSamples(snp); err != nil {
		return Record{}, pfx.Err(err)
	}
	return RecordFromVariant(snp, s.column)
}

func (s *TabixSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tbx.Close()
}

func (s *TabixSource) String() string {
	return s.name + "@" + s.path
}
