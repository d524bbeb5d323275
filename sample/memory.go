package sample

import (
	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/locus"
)

// MemorySource serves records held in memory.
type MemorySource struct {
	SampleName string
	Records    []Record

	// QueryErr fails every Query; IterErr is returned by the iterator after
	// the matching records.
	QueryErr error
	IterErr  error
}

func (m *MemorySource) Name() string {
	return m.SampleName
}

func (m *MemorySource) Query(region locus.Region) (Iterator, error) {
	if m.QueryErr != nil {
		return nil, m.QueryErr
	}
	return &sliceIterator{records: filterRegion(m.Records, region), err: m.IterErr}, nil
}
