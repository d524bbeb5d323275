package sample

import (
	"bufio"
	"context"
	"fmt"
	"sync"

	"cloud.google.com/go/storage"
	musial "github.com/Integrative-Transcriptomics/MUSIAL-sub002"
	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/locus"
	"github.com/carbocation/pfx"
	"github.com/carbocation/vcfgo"
	log "github.com/sirupsen/logrus"
)

const BufferSize = 4096 * 8

// ScanSource serves a VCF without an index. The whole sample column is read
// on first use and kept in memory.
type ScanSource struct {
	name   string
	path   string
	column string
	client *storage.Client

	once    sync.Once
	records []Record
	err     error
}

// NewScan prepares a ScanSource. Nothing is read until the first Query.
func NewScan(path, column, name string, client *storage.Client) *ScanSource {
	return &ScanSource{name: name, path: path, column: column, client: client}
}

// Name is the configured name; when none was given it is only known once the
// header has been read.
func (s *ScanSource) Name() string {
	if s.name == "" {
		s.once.Do(s.load)
	}
	return s.name
}

// Load reads the file now instead of on first use.
func (s *ScanSource) Load() error {
	s.once.Do(s.load)
	return s.err
}

func (s *ScanSource) Query(region locus.Region) (Iterator, error) {
	s.once.Do(s.load)
	if s.err != nil {
		return nil, s.err
	}
	return &sliceIterator{records: filterRegion(s.records, region)}, nil
}

func (s *ScanSource) load() {
	rc, err := musial.OpenInput(context.Background(), s.path, s.client)
	if err != nil {
		s.err = err
		return
	}
	defer rc.Close()

	rdr, err := vcfgo.NewReader(bufio.NewReaderSize(rc, BufferSize), true)
	if err != nil && rdr == nil {
		s.err = pfx.Err(err)
		return
	} else if err != nil {
		log.Warnln(s.path, "has an invalid header, attempting to continue:", err)
		rdr.Clear()
	}

	idx, sampleName, err := sampleColumn(rdr.Header, s.column)
	if err != nil {
		s.err = fmt.Errorf("%s: %w", s.path, err)
		return
	}
	if s.name == "" {
		s.name = sampleName
	}

	records, err := readRecords(rdr, idx)
	if err != nil {
		s.err = pfx.Err(err)
		return
	}
	log.Debugf("%s: %d records for sample %s", s.path, len(records), s.name)
	s.records = records
}

func readRecords(rdr *vcfgo.Reader, column int) ([]Record, error) {
	out := make([]Record, 0)
	for {
		variant := rdr.Read()
		if variant == nil {
			break
		}
		if err := rdr.Header.ParseSamples(variant); err != nil {
			return nil, err
		}
		rec, err := RecordFromVariant(variant, column)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rdr.Error(); err != nil {
		// vcfgo collects recoverable header and field complaints here
		log.Warnln("VCF problems, continuing:", err)
		rdr.Clear()
	}

	return out, nil
}
