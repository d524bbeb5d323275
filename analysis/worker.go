package analysis

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/genotype"
	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/locus"
	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/sample"
	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/vpt"
	log "github.com/sirupsen/logrus"
)

// workItem is one sample analyzed at one locus. Items are independent.
type workItem struct {
	locus  locus.Locus
	source sample.Source
	shard  *vpt.Shard
}

func (w workItem) fail(pos int, err error) ItemError {
	return ItemError{Locus: w.locus.ID, Sample: w.shard.Sample(), Position: pos, Err: err}
}

// worker drains work until the channel is closed.
func worker(work <-chan workItem, failures chan<- ItemError, th genotype.Thresholds) {
	for item := range work {
		if err := item.run(th); err != nil {
			var ie ItemError
			if !errors.As(err, &ie) {
				ie = item.fail(0, err)
			}
			item.shard.Fail(ie)

			log.WithFields(log.Fields{
				"locus":    ie.Locus,
				"sample":   ie.Sample,
				"position": ie.Position,
			}).Warnln("Work item failed, its calls are discarded:", ie.Err)

			failures <- ie
		}
	}
}

// run classifies every record of the sample inside the locus and writes the
// results into the item's shard.
func (w workItem) run(th genotype.Thresholds) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = w.fail(0, fmt.Errorf("panic: %v", r))
		}
	}()

	it, err := w.source.Query(w.locus.Region())
	if err != nil {
		return w.fail(0, err)
	}
	defer it.Close()

	n := 0
	for {
		rec, err := it.Next()
		if err != nil && !errors.Is(err, io.EOF) {
			return w.fail(0, err)
		} else if errors.Is(err, io.EOF) {
			break
		}

		if rec.Chrom != w.locus.Location || !w.locus.Contains(rec.EventPosition()) {
			// Tabix hands back anything overlapping the window
			continue
		}
		if err := w.checkReference(rec); err != nil {
			return err
		}

		if err := w.record(rec, th); err != nil {
			return err
		}
		n++
	}

	log.Debugf("%s/%s: %d records", w.locus.ID, w.shard.Sample(), n)

	return nil
}

// checkReference compares the REF bases that fall inside the locus with its
// sequence. N matches anything.
func (w workItem) checkReference(rec sample.Record) error {
	for i := 0; i < len(rec.Ref); i++ {
		pos := rec.Position + i
		base, ok := w.locus.Base(pos)
		if !ok {
			continue
		}
		got := strings.ToUpper(rec.Ref[i : i+1])
		if got == "N" || base == 'N' || got[0] == base {
			continue
		}
		return w.fail(pos, fmt.Errorf("%w: VCF has %s, locus has %c", ErrReferenceMismatch, got, base))
	}
	return nil
}

func (w workItem) record(rec sample.Record, th genotype.Thresholds) error {
	ev, err := rec.Evidence()
	if err != nil {
		return w.fail(rec.Position, err)
	}

	res := genotype.Classify(ev, th)
	switch res.Outcome {
	case genotype.Malformed:
		return w.fail(ev.Position, res.Err)

	case genotype.Deferred:
		if err := w.shard.Defer(*res.Maybe); err != nil {
			return w.fail(ev.Position, err)
		}
		return nil
	}

	if err := w.shard.Put(ev.Position, res.Call); err != nil {
		return w.fail(ev.Position, err)
	}

	// Mark the rest of a called deletion so the alignment stays in frame
	if res.Call.Zygosity.IsVariant() && res.Call.Deletion > 1 {
		span := res.Call
		span.Deletion = 0
		span.Anchor = ev.Position
		for pos := ev.Position + 1; pos < ev.Position+res.Call.Deletion && w.locus.Contains(pos); pos++ {
			if err := w.shard.Put(pos, span); err != nil {
				return w.fail(pos, err)
			}
		}
	}

	return nil
}
