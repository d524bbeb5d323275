package sample

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	musial "github.com/Integrative-Transcriptomics/MUSIAL-sub002"
	"github.com/cenkalti/backoff"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Spec locates one sample: a VCF path, the sample column to read and the name
// the sample is reported under.
type Spec struct {
	Name   string
	Path   string
	Column string
}

// ParseSpec parses [name=]path. The name doubles as the sample column to read
// from a multi-sample VCF.
func ParseSpec(arg string) Spec {
	if i := strings.Index(arg, "="); i > 0 && !strings.Contains(arg[:i], "/") {
		return Spec{Name: arg[:i], Path: arg[i+1:], Column: arg[:i]}
	}
	return Spec{Path: arg}
}

// Open picks a TabixSource when a .tbi index sits next to the VCF, and a
// ScanSource otherwise. Opening remote indexed files is retried.
func Open(ctx context.Context, spec Spec, client *storage.Client) (Source, error) {
	indexed, err := musial.Exists(ctx, spec.Path+".tbi", client)
	if err != nil {
		return nil, err
	}

	if !indexed {
		s := NewScan(spec.Path, spec.Column, spec.Name, client)
		if err := s.Load(); err != nil {
			return nil, err
		}
		return s, nil
	}

	var src *TabixSource
	operation := func() error {
		var err error
		src, err = OpenTabix(spec.Path, spec.Column, spec.Name, client)
		if errors.Is(err, ErrUnknownSample) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		log.Warnf("opening %s failed, retrying in %s: %v", spec.Path, wait, err)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 4), ctx)
	if err := backoff.RetryNotify(operation, b, notify); err != nil {
		return nil, err
	}

	return src, nil
}

// OpenAll opens every spec concurrently. Sources come back in spec order.
func OpenAll(ctx context.Context, specs []Spec, client *storage.Client) ([]Source, error) {
	out := make([]Source, len(specs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, spec := range specs {
		i, spec := i, spec
		g.Go(func() error {
			src, err := Open(ctx, spec, client)
			if err != nil {
				return err
			}
			out[i] = src
			log.Infof("Opened %s as sample %s", spec.Path, src.Name())
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
