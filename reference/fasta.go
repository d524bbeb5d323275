// Package reference turns reference FASTA and GFF files into the loci a run
// analyzes.
package reference

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	musial "github.com/Integrative-Transcriptomics/MUSIAL-sub002"
	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/carbocation/pfx"
)

// Genome holds the contigs of a reference FASTA.
type Genome struct {
	names  []string
	contig map[string][]byte
}

// OpenFASTA reads a local or gs:// FASTA, compressed or not.
func OpenFASTA(ctx context.Context, path string, client *storage.Client) (*Genome, error) {
	rc, err := musial.OpenInput(ctx, path, client)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	g, err := ReadFASTA(rc)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}
	return g, nil
}

func ReadFASTA(r io.Reader) (*Genome, error) {
	g := &Genome{contig: make(map[string][]byte)}

	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNAredundant)))
	for sc.Next() {
		s, ok := sc.Seq().(*linear.Seq)
		if !ok {
			return nil, fmt.Errorf("unexpected sequence type %T", sc.Seq())
		}

		name := s.Name()
		if _, dup := g.contig[name]; dup {
			return nil, fmt.Errorf("contig %s appears twice", name)
		}

		bases := make([]byte, len(s.Seq))
		for i, l := range s.Seq {
			bases[i] = byte(l)
		}

		g.names = append(g.names, name)
		g.contig[name] = bases
	}
	if err := sc.Error(); err != nil {
		return nil, err
	}
	if len(g.names) == 0 {
		return nil, fmt.Errorf("no sequences found")
	}

	return g, nil
}

// Names lists the contigs in file order.
func (g *Genome) Names() []string {
	return append([]string(nil), g.names...)
}

func (g *Genome) Contig(name string) ([]byte, bool) {
	s, ok := g.contig[name]
	return s, ok
}
