package reference

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	musial "github.com/Integrative-Transcriptomics/MUSIAL-sub002"
	"github.com/biogo/biogo/io/featio"
	"github.com/biogo/biogo/io/featio/gff"
	"github.com/biogo/biogo/seq"
	"github.com/carbocation/pfx"
)

// Feature is an annotated region, coordinates 1-based and closed.
type Feature struct {
	ID      string
	Name    string
	Type    string
	Contig  string
	Start   int
	End     int
	IsSense bool
}

// Matches reports whether the feature is known as name, by Name or ID.
func (f Feature) Matches(name string) bool {
	return name != "" && (f.Name == name || f.ID == name)
}

func OpenGFF(ctx context.Context, path string, client *storage.Client) ([]Feature, error) {
	rc, err := musial.OpenInput(ctx, path, client)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	features, err := ReadGFF(rc)
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}
	return features, nil
}

func ReadGFF(r io.Reader) ([]Feature, error) {
	out := make([]Feature, 0)

	sc := featio.NewScanner(gff.NewReader(r))
	for sc.Next() {
		f, ok := sc.Feat().(*gff.Feature)
		if !ok {
			return nil, fmt.Errorf("unexpected feature type %T", sc.Feat())
		}

		out = append(out, Feature{
			ID:     attribute(f, "ID"),
			Name:   firstNonEmpty(attribute(f, "Name"), attribute(f, "gene"), attribute(f, "gene_name")),
			Type:   f.Feature,
			Contig: f.SeqName,
			// gff.Feature is 0-based, half open
			Start:   f.FeatStart + 1,
			End:     f.FeatEnd,
			IsSense: f.FeatStrand != seq.Minus,
		})
	}
	if err := sc.Error(); err != nil {
		return nil, err
	}

	return out, nil
}

// attribute reads a GFF2 style "tag value" attribute, or a GFF3 style
// "tag=value" one that the GFF2 parser leaves in the tag.
func attribute(f *gff.Feature, tag string) string {
	if v := f.FeatAttributes.Get(tag); v != "" {
		return strings.Trim(v, `"`)
	}
	for _, a := range f.FeatAttributes {
		for _, part := range strings.Split(a.Tag+" "+a.Value, ";") {
			part = strings.TrimSpace(part)
			if strings.HasPrefix(part, tag+"=") {
				return strings.TrimSpace(strings.TrimPrefix(part, tag+"="))
			}
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
