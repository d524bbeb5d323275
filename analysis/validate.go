package analysis

import (
	"errors"
	"fmt"

	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/locus"
	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/sample"
	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/vpt"
)

// Validate checks everything Run needs before it starts. All problems are
// reported together.
func Validate(loci []locus.Locus, sources []sample.Source, cfg Config) error {
	problems := make([]error, 0)
	if err := cfg.Validate(); err != nil {
		problems = append(problems, err)
	}

	if len(loci) == 0 {
		problems = append(problems, ConfigError{Field: "loci", Problem: "none given"})
	}
	seenLoci := make(map[string]struct{}, len(loci))
	for _, l := range loci {
		if err := l.Validate(); err != nil {
			problems = append(problems, ConfigError{Field: "loci", Problem: err.Error()})
		}
		if _, dup := seenLoci[l.ID]; dup {
			problems = append(problems, ConfigError{Field: "loci", Problem: fmt.Sprintf("duplicate locus %q", l.ID)})
		}
		seenLoci[l.ID] = struct{}{}
	}

	if len(sources) == 0 {
		problems = append(problems, ConfigError{Field: "samples", Problem: "none given"})
	}
	seenSamples := make(map[string]struct{}, len(sources))
	for _, src := range sources {
		name := src.Name()
		switch {
		case name == "":
			problems = append(problems, ConfigError{Field: "samples", Problem: "empty sample name"})
		case name == vpt.ReferenceSample:
			problems = append(problems, ConfigError{Field: "samples", Problem: fmt.Sprintf("%q is reserved for the reference", name)})
		}
		if _, dup := seenSamples[name]; dup {
			problems = append(problems, ConfigError{Field: "samples", Problem: fmt.Sprintf("duplicate sample %q", name)})
		}
		seenSamples[name] = struct{}{}
	}

	return errors.Join(problems...)
}
