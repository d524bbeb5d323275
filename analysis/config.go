package analysis

import (
	"errors"
	"math"

	"github.com/Integrative-Transcriptomics/MUSIAL-sub002/genotype"
)

// Config is the immutable configuration of one run. It is passed by value to
// the scheduler and every worker.
type Config struct {
	genotype.Thresholds
	Threads int `envconfig:"THREADS" default:"1"`
}

func DefaultConfig() Config {
	return Config{Thresholds: genotype.DefaultThresholds(), Threads: 1}
}

// Validate returns every problem found, joined; each wraps ErrInvalidConfig.
func (c Config) Validate() error {
	problems := make([]error, 0)
	add := func(field, problem string) {
		problems = append(problems, ConfigError{Field: field, Problem: problem})
	}

	if c.MinCoverage < 0 || math.IsNaN(c.MinCoverage) {
		add("MinCoverage", "must be >= 0")
	}
	if !unitInterval(c.MinFrequency) {
		add("MinFrequency", "must be in (0, 1]")
	}
	if c.MinQuality < 0 || math.IsNaN(c.MinQuality) {
		add("MinQuality", "must be >= 0")
	}
	if c.Heterozygous {
		if !unitInterval(c.MinHet) {
			add("MinHet", "must be in (0, 1]")
		}
		if !unitInterval(c.MaxHet) {
			add("MaxHet", "must be in (0, 1]")
		}
		if c.MinHet > c.MaxHet {
			add("MinHet", "must not exceed MaxHet")
		}
	}
	if c.Threads < 1 {
		add("Threads", "must be >= 1")
	}

	return errors.Join(problems...)
}

func unitInterval(v float64) bool {
	return v > 0 && v <= 1
}
