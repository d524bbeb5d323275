package genotype

// Thresholds drive Classify. Range checks live with the run configuration
// that embeds them.
type Thresholds struct {
	MinCoverage  float64 `envconfig:"MIN_COVERAGE" default:"5"`
	MinFrequency float64 `envconfig:"MIN_FREQUENCY" default:"0.9"`
	MinQuality   float64 `envconfig:"MIN_QUALITY" default:"30"`

	// Heterozygous enables calls inside the open band (MinHet, MaxHet).
	Heterozygous bool    `envconfig:"HETEROZYGOUS" default:"false"`
	MinHet       float64 `envconfig:"MIN_HET" default:"0.45"`
	MaxHet       float64 `envconfig:"MAX_HET" default:"0.55"`
}

// DefaultThresholds matches the envconfig defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinCoverage:  5,
		MinFrequency: 0.9,
		MinQuality:   30,
		MinHet:       0.45,
		MaxHet:       0.55,
	}
}
