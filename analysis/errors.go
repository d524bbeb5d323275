package analysis

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrReferenceMismatch = errors.New("REF does not match the locus sequence")
)

// ConfigError is a configuration problem found before any work starts.
type ConfigError struct {
	Field   string
	Problem string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidConfig, e.Field, e.Problem)
}

func (e ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// ItemError is the failure of one (locus, sample) work item. Position is 0
// when the failure is not tied to a record.
type ItemError struct {
	Locus    string
	Sample   string
	Position int
	Err      error
}

func (e ItemError) Error() string {
	if e.Position > 0 {
		return fmt.Sprintf("Locus: %s, Sample: %s, Position: %d, Message: %v", e.Locus, e.Sample, e.Position, e.Err)
	}
	return fmt.Sprintf("Locus: %s, Sample: %s, Message: %v", e.Locus, e.Sample, e.Err)
}

func (e ItemError) Unwrap() error {
	return e.Err
}
