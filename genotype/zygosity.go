package genotype

// Zygosity classifies a finalized Call.
type Zygosity int

const (
	NoCall Zygosity = iota
	Reference
	Homozygous
	Heterozygous
)

func (z Zygosity) String() string {
	switch z {
	case Reference:
		return "REFERENCE"
	case Homozygous:
		return "HOMOZYGOUS"
	case Heterozygous:
		return "HETEROZYGOUS"
	default:
		return "NOCALL"
	}
}

// IsVariant is true for calls that make a position variable.
func (z Zygosity) IsVariant() bool {
	return z == Homozygous || z == Heterozygous
}
