package locus

// Map columns in a locus list to their positions
const (
	ColID int = iota
	ColContig
	ColStart
	ColEnd
	ColStrand // optional; "+" when absent
)

// ListRow is one entry of a locus list: the coordinates of a region whose
// sequence still has to be cut from a reference contig.
type ListRow struct {
	ID      string
	Contig  string
	Start   int // 1-based, inclusive
	End     int // 1-based, inclusive
	IsSense bool
}
