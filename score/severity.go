package score

// DefaultFatalityWeight weights one fatality as this many injuries when
// deriving a record's severity. A policy constant for ranking and heatmap
// intensity, not a physical measure.
const DefaultFatalityWeight = 5.0

// SeverityV1 computes the cached severity of a record from its casualty
// counts: injured + fatalityWeight * killed. Negative counts are a
// data-integrity defect upstream and clamp to zero so severity can never
// go negative.
func SeverityV1(fatalityWeight float64, injured, killed int) float64 {
	if injured < 0 {
		injured = 0
	}
	if killed < 0 {
		killed = 0
	}
	return float64(injured) + fatalityWeight*float64(killed)
}

func DefaultSeverity(injured, killed int) float64 {
	return SeverityV1(DefaultFatalityWeight, injured, killed)
}
