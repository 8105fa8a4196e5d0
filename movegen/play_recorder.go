package movegen

// PlacementRecorderFunc receives each legal placement as it is generated.
type PlacementRecorderFunc func(*Generator, Candidate)

// TopPlacementRecorder keeps only the best placement. Ties keep the one
// generated first.
func TopPlacementRecorder(gen *Generator, c Candidate) {
	if c.Score > gen.best.Score {
		gen.best = c
	}
}

// AllPlacementsRecorder keeps every placement and also tracks the best.
func AllPlacementsRecorder(gen *Generator, c Candidate) {
	gen.placements = append(gen.placements, c)
	TopPlacementRecorder(gen, c)
}
