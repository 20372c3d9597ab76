package tray

// ResultRow pairs a well name with its greenness score.
type ResultRow struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Assemble pairs scores with names by position. Both must be in well index
// order. A length mismatch returns a *ReferenceMismatchError and no rows.
func Assemble(scores []float64, names []string) ([]ResultRow, error) {
	if len(names) != len(scores) {
		return nil, &ReferenceMismatchError{Names: len(names), Wells: len(scores)}
	}

	rows := make([]ResultRow, len(scores))
	for i, s := range scores {
		rows[i] = ResultRow{Name: names[i], Score: s}
	}
	return rows, nil
}
