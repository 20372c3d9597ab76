package tray

import "fmt"

// InvalidSelectionError reports a selection rectangle that is degenerate or
// does not fit inside the image.
type InvalidSelectionError struct {
	Reason string
}

func (e *InvalidSelectionError) Error() string {
	return "invalid selection: " + e.Reason
}

// GridClusterError reports a selection that cannot be divided into the well
// grid.
type GridClusterError struct {
	Reason string
}

func (e *GridClusterError) Error() string {
	return "grid clustering: " + e.Reason
}

// ReferenceMismatchError reports a reference name list whose length differs
// from the number of wells.
type ReferenceMismatchError struct {
	Names int
	Wells int
}

func (e *ReferenceMismatchError) Error() string {
	return fmt.Sprintf("reference names: got %d, want one per well (%d)", e.Names, e.Wells)
}
