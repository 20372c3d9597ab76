// Package tray scores the greenness of each well of a 4x6 plant tray from a
// single photograph.
//
// The pipeline runs strictly forward, one stage per file:
//
//	mapper.go    display selection -> native pixel rectangle
//	mask.go      cropped region -> white-balanced image + plant mask
//	regions.go   plant mask -> connected regions inside the selection
//	cluster.go   regions -> 24 wells, each with its own sub-image and sub-mask
//	score.go     well -> greenness score
//	assemble.go  scores + reference names -> result table
//
// Analyze runs all of them. Run stops before naming and returns every
// intermediate product, for previews.
//
// # Well Order
//
// Rows are numbered from the top and columns from the left. The output index
// of a well depends on the configured order (see WellIndex); the reference
// name file must list names in that same order.
//
// # Determinism
//
// Each run owns copies of all the pixels it touches and holds no state
// between runs. Identical inputs always give identical tables.
package tray
