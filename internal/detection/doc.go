// Package detection finds connected regions in binary masks.
//
// A mask is an *image.Gray in which nonzero pixels are foreground. The
// package provides the mask clean-up steps used before region extraction
// (thresholding, small-object removal, dilation) and a connected-component
// labeller that also reports the containment hierarchy between regions.
//
// # Connectivity
//
// Foreground is 8-connected and background is 4-connected. With this pairing
// a diagonal chain of foreground pixels is one region, and a background pocket
// is a hole only if it is sealed along pixel edges.
//
// # Hierarchy
//
// Every region has at most one parent:
//   - a foreground region on the open background has no parent
//   - a hole's parent is the foreground region around it
//   - a foreground region inside a hole has that hole as parent
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - Bounding boxes use inclusive top-left and exclusive bottom-right
//
// # Determinism
//
// Regions are numbered in raster order of their first pixel, so the same
// mask always yields the same region list in the same order.
package detection
