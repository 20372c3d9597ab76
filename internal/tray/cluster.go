package tray

import (
	"fmt"
	"image"

	"github.com/ironsheep/tray-greenness-mcp/internal/config"
	"github.com/ironsheep/tray-greenness-mcp/internal/detection"
	"github.com/ironsheep/tray-greenness-mcp/internal/imaging"
)

// Grid shape of a tray.
const (
	Rows  = 4
	Cols  = 6
	Wells = Rows * Cols
)

// Well is one cell of the tray grid with the plant regions assigned to it.
type Well struct {
	// Index is the well's output position, 0..Wells-1 (see WellIndex).
	Index int `json:"index"`
	Row   int `json:"row"` // 0 = top
	Col   int `json:"col"` // 0 = left

	// Band is the cell's equal-division rectangle in the selection.
	Band image.Rectangle `json:"band"`

	// Bounds is Band grown to cover the assigned regions.
	Bounds image.Rectangle `json:"bounds"`

	// Regions holds the IDs of the plant regions assigned to this well.
	Regions []int `json:"regions"`

	// Image and Mask are owned copies of Bounds with origin (0,0). Mask
	// covers only the pixels of the assigned regions.
	Image *image.NRGBA `json:"-"`
	Mask  *image.Gray  `json:"-"`
}

// WellIndex returns the output position of the well at (row, col), with rows
// counted from the top and columns from the left.
//
//   - config.OrderTopDown: row-major from the top-left, row*Cols + col
//   - config.OrderBottomUp: rows from the bottom, each left to right,
//     (Rows-1-row)*Cols + col
func WellIndex(row, col int, order string) int {
	if order == config.OrderBottomUp {
		return (Rows-1-row)*Cols + col
	}
	return row*Cols + col
}

// WellIndexes returns the well index of every grid cell in row-major order,
// as labels for a grid preview.
func WellIndexes(order string) []int {
	out := make([]int, Wells)
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			out[r*Cols+c] = WellIndex(r, c, order)
		}
	}
	return out
}

// bandEdge returns the pixel offset where band k of n starts along size.
func bandEdge(k, n, size int) int {
	return k * size / n
}

// bandOf returns the band of n containing position v. A position on an edge
// belongs to the lower band.
func bandOf(v float64, n, size int) int {
	k := 0
	for k < n-1 && v > float64(bandEdge(k+1, n, size)) {
		k++
	}
	return k
}

// Cluster partitions the plant regions of set into the Rows x Cols well grid
// of img and cuts out each well's sub-image and sub-mask.
//
// The selection is divided into equal bands. A region goes to the cell whose
// bands contain its centroid. Every cell yields a Well, including cells with
// no regions, and the result is sorted by Well.Index.
func Cluster(img *image.NRGBA, set *RegionSet, order string) ([]Well, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w < Cols || h < Rows {
		return nil, &GridClusterError{Reason: fmt.Sprintf("selection %dx%d is too small for a %dx%d grid", w, h, Cols, Rows)}
	}
	if set.Kept.Bounds().Dx() != w || set.Kept.Bounds().Dy() != h {
		return nil, &GridClusterError{Reason: fmt.Sprintf("mask %dx%d does not match image %dx%d",
			set.Kept.Bounds().Dx(), set.Kept.Bounds().Dy(), w, h)}
	}

	wells := make([]Well, Wells)
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			band := image.Rect(bandEdge(c, Cols, w), bandEdge(r, Rows, h), bandEdge(c+1, Cols, w), bandEdge(r+1, Rows, h))
			idx := WellIndex(r, c, order)
			wells[idx] = Well{Index: idx, Row: r, Col: c, Band: band, Bounds: band}
		}
	}

	for _, region := range set.Foreground() {
		r := bandOf(region.Centroid.Y, Rows, h)
		c := bandOf(region.Centroid.X, Cols, w)
		well := &wells[WellIndex(r, c, order)]
		well.Regions = append(well.Regions, region.ID)
		well.Bounds = well.Bounds.Union(region.Bounds)
	}

	frame := image.Rect(0, 0, w, h)
	for i := range wells {
		well := &wells[i]
		well.Bounds = well.Bounds.Intersect(frame)

		sub, err := imaging.CropCopy(img, well.Bounds.Add(bounds.Min))
		if err != nil {
			return nil, &GridClusterError{Reason: fmt.Sprintf("well %d: %v", well.Index, err)}
		}
		well.Image = sub
		well.Mask = wellMask(set, well.Bounds, well.Regions)
	}
	return wells, nil
}

// wellMask cuts rect out of the kept mask, keeping only pixels that belong to
// one of the given regions.
func wellMask(set *RegionSet, rect image.Rectangle, regions []int) *image.Gray {
	mask := image.NewGray(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	if len(regions) == 0 {
		return mask
	}

	assigned := make(map[int]bool, len(regions))
	for _, id := range regions {
		assigned[id] = true
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if assigned[set.LabelAt(x, y)] {
				mask.Pix[(y-rect.Min.Y)*mask.Stride+(x-rect.Min.X)] = detection.MaskOn
			}
		}
	}
	return mask
}
