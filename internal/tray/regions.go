package tray

import (
	"fmt"
	"image"

	"github.com/ironsheep/tray-greenness-mcp/internal/config"
	"github.com/ironsheep/tray-greenness-mcp/internal/detection"
)

// Region is a connected plant component or a hole inside one. IDs and
// Parent/Children links refer to Region.ID values, which stay those of the
// underlying labelling even when some regions are filtered out.
type Region = detection.Component

// RegionSet is the output of ExtractRegions.
type RegionSet struct {
	// Regions holds the kept regions in raster discovery order.
	Regions []Region

	// Kept is the plant mask reduced to the foreground pixels of kept regions.
	Kept *image.Gray

	labels *detection.Labeling
	kept   map[int]bool
}

// Foreground returns the kept regions that are plant rather than holes.
func (s *RegionSet) Foreground() []Region {
	var out []Region
	for _, r := range s.Regions {
		if !r.Hole {
			out = append(out, r)
		}
	}
	return out
}

// LabelAt returns the ID of the kept region at (x, y), or -1.
func (s *RegionSet) LabelAt(x, y int) int {
	id := s.labels.At(x, y)
	if id < 0 || !s.kept[id] {
		return -1
	}
	return id
}

// ExtractRegions labels the connected regions of mask and keeps those that
// meet roi under policy:
//
//   - config.ROIPartial: the region's bounding box overlaps roi
//   - config.ROIContained: the region's bounding box lies inside roi
//
// Holes are kept when their enclosing region is kept. roi is in mask-local
// coordinates; the Region Extractor of a cropped selection passes the full
// mask bounds.
func ExtractRegions(mask *image.Gray, roi image.Rectangle, policy string) (*RegionSet, error) {
	var inROI func(image.Rectangle) bool
	switch policy {
	case config.ROIPartial, "":
		inROI = func(b image.Rectangle) bool { return b.Overlaps(roi) }
	case config.ROIContained:
		inROI = func(b image.Rectangle) bool { return b.In(roi) }
	default:
		return nil, fmt.Errorf("unknown roi policy %q", policy)
	}

	labels := detection.Label(mask)

	kept := make(map[int]bool)
	var regions []Region
	for _, c := range labels.Components {
		// Parents precede their children in raster order
		keep := inROI(c.Bounds)
		if c.Hole {
			keep = kept[c.Parent]
		}
		if !keep {
			continue
		}
		kept[c.ID] = true
		regions = append(regions, c)
	}

	// Drop links to filtered regions
	for i := range regions {
		r := &regions[i]
		if r.Parent >= 0 && !kept[r.Parent] {
			r.Parent = -1
		}
		var children []int
		for _, ch := range r.Children {
			if kept[ch] {
				children = append(children, ch)
			}
		}
		r.Children = children
	}

	w, h := labels.Width, labels.Height
	keptMask := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			id := labels.At(x, y)
			if id >= 0 && kept[id] && !labels.Components[id].Hole {
				keptMask.Pix[y*keptMask.Stride+x] = detection.MaskOn
			}
		}
	}

	return &RegionSet{
		Regions: regions,
		Kept:    keptMask,
		labels:  labels,
		kept:    kept,
	}, nil
}
