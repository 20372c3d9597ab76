package detection

import (
	"image"
)

// Point2D is a sub-pixel position in image coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Component is a connected set of equally classified mask pixels.
//
// Foreground components are 8-connected. Hole components are 4-connected
// background pixels that are completely enclosed by foreground, so they never
// touch the image border.
type Component struct {
	// ID is the component's position in Labeling.Components.
	ID int `json:"id"`

	// Parent is the ID of the enclosing component, or -1 for a foreground
	// component that sits on the outer background.
	Parent int `json:"parent"`

	// Children lists the IDs of components whose Parent is this one, in
	// discovery order.
	Children []int `json:"children,omitempty"`

	// Hole is true for enclosed background components.
	Hole bool `json:"hole"`

	// Start is the first pixel of the component in raster order.
	Start image.Point `json:"start"`

	// Bounds is the pixel bounding box (Max exclusive).
	Bounds image.Rectangle `json:"bounds"`

	// Area is the pixel count.
	Area int `json:"area"`

	// Centroid is the mean pixel-center position.
	Centroid Point2D `json:"centroid"`
}

// Labeling is the result of Label: every mask pixel mapped to a component.
type Labeling struct {
	Width  int
	Height int

	// Components are ordered by the raster position of their first pixel.
	Components []Component

	// labels holds the component ID per pixel, or -1 for outer background.
	labels []int32
}

// At returns the component ID at (x, y), or -1 for outer background and
// positions outside the mask.
func (l *Labeling) At(x, y int) int {
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return -1
	}
	return int(l.labels[y*l.Width+x])
}

// Label finds the connected components of mask and their containment
// hierarchy. Nonzero mask pixels are foreground.
//
// # Algorithm
//
//  1. Raster scan. Each unlabeled pixel starts a flood fill over its class:
//     8-connected for foreground, 4-connected for background. Pairing the two
//     connectivities keeps every foreground outline closed.
//  2. Background components that reach the image border are outer
//     background and are not reported.
//  3. The parent of a component is the component just left of its first
//     pixel. For foreground that is the background it sits on (no parent when
//     it is the outer background); for a hole it is the foreground around it.
//
// Discovery order depends only on pixel positions, so identical masks always
// produce identical component lists.
func Label(mask *image.Gray) *Labeling {
	bounds := mask.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	fg := make([]bool, width*height)
	for y := 0; y < height; y++ {
		row := mask.Pix[y*mask.Stride : y*mask.Stride+width]
		for x, v := range row {
			fg[y*width+x] = v != 0
		}
	}

	raw := make([]int32, width*height)
	for i := range raw {
		raw[i] = -1
	}

	type rawComponent struct {
		comp  Component
		fg    bool
		outer bool
		sumX  int
		sumY  int
	}
	var found []rawComponent

	stack := make([]int, 0, 256)
	for start := 0; start < width*height; start++ {
		if raw[start] != -1 {
			continue
		}

		id := int32(len(found))
		isFG := fg[start]
		rc := rawComponent{fg: isFG}
		sx, sy := start%width, start/width
		rc.comp.Start = image.Pt(sx, sy)
		minX, minY, maxX, maxY := sx, sy, sx, sy

		raw[start] = id
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x, y := idx%width, idx/width

			rc.comp.Area++
			rc.sumX += x
			rc.sumY += y
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}

			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				rc.outer = true
			}

			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					// Background only grows through edge-sharing neighbours
					if !isFG && dx != 0 && dy != 0 {
						continue
					}
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= width || ny >= height {
						continue
					}
					n := ny*width + nx
					if raw[n] != -1 || fg[n] != isFG {
						continue
					}
					raw[n] = id
					stack = append(stack, n)
				}
			}
		}

		rc.comp.Bounds = image.Rect(minX, minY, maxX+1, maxY+1)
		found = append(found, rc)
	}

	// Renumber: drop outer background, keep discovery order.
	remap := make([]int32, len(found))
	comps := make([]Component, 0, len(found))
	for i := range found {
		rc := &found[i]
		if !rc.fg && rc.outer {
			remap[i] = -1
			continue
		}
		remap[i] = int32(len(comps))
		c := rc.comp
		c.ID = len(comps)
		c.Hole = !rc.fg
		c.Centroid = Point2D{
			X: float64(rc.sumX)/float64(c.Area) + 0.5,
			Y: float64(rc.sumY)/float64(c.Area) + 0.5,
		}
		comps = append(comps, c)
	}

	for i := range comps {
		c := &comps[i]
		c.Parent = -1
		if c.Start.X == 0 {
			continue
		}
		left := raw[c.Start.Y*width+c.Start.X-1]
		if p := remap[left]; p >= 0 {
			c.Parent = int(p)
			comps[p].Children = append(comps[p].Children, c.ID)
		}
	}

	labels := make([]int32, len(raw))
	for i, r := range raw {
		labels[i] = remap[r]
	}

	return &Labeling{
		Width:      width,
		Height:     height,
		Components: comps,
		labels:     labels,
	}
}

// Boundary returns the pixels of component id that are 4-adjacent to a pixel
// of another component, the outer background or the image border, in raster
// order. It returns nil for an unknown id.
func (l *Labeling) Boundary(id int) []image.Point {
	if id < 0 || id >= len(l.Components) {
		return nil
	}

	var pts []image.Point
	b := l.Components[id].Bounds
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if l.At(x, y) != id {
				continue
			}
			if l.At(x-1, y) != id || l.At(x+1, y) != id || l.At(x, y-1) != id || l.At(x, y+1) != id {
				pts = append(pts, image.Pt(x, y))
			}
		}
	}
	return pts
}
