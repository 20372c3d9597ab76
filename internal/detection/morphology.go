package detection

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
)

// Mask values. Masks are *image.Gray with foreground at MaskOn.
const (
	MaskOff uint8 = 0
	MaskOn  uint8 = 255
)

// ThresholdBelow returns a mask that is on wherever gray is strictly below
// cutoff (the "dark object" convention) and off elsewhere. The mask has
// bounds (0,0)-(w,h). A cutoff of 0 selects nothing.
func ThresholdBelow(gray *image.Gray, cutoff uint8) *image.Gray {
	if cutoff == 0 {
		bounds := gray.Bounds()
		return image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	}
	// v < cutoff  <=>  255-v >= 256-cutoff
	return segment.Threshold(effect.Invert(gray), uint8(256-int(cutoff)))
}

// RemoveSmallObjects returns a copy of mask with every 4-connected foreground
// component of fewer than minArea pixels switched off.
func RemoveSmallObjects(mask *image.Gray, minArea int) *image.Gray {
	bounds := mask.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+w], mask.Pix[y*mask.Stride:y*mask.Stride+w])
	}
	if minArea <= 1 {
		return out
	}

	visited := make([]bool, w*h)
	var stack, members []int
	for start := 0; start < w*h; start++ {
		sx, sy := start%w, start/w
		if visited[start] || out.Pix[sy*out.Stride+sx] == MaskOff {
			continue
		}

		visited[start] = true
		stack = append(stack[:0], start)
		members = members[:0]
		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			members = append(members, idx)

			x, y := idx%w, idx/w
			neighbours := [4][2]int{{x - 1, y}, {x + 1, y}, {x, y - 1}, {x, y + 1}}
			for _, n := range neighbours {
				nx, ny := n[0], n[1]
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				ni := ny*w + nx
				if visited[ni] || out.Pix[ny*out.Stride+nx] == MaskOff {
					continue
				}
				visited[ni] = true
				stack = append(stack, ni)
			}
		}

		if len(members) < minArea {
			for _, idx := range members {
				out.Pix[(idx/w)*out.Stride+idx%w] = MaskOff
			}
		}
	}
	return out
}

// Dilate grows the foreground of mask. kernel is the structuring element
// size; its radius is kernel/2, and any kernel of 1 or more dilates by at
// least one pixel. The dilation is applied iterations times. A kernel or
// iteration count of 0 returns an unchanged copy.
func Dilate(mask *image.Gray, kernel, iterations int) *image.Gray {
	bounds := mask.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+w], mask.Pix[y*mask.Stride:y*mask.Stride+w])
	}
	if kernel <= 0 || iterations <= 0 {
		return out
	}

	radius := float64(kernel / 2)
	if radius < 1 {
		radius = 1
	}

	for i := 0; i < iterations; i++ {
		grown := effect.Dilate(out, radius)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				// Binary input: any lit neighbour lights the pixel.
				if grown.Pix[y*grown.Stride+x*4] != 0 {
					out.Pix[y*out.Stride+x] = MaskOn
				}
			}
		}
	}
	return out
}

// CountOn returns the number of foreground pixels in mask.
func CountOn(mask *image.Gray) int {
	bounds := mask.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	n := 0
	for y := 0; y < h; y++ {
		for _, v := range mask.Pix[y*mask.Stride : y*mask.Stride+w] {
			if v != MaskOff {
				n++
			}
		}
	}
	return n
}
