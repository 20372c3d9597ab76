package imaging

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/histogram"
	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// WhiteBalance normalizes the colors of img against a square reference patch
// of side patch anchored at img's top-left corner.
//
// Parameters:
//   - img: The cropped tray region.
//   - patch: Side of the reference square in pixels. It is clipped to the image
//     size, so a patch larger than the image uses the whole image.
//
// Returns the balanced image (bounds starting at (0,0)) and the per-channel
// reference values that were mapped to 255.
//
// # Correction
//
// For each channel the reference value is the brightest level present in the
// patch. Channel values are scaled by 255/reference and saturate at 255, so the
// patch's brightest level becomes full intensity. A channel whose reference is
// 0 (a black patch) is left unchanged.
func WhiteBalance(img image.Image, patch int) (*image.NRGBA, RGBColor) {
	ref := ReferenceWhite(img, patch)

	lut := [3][256]uint8{
		channelLUT(ref.R),
		channelLUT(ref.G),
		channelLUT(ref.B),
	}

	balanced := imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: lut[0][c.R],
			G: lut[1][c.G],
			B: lut[2][c.B],
			A: c.A,
		}
	})
	return balanced, ref
}

// ReferenceWhite returns the brightest level of each channel inside the
// top-left patch x patch square of img.
func ReferenceWhite(img image.Image, patch int) RGBColor {
	bounds := img.Bounds()
	w := minInt(patch, bounds.Dx())
	h := minInt(patch, bounds.Dy())
	if w <= 0 || h <= 0 {
		return RGBColor{}
	}

	region := imaging.Crop(img, image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Min.X+w, bounds.Min.Y+h))
	hist := histogram.NewRGBAHistogram(region)

	return RGBColor{
		R: highestBin(hist.R.Bins),
		G: highestBin(hist.G.Bins),
		B: highestBin(hist.B.Bins),
	}
}

// channelLUT builds the 8-bit correction table for a channel whose reference
// level is ref.
func channelLUT(ref uint8) [256]uint8 {
	var lut [256]uint8
	for v := 0; v < 256; v++ {
		switch {
		case ref == 0:
			lut[v] = uint8(v)
		case v > int(ref):
			lut[v] = 255
		default:
			lut[v] = uint8(math.Round(float64(v) * 255 / float64(ref)))
		}
	}
	return lut
}

// highestBin returns the index of the last non-empty histogram bin.
func highestBin(bins []int) uint8 {
	for i := len(bins) - 1; i >= 0; i-- {
		if bins[i] > 0 {
			if i > 255 {
				return 255
			}
			return uint8(i)
		}
	}
	return 0
}

// LabAChannel converts img to CIE L*a*b* (D65) and returns the a* channel as
// an 8-bit grayscale image aligned with img (bounds starting at (0,0)).
//
// a* runs from green (negative) to red/magenta (positive). It is encoded as
// a*+128 and clamped to 0-255, so neutral pixels sit near 128 and foliage falls
// well below it.
func LabAChannel(img image.Image) *image.Gray {
	src := imaging.Clone(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))

	// Tray photos have few distinct colors relative to pixel count.
	memo := make(map[[3]uint8]uint8)

	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		for x := 0; x < w; x++ {
			key := [3]uint8{row[x*4], row[x*4+1], row[x*4+2]}
			v, ok := memo[key]
			if !ok {
				v = LabA8(key[0], key[1], key[2])
				memo[key] = v
			}
			dst.Pix[y*dst.Stride+x] = v
		}
	}
	return dst
}

// LabA8 returns the 8-bit encoded a* value of an sRGB color.
func LabA8(r, g, b uint8) uint8 {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	// go-colorful reports L*a*b* scaled by 1/100.
	_, a, _ := c.Lab()
	v := math.Round(a*100 + 128)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// GreenAt returns the 8-bit green component of img at (x, y).
func GreenAt(img image.Image, x, y int) uint8 {
	if n, ok := img.(*image.NRGBA); ok {
		return n.Pix[n.PixOffset(x, y)+1]
	}
	_, g, _, _ := img.At(x, y).RGBA()
	return uint8(g >> 8)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
