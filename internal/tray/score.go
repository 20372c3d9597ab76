package tray

import (
	"image"

	"gonum.org/v1/gonum/integrate"

	"github.com/ironsheep/tray-greenness-mcp/internal/imaging"
)

// greenLevels are the histogram bin positions 0..255.
var greenLevels = func() []float64 {
	x := make([]float64, 256)
	for i := range x {
		x[i] = float64(i)
	}
	return x
}()

// GreenHistogram counts the green channel levels of img over the pixels where
// mask is on. img and mask are aligned at their bounds' minimum points.
func GreenHistogram(img image.Image, mask *image.Gray) []float64 {
	hist := make([]float64, 256)
	ib, mb := img.Bounds(), mask.Bounds()
	w, h := minInt(ib.Dx(), mb.Dx()), minInt(ib.Dy(), mb.Dy())

	for y := 0; y < h; y++ {
		row := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		for x, m := range row {
			if m == 0 {
				continue
			}
			hist[imaging.GreenAt(img, ib.Min.X+x, ib.Min.Y+y)]++
		}
	}
	return hist
}

// Score returns the greenness of a well: the trapezoidal integral of the
// green-channel histogram of its plant pixels over the levels 0..255.
//
// The histogram holds raw pixel counts, so adding plant pixels never lowers
// the score. A mask with no plant pixels scores 0.
func Score(img image.Image, mask *image.Gray) float64 {
	hist := GreenHistogram(img, mask)

	total := 0.0
	for _, n := range hist {
		total += n
	}
	if total == 0 {
		return 0
	}
	return integrate.Trapezoidal(greenLevels, hist)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
