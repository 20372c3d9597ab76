package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
)

// WellGridOverlay draws a rows x cols grid of equal bands over img and labels
// each cell with its well index, for checking that a selection lines up with
// the physical wells of a tray.
//
// Parameters:
//   - img: The cropped tray region.
//   - rows, cols: Grid shape. Band edges are placed at k*height/rows and
//     k*width/cols, truncated to whole pixels.
//   - indexes: Well index for each cell in row-major order (len rows*cols).
//     A nil slice labels cells with their row-major position.
//   - lineColorHex: Line color as "#RRGGBB" or "#RRGGBBAA"; an unparsable
//     value falls back to opaque white.
func WellGridOverlay(img image.Image, rows, cols int, indexes []int, lineColorHex string) (*PreviewResult, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid grid %dx%d", rows, cols)
	}
	if indexes != nil && len(indexes) != rows*cols {
		return nil, fmt.Errorf("grid labels: got %d, want %d", len(indexes), rows*cols)
	}

	src := img.Bounds()
	width := src.Dx()
	height := src.Dy()

	lineColor, err := parseHexColor(lineColorHex)
	if err != nil {
		lineColor = color.RGBA{255, 255, 255, 255}
	}

	result := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(result, result.Bounds(), img, src.Min, draw.Src)

	// Vertical band edges
	for k := 1; k < cols; k++ {
		x := k * width / cols
		for y := 0; y < height; y++ {
			result.Set(x, y, lineColor)
		}
	}

	// Horizontal band edges
	for k := 1; k < rows; k++ {
		y := k * height / rows
		for x := 0; x < width; x++ {
			result.Set(x, y, lineColor)
		}
	}

	labelColor := color.RGBA{255, 255, 255, 255}
	bgColor := color.RGBA{0, 0, 0, 180}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			label := r*cols + c
			if indexes != nil {
				label = indexes[r*cols+c]
			}
			drawLabel(result, c*width/cols+2, r*height/rows+2, strconv.Itoa(label), labelColor, bgColor)
		}
	}

	return EncodePreview(result)
}

// parseHexColor parses a hex color string like "#FF0000" or "#FF000080"
func parseHexColor(hex string) (color.RGBA, error) {
	if len(hex) == 0 {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint8 = 0, 0, 0, 255

	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 16)
		g = uint8(val >> 8)
		b = uint8(val)
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 24)
		g = uint8(val >> 16)
		b = uint8(val >> 8)
		a = uint8(val)
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color length")
	}

	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}

// digitGlyphs is a 3x5 pixel font for well indexes.
var digitGlyphs = map[rune][]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
}

// drawLabel draws a digit label on a dark box at the given position,
// clipped to the image.
func drawLabel(img *image.RGBA, x, y int, text string, fg, bg color.RGBA) {
	bounds := img.Bounds()
	charWidth := 4
	labelWidth := len(text) * charWidth
	labelHeight := 7

	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < labelWidth; dx++ {
			px, py := x+dx, y+dy
			if image.Pt(px, py).In(bounds) {
				img.Set(px, py, bg)
			}
		}
	}

	cx := x
	for _, ch := range text {
		glyph, ok := digitGlyphs[ch]
		if !ok {
			cx += charWidth
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel == '1' {
					px, py := cx+col, y+row
					if image.Pt(px, py).In(bounds) {
						img.Set(px, py, fg)
					}
				}
			}
		}
		cx += charWidth
	}
}
