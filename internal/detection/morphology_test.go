package detection

import (
	"fmt"
	"image"
	"testing"
)

func TestThresholdBelow(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 4, 1))
	gray.Pix = []uint8{0, 114, 115, 255}

	mask := ThresholdBelow(gray, 115)

	want := []uint8{MaskOn, MaskOn, MaskOff, MaskOff}
	for x, w := range want {
		if got := mask.Pix[x]; got != w {
			t.Errorf("pixel %d (value %d): got %d, want %d", x, gray.Pix[x], got, w)
		}
	}
}

func TestThresholdBelow_SubImage(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range gray.Pix {
		gray.Pix[i] = 200
	}
	gray.Pix[2*gray.Stride+2] = 10

	sub := gray.SubImage(image.Rect(1, 1, 3, 3)).(*image.Gray)
	mask := ThresholdBelow(sub, 115)

	if mask.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Fatalf("Bounds: got %v, want (0,0)-(2,2)", mask.Bounds())
	}
	if CountOn(mask) != 1 || mask.Pix[1*mask.Stride+1] != MaskOn {
		t.Errorf("expected only (1,1) on, got %v", mask.Pix)
	}
}

func TestThresholdBelow_AllLevels(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 256, 1))
	for v := range gray.Pix {
		gray.Pix[v] = uint8(v)
	}

	for _, cutoff := range []int{0, 1, 2, 115, 128, 200, 254, 255} {
		t.Run(fmt.Sprintf("cutoff %d", cutoff), func(t *testing.T) {
			mask := ThresholdBelow(gray, uint8(cutoff))
			if mask.Bounds() != gray.Bounds() {
				t.Fatalf("Bounds: got %v, want %v", mask.Bounds(), gray.Bounds())
			}
			for v := 0; v < 256; v++ {
				want := MaskOff
				if v < cutoff {
					want = MaskOn
				}
				if got := mask.Pix[v]; got != want {
					t.Errorf("value %d: got %d, want %d", v, got, want)
				}
			}
			if CountOn(mask) != cutoff {
				t.Errorf("CountOn: got %d, want %d", CountOn(mask), cutoff)
			}
		})
	}
}

func TestRemoveSmallObjects(t *testing.T) {
	mask := image.NewGray(image.Rect(0, 0, 40, 40))
	fillRect(mask, image.Rect(2, 2, 12, 12))   // 100 pixels
	fillRect(mask, image.Rect(20, 20, 28, 29)) // 72 pixels
	fillRect(mask, image.Rect(30, 2, 38, 12))  // 80 pixels

	out := RemoveSmallObjects(mask, 80)

	tests := []struct {
		name string
		x, y int
		want uint8
	}{
		{"large square kept", 5, 5, MaskOn},
		{"small block removed", 22, 22, MaskOff},
		{"exactly min area kept", 33, 5, MaskOn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := out.Pix[tt.y*out.Stride+tt.x]; got != tt.want {
				t.Errorf("pixel (%d,%d): got %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}

	if CountOn(out) != 180 {
		t.Errorf("CountOn: got %d, want 180", CountOn(out))
	}
	if CountOn(mask) != 252 {
		t.Error("RemoveSmallObjects modified its input")
	}
}

func TestRemoveSmallObjects_DiagonalTouchSeparates(t *testing.T) {
	// Two 3x3 blocks meeting only at a corner are separate 4-connected
	// objects of 9 pixels each.
	mask := image.NewGray(image.Rect(0, 0, 8, 8))
	fillRect(mask, image.Rect(0, 0, 3, 3))
	fillRect(mask, image.Rect(3, 3, 6, 6))

	if got := CountOn(RemoveSmallObjects(mask, 10)); got != 0 {
		t.Errorf("minArea 10: got %d pixels on, want 0", got)
	}
	if got := CountOn(RemoveSmallObjects(mask, 9)); got != 18 {
		t.Errorf("minArea 9: got %d pixels on, want 18", got)
	}
}

func TestRemoveSmallObjects_DisabledKeepsAll(t *testing.T) {
	mask := maskFromRows(
		"#...",
		"..#.",
		"....",
	)
	if got := CountOn(RemoveSmallObjects(mask, 0)); got != 2 {
		t.Errorf("minArea 0: got %d pixels on, want 2", got)
	}
}

func TestDilate_BridgesGap(t *testing.T) {
	mask := maskFromRows(
		".......",
		".##.##.",
		".......",
	)
	out := Dilate(mask, 2, 1)

	if out.Pix[1*out.Stride+3] != MaskOn {
		t.Error("one-pixel gap should be filled")
	}
	if out.Pix[1*out.Stride+0] != MaskOn || out.Pix[1*out.Stride+6] != MaskOn {
		t.Error("row ends should grow by one pixel")
	}

	lab := Label(out)
	if len(lab.Components) != 1 {
		t.Errorf("after dilation: got %d components, want 1", len(lab.Components))
	}
}

func TestDilate_Superset(t *testing.T) {
	mask := maskFromRows(
		"..........",
		"..#.......",
		"......##..",
		"......##..",
		"..........",
	)
	out := Dilate(mask, 3, 2)

	for y := 0; y < mask.Bounds().Dy(); y++ {
		for x := 0; x < mask.Bounds().Dx(); x++ {
			if mask.Pix[y*mask.Stride+x] == MaskOn && out.Pix[y*out.Stride+x] != MaskOn {
				t.Errorf("pixel (%d,%d) lost by dilation", x, y)
			}
		}
	}
	if CountOn(out) <= CountOn(mask) {
		t.Errorf("dilation should grow the mask: %d -> %d", CountOn(mask), CountOn(out))
	}
}

func TestDilate_ZeroKernel(t *testing.T) {
	mask := maskFromRows(
		"....",
		".#..",
		"....",
	)
	tests := []struct {
		name       string
		kernel     int
		iterations int
	}{
		{"zero kernel", 0, 1},
		{"zero iterations", 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Dilate(mask, tt.kernel, tt.iterations)
			if CountOn(out) != 1 {
				t.Errorf("got %d pixels on, want 1", CountOn(out))
			}
		})
	}
}

func TestCountOn(t *testing.T) {
	mask := maskFromRows(
		"#.#",
		"###",
	)
	if got := CountOn(mask); got != 5 {
		t.Errorf("CountOn: got %d, want 5", got)
	}
}

func TestDilate_KernelSizes(t *testing.T) {
	tests := []struct {
		kernel int
		want   image.Rectangle
	}{
		{1, image.Rect(9, 9, 21, 21)},
		{2, image.Rect(9, 9, 21, 21)},
		{4, image.Rect(8, 8, 22, 22)},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("kernel %d", tt.kernel), func(t *testing.T) {
			mask := image.NewGray(image.Rect(0, 0, 30, 30))
			fillRect(mask, image.Rect(10, 10, 20, 20))

			out := Dilate(mask, tt.kernel, 1)

			// The square's edges grow by the radius on every side
			lab := Label(out)
			if len(lab.Components) != 1 {
				t.Fatalf("got %d components, want 1", len(lab.Components))
			}
			if got := lab.Components[0].Bounds; got != tt.want {
				t.Errorf("Bounds: got %v, want %v", got, tt.want)
			}
		})
	}
}
