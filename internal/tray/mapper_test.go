package tray

import (
	"errors"
	"image"
	"math"
	"testing"
)

func TestToNative_Scenario(t *testing.T) {
	// 1200x1800 photo shown at 800x1200
	scale, err := ScaleFor(1200, 1800, 800, 1200)
	if err != nil {
		t.Fatalf("ScaleFor failed: %v", err)
	}
	if scale.X != 1.5 || scale.Y != 1.5 {
		t.Fatalf("scale: got %+v, want 1.5,1.5", scale)
	}

	native, err := ToNative(Rect{XStart: 100, YStart: 100, XEnd: 500, YEnd: 700}, scale)
	if err != nil {
		t.Fatalf("ToNative failed: %v", err)
	}
	want := Rect{XStart: 150, YStart: 150, XEnd: 750, YEnd: 1050}
	if native != want {
		t.Errorf("ToNative: got %+v, want %+v", native, want)
	}
}

func TestToNative_Linear(t *testing.T) {
	sel := Rect{XStart: 13, YStart: 7, XEnd: 211, YEnd: 95}

	tests := []struct {
		name  string
		scale Scale
	}{
		{"identity", Scale{1, 1}},
		{"uniform", Scale{2.5, 2.5}},
		{"anisotropic", Scale{1.337, 3.01}},
		{"upscale", Scale{0.25, 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			native, err := ToNative(sel, tt.scale)
			if err != nil {
				t.Fatalf("ToNative failed: %v", err)
			}
			if math.Abs(native.Width()-sel.Width()*tt.scale.X) > 1e-9 {
				t.Errorf("width: got %g, want %g", native.Width(), sel.Width()*tt.scale.X)
			}
			if math.Abs(native.Height()-sel.Height()*tt.scale.Y) > 1e-9 {
				t.Errorf("height: got %g, want %g", native.Height(), sel.Height()*tt.scale.Y)
			}
		})
	}

	same, _ := ToNative(sel, Scale{1, 1})
	if same != sel {
		t.Errorf("identity scale changed the selection: %+v", same)
	}
}

func TestToNative_NormalizesDragDirection(t *testing.T) {
	native, err := ToNative(Rect{XStart: 500, YStart: 700, XEnd: 100, YEnd: 100}, Scale{2, 2})
	if err != nil {
		t.Fatalf("ToNative failed: %v", err)
	}
	want := Rect{XStart: 200, YStart: 200, XEnd: 1000, YEnd: 1400}
	if native != want {
		t.Errorf("ToNative: got %+v, want %+v", native, want)
	}
}

func TestToNative_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		sel   Rect
		scale Scale
	}{
		{"zero width", Rect{10, 10, 10, 50}, Scale{1, 1}},
		{"zero height", Rect{10, 20, 50, 20}, Scale{1, 1}},
		{"zero scale", Rect{0, 0, 10, 10}, Scale{0, 1}},
		{"negative scale", Rect{0, 0, 10, 10}, Scale{1, -2}},
		{"NaN scale", Rect{0, 0, 10, 10}, Scale{math.NaN(), 1}},
		{"infinite scale", Rect{0, 0, 10, 10}, Scale{math.Inf(1), 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToNative(tt.sel, tt.scale)
			var selErr *InvalidSelectionError
			if !errors.As(err, &selErr) {
				t.Errorf("got %v, want *InvalidSelectionError", err)
			}
		})
	}
}

func TestPixelRect(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 80)

	tests := []struct {
		name    string
		native  Rect
		want    image.Rectangle
		wantErr bool
	}{
		{"whole numbers", Rect{10, 20, 30, 40}, image.Rect(10, 20, 30, 40), false},
		{"truncates origin and extent", Rect{10.7, 20.2, 30.9, 40.1}, image.Rect(10, 20, 30, 39), false},
		{"full image", Rect{0, 0, 100, 80}, bounds, false},
		{"reversed", Rect{30, 40, 10, 20}, image.Rect(10, 20, 30, 40), false},
		{"past right edge", Rect{50, 0, 101, 10}, image.Rectangle{}, true},
		{"past bottom edge", Rect{0, 50, 10, 81}, image.Rectangle{}, true},
		{"negative origin", Rect{-1, 0, 10, 10}, image.Rectangle{}, true},
		{"sub-pixel extent", Rect{5, 5, 5.5, 20}, image.Rectangle{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PixelRect(tt.native, bounds)
			if tt.wantErr {
				var selErr *InvalidSelectionError
				if !errors.As(err, &selErr) {
					t.Errorf("got %v, want *InvalidSelectionError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("PixelRect failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("PixelRect: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPixelRect_OffsetBounds(t *testing.T) {
	got, err := PixelRect(Rect{0, 0, 10, 10}, image.Rect(5, 5, 50, 50))
	if err != nil {
		t.Fatalf("PixelRect failed: %v", err)
	}
	if got != image.Rect(5, 5, 15, 15) {
		t.Errorf("PixelRect: got %v, want (5,5)-(15,15)", got)
	}
}

func TestFitDisplay(t *testing.T) {
	tests := []struct {
		name       string
		nw, nh     int
		aw, ah     int
		wantW      int
		wantH      int
		wantScaleX float64
		wantScaleY float64
	}{
		{"width constrained", 2000, 1000, 1000, 1000, 1000, 500, 2, 2},
		{"height constrained", 1000, 2000, 1000, 1000, 500, 1000, 2, 2},
		{"upscale", 100, 50, 400, 400, 400, 200, 0.25, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := FitDisplay(tt.nw, tt.nh, tt.aw, tt.ah)
			if err != nil {
				t.Fatalf("FitDisplay failed: %v", err)
			}
			if d.Width != tt.wantW || d.Height != tt.wantH {
				t.Errorf("display: got %dx%d, want %dx%d", d.Width, d.Height, tt.wantW, tt.wantH)
			}
			if d.Scale.X != tt.wantScaleX || d.Scale.Y != tt.wantScaleY {
				t.Errorf("scale: got %+v, want %g,%g", d.Scale, tt.wantScaleX, tt.wantScaleY)
			}
			if d.Width > tt.aw || d.Height > tt.ah {
				t.Errorf("display %dx%d overflows area %dx%d", d.Width, d.Height, tt.aw, tt.ah)
			}
		})
	}
}

func TestFitDisplay_Invalid(t *testing.T) {
	if _, err := FitDisplay(0, 100, 100, 100); err == nil {
		t.Error("FitDisplay should fail for a zero-width image")
	}
	if _, err := FitDisplay(100, 100, 100, 0); err == nil {
		t.Error("FitDisplay should fail for a zero-height area")
	}
}

func TestDisplayArea(t *testing.T) {
	w, h := DisplayArea(1920, 1080, 0.15)
	if w != 1920 || h != 918 {
		t.Errorf("DisplayArea: got %dx%d, want 1920x918", w, h)
	}
}

func TestScaleFor_Invalid(t *testing.T) {
	if _, err := ScaleFor(100, 100, 0, 100); err == nil {
		t.Error("ScaleFor should fail for a zero display width")
	}
}
