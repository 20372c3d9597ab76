package tray

import (
	"fmt"
	"image"
	"math"
)

// Rect is a selection rectangle given by the two corners of a drag. Either
// drag direction is accepted; Normalize orders the corners.
type Rect struct {
	XStart float64 `json:"x_start"`
	YStart float64 `json:"y_start"`
	XEnd   float64 `json:"x_end"`
	YEnd   float64 `json:"y_end"`
}

// Normalize returns r with XStart <= XEnd and YStart <= YEnd.
func (r Rect) Normalize() Rect {
	if r.XStart > r.XEnd {
		r.XStart, r.XEnd = r.XEnd, r.XStart
	}
	if r.YStart > r.YEnd {
		r.YStart, r.YEnd = r.YEnd, r.YStart
	}
	return r
}

// Width returns the horizontal extent of r, which is negative for a
// right-to-left drag.
func (r Rect) Width() float64 { return r.XEnd - r.XStart }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.YEnd - r.YStart }

// Scale is the per-axis factor from display to native coordinates:
// native width / display width and native height / display height.
type Scale struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ScaleFor returns the Scale of a native image shown at displayW x displayH.
func ScaleFor(nativeW, nativeH, displayW, displayH int) (Scale, error) {
	if nativeW <= 0 || nativeH <= 0 || displayW <= 0 || displayH <= 0 {
		return Scale{}, fmt.Errorf("invalid dimensions: native %dx%d, display %dx%d", nativeW, nativeH, displayW, displayH)
	}
	return Scale{
		X: float64(nativeW) / float64(displayW),
		Y: float64(nativeH) / float64(displayH),
	}, nil
}

// Display describes how a native image is resized to fit a display area.
type Display struct {
	Width  int   `json:"display_width"`
	Height int   `json:"display_height"`
	Scale  Scale `json:"scale"`
}

// FitDisplay sizes a nativeW x nativeH image to fit an areaW x areaH display
// area with its aspect ratio preserved.
//
// When the area is relatively wider than the image the display height fills
// the area and the width follows; otherwise the width fills the area. The
// derived dimension is truncated to whole pixels (minimum 1).
func FitDisplay(nativeW, nativeH, areaW, areaH int) (Display, error) {
	if nativeW <= 0 || nativeH <= 0 {
		return Display{}, fmt.Errorf("invalid image dimensions %dx%d", nativeW, nativeH)
	}
	if areaW <= 0 || areaH <= 0 {
		return Display{}, fmt.Errorf("invalid display area %dx%d", areaW, areaH)
	}

	areaRatio := float64(areaW) / float64(areaH)
	imageRatio := float64(nativeW) / float64(nativeH)

	var w, h int
	if areaRatio > imageRatio {
		w = int(float64(nativeW) * (float64(areaH) / float64(nativeH)))
		h = areaH
	} else {
		w = areaW
		h = int(float64(nativeH) * (float64(areaW) / float64(nativeW)))
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	scale, err := ScaleFor(nativeW, nativeH, w, h)
	if err != nil {
		return Display{}, err
	}
	return Display{Width: w, Height: h, Scale: scale}, nil
}

// DisplayArea returns the part of a screen available for the image once a
// fraction reserve of its height is kept for controls.
func DisplayArea(screenW, screenH int, reserve float64) (int, int) {
	return screenW, screenH - int(math.Round(float64(screenH)*reserve))
}

// ToNative maps a display-space selection into native image coordinates,
// scaling each axis independently. The result is normalized and not rounded.
func ToNative(sel Rect, scale Scale) (Rect, error) {
	if !(scale.X > 0) || !(scale.Y > 0) || math.IsInf(scale.X, 0) || math.IsInf(scale.Y, 0) {
		return Rect{}, &InvalidSelectionError{Reason: fmt.Sprintf("scale factor (%g, %g) must be positive", scale.X, scale.Y)}
	}

	n := sel.Normalize()
	if !(n.Width() > 0) || !(n.Height() > 0) {
		return Rect{}, &InvalidSelectionError{Reason: fmt.Sprintf("selection (%g,%g)-(%g,%g) has no area", sel.XStart, sel.YStart, sel.XEnd, sel.YEnd)}
	}

	return Rect{
		XStart: n.XStart * scale.X,
		YStart: n.YStart * scale.Y,
		XEnd:   n.XEnd * scale.X,
		YEnd:   n.YEnd * scale.Y,
	}, nil
}

// PixelRect truncates a native selection to the pixel rectangle to crop from
// an image with the given bounds. The origin is truncated and so is the
// extent, so a selection never grows past what was dragged.
func PixelRect(native Rect, bounds image.Rectangle) (image.Rectangle, error) {
	n := native.Normalize()
	if n.XStart < 0 || n.YStart < 0 {
		return image.Rectangle{}, &InvalidSelectionError{Reason: fmt.Sprintf("selection starts outside the image at (%g,%g)", n.XStart, n.YStart)}
	}

	x0, y0 := int(n.XStart), int(n.YStart)
	w, h := int(n.Width()), int(n.Height())
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, &InvalidSelectionError{Reason: fmt.Sprintf("selection is %dx%d pixels", w, h)}
	}

	r := image.Rect(x0, y0, x0+w, y0+h).Add(bounds.Min)
	if !r.In(bounds) {
		return image.Rectangle{}, &InvalidSelectionError{Reason: fmt.Sprintf("selection (%d,%d)-(%d,%d) exceeds image %dx%d",
			x0, y0, x0+w, y0+h, bounds.Dx(), bounds.Dy())}
	}
	return r, nil
}
