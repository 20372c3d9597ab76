package tray

import (
	"image"

	"github.com/ironsheep/tray-greenness-mcp/internal/config"
	"github.com/ironsheep/tray-greenness-mcp/internal/detection"
	"github.com/ironsheep/tray-greenness-mcp/internal/imaging"
)

// MaskParams controls the Plant Mask Builder.
type MaskParams struct {
	WhiteBalancePatch int   // side of the reference square at the region origin
	LabAThreshold     uint8 // a-channel values strictly below are plant
	MinObjectArea     int   // components with fewer pixels are removed
	DilateKernel      int
	DilateIterations  int
}

// MaskParamsFromConfig copies the plant mask settings out of cfg.
func MaskParamsFromConfig(cfg *config.Config) MaskParams {
	return MaskParams{
		WhiteBalancePatch: cfg.WhiteBalancePatch,
		LabAThreshold:     uint8(cfg.LabAThreshold),
		MinObjectArea:     cfg.MinObjectArea,
		DilateKernel:      cfg.DilateKernel,
		DilateIterations:  cfg.DilateIterations,
	}
}

// PlantMask is the output of BuildPlantMask. All images share the bounds
// (0,0)-(w,h) of the cropped region.
type PlantMask struct {
	// Balanced is the white-balanced region; wells are cut from it.
	Balanced *image.NRGBA

	// Reference is the per-channel level mapped to white.
	Reference imaging.RGBColor

	// Mask is the final plant mask (MaskOn where plant).
	Mask *image.Gray
}

// BuildPlantMask classifies the pixels of a cropped tray region as plant or
// background:
//
//  1. white balance against the top-left reference patch
//  2. CIE Lab a* channel
//  3. threshold: a* below LabAThreshold is plant
//  4. remove components smaller than MinObjectArea
//  5. dilate to rejoin leaf fragments
//
// An all-background or all-plant mask is a valid result.
func BuildPlantMask(region image.Image, p MaskParams) *PlantMask {
	balanced, ref := imaging.WhiteBalance(region, p.WhiteBalancePatch)
	a := imaging.LabAChannel(balanced)
	binary := detection.ThresholdBelow(a, p.LabAThreshold)
	cleaned := detection.RemoveSmallObjects(binary, p.MinObjectArea)
	mask := detection.Dilate(cleaned, p.DilateKernel, p.DilateIterations)

	return &PlantMask{
		Balanced:  balanced,
		Reference: ref,
		Mask:      mask,
	}
}
