package tray

import (
	"image"

	"github.com/ironsheep/tray-greenness-mcp/internal/config"
	"github.com/ironsheep/tray-greenness-mcp/internal/detection"
	"github.com/ironsheep/tray-greenness-mcp/internal/imaging"
)

// Options configures one analysis run.
type Options struct {
	Mask      MaskParams
	ROIPolicy string
	WellOrder string

	// Logf receives per-stage debug lines. Nil discards them.
	Logf func(format string, args ...interface{})
}

// OptionsFromConfig builds Options from cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Mask:      MaskParamsFromConfig(cfg),
		ROIPolicy: cfg.ROIPolicy,
		WellOrder: cfg.WellOrder,
	}
}

func (o Options) logf(format string, args ...interface{}) {
	if o.Logf != nil {
		o.Logf(format, args...)
	}
}

// Analysis holds the products of every pipeline stage for one selection.
type Analysis struct {
	Selection Rect            // normalized, native coordinates
	Crop      image.Rectangle // pixel rectangle cut from the image
	Plant     *PlantMask
	Regions   *RegionSet

	// Wells and Scores are in well index order.
	Wells  []Well
	Scores []float64
}

// Run executes the pipeline from the Coordinate Mapper through the Well
// Scorer for a display-space selection on img.
func Run(img image.Image, sel Rect, scale Scale, opts Options) (*Analysis, error) {
	if err := imaging.CheckImage(img); err != nil {
		return nil, err
	}

	native, err := ToNative(sel, scale)
	if err != nil {
		return nil, err
	}
	crop, err := PixelRect(native, img.Bounds())
	if err != nil {
		return nil, err
	}
	opts.logf("selection (%g,%g)-(%g,%g) -> crop %v", sel.XStart, sel.YStart, sel.XEnd, sel.YEnd, crop)

	region, err := imaging.CropCopy(img, crop)
	if err != nil {
		return nil, &InvalidSelectionError{Reason: err.Error()}
	}

	plant := BuildPlantMask(region, opts.Mask)
	opts.logf("plant mask: reference white %+v, %d of %d pixels on",
		plant.Reference, detection.CountOn(plant.Mask), crop.Dx()*crop.Dy())

	set, err := ExtractRegions(plant.Mask, plant.Mask.Bounds(), opts.ROIPolicy)
	if err != nil {
		return nil, err
	}
	opts.logf("regions: %d kept (%d plant)", len(set.Regions), len(set.Foreground()))

	wells, err := Cluster(plant.Balanced, set, opts.WellOrder)
	if err != nil {
		return nil, err
	}

	scores := make([]float64, len(wells))
	for i, well := range wells {
		scores[i] = Score(well.Image, well.Mask)
		opts.logf("well %d (row %d, col %d): %d regions, score %.1f", well.Index, well.Row, well.Col, len(well.Regions), scores[i])
	}

	return &Analysis{
		Selection: native,
		Crop:      crop,
		Plant:     plant,
		Regions:   set,
		Wells:     wells,
		Scores:    scores,
	}, nil
}

// Analyze scores every well of the tray selected on img and names the wells
// from names, which must list one name per well in well index order.
//
// sel is in display coordinates and scale converts it to native ones. Errors
// are *InvalidSelectionError, *GridClusterError, *ReferenceMismatchError or
// an *imaging.DecodeError for an empty image. No partial table is returned.
func Analyze(img image.Image, sel Rect, scale Scale, names []string, opts Options) ([]ResultRow, error) {
	if len(names) != Wells {
		return nil, &ReferenceMismatchError{Names: len(names), Wells: Wells}
	}

	a, err := Run(img, sel, scale, opts)
	if err != nil {
		return nil, err
	}
	return Assemble(a.Scores, names)
}
