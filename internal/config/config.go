// Package config holds the tunable parameters of the tray analysis pipeline.
//
// Every threshold and morphology setting the pipeline uses lives here rather
// than as a literal in the stage code. Values are loaded from a JSON file and
// validated; fields that are missing or out of range fall back to defaults.
package config

import (
	"encoding/json"
	"os"
)

// Well ordering conventions accepted in WellOrder.
const (
	OrderTopDown  = "top-down"
	OrderBottomUp = "bottom-up"
)

// ROI policies accepted in ROIPolicy.
const (
	ROIPartial   = "partial"
	ROIContained = "contained"
)

// Config holds runtime configuration for the plant mask, region filtering,
// well ordering and display fitting.
type Config struct {
	// Plant mask parameters
	WhiteBalancePatch int `json:"white_balance_patch"` // side of the reference square at the crop origin
	LabAThreshold     int `json:"lab_a_threshold"`     // a-channel cutoff (0-255); strictly below is plant
	MinObjectArea     int `json:"min_object_area"`     // smaller components are removed
	DilateKernel      int `json:"dilate_kernel"`       // kernel size; radius is kernel/2 (min 1)
	DilateIterations  int `json:"dilate_iterations"`

	// Region and grid parameters
	ROIPolicy string `json:"roi_policy"`
	WellOrder string `json:"well_order"`

	// Display fitting used when a caller supplies no scale factor
	ScreenWidth   int     `json:"screen_width"`
	ScreenHeight  int     `json:"screen_height"`
	ScreenReserve float64 `json:"screen_reserve"` // fraction of height kept for controls
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		WhiteBalancePatch: 50,
		LabAThreshold:     115,
		MinObjectArea:     80,
		DilateKernel:      2,
		DilateIterations:  1,
		ROIPolicy:         ROIPartial,
		WellOrder:         OrderTopDown,
		ScreenWidth:       1920,
		ScreenHeight:      1080,
		ScreenReserve:     0.15,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	d := DefaultConfig()
	if c.WhiteBalancePatch <= 0 {
		c.WhiteBalancePatch = d.WhiteBalancePatch
	}
	if c.LabAThreshold <= 0 || c.LabAThreshold > 255 {
		c.LabAThreshold = d.LabAThreshold
	}
	if c.MinObjectArea < 0 {
		c.MinObjectArea = d.MinObjectArea
	}
	if c.DilateKernel < 0 {
		c.DilateKernel = d.DilateKernel
	}
	if c.DilateIterations < 0 {
		c.DilateIterations = d.DilateIterations
	}
	if c.ROIPolicy != ROIPartial && c.ROIPolicy != ROIContained {
		c.ROIPolicy = d.ROIPolicy
	}
	if c.WellOrder != OrderTopDown && c.WellOrder != OrderBottomUp {
		c.WellOrder = d.WellOrder
	}
	if c.ScreenWidth <= 0 {
		c.ScreenWidth = d.ScreenWidth
	}
	if c.ScreenHeight <= 0 {
		c.ScreenHeight = d.ScreenHeight
	}
	if c.ScreenReserve < 0 || c.ScreenReserve >= 1 {
		c.ScreenReserve = d.ScreenReserve
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
