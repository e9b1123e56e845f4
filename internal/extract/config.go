package extract

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds every tuning knob of the extraction pipeline. All values are
// explicit parameters; there is no module-level state, so concurrent
// extractions with separate configs are independent.
type Config struct {
	// Canny edge detector thresholds. Gradient magnitudes above CannyHigh
	// are strong edges; between the two, kept only when connected to a
	// strong edge. CannyLow must be less than CannyHigh.
	CannyLow  float32 `json:"canny_low"`
	CannyHigh float32 `json:"canny_high"`

	// Hough line transform. Lower vote threshold and minimum length find
	// more true pipes at the cost of spurious short segments from noise.
	HoughVoteThreshold int `json:"hough_threshold"`
	HoughMinLineLength int `json:"hough_min_line_length"`
	HoughMaxLineGap    int `json:"hough_max_line_gap"`

	// Contours below this area in square pixels are treated as noise.
	ContourMinArea float64 `json:"contour_min_area"`

	// Maximum pixel distance between two segment endpoints for them to be
	// considered physically joined into one route.
	ConnectionThreshold float64 `json:"connection_threshold"`

	// Route-entity mapping distances.
	LabelProximityThreshold float64 `json:"label_proximity_threshold"`
	ComponentMatchThreshold float64 `json:"component_match_threshold"`

	// Scans whose longest side exceeds MaxDimension are downscaled before
	// extraction. Zero disables downscaling.
	MaxDimension int `json:"max_dimension,omitempty"`
}

// DefaultConfig returns parameters tuned for typical P&ID raster scans.
func DefaultConfig() Config {
	return Config{
		CannyLow:                50,
		CannyHigh:               150,
		HoughVoteThreshold:      80,
		HoughMinLineLength:      30,
		HoughMaxLineGap:         10,
		ContourMinArea:          100,
		ConnectionThreshold:     15,
		LabelProximityThreshold: 50,
		ComponentMatchThreshold: 100,
	}
}

// Validate checks every documented precondition. It runs before any
// detection work so a bad knob never produces partial output.
func (c Config) Validate() error {
	if c.CannyLow < 0 {
		return fmt.Errorf("%w: canny low threshold must be non-negative, got %v", ErrInvalidParameter, c.CannyLow)
	}
	if c.CannyLow >= c.CannyHigh {
		return fmt.Errorf("%w: canny low threshold %v must be below high threshold %v", ErrInvalidParameter, c.CannyLow, c.CannyHigh)
	}
	if c.HoughVoteThreshold <= 0 {
		return fmt.Errorf("%w: hough vote threshold must be positive, got %d", ErrInvalidParameter, c.HoughVoteThreshold)
	}
	if c.HoughMinLineLength <= 0 {
		return fmt.Errorf("%w: hough minimum line length must be positive, got %d", ErrInvalidParameter, c.HoughMinLineLength)
	}
	if c.HoughMaxLineGap < 0 {
		return fmt.Errorf("%w: hough maximum line gap must be non-negative, got %d", ErrInvalidParameter, c.HoughMaxLineGap)
	}
	if c.ContourMinArea < 0 {
		return fmt.Errorf("%w: contour minimum area must be non-negative, got %v", ErrInvalidParameter, c.ContourMinArea)
	}
	if c.ConnectionThreshold < 0 {
		return fmt.Errorf("%w: connection threshold must be non-negative, got %v", ErrInvalidParameter, c.ConnectionThreshold)
	}
	if c.LabelProximityThreshold < 0 {
		return fmt.Errorf("%w: label proximity threshold must be non-negative, got %v", ErrInvalidParameter, c.LabelProximityThreshold)
	}
	if c.ComponentMatchThreshold < 0 {
		return fmt.Errorf("%w: component match threshold must be non-negative, got %v", ErrInvalidParameter, c.ComponentMatchThreshold)
	}
	if c.MaxDimension < 0 {
		return fmt.Errorf("%w: max dimension must be non-negative, got %d", ErrInvalidParameter, c.MaxDimension)
	}
	return nil
}

// LoadConfig reads a JSON config file. Fields absent from the file keep
// their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
