package fan

import (
	"time"

	"github.com/matzehuels/cardfan/pkg/errors"
	"github.com/matzehuels/cardfan/pkg/fan/layout"
)

// Default configuration values.
const (
	DefaultItemWidth      = 120
	DefaultItemHeight     = 180
	DefaultSpacing        = 48
	DefaultMaxAngle       = 60
	DefaultLift           = 48
	DefaultDPI            = 96
	DefaultLinearSpeedIn  = 15 // inches per second
	DefaultFadeDuration   = time.Second / 3
	DefaultMaxDuration    = 2 * time.Second
	DefaultLongPressDelay = 500 * time.Millisecond
)

// AutoDragDistance selects a drag threshold derived from the display DPI.
const AutoDragDistance = -1

// Config holds the fan's recognized options.
type Config struct {
	ItemWidth  float64 `mapstructure:"item_width" toml:"item_width" json:"item_width"`
	ItemHeight float64 `mapstructure:"item_height" toml:"item_height" json:"item_height"`
	Spacing    float64 `mapstructure:"spacing" toml:"spacing" json:"spacing"`
	MinRadius  float64 `mapstructure:"min_radius" toml:"min_radius" json:"min_radius"` // <= 0 disables arc mode
	MaxAngle   float64 `mapstructure:"max_angle" toml:"max_angle" json:"max_angle"`    // degrees, 1 to 360
	Lift       float64 `mapstructure:"lift" toml:"lift" json:"lift"`
	TrueCenter bool    `mapstructure:"true_center" toml:"true_center" json:"true_center"`

	// LinearSpeed is in units per second.
	LinearSpeed    float64       `mapstructure:"linear_speed" toml:"linear_speed" json:"linear_speed"`
	FadeDuration   time.Duration `mapstructure:"fade_duration" toml:"fade_duration" json:"fade_duration"`
	MaxDuration    time.Duration `mapstructure:"max_duration" toml:"max_duration" json:"max_duration"`
	LongPressDelay time.Duration `mapstructure:"long_press_delay" toml:"long_press_delay" json:"long_press_delay"`

	// DragDistance is the Manhattan distance a contact travels before it is
	// classified as a drag. Zero disables dragging; AutoDragDistance derives
	// it from DPI.
	DragDistance float64 `mapstructure:"drag_distance" toml:"drag_distance" json:"drag_distance"`
	DPI          float64 `mapstructure:"dpi" toml:"dpi" json:"dpi"`

	Lifted []int `mapstructure:"lifted" toml:"lifted" json:"lifted"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		ItemWidth:      DefaultItemWidth,
		ItemHeight:     DefaultItemHeight,
		Spacing:        DefaultSpacing,
		MinRadius:      -1,
		MaxAngle:       DefaultMaxAngle,
		Lift:           DefaultLift,
		LinearSpeed:    DefaultLinearSpeedIn * DefaultDPI,
		FadeDuration:   DefaultFadeDuration,
		MaxDuration:    DefaultMaxDuration,
		LongPressDelay: DefaultLongPressDelay,
		DragDistance:   AutoDragDistance,
		DPI:            DefaultDPI,
	}
}

// Validate checks every option against its allowed range.
func (c Config) Validate() error {
	checks := []error{
		errors.ValidatePositive("item_width", c.ItemWidth),
		errors.ValidatePositive("item_height", c.ItemHeight),
		errors.ValidateNonNegative("spacing", c.Spacing),
		errors.ValidateRange("max_angle", c.MaxAngle, 1, 360),
		errors.ValidateNonNegative("lift", c.Lift),
		errors.ValidatePositive("linear_speed", c.LinearSpeed),
		errors.ValidateNonNegative("fade_duration", c.FadeDuration.Seconds()),
		errors.ValidateNonNegative("max_duration", c.MaxDuration.Seconds()),
		errors.ValidateNonNegative("long_press_delay", c.LongPressDelay.Seconds()),
		errors.ValidatePositive("dpi", c.DPI),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	if c.DragDistance < 0 && c.DragDistance != AutoDragDistance {
		return errors.New(errors.ErrCodeInvalidConfig, "drag_distance must be >= 0 or %d, got %g", AutoDragDistance, c.DragDistance)
	}
	for _, i := range c.Lifted {
		if i < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "lifted index must not be negative, got %d", i)
		}
	}
	return nil
}

// DragThreshold returns the effective drag distance.
func (c Config) DragThreshold() float64 {
	if c.DragDistance == AutoDragDistance {
		return DeviceDragDistance(c.DPI)
	}
	return c.DragDistance
}

// DeviceDragDistance is the drag threshold for a display of the given DPI:
// 20 pixels at 96 DPI, scaled linearly.
func DeviceDragDistance(dpi float64) float64 {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return 20 * dpi / DefaultDPI
}

// Layout returns the layout snapshot for a container of the given size.
func (c Config) Layout(width, height float64) layout.Config {
	return layout.Config{
		Width:      width,
		Height:     height,
		ItemWidth:  c.ItemWidth,
		ItemHeight: c.ItemHeight,
		Spacing:    c.Spacing,
		MinRadius:  c.MinRadius,
		MaxAngle:   c.MaxAngle,
		Lift:       c.Lift,
		TrueCenter: c.TrueCenter,
		Lifted:     append([]int(nil), c.Lifted...),
	}
}
