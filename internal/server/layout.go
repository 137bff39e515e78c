package server

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/matzehuels/cardfan/pkg/errors"
	"github.com/matzehuels/cardfan/pkg/fan"
	"github.com/matzehuels/cardfan/pkg/fan/layout"
)

// MaxItems bounds the item count of one layout request.
const MaxItems = 1024

// LayoutRequest asks for the transforms of Count items in a Width×Height
// container. Config fields that are present override the server defaults.
type LayoutRequest struct {
	Count  int             `json:"count"`
	Width  float64         `json:"width"`
	Height float64         `json:"height"`
	Config json.RawMessage `json:"config,omitempty"`
}

// TransformView is the wire form of one layout.Transform.
type TransformView struct {
	Index   int     `json:"index"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Angle   float64 `json:"angle"`
	Degrees float64 `json:"degrees"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	BoundW  float64 `json:"bound_w"`
	BoundH  float64 `json:"bound_h"`
	Lifted  bool    `json:"lifted,omitempty"`
}

// LayoutResponse is the wire form of a layout.Result.
type LayoutResponse struct {
	Mode       string          `json:"mode"`
	Radius     float64         `json:"radius"`
	Spacing    float64         `json:"spacing"`
	HalfAngle  float64         `json:"half_angle_degrees"`
	Origin     layout.Point    `json:"origin"`
	Transforms []TransformView `json:"transforms"`
}

// NewLayoutResponse converts a result computed under cfg.
func NewLayoutResponse(res layout.Result, cfg layout.Config) LayoutResponse {
	mode := "arc"
	if res.Radius < 0 {
		mode = "linear"
	}
	out := LayoutResponse{
		Mode:       mode,
		Radius:     res.Radius,
		Spacing:    res.Spacing,
		HalfAngle:  res.HalfAngle * 180 / math.Pi,
		Origin:     res.Origin,
		Transforms: make([]TransformView, len(res.Transforms)),
	}
	for i, t := range res.Transforms {
		out.Transforms[i] = TransformView{
			Index:   i,
			X:       t.X,
			Y:       t.Y,
			Angle:   t.Angle,
			Degrees: t.Degrees(),
			Width:   t.Width,
			Height:  t.Height,
			BoundW:  t.BoundW,
			BoundH:  t.BoundH,
			Lifted:  cfg.IsLifted(i),
		}
	}
	return out
}

// resolve validates req against base and returns the layout input.
func (req LayoutRequest) resolve(base fan.Config) (layout.Config, error) {
	if err := errors.ValidateIndex(req.Count, MaxItems, true); err != nil {
		return layout.Config{}, errors.New(errors.ErrCodeOutOfRange, "count must be in [0,%d], got %d", MaxItems, req.Count)
	}
	if err := errors.ValidatePositive("width", req.Width); err != nil {
		return layout.Config{}, err
	}
	if err := errors.ValidatePositive("height", req.Height); err != nil {
		return layout.Config{}, err
	}

	cfg := base
	if len(req.Config) > 0 {
		dec := json.NewDecoder(bytes.NewReader(req.Config))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return layout.Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
		}
	}
	if err := cfg.Validate(); err != nil {
		return layout.Config{}, err
	}
	return cfg.Layout(req.Width, req.Height), nil
}

// Compute runs the layout for req with base as the default configuration.
func Compute(req LayoutRequest, base fan.Config) (LayoutResponse, error) {
	cfg, err := req.resolve(base)
	if err != nil {
		return LayoutResponse{}, err
	}
	return NewLayoutResponse(layout.Calculate(layout.Entries(req.Count), cfg), cfg), nil
}
