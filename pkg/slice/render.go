package slice

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/philipparndt/meshslice/pkg/geometry"
)

// RenderParams is the contract of the slice render effect
type RenderParams struct {
	// Plane is (nx, ny, nz, d) with d = dot(normal, origin)
	Plane          [4]float64
	Threshold      float64
	ColorThreshold float64
	SliceColor     colorful.Color
	Enabled        bool
}

// RenderSink consumes slice render parameters
type RenderSink interface {
	SetSliceParams(params RenderParams)
}

// NewRenderParams builds the parameters for a plane
func NewRenderParams(plane geometry.Plane, cfg RenderConfig) (RenderParams, error) {
	color, err := cfg.Color()
	if err != nil {
		return RenderParams{}, err
	}
	return RenderParams{
		Plane:          plane.Equation(),
		Threshold:      cfg.Threshold,
		ColorThreshold: cfg.ColorThreshold,
		SliceColor:     color,
		Enabled:        cfg.Enabled,
	}, nil
}

// SliceController pushes the plane and effect settings to a sink every frame
type SliceController struct {
	config RenderConfig
	color  colorful.Color
}

// NewSliceController validates cfg and creates a controller
func NewSliceController(cfg RenderConfig) (*SliceController, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	color, _ := cfg.Color()
	return &SliceController{config: cfg, color: color}, nil
}

// Update sends the current parameters to the sink
// Nothing is sent without a plane. A disabled controller still sends its
// parameters with Enabled false so the sink can clear the effect.
func (c *SliceController) Update(plane *geometry.Plane, sink RenderSink) bool {
	if plane == nil || sink == nil {
		return false
	}
	sink.SetSliceParams(RenderParams{
		Plane:          plane.Equation(),
		Threshold:      c.config.Threshold,
		ColorThreshold: c.config.ColorThreshold,
		SliceColor:     c.color,
		Enabled:        c.config.Enabled,
	})
	return true
}

// SetEnabled toggles the effect
func (c *SliceController) SetEnabled(enabled bool) {
	c.config.Enabled = enabled
}

// Enabled reports whether the effect is on
func (c *SliceController) Enabled() bool {
	return c.config.Enabled
}
