package slice

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
)

// Config holds the tunables of the manipulator and the slice render effect
type Config struct {
	// SelectionRadius is the 2D pick distance for points and segments
	SelectionRadius float64 `toml:"selection_radius"`
	// VertexInfluenceRadius bounds both the vertex falloff and the split search
	VertexInfluenceRadius float64 `toml:"vertex_influence_radius"`
	// ExcludeTag names the mesh tag that is never sliced or edited
	ExcludeTag string `toml:"exclude_tag"`

	Render RenderConfig `toml:"render"`
}

// RenderConfig holds the parameters pushed to the slice render sink
type RenderConfig struct {
	Threshold      float64 `toml:"threshold"`
	ColorThreshold float64 `toml:"color_threshold"`
	SliceColor     string  `toml:"slice_color"`
	Enabled        bool    `toml:"enabled"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() Config {
	return Config{
		SelectionRadius:       0.5,
		VertexInfluenceRadius: 1.0,
		ExcludeTag:            "Player",
		Render: RenderConfig{
			Threshold:      0.02,
			ColorThreshold: 0.02,
			SliceColor:     "#ff0000",
			Enabled:        true,
		},
	}
}

// LoadConfig reads a TOML file on top of the defaults
// Keys the file sets override the defaults; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the manipulator cannot use
func (c Config) Validate() error {
	if c.SelectionRadius <= 0 {
		return fmt.Errorf("selection_radius must be positive, got %g", c.SelectionRadius)
	}
	if c.VertexInfluenceRadius <= 0 {
		return fmt.Errorf("vertex_influence_radius must be positive, got %g", c.VertexInfluenceRadius)
	}
	return c.Render.Validate()
}

// Validate checks the render parameters
func (r RenderConfig) Validate() error {
	if r.Threshold < 0 {
		return fmt.Errorf("threshold must not be negative, got %g", r.Threshold)
	}
	if r.ColorThreshold < 0 {
		return fmt.Errorf("color_threshold must not be negative, got %g", r.ColorThreshold)
	}
	if _, err := r.Color(); err != nil {
		return err
	}
	return nil
}

// Color parses the configured slice color
func (r RenderConfig) Color() (colorful.Color, error) {
	c, err := colorful.Hex(r.SliceColor)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("invalid slice_color %q: %w", r.SliceColor, err)
	}
	return c, nil
}
