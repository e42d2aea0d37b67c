// Package config loads the planetarium scene file (TOML or YAML), applies
// command-line overrides and fills in defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/taigrr/planetarium/pkg/render"
)

// Config is the whole scene description.
type Config struct {
	// Framebuffer size in pixels. Zero means "fit the terminal" for the
	// interactive viewer and 320x240 for snapshots.
	Width  int `toml:"width" yaml:"width"`
	Height int `toml:"height" yaml:"height"`
	FPS    int `toml:"fps" yaml:"fps"`

	Background string `toml:"background" yaml:"background"`
	WireColor  string `toml:"wire_color" yaml:"wire_color"`

	// Selected is the 1-based index of the object shown first.
	Selected int `toml:"selected" yaml:"selected"`

	Light   Light    `toml:"light" yaml:"light"`
	Camera  Camera   `toml:"camera" yaml:"camera"`
	Objects []Object `toml:"objects" yaml:"objects"`
}

// Light is the directional light.
type Light struct {
	Direction   [3]float64 `toml:"direction" yaml:"direction"`
	Ambient     float64    `toml:"ambient" yaml:"ambient"`
	PerFragment bool       `toml:"per_fragment" yaml:"per_fragment"`
}

// Camera is the initial view.
type Camera struct {
	Eye    [3]float64 `toml:"eye" yaml:"eye"`
	Center [3]float64 `toml:"center" yaml:"center"`
	Up     [3]float64 `toml:"up" yaml:"up"`
	FOV    float64    `toml:"fov" yaml:"fov"` // degrees
}

// Object is one selectable scene object.
type Object struct {
	Name        string     `toml:"name" yaml:"name"`
	ID          int        `toml:"id" yaml:"id"`
	Model       string     `toml:"model" yaml:"model"` // empty for the built-in sphere
	Shader      string     `toml:"shader" yaml:"shader"`
	Color       string     `toml:"color" yaml:"color"`
	Translation [3]float64 `toml:"translation" yaml:"translation"`
	Rotation    [3]float64 `toml:"rotation" yaml:"rotation"` // radians
	Scale       float64    `toml:"scale" yaml:"scale"`
	Spin        float64    `toml:"spin" yaml:"spin"` // radians per frame about Y
}

// Flags holds CLI flag values that override config file settings. Zero
// values leave the file's setting alone.
type Flags struct {
	Width       int
	Height      int
	FPS         int
	Background  string
	Model       string
	Selected    int
	Ambient     float64 // negative means unset
	PerFragment bool
}

// Default returns the built-in planetary scene: seven objects sharing the
// unit sphere, the second one a small tilted moon.
func Default() Config {
	cfg := Config{}
	cfg.Resolve(Flags{Ambient: -1})
	return cfg
}

// DefaultObjects lists the seven objects of the default scene.
func DefaultObjects() []Object {
	return []Object{
		{Name: "earth", ID: 1, Shader: "earth", Scale: 1},
		{Name: "moon", ID: 2, Shader: "moon", Translation: [3]float64{0.5, 1, 0}, Rotation: [3]float64{0, math.Pi / 4, 0}, Scale: 0.3},
		{Name: "sun", ID: 3, Shader: "sun", Scale: 1},
		{Name: "gas giant", ID: 4, Shader: "gas_giant", Scale: 1},
		{Name: "ice giant", ID: 5, Shader: "ice_giant", Scale: 1},
		{Name: "lava world", ID: 6, Shader: "lava", Scale: 1},
		{Name: "mars", ID: 7, Shader: "mars", Scale: 1},
	}
}

// Load reads a scene file. The format follows the extension: .toml, .yaml
// or .yml. Unknown keys are errors. Fields not set in the file keep their
// zero values; call Resolve afterwards.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&cfg)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err = dec.Decode(&cfg); errors.Is(err, io.EOF) {
			err = nil // empty document
		}
	default:
		return Config{}, fmt.Errorf("config: %s: unsupported format %q (want .toml, .yaml or .yml)", path, filepath.Ext(path))
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadResolved loads path (or starts from an empty config when path is
// empty), applies flags and defaults, and validates the result.
func LoadResolved(path string, flags Flags) (Config, error) {
	var cfg Config
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return Config{}, err
		}
	}
	cfg.Resolve(flags)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Resolve applies CLI overrides and then fills empty fields with defaults.
func (c *Config) Resolve(flags Flags) {
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.FPS > 0 {
		c.FPS = flags.FPS
	}
	if flags.Background != "" {
		c.Background = flags.Background
	}
	if flags.Selected > 0 {
		c.Selected = flags.Selected
	}
	if flags.Ambient >= 0 {
		c.Light.Ambient = flags.Ambient
	}
	if flags.PerFragment {
		c.Light.PerFragment = true
	}

	if len(c.Objects) == 0 {
		c.Objects = DefaultObjects()
	}
	for i := range c.Objects {
		o := &c.Objects[i]
		if flags.Model != "" {
			o.Model = flags.Model
		}
		if o.ID == 0 {
			o.ID = i + 1
		}
		if o.Name == "" {
			o.Name = fmt.Sprintf("object %d", o.ID)
		}
		if o.Shader == "" {
			o.Shader = "flat"
		}
		if o.Color == "" {
			o.Color = "#ffdddd"
		}
		if o.Scale == 0 {
			o.Scale = 1
		}
	}

	if c.FPS <= 0 {
		c.FPS = 60
	}
	if c.Background == "" {
		c.Background = "#333355"
	}
	if c.WireColor == "" {
		c.WireColor = "#9fef9f"
	}
	if c.Selected <= 0 {
		c.Selected = 1
	}
	if c.Light.Direction == [3]float64{} {
		c.Light.Direction = [3]float64{0, 0, 1}
	}
	if c.Camera.Eye == [3]float64{} {
		c.Camera.Eye = [3]float64{0, 0, 5}
	}
	if c.Camera.Up == [3]float64{} {
		c.Camera.Up = [3]float64{0, 1, 0}
	}
	if c.Camera.FOV <= 0 {
		c.Camera.FOV = 45
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("config: width/height must not be negative (got %dx%d)", c.Width, c.Height)
	}
	if c.FPS < 1 || c.FPS > 240 {
		return fmt.Errorf("config: fps must be in 1..240, got %d", c.FPS)
	}
	if _, err := render.ParseColor(c.Background); err != nil {
		return fmt.Errorf("config: background: %w", err)
	}
	if _, err := render.ParseColor(c.WireColor); err != nil {
		return fmt.Errorf("config: wire_color: %w", err)
	}
	if c.Light.Ambient < 0 || c.Light.Ambient > 1 {
		return fmt.Errorf("config: light.ambient must be in [0, 1], got %v", c.Light.Ambient)
	}
	if c.Camera.FOV >= 180 {
		return fmt.Errorf("config: camera.fov must be below 180 degrees, got %v", c.Camera.FOV)
	}
	if c.Camera.Eye == c.Camera.Center {
		return fmt.Errorf("config: camera.eye and camera.center must differ")
	}
	if len(c.Objects) == 0 {
		return fmt.Errorf("config: no objects")
	}
	if c.Selected > len(c.Objects) {
		return fmt.Errorf("config: selected %d but only %d objects", c.Selected, len(c.Objects))
	}

	seen := make(map[int]string, len(c.Objects))
	for i, o := range c.Objects {
		if o.ID <= 0 {
			return fmt.Errorf("config: objects[%d].id must be positive, got %d", i, o.ID)
		}
		if prev, dup := seen[o.ID]; dup {
			return fmt.Errorf("config: objects[%d].id %d already used by %q", i, o.ID, prev)
		}
		seen[o.ID] = o.Name
		if o.Scale <= 0 {
			return fmt.Errorf("config: objects[%d].scale must be positive, got %v", i, o.Scale)
		}
		if _, err := render.ParseColor(o.Color); err != nil {
			return fmt.Errorf("config: objects[%d].color: %w", i, err)
		}
	}
	return nil
}
