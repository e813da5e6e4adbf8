package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds output paths, camera and render settings.
type Config struct {
	// Paths
	OutputDir  string `json:"output_dir" toml:"output_dir" yaml:"output_dir"`
	TextureDir string `json:"texture_dir" toml:"texture_dir" yaml:"texture_dir"`
	Texture    string `json:"texture" toml:"texture" yaml:"texture"`

	// Camera
	FOV         float64 `json:"fov_deg" toml:"fov_deg" yaml:"fov_deg"`
	Near        float64 `json:"near" toml:"near" yaml:"near"`
	Far         float64 `json:"far" toml:"far" yaml:"far"`
	Distance    float64 `json:"distance" toml:"distance" yaml:"distance"`
	Height      float64 `json:"height" toml:"height" yaml:"height"`
	Ortho       bool    `json:"ortho" toml:"ortho" yaml:"ortho"`
	OrthoHeight float64 `json:"ortho_height" toml:"ortho_height" yaml:"ortho_height"`

	// Object orientation in degrees. LegacyEuler turns all three angles
	// about X, matching scenes authored for the kernel's Euler helper.
	Rotation    [3]float64 `json:"rotation_deg" toml:"rotation_deg" yaml:"rotation_deg"`
	LegacyEuler bool       `json:"legacy_euler" toml:"legacy_euler" yaml:"legacy_euler"`

	// Render settings
	RenderSize  int     `json:"render_size" toml:"render_size" yaml:"render_size"`
	Supersample int     `json:"supersample" toml:"supersample" yaml:"supersample"`
	Frames      int     `json:"frames" toml:"frames" yaml:"frames"`
	Workers     int     `json:"workers" toml:"workers" yaml:"workers"`
	Seed        uint32  `json:"seed" toml:"seed" yaml:"seed"`
	Jitter      bool    `json:"jitter" toml:"jitter" yaml:"jitter"`
	FillRatio   float64 `json:"fill_ratio" toml:"fill_ratio" yaml:"fill_ratio"`
}

// Load reads a config file; the extension picks the format (.json, .toml,
// .yaml or .yml). Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("config: %s: unsupported format %q", path, ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
// Zero values mean "not given"; the pointer fields are set only when the
// flag was passed, so they can also override with zero or false.
type Flags struct {
	OutputDir   string
	TextureDir  string
	Texture     string
	RenderSize  int
	Supersample int
	Frames      int
	Workers     int
	Seed        *uint32
	Ortho       *bool
	Jitter      *bool
}

// Resolve applies flags over the file values, then fills remaining zero
// fields with defaults.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.TextureDir != "" {
		c.TextureDir = flags.TextureDir
	}
	if flags.Texture != "" {
		c.Texture = flags.Texture
	}
	if flags.RenderSize > 0 {
		c.RenderSize = flags.RenderSize
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Seed != nil {
		c.Seed = *flags.Seed
	}
	if flags.Ortho != nil {
		c.Ortho = *flags.Ortho
	}
	if flags.Jitter != nil {
		c.Jitter = *flags.Jitter
	}

	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
	if c.TextureDir != "" && !filepath.IsAbs(c.TextureDir) {
		if abs, err := filepath.Abs(c.TextureDir); err == nil {
			c.TextureDir = abs
		}
	}

	// Camera defaults
	if c.FOV <= 0 {
		c.FOV = 45
	}
	if c.Near <= 0 {
		c.Near = 0.1
	}
	if c.Far <= 0 {
		c.Far = 100
	}
	if c.Distance <= 0 {
		c.Distance = 4
	}
	if c.Height == 0 {
		c.Height = 1.5
	}
	if c.OrthoHeight <= 0 {
		c.OrthoHeight = 2.5
	}

	// Defaults for render settings
	if c.RenderSize <= 0 {
		c.RenderSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Frames <= 0 {
		c.Frames = 8
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Validate reports every setting that cannot produce an image.
func (c *Config) Validate() error {
	var errs []error
	if c.Far <= c.Near {
		errs = append(errs, fmt.Errorf("far (%g) must exceed near (%g)", c.Far, c.Near))
	}
	if !c.Ortho && (c.FOV <= 0 || c.FOV >= 180) {
		errs = append(errs, fmt.Errorf("fov_deg %g outside (0, 180)", c.FOV))
	}
	if c.Ortho && c.OrthoHeight <= 0 {
		errs = append(errs, fmt.Errorf("ortho_height %g must be positive", c.OrthoHeight))
	}
	if c.Distance <= c.Near {
		errs = append(errs, fmt.Errorf("distance %g inside the near plane %g", c.Distance, c.Near))
	}
	if c.FillRatio < 0 || c.FillRatio > 1 {
		errs = append(errs, fmt.Errorf("fill_ratio %g outside [0, 1]", c.FillRatio))
	}
	if c.RenderSize <= 0 || c.Supersample <= 0 || c.Frames <= 0 || c.Workers <= 0 {
		errs = append(errs, errors.New("render_size, supersample, frames and workers must be positive"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
