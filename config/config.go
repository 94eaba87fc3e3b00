// Package config loads the demo's TOML or YAML settings.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"desk-replica/core"
	"desk-replica/math"
)

type Config struct {
	Window WindowConfig `toml:"window" yaml:"window"`
	Camera CameraConfig `toml:"camera" yaml:"camera"`
	Assets AssetsConfig `toml:"assets" yaml:"assets"`
	Render RenderConfig `toml:"render" yaml:"render"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

type WindowConfig struct {
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
	Title  string `toml:"title" yaml:"title"`
	VSync  bool   `toml:"vsync" yaml:"vsync"`
}

type CameraConfig struct {
	Position    [3]float32 `toml:"position" yaml:"position"`
	Yaw         float32    `toml:"yaw" yaml:"yaw"`
	Pitch       float32    `toml:"pitch" yaml:"pitch"`
	FOV         float32    `toml:"fov" yaml:"fov"`
	Speed       float32    `toml:"speed" yaml:"speed"`
	Sensitivity float32    `toml:"sensitivity" yaml:"sensitivity"`
	Ortho       bool       `toml:"ortho" yaml:"ortho"`
}

type AssetsConfig struct {
	TextureDir string `toml:"texture_dir" yaml:"texture_dir"`
}

type RenderConfig struct {
	StrictLookups bool       `toml:"strict_lookups" yaml:"strict_lookups"`
	ClearColor    [4]float32 `toml:"clear_color" yaml:"clear_color"`
	FallbackColor [4]float32 `toml:"fallback_color" yaml:"fallback_color"`
}

type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

func DefaultConfig() Config {
	win := core.DefaultWindowConfig()
	return Config{
		Window: WindowConfig{
			Width:  win.Width,
			Height: win.Height,
			Title:  win.Title,
			VSync:  win.VSync,
		},
		Camera: CameraConfig{
			Position:    [3]float32{0, 12, 32},
			Yaw:         -90,
			Pitch:       -20,
			FOV:         45,
			Speed:       10,
			Sensitivity: 0.1,
		},
		Assets: AssetsConfig{TextureDir: "textures"},
		Render: RenderConfig{
			ClearColor:    [4]float32{0, 0, 0, 1},
			FallbackColor: [4]float32{1, 0, 1, 1},
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults, as YAML for .yaml and .yml files and as
// TOML otherwise. An empty path or a missing file yields the defaults
// unchanged.
func Load(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	decode := Decode
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		decode = DecodeYAML
	}
	cfg, err := decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML from r over the defaults and validates the result.
// Unknown keys are rejected.
func Decode(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DecodeYAML is Decode for YAML input.
func DecodeYAML(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		return fmt.Errorf("camera fov must be in (0, 180), got %g", c.Camera.FOV)
	}
	if c.Camera.Speed <= 0 {
		return fmt.Errorf("camera speed must be positive, got %g", c.Camera.Speed)
	}
	return nil
}

func (c CameraConfig) PositionVec() math.Vec3 {
	return math.NewVec3(c.Position[0], c.Position[1], c.Position[2])
}

func (c RenderConfig) Clear() core.Color {
	return toColor(c.ClearColor)
}

func (c RenderConfig) Fallback() core.Color {
	return toColor(c.FallbackColor)
}

func toColor(v [4]float32) core.Color {
	return core.Color{R: v[0], G: v[1], B: v[2], A: v[3]}
}

// CoreConfig converts the window section for core.NewWindow.
func (c WindowConfig) CoreConfig() core.WindowConfig {
	win := core.DefaultWindowConfig()
	win.Width = c.Width
	win.Height = c.Height
	win.Title = c.Title
	win.VSync = c.VSync
	return win
}
