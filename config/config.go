package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Present modes accepted in the config file.
const (
	PresentModeVSync    = "vsync"
	PresentModeUncapped = "uncapped"
)

// Config holds everything cmd/viewer needs to open a window and load a model.
type Config struct {
	Assets  AssetsConfig `yaml:"assets"`
	Window  WindowConfig `yaml:"window"`
	Render  RenderConfig `yaml:"render"`
	Profile bool         `yaml:"profile"`
}

// AssetsConfig names the model and where its files live. Root may be a directory or an
// http(s) base URL.
type AssetsConfig struct {
	Root  string `yaml:"root"`
	Model string `yaml:"model"`
}

// WindowConfig sets the window title and initial framebuffer size in pixels.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// RenderConfig holds the surface and frame pacing settings. PresentMode is
// PresentModeVSync or PresentModeUncapped; MSAA is 1, 4, 8 or 16.
type RenderConfig struct {
	PresentMode   string  `yaml:"presentMode"`
	MSAA          int     `yaml:"msaa"`
	FrameLimit    float64 `yaml:"frameLimit,omitempty"` // frames per second; 0 = uncapped
	ForceSoftware bool    `yaml:"forceSoftware,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Assets: AssetsConfig{
			Root:  "models",
			Model: "Humvee",
		},
		Window: WindowConfig{
			Title:  "oxy-viewer",
			Width:  1280,
			Height: 720,
		},
		Render: RenderConfig{
			PresentMode: PresentModeVSync,
			MSAA:        4,
		},
	}
}

// Load reads a YAML config file on top of Default. Keys missing from the file keep
// their default values. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if c.Assets.Root == "" {
		errs = append(errs, errors.New("assets.root must not be empty"))
	}
	if c.Assets.Model == "" {
		errs = append(errs, errors.New("assets.model must not be empty"))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	switch c.Render.PresentMode {
	case PresentModeVSync, PresentModeUncapped:
	default:
		errs = append(errs, fmt.Errorf("render.presentMode must be %q or %q, got %q",
			PresentModeVSync, PresentModeUncapped, c.Render.PresentMode))
	}
	switch c.Render.MSAA {
	case 1, 4, 8, 16:
	default:
		errs = append(errs, fmt.Errorf("render.msaa must be 1, 4, 8 or 16, got %d", c.Render.MSAA))
	}
	if c.Render.FrameLimit < 0 {
		errs = append(errs, fmt.Errorf("render.frameLimit must not be negative, got %v", c.Render.FrameLimit))
	}
	return errors.Join(errs...)
}
