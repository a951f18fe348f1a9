// Package config loads application settings from an optional TOML file.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/image/colornames"

	"Kreate/internal/state"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Title    string   `toml:"title"`
	Window   Window   `toml:"window"`
	Brush    Brush    `toml:"brush"`
	Gestures Gestures `toml:"gestures"`
}

type Window struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Brush holds the initial drawing selection and the swatch palette.
type Brush struct {
	Mode    string   `toml:"mode"`
	Color   string   `toml:"color"`
	Size    int      `toml:"size"`
	MinSize int      `toml:"min_size"`
	MaxSize int      `toml:"max_size"`
	Palette []string `toml:"palette"`
}

// Gestures configures the websocket gesture bridge.
type Gestures struct {
	Enabled   bool   `toml:"enabled"`
	Port      int    `toml:"port"`
	Path      string `toml:"path"`
	Advertise bool   `toml:"advertise"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Title:  "Kreate",
		Window: Window{Width: 600, Height: 800},
		Brush: Brush{
			Mode:    state.ModeDot.String(),
			Color:   "#000000",
			Size:    5,
			MinSize: 1,
			MaxSize: 50,
			Palette: []string{"#000000", "#555555", "#aaaaaa", "#ffffff"},
		},
		Gestures: Gestures{
			Port:      8888,
			Path:      "/gestures",
			Advertise: true,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	return cfg, finish(cfg, md)
}

// Parse decodes TOML text over the defaults.
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config: parse: %w", err)
	}
	return cfg, finish(cfg, md)
}

func finish(cfg Config, md toml.MetaData) error {
	if undec := md.Undecoded(); len(undec) > 0 {
		return fmt.Errorf("config: unknown key %q: %w", undec[0].String(), ErrInvalid)
	}
	return cfg.Validate()
}

// Validate checks every field.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d: %w", c.Window.Width, c.Window.Height, ErrInvalid)
	}
	if _, err := c.Mode(); err != nil {
		return err
	}
	b := c.Brush
	if b.MinSize < 1 || b.MinSize > b.MaxSize {
		return fmt.Errorf("config: size bounds [%d, %d]: %w", b.MinSize, b.MaxSize, ErrInvalid)
	}
	if b.Size < b.MinSize || b.Size > b.MaxSize {
		return fmt.Errorf("config: size %d: %w", b.Size, ErrInvalid)
	}
	if _, err := ParseColor(b.Color); err != nil {
		return err
	}
	if len(b.Palette) == 0 {
		return fmt.Errorf("config: empty palette: %w", ErrInvalid)
	}
	if _, err := c.Palette(); err != nil {
		return err
	}
	if c.Gestures.Enabled {
		if c.Gestures.Port < 1 || c.Gestures.Port > 65535 {
			return fmt.Errorf("config: gesture port %d: %w", c.Gestures.Port, ErrInvalid)
		}
		if !strings.HasPrefix(c.Gestures.Path, "/") {
			return fmt.Errorf("config: gesture path %q: %w", c.Gestures.Path, ErrInvalid)
		}
	}
	return nil
}

// Mode returns the configured initial drawing mode.
func (c Config) Mode() (state.Mode, error) {
	m, err := state.ParseMode(c.Brush.Mode)
	if err != nil {
		return m, fmt.Errorf("config: %v: %w", err, ErrInvalid)
	}
	return m, nil
}

// Color returns the configured initial color.
func (c Config) Color() (color.Color, error) {
	return ParseColor(c.Brush.Color)
}

// Swatch is one selectable palette entry.
type Swatch struct {
	Name  string
	Color color.Color
}

// Palette returns the parsed swatches in configured order.
func (c Config) Palette() ([]Swatch, error) {
	out := make([]Swatch, 0, len(c.Brush.Palette))
	for _, s := range c.Brush.Palette {
		col, err := ParseColor(s)
		if err != nil {
			return nil, err
		}
		out = append(out, Swatch{Name: s, Color: col})
	}
	return out, nil
}

// ParseColor accepts "#rgb", "#rrggbb" or an SVG/CSS color name.
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return nil, fmt.Errorf("config: color %q: %w", s, ErrInvalid)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return nil, fmt.Errorf("config: color %q: %w", s, ErrInvalid)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("config: color %q: %w", s, ErrInvalid)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
