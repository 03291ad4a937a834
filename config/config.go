// Package config loads swiper properties from YAML or TOML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/xqrs/swipeview/swiper"
)

// ErrUnsupportedFormat is returned for files that are neither YAML nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Config is the content of a configuration file.
type Config struct {
	Swiper  Swiper  `yaml:"swiper" toml:"swiper"`
	Display Display `yaml:"display" toml:"display"`
}

// Swiper holds the swiper properties. Enumerations are spelled out as
// names, durations as Go duration strings.
type Swiper struct {
	Index        int           `yaml:"index" toml:"index"`
	Loop         bool          `yaml:"loop" toml:"loop"`
	DisplayCount int           `yaml:"display_count" toml:"display_count"`
	MinSize      float64       `yaml:"min_size" toml:"min_size"`
	DisplayMode  string        `yaml:"display_mode" toml:"display_mode"`
	ItemSize     float64       `yaml:"item_size" toml:"item_size"`
	PrevMargin   float64       `yaml:"prev_margin" toml:"prev_margin"`
	NextMargin   float64       `yaml:"next_margin" toml:"next_margin"`
	ItemSpace    float64       `yaml:"item_space" toml:"item_space"`
	CachedCount  int           `yaml:"cached_count" toml:"cached_count"`
	Duration     time.Duration `yaml:"duration" toml:"duration"`
	Interval     time.Duration `yaml:"interval" toml:"interval"`
	Curve        string        `yaml:"curve" toml:"curve"`
	AutoPlay     bool          `yaml:"autoplay" toml:"autoplay"`
	DisableSwipe bool          `yaml:"disable_swipe" toml:"disable_swipe"`
	EdgeEffect   string        `yaml:"edge_effect" toml:"edge_effect"`
	Axis         string        `yaml:"axis" toml:"axis"`
	NestedScroll string        `yaml:"nested_scroll" toml:"nested_scroll"`
}

// Display holds the presentation of the demo around the swiper.
type Display struct {
	Border    string `yaml:"border" toml:"border"`
	Title     string `yaml:"title" toml:"title"`
	Indicator string `yaml:"indicator" toml:"indicator"`
	Arrows    bool   `yaml:"arrows" toml:"arrows"`
	Help      bool   `yaml:"help" toml:"help"`
}

// Default returns the configuration used when no file is given. Fields
// missing from a file keep these values.
func Default() *Config {
	props := swiper.DefaultProps()
	return &Config{
		Swiper: Swiper{
			Loop:         props.Loop,
			DisplayCount: props.DisplayCount,
			DisplayMode:  "stretch",
			CachedCount:  1,
			Duration:     props.Duration,
			Interval:     props.Interval,
			EdgeEffect:   props.EdgeEffect.String(),
			Axis:         props.Axis.String(),
			NestedScroll: "self-first",
		},
		Display: Display{
			Border:    "round",
			Indicator: "dots",
			Arrows:    true,
			Help:      true,
		},
	}
}

// Load reads the file at path. The format is chosen by the extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	if _, err := cfg.Swiper.Props(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Props converts the properties to the engine's representation.
func (s Swiper) Props() (swiper.Props, error) {
	props := swiper.Props{
		Index:        s.Index,
		Loop:         s.Loop,
		DisplayCount: s.DisplayCount,
		MinSize:      s.MinSize,
		ItemSize:     s.ItemSize,
		PrevMargin:   s.PrevMargin,
		NextMargin:   s.NextMargin,
		ItemSpace:    s.ItemSpace,
		CachedCount:  s.CachedCount,
		Duration:     s.Duration,
		Interval:     s.Interval,
		AutoPlay:     s.AutoPlay,
		DisableSwipe: s.DisableSwipe,
	}

	curve, ok := swiper.CurveByName(s.Curve)
	if !ok {
		return props, fmt.Errorf("unknown curve %q", s.Curve)
	}
	props.Curve = curve

	switch s.DisplayMode {
	case "", "stretch":
		props.DisplayMode = swiper.DisplayStretch
	case "auto":
		props.DisplayMode = swiper.DisplayAutoLinear
	default:
		return props, fmt.Errorf("unknown display mode %q", s.DisplayMode)
	}

	switch s.EdgeEffect {
	case "", "spring":
		props.EdgeEffect = swiper.EdgeSpring
	case "fade":
		props.EdgeEffect = swiper.EdgeFade
	case "none":
		props.EdgeEffect = swiper.EdgeNone
	default:
		return props, fmt.Errorf("unknown edge effect %q", s.EdgeEffect)
	}

	switch s.Axis {
	case "", "horizontal":
		props.Axis = swiper.Horizontal
	case "vertical":
		props.Axis = swiper.Vertical
	default:
		return props, fmt.Errorf("unknown axis %q", s.Axis)
	}

	switch s.NestedScroll {
	case "", "self-first":
		props.NestedScroll = swiper.NestedSelfFirst
	case "self-overscroll-first":
		props.NestedScroll = swiper.NestedSelfOverScrollFirst
	case "self-only":
		props.NestedScroll = swiper.NestedSelfOnly
	default:
		return props, fmt.Errorf("unknown nested scroll mode %q", s.NestedScroll)
	}
	return props, nil
}
