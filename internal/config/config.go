// Package config loads the engine settings from engine.toml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the configuration file looked up next to the working directory.
const DefaultPath = "engine.toml"

type Window struct {
	Title    string `toml:"title"`
	Width    int    `toml:"width"`
	Height   int    `toml:"height"`
	VSync    bool   `toml:"vsync"`
	FPSLimit int    `toml:"fps_limit"` // 0 disables the limiter
}

type Graphics struct {
	GLSLVersion string     `toml:"glsl_version"`
	DepthTest   bool       `toml:"depth_test"`
	ClearColor  [3]float32 `toml:"clear_color"`
}

type Input struct {
	// SuppressFirstFramePress hides "pressed" edges for keys already held on
	// the very first frame.
	SuppressFirstFramePress bool `toml:"suppress_first_frame_press"`
}

type Physics struct {
	StepHz    float64    `toml:"step_hz"`
	MaxSteps  int        `toml:"max_steps"` // 0 means unbounded catch-up
	Gravity2D [2]float64 `toml:"gravity_2d"`
	Gravity3D [3]float32 `toml:"gravity_3d"`
	Workers   int        `toml:"workers"` // 0 picks NumCPU-1
}

type Scripts struct {
	Main      string `toml:"main"`
	HotReload bool   `toml:"hot_reload"`
}

type Log struct {
	Level string `toml:"level"`
}

type Debug struct {
	SlowFrameMs int `toml:"slow_frame_ms"` // 0 disables slow frame reports
}

// Config holds every engine setting.
type Config struct {
	Window   Window   `toml:"window"`
	Graphics Graphics `toml:"graphics"`
	Input    Input    `toml:"input"`
	Physics  Physics  `toml:"physics"`
	Scripts  Scripts  `toml:"scripts"`
	Log      Log      `toml:"log"`
	Debug    Debug    `toml:"debug"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Window: Window{
			Title:  "rama",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Graphics: Graphics{
			GLSLVersion: "#version 410 core\n",
			DepthTest:   true,
			ClearColor:  [3]float32{0.1, 0.1, 0.1},
		},
		Physics: Physics{
			StepHz:    60,
			Gravity2D: [2]float64{0, -9.8},
			Gravity3D: [3]float32{0, -9.81, 0},
		},
		Scripts: Scripts{
			Main:      "scripts/main.lua",
			HotReload: true,
		},
		Log:   Log{Level: "info"},
		Debug: Debug{SlowFrameMs: 33},
	}
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Validate()
	return cfg, nil
}

// Validate clamps out of range values back to something usable.
func (c *Config) Validate() {
	if c.Window.Width < 1 {
		c.Window.Width = 1
	}
	if c.Window.Height < 1 {
		c.Window.Height = 1
	}
	if c.Window.FPSLimit < 0 {
		c.Window.FPSLimit = 0
	}
	if c.Physics.StepHz <= 0 {
		c.Physics.StepHz = 60
	}
	if c.Physics.MaxSteps < 0 {
		c.Physics.MaxSteps = 0
	}
	if c.Physics.Workers < 0 {
		c.Physics.Workers = 0
	}
	if c.Graphics.GLSLVersion == "" {
		c.Graphics.GLSLVersion = Default().Graphics.GLSLVersion
	}
	if c.Debug.SlowFrameMs < 0 {
		c.Debug.SlowFrameMs = 0
	}
}

// StepSeconds is the fixed physics step length.
func (p Physics) StepSeconds() float64 {
	return 1 / p.StepHz
}
