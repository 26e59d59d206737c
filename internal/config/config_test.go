package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if got := cfg.Physics.StepSeconds(); got != 1.0/60.0 {
		t.Errorf("step = %v, want 1/60", got)
	}
}

func TestLoadOverridesAndClamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.toml")
	src := `
[window]
title = "demo"
width = 0
height = 480

[input]
suppress_first_frame_press = true

[physics]
step_hz = -5
max_steps = 8

[scripts]
main = "game/main.lua"
hot_reload = false
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"title", cfg.Window.Title, "demo"},
		{"width clamped", cfg.Window.Width, 1},
		{"height", cfg.Window.Height, 480},
		{"first frame", cfg.Input.SuppressFirstFramePress, true},
		{"step reset", cfg.Physics.StepHz, 60.0},
		{"max steps", cfg.Physics.MaxSteps, 8},
		{"script", cfg.Scripts.Main, "game/main.lua"},
		{"hot reload", cfg.Scripts.HotReload, false},
		{"untouched glsl", cfg.Graphics.GLSLVersion, "#version 410 core\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.toml")
	if err := os.WriteFile(path, []byte("[window\ntitle="), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
