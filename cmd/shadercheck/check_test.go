package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"rama/internal/graphics"
)

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"ok.glsl":       "@vertex\nvoid main() {}\n@fragment\nvoid main() {}\n",
		"no_frag.glsl":  "@vertex\nvoid main() {}\n",
		"empty.glsl":    "// nothing here\n",
		"blank_vs.glsl": "@vertex\n\n@fragment\nvoid main() {}\n",
	}
	for name, src := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	tracker := graphics.NewTracker()
	res := graphics.NewResources(graphics.NewNullDevice(), tracker, "#version 410 core\n")

	tests := []struct {
		file string
		want []error
	}{
		{"ok.glsl", nil},
		{"no_frag.glsl", []error{errNoFragment}},
		{"empty.glsl", []error{errNoVertex, errNoFragment}},
		{"blank_vs.glsl", []error{errNoVertex}},
	}
	for _, tt := range tests {
		err := check(res, filepath.Join(dir, tt.file))
		if tt.want == nil && err != nil {
			t.Errorf("%s: %v", tt.file, err)
		}
		for _, w := range tt.want {
			if !errors.Is(err, w) {
				t.Errorf("%s: err = %v, want %v", tt.file, err, w)
			}
		}
	}
	if n := len(tracker.Live()); n != 0 {
		t.Errorf("%d shaders leaked", n)
	}

	if err := check(res, filepath.Join(dir, "absent.glsl")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: err = %v", err)
	}
}
