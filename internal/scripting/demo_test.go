package scripting

import (
	"path/filepath"
	"testing"

	"rama/internal/config"
	"rama/internal/engine"
	"rama/internal/graphics"
	"rama/internal/physics"
	"rama/internal/ui"
)

// TestDemoScriptRunsHeadless drives the bundled demo through the full frame
// loop on the null device.
func TestDemoScriptRunsHeadless(t *testing.T) {
	root, err := filepath.Abs(filepath.Join("..", ".."))
	if err != nil {
		t.Fatal(err)
	}
	tracker := graphics.NewTracker()
	res := graphics.NewResources(graphics.NewNullDevice(), tracker, "#version 410 core\n")
	win := &stubWindow{w: 640, h: 360}
	ctx := engine.NewContext(config.Default(), win, res, root)

	overlay, err := ui.NewPassthrough(res, win.Focused)
	if err != nil {
		t.Fatal(err)
	}
	bridge := NewBridge(ctx, overlay)
	defer bridge.Close()
	game := NewGame(bridge, "scripts/main.lua", false)

	if err := engine.New(ctx, overlay, game).Run(5); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if win.title != "rama - box room" {
		t.Errorf("title = %q", win.title)
	}
	if !win.relative {
		t.Error("demo did not capture the mouse")
	}
	if got := ctx.Physics3D.State(); got != physics.Destroyed {
		t.Errorf("physics3d state = %v", got)
	}
	if live := tracker.Live(); len(live) != 0 {
		t.Errorf("leaked resources: %v", live)
	}
	if !overlay.Balanced() {
		t.Error("unbalanced widget scopes")
	}
}
