package physics2d

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"rama/internal/physics"
)

func newRunningWorld(t *testing.T) *World {
	t.Helper()
	w := New(DefaultOptions())
	if err := w.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = w.Shutdown() })
	return w
}

func TestWorldLifecycle(t *testing.T) {
	w := New(DefaultOptions())
	if _, err := w.Update(0.1); !errors.Is(err, physics.ErrNotRunning) {
		t.Errorf("update before init = %v", err)
	}
	if err := w.Init(); err != nil {
		t.Fatal(err)
	}
	if err := w.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if _, err := w.NewBox(1, 1, mgl32.Vec2{}, false); !errors.Is(err, physics.ErrDestroyed) {
		t.Errorf("body after shutdown = %v", err)
	}
}

func TestDynamicBoxFalls(t *testing.T) {
	w := newRunningWorld(t)
	box, err := w.NewBox(1, 1, mgl32.Vec2{0, 10}, false)
	if err != nil {
		t.Fatal(err)
	}

	steps, err := w.Update(0.51)
	if err != nil {
		t.Fatal(err)
	}
	if steps != 30 {
		t.Errorf("steps = %d, want 30", steps)
	}
	if y := box.Position().Y(); y >= 10 {
		t.Errorf("box did not fall: y = %v", y)
	}
	if v := box.Velocity().Y(); v >= 0 {
		t.Errorf("velocity y = %v, want negative", v)
	}
}

func TestStaticFloorStopsBox(t *testing.T) {
	w := newRunningWorld(t)
	if _, err := w.NewBox(20, 1, mgl32.Vec2{0, 0}, true); err != nil {
		t.Fatal(err)
	}
	box, _ := w.NewBox(1, 1, mgl32.Vec2{0, 3}, false)

	for i := 0; i < 180; i++ {
		if _, err := w.Update(1.0 / 60.0); err != nil {
			t.Fatal(err)
		}
	}
	if y := box.Position().Y(); y < 0.5 || y > 1.5 {
		t.Errorf("box should rest on the floor, y = %v", y)
	}
}

func TestSetPositionReadBack(t *testing.T) {
	w := newRunningWorld(t)
	box, _ := w.NewBox(1, 2, mgl32.Vec2{}, false)
	p := mgl32.Vec2{4.25, -3.5}
	if err := box.SetPosition(p); err != nil {
		t.Fatal(err)
	}
	if got := box.Position(); got != p {
		t.Errorf("position = %v, want %v", got, p)
	}

	box.Destroy()
	box.Destroy()
	if err := box.SetPosition(p); !errors.Is(err, ErrBodyDestroyed) {
		t.Errorf("set after destroy = %v", err)
	}
}
