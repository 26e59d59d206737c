package physics3d

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"rama/internal/physics"
)

func newWorld(t testing.TB) *World {
	t.Helper()
	w := New(DefaultOptions())
	if err := w.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return w
}

func near(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

func TestLifecycle(t *testing.T) {
	w := New(DefaultOptions())
	if _, err := w.Update(0.1); !errors.Is(err, physics.ErrNotRunning) {
		t.Fatalf("Update before Init: got %v", err)
	}
	if err := w.Init(); err != nil {
		t.Fatal(err)
	}
	if err := w.Init(); !errors.Is(err, physics.ErrAlreadyInitialized) {
		t.Fatalf("second Init: got %v", err)
	}
	if w.Workers() < 1 {
		t.Fatalf("expected at least one worker, got %d", w.Workers())
	}
	if err := w.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Update(0.1); !errors.Is(err, physics.ErrDestroyed) {
		t.Fatalf("Update after Shutdown: got %v", err)
	}
	if _, err := w.NewRigidbody(NewBox(mgl32.Vec3{1, 1, 1}), mgl32.Vec3{}, false); !errors.Is(err, physics.ErrDestroyed) {
		t.Fatalf("NewRigidbody after Shutdown: got %v", err)
	}
}

func TestShouldCollide(t *testing.T) {
	tests := []struct {
		a, b Layer
		want bool
	}{
		{LayerNonMoving, LayerNonMoving, false},
		{LayerNonMoving, LayerMoving, true},
		{LayerMoving, LayerNonMoving, true},
		{LayerMoving, LayerMoving, true},
	}
	for _, tt := range tests {
		if got := ShouldCollide(tt.a, tt.b); got != tt.want {
			t.Errorf("ShouldCollide(%d, %d) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSetPositionReadBack(t *testing.T) {
	w := newWorld(t)
	defer w.Shutdown()

	for _, static := range []bool{false, true} {
		rb, err := w.NewRigidbody(NewBox(mgl32.Vec3{1, 1, 1}), mgl32.Vec3{}, static)
		if err != nil {
			t.Fatal(err)
		}
		p := mgl32.Vec3{1.25, -3.5, 7.125}
		rb.SetPosition(p)
		if got := rb.Position(); got != p {
			t.Errorf("static=%v: Position() = %v, want %v", static, got, p)
		}
	}
}

func TestGravityFall(t *testing.T) {
	w := newWorld(t)
	defer w.Shutdown()

	rb, err := w.NewRigidbody(NewBox(mgl32.Vec3{1, 1, 1}), mgl32.Vec3{0, 10, 0}, false)
	if err != nil {
		t.Fatal(err)
	}
	steps, err := w.Update(0.51)
	if err != nil {
		t.Fatal(err)
	}
	if steps != 30 {
		t.Fatalf("expected 30 steps, got %d", steps)
	}
	if v := rb.Velocity()[1]; !near(v, -9.81*0.5, 1e-3) {
		t.Errorf("velocity y = %v, want %v", v, -9.81*0.5)
	}
	if y := rb.Position()[1]; y >= 10 || y < 8 {
		t.Errorf("unexpected height after half a second: %v", y)
	}
}

func TestRestOnStaticFloor(t *testing.T) {
	w := newWorld(t)
	defer w.Shutdown()

	floor, err := w.NewRigidbody(NewBox(mgl32.Vec3{10, 1, 10}), mgl32.Vec3{}, true)
	if err != nil {
		t.Fatal(err)
	}
	box, err := w.NewRigidbody(NewBox(mgl32.Vec3{1, 1, 1}), mgl32.Vec3{0, 4, 0}, false)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 120; i++ {
		if _, err := w.Update(1.0 / 60); err != nil {
			t.Fatal(err)
		}
	}
	if y := box.Position()[1]; !near(y, 2, 1e-3) {
		t.Errorf("box should rest on the floor at y=2, got %v", y)
	}
	if got := floor.Position(); got != (mgl32.Vec3{}) {
		t.Errorf("static floor moved to %v", got)
	}
	if len(w.Contacts()) == 0 {
		t.Error("expected a resting contact")
	}
}

func TestStaticBodiesDoNotCollide(t *testing.T) {
	w := newWorld(t)
	defer w.Shutdown()

	a, _ := w.NewRigidbody(NewBox(mgl32.Vec3{1, 1, 1}), mgl32.Vec3{}, true)
	b, _ := w.NewRigidbody(NewBox(mgl32.Vec3{1, 1, 1}), mgl32.Vec3{0.5, 0, 0}, true)
	w.Update(0.1)
	if a.Position() != (mgl32.Vec3{}) || b.Position() != (mgl32.Vec3{0.5, 0, 0}) {
		t.Errorf("overlapping static bodies were separated: %v %v", a.Position(), b.Position())
	}
	if len(w.Contacts()) != 0 {
		t.Errorf("expected no contacts, got %d", len(w.Contacts()))
	}
}

func TestShapeRefcount(t *testing.T) {
	w := newWorld(t)

	shape := NewBox(mgl32.Vec3{1, 1, 1})
	a, _ := w.NewRigidbody(shape, mgl32.Vec3{}, false)
	b, _ := w.NewRigidbody(shape, mgl32.Vec3{5, 0, 0}, false)
	if shape.Refs() != 3 {
		t.Fatalf("expected 3 refs, got %d", shape.Refs())
	}
	a.Destroy()
	a.Destroy()
	if shape.Refs() != 2 {
		t.Fatalf("expected 2 refs after Destroy, got %d", shape.Refs())
	}
	if a.Valid() {
		t.Error("destroyed body still valid")
	}

	w.Shutdown()
	if b.Valid() {
		t.Error("body valid after Shutdown")
	}
	if !shape.Release() {
		t.Errorf("creator reference should be the last one, refs=%d", shape.Refs())
	}
}

func TestSetSizeAndMatrix(t *testing.T) {
	w := newWorld(t)
	defer w.Shutdown()

	shape := NewBox(mgl32.Vec3{1, 1, 1})
	rb, _ := w.NewRigidbody(shape, mgl32.Vec3{1, 2, 3}, true)
	rb.SetSize(mgl32.Vec3{2, 0.5, 4})
	if shape.Refs() != 1 {
		t.Errorf("old shape should only be held by its creator, refs=%d", shape.Refs())
	}
	want := mgl32.Translate3D(1, 2, 3).Mul4(mgl32.Scale3D(2, 0.5, 4))
	if got := rb.Matrix(); !got.ApproxEqual(want) {
		t.Errorf("Matrix() = %v, want %v", got, want)
	}
	if rb.Friction() != 1 {
		t.Errorf("default friction = %v, want 1", rb.Friction())
	}
}

func TestBodyLimitAndReuse(t *testing.T) {
	w := newWorld(t)
	defer w.Shutdown()

	shape := NewBox(mgl32.Vec3{0.5, 0.5, 0.5})
	var last *Rigidbody
	for i := 0; i < MaxBodies; i++ {
		rb, err := w.NewRigidbody(shape, mgl32.Vec3{float32(i) * 2, 0, 0}, true)
		if err != nil {
			t.Fatalf("body %d: %v", i, err)
		}
		last = rb
	}
	if _, err := w.NewRigidbody(shape, mgl32.Vec3{}, true); !errors.Is(err, ErrTooManyBodies) {
		t.Fatalf("expected ErrTooManyBodies, got %v", err)
	}
	last.Destroy()
	rb, err := w.NewRigidbody(shape, mgl32.Vec3{}, true)
	if err != nil {
		t.Fatalf("slot should be reused: %v", err)
	}
	if rb.ID() != last.ID() {
		t.Errorf("expected reused id %d, got %d", last.ID(), rb.ID())
	}
}

func TestParallelIntegration(t *testing.T) {
	opts := DefaultOptions()
	opts.Workers = 4
	w := New(opts)
	if err := w.Init(); err != nil {
		t.Fatal(err)
	}
	defer w.Shutdown()

	shape := NewBox(mgl32.Vec3{1, 1, 1})
	bodies := make([]*Rigidbody, 300)
	for i := range bodies {
		bodies[i], _ = w.NewRigidbody(shape, mgl32.Vec3{float32(i) * 3, 0, 0}, false)
	}
	w.Update(0.51)
	want := bodies[0].Position()[1]
	if want >= 0 {
		t.Fatalf("bodies did not fall: %v", want)
	}
	for i, rb := range bodies {
		if got := rb.Position()[1]; got != want {
			t.Fatalf("body %d at y=%v, want %v", i, got, want)
		}
	}
}

func TestCastRay(t *testing.T) {
	w := newWorld(t)
	defer w.Shutdown()

	front, _ := w.NewRigidbody(NewBox(mgl32.Vec3{1, 1, 1}), mgl32.Vec3{0, 0, -5}, true)
	w.NewRigidbody(NewBox(mgl32.Vec3{1, 1, 1}), mgl32.Vec3{0, 0, -10}, true)

	hit, ok := w.CastRay(mgl32.Vec3{}, mgl32.Vec3{0, 0, -2}, 100)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Body != front.ID() {
		t.Errorf("hit body %d, want %d", hit.Body, front.ID())
	}
	if hit.Distance != 4 || hit.Normal != (mgl32.Vec3{0, 0, 1}) {
		t.Errorf("unexpected hit %+v", hit)
	}
	if _, ok := w.CastRay(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, 3); ok {
		t.Error("hit beyond max distance")
	}
	if _, ok := w.CastRay(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, 100); ok {
		t.Error("hit with a ray pointing away")
	}
}

func BenchmarkWorldUpdate(b *testing.B) {
	w := newWorld(b)
	defer w.Shutdown()
	w.NewRigidbody(NewBox(mgl32.Vec3{100, 1, 100}), mgl32.Vec3{}, true)
	shape := NewBox(mgl32.Vec3{0.5, 0.5, 0.5})
	for i := 0; i < 256; i++ {
		w.NewRigidbody(shape, mgl32.Vec3{float32(i%16) * 2, 2, float32(i/16) * 2}, false)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Update(1.0 / 60)
	}
}

func BenchmarkCastRay(b *testing.B) {
	w := newWorld(b)
	defer w.Shutdown()
	shape := NewBox(mgl32.Vec3{0.5, 0.5, 0.5})
	for i := 0; i < 256; i++ {
		w.NewRigidbody(shape, mgl32.Vec3{float32(i%16) * 2, 0, -float32(i/16) * 2}, true)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.CastRay(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}, 100)
	}
}
