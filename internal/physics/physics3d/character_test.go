package physics3d

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCharacterGroundedAndSlide(t *testing.T) {
	w := newWorld(t)
	defer w.Shutdown()

	w.NewRigidbody(NewBox(mgl32.Vec3{10, 0.5, 10}), mgl32.Vec3{}, true)
	c, err := w.NewCharacterController(mgl32.Vec3{0, 3, 0})
	if err != nil {
		t.Fatal(err)
	}

	c.MoveAndSlide(mgl32.Vec3{0, -60, 0}, 1.0/60)
	if !c.IsGrounded() {
		t.Fatal("character should land on the floor")
	}
	if y := c.Pos[1]; !near(y, 2.5, 1e-4) {
		t.Fatalf("expected to stand at y=2.5, got %v", y)
	}
	if c.Velocity()[1] != 0 {
		t.Errorf("vertical velocity should be cancelled, got %v", c.Velocity()[1])
	}

	c.MoveAndSlide(mgl32.Vec3{1, 0, 0}, 1)
	if !near(c.Pos[0], 1, 1e-5) || !near(c.Pos[1], 2.5, 1e-4) {
		t.Errorf("unexpected position after sliding: %v", c.Pos)
	}
	if !c.IsGrounded() {
		t.Error("character should stay grounded while walking")
	}
}

func TestCharacterBlockedByWall(t *testing.T) {
	w := newWorld(t)
	defer w.Shutdown()

	w.NewRigidbody(NewBox(mgl32.Vec3{0.5, 5, 5}), mgl32.Vec3{3, 0, 0}, true)
	c, _ := w.NewCharacterController(mgl32.Vec3{})
	c.MoveAndSlide(mgl32.Vec3{10, 0, 1}, 1)
	if !near(c.Pos[0], 1.5, 1e-5) {
		t.Errorf("expected to stop against the wall at x=1.5, got %v", c.Pos[0])
	}
	if !near(c.Pos[2], 1, 1e-5) {
		t.Errorf("expected to slide along z, got %v", c.Pos[2])
	}
}

func TestCharacterSticksToLowerFloor(t *testing.T) {
	w := newWorld(t)
	defer w.Shutdown()

	w.NewRigidbody(NewBox(mgl32.Vec3{10, 0.5, 10}), mgl32.Vec3{}, true)
	w.NewRigidbody(NewBox(mgl32.Vec3{10, 0.5, 10}), mgl32.Vec3{20, -0.3, 0}, true)
	c, _ := w.NewCharacterController(mgl32.Vec3{8.5, 2.6, 0})
	c.MoveAndSlide(mgl32.Vec3{0, -6, 0}, 1.0/60)
	if !c.IsGrounded() {
		t.Fatal("character should start grounded")
	}

	c.MoveAndSlide(mgl32.Vec3{3, 0, 0}, 1)
	if !c.IsGrounded() {
		t.Fatal("character should stick to the lower floor")
	}
	if !near(c.Pos[1], 2.2, 1e-4) {
		t.Errorf("expected y=2.2 on the lower floor, got %v", c.Pos[1])
	}
}

func TestCharacterInvalidAfterShutdown(t *testing.T) {
	w := newWorld(t)
	c, _ := w.NewCharacterController(mgl32.Vec3{})
	w.Shutdown()
	if c.Valid() {
		t.Fatal("character valid after Shutdown")
	}
	pos := c.Pos
	c.MoveAndSlide(mgl32.Vec3{1, 0, 0}, 1)
	if c.Pos != pos {
		t.Error("invalid character moved")
	}
	c.Destroy()
}
