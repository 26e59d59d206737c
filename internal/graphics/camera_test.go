package graphics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-4

func TestCamera2DOrthographicBounds(t *testing.T) {
	cam := NewCamera2D()
	proj := cam.Perspective(Viewport{Width: 800, Height: 600})

	tests := []struct {
		name  string
		point mgl32.Vec4
		want  mgl32.Vec3
	}{
		{"bottom left near", mgl32.Vec4{0, 0, 0, 1}, mgl32.Vec3{-1, -1, -1}},
		{"bottom right near", mgl32.Vec4{800, 0, 0, 1}, mgl32.Vec3{1, -1, -1}},
		{"top left near", mgl32.Vec4{0, 600, 0, 1}, mgl32.Vec3{-1, 1, -1}},
		{"top right far", mgl32.Vec4{800, 600, -1000, 1}, mgl32.Vec3{1, 1, 1}},
		{"center", mgl32.Vec4{400, 300, -500, 1}, mgl32.Vec3{0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clip := proj.Mul4x1(tt.point)
			ndc := clip.Vec3().Mul(1 / clip.W())
			if !ndc.ApproxEqualThreshold(tt.want, eps) {
				t.Errorf("ndc = %v, want %v", ndc, tt.want)
			}
		})
	}
}

func TestCamera2DView(t *testing.T) {
	cam := NewCamera2D()
	cam.Pos = mgl32.Vec2{10, 20}
	cam.Zoom = 2

	got := cam.View().Mul4x1(mgl32.Vec4{1, 1, 0, 1})
	if want := (mgl32.Vec4{12, 22, 0, 1}); !got.ApproxEqualThreshold(want, eps) {
		t.Errorf("view * p = %v, want %v", got, want)
	}
	if cam.Forward() != (mgl32.Vec3{}) || cam.Up() != (mgl32.Vec3{}) {
		t.Error("2D camera basis vectors default to zero")
	}
}

func TestFPSCameraBasis(t *testing.T) {
	tests := []struct {
		name        string
		pitch, yaw  float32
		wantForward mgl32.Vec3
	}{
		{"identity", 0, 0, mgl32.Vec3{0, 0, -1}},
		{"yaw 90", 0, 90, mgl32.Vec3{1, 0, 0}},
		{"yaw -90", 0, -90, mgl32.Vec3{-1, 0, 0}},
		{"pitch 30", 30, 0, mgl32.Vec3{0, -0.5, -0.8660254}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewFPSCamera()
			cam.Pitch, cam.Yaw = tt.pitch, tt.yaw
			cam.Update()

			f, r, u := cam.Forward(), cam.Right(), cam.Up()
			if !f.ApproxEqualThreshold(tt.wantForward, eps) {
				t.Errorf("forward = %v, want %v", f, tt.wantForward)
			}
			for name, v := range map[string]mgl32.Vec3{"forward": f, "right": r, "up": u} {
				if l := v.Len(); l < 1-eps || l > 1+eps {
					t.Errorf("%s not unit length: %v", name, l)
				}
			}
			if d := f.Dot(r); d > eps || d < -eps {
				t.Errorf("forward.right = %v", d)
			}
			if d := f.Dot(u); d > eps || d < -eps {
				t.Errorf("forward.up = %v", d)
			}
		})
	}
}

func TestFPSCameraViewTranslatesPosition(t *testing.T) {
	cam := NewFPSCamera()
	cam.Pos = mgl32.Vec3{3, 4, 5}
	cam.Update()

	eye := cam.View().Mul4x1(cam.Pos.Vec4(1))
	if !eye.ApproxEqualThreshold(mgl32.Vec4{0, 0, 0, 1}, eps) {
		t.Errorf("camera position in view space = %v, want origin", eye)
	}
	if cam.FOV != 70 || cam.Near != 0.01 || cam.Far != 1000 {
		t.Errorf("defaults = %v %v %v", cam.FOV, cam.Near, cam.Far)
	}
	want := mgl32.Perspective(mgl32.DegToRad(70), 2, 0.01, 1000)
	if got := cam.Perspective(Viewport{Width: 200, Height: 100}); !got.ApproxEqualThreshold(want, eps) {
		t.Errorf("perspective = %v, want %v", got, want)
	}
}

func TestFPSCameraLookingStraightUp(t *testing.T) {
	cam := NewFPSCamera()
	cam.Pitch = -90
	cam.Update()
	// forward is parallel to world up: right degenerates to zero, never NaN
	for _, v := range []mgl32.Vec3{cam.Forward(), cam.Right(), cam.Up()} {
		for _, c := range v {
			if c != c {
				t.Fatalf("NaN in basis: %v", v)
			}
		}
	}
}

func TestKindOf(t *testing.T) {
	if KindOf(NewFPSCamera()) != CameraKindFPS || KindOf(NewCamera2D()) != CameraKind2D || KindOf(nil) != CameraKindNone {
		t.Error("unexpected camera kind")
	}
	if CameraKind2D.String() != "Camera2D" {
		t.Errorf("String = %q", CameraKind2D.String())
	}
}
