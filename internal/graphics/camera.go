package graphics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// World axes.
var (
	WorldForward = mgl32.Vec3{0, 0, -1}
	WorldUp      = mgl32.Vec3{0, 1, 0}
	WorldRight   = mgl32.Vec3{1, 0, 0}
)

// Viewport is the size of the surface a camera projects onto.
type Viewport struct {
	Width, Height float32
}

// Aspect returns width/height, or 1 for a degenerate viewport.
func (v Viewport) Aspect() float32 {
	if v.Height <= 0 || v.Width <= 0 {
		return 1
	}
	return v.Width / v.Height
}

// Camera provides view and projection matrices for rendering.
type Camera interface {
	View() mgl32.Mat4
	Perspective(vp Viewport) mgl32.Mat4
	Forward() mgl32.Vec3
	Right() mgl32.Vec3
	Up() mgl32.Vec3
	Update()
}

// BaseCamera supplies zero basis vectors and a no-op Update.
type BaseCamera struct{}

func (BaseCamera) Forward() mgl32.Vec3 { return mgl32.Vec3{} }
func (BaseCamera) Right() mgl32.Vec3   { return mgl32.Vec3{} }
func (BaseCamera) Up() mgl32.Vec3      { return mgl32.Vec3{} }
func (BaseCamera) Update()             {}

// SafeNormalize returns v scaled to unit length, or the zero vector when v
// has no length.
func SafeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l > 0 {
		return v.Mul(1 / l)
	}
	return mgl32.Vec3{}
}

// FPSCamera is a first person perspective camera. Angles are in degrees.
type FPSCamera struct {
	Pos   mgl32.Vec3
	Pitch float32
	Yaw   float32
	Roll  float32
	FOV   float32
	Near  float32
	Far   float32

	view    mgl32.Mat4
	forward mgl32.Vec3
	right   mgl32.Vec3
	up      mgl32.Vec3
}

func NewFPSCamera() *FPSCamera {
	c := &FPSCamera{FOV: 70, Near: 0.01, Far: 1000}
	c.Update()
	return c
}

// Update rebuilds the view matrix and basis vectors from position and angles.
func (c *FPSCamera) Update() {
	pitch := mgl32.HomogRotate3D(mgl32.DegToRad(c.Pitch), WorldRight)
	yaw := mgl32.HomogRotate3D(mgl32.DegToRad(c.Yaw), WorldUp)
	roll := mgl32.HomogRotate3D(mgl32.DegToRad(c.Roll), WorldForward)
	rotation := pitch.Mul4(yaw).Mul4(roll)

	c.view = rotation.Mul4(mgl32.Translate3D(-c.Pos[0], -c.Pos[1], -c.Pos[2]))

	// The rotation is orthonormal, so its inverse is its transpose.
	c.forward = SafeNormalize(rotation.Transpose().Mul4x1(WorldForward.Vec4(0)).Vec3())
	c.right = SafeNormalize(c.forward.Cross(WorldUp))
	c.up = SafeNormalize(c.forward.Cross(c.right))
}

func (c *FPSCamera) View() mgl32.Mat4    { return c.view }
func (c *FPSCamera) Forward() mgl32.Vec3 { return c.forward }
func (c *FPSCamera) Right() mgl32.Vec3   { return c.right }
func (c *FPSCamera) Up() mgl32.Vec3      { return c.up }

func (c *FPSCamera) Perspective(vp Viewport) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), vp.Aspect(), c.Near, c.Far)
}

// Camera2D is an orthographic camera in pixel units with the origin at the
// bottom left.
type Camera2D struct {
	BaseCamera
	Pos  mgl32.Vec2
	Zoom float32
}

func NewCamera2D() *Camera2D {
	return &Camera2D{Zoom: 1}
}

func (c *Camera2D) View() mgl32.Mat4 {
	return mgl32.Translate3D(c.Pos[0], c.Pos[1], 0).Mul4(mgl32.Scale3D(c.Zoom, c.Zoom, c.Zoom))
}

func (c *Camera2D) Perspective(vp Viewport) mgl32.Mat4 {
	return mgl32.Ortho(0, vp.Width, 0, vp.Height, 0, 1000)
}

// CameraKind names the concrete camera variant.
type CameraKind int

const (
	CameraKindNone CameraKind = iota
	CameraKindFPS
	CameraKind2D
	CameraKindCustom
)

// KindOf reports which variant c is.
func KindOf(c Camera) CameraKind {
	switch c.(type) {
	case nil:
		return CameraKindNone
	case *FPSCamera:
		return CameraKindFPS
	case *Camera2D:
		return CameraKind2D
	default:
		return CameraKindCustom
	}
}

func (k CameraKind) String() string {
	switch k {
	case CameraKindFPS:
		return "FPSCamera"
	case CameraKind2D:
		return "Camera2D"
	case CameraKindCustom:
		return "custom"
	}
	return "none"
}
