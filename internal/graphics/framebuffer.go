package graphics

import (
	"github.com/google/uuid"

	"rama/internal/logging"
)

// Framebuffer is an offscreen color + depth/stencil render target.
type Framebuffer struct {
	ID        uuid.UUID
	DepthTest bool

	width, height int
	targets       FramebufferTargets
	dev           Device
	tracker       *Tracker
}

// NewFramebuffer allocates a 1x1 target. An incomplete framebuffer is logged
// and returned anyway.
func (r *Resources) NewFramebuffer(depthTest bool) *Framebuffer {
	targets, complete := r.Device.CreateFramebuffer(1, 1)
	if !complete {
		logging.Error("framebuffer incomplete")
	}
	return &Framebuffer{
		ID:        r.Tracker.register(KindFramebuffer, "framebuffer"),
		DepthTest: depthTest,
		width:     1,
		height:    1,
		targets:   targets,
		dev:       r.Device,
		tracker:   r.Tracker,
	}
}

// Bind directs rendering into the framebuffer until Unbind.
func (f *Framebuffer) Bind() {
	f.dev.BindFramebuffer(f.targets.FBO)
}

// Unbind restores the default framebuffer.
func (f *Framebuffer) Unbind() {
	f.dev.BindFramebuffer(0)
}

// Clear clears the bound target to the color, including depth when depth
// testing is enabled.
func (f *Framebuffer) Clear(r, g, b float32) {
	f.dev.Clear(r, g, b, f.DepthTest)
}

// UpdateSize resizes the targets to the panel size, clamping each side to at
// least 1. Storage is only reallocated when the clamped size changes.
func (f *Framebuffer) UpdateSize(width, height float32) {
	w, h := max(1, int(width)), max(1, int(height))
	if w == f.width && h == f.height {
		return
	}
	f.width, f.height = w, h
	f.dev.ResizeFramebuffer(f.targets, w, h)
}

// Size returns the current target size in pixels.
func (f *Framebuffer) Size() (int, int) {
	return f.width, f.height
}

// ColorTexture returns the device handle of the color target.
func (f *Framebuffer) ColorTexture() uint32 {
	return f.targets.Color
}

// Destroy releases the targets. Further calls are ignored.
func (f *Framebuffer) Destroy() {
	if f.targets.FBO == 0 {
		return
	}
	f.dev.DeleteFramebuffer(f.targets)
	f.targets = FramebufferTargets{}
	f.tracker.release(f.ID)
}
