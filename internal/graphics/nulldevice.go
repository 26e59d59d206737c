package graphics

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// DrawCall is an indexed draw recorded by NullDevice.
type DrawCall struct {
	Program uint32
	VAO     uint32
	Count   int32
}

// NullDevice is a Device without a graphics context. It hands out handles,
// remembers allocations and records draws, which makes it suitable for
// headless runs and tests.
type NullDevice struct {
	mu sync.Mutex

	next uint32

	Textures     map[uint32]TextureDesc
	Programs     map[uint32]bool
	Meshes       map[uint32]MeshBuffers
	Framebuffers map[uint32][2]int
	Uniforms     map[int32]interface{}
	Draws        []DrawCall

	BoundTextures    map[int]uint32
	BoundProgram     uint32
	BoundFramebuffer uint32
	ViewportSize     [2]int
	ClearColor       [3]float32
	DepthTest        bool

	locations map[string]int32
	// Resizes counts framebuffer storage reallocations.
	Resizes int
}

func NewNullDevice() *NullDevice {
	return &NullDevice{
		Textures:      make(map[uint32]TextureDesc),
		Programs:      make(map[uint32]bool),
		Meshes:        make(map[uint32]MeshBuffers),
		Framebuffers:  make(map[uint32][2]int),
		Uniforms:      make(map[int32]interface{}),
		BoundTextures: make(map[int]uint32),
		locations:     make(map[string]int32),
	}
}

func (d *NullDevice) handle() uint32 {
	d.next++
	return d.next
}

func (d *NullDevice) CreateTexture(desc TextureDesc, _ []byte) uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.handle()
	d.Textures[id] = desc
	return id
}

func (d *NullDevice) BindTexture(unit int, id uint32) {
	d.mu.Lock()
	d.BoundTextures[unit] = id
	d.mu.Unlock()
}

func (d *NullDevice) DeleteTexture(id uint32) {
	d.mu.Lock()
	delete(d.Textures, id)
	d.mu.Unlock()
}

func (d *NullDevice) CompileShader(ShaderStage, string) (uint32, string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.handle(), "", true
}

func (d *NullDevice) LinkProgram(_, _ uint32) (uint32, string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.handle()
	d.Programs[id] = true
	return id, "", true
}

func (d *NullDevice) DeleteShader(uint32) {}

func (d *NullDevice) UseProgram(id uint32) {
	d.mu.Lock()
	d.BoundProgram = id
	d.mu.Unlock()
}

func (d *NullDevice) DeleteProgram(id uint32) {
	d.mu.Lock()
	delete(d.Programs, id)
	d.mu.Unlock()
}

// UniformLocation gives every distinct name a stable location.
func (d *NullDevice) UniformLocation(_ uint32, name string) int32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	loc, ok := d.locations[name]
	if !ok {
		loc = int32(len(d.locations))
		d.locations[name] = loc
	}
	return loc
}

// Uniform returns the last value set for the named uniform.
func (d *NullDevice) Uniform(name string) (interface{}, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	loc, ok := d.locations[name]
	if !ok {
		return nil, false
	}
	v, ok := d.Uniforms[loc]
	return v, ok
}

func (d *NullDevice) setUniform(loc int32, v interface{}) {
	d.mu.Lock()
	d.Uniforms[loc] = v
	d.mu.Unlock()
}

func (d *NullDevice) UniformMat4(loc int32, m mgl32.Mat4) { d.setUniform(loc, m) }
func (d *NullDevice) UniformVec3(loc int32, v mgl32.Vec3) { d.setUniform(loc, v) }
func (d *NullDevice) UniformVec2(loc int32, v mgl32.Vec2) { d.setUniform(loc, v) }
func (d *NullDevice) UniformFloat(loc int32, f float32)   { d.setUniform(loc, f) }
func (d *NullDevice) UniformInt(loc int32, i int32)       { d.setUniform(loc, i) }

func (d *NullDevice) CreateMesh([]AttributeSection, []float32, []uint32) MeshBuffers {
	d.mu.Lock()
	defer d.mu.Unlock()
	b := MeshBuffers{VAO: d.handle(), VBO: d.handle(), IBO: d.handle()}
	d.Meshes[b.VAO] = b
	return b
}

func (d *NullDevice) DrawIndexed(vao uint32, count int32) {
	d.mu.Lock()
	d.Draws = append(d.Draws, DrawCall{Program: d.BoundProgram, VAO: vao, Count: count})
	d.mu.Unlock()
}

func (d *NullDevice) DeleteMesh(b MeshBuffers) {
	d.mu.Lock()
	delete(d.Meshes, b.VAO)
	d.mu.Unlock()
}

func (d *NullDevice) CreateFramebuffer(width, height int) (FramebufferTargets, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t := FramebufferTargets{FBO: d.handle(), Color: d.handle(), DepthStencil: d.handle()}
	d.Framebuffers[t.FBO] = [2]int{width, height}
	return t, true
}

func (d *NullDevice) ResizeFramebuffer(t FramebufferTargets, width, height int) {
	d.mu.Lock()
	d.Framebuffers[t.FBO] = [2]int{width, height}
	d.Resizes++
	d.mu.Unlock()
}

func (d *NullDevice) BindFramebuffer(fbo uint32) {
	d.mu.Lock()
	d.BoundFramebuffer = fbo
	d.mu.Unlock()
}

func (d *NullDevice) DeleteFramebuffer(t FramebufferTargets) {
	d.mu.Lock()
	delete(d.Framebuffers, t.FBO)
	d.mu.Unlock()
}

func (d *NullDevice) Viewport(width, height int) {
	d.mu.Lock()
	d.ViewportSize = [2]int{width, height}
	d.mu.Unlock()
}

func (d *NullDevice) Clear(r, g, b float32, depth bool) {
	d.mu.Lock()
	d.ClearColor = [3]float32{r, g, b}
	d.DepthTest = depth
	d.mu.Unlock()
}
