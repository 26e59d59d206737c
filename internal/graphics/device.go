// Package graphics holds the render resources (textures, shaders, meshes,
// sprites), the cameras and the offscreen framebuffer. Every call into the
// graphics API goes through a Device.
package graphics

import "github.com/go-gl/mathgl/mgl32"

// TextureFormat is the pixel layout of uploaded texture data.
type TextureFormat int

const (
	FormatRG TextureFormat = iota
	FormatRGB
	FormatRGBA
)

// FormatForChannels picks the upload format for a channel count. Anything
// other than 3 or 4 channels is uploaded as RG.
func FormatForChannels(channels int) TextureFormat {
	switch channels {
	case 3:
		return FormatRGB
	case 4:
		return FormatRGBA
	default:
		return FormatRG
	}
}

// Channels is the number of bytes per pixel for the format.
func (f TextureFormat) Channels() int {
	switch f {
	case FormatRGB:
		return 3
	case FormatRGBA:
		return 4
	default:
		return 2
	}
}

type Filter int

const (
	FilterNearest Filter = iota
	FilterLinear
)

// TextureDesc describes a 2D texture allocation. Wrapping is always
// clamp-to-edge.
type TextureDesc struct {
	Width, Height int
	Format        TextureFormat
	Filter        Filter
}

type ShaderStage int

const (
	StageVertex ShaderStage = iota
	StageFragment
)

func (s ShaderStage) String() string {
	if s == StageVertex {
		return "vertex"
	}
	return "fragment"
}

// AttributeSection locates one vertex attribute inside a section-packed
// vertex buffer.
type AttributeSection struct {
	Slot       uint32
	Components int32
	Offset     int // bytes from the start of the buffer
}

// MeshBuffers are the device objects backing a Mesh.
type MeshBuffers struct {
	VAO, VBO, IBO uint32
}

// FramebufferTargets are the device objects backing a Framebuffer.
type FramebufferTargets struct {
	FBO          uint32
	Color        uint32
	DepthStencil uint32
}

// Device submits work to the graphics API. Handles are opaque and 0 means
// "none". All methods must be called from the thread owning the context.
type Device interface {
	CreateTexture(desc TextureDesc, pixels []byte) uint32
	BindTexture(unit int, id uint32)
	DeleteTexture(id uint32)

	// CompileShader returns the diagnostic log, truncated to MaxInfoLog bytes,
	// when compilation fails. A failed shader still gets a handle.
	CompileShader(stage ShaderStage, source string) (id uint32, log string, ok bool)
	LinkProgram(vertex, fragment uint32) (id uint32, log string, ok bool)
	DeleteShader(id uint32)
	UseProgram(id uint32)
	DeleteProgram(id uint32)
	UniformLocation(program uint32, name string) int32
	UniformMat4(loc int32, m mgl32.Mat4)
	UniformVec3(loc int32, v mgl32.Vec3)
	UniformVec2(loc int32, v mgl32.Vec2)
	UniformFloat(loc int32, f float32)
	UniformInt(loc int32, i int32)

	CreateMesh(layout []AttributeSection, vertices []float32, indices []uint32) MeshBuffers
	DrawIndexed(vao uint32, count int32)
	DeleteMesh(b MeshBuffers)

	// CreateFramebuffer reports false when the container is incomplete.
	CreateFramebuffer(width, height int) (FramebufferTargets, bool)
	ResizeFramebuffer(t FramebufferTargets, width, height int)
	BindFramebuffer(fbo uint32)
	DeleteFramebuffer(t FramebufferTargets)

	Viewport(width, height int)
	// Clear clears color, and depth when depth is set. It also switches
	// depth testing on or off to match.
	Clear(r, g, b float32, depth bool)
}

// MaxInfoLog bounds the compile and link diagnostics kept from the driver.
const MaxInfoLog = 512
