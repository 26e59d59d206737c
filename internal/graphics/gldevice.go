package graphics

import (
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// GLDevice implements Device on an OpenGL 4.1 core context. gl.Init must have
// run on the current context before use.
type GLDevice struct{}

func NewGLDevice() *GLDevice {
	return &GLDevice{}
}

func glFormat(f TextureFormat) uint32 {
	switch f {
	case FormatRGB:
		return gl.RGB
	case FormatRGBA:
		return gl.RGBA
	default:
		return gl.RG
	}
}

func glFilter(f Filter) int32 {
	if f == FilterLinear {
		return gl.LINEAR
	}
	return gl.NEAREST
}

func bytePtr(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return gl.Ptr(b)
}

func (d *GLDevice) CreateTexture(desc TextureDesc, pixels []byte) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter(desc.Filter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter(desc.Filter))

	// RG and RGB rows are not 4 byte aligned.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	format := glFormat(desc.Format)
	gl.TexImage2D(gl.TEXTURE_2D, 0, int32(format), int32(desc.Width), int32(desc.Height), 0,
		format, gl.UNSIGNED_BYTE, bytePtr(pixels))

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id
}

func (d *GLDevice) BindTexture(unit int, id uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, id)
}

func (d *GLDevice) DeleteTexture(id uint32) {
	gl.DeleteTextures(1, &id)
}

func glStage(s ShaderStage) uint32 {
	if s == StageVertex {
		return gl.VERTEX_SHADER
	}
	return gl.FRAGMENT_SHADER
}

func (d *GLDevice) CompileShader(stage ShaderStage, source string) (uint32, string, bool) {
	shader := gl.CreateShader(glStage(stage))
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logLength = min(logLength, MaxInfoLog)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		return shader, strings.TrimRight(log, "\x00"), false
	}
	return shader, "", true
}

func (d *GLDevice) LinkProgram(vertex, fragment uint32) (uint32, string, bool) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertex)
	gl.AttachShader(program, fragment)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logLength = min(logLength, MaxInfoLog)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		return program, strings.TrimRight(log, "\x00"), false
	}
	return program, "", true
}

func (d *GLDevice) DeleteShader(id uint32) {
	gl.DeleteShader(id)
}

func (d *GLDevice) UseProgram(id uint32) {
	gl.UseProgram(id)
}

func (d *GLDevice) DeleteProgram(id uint32) {
	gl.DeleteProgram(id)
}

func (d *GLDevice) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *GLDevice) UniformMat4(loc int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

func (d *GLDevice) UniformVec3(loc int32, v mgl32.Vec3) {
	gl.Uniform3fv(loc, 1, &v[0])
}

func (d *GLDevice) UniformVec2(loc int32, v mgl32.Vec2) {
	gl.Uniform2fv(loc, 1, &v[0])
}

func (d *GLDevice) UniformFloat(loc int32, f float32) {
	gl.Uniform1f(loc, f)
}

func (d *GLDevice) UniformInt(loc int32, i int32) {
	gl.Uniform1i(loc, i)
}

func (d *GLDevice) CreateMesh(layout []AttributeSection, vertices []float32, indices []uint32) MeshBuffers {
	var b MeshBuffers
	gl.GenVertexArrays(1, &b.VAO)
	gl.BindVertexArray(b.VAO)

	gl.GenBuffers(1, &b.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.VBO)
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	}
	for _, s := range layout {
		gl.EnableVertexAttribArray(s.Slot)
		gl.VertexAttribPointerWithOffset(s.Slot, s.Components, gl.FLOAT, false, 0, uintptr(s.Offset))
	}

	gl.GenBuffers(1, &b.IBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.IBO)
	if len(indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)
	return b
}

func (d *GLDevice) DrawIndexed(vao uint32, count int32) {
	gl.BindVertexArray(vao)
	gl.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
}

func (d *GLDevice) DeleteMesh(b MeshBuffers) {
	gl.DeleteBuffers(1, &b.IBO)
	gl.DeleteBuffers(1, &b.VBO)
	gl.DeleteVertexArrays(1, &b.VAO)
}

func (d *GLDevice) CreateFramebuffer(width, height int) (FramebufferTargets, bool) {
	var t FramebufferTargets
	gl.GenFramebuffers(1, &t.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.FBO)

	gl.GenTextures(1, &t.Color)
	gl.GenRenderbuffers(1, &t.DepthStencil)
	d.allocateTargets(t, width, height)

	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.Color, 0)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.RENDERBUFFER, t.DepthStencil)

	complete := gl.CheckFramebufferStatus(gl.FRAMEBUFFER) == gl.FRAMEBUFFER_COMPLETE
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return t, complete
}

func (d *GLDevice) allocateTargets(t FramebufferTargets, width, height int) {
	gl.BindTexture(gl.TEXTURE_2D, t.Color)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB, int32(width), int32(height), 0, gl.RGB, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.BindRenderbuffer(gl.RENDERBUFFER, t.DepthStencil)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH24_STENCIL8, int32(width), int32(height))
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
}

func (d *GLDevice) ResizeFramebuffer(t FramebufferTargets, width, height int) {
	d.allocateTargets(t, width, height)
}

func (d *GLDevice) BindFramebuffer(fbo uint32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
}

func (d *GLDevice) DeleteFramebuffer(t FramebufferTargets) {
	gl.DeleteFramebuffers(1, &t.FBO)
	gl.DeleteTextures(1, &t.Color)
	gl.DeleteRenderbuffers(1, &t.DepthStencil)
}

func (d *GLDevice) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (d *GLDevice) Clear(r, g, b float32, depth bool) {
	gl.ClearColor(r, g, b, 1)
	if depth {
		gl.Enable(gl.DEPTH_TEST)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		return
	}
	gl.Disable(gl.DEPTH_TEST)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}
