package graphics

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"rama/internal/logging"
)

// Shader is a linked vertex + fragment program.
type Shader struct {
	ID     uuid.UUID
	Label  string
	Linked bool

	program   uint32
	locations map[string]int32
	dev       Device
	tracker   *Tracker
}

// NewShader compiles and links the two stages. Compile and link failures are
// logged with the driver diagnostic and returned as an error, but a shader
// is always returned so callers can keep running with a non-functional
// program.
func (r *Resources) NewShader(vertexSrc, fragmentSrc string) (*Shader, error) {
	return r.newShader("inline", vertexSrc, fragmentSrc)
}

// NewShaderWithVersion prepends version (or the configured GLSL version
// when empty) to both stages before compiling.
func (r *Resources) NewShaderWithVersion(version, vertexSrc, fragmentSrc string) (*Shader, error) {
	if version == "" {
		version = r.GLSLVersion
	}
	src := ShaderSource{Vertex: vertexSrc, Fragment: fragmentSrc}.WithVersion(version)
	return r.newShader("inline", src.Vertex, src.Fragment)
}

// LoadShader reads a combined @vertex/@fragment file and compiles it with the
// configured GLSL version. Like NewShader it always returns a shader: when
// the file cannot be read the result is an unlinked program built from the
// bare version preamble.
func (r *Resources) LoadShader(path string) (*Shader, error) {
	src, err := readShaderFile(path)
	if err != nil {
		logging.Error("failed to load shader %s: %v", path, err)
		s, buildErr := r.newShader(path, r.GLSLVersion, r.GLSLVersion)
		s.Linked = false
		return s, errors.Join(err, buildErr)
	}
	src = src.WithVersion(r.GLSLVersion)
	return r.newShader(path, src.Vertex, src.Fragment)
}

func readShaderFile(path string) (ShaderSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return ShaderSource{}, fmt.Errorf("open shader %s: %w", path, err)
	}
	defer f.Close()

	src, err := ParseShaderSource(f)
	if err != nil {
		return ShaderSource{}, fmt.Errorf("read shader %s: %w", path, err)
	}
	return src, nil
}

func (r *Resources) newShader(label, vertexSrc, fragmentSrc string) (*Shader, error) {
	var errs []error

	vs, log, ok := r.Device.CompileShader(StageVertex, vertexSrc)
	if !ok {
		logging.Error("%s: vertex shader compilation failed: %s", label, log)
		errs = append(errs, fmt.Errorf("%w: vertex: %s", ErrShaderCompile, log))
	}
	fs, log, ok := r.Device.CompileShader(StageFragment, fragmentSrc)
	if !ok {
		logging.Error("%s: fragment shader compilation failed: %s", label, log)
		errs = append(errs, fmt.Errorf("%w: fragment: %s", ErrShaderCompile, log))
	}

	program, log, linked := r.Device.LinkProgram(vs, fs)
	if !linked {
		logging.Error("%s: shader program linking failed: %s", label, log)
		errs = append(errs, fmt.Errorf("%w: %s", ErrShaderLink, log))
	}
	r.Device.DeleteShader(vs)
	r.Device.DeleteShader(fs)

	s := &Shader{
		ID:        r.Tracker.register(KindShader, label),
		Label:     label,
		Linked:    linked,
		program:   program,
		locations: make(map[string]int32),
		dev:       r.Device,
		tracker:   r.Tracker,
	}
	return s, errors.Join(errs...)
}

// Handle returns the device program, 0 once destroyed.
func (s *Shader) Handle() uint32 {
	return s.program
}

// Bind makes the program current.
func (s *Shader) Bind() {
	if s.program == 0 {
		return
	}
	s.dev.UseProgram(s.program)
}

func (s *Shader) location(name string) int32 {
	if loc, ok := s.locations[name]; ok {
		return loc
	}
	loc := s.dev.UniformLocation(s.program, name)
	s.locations[name] = loc
	return loc
}

// SetCamera uploads the camera's view and projection as uView and
// uProjection.
func (s *Shader) SetCamera(cam Camera, vp Viewport) {
	s.SetMat4("uView", cam.View())
	s.SetMat4("uProjection", cam.Perspective(vp))
}

func (s *Shader) SetMat4(name string, m mgl32.Mat4) {
	s.dev.UniformMat4(s.location(name), m)
}

func (s *Shader) SetVec3(name string, v mgl32.Vec3) {
	s.dev.UniformVec3(s.location(name), v)
}

func (s *Shader) SetVec2(name string, v mgl32.Vec2) {
	s.dev.UniformVec2(s.location(name), v)
}

func (s *Shader) SetFloat(name string, f float32) {
	s.dev.UniformFloat(s.location(name), f)
}

func (s *Shader) SetInt(name string, i int32) {
	s.dev.UniformInt(s.location(name), i)
}

// SetTexture points a sampler uniform at the unit the texture was last bound to.
func (s *Shader) SetTexture(name string, t *Texture) {
	s.dev.UniformInt(s.location(name), int32(t.Unit))
}

// Destroy deletes the program. Further calls are ignored.
func (s *Shader) Destroy() {
	if s.program == 0 {
		return
	}
	s.dev.DeleteProgram(s.program)
	s.program = 0
	s.tracker.release(s.ID)
}
