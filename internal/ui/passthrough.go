package ui

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"rama/internal/graphics"
	"rama/internal/logging"
)

const blitSource = `@vertex
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aUV;
uniform vec2 uUV0;
uniform vec2 uUV1;
out vec2 vUV;
void main() {
    vUV = mix(uUV0, uUV1, aUV);
    gl_Position = vec4(aPos.xy, 0.0, 1.0);
}
@fragment
in vec2 vUV;
uniform sampler2D uTexture;
out vec4 FragColor;
void main() {
    FragColor = texture(uTexture, vUV);
}
`

// PassthroughVersion is what Version reports for the passthrough overlay.
const PassthroughVersion = "passthrough-1"

// FocusFunc reports whether the OS window has input focus.
type FocusFunc func() bool

type viewImage struct {
	texture  uint32
	size     mgl32.Vec2
	uv0, uv1 mgl32.Vec2
}

// Passthrough is an Overlay whose game view covers the whole window. Its
// widgets draw nothing and return their inputs unchanged; it only tracks
// that begin/end calls stay balanced.
type Passthrough struct {
	res     *graphics.Resources
	focused FocusFunc

	shader *graphics.Shader
	quad   *graphics.Mesh

	width, height int
	inView        bool
	pending       *viewImage

	windows, children, menus, menuBars int

	style Style
}

// NewPassthrough builds the blit pipeline used to composite the game view.
func NewPassthrough(res *graphics.Resources, focused FocusFunc) (*Passthrough, error) {
	src, err := graphics.ParseShaderSource(strings.NewReader(blitSource))
	if err != nil {
		return nil, err
	}
	shader, err := res.NewShaderWithVersion("", src.Vertex, src.Fragment)
	if err != nil {
		shader.Destroy()
		return nil, err
	}
	if focused == nil {
		focused = func() bool { return true }
	}
	return &Passthrough{
		res:     res,
		focused: focused,
		shader:  shader,
		quad:    res.NewMesh("overlay quad", quadData()),
	}, nil
}

func quadData() graphics.MeshData {
	return graphics.MeshData{
		Positions: []mgl32.Vec3{{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0}},
		UVs:       []mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		Indices:   []uint32{0, 1, 2, 2, 3, 0},
	}
}

func (p *Passthrough) NewFrame(displayWidth, displayHeight int) {
	if p.windows|p.children|p.menus|p.menuBars != 0 {
		logging.Warn("ui: unbalanced widget calls last frame (windows=%d children=%d menus=%d menubars=%d)",
			p.windows, p.children, p.menus, p.menuBars)
		p.windows, p.children, p.menus, p.menuBars = 0, 0, 0, 0
	}
	p.width, p.height = displayWidth, displayHeight
	p.pending = nil
}

func (p *Passthrough) BeginGameView() Panel {
	p.inView = true
	return Panel{Width: float32(p.width), Height: float32(p.height), Focused: p.focused()}
}

func (p *Passthrough) Image(texture uint32, size, uv0, uv1 mgl32.Vec2) {
	if !p.inView {
		logging.Warn("ui: Image called outside the game view")
		return
	}
	p.pending = &viewImage{texture: texture, size: size, uv0: uv0, uv1: uv1}
}

func (p *Passthrough) EndGameView() {
	p.inView = false
}

// Render draws the game view image over the whole display.
func (p *Passthrough) Render() {
	img := p.pending
	if img == nil || img.texture == 0 {
		return
	}
	p.res.Device.Viewport(p.width, p.height)
	p.shader.Bind()
	p.res.Device.BindTexture(0, img.texture)
	p.shader.SetInt("uTexture", 0)
	p.shader.SetVec2("uUV0", img.uv0)
	p.shader.SetVec2("uUV1", img.uv1)
	p.quad.Draw()
	p.pending = nil
}

// The passthrough overlay never draws widgets, so it never wants input.
func (p *Passthrough) WantCaptureMouse() bool    { return false }
func (p *Passthrough) WantCaptureKeyboard() bool { return false }

func (p *Passthrough) Destroy() {
	p.shader.Destroy()
	p.quad.Destroy()
}

func (p *Passthrough) Begin(string, WindowFlags) bool {
	p.windows++
	return true
}

func (p *Passthrough) End() {
	p.windows = p.closeScope("End", p.windows)
}

func (p *Passthrough) BeginChild(string, mgl32.Vec2, WindowFlags) bool {
	p.children++
	return true
}

func (p *Passthrough) EndChild() {
	p.children = p.closeScope("EndChild", p.children)
}

func (p *Passthrough) closeScope(name string, depth int) int {
	if depth == 0 {
		logging.Warn("ui: %s without a matching begin", name)
		return 0
	}
	return depth - 1
}

func (p *Passthrough) Text(string)                            {}
func (p *Passthrough) Button(string, mgl32.Vec2) bool         { return false }
func (p *Passthrough) SmallButton(string) bool                { return false }
func (p *Passthrough) Checkbox(_ string, value bool) bool     { return value }
func (p *Passthrough) Bullet()                                {}
func (p *Passthrough) InputText(_, text string, _ int) string { return text }
func (p *Passthrough) SameLine(float32, float32)              {}
func (p *Passthrough) NewLine()                               {}
func (p *Passthrough) Separator()                             {}
func (p *Passthrough) Spacing()                               {}

func (p *Passthrough) DragFloat(string, []float32, float32, float32, float32) bool {
	return false
}

// BeginMainMenuBar reports false: there is no menu bar to open.
func (p *Passthrough) BeginMainMenuBar() bool {
	return false
}

func (p *Passthrough) EndMainMenuBar() {
	p.menuBars = p.closeScope("EndMainMenuBar", p.menuBars)
}

func (p *Passthrough) BeginMenu(string, bool) bool {
	return false
}

func (p *Passthrough) EndMenu() {
	p.menus = p.closeScope("EndMenu", p.menus)
}

func (p *Passthrough) MenuItem(string, string, bool) bool {
	return false
}

// The diagnostic windows have nothing to show without a widget renderer.
func (p *Passthrough) ShowDemoWindow()    {}
func (p *Passthrough) ShowMetricsWindow() {}
func (p *Passthrough) ShowAboutWindow()   {}
func (p *Passthrough) ShowUserGuide()     {}

// Version names the overlay implementation.
func (p *Passthrough) Version() string {
	return PassthroughVersion
}

// StyleColors remembers the preset so Style can report it.
func (p *Passthrough) StyleColors(style Style) {
	p.style = style
}

func (p *Passthrough) Style() Style {
	return p.style
}

// Balanced reports whether every begin seen this frame has been closed.
func (p *Passthrough) Balanced() bool {
	return p.windows|p.children|p.menus|p.menuBars == 0
}
