// Package ui holds the immediate-mode overlay the frame loop draws the game
// view into, and the widget surface scripts build tool windows with.
package ui

import "github.com/go-gl/mathgl/mgl32"

// Panel is the game view region for the current frame.
type Panel struct {
	Width, Height float32
	// Focused reports whether the view owns input focus.
	Focused bool
}

// Overlay brackets each frame around the game view.
type Overlay interface {
	NewFrame(displayWidth, displayHeight int)
	BeginGameView() Panel
	// Image places a texture in the game view, uv0/uv1 select its corners.
	Image(texture uint32, size, uv0, uv1 mgl32.Vec2)
	EndGameView()
	Render()
	WantCaptureMouse() bool
	WantCaptureKeyboard() bool
	Destroy()
}

// Widgets is the retained-nothing widget API exposed to scripts.
type Widgets interface {
	Begin(name string, flags WindowFlags) bool
	End()
	BeginChild(id string, size mgl32.Vec2, flags WindowFlags) bool
	EndChild()

	Text(text string)
	Button(label string, size mgl32.Vec2) bool
	SmallButton(label string) bool
	Checkbox(label string, value bool) bool
	Bullet()
	DragFloat(label string, values []float32, speed, min, max float32) bool
	InputText(label, text string, flags int) string

	SameLine(offsetFromStart, spacing float32)
	NewLine()
	Separator()
	Spacing()

	BeginMainMenuBar() bool
	EndMainMenuBar()
	BeginMenu(label string, enabled bool) bool
	EndMenu()
	MenuItem(label, shortcut string, selected bool) bool

	// Built-in diagnostic windows.
	ShowDemoWindow()
	ShowMetricsWindow()
	ShowAboutWindow()
	ShowUserGuide()

	Version() string
	StyleColors(style Style)
}
