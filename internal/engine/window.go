package engine

// Window is the OS window and its GL context.
type Window interface {
	PollEvents()
	SwapBuffers()
	ShouldClose() bool
	Focused() bool
	// Size is the drawable size in pixels.
	Size() (width, height int)
	SetTitle(title string)
	SetSize(width, height int)
	// SetRelativeMouse hides and captures the cursor so only motion is reported.
	SetRelativeMouse(enabled bool)
	Close()
}

// Game receives the engine lifecycle hooks. A negative Init status aborts
// startup.
type Game interface {
	Init() int
	Update()
	Draw()
	Shutdown()
}
