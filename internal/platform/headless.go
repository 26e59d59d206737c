package platform

import "rama/internal/logging"

// Headless stands in for a window when running without a display. It is
// always focused and never asks to close.
type Headless struct {
	Width, Height int
	Title         string
}

func NewHeadless(width, height int, title string) *Headless {
	return &Headless{Width: width, Height: height, Title: title}
}

func (h *Headless) PollEvents()           {}
func (h *Headless) SwapBuffers()          {}
func (h *Headless) ShouldClose() bool     { return false }
func (h *Headless) Focused() bool         { return true }
func (h *Headless) Size() (int, int)      { return h.Width, h.Height }
func (h *Headless) SetRelativeMouse(bool) {}
func (h *Headless) Close()                {}

func (h *Headless) SetTitle(title string) {
	h.Title = title
	logging.Debug("headless: title %q", title)
}

func (h *Headless) SetSize(width, height int) {
	h.Width, h.Height = width, height
}
