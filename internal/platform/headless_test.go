package platform

import (
	"testing"

	"rama/internal/engine"
)

var (
	_ engine.Window = (*Headless)(nil)
	_ engine.Window = (*Window)(nil)
)

func TestHeadless(t *testing.T) {
	h := NewHeadless(640, 480, "rama")
	if w, ht := h.Size(); w != 640 || ht != 480 {
		t.Errorf("Size() = %d, %d", w, ht)
	}
	h.SetSize(10, 20)
	h.SetTitle("next")
	if w, ht := h.Size(); w != 10 || ht != 20 || h.Title != "next" {
		t.Errorf("after updates: %+v", h)
	}
	if !h.Focused() || h.ShouldClose() {
		t.Error("headless window must stay focused and open")
	}
}
