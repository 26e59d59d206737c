package ui

import "sort"

// WindowFlags mirror the Dear ImGui window flag bits.
type WindowFlags int

const (
	WindowNoTitleBar WindowFlags = 1 << iota
	WindowNoResize
	WindowNoMove
	WindowNoScrollbar
	WindowNoScrollWithMouse
	WindowNoCollapse
	WindowAlwaysAutoResize
	WindowNoBackground
	WindowNoSavedSettings
	WindowNoMouseInputs
	WindowMenuBar
	WindowHorizontalScrollbar
	WindowNoFocusOnAppearing
	WindowNoBringToFrontOnFocus
	WindowAlwaysVerticalScrollbar
	WindowAlwaysHorizontalScrollbar
	WindowNoNavInputs
	WindowNoNavFocus
	WindowUnsavedDocument

	WindowPopup WindowFlags = 1 << 26

	WindowNoNav        = WindowNoNavInputs | WindowNoNavFocus
	WindowNoDecoration = WindowNoTitleBar | WindowNoResize | WindowNoScrollbar | WindowNoCollapse
	WindowNoInputs     = WindowNoMouseInputs | WindowNoNavInputs | WindowNoNavFocus
)

var windowFlagNames = map[string]WindowFlags{
	"Popup":                     WindowPopup,
	"NoTitleBar":                WindowNoTitleBar,
	"NoResize":                  WindowNoResize,
	"NoMove":                    WindowNoMove,
	"NoScrollbar":               WindowNoScrollbar,
	"NoScrollWithMouse":         WindowNoScrollWithMouse,
	"NoCollapse":                WindowNoCollapse,
	"AlwaysAutoResize":          WindowAlwaysAutoResize,
	"NoBackground":              WindowNoBackground,
	"NoSavedSettings":           WindowNoSavedSettings,
	"NoMouseInputs":             WindowNoMouseInputs,
	"MenuBar":                   WindowMenuBar,
	"HorizontalScrollbar":       WindowHorizontalScrollbar,
	"NoFocusOnAppearing":        WindowNoFocusOnAppearing,
	"NoBringToFrontOnFocus":     WindowNoBringToFrontOnFocus,
	"AlwaysVerticalScrollbar":   WindowAlwaysVerticalScrollbar,
	"AlwaysHorizontalScrollbar": WindowAlwaysHorizontalScrollbar,
	"NoNavInputs":               WindowNoNavInputs,
	"NoNavFocus":                WindowNoNavFocus,
	"UnsavedDocument":           WindowUnsavedDocument,
	"NoNav":                     WindowNoNav,
	"NoDecoration":              WindowNoDecoration,
	"NoInputs":                  WindowNoInputs,
}

// WindowFlagNames returns every named flag, sorted by name.
func WindowFlagNames() []string {
	names := make([]string, 0, len(windowFlagNames))
	for name := range windowFlagNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WindowFlag looks up a flag by its script name.
func WindowFlag(name string) (WindowFlags, bool) {
	f, ok := windowFlagNames[name]
	return f, ok
}

// Style is a built-in color preset.
type Style int

const (
	StyleDark Style = iota
	StyleLight
	StyleClassic
)

func (s Style) String() string {
	switch s {
	case StyleDark:
		return "dark"
	case StyleLight:
		return "light"
	case StyleClassic:
		return "classic"
	}
	return "unknown"
}
