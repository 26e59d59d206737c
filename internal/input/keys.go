package input

import (
	"strconv"
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"
)

var keyNames = map[string]glfw.Key{
	"space":         glfw.KeySpace,
	"'":             glfw.KeyApostrophe,
	",":             glfw.KeyComma,
	"-":             glfw.KeyMinus,
	".":             glfw.KeyPeriod,
	"/":             glfw.KeySlash,
	";":             glfw.KeySemicolon,
	"=":             glfw.KeyEqual,
	"[":             glfw.KeyLeftBracket,
	"\\":            glfw.KeyBackslash,
	"]":             glfw.KeyRightBracket,
	"`":             glfw.KeyGraveAccent,
	"escape":        glfw.KeyEscape,
	"return":        glfw.KeyEnter,
	"enter":         glfw.KeyEnter,
	"tab":           glfw.KeyTab,
	"backspace":     glfw.KeyBackspace,
	"insert":        glfw.KeyInsert,
	"delete":        glfw.KeyDelete,
	"right":         glfw.KeyRight,
	"left":          glfw.KeyLeft,
	"down":          glfw.KeyDown,
	"up":            glfw.KeyUp,
	"pageup":        glfw.KeyPageUp,
	"pagedown":      glfw.KeyPageDown,
	"home":          glfw.KeyHome,
	"end":           glfw.KeyEnd,
	"capslock":      glfw.KeyCapsLock,
	"scrolllock":    glfw.KeyScrollLock,
	"numlock":       glfw.KeyNumLock,
	"printscreen":   glfw.KeyPrintScreen,
	"pause":         glfw.KeyPause,
	"left shift":    glfw.KeyLeftShift,
	"left ctrl":     glfw.KeyLeftControl,
	"left alt":      glfw.KeyLeftAlt,
	"left gui":      glfw.KeyLeftSuper,
	"right shift":   glfw.KeyRightShift,
	"right ctrl":    glfw.KeyRightControl,
	"right alt":     glfw.KeyRightAlt,
	"right gui":     glfw.KeyRightSuper,
	"menu":          glfw.KeyMenu,
	"keypad 0":      glfw.KeyKP0,
	"keypad .":      glfw.KeyKPDecimal,
	"keypad /":      glfw.KeyKPDivide,
	"keypad *":      glfw.KeyKPMultiply,
	"keypad -":      glfw.KeyKPSubtract,
	"keypad +":      glfw.KeyKPAdd,
	"keypad enter":  glfw.KeyKPEnter,
	"keypad =":      glfw.KeyKPEqual,
	"shift":         glfw.KeyLeftShift,
	"ctrl":          glfw.KeyLeftControl,
	"alt":           glfw.KeyLeftAlt,
	"left control":  glfw.KeyLeftControl,
	"right control": glfw.KeyRightControl,
}

func init() {
	for c := 'a'; c <= 'z'; c++ {
		keyNames[string(c)] = glfw.KeyA + glfw.Key(c-'a')
	}
	for d := '0'; d <= '9'; d++ {
		keyNames[string(d)] = glfw.Key0 + glfw.Key(d-'0')
	}
	for d := 1; d <= 9; d++ {
		keyNames["keypad "+strconv.Itoa(d)] = glfw.KeyKP0 + glfw.Key(d)
	}
	for f := 1; f <= 25; f++ {
		keyNames["f"+strconv.Itoa(f)] = glfw.KeyF1 + glfw.Key(f-1)
	}
}

// KeyFromName resolves a human readable key name such as "W", "Space" or
// "Left Shift". Matching ignores case and surrounding spaces.
func KeyFromName(name string) (glfw.Key, bool) {
	k, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return glfw.KeyUnknown, false
	}
	return k, true
}

var buttonNames = map[string]Button{
	"left":   ButtonLeft,
	"right":  ButtonRight,
	"middle": ButtonMiddle,
}

// ButtonFromName resolves "left", "right" or "middle".
func ButtonFromName(name string) (Button, bool) {
	b, ok := buttonNames[strings.ToLower(strings.TrimSpace(name))]
	return b, ok
}
