package scripting

import (
	"path/filepath"

	lua "github.com/yuin/gopher-lua"

	"rama/internal/logging"
)

// Game drives the script lifecycle hooks init, update, draw and shutdown.
type Game struct {
	bridge  *Bridge
	path    string
	watcher *Watcher
	// lastErr suppresses repeating the same hook error every frame.
	lastErr string
}

// NewGame prepares the script at path. With hotReload the script directory
// is watched and changed files are re-run before the next update.
func NewGame(b *Bridge, path string, hotReload bool) *Game {
	g := &Game{bridge: b, path: b.ctx.Path(path)}
	if hotReload {
		w, err := NewWatcher(filepath.Dir(g.path))
		if err != nil {
			logging.Warn("hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g
}

// Init runs the script and then its init hook. A load failure reports -1;
// a missing init hook reports 0.
func (g *Game) Init() int {
	if err := g.bridge.Load(g.path); err != nil {
		return -1
	}
	fn := g.bridge.lookup("init")
	if !fn.Valid() {
		return 0
	}
	ret, err := fn.Call()
	if err != nil {
		logging.Error("Lua error: %v", err)
		return -1
	}
	if n, ok := ret.(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

func (g *Game) Update() {
	g.reload()
	g.hook("update")
}

func (g *Game) Draw() {
	g.hook("draw")
}

func (g *Game) Shutdown() {
	g.hook("shutdown")
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			logging.Warn("script watcher close: %v", err)
		}
		g.watcher = nil
	}
}

// reload re-runs every script that changed since the last frame. Globals
// defined by the new chunk replace the old ones; state kept in other
// globals survives.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	for _, path := range g.watcher.Pending() {
		if err := g.bridge.Load(path); err != nil {
			continue
		}
		logging.Info("reloaded %s", filepath.Base(path))
		g.lastErr = ""
	}
}

func (g *Game) hook(name string) {
	fn := g.bridge.lookup(name)
	if !fn.Valid() {
		g.bridge.warnOnce("hook."+name, "Lua: \""+name+"\" function does not exist")
		return
	}
	if _, err := fn.Call(); err != nil {
		if msg := err.Error(); msg != g.lastErr {
			g.lastErr = msg
			logging.Error("Lua error: %v", err)
		}
	}
}
