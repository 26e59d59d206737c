package scripting

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	lua "github.com/yuin/gopher-lua"
)

func writeScript(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGameInitStatus(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want int
	}{
		{"no init", `x = 1`, 0},
		{"zero", `function init() return 0 end`, 0},
		{"nothing returned", `function init() end`, 0},
		{"negative", `function init() return -1 end`, -1},
		{"raises", `function init() error("nope") end`, -1},
		{"syntax error", `function init(`, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			writeScript(t, h.ctx.BasePath, "main.lua", tt.src)
			g := NewGame(h.bridge, "main.lua", false)
			if got := g.Init(); got != tt.want {
				t.Errorf("Init() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGameMissingScript(t *testing.T) {
	h := newHarness(t)
	g := NewGame(h.bridge, "absent.lua", false)
	if got := g.Init(); got != -1 {
		t.Errorf("Init() = %d, want -1", got)
	}
}

func TestGameHooks(t *testing.T) {
	h := newHarness(t)
	writeScript(t, h.ctx.BasePath, "main.lua", `
		updates, draws, stopped = 0, 0, false
		function update() updates = updates + 1 end
		function draw() draws = draws + 1 end
		function shutdown() stopped = true end
	`)
	g := NewGame(h.bridge, "main.lua", false)
	if g.Init() != 0 {
		t.Fatal("Init failed")
	}
	for i := 0; i < 3; i++ {
		g.Update()
		g.Draw()
	}
	g.Shutdown()

	if h.global("updates") != lua.LNumber(3) || h.global("draws") != lua.LNumber(3) {
		t.Errorf("updates = %v, draws = %v", h.global("updates"), h.global("draws"))
	}
	if h.global("stopped") != lua.LTrue {
		t.Error("shutdown hook not called")
	}
}

func TestGameHookErrorKeepsRunning(t *testing.T) {
	h := newHarness(t)
	writeScript(t, h.ctx.BasePath, "main.lua", `
		calls = 0
		function update()
			calls = calls + 1
			error("broken")
		end
	`)
	g := NewGame(h.bridge, "main.lua", false)
	g.Init()
	g.Update()
	g.Update()
	g.Draw()
	if h.global("calls") != lua.LNumber(2) {
		t.Errorf("calls = %v, want 2", h.global("calls"))
	}
}

func TestGameAppliesQueuedReload(t *testing.T) {
	h := newHarness(t)
	path := writeScript(t, h.ctx.BasePath, "main.lua", `
		function update() value = "old" end
	`)
	g := NewGame(h.bridge, "main.lua", true)
	if g.watcher == nil {
		t.Skip("file watching unavailable")
	}
	defer g.Shutdown()
	g.Init()
	g.Update()
	if got := h.global("value").String(); got != "old" {
		t.Fatalf("value = %q", got)
	}

	writeScript(t, h.ctx.BasePath, "main.lua", `
		function update() value = "new" end
	`)
	g.watcher.enqueue(path)
	g.Update()
	if got := h.global("value").String(); got != "new" {
		t.Errorf("value after reload = %q, want new", got)
	}
}

func TestWatcherQueuesLuaWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Skipf("file watching unavailable: %v", err)
	}
	defer w.Close()

	writeScript(t, dir, "notes.txt", "ignored")
	script := writeScript(t, dir, "game.lua", "x = 1")

	deadline := time.Now().Add(5 * time.Second)
	var got []string
	for time.Now().Before(deadline) && len(got) == 0 {
		time.Sleep(20 * time.Millisecond)
		got = w.Pending()
	}
	if len(got) != 1 || got[0] != script {
		t.Fatalf("Pending() = %v, want [%s]", got, script)
	}
}

func TestWatcherDeduplicates(t *testing.T) {
	w := &Watcher{}
	w.enqueue("a.lua")
	w.enqueue("b.lua")
	w.enqueue("a.lua")
	got := w.Pending()
	if len(got) != 2 || got[0] != "a.lua" || got[1] != "b.lua" {
		t.Errorf("Pending() = %v", got)
	}
}
