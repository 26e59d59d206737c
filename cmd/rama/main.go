// Command rama runs a Lua game script on the engine.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/xlab/closer"

	"rama/internal/config"
	"rama/internal/engine"
	"rama/internal/graphics"
	"rama/internal/logging"
	"rama/internal/platform"
	"rama/internal/scripting"
	"rama/internal/ui"
)

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

type options struct {
	configPath string
	script     string
	headless   bool
	frames     int
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", config.DefaultPath, "engine configuration file")
	flag.StringVar(&opts.script, "script", "", "main script, overrides scripts.main")
	flag.BoolVar(&opts.headless, "headless", false, "run without a window or GPU")
	flag.IntVar(&opts.frames, "frames", 0, "stop after n frames, 0 runs until quit")
	flag.Parse()

	closer.Init(closer.Config{
		ExitCodeOK:  0,
		ExitCodeErr: 1,
		ExitSignals: closer.DefaultSignalSet,
	})

	if err := run(opts); err != nil {
		logging.Error("%v", err)
		closer.Exit(1)
	}
	closer.Close()
}

func run(opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	logging.SetLevel(cfg.Log.Level)
	if opts.script != "" {
		cfg.Scripts.Main = opts.script
	}

	base, err := filepath.Abs(filepath.Dir(opts.configPath))
	if err != nil {
		return fmt.Errorf("resolve base path: %w", err)
	}

	ctx := engine.NewContext(cfg, nil, nil, base)

	// A signal stops the loop; the cleanup waits until every deferred
	// release below has run before closer exits the process.
	done := make(chan struct{})
	defer close(done)
	closer.Bind(func() {
		ctx.Quit()
		<-done
	})

	tracker := graphics.NewTracker()

	if opts.headless {
		ctx.Window = platform.NewHeadless(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
		ctx.Resources = graphics.NewResources(graphics.NewNullDevice(), tracker, cfg.Graphics.GLSLVersion)
	} else {
		if err := platform.Init(); err != nil {
			return err
		}
		defer platform.Terminate()
		win, err := platform.NewWindow(cfg.Window, ctx.Input)
		if err != nil {
			return err
		}
		defer win.Close()
		ctx.Window = win
		ctx.Resources = graphics.NewResources(graphics.NewGLDevice(), tracker, cfg.Graphics.GLSLVersion)
	}

	overlay, err := ui.NewPassthrough(ctx.Resources, ctx.Window.Focused)
	if err != nil {
		return err
	}

	bridge := scripting.NewBridge(ctx, overlay)
	defer bridge.Close()
	game := scripting.NewGame(bridge, cfg.Scripts.Main, cfg.Scripts.HotReload)

	logging.Info("running %s (headless=%t, pid %d)", cfg.Scripts.Main, opts.headless, os.Getpid())
	return engine.New(ctx, overlay, game).Run(opts.frames)
}
