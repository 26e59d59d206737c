// Command shadercheck validates combined @vertex/@fragment shader files.
// Each file is split, checked for both stages, and unless -parse-only is
// given compiled and linked on a hidden OpenGL 4.1 core context.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"rama/internal/config"
	"rama/internal/graphics"
	"rama/internal/logging"
	"rama/internal/platform"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	version := flag.String("version", config.Default().Graphics.GLSLVersion, "GLSL version line prepended to both stages")
	parseOnly := flag.Bool("parse-only", false, "skip compilation, only split and check the sections")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: shadercheck [-version str] [-parse-only] file...\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	dev := graphics.Device(graphics.NewNullDevice())
	closeContext := func() {}
	if !*parseOnly {
		var err error
		closeContext, err = hiddenContext()
		if err != nil {
			logging.Fatal("%v", err)
		}
		dev = graphics.NewGLDevice()
	}
	res := graphics.NewResources(dev, graphics.NewTracker(), *version)

	failed := checkAll(res, flag.Args())
	closeContext()
	if failed > 0 {
		os.Exit(1)
	}
}

// checkAll reports every path and returns how many failed.
func checkAll(res *graphics.Resources, paths []string) int {
	failed := 0
	for _, path := range paths {
		if err := check(res, path); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Printf("ok   %s\n", path)
	}
	return failed
}

// hiddenContext creates an invisible window so shaders can be compiled
// against the real driver.
func hiddenContext() (func(), error) {
	if err := platform.Init(); err != nil {
		return nil, err
	}
	glfw.WindowHint(glfw.Visible, glfw.False)
	win, err := platform.NewWindow(config.Window{Width: 1, Height: 1, Title: "shadercheck"}, nil)
	if err != nil {
		platform.Terminate()
		return nil, err
	}
	return func() {
		win.Close()
		platform.Terminate()
	}, nil
}
