//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Engine builds and runs the engine with engine.toml.
func (Run) Engine() error {
	mg.Deps(Build.Engine)
	fmt.Println("Run engine...")
	_, err := executeCmd(binPath("rama"), withArgs("-config", "engine.toml"), withStream())
	return err
}

// Headless runs 600 frames without a window, useful on CI.
func (Run) Headless() error {
	mg.Deps(Build.Engine)
	_, err := executeCmd(binPath("rama"), withArgs("-config", "engine.toml", "-headless", "-frames", "600"), withStream())
	return err
}
