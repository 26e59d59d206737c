//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Engine builds the rama executable into bin/.
func (Build) Engine() error {
	_, err := executeCmd("go", withArgs("build", "-o", binPath("rama"), "./cmd/rama"), withStream())
	return err
}

// Tools builds shadercheck into bin/.
func (Build) Tools() error {
	_, err := executeCmd("go", withArgs("build", "-o", binPath("shadercheck"), "./cmd/shadercheck"), withStream())
	return err
}

// Shaders validates every shader under assets/shaders on the local driver.
func (Build) Shaders() error {
	mg.Deps(Build.Tools)
	files, err := shaderFiles()
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("no shaders found")
		return nil
	}
	_, err = executeCmd(binPath("shadercheck"), withArgs(files...), withStream())
	return err
}

// All builds every binary.
func (Build) All() {
	mg.Deps(Build.Engine, Build.Tools)
}
