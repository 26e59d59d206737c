//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Unit runs the package tests.
func (Test) Unit() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

// Race runs the tests with the race detector; the physics worker pool is
// the main target.
func (Test) Race() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./internal/..."), withEnv("CGO_ENABLED=1"), withStream())
	return err
}

// Bench runs the physics benchmarks.
func (Test) Bench() error {
	_, err := executeCmd("go", withArgs("test", "-run", "^$", "-bench", ".", "./internal/physics/..."), withStream())
	return err
}
