//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds the uvinspect binary into bin/.
func (Build) Binary() error {
	return goCmd("build", withArgs("-o", "bin/uvinspect", "."))
}

// Builds uvinspect with the bmeshdebug tag, turning invalid mesh access into panics.
func (Build) Debug() error {
	return goCmd("build", withArgs("-tags", debugTag, "-o", "bin/uvinspect-debug", "."))
}

// Runs every test, once per build flavour.
func (Build) Test() error {
	if err := goCmd("test", withArgs("-race", "./..."), withEnv("CGO_ENABLED=1")); err != nil {
		return err
	}
	return goCmd("test", withArgs("-tags", debugTag, "."), withDir("engine/bmesh"))
}

// Runs go mod tidy and go vet.
func (Build) Tidy() error {
	return goTidy()
}
