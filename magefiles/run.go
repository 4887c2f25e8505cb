//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Builds uvinspect and reports on every model in the assets directory.
func (Run) Inspect() error {
	mg.Deps(Build.Binary)
	fmt.Println("Run uvinspect...")
	if _, err := executeCmd("bin/uvinspect", withArgs("-dir", "assets"), withStream()); err != nil {
		return err
	}
	return nil
}

// Builds uvinspect and keeps watching the assets directory.
func (Run) Watch() error {
	mg.Deps(Build.Binary)
	if _, err := executeCmd("bin/uvinspect", withArgs("-dir", "assets", "-watch"), withStream()); err != nil {
		return err
	}
	return nil
}
