//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Opens the game window.
func (Run) Engine() error {
	mg.Deps(Assets.Map)
	fmt.Println("Run engine...")
	if _, err := executeCmd("go", withArgs("run", ".", "run"), withStream()); err != nil {
		return err
	}
	return nil
}

// Renders the default scene headless into frame.png.
func (Run) Snapshot() error {
	mg.Deps(Assets.Map)
	if _, err := executeCmd("go", withArgs("run", ".", "snapshot", "--out", "frame.png", "--frames", "2"), withStream()); err != nil {
		return err
	}
	return nil
}
