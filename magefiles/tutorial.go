//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Load builds the CLI and prints the tutorial table from the public dataset.
func Load() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "load")
}

// Analyze builds the CLI and runs the placeholder analyzer over the tutorial data.
func Analyze() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "analyze")
}
