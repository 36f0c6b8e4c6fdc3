//go:build !windows

package main

import (
	"fmt"
	"os"
)

func handleOpenGLFailure() {
	fmt.Fprintln(os.Stderr, "No usable OpenGL driver; the settings window cannot start. Use \"photo-manifest config\" instead.")
	os.Exit(1)
}
