package main

import (
	"fmt"
	"os"

	"photo-manifest/internal/cli"
)

func main() {
	uiLog := newUILogger()
	defer uiLog.Close()

	root := cli.NewRootCmd(func() error {
		return runUI(uiLog)
	})
	if err := root.Execute(); err != nil {
		uiLog.Error("command failed", err, "args", os.Args[1:])
		fmt.Fprintln(os.Stderr, "Error:", err.Error())
		os.Exit(1)
	}
}
