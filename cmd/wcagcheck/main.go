package main

import (
	"errors"
	"fmt"
	"os"
)

// Version is set at build time via ldflags
var Version = ""

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		if !errors.Is(err, errChecksFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
