package main

import (
	"context"
	"os"
)

// version is set via ldflags during build
var version = "dev"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
