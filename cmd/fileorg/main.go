package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := fang.Execute(context.Background(), newRootCommand(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}
