package main

import (
	"fmt"
	"os"

	"github.com/mrlokans/quotebook/internal/cli"
	"github.com/mrlokans/quotebook/internal/config"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	cfg := config.NewConfig()

	root := cli.NewRootCommand(cfg, Version)
	root.SetVersionTemplate(fmt.Sprintf("quotebook %s (%s)\n", Version, Commit))

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
