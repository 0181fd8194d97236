package main

import (
	"fmt"
	"os"

	"github.com/mothtrap/mothtrap-go/cmd"
	"github.com/mothtrap/mothtrap-go/internal/conf"
	"github.com/mothtrap/mothtrap-go/internal/logging"
)

func main() {
	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Init(settings)
	defer logging.Close()

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
