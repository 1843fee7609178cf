package main

import (
	"fmt"
	"os"

	"github.com/placefind/placefind/internal/config"
	"github.com/placefind/placefind/internal/tui"
)

var version = "dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "query":
			if err := runQuery(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}
			return
		case "version":
			fmt.Println("placefind " + version)
			return
		case "help", "--help", "-h":
			printUsage()
			return
		}
	}

	// No subcommand → launch TUI
	cfg, err := config.Load(os.Getenv("PLACEFIND_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := tui.Run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `placefind - natural language place search client

Usage:
  placefind                Launch interactive TUI
  placefind query [flags] "<text>"   Run a one-shot search
  placefind version        Show version

Run 'placefind query --help' for flags.
`)
}
