// Copyright
// SPDX-License-Identifier: MIT
// debugview: terminal playground for the debugview renderer
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ackinari/debugview/config"
)

const Version = "0.1.0"

func main() {
	fs := flag.NewFlagSet("debugview", flag.ExitOnError)
	configPath := fs.String("config", "", "path to an options JSON file")
	preset := fs.String("preset", "default", "configuration preset (default|minimal|compact)")
	noColorFlag := fs.Bool("no-color", false, "disable color output")
	showVersion := fs.Bool("version", false, "print version and exit")
	_ = fs.Parse(os.Args[1:])

	if *showVersion {
		fmt.Println("debugview", Version)
		return
	}

	var opts *config.Options
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "config:", err)
			os.Exit(1)
		}
		opts = loaded
	}
	cfg := config.Resolve(*preset, opts)
	// The terminal can show real lines, so keep the newlines.
	cfg.SingleLine = false

	m := newModel(cfg, noColor(*noColorFlag))
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
