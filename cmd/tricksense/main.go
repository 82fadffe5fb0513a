// Copyright 2026 The TrickSense Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the trick recognition server and CLI application.

TrickSense turns free-text skate session notes into ranked catalog-trick
matches, short session summaries, and practice-consistency analytics. It can
operate as a MessagePack IPC server for integration with journal frontends,
or as a CLI application for testing and debugging.

# Usage

Start the server with the builtin catalog:

	tricksense

Use a custom catalog and session database, with debug logging:

	tricksense -catalog tricks.toml -db sessions.db -d

Run in CLI mode for interactive testing:

	tricksense -c -limit 5

# Configuration

Runtime configuration is managed through a TOML file that carries display
limits, analytics defaults, the alias table, and the summarizer lexicon:

	[cli]
	default_limit = 5
	complete_limit = 5

	[analytics]
	heatmap_window_days = 7

	[aliases]
	"bs flip" = "BS 180 Kickflip"

The config file is automatically created with defaults if it doesn't exist.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Send a match
request:

	{"id": "req1", "cmd": "match", "note": "landed some kickflips"}

Receive ranked candidates:

	{"id": "req1", "s": [{"n": "Kickflip", "ty": "flip", "sc": 6}], "c": 1, "t": 120}

Streak and heatmap commands read the session history from the SQLite
database given by -db; without one they see an empty history.

# Command Line Flags

	-catalog string
	    TOML trick catalog file (builtin catalog when empty)
	-config string
	    Config file path (default user config dir)
	-db string
	    SQLite session history database
	-c  Run in CLI mode instead of server mode
	-d  Enable debug mode with detailed logging
	-limit int
	    Number of matches to show in CLI mode
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/skatelog/tricksense/internal/cli"
	"github.com/skatelog/tricksense/internal/store"
	"github.com/skatelog/tricksense/pkg/catalog"
	"github.com/skatelog/tricksense/pkg/config"
	"github.com/skatelog/tricksense/pkg/server"
)

const (
	Version = "0.3.0"
	AppName = "tricksense"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires the catalog, config, and history store into the server or CLI.
// It does not implement logic for them and only manages the flow.
func main() {
	sigHandler()
	defaults := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	catalogPath := flag.String("catalog", "", "TOML trick catalog file (builtin catalog when empty)")
	configPath := flag.String("config", "", "Config file path")
	dbPath := flag.String("db", "", "SQLite session history database")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", defaults.CLI.DefaultLimit, "Number of matches to show in CLI mode")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	cfg, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", activePath)

	tricks := catalog.Default()
	if *catalogPath != "" {
		loaded, err := catalog.Load(*catalogPath)
		if err != nil {
			log.Fatalf("Failed to load catalog: %v", err)
		}
		tricks = loaded
	}
	log.Debugf("Catalog ready: %d tricks", len(tricks))

	var history *store.Store
	if *dbPath != "" {
		history, err = store.Open(*dbPath)
		if err != nil {
			log.Fatalf("Failed to open session database: %v", err)
		}
		defer history.Close()
		log.Debugf("Session database: (%s)", *dbPath)
	} else {
		log.Warn("No session database specified, analytics see an empty history...")
	}

	if *cliMode {
		log.SetReportTimestamp(false)
		handler := cli.NewInputHandler(tricks, cfg.AliasTable(), cfg.LexiconTables(), *limit, cfg.CLI.CompleteLimit)
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	var sessions server.SessionSource
	if history != nil {
		sessions = history
	}
	srv := server.NewServer(tricks, cfg.AliasTable(), cfg.LexiconTables(), sessions)

	showStartupInfo(len(tricks))

	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ TrickSense ] Trick recognition for session notes")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(trickCount int) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("============")
	println(" TrickSense ")
	println("============")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("catalog: %d tricks", trickCount)
	log.Info("status: ready")
	println("============")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
