/*
Package main implements the seshat word index server and CLI [DBG]
application.

Seshat keeps a large vocabulary in a compressed radix trie supporting exact
lookup, prefix enumeration, wildcard pattern search, deletion, and
structural analytics. It can operate as a MessagePack IPC server for
integration with host applications, or as a CLI application for testing and
debugging.

# Usage

Start the server with default settings:

	seshat

Preload a word list and enable debug mode:

	seshat -load words.txt -d

Run in CLI mode for interactive testing:

	seshat -c -load words.txt

Word lists are plain text, one word per line; lines end with LF, CR or CRLF,
surrounding whitespace is stripped, and blank lines are skipped. Sources are
streamed in fixed-size chunks so arbitrarily large lists load without being
read into memory at once.

# Configuration

Runtime configuration is managed through a TOML file:

	[server]
	max_word = 512
	max_pattern = 128
	max_batch = 4096

	[loader]
	chunk_size = 1048576

	[cli]
	default_limit = 24

The config file is automatically created with defaults if it doesn't exist.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Each request
names an operation and carries an ID echoed in the response:

	{"id": "req1", "op": "prefix", "p": "hel"}
	{"id": "req1", "ws": ["hello", "help"], "c": 2, "t": 140}

See the server package docs for the full operation set, including batch
forms and the asynchronous bulk load.
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

	"github.com/velum/seshat/internal/cli"
	"github.com/velum/seshat/pkg/config"
	"github.com/velum/seshat/pkg/loader"
	"github.com/velum/seshat/pkg/server"
	"github.com/velum/seshat/pkg/trie"
)

const (
	Version = "0.3.0"
	AppName = "seshat"
	gh      = "https://github.com/velum/seshat"
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

// main wires flags, config and the preload, then hands the trie to either
// the CLI or the IPC server.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	configPath := flag.String("config", "", "Path to config.toml (defaults to ~/.config/seshat)")
	loadPath := flag.String("load", "", "Word list to preload before serving")
	chunkSize := flag.Int("chunk", 0, "Chunk size in bytes for bulk loading (0 uses config)")
	limit := flag.Int("limit", 0, "Max results printed per CLI query (0 uses config)")

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

	appConfig, activePath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if activePath != "" {
		log.Debugf("Using config file: (%s)", activePath)
	}

	if *chunkSize == 0 {
		*chunkSize = appConfig.Loader.ChunkSize
	}
	if *limit == 0 {
		*limit = appConfig.CLI.DefaultLimit
	}

	t := trie.New()

	if *loadPath != "" {
		n, err := loader.New(t, *chunkSize).LoadFile(*loadPath)
		if err != nil {
			log.Fatalf("Failed to preload %s: %v", *loadPath, err)
		}
		log.Debugf("Preloaded %d words (size %d)", n, t.Size())
	}

	if *cliMode {
		log.SetReportTimestamp(false)
		inputHandler := cli.NewInputHandler(t, *chunkSize, *limit)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(t, appConfig)

	showStartupInfo(t)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// printVersion displays the version banner.
func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ Seshat ] In-memory word index with prefix and pattern search")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(t *trie.Trie) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("words loaded: %d", t.Size())
	log.Info("status: ready")

	log.SetLevel(currentLevel)
}
