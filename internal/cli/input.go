// Package cli handles cmd line input for DBG and testing the trie engine in
// real-time.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/velum/seshat/internal/logger"
	"github.com/velum/seshat/pkg/loader"
	"github.com/velum/seshat/pkg/trie"
)

// InputHandler processes user commands from stdin against a live trie.
type InputHandler struct {
	trie         *trie.Trie
	chunkSize    int
	printLimit   int
	requestCount int
	log          *log.Logger
}

// NewInputHandler handles initialization of the InputHandler with basic
// parameters.
func NewInputHandler(t *trie.Trie, chunkSize, printLimit int) *InputHandler {
	return &InputHandler{
		trie:       t,
		chunkSize:  chunkSize,
		printLimit: printLimit,
		log:        logger.NewWithConfig("cli", log.GetLevel(), false, false, log.TextFormatter),
	}
}

// Start begins the interface loop. It continuously prompts for input, reads
// a line from stdin, and passes the trimmed input to handleInput(). The loop
// terminates if an error occurs while reading from stdin.
func (h *InputHandler) Start() error {
	h.log.Print("Seshat CLI")
	reader := bufio.NewReader(os.Stdin)
	h.log.Print("commands: add <w>, rm <w>, find <w>, prefix <p>, match <pat>, load <path>, size, stats, clear (Ctrl+C to exit)")

	for {
		h.log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		h.handleInput(line)
	}
}

// handleInput parses one command line and runs it against the engine.
func (h *InputHandler) handleInput(line string) {
	h.requestCount++

	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "add":
		if arg == "" {
			h.log.Warn("add needs a word")
			return
		}
		before := h.trie.Size()
		h.trie.Insert(arg)
		if h.trie.Size() > before {
			h.log.Printf("added %q (size %d)", arg, h.trie.Size())
		} else {
			h.log.Printf("%q already present", arg)
		}

	case "rm":
		if h.trie.Remove(arg) {
			h.log.Printf("removed %q (size %d)", arg, h.trie.Size())
		} else {
			h.log.Printf("%q not found", arg)
		}

	case "find":
		start := time.Now()
		found := h.trie.Search(arg)
		h.log.Printf("%v (%s)", found, time.Since(start))

	case "prefix":
		start := time.Now()
		words := h.trie.WordsWithPrefix(arg)
		h.printWords(words, time.Since(start))

	case "match":
		if arg == "" {
			h.log.Warn("match needs a pattern ('?' one char, '*' zero or more)")
			return
		}
		start := time.Now()
		words := h.trie.PatternSearch(arg)
		h.printWords(words, time.Since(start))

	case "load":
		if arg == "" {
			h.log.Warn("load needs a file path")
			return
		}
		start := time.Now()
		n, err := loader.New(h.trie, h.chunkSize).LoadFile(arg)
		if err != nil {
			h.log.Errorf("load failed: %v", err)
			return
		}
		h.log.Printf("inserted %d words in %s (size %d)", n, time.Since(start), h.trie.Size())

	case "size":
		h.log.Printf("%d words", h.trie.Size())

	case "stats":
		h.printStats()

	case "clear":
		h.trie.Clear()
		h.log.Print("cleared")

	default:
		h.log.Warnf("unknown command %q", cmd)
	}
}

// printWords shows up to printLimit results.
func (h *InputHandler) printWords(words []string, elapsed time.Duration) {
	h.log.Printf("%d results (%s)", len(words), elapsed)
	shown := words
	if h.printLimit > 0 && len(shown) > h.printLimit {
		shown = shown[:h.printLimit]
	}
	for _, w := range shown {
		fmt.Println("  " + w)
	}
	if len(shown) < len(words) {
		h.log.Printf("  ... %d more", len(words)-len(shown))
	}
}

func (h *InputHandler) printStats() {
	hs := h.trie.HeightStats()
	ms := h.trie.MemoryStats()
	wm := h.trie.WordMetrics()

	h.log.Printf("height: min=%d max=%d avg=%.2f mode=%d",
		hs.MinHeight, hs.MaxHeight, hs.AvgHeight, hs.ModeHeight)
	h.log.Printf("memory: %d nodes, %d label bytes, %d total bytes, %.1f bytes/word",
		ms.NodeCount, ms.StringBytes, ms.TotalBytes, ms.BytesPerWord)
	h.log.Printf("lengths: min=%d max=%d avg=%.2f mode=%d total=%d",
		wm.MinLength, wm.MaxLength, wm.AvgLength, wm.ModeLength, wm.TotalChars)
}
