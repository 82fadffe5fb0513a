// Package cli handles cmd line input for testing matching, resolution, and
// summaries interactively.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/skatelog/tricksense/pkg/catalog"
	"github.com/skatelog/tricksense/pkg/match"
	"github.com/skatelog/tricksense/pkg/resolve"
	"github.com/skatelog/tricksense/pkg/summary"
)

// InputHandler processes note text from stdin and prints ranked trick
// matches. Lines starting with "/" run the auxiliary commands.
type InputHandler struct {
	tricks        []catalog.Trick
	index         *match.Index
	aliases       resolve.AliasTable
	summarizer    *summary.Summarizer
	matchLimit    int
	completeLimit int
}

// NewInputHandler handles initialization of the InputHandler.
func NewInputHandler(tricks []catalog.Trick, aliases resolve.AliasTable, lex summary.Lexicon, matchLimit, completeLimit int) *InputHandler {
	return &InputHandler{
		tricks:        tricks,
		index:         match.NewIndex(tricks),
		aliases:       aliases,
		summarizer:    summary.New(tricks, lex),
		matchLimit:    matchLimit,
		completeLimit: completeLimit,
	}
}

// Start begins the interface loop. It continuously reads a line from stdin
// and hands the trimmed input to the command handlers. The loop terminates
// when reading from stdin fails.
func (h *InputHandler) Start() error {
	log.Print("TrickSense CLI")
	log.Print("type a note and press Enter to see trick matches (Ctrl+C to exit):")
	log.Print("commands: /complete <prefix>, /resolve <name,...>, /sum <note>")

	reader := bufio.NewReader(os.Stdin)
	for {
		log.Print("> ")
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

func (h *InputHandler) handleInput(line string) {
	switch {
	case strings.HasPrefix(line, "/complete "):
		h.handleComplete(strings.TrimPrefix(line, "/complete "))
	case strings.HasPrefix(line, "/resolve "):
		h.handleResolve(strings.TrimPrefix(line, "/resolve "))
	case strings.HasPrefix(line, "/sum "):
		h.handleSummary(strings.TrimPrefix(line, "/sum "))
	default:
		h.handleMatch(line)
	}
}

func (h *InputHandler) handleMatch(note string) {
	start := time.Now()
	candidates := match.Match(note, h.tricks)
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for note '%s'", elapsed, note)

	if len(candidates) == 0 {
		log.Warnf("No matches found for: '%s'", note)
		return
	}
	if len(candidates) > h.matchLimit {
		candidates = candidates[:h.matchLimit]
	}

	log.Printf("Found %d matches:", len(candidates))
	for i, c := range candidates {
		clName := fmt.Sprintf("\033[38;5;75m%s\033[0m", c.Trick.Name)
		log.Printf("%2d. %-40s (score: %3d, %s)", i+1, clName, c.Score, c.Trick.Type)
	}
}

func (h *InputHandler) handleComplete(prefix string) {
	names := h.index.CompleteName(prefix, h.completeLimit)
	if len(names) == 0 {
		log.Warnf("No completions for prefix: '%s'", prefix)
		return
	}
	for i, name := range names {
		log.Printf("%2d. %s", i+1, name)
	}
}

func (h *InputHandler) handleResolve(raw string) {
	var names []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	resolved := resolve.TrickNames(names, h.tricks, h.aliases)
	if len(resolved) == 0 {
		log.Warnf("Nothing resolved from: '%s'", raw)
		return
	}
	for i, t := range resolved {
		log.Printf("%2d. %s (%s, difficulty %d)", i+1, t.Name, t.Type, t.Difficulty)
	}
}

// handleSummary resolves landed tricks from the note's own matches, then
// summarizes. Good enough for eyeballing the scoring model.
func (h *InputHandler) handleSummary(note string) {
	var landed []catalog.Trick
	for _, c := range match.Match(note, h.tricks) {
		landed = append(landed, c.Trick)
	}
	text := h.summarizer.Summarize(note, landed, time.Now())
	if text == "" {
		log.Warn("Empty summary")
		return
	}
	log.Print(text)
}
