// Package cli handles command line input for testing queries interactively.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pastalab/shapeserve/internal/logger"
	"github.com/pastalab/shapeserve/pkg/index"
	"github.com/pastalab/shapeserve/pkg/match"
)

// InputHandler reads queries from stdin and prints the waterfall
// outcome for each one.
type InputHandler struct {
	idx  *index.Index
	opts match.Options
	log  *log.Logger
}

// NewInputHandler builds an interactive handler over a built index.
func NewInputHandler(idx *index.Index, opts match.Options) *InputHandler {
	return &InputHandler{
		idx:  idx,
		opts: opts,
		log:  logger.NewWithConfig("cli", log.GetLevel(), false, false, log.TextFormatter),
	}
}

// Start begins the interface loop. It continuously prompts for input,
// reads a line from stdin, and prints the query outcome. The loop
// terminates when stdin closes.
func (h *InputHandler) Start() error {
	h.log.Printf("[ shapeserve ] %d entries indexed", h.idx.Len())
	h.log.Print("type a shape name and press Enter (Ctrl+C to exit):")
	reader := bufio.NewReader(os.Stdin)

	for {
		h.log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil
		}
		h.handleQuery(strings.TrimSpace(line))
	}
}

func (h *InputHandler) handleQuery(query string) {
	start := time.Now()
	result := match.QueryWithOptions(h.idx, query, h.opts)
	elapsed := time.Since(start)

	h.log.Debugf("Took [ %v ] for query '%s'", elapsed, query)

	switch result.Kind {
	case match.Idle:
		return
	case match.ExactMatch:
		h.log.Printf("Match: %s  (%s)", result.Entry.Name, result.Entry.URL)
	case match.Suggestions:
		h.log.Printf("Found %d suggestions for '%s':", len(result.Results), query)
		h.printResults(result.Results)
	case match.FuzzySuggestions:
		h.log.Printf("Did you mean (%d candidates):", len(result.Results))
		h.printResults(result.Results)
	case match.NoMatch:
		h.log.Warnf("No results for '%s'", query)
	}
}

func (h *InputHandler) printResults(results []match.Result) {
	for i, r := range results {
		clLabel := fmt.Sprintf("\033[38;5;75m%s\033[0m", r.Label)
		h.log.Printf("%2d. %-40s %s", i+1, clLabel, r.Entry.URL)
	}
}
