package server

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/pastalab/shapeserve/internal/logger"
	"github.com/pastalab/shapeserve/pkg/config"
	"github.com/pastalab/shapeserve/pkg/index"
	"github.com/pastalab/shapeserve/pkg/match"
)

// Server handles the IPC for shape lookups. The index it holds is
// immutable, so requests need no synchronization.
type Server struct {
	idx *index.Index
	cfg *config.Config
	dec *msgpack.Decoder
	enc *msgpack.Encoder
	log *log.Logger
}

// NewServer creates a lookup server using stdin/stdout for IPC.
func NewServer(idx *index.Index, cfg *config.Config) *Server {
	return NewServerIO(idx, cfg, os.Stdin, os.Stdout)
}

// NewServerIO creates a lookup server over explicit streams.
func NewServerIO(idx *index.Index, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Server{
		idx: idx,
		cfg: cfg,
		dec: msgpack.NewDecoder(r),
		enc: msgpack.NewEncoder(w),
		log: logger.New("server"),
	}
}

// Start begins listening for IPC requests. Returns nil on EOF.
func (s *Server) Start() error {
	s.log.Debug("Starting server.")
	s.send(StatusResponse{Status: "ready"})

	for {
		var request Request
		if err := s.dec.Decode(&request); err != nil {
			if err == io.EOF {
				return nil
			}
			// A corrupt msgpack stream cannot be resynchronized, so
			// report once and stop rather than spin on the same bytes.
			s.log.Errorf("Decoding request: %v", err)
			s.sendError("", "Invalid msgpack request", 400)
			return err
		}
		s.handleRequest(request)
	}
}

func (s *Server) handleRequest(request Request) {
	switch request.Command {
	case "query":
		s.handleQuery(request)
	case "filter":
		s.handleFilter(request)
	case "health":
		s.send(StatusResponse{ID: request.ID, Status: "ok"})
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown command: %s", request.Command), 400)
	}
}

func (s *Server) handleQuery(request Request) {
	start := time.Now()
	result := match.QueryWithOptions(s.idx, request.Query, match.Options{
		SuggestLimit: s.cfg.Search.SuggestLimit,
		FuzzyLimit:   s.cfg.Search.FuzzyLimit,
		MinFuzzyLen:  s.cfg.Search.MinFuzzyLen,
	})
	elapsed := time.Since(start)

	response := QueryResponse{
		ID:        request.ID,
		Kind:      result.Kind.String(),
		TimeTaken: elapsed.Microseconds(),
	}
	switch result.Kind {
	case match.ExactMatch:
		response.Entry = wireEntry(result.Entry, result.Entry.Name)
		response.Count = 1
	case match.Suggestions, match.FuzzySuggestions:
		for _, r := range result.Results {
			response.Results = append(response.Results, *wireEntry(r.Entry, r.Label))
		}
		response.Count = len(response.Results)
	}

	s.send(response)
}

func (s *Server) handleFilter(request Request) {
	start := time.Now()
	page := match.FilterByFeaturesCapped(s.idx, request.Selections, s.cfg.Search.FilterDisplayCap)
	elapsed := time.Since(start)

	response := FilterResponse{
		ID:        request.ID,
		More:      page.More,
		Count:     len(page.Entries),
		TimeTaken: elapsed.Microseconds(),
	}
	for _, e := range page.Entries {
		response.Entries = append(response.Entries, *wireEntry(e, e.Name))
	}

	s.send(response)
}

func wireEntry(e *index.Entry, label string) *ResultEntry {
	return &ResultEntry{Slug: e.Slug, Name: e.Name, URL: e.URL, Label: label}
}

func (s *Server) send(response interface{}) {
	if err := s.enc.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
