package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/skatelog/tricksense/pkg/analytics"
	"github.com/skatelog/tricksense/pkg/catalog"
	"github.com/skatelog/tricksense/pkg/match"
	"github.com/skatelog/tricksense/pkg/resolve"
	"github.com/skatelog/tricksense/pkg/session"
	"github.com/skatelog/tricksense/pkg/summary"
)

const defaultWindowDays = 7

// SessionSource supplies the read-only session history for analytics
// commands. A nil source means an empty history.
type SessionSource interface {
	ListSessions(ctx context.Context) ([]session.Session, error)
}

// Server handles the IPC for trick recognition and analytics.
type Server struct {
	tricks     []catalog.Trick
	index      *match.Index
	aliases    resolve.AliasTable
	summarizer *summary.Summarizer
	sessions   SessionSource

	decoder *msgpack.Decoder
	encoder *msgpack.Encoder
}

// NewServer creates a server over stdin/stdout for the given catalog,
// alias table, lexicon, and session source.
func NewServer(tricks []catalog.Trick, aliases resolve.AliasTable, lex summary.Lexicon, sessions SessionSource) *Server {
	return &Server{
		tricks:     tricks,
		index:      match.NewIndex(tricks),
		aliases:    aliases,
		summarizer: summary.New(tricks, lex),
		sessions:   sessions,
		decoder:    msgpack.NewDecoder(os.Stdin),
		encoder:    msgpack.NewEncoder(os.Stdout),
	}
}

// Start begins listening for IPC requests. It returns nil on EOF.
func (s *Server) Start() error {
	log.Debug("Starting server.")
	s.send(map[string]string{"status": "ready"})

	for {
		var request Request
		if err := s.decoder.Decode(&request); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handleRequest(request)
	}
}

func (s *Server) handleRequest(request Request) {
	switch request.Cmd {
	case "match":
		s.handleMatch(request)
	case "resolve":
		s.handleResolve(request)
	case "summarize":
		s.handleSummarize(request)
	case "streak":
		s.handleStreak(request)
	case "heatmap":
		s.handleHeatmap(request)
	case "complete":
		s.handleComplete(request)
	case "health":
		s.send(map[string]string{"id": request.ID, "status": "ok"})
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown command: %s", request.Cmd), 400)
	}
}

func (s *Server) handleMatch(request Request) {
	if request.Note == "" {
		s.sendError(request.ID, "Missing 'note' parameter", 400)
		return
	}

	start := time.Now()
	candidates := match.Match(request.Note, s.tricks)
	elapsed := time.Since(start)

	msgs := make([]CandidateMsg, len(candidates))
	for i, c := range candidates {
		msgs[i] = CandidateMsg{
			Name:  c.Trick.Name,
			Type:  c.Trick.Type.String(),
			Score: c.Score,
		}
	}
	s.send(MatchResponse{
		ID:         request.ID,
		Candidates: msgs,
		Count:      len(msgs),
		TimeTaken:  elapsed.Microseconds(),
	})
}

func (s *Server) handleResolve(request Request) {
	tricks := resolve.TrickNames(request.Names, s.tricks, s.aliases)
	msgs := make([]TrickMsg, len(tricks))
	for i, t := range tricks {
		msgs[i] = TrickMsg{Name: t.Name, Type: t.Type.String(), Difficulty: t.Difficulty}
	}
	s.send(ResolveResponse{ID: request.ID, Tricks: msgs, Count: len(msgs)})
}

func (s *Server) handleSummarize(request Request) {
	landed := resolve.TrickNames(request.Names, s.tricks, s.aliases)
	date := parseDate(request.Date)
	text := s.summarizer.Summarize(request.Note, landed, date)
	s.send(SummaryResponse{ID: request.ID, Summary: text})
}

func (s *Server) handleStreak(request Request) {
	trick, ok := s.resolveTrick(request)
	if !ok {
		return
	}
	sessions := s.loadSessions()
	result := analytics.Streak(trick, sessions)

	response := StreakResponse{
		ID:            request.ID,
		Current:       result.Current,
		Longest:       result.Longest,
		TotalSessions: result.TotalSessions,
	}
	if result.HasPracticed() {
		response.LastPracticed = result.LastPracticed.Format(time.RFC3339)
	}
	s.send(response)
}

func (s *Server) handleHeatmap(request Request) {
	trick, ok := s.resolveTrick(request)
	if !ok {
		return
	}
	window := request.WindowDays
	if window <= 0 {
		window = defaultWindowDays
	}
	sessions := s.loadSessions()
	buckets := analytics.Heatmap(trick, sessions, window, time.Now())

	msgs := make([]BucketMsg, len(buckets))
	for i, b := range buckets {
		msgs[i] = BucketMsg{
			Day:   b.Day.Format("2006-01-02"),
			Count: b.Count,
			Band:  analytics.IntensityBand(b.Count),
		}
	}
	s.send(HeatmapResponse{ID: request.ID, Buckets: msgs})
}

func (s *Server) handleComplete(request Request) {
	if request.Prefix == "" {
		s.sendError(request.ID, "Missing 'p' parameter", 400)
		return
	}
	limit := request.Limit
	if limit < 1 {
		limit = 5
	}

	start := time.Now()
	names := s.index.CompleteName(request.Prefix, limit)
	elapsed := time.Since(start)

	s.send(CompleteResponse{
		ID:        request.ID,
		Names:     names,
		Count:     len(names),
		TimeTaken: elapsed.Microseconds(),
	})
}

// resolveTrick maps the request's trick field onto a catalog entry through
// the full resolution chain, so aliases work here too.
func (s *Server) resolveTrick(request Request) (catalog.Trick, bool) {
	if request.Trick == "" {
		s.sendError(request.ID, "Missing 'trick' parameter", 400)
		return catalog.Trick{}, false
	}
	resolved := resolve.TrickNames([]string{request.Trick}, s.tricks, s.aliases)
	if len(resolved) == 0 {
		s.sendError(request.ID, fmt.Sprintf("Unknown trick: %s", request.Trick), 404)
		return catalog.Trick{}, false
	}
	return resolved[0], true
}

func (s *Server) loadSessions() []session.Session {
	if s.sessions == nil {
		return nil
	}
	sessions, err := s.sessions.ListSessions(context.Background())
	if err != nil {
		log.Errorf("Loading session history: %v", err)
		return nil
	}
	return sessions
}

func parseDate(raw string) time.Time {
	if raw == "" {
		return time.Now()
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	log.Warnf("Unparseable date %q, using today", raw)
	return time.Now()
}

func (s *Server) send(response any) {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
