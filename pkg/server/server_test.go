package server

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/skatelog/tricksense/pkg/catalog"
	"github.com/skatelog/tricksense/pkg/match"
	"github.com/skatelog/tricksense/pkg/resolve"
	"github.com/skatelog/tricksense/pkg/session"
	"github.com/skatelog/tricksense/pkg/summary"
)

type fakeSource struct {
	sessions []session.Session
}

func (f *fakeSource) ListSessions(_ context.Context) ([]session.Session, error) {
	return f.sessions, nil
}

// runServer feeds the encoded requests through a server over in-memory
// buffers and returns a decoder positioned after the ready message.
func runServer(t *testing.T, source SessionSource, requests ...Request) *msgpack.Decoder {
	t.Helper()

	var in bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, request := range requests {
		if err := enc.Encode(request); err != nil {
			t.Fatalf("encoding request: %v", err)
		}
	}

	var out bytes.Buffer
	tricks := catalog.Default()
	srv := &Server{
		tricks:     tricks,
		index:      match.NewIndex(tricks),
		aliases:    resolve.AliasTable{"bs flip": "BS 180 Kickflip"},
		summarizer: summary.New(tricks, summary.DefaultLexicon()),
		sessions:   source,
		decoder:    msgpack.NewDecoder(&in),
		encoder:    msgpack.NewEncoder(&out),
	}
	if err := srv.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	dec := msgpack.NewDecoder(&out)
	var ready map[string]string
	if err := dec.Decode(&ready); err != nil {
		t.Fatalf("decoding ready message: %v", err)
	}
	if ready["status"] != "ready" {
		t.Fatalf("ready message = %v", ready)
	}
	return dec
}

func TestServerMatch(t *testing.T) {
	dec := runServer(t, nil, Request{ID: "r1", Cmd: "match", Note: "landed some kickflips"})

	var response MatchResponse
	if err := dec.Decode(&response); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if response.ID != "r1" {
		t.Errorf("ID = %q, expected r1", response.ID)
	}
	if response.Count == 0 || len(response.Candidates) != response.Count {
		t.Fatalf("Count = %d with %d candidates", response.Count, len(response.Candidates))
	}
	if response.Candidates[0].Name != "Kickflip" {
		t.Errorf("top candidate = %q, expected Kickflip", response.Candidates[0].Name)
	}
	if response.Candidates[0].Type != "flip" {
		t.Errorf("top candidate type = %q, expected flip", response.Candidates[0].Type)
	}
}

func TestServerMatchMissingNote(t *testing.T) {
	dec := runServer(t, nil, Request{ID: "r1", Cmd: "match"})

	var response ErrorResponse
	if err := dec.Decode(&response); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if response.Code != 400 {
		t.Errorf("Code = %d, expected 400", response.Code)
	}
}

func TestServerResolve(t *testing.T) {
	dec := runServer(t, nil, Request{ID: "r2", Cmd: "resolve", Names: []string{"bs flip", "ollie"}})

	var response ResolveResponse
	if err := dec.Decode(&response); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if response.Count != 2 {
		t.Fatalf("Count = %d, expected 2", response.Count)
	}
	if response.Tricks[0].Name != "BS 180 Kickflip" || response.Tricks[1].Name != "Ollie" {
		t.Errorf("unexpected tricks: %+v", response.Tricks)
	}
}

func TestServerSummarize(t *testing.T) {
	dec := runServer(t, nil, Request{
		ID:    "r3",
		Cmd:   "summarize",
		Note:  "Finally landed a clean kickflip and stoked about it.",
		Names: []string{"kickflip"},
		Date:  "2026-03-01",
	})

	var response SummaryResponse
	if err := dec.Decode(&response); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if response.Summary == "" {
		t.Fatal("expected non-empty summary")
	}
	if !bytes.Contains([]byte(response.Summary), []byte("Kickflip")) {
		t.Errorf("summary does not mention the trick: %q", response.Summary)
	}
}

func TestServerStreak(t *testing.T) {
	kickflip := catalog.Trick{Name: "Kickflip", Type: catalog.TypeFlip, Difficulty: 3}
	day := func(d int) time.Time {
		return time.Date(2026, time.March, d, 18, 0, 0, 0, time.UTC)
	}
	source := &fakeSource{sessions: []session.Session{
		{Date: day(10), Tricks: []catalog.Trick{kickflip}},
		{Date: day(9), Tricks: []catalog.Trick{kickflip}},
	}}

	dec := runServer(t, source, Request{ID: "r4", Cmd: "streak", Trick: "kickflip"})

	var response StreakResponse
	if err := dec.Decode(&response); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if response.Current != 2 || response.Longest != 2 || response.TotalSessions != 2 {
		t.Errorf("unexpected streak response: %+v", response)
	}
	if response.LastPracticed == "" {
		t.Error("expected LastPracticed to be set")
	}
}

func TestServerStreakUnknownTrick(t *testing.T) {
	dec := runServer(t, nil, Request{ID: "r5", Cmd: "streak", Trick: "flux capacitor"})

	var response ErrorResponse
	if err := dec.Decode(&response); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if response.Code != 404 {
		t.Errorf("Code = %d, expected 404", response.Code)
	}
}

func TestServerHeatmap(t *testing.T) {
	dec := runServer(t, &fakeSource{}, Request{ID: "r6", Cmd: "heatmap", Trick: "kickflip", WindowDays: 7})

	var response HeatmapResponse
	if err := dec.Decode(&response); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(response.Buckets) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(response.Buckets))
	}
	for i, bucket := range response.Buckets {
		if bucket.Count != 0 || bucket.Band != 0 {
			t.Errorf("bucket %d = %+v, expected empty", i, bucket)
		}
	}
}

func TestServerComplete(t *testing.T) {
	dec := runServer(t, nil, Request{ID: "r7", Cmd: "complete", Prefix: "nollie", Limit: 5})

	var response CompleteResponse
	if err := dec.Decode(&response); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if response.Count != 1 || response.Names[0] != "Nollie Kickflip" {
		t.Errorf("unexpected completions: %+v", response.Names)
	}
}

func TestServerUnknownCommand(t *testing.T) {
	dec := runServer(t, nil, Request{ID: "r8", Cmd: "teleport"})

	var response ErrorResponse
	if err := dec.Decode(&response); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if response.Code != 400 {
		t.Errorf("Code = %d, expected 400", response.Code)
	}
}

// A bad request must not take the loop down; the next request still runs.
func TestServerContinuesAfterError(t *testing.T) {
	dec := runServer(t, nil,
		Request{ID: "r9", Cmd: "match"},
		Request{ID: "r10", Cmd: "health"},
	)

	var errResponse ErrorResponse
	if err := dec.Decode(&errResponse); err != nil {
		t.Fatalf("decoding error response: %v", err)
	}
	var health map[string]string
	if err := dec.Decode(&health); err != nil {
		t.Fatalf("decoding health response: %v", err)
	}
	if health["status"] != "ok" || health["id"] != "r10" {
		t.Errorf("unexpected health response: %v", health)
	}
}
