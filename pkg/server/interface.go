/*
Package server implements msgpack IPC for the trick recognition services.

The server provides a minimal interface for note matching, alias resolution,
summarization, and practice analytics using msgpack serialization over
stdin/stdout. There is no network surface; integration happens through
process communication, which keeps the core free of sockets entirely.

# IPC

The server operates on a request response model where clients send structured
messages via stdin and receive responses through stdout. Each message carries
an ID and a command, plus command-specific fields.

Match requests look like:

	{"id": "req_001", "cmd": "match", "note": "landed some kickflips"}

The server responds with ranked candidates:

	{"id": "req_001", "s": [{"n": "Kickflip", "sc": 6}], "c": 1, "t": 120}

Other commands: "resolve" (names -> catalog tricks), "summarize" (note +
names + date -> summary string), "streak" and "heatmap" (trick -> analytics
over the stored history), "complete" (prefix -> trick name completions),
and "health".

Every request is pure over the loaded catalog and history snapshot, so a
client that debounces keystrokes can simply discard stale responses by ID;
there is nothing to cancel server-side.
*/
package server

// Request is the envelope for all incoming commands.
type Request struct {
	ID         string   `msgpack:"id"`
	Cmd        string   `msgpack:"cmd"`
	Note       string   `msgpack:"note,omitempty"`
	Names      []string `msgpack:"names,omitempty"`
	Trick      string   `msgpack:"trick,omitempty"`
	Prefix     string   `msgpack:"p,omitempty"`
	Limit      int      `msgpack:"l,omitempty"`
	WindowDays int      `msgpack:"window,omitempty"`
	Date       string   `msgpack:"date,omitempty"`
}

// CandidateMsg is one ranked match in a match response.
type CandidateMsg struct {
	Name  string `msgpack:"n"`
	Type  string `msgpack:"ty"`
	Score int    `msgpack:"sc"`
}

// MatchResponse carries ranked candidates for a note.
type MatchResponse struct {
	ID         string         `msgpack:"id"`
	Candidates []CandidateMsg `msgpack:"s"`
	Count      int            `msgpack:"c"`
	TimeTaken  int64          `msgpack:"t"`
}

// TrickMsg is one resolved catalog entry.
type TrickMsg struct {
	Name       string `msgpack:"n"`
	Type       string `msgpack:"ty"`
	Difficulty int    `msgpack:"d"`
}

// ResolveResponse carries resolved tricks for a candidate name list.
type ResolveResponse struct {
	ID     string     `msgpack:"id"`
	Tricks []TrickMsg `msgpack:"tricks"`
	Count  int        `msgpack:"c"`
}

// SummaryResponse carries a composed session summary.
type SummaryResponse struct {
	ID      string `msgpack:"id"`
	Summary string `msgpack:"summary"`
}

// StreakResponse carries practice-consistency stats for one trick.
type StreakResponse struct {
	ID            string `msgpack:"id"`
	Current       int    `msgpack:"cur"`
	Longest       int    `msgpack:"max"`
	LastPracticed string `msgpack:"last,omitempty"`
	TotalSessions int    `msgpack:"total"`
}

// BucketMsg is one day of a heat-map response.
type BucketMsg struct {
	Day   string `msgpack:"day"`
	Count int    `msgpack:"n"`
	Band  int    `msgpack:"band"`
}

// HeatmapResponse carries per-day practice buckets.
type HeatmapResponse struct {
	ID      string      `msgpack:"id"`
	Buckets []BucketMsg `msgpack:"buckets"`
}

// CompleteResponse carries trick-name prefix completions.
type CompleteResponse struct {
	ID        string   `msgpack:"id"`
	Names     []string `msgpack:"names"`
	Count     int      `msgpack:"c"`
	TimeTaken int64    `msgpack:"t"`
}

// ErrorResponse holds basic error information for failed requests.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"code"`
}
