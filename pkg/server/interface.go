/*
Package server implements msgpack IPC for the shape lookup service.

The server reads msgpack-encoded requests from stdin and writes
msgpack-encoded responses to stdout. Each message carries an ID field
the response echoes back, so a client may pipeline requests.

A query request:

	{"id": "req_001", "cmd": "query", "q": "pene"}

produces a tagged result ("exact", "suggestions", "fuzzy", "no_match"
or "idle") with the matched entry or the candidate list:

	{"id": "req_001", "k": "fuzzy", "s": [{"slug": "penne", ...}], "c": 1, "t": 180}

A filter request carries feature selections instead of a query string:

	{"id": "flt_001", "cmd": "filter", "f": {"isHollow": "yes"}}

An unknown command gets an error response and the stream keeps
running. A request that fails msgpack decoding also gets an error
response, but then the server stops: a corrupt stream cannot be
resynchronized. Timing is microseconds spent inside the matching core.
*/
package server

// Request is an incoming IPC message. Command selects the operation:
// "query", "filter" or "health".
type Request struct {
	ID         string            `msgpack:"id"`
	Command    string            `msgpack:"cmd"`
	Query      string            `msgpack:"q,omitempty"`
	Selections map[string]string `msgpack:"f,omitempty"`
}

// ResultEntry is the wire form of a matched entry.
type ResultEntry struct {
	Slug  string `msgpack:"slug"`
	Name  string `msgpack:"name"`
	URL   string `msgpack:"url"`
	Label string `msgpack:"label,omitempty"`
}

// QueryResponse answers a "query" request.
type QueryResponse struct {
	ID        string        `msgpack:"id"`
	Kind      string        `msgpack:"k"`
	Entry     *ResultEntry  `msgpack:"e,omitempty"`
	Results   []ResultEntry `msgpack:"s,omitempty"`
	Count     int           `msgpack:"c"`
	TimeTaken int64         `msgpack:"t"`
}

// FilterResponse answers a "filter" request. More counts the matches
// beyond the display cap.
type FilterResponse struct {
	ID        string        `msgpack:"id"`
	Entries   []ResultEntry `msgpack:"s"`
	More      int           `msgpack:"m,omitempty"`
	Count     int           `msgpack:"c"`
	TimeTaken int64         `msgpack:"t"`
}

// StatusResponse reports server state ("ready", "ok").
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse reports a per-request failure.
type ErrorResponse struct {
	ID    string `msgpack:"id,omitempty"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
