package server

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/pastalab/shapeserve/pkg/catalog"
	"github.com/pastalab/shapeserve/pkg/config"
	"github.com/pastalab/shapeserve/pkg/index"
)

func testIndex() *index.Index {
	return index.NewBuilder("").Build([]catalog.Record{
		{"name": "Penne", "synonyms": "mostaccioli", "ishollow": "yes"},
		{"name": "Fusilli", "ishollow": "no"},
	})
}

// runServer feeds encoded requests through a server instance and
// returns a decoder over everything it wrote.
func runServer(t *testing.T, requests ...Request) *msgpack.Decoder {
	t.Helper()

	var in bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, req := range requests {
		require.NoError(t, enc.Encode(req))
	}

	var out bytes.Buffer
	srv := NewServerIO(testIndex(), config.DefaultConfig(), &in, &out)
	require.NoError(t, srv.Start(), "server must return nil on EOF")

	return msgpack.NewDecoder(&out)
}

func expectReady(t *testing.T, dec *msgpack.Decoder) {
	t.Helper()
	var status StatusResponse
	require.NoError(t, dec.Decode(&status))
	assert.Equal(t, "ready", status.Status)
}

func TestServerQueryExact(t *testing.T) {
	dec := runServer(t, Request{ID: "q1", Command: "query", Query: "mostaccioli"})
	expectReady(t, dec)

	var resp QueryResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "q1", resp.ID)
	assert.Equal(t, "exact", resp.Kind)
	require.NotNil(t, resp.Entry)
	assert.Equal(t, "penne", resp.Entry.Slug)
	assert.Equal(t, 1, resp.Count)
}

func TestServerQuerySuggestions(t *testing.T) {
	dec := runServer(t, Request{ID: "q2", Command: "query", Query: "pen"})
	expectReady(t, dec)

	var resp QueryResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "suggestions", resp.Kind)
	require.NotEmpty(t, resp.Results)
	assert.Equal(t, "penne", resp.Results[0].Slug)
	assert.Equal(t, len(resp.Results), resp.Count)
}

func TestServerQueryIdleAndNoMatch(t *testing.T) {
	dec := runServer(t,
		Request{ID: "q3", Command: "query", Query: "   "},
		Request{ID: "q4", Command: "query", Query: "xyz123notfound"},
	)
	expectReady(t, dec)

	var idle, none QueryResponse
	require.NoError(t, dec.Decode(&idle))
	assert.Equal(t, "idle", idle.Kind)
	require.NoError(t, dec.Decode(&none))
	assert.Equal(t, "no_match", none.Kind)
}

func TestServerQueryHonorsMinFuzzyLen(t *testing.T) {
	var in bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	require.NoError(t, enc.Encode(Request{ID: "q5", Command: "query", Query: "pene"}))

	cfg := config.DefaultConfig()
	cfg.Search.MinFuzzyLen = 5

	var out bytes.Buffer
	srv := NewServerIO(testIndex(), cfg, &in, &out)
	require.NoError(t, srv.Start())

	dec := msgpack.NewDecoder(&out)
	expectReady(t, dec)

	// A four-char typo stays below the raised threshold, so the fuzzy
	// tier never runs.
	var resp QueryResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, "no_match", resp.Kind)
}

func TestServerFilter(t *testing.T) {
	dec := runServer(t, Request{
		ID:         "f1",
		Command:    "filter",
		Selections: map[string]string{"isHollow": "yes"},
	})
	expectReady(t, dec)

	var resp FilterResponse
	require.NoError(t, dec.Decode(&resp))
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "penne", resp.Entries[0].Slug)
	assert.Zero(t, resp.More)
}

func TestServerStopsOnCorruptStream(t *testing.T) {
	in := bytes.NewBufferString("\xc1 not msgpack")
	var out bytes.Buffer
	srv := NewServerIO(testIndex(), config.DefaultConfig(), in, &out)

	// The stream cannot be resynchronized, so the server reports once
	// and stops instead of looping on the same bytes.
	require.Error(t, srv.Start())

	dec := msgpack.NewDecoder(&out)
	expectReady(t, dec)
	var errResp ErrorResponse
	require.NoError(t, dec.Decode(&errResp))
	assert.Equal(t, 400, errResp.Code)
}

func TestServerHealthAndUnknownCommand(t *testing.T) {
	dec := runServer(t,
		Request{ID: "h1", Command: "health"},
		Request{ID: "bad", Command: "explode"},
	)
	expectReady(t, dec)

	var ok StatusResponse
	require.NoError(t, dec.Decode(&ok))
	assert.Equal(t, "ok", ok.Status)

	var errResp ErrorResponse
	require.NoError(t, dec.Decode(&errResp))
	assert.Equal(t, "bad", errResp.ID)
	assert.Equal(t, 400, errResp.Code)
}
