/*
Package server implements msgpack IPC for the seshat trie engine.

The server exposes the engine's operation set 1:1 over stdin/stdout with
binary msgpack encoding. Messages are processed synchronously; every request
carries an ID that is echoed in the response, and mutating operations are
serialized with a single lock so the engine never sees concurrent calls.

# IPC

A request names an operation and the arguments it needs:

	{"id": "req_001", "op": "insert", "w": "amenity"}
	{"id": "req_002", "op": "prefix", "p": "ame"}
	{"id": "req_003", "op": "pattern", "q": "a?e*"}
	{"id": "req_004", "op": "load_file", "path": "words.txt", "chunk": 1048576}

Lookup responses carry a boolean, enumeration responses a word list with a
count, and stats responses the structured record of the matching query:

	{"id": "req_002", "ws": ["amenity", "america"], "c": 2, "t": 145}

Batch forms (insert_batch, search_batch, remove_batch) take a word list and
answer with a per-word result list in input order. load_file_async runs the
bulk load off the request loop and replies with the same ID once the load
finishes or fails; engine access stays serialized for its whole duration.

Validation failures (empty arguments, words over the configured caps,
oversized batches) and unknown operations produce an error response with a
code, never a dropped connection.
*/
package server

// Request is the single incoming message shape; op decides which fields are
// read.
type Request struct {
	ID      string   `msgpack:"id"`
	Op      string   `msgpack:"op"`
	Word    string   `msgpack:"w,omitempty"`
	Words   []string `msgpack:"ws,omitempty"`
	Prefix  string   `msgpack:"p,omitempty"`
	Pattern string   `msgpack:"q,omitempty"`
	Path    string   `msgpack:"path,omitempty"`
	Chunk   int      `msgpack:"chunk,omitempty"`
}

// AckResponse answers operations with no payload (insert, clear, ready).
type AckResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
}

// BoolResponse answers search, starts_with, remove and empty.
type BoolResponse struct {
	ID        string `msgpack:"id"`
	OK        bool   `msgpack:"ok"`
	TimeTaken int64  `msgpack:"t"`
}

// CountResponse answers size and the bulk load operations.
type CountResponse struct {
	ID        string `msgpack:"id"`
	Count     int    `msgpack:"c"`
	TimeTaken int64  `msgpack:"t"`
}

// WordsResponse answers prefix and pattern queries.
type WordsResponse struct {
	ID        string   `msgpack:"id"`
	Words     []string `msgpack:"ws"`
	Count     int      `msgpack:"c"`
	TimeTaken int64    `msgpack:"t"`
}

// BatchResponse answers the batch forms with per-word results in input
// order.
type BatchResponse struct {
	ID      string `msgpack:"id"`
	Results []bool `msgpack:"rs"`
	Count   int    `msgpack:"c"`
}

// HeightResponse mirrors trie.HeightStats.
type HeightResponse struct {
	ID         string  `msgpack:"id"`
	MinHeight  int     `msgpack:"min"`
	MaxHeight  int     `msgpack:"max"`
	AvgHeight  float64 `msgpack:"avg"`
	ModeHeight int     `msgpack:"mode"`
	AllHeights []int   `msgpack:"all"`
}

// MemoryResponse mirrors trie.MemoryStats.
type MemoryResponse struct {
	ID            string  `msgpack:"id"`
	TotalBytes    int     `msgpack:"total"`
	NodeCount     int     `msgpack:"nodes"`
	StringBytes   int     `msgpack:"strings"`
	OverheadBytes int     `msgpack:"overhead"`
	BytesPerWord  float64 `msgpack:"bpw"`
}

// MetricsResponse mirrors trie.WordMetrics.
type MetricsResponse struct {
	ID           string  `msgpack:"id"`
	MinLength    int     `msgpack:"min"`
	MaxLength    int     `msgpack:"max"`
	AvgLength    float64 `msgpack:"avg"`
	ModeLength   int     `msgpack:"mode"`
	TotalChars   int     `msgpack:"chars"`
	LengthCounts []int   `msgpack:"hist"`
}

// ErrorResponse holds basic error information for failed requests.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
