package server

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/velum/seshat/pkg/config"
	"github.com/velum/seshat/pkg/loader"
	"github.com/velum/seshat/pkg/trie"
)

// Server handles the IPC for trie operations. The engine is single-threaded
// by contract, so every call into it (including the async bulk load
// goroutine) goes through mu.
type Server struct {
	trie    *trie.Trie
	cfg     *config.Config
	reader  io.Reader
	writer  io.Writer
	mu      sync.Mutex
	writeMu sync.Mutex
	pending sync.WaitGroup
}

// NewServer creates a new trie server using stdin/stdout for IPC.
func NewServer(t *trie.Trie, cfg *config.Config) *Server {
	return &Server{
		trie:   t,
		cfg:    cfg,
		reader: os.Stdin,
		writer: os.Stdout,
	}
}

// Start begins listening for IPC requests. Returns nil on EOF after any
// in-flight async load has finished.
func (s *Server) Start() error {
	log.Debug("Starting server")
	s.send(AckResponse{Status: "ready"})

	dec := msgpack.NewDecoder(s.reader)
	for {
		var req Request
		if err := dec.Decode(&req); err != nil {
			if err == io.EOF {
				s.pending.Wait()
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return fmt.Errorf("decode failed: %w", err)
		}
		s.handle(req)
	}
}

// handle dispatches one request. Everything except load_file_async answers
// before the next request is read.
func (s *Server) handle(req Request) {
	switch req.Op {
	case "insert":
		if !s.checkWord(req.ID, req.Word) {
			return
		}
		s.withLock(func() { s.trie.Insert(req.Word) })
		s.send(AckResponse{ID: req.ID, Status: "ok"})

	case "insert_batch":
		if !s.checkBatch(req.ID, req.Words) {
			return
		}
		results := make([]bool, len(req.Words))
		s.withLock(func() {
			for i, w := range req.Words {
				before := s.trie.Size()
				s.trie.Insert(w)
				results[i] = s.trie.Size() > before
			}
		})
		s.send(BatchResponse{ID: req.ID, Results: results, Count: len(results)})

	case "search":
		if !s.checkWord(req.ID, req.Word) {
			return
		}
		start := time.Now()
		var found bool
		s.withLock(func() { found = s.trie.Search(req.Word) })
		s.send(BoolResponse{ID: req.ID, OK: found, TimeTaken: time.Since(start).Microseconds()})

	case "search_batch":
		if !s.checkBatch(req.ID, req.Words) {
			return
		}
		results := make([]bool, len(req.Words))
		s.withLock(func() {
			for i, w := range req.Words {
				results[i] = s.trie.Search(w)
			}
		})
		s.send(BatchResponse{ID: req.ID, Results: results, Count: len(results)})

	case "starts_with":
		start := time.Now()
		var found bool
		s.withLock(func() { found = s.trie.StartsWith(req.Prefix) })
		s.send(BoolResponse{ID: req.ID, OK: found, TimeTaken: time.Since(start).Microseconds()})

	case "prefix":
		start := time.Now()
		var words []string
		s.withLock(func() { words = s.trie.WordsWithPrefix(req.Prefix) })
		s.send(WordsResponse{ID: req.ID, Words: words, Count: len(words), TimeTaken: time.Since(start).Microseconds()})

	case "remove":
		if !s.checkWord(req.ID, req.Word) {
			return
		}
		var removed bool
		s.withLock(func() { removed = s.trie.Remove(req.Word) })
		s.send(BoolResponse{ID: req.ID, OK: removed})

	case "remove_batch":
		if !s.checkBatch(req.ID, req.Words) {
			return
		}
		results := make([]bool, len(req.Words))
		s.withLock(func() {
			for i, w := range req.Words {
				results[i] = s.trie.Remove(w)
			}
		})
		s.send(BatchResponse{ID: req.ID, Results: results, Count: len(results)})

	case "empty":
		var empty bool
		s.withLock(func() { empty = s.trie.Empty() })
		s.send(BoolResponse{ID: req.ID, OK: empty})

	case "size":
		var size int
		s.withLock(func() { size = s.trie.Size() })
		s.send(CountResponse{ID: req.ID, Count: size})

	case "clear":
		s.withLock(func() { s.trie.Clear() })
		s.send(AckResponse{ID: req.ID, Status: "ok"})

	case "pattern":
		// An empty pattern matches nothing; that is an empty result,
		// not a client error.
		if len(req.Pattern) > s.cfg.Server.MaxPattern {
			s.sendError(req.ID, fmt.Sprintf("Pattern exceeds maximum length of %d", s.cfg.Server.MaxPattern), 400)
			return
		}
		start := time.Now()
		var words []string
		s.withLock(func() { words = s.trie.PatternSearch(req.Pattern) })
		s.send(WordsResponse{ID: req.ID, Words: words, Count: len(words), TimeTaken: time.Since(start).Microseconds()})

	case "height_stats":
		var stats trie.HeightStats
		s.withLock(func() { stats = s.trie.HeightStats() })
		s.send(HeightResponse{
			ID:         req.ID,
			MinHeight:  stats.MinHeight,
			MaxHeight:  stats.MaxHeight,
			AvgHeight:  stats.AvgHeight,
			ModeHeight: stats.ModeHeight,
			AllHeights: stats.AllHeights,
		})

	case "memory_stats":
		var stats trie.MemoryStats
		s.withLock(func() { stats = s.trie.MemoryStats() })
		s.send(MemoryResponse{
			ID:            req.ID,
			TotalBytes:    stats.TotalBytes,
			NodeCount:     stats.NodeCount,
			StringBytes:   stats.StringBytes,
			OverheadBytes: stats.OverheadBytes,
			BytesPerWord:  stats.BytesPerWord,
		})

	case "word_metrics":
		var metrics trie.WordMetrics
		s.withLock(func() { metrics = s.trie.WordMetrics() })
		s.send(MetricsResponse{
			ID:           req.ID,
			MinLength:    metrics.MinLength,
			MaxLength:    metrics.MaxLength,
			AvgLength:    metrics.AvgLength,
			ModeLength:   metrics.ModeLength,
			TotalChars:   metrics.TotalChars,
			LengthCounts: metrics.LengthCounts,
		})

	case "load_file":
		if req.Path == "" {
			s.sendError(req.ID, "Missing 'path' parameter", 400)
			return
		}
		s.loadFile(req)

	case "load_file_async":
		if req.Path == "" {
			s.sendError(req.ID, "Missing 'path' parameter", 400)
			return
		}
		s.pending.Add(1)
		go func() {
			defer s.pending.Done()
			s.loadFile(req)
		}()

	default:
		s.sendError(req.ID, fmt.Sprintf("Unknown op: %s", req.Op), 400)
	}
}

// loadFile runs a bulk load under the engine lock and reports the attempted
// insertion count. Words inserted before a failure stay in the trie.
func (s *Server) loadFile(req Request) {
	chunk := req.Chunk
	if chunk == 0 {
		chunk = s.cfg.Loader.ChunkSize
	}

	start := time.Now()
	var inserted int
	var err error
	s.withLock(func() {
		inserted, err = loader.New(s.trie, chunk).LoadFile(req.Path)
	})
	if err != nil {
		log.Errorf("Bulk load: %v", err)
		s.sendError(req.ID, err.Error(), 500)
		return
	}
	s.send(CountResponse{ID: req.ID, Count: inserted, TimeTaken: time.Since(start).Microseconds()})
}

func (s *Server) withLock(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// checkWord validates a single-word argument and reports failures to the
// client. The engine treats garbage as a contract violation, so it never
// gets any.
func (s *Server) checkWord(id, word string) bool {
	if word == "" {
		s.sendError(id, "Missing 'w' parameter", 400)
		return false
	}
	if len(word) > s.cfg.Server.MaxWord {
		s.sendError(id, fmt.Sprintf("Word exceeds maximum length of %d", s.cfg.Server.MaxWord), 400)
		return false
	}
	return true
}

func (s *Server) checkBatch(id string, words []string) bool {
	if len(words) == 0 {
		s.sendError(id, "Missing 'ws' parameter", 400)
		return false
	}
	if len(words) > s.cfg.Server.MaxBatch {
		s.sendError(id, fmt.Sprintf("Batch exceeds maximum size of %d", s.cfg.Server.MaxBatch), 400)
		return false
	}
	for _, w := range words {
		if len(w) > s.cfg.Server.MaxWord {
			s.sendError(id, fmt.Sprintf("Word exceeds maximum length of %d", s.cfg.Server.MaxWord), 400)
			return false
		}
	}
	return true
}

// send marshals a response and writes it to the client. Responses from the
// async load goroutine interleave with the request loop, hence the write
// lock.
func (s *Server) send(response any) {
	data, err := msgpack.Marshal(response)
	if err != nil {
		log.Errorf("Marshaling response: %v", err)
		return
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if _, err := s.writer.Write(data); err != nil {
		log.Errorf("Writing response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
