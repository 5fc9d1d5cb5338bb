// Package loader streams whitespace-trimmed words from plain text sources
// into a trie without holding a whole source in memory. Sources are read in
// fixed-size chunks; '\n' and '\r' in any combination terminate lines, and a
// line whose bytes straddle two chunks is reassembled before insertion.
package loader

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/velum/seshat/pkg/trie"
)

const (
	// MinChunkSize is the smallest read buffer the loader will use. Smaller
	// requests are clamped, never rejected.
	MinChunkSize = 1 << 10
	// DefaultChunkSize is used when the caller passes a non-positive size.
	DefaultChunkSize = 1 << 20
)

// Stats is a snapshot of loader progress.
type Stats struct {
	BytesRead     int64
	LinesSeen     int
	WordsInserted int
}

// Loader feeds words into a single trie. Not safe for concurrent use; the
// engine it wraps is single-threaded by contract.
type Loader struct {
	trie      *trie.Trie
	chunkSize int
	stats     Stats
}

// New returns a loader for t reading in chunks of chunkSize bytes.
func New(t *trie.Trie, chunkSize int) *Loader {
	switch {
	case chunkSize <= 0:
		chunkSize = DefaultChunkSize
	case chunkSize < MinChunkSize:
		log.Warnf("Chunk size %d below floor, clamping to %d", chunkSize, MinChunkSize)
		chunkSize = MinChunkSize
	}
	return &Loader{trie: t, chunkSize: chunkSize}
}

// LoadFile opens path and streams its contents into the trie. Returns the
// number of insertions attempted (duplicates included). Words inserted
// before a read failure stay in the trie.
func (l *Loader) LoadFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	n, err := l.Load(f)
	if err != nil {
		return n, fmt.Errorf("loading %s: %w", path, err)
	}
	log.Debugf("Loaded %d words from %s", n, path)
	return n, nil
}

// Load reads r in fixed-size chunks, splitting on '\n' and '\r'. Each
// complete line is trimmed of surrounding whitespace and inserted when
// non-empty. The unterminated tail of a chunk is carried into the next
// read; whatever tail remains at EOF is flushed as the final word.
func (l *Loader) Load(r io.Reader) (int, error) {
	buf := make([]byte, l.chunkSize)
	var carry []byte
	inserted := 0

	for {
		n, err := r.Read(buf)
		if n > 0 {
			l.stats.BytesRead += int64(n)

			start := 0
			for i := 0; i < n; i++ {
				c := buf[i]
				if c != '\n' && c != '\r' {
					continue
				}
				seg := buf[start:i]
				if len(carry) > 0 {
					carry = append(carry, seg...)
					seg = carry
				}
				inserted += l.insertLine(seg)
				carry = carry[:0]
				start = i + 1
			}
			if start < n {
				carry = append(carry, buf[start:n]...)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return inserted, fmt.Errorf("read failed after %d bytes: %w", l.stats.BytesRead, err)
		}
	}

	if len(carry) > 0 {
		inserted += l.insertLine(carry)
	}
	return inserted, nil
}

// insertLine trims line and inserts it, returning 1 when an insertion was
// attempted. Blank lines (and runs of terminators) produce empty segments
// and are skipped.
func (l *Loader) insertLine(line []byte) int {
	if len(line) == 0 {
		return 0
	}
	l.stats.LinesSeen++

	word := bytes.TrimSpace(line)
	if len(word) == 0 {
		return 0
	}
	l.trie.Insert(string(word))
	l.stats.WordsInserted++
	return 1
}

// Stats returns a copy of the loader's progress counters.
func (l *Loader) Stats() Stats {
	return l.stats
}
