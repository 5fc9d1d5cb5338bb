package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsOnEmptyTrie(t *testing.T) {
	tr := New()

	hs := tr.HeightStats()
	assert.Zero(t, hs.MinHeight)
	assert.Zero(t, hs.MaxHeight)
	assert.Zero(t, hs.AvgHeight)
	assert.Zero(t, hs.ModeHeight)
	assert.Empty(t, hs.AllHeights)

	wm := tr.WordMetrics()
	assert.Zero(t, wm.MinLength)
	assert.Zero(t, wm.MaxLength)
	assert.Zero(t, wm.AvgLength)
	assert.Zero(t, wm.TotalChars)
	assert.Empty(t, wm.LengthCounts)

	ms := tr.MemoryStats()
	assert.Equal(t, 1, ms.NodeCount, "empty trie still has its root")
	assert.Zero(t, ms.StringBytes)
	assert.Equal(t, ms.TotalBytes, ms.OverheadBytes)
	assert.Zero(t, ms.BytesPerWord)
}

func TestHeightStats(t *testing.T) {
	tr := New()
	// "test" is one hop; "testing" and "tester" are two (leaf under the
	// shared intermediate).
	for _, w := range []string{"test", "testing", "tester"} {
		tr.Insert(w)
	}

	hs := tr.HeightStats()
	assert.Equal(t, 1, hs.MinHeight)
	assert.Equal(t, 2, hs.MaxHeight)
	assert.InDelta(t, 5.0/3.0, hs.AvgHeight, 1e-9)
	assert.Equal(t, 2, hs.ModeHeight)
	assert.ElementsMatch(t, []int{1, 2, 2}, hs.AllHeights)
}

func TestHeightStatsModeTieBreak(t *testing.T) {
	tr := New()
	// Depths: "a"=1, "bcd"=2, "bce"=2 (split fork at "bc"), "z"=1. Counts
	// tie 2:2; the depth met first in traversal order (1, via "a") wins.
	for _, w := range []string{"a", "bcd", "bce", "z"} {
		tr.Insert(w)
	}

	hs := tr.HeightStats()
	assert.Equal(t, []int{1, 2, 2, 1}, hs.AllHeights)
	assert.Equal(t, 1, hs.ModeHeight)
}

func TestMemoryStats(t *testing.T) {
	tr := New()
	for _, w := range []string{"test", "testing", "tester"} {
		tr.Insert(w)
	}

	ms := tr.MemoryStats()
	// root + "test" + "er" + "ing"
	assert.Equal(t, 4, ms.NodeCount)
	assert.Equal(t, len("test")+len("er")+len("ing"), ms.StringBytes)
	assert.Equal(t, ms.TotalBytes-ms.StringBytes, ms.OverheadBytes)
	assert.Greater(t, ms.BytesPerWord, 0.0)
}

func TestWordMetrics(t *testing.T) {
	tr := New()
	for _, w := range []string{"go", "gone", "golang", "gopher"} {
		tr.Insert(w)
	}

	wm := tr.WordMetrics()
	assert.Equal(t, 2, wm.MinLength)
	assert.Equal(t, 6, wm.MaxLength)
	assert.Equal(t, 2+4+6+6, wm.TotalChars)
	assert.InDelta(t, 4.5, wm.AvgLength, 1e-9)
	assert.Equal(t, 6, wm.ModeLength)

	require.Len(t, wm.LengthCounts, 7, "histogram is dense from 0 to max")
	assert.Equal(t, []int{0, 0, 1, 0, 1, 0, 2}, wm.LengthCounts)
}

func TestWordMetricsAfterRemoval(t *testing.T) {
	tr := New()
	tr.Insert("short")
	tr.Insert("muchlongerword")

	require.True(t, tr.Remove("muchlongerword"))
	wm := tr.WordMetrics()
	assert.Equal(t, 5, wm.MinLength)
	assert.Equal(t, 5, wm.MaxLength)
	assert.Len(t, wm.LengthCounts, 6)
}
