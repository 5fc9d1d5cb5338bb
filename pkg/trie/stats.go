package trie

import "unsafe"

// HeightStats summarizes per-word depths, counted as edge hops from the root
// to each end-of-word node.
type HeightStats struct {
	MinHeight  int
	MaxHeight  int
	AvgHeight  float64
	ModeHeight int
	AllHeights []int
}

// MemoryStats approximates the live footprint of the tree: a fixed per-node
// overhead times the node count plus the bytes held in edge labels. The
// overhead reflects the actual Go node layout, including child slice entries.
type MemoryStats struct {
	TotalBytes    int
	NodeCount     int
	StringBytes   int
	OverheadBytes int
	BytesPerWord  float64
}

// WordMetrics summarizes reconstructed word lengths, with a dense
// length-to-count histogram indexed from 0 to the observed maximum.
type WordMetrics struct {
	MinLength    int
	MaxLength    int
	AvgLength    float64
	ModeLength   int
	TotalChars   int
	LengthCounts []int
}

const (
	nodeOverhead = int(unsafe.Sizeof(node{}))
	edgeOverhead = int(unsafe.Sizeof(edge{}))
	trieOverhead = int(unsafe.Sizeof(Trie{}))
)

// depthFrame carries an int alongside the node during iterative walks; the
// int is a depth for height stats and a running length for word metrics.
type depthFrame struct {
	n *node
	v int
}

// HeightStats computes depth statistics over all stored words. An empty trie
// yields the zero value.
func (t *Trie) HeightStats() HeightStats {
	var stats HeightStats
	if t.Empty() {
		return stats
	}

	var heights []int
	stack := []depthFrame{{n: t.root, v: 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.n.end {
			heights = append(heights, f.v)
		}
		for i := len(f.n.children) - 1; i >= 0; i-- {
			stack = append(stack, depthFrame{n: f.n.children[i].child, v: f.v + 1})
		}
	}

	stats.AllHeights = heights
	stats.MinHeight, stats.MaxHeight = minMax(heights)
	stats.AvgHeight = float64(sum(heights)) / float64(len(heights))
	stats.ModeHeight = mode(heights)
	return stats
}

// MemoryStats reports the approximate footprint of the live tree. The lone
// root of an empty trie still counts as one node.
func (t *Trie) MemoryStats() MemoryStats {
	nodeCount := 0
	stringBytes := 0
	childEntries := 0

	stack := []*node{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		nodeCount++
		stringBytes += len(n.label)
		childEntries += len(n.children)
		for i := range n.children {
			stack = append(stack, n.children[i].child)
		}
	}

	total := trieOverhead + nodeCount*nodeOverhead + childEntries*edgeOverhead + stringBytes

	stats := MemoryStats{
		TotalBytes:    total,
		NodeCount:     nodeCount,
		StringBytes:   stringBytes,
		OverheadBytes: total - stringBytes,
	}
	if t.words > 0 {
		stats.BytesPerWord = float64(total) / float64(t.words)
	}
	return stats
}

// WordMetrics computes length statistics over all stored words. An empty
// trie yields the zero value (and a nil histogram).
func (t *Trie) WordMetrics() WordMetrics {
	var metrics WordMetrics
	if t.Empty() {
		return metrics
	}

	var lengths []int
	stack := []depthFrame{{n: t.root, v: 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		l := f.v + len(f.n.label)
		if f.n.end {
			lengths = append(lengths, l)
		}
		for i := len(f.n.children) - 1; i >= 0; i-- {
			stack = append(stack, depthFrame{n: f.n.children[i].child, v: l})
		}
	}

	metrics.MinLength, metrics.MaxLength = minMax(lengths)
	metrics.TotalChars = sum(lengths)
	metrics.AvgLength = float64(metrics.TotalChars) / float64(len(lengths))
	metrics.ModeLength = mode(lengths)

	metrics.LengthCounts = make([]int, metrics.MaxLength+1)
	for _, l := range lengths {
		metrics.LengthCounts[l]++
	}
	return metrics
}

func minMax(values []int) (int, int) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func sum(values []int) int {
	s := 0
	for _, v := range values {
		s += v
	}
	return s
}

// mode returns the most frequent value; on a tie the value encountered first
// in traversal order wins.
func mode(values []int) int {
	counts := make(map[int]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	best, bestCount := 0, 0
	for _, v := range values {
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}
