package trie

import "sort"

// node is a single edge-labeled trie node. label is the substring consumed
// along the incoming edge; only the root carries an empty label. parent and
// parentByte exist solely for the upward pruning walk after a removal and
// never imply ownership.
type node struct {
	label      string
	end        bool
	parent     *node
	parentByte byte
	children   []edge
}

// edge pairs a child with the leading byte of its label. The slice on node
// is kept sorted by that byte, so no two children ever share one.
type edge struct {
	b     byte
	child *node
}

// findChild returns the position of the child attached under b. When no such
// child exists, ok is false and the index is the insertion point that keeps
// the slice sorted.
func (n *node) findChild(b byte) (int, bool) {
	i := sort.Search(len(n.children), func(j int) bool {
		return n.children[j].b >= b
	})
	return i, i < len(n.children) && n.children[i].b == b
}

// insertChild places c at index i, which must come from findChild.
func (n *node) insertChild(i int, c *node) {
	n.children = append(n.children, edge{})
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = edge{b: c.label[0], child: c}
}

// removeChild detaches the child at index i.
func (n *node) removeChild(i int) {
	copy(n.children[i:], n.children[i+1:])
	n.children[len(n.children)-1] = edge{}
	n.children = n.children[:len(n.children)-1]
}

// commonPrefixLen returns the length of the longest shared leading substring.
// Pure byte comparison, no normalization.
func commonPrefixLen(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
