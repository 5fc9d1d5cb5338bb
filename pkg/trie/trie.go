// Package trie implements the compressed (radix) string index at the core of
// seshat: exact lookup, prefix queries, wildcard pattern search, removal with
// orphan pruning, and structural analytics.
//
// The engine is single-threaded by design. Every operation assumes exclusive
// access for its duration; callers that need concurrency must serialize on
// the outside (the IPC server does exactly that).
package trie

import "strings"

// Trie owns a tree of edge-labeled nodes and a live word counter. The counter
// always equals the number of end-of-word nodes reachable from the root and
// is the sole source of truth for Size and Empty.
type Trie struct {
	root  *node
	words int
}

// New returns an empty trie.
func New() *Trie {
	return &Trie{root: &node{}}
}

// Insert makes word present. Inserting a word twice leaves the counter
// untouched. The empty string is ignored.
func (t *Trie) Insert(word string) {
	if word == "" {
		return
	}

	cur := t.root
	pos := 0

	for pos < len(word) {
		i, ok := cur.findChild(word[pos])
		if !ok {
			// No edge starts with this byte: the whole remaining suffix
			// becomes a new leaf.
			leaf := &node{
				label:      word[pos:],
				end:        true,
				parent:     cur,
				parentByte: word[pos],
			}
			cur.insertChild(i, leaf)
			t.words++
			return
		}

		child := cur.children[i].child
		common := commonPrefixLen(child.label, word[pos:])

		if common == len(child.label) {
			// Edge fully consumed, keep walking.
			pos += common
			cur = child
			if pos == len(word) {
				if !cur.end {
					cur.end = true
					t.words++
				}
				return
			}
			continue
		}

		// Partial overlap: split the edge at the common prefix and continue
		// from the fresh intermediate node.
		cur = t.split(cur, i, common)
		pos += common
		if pos == len(word) {
			cur.end = true
			t.words++
			return
		}
		// Next iteration misses on cur (the old child diverges at common by
		// construction) and creates the leaf for the unmatched remainder.
	}
}

// split replaces parent.children[i] with an intermediate node holding the
// first common bytes of the child's label, re-parents the old child under it
// with a truncated label, and returns the intermediate.
func (t *Trie) split(parent *node, i, common int) *node {
	old := parent.children[i].child

	mid := &node{
		label:      old.label[:common],
		parent:     parent,
		parentByte: parent.children[i].b,
	}

	old.label = old.label[common:]
	old.parent = mid
	old.parentByte = old.label[0]

	mid.children = []edge{{b: old.label[0], child: old}}
	parent.children[i].child = mid
	return mid
}

// findNode walks to the node that exactly consumes word, or nil. A word that
// ends strictly inside an edge label has no node.
func (t *Trie) findNode(word string) *node {
	if word == "" {
		return nil
	}

	cur := t.root
	pos := 0

	for pos < len(word) {
		i, ok := cur.findChild(word[pos])
		if !ok {
			return nil
		}
		child := cur.children[i].child
		end := pos + len(child.label)
		if end > len(word) || word[pos:end] != child.label {
			return nil
		}
		pos = end
		cur = child
	}
	return cur
}

// Search reports whether word is stored. A structural fork node that no word
// terminates at does not count.
func (t *Trie) Search(word string) bool {
	n := t.findNode(word)
	return n != nil && n.end
}

// StartsWith reports whether any stored word begins with prefix. A prefix
// ending strictly inside an edge label still matches when the label begins
// with the unconsumed remainder. The empty prefix matches iff the trie holds
// at least one word.
func (t *Trie) StartsWith(prefix string) bool {
	if prefix == "" {
		return !t.Empty()
	}

	cur := t.root
	pos := 0

	for pos < len(prefix) {
		i, ok := cur.findChild(prefix[pos])
		if !ok {
			return false
		}
		child := cur.children[i].child
		if pos+len(child.label) > len(prefix) {
			return strings.HasPrefix(child.label, prefix[pos:])
		}
		if prefix[pos:pos+len(child.label)] != child.label {
			return false
		}
		pos += len(child.label)
		cur = child
	}
	return true
}

// Remove clears word's end-of-word marker and prunes any dead leaf chain it
// leaves behind. Returns true iff a stored word was actually removed.
func (t *Trie) Remove(word string) bool {
	n := t.findNode(word)
	if n == nil || !n.end {
		return false
	}

	n.end = false
	t.words--

	// Walk upward detaching nodes that neither hold a word nor route to one.
	// The first ancestor with children or its own end marker stops the walk;
	// the root is never detached.
	for n.parent != nil && len(n.children) == 0 && !n.end {
		p := n.parent
		if i, ok := p.findChild(n.parentByte); ok {
			p.removeChild(i)
		}
		n.parent = nil
		n = p
	}
	return true
}

// Size returns the number of stored words.
func (t *Trie) Size() int {
	return t.words
}

// Empty reports whether no words are stored.
func (t *Trie) Empty() bool {
	return t.words == 0
}

// Clear drops the whole tree and resets to a single empty root.
func (t *Trie) Clear() {
	t.root = &node{}
	t.words = 0
}
