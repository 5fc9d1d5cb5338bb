package trie

import "strings"

// frame is one work item of the iterative DFS: a node plus the path consumed
// up to (but not including) its own label. An explicit stack keeps very deep
// tries (one long word, no shared prefixes) from exhausting the goroutine
// stack.
type frame struct {
	n      *node
	prefix string
}

// collect appends every stored word reachable under n to out, each formed by
// concatenating prefix with the edge labels on the way down. Traversal is
// preorder in child-key order, so the output is deterministic.
func collect(n *node, prefix string, out []string) []string {
	if n == nil {
		return out
	}

	stack := []frame{{n: n, prefix: prefix}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		word := f.prefix + f.n.label
		if f.n.end {
			out = append(out, word)
		}
		// Push in reverse so children pop in ascending key order.
		for i := len(f.n.children) - 1; i >= 0; i-- {
			stack = append(stack, frame{n: f.n.children[i].child, prefix: word})
		}
	}
	return out
}

// WordsWithPrefix returns every stored word beginning with prefix, in
// child-key traversal order. The empty prefix enumerates the whole trie.
func (t *Trie) WordsWithPrefix(prefix string) []string {
	if prefix == "" {
		return collect(t.root, "", nil)
	}

	cur := t.root
	pos := 0

	for pos < len(prefix) {
		i, ok := cur.findChild(prefix[pos])
		if !ok {
			return nil
		}
		child := cur.children[i].child

		if pos+len(child.label) > len(prefix) {
			// Prefix ends mid-edge: the single matching child roots the
			// enumeration, with the part of prefix consumed so far as the
			// accumulated path.
			if strings.HasPrefix(child.label, prefix[pos:]) {
				return collect(child, prefix[:pos], nil)
			}
			return nil
		}
		if prefix[pos:pos+len(child.label)] != child.label {
			return nil
		}
		pos += len(child.label)
		cur = child
	}

	// Landed exactly on cur; its own label is re-added during enumeration.
	return collect(cur, prefix[:len(prefix)-len(cur.label)], nil)
}
