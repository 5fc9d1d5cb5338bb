package trie

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countEnds re-derives the word count by traversal, independently of the
// live counter.
func countEnds(n *node) int {
	count := 0
	if n.end {
		count = 1
	}
	for _, e := range n.children {
		count += countEnds(e.child)
	}
	return count
}

// assertNoDeadLeaves fails if any non-root node routes nowhere: every node
// must have children or carry a word.
func assertNoDeadLeaves(t *testing.T, n *node, isRoot bool) {
	t.Helper()
	if !isRoot {
		if len(n.children) == 0 && !n.end {
			t.Fatalf("dead leaf with label %q left in tree", n.label)
		}
		if n.label == "" {
			t.Fatalf("non-root node with empty edge label")
		}
	}
	for _, e := range n.children {
		if e.b != e.child.label[0] {
			t.Fatalf("child keyed under %q but label starts with %q", e.b, e.child.label[0])
		}
		assertNoDeadLeaves(t, e.child, false)
	}
}

func TestInsertSearchRoundTrip(t *testing.T) {
	tr := New()
	words := []string{"cat", "car", "card", "care", "dog", "do", "done"}

	for _, w := range words {
		tr.Insert(w)
	}
	require.Equal(t, len(words), tr.Size())

	for _, w := range words {
		assert.True(t, tr.Search(w), "expected %q present", w)
	}
	for _, w := range []string{"ca", "cards", "d", "doner", ""} {
		assert.False(t, tr.Search(w), "expected %q absent", w)
	}
}

func TestInsertIdempotent(t *testing.T) {
	tr := New()
	tr.Insert("hello")
	tr.Insert("hello")
	tr.Insert("hello")

	assert.Equal(t, 1, tr.Size())
	assert.True(t, tr.Search("hello"))
}

func TestInsertEmptyWordIgnored(t *testing.T) {
	tr := New()
	tr.Insert("")

	assert.True(t, tr.Empty())
	assert.False(t, tr.StartsWith(""))
}

func TestSplitSharesPrefix(t *testing.T) {
	tr := New()
	tr.Insert("test")
	tr.Insert("testing")
	tr.Insert("tester")

	require.Equal(t, 3, tr.Size())

	// Exactly one intermediate for "test" with "ing" and "er" hanging off it.
	require.Len(t, tr.root.children, 1)
	mid := tr.root.children[0].child
	assert.Equal(t, "test", mid.label)
	assert.True(t, mid.end)
	require.Len(t, mid.children, 2)
	assert.Equal(t, "er", mid.children[0].child.label)
	assert.Equal(t, "ing", mid.children[1].child.label)
	assert.True(t, mid.children[0].child.end)
	assert.True(t, mid.children[1].child.end)
}

func TestSplitWordEndsAtIntermediate(t *testing.T) {
	tr := New()
	tr.Insert("testing")
	tr.Insert("test")

	require.Equal(t, 2, tr.Size())
	require.Len(t, tr.root.children, 1)

	mid := tr.root.children[0].child
	assert.Equal(t, "test", mid.label)
	assert.True(t, mid.end)
	require.Len(t, mid.children, 1)
	assert.Equal(t, "ing", mid.children[0].child.label)

	// The re-parented child must point back at the intermediate.
	assert.Same(t, mid, mid.children[0].child.parent)
	assert.Same(t, tr.root, mid.parent)
}

func TestStartsWith(t *testing.T) {
	tr := New()
	for _, w := range []string{"apple", "application", "banana"} {
		tr.Insert(w)
	}

	assert.True(t, tr.StartsWith("app"))
	assert.True(t, tr.StartsWith("appl"))
	// Ends strictly inside the "ication" edge.
	assert.True(t, tr.StartsWith("applica"))
	assert.True(t, tr.StartsWith("apple"))
	assert.True(t, tr.StartsWith("b"))
	assert.False(t, tr.StartsWith("applz"))
	assert.False(t, tr.StartsWith("applications"))
	assert.False(t, tr.StartsWith("c"))

	// Empty prefix matches iff the trie is non-empty.
	assert.True(t, tr.StartsWith(""))
	tr.Clear()
	assert.False(t, tr.StartsWith(""))
}

func TestRemove(t *testing.T) {
	tr := New()
	for _, w := range []string{"test", "testing", "tester"} {
		tr.Insert(w)
	}

	assert.False(t, tr.Remove("tes"), "structural fork is not a stored word")
	assert.False(t, tr.Remove("absent"))
	assert.Equal(t, 3, tr.Size())

	assert.True(t, tr.Remove("testing"))
	assert.False(t, tr.Search("testing"))
	assert.True(t, tr.Search("test"))
	assert.True(t, tr.Search("tester"))
	assert.Equal(t, 2, tr.Size())

	assert.False(t, tr.Remove("testing"), "second removal is a no-op")
}

func TestRemovePrunesDeadChains(t *testing.T) {
	tr := New()
	for _, w := range []string{"a", "abc", "abcdef"} {
		tr.Insert(w)
	}

	// Removing the deepest word must prune "def" but keep "abc" intact.
	require.True(t, tr.Remove("abcdef"))
	assertNoDeadLeaves(t, tr.root, true)
	assert.True(t, tr.Search("abc"))

	// Removing the fork word leaves "a" as the only leaf.
	require.True(t, tr.Remove("abc"))
	assertNoDeadLeaves(t, tr.root, true)
	assert.True(t, tr.Search("a"))
	assert.Equal(t, 1, tr.Size())

	require.True(t, tr.Remove("a"))
	assert.True(t, tr.Empty())
	assert.Empty(t, tr.root.children)
}

func TestRemoveKeepsForkForSiblings(t *testing.T) {
	tr := New()
	tr.Insert("card")
	tr.Insert("care")

	require.True(t, tr.Remove("card"))
	assert.True(t, tr.Search("care"))
	assertNoDeadLeaves(t, tr.root, true)
}

func TestRemoveAbsentPrefixWordIsNoOp(t *testing.T) {
	tr := New()
	tr.Insert("ceb15")

	assert.False(t, tr.Remove("ceb1"))
	assert.True(t, tr.Search("ceb15"))
	assert.Equal(t, []string{"ceb15"}, tr.WordsWithPrefix("ceb"))
	assert.Equal(t, 1, tr.Size())
}

func TestCounterInvariantUnderRandomOps(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tr := New()
	live := map[string]bool{}

	vocab := make([]string, 0, 200)
	for i := 0; i < 200; i++ {
		vocab = append(vocab, fmt.Sprintf("w%c%c%d", 'a'+rng.Intn(4), 'a'+rng.Intn(4), rng.Intn(30)))
	}

	for i := 0; i < 2000; i++ {
		w := vocab[rng.Intn(len(vocab))]
		if rng.Intn(3) == 0 {
			removed := tr.Remove(w)
			assert.Equal(t, live[w], removed)
			delete(live, w)
		} else {
			tr.Insert(w)
			live[w] = true
		}

		require.Equal(t, len(live), tr.Size(), "counter drifted at op %d", i)
		require.Equal(t, tr.Size(), countEnds(tr.root), "counter disagrees with traversal at op %d", i)
	}
	assertNoDeadLeaves(t, tr.root, true)
}

func TestWordsWithPrefix(t *testing.T) {
	tr := New()
	for _, w := range []string{"apple", "application", "apply", "banana", "band"} {
		tr.Insert(w)
	}

	assert.ElementsMatch(t, []string{"apple", "application", "apply"}, tr.WordsWithPrefix("app"))
	assert.ElementsMatch(t, []string{"application"}, tr.WordsWithPrefix("applic"))
	assert.ElementsMatch(t, []string{"banana", "band"}, tr.WordsWithPrefix("ban"))
	assert.Empty(t, tr.WordsWithPrefix("c"))
	assert.Empty(t, tr.WordsWithPrefix("applez"))

	all := tr.WordsWithPrefix("")
	assert.ElementsMatch(t, []string{"apple", "application", "apply", "banana", "band"}, all)
}

func TestWordsWithPrefixMidEdge(t *testing.T) {
	tr := New()
	tr.Insert("hello")

	// "hel" ends inside the single "hello" edge; the full word must come
	// back, not a truncated label.
	assert.Equal(t, []string{"hello"}, tr.WordsWithPrefix("hel"))
	assert.Equal(t, []string{"hello"}, tr.WordsWithPrefix("hello"))
	assert.Empty(t, tr.WordsWithPrefix("help"))
}

func TestStartsWithAgreesWithEnumeration(t *testing.T) {
	tr := New()
	for _, w := range []string{"one", "once", "only", "two"} {
		tr.Insert(w)
	}

	for _, p := range []string{"", "o", "on", "onc", "once", "ones", "t", "tw", "x"} {
		assert.Equal(t, len(tr.WordsWithPrefix(p)) > 0, tr.StartsWith(p), "prefix %q", p)
	}
}

func TestClear(t *testing.T) {
	tr := New()
	tr.Insert("alpha")
	tr.Insert("beta")

	tr.Clear()
	assert.True(t, tr.Empty())
	assert.Equal(t, 0, tr.Size())
	assert.False(t, tr.Search("alpha"))
	assert.Empty(t, tr.WordsWithPrefix(""))

	tr.Insert("gamma")
	assert.Equal(t, 1, tr.Size())
}
