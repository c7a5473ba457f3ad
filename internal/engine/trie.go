package engine

import (
	"sort"

	"userdict/internal/domain"
)

// Trie is a rune-keyed prefix tree implementation of Engine.
type Trie struct {
	root *trieNode
	size int
}

type trieNode struct {
	children  map[rune]*trieNode
	terminal  bool
	frequency int
}

// NewTrie creates an empty trie
func NewTrie() *Trie {
	return &Trie{root: newTrieNode()}
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

// Reset drops every entry
func (t *Trie) Reset() {
	t.root = newTrieNode()
	t.size = 0
}

// Insert adds a word or updates its frequency if already present
func (t *Trie) Insert(word string, frequency int) {
	if word == "" {
		return
	}
	node := t.root
	for _, r := range word {
		child, ok := node.children[r]
		if !ok {
			child = newTrieNode()
			node.children[r] = child
		}
		node = child
	}
	if !node.terminal {
		node.terminal = true
		t.size++
	}
	node.frequency = frequency
}

// Contains reports exact membership
func (t *Trie) Contains(word string) bool {
	node := t.find(word)
	return node != nil && node.terminal
}

// Len returns the number of stored words
func (t *Trie) Len() int {
	return t.size
}

// Lookup returns candidates starting with prefix, ordered by frequency
// descending then lexicographically. A limit <= 0 means no limit.
func (t *Trie) Lookup(prefix string, limit int) []domain.Suggestion {
	node := t.find(prefix)
	if node == nil {
		return nil
	}

	var out []domain.Suggestion
	collect(node, prefix, &out)

	sort.Slice(out, func(i, j int) bool {
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency > out[j].Frequency
		}
		return out[i].Word < out[j].Word
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (t *Trie) find(word string) *trieNode {
	node := t.root
	for _, r := range word {
		child, ok := node.children[r]
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

func collect(node *trieNode, word string, out *[]domain.Suggestion) {
	if node.terminal {
		*out = append(*out, domain.Suggestion{Word: word, Frequency: node.frequency})
	}
	for r, child := range node.children {
		collect(child, word+string(r), out)
	}
}
