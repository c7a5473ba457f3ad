package engine

import (
	"testing"

	"userdict/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestTrie_InsertAndContains(t *testing.T) {
	trie := NewTrie()

	trie.Insert("cat", 100)
	trie.Insert("car", 50)

	assert.True(t, trie.Contains("cat"))
	assert.True(t, trie.Contains("car"))
	assert.False(t, trie.Contains("ca"))
	assert.False(t, trie.Contains("cats"))
	assert.Equal(t, 2, trie.Len())
}

func TestTrie_InsertUpdatesFrequency(t *testing.T) {
	trie := NewTrie()

	trie.Insert("cat", 100)
	trie.Insert("cat", 200)

	assert.Equal(t, 1, trie.Len())

	got := trie.Lookup("cat", 0)
	assert.Equal(t, []domain.Suggestion{{Word: "cat", Frequency: 200}}, got)
}

func TestTrie_InsertEmptyWordIgnored(t *testing.T) {
	trie := NewTrie()

	trie.Insert("", 100)

	assert.Equal(t, 0, trie.Len())
	assert.False(t, trie.Contains(""))
}

func TestTrie_LookupOrdering(t *testing.T) {
	trie := NewTrie()

	trie.Insert("cat", 100)
	trie.Insert("car", 200)
	trie.Insert("carp", 100)
	trie.Insert("dog", 255)

	got := trie.Lookup("ca", 0)

	expected := []domain.Suggestion{
		{Word: "car", Frequency: 200},
		{Word: "carp", Frequency: 100},
		{Word: "cat", Frequency: 100},
	}
	assert.Equal(t, expected, got)
}

func TestTrie_LookupLimit(t *testing.T) {
	trie := NewTrie()

	trie.Insert("aa", 1)
	trie.Insert("ab", 2)
	trie.Insert("ac", 3)

	got := trie.Lookup("a", 2)

	assert.Len(t, got, 2)
	assert.Equal(t, "ac", got[0].Word)
	assert.Equal(t, "ab", got[1].Word)
}

func TestTrie_LookupNoMatch(t *testing.T) {
	trie := NewTrie()

	trie.Insert("cat", 100)

	assert.Nil(t, trie.Lookup("dog", 0))
}

func TestTrie_LookupEmptyPrefixReturnsAll(t *testing.T) {
	trie := NewTrie()

	trie.Insert("cat", 100)
	trie.Insert("dog", 200)

	got := trie.Lookup("", 0)

	assert.Len(t, got, 2)
	assert.Equal(t, "dog", got[0].Word)
}

func TestTrie_UnicodeWords(t *testing.T) {
	trie := NewTrie()

	trie.Insert("привет", 100)
	trie.Insert("приказ", 50)

	assert.True(t, trie.Contains("привет"))

	got := trie.Lookup("при", 0)
	assert.Len(t, got, 2)
	assert.Equal(t, "привет", got[0].Word)
}

func TestTrie_Reset(t *testing.T) {
	trie := NewTrie()

	trie.Insert("cat", 100)
	trie.Insert("dog", 200)
	trie.Reset()

	assert.Equal(t, 0, trie.Len())
	assert.False(t, trie.Contains("cat"))
	assert.Nil(t, trie.Lookup("", 0))
}
