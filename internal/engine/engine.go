package engine

import "userdict/internal/domain"

// Engine holds the in-memory projection of the user dictionary.
// Implementations are not required to be safe for concurrent use;
// callers serialize access.
type Engine interface {
	// Reset drops every entry.
	Reset()
	// Insert adds a word or updates its frequency if already present.
	Insert(word string, frequency int)
	// Lookup returns candidates starting with prefix, ordered by frequency
	// descending then lexicographically. A limit <= 0 means no limit.
	Lookup(prefix string, limit int) []domain.Suggestion
	// Contains reports exact membership.
	Contains(word string) bool
	// Len returns the number of stored words.
	Len() int
}
