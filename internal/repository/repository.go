package repository

import "userdict/internal/domain"

// WordStore defines persistent word operations. The store is the source of
// truth; the in-memory cache is a projection of it.
type WordStore interface {
	// FetchByLocale returns all words whose locale is unset or equals locale.
	FetchByLocale(locale string) ([]domain.Word, error)
	// Find returns the first record matching word and (locale unset or equal),
	// or nil when no record exists.
	Find(word, locale string) (*domain.Word, error)
	// Insert stores a new record and returns its identifier.
	Insert(word string, frequency int, locale string, appID int) (int64, error)
	// UpdateFrequency sets the frequency of an existing record.
	UpdateFrequency(id int64, frequency int) error
	// Ping reports whether the store is reachable.
	Ping() error
}

// ChangeNotifier delivers store change notifications. The self flag mirrors
// the notification source's "own change" bit; subscribers may ignore it.
type ChangeNotifier interface {
	Subscribe(fn func(self bool)) (unsubscribe func())
	Close() error
}
