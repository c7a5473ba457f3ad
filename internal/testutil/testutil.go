package testutil

import (
	"time"

	"userdict/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// Locale returns a pointer to s for building test records
func Locale(s string) *string {
	return &s
}

// NewTestWord creates a test word record
func NewTestWord(id int64, word string, frequency int, locale *string) *domain.Word {
	return &domain.Word{
		ID:        id,
		Word:      word,
		Frequency: frequency,
		Locale:    locale,
		CreatedAt: time.Now(),
	}
}
