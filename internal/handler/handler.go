package handler

import (
	"userdict/internal/dictionary"

	"go.uber.org/zap"
)

// Handler serves the dictionary JSON API.
type Handler struct {
	dict   *dictionary.Dictionary
	logger *zap.Logger
}

// New creates a new handler instance
func New(dict *dictionary.Dictionary, logger *zap.Logger) *Handler {
	return &Handler{
		dict:   dict,
		logger: logger,
	}
}
