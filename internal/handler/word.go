package handler

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"userdict/internal/dictionary"
	"userdict/internal/domain"
)

const defaultSuggestLimit = 10

// AddWord inserts a word into the cache and schedules its persistence.
func (h *Handler) AddWord(c fiber.Ctx) error {
	var body struct {
		Word      string `json:"word"`
		Frequency int    `json:"frequency"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	body.Word = strings.TrimSpace(body.Word)
	if body.Word == "" {
		return jsonError(c, fiber.StatusBadRequest, "word is required")
	}

	if err := h.dict.AddWord(body.Word, body.Frequency); err != nil {
		if errors.Is(err, dictionary.ErrClosed) {
			return jsonError(c, fiber.StatusServiceUnavailable, "dictionary is shutting down")
		}
		h.logger.Error("Failed to add word", zap.String("word", body.Word), zap.Error(err))
		return jsonError(c, fiber.StatusInternalServerError, "failed to add word")
	}

	return jsonSuccess(c, fiber.Map{
		"word":      body.Word,
		"frequency": domain.ClampFrequency(body.Frequency),
	})
}

// Suggest returns prefix lookup candidates ordered by frequency.
func (h *Handler) Suggest(c fiber.Ctx) error {
	prefix := c.Query("prefix", "")
	if prefix == "" {
		return jsonError(c, fiber.StatusBadRequest, "prefix is required")
	}

	limit := defaultSuggestLimit
	if raw := c.Query("limit", ""); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return jsonError(c, fiber.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}

	suggestions := h.dict.Lookup(prefix, limit)
	if suggestions == nil {
		suggestions = []domain.Suggestion{}
	}

	return jsonSuccess(c, suggestions)
}

// CheckWord reports whether a word is present in the dictionary.
func (h *Handler) CheckWord(c fiber.Ctx) error {
	word := c.Params("word")
	if word == "" {
		return jsonError(c, fiber.StatusBadRequest, "word is required")
	}

	return jsonSuccess(c, fiber.Map{
		"word":  word,
		"valid": h.dict.IsValidWord(word),
	})
}

// Health reports whether the persistent store is reachable.
func (h *Handler) Health(c fiber.Ctx) error {
	if !h.dict.Enabled() {
		return jsonError(c, fiber.StatusServiceUnavailable, "persistent store unreachable")
	}
	return jsonSuccess(c, fiber.Map{"store": "ok"})
}
