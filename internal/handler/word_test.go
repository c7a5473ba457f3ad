package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"userdict/internal/dictionary"
	"userdict/internal/domain"
	"userdict/internal/engine"
	"userdict/internal/testutil"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
)

func newTestApp(t *testing.T, store *testutil.MockWordStore) (*fiber.App, *dictionary.Dictionary) {
	t.Helper()

	dict := dictionary.New(engine.NewTrie(), store, nil, dictionary.Options{Locale: "en"}, testutil.NewTestLogger())
	h := New(dict, testutil.NewTestLogger())

	app := fiber.New()
	app.Post("/words", h.AddWord)
	app.Get("/words/:word", h.CheckWord)
	app.Get("/suggest", h.Suggest)
	app.Get("/healthz", h.Health)

	return app, dict
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	defer resp.Body.Close()

	var envelope map[string]any
	assert.NoError(t, json.Unmarshal(raw, &envelope))
	return envelope
}

func TestHandler_AddWord(t *testing.T) {
	store := new(testutil.MockWordStore)
	store.On("FetchByLocale", "en").Return([]domain.Word{}, nil)
	store.On("Find", "cat", "en").Return(nil, nil)
	store.On("Insert", "cat", 200, "en", 0).Return(int64(1), nil)

	app, dict := newTestApp(t, store)

	body := bytes.NewBufferString(`{"word": "cat", "frequency": 200}`)
	req := httptest.NewRequest(http.MethodPost, "/words", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	assert.Equal(t, "ok", envelope["status"])

	assert.True(t, dict.IsValidWord("cat"))

	dict.Close()
	store.AssertExpectations(t)
}

func TestHandler_AddWord_EmptyWord(t *testing.T) {
	store := new(testutil.MockWordStore)
	store.On("FetchByLocale", "en").Return([]domain.Word{}, nil)

	app, dict := newTestApp(t, store)
	defer dict.Close()

	body := bytes.NewBufferString(`{"word": "  ", "frequency": 200}`)
	req := httptest.NewRequest(http.MethodPost, "/words", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_AddWord_InvalidBody(t *testing.T) {
	store := new(testutil.MockWordStore)
	store.On("FetchByLocale", "en").Return([]domain.Word{}, nil)

	app, dict := newTestApp(t, store)
	defer dict.Close()

	body := bytes.NewBufferString(`{not json`)
	req := httptest.NewRequest(http.MethodPost, "/words", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_AddWord_AfterClose(t *testing.T) {
	store := new(testutil.MockWordStore)
	store.On("FetchByLocale", "en").Return([]domain.Word{}, nil)

	app, dict := newTestApp(t, store)
	dict.Close()

	body := bytes.NewBufferString(`{"word": "cat", "frequency": 200}`)
	req := httptest.NewRequest(http.MethodPost, "/words", body)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestHandler_CheckWord(t *testing.T) {
	store := new(testutil.MockWordStore)
	store.On("FetchByLocale", "en").Return([]domain.Word{
		{Word: "hello", Frequency: 10},
	}, nil)

	app, dict := newTestApp(t, store)
	defer dict.Close()

	req := httptest.NewRequest(http.MethodGet, "/words/hello", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	data := envelope["data"].(map[string]any)
	assert.Equal(t, "hello", data["word"])
	assert.Equal(t, true, data["valid"])

	req = httptest.NewRequest(http.MethodGet, "/words/missing", nil)
	resp, err = app.Test(req)
	assert.NoError(t, err)

	envelope = decodeEnvelope(t, resp)
	data = envelope["data"].(map[string]any)
	assert.Equal(t, false, data["valid"])
}

func TestHandler_Suggest(t *testing.T) {
	store := new(testutil.MockWordStore)
	store.On("FetchByLocale", "en").Return([]domain.Word{
		{Word: "car", Frequency: 200},
		{Word: "cat", Frequency: 100},
		{Word: "dog", Frequency: 255},
	}, nil)

	app, dict := newTestApp(t, store)
	defer dict.Close()

	req := httptest.NewRequest(http.MethodGet, "/suggest?prefix=ca", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	data := envelope["data"].([]any)
	assert.Len(t, data, 2)
	first := data[0].(map[string]any)
	assert.Equal(t, "car", first["word"])
}

func TestHandler_Suggest_MissingPrefix(t *testing.T) {
	store := new(testutil.MockWordStore)
	store.On("FetchByLocale", "en").Return([]domain.Word{}, nil)

	app, dict := newTestApp(t, store)
	defer dict.Close()

	req := httptest.NewRequest(http.MethodGet, "/suggest", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_Suggest_InvalidLimit(t *testing.T) {
	store := new(testutil.MockWordStore)
	store.On("FetchByLocale", "en").Return([]domain.Word{}, nil)

	app, dict := newTestApp(t, store)
	defer dict.Close()

	req := httptest.NewRequest(http.MethodGet, "/suggest?prefix=ca&limit=zero", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_Suggest_NoMatchesReturnsEmptyList(t *testing.T) {
	store := new(testutil.MockWordStore)
	store.On("FetchByLocale", "en").Return([]domain.Word{}, nil)

	app, dict := newTestApp(t, store)
	defer dict.Close()

	req := httptest.NewRequest(http.MethodGet, "/suggest?prefix=zzz", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	data := envelope["data"].([]any)
	assert.Empty(t, data)
}

func TestHandler_Health(t *testing.T) {
	store := new(testutil.MockWordStore)
	store.On("FetchByLocale", "en").Return([]domain.Word{}, nil)
	store.On("Ping").Return(nil).Once()
	store.On("Ping").Return(fmt.Errorf("connection refused")).Once()

	app, dict := newTestApp(t, store)
	defer dict.Close()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	store.AssertExpectations(t)
}
