package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGemini(handler http.HandlerFunc) (*GeminiClient, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := NewGeminiClient("test-key")
	c.BaseURL = srv.URL
	c.HTTPClient = srv.Client()
	return c, srv
}

func TestAskReturnsModelText(t *testing.T) {
	c, srv := newTestGemini(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		assert.Contains(t, r.URL.Path, "gemini-2.5-flash")

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		prompt := req.Contents[0].Parts[0].Text
		assert.Contains(t, prompt, "Ethiopian Orthodox Tewahedo Church")
		assert.True(t, strings.HasSuffix(prompt, "Question: What is Timkat?"))

		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Timkat celebrates Epiphany."}]}}]}`))
	})
	defer srv.Close()

	answer, err := c.Ask(context.Background(), "What is Timkat?")
	require.NoError(t, err)
	assert.Equal(t, "Timkat celebrates Epiphany.", answer)
}

func TestAskEmptyQuestion(t *testing.T) {
	c := NewGeminiClient("test-key")
	_, err := c.Ask(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
}

func TestAskEmptyCandidates(t *testing.T) {
	c, srv := newTestGemini(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})
	defer srv.Close()

	answer, err := c.Ask(context.Background(), "What is Meskel?")
	require.NoError(t, err)
	assert.Contains(t, answer, "couldn't generate an answer")
}

func TestAskUpstreamError(t *testing.T) {
	c, srv := newTestGemini(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	})
	defer srv.Close()

	_, err := c.Ask(context.Background(), "What is Meskel?")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
