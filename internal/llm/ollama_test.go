package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOllamaGenerate(t *testing.T) {
	var captured ollamaRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(ollamaResponse{Response: "recovery week complete", Done: true})
	}))
	defer srv.Close()

	g := NewOllamaGenerator(srv.URL, "llama3.2", 5*time.Second)
	got, err := g.Generate(context.Background(), Request{
		System:      "coach",
		Prompt:      "explain",
		MaxTokens:   200,
		Temperature: 0.4,
	})
	require.NoError(t, err)
	require.Equal(t, "recovery week complete", got)

	require.Equal(t, "llama3.2", captured.Model)
	require.False(t, captured.Stream)
	require.Equal(t, 0.4, captured.Options["temperature"])
	require.EqualValues(t, 200, captured.Options["num_predict"])
}

func TestOllamaGenerateError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	g := NewOllamaGenerator(srv.URL, "missing", 5*time.Second)
	_, err := g.Generate(context.Background(), Request{Prompt: "hi"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "404")
}

func TestStaticGeneratorRecordsRequests(t *testing.T) {
	g := &StaticGenerator{Text: "canned"}
	got, err := g.Generate(context.Background(), Request{Prompt: "p1"})
	require.NoError(t, err)
	require.Equal(t, "canned", got)
	require.Len(t, g.Requests, 1)
	require.Equal(t, "p1", g.Requests[0].Prompt)
}
