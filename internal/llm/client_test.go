package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mergelens/internal/explain"
)

func TestFailureError(t *testing.T) {
	f := &Failure{Status: 502, Body: "bad gateway"}
	assert.Equal(t, "service failure (status 502): bad gateway", f.Error())
}

func TestOpenRouterComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"the explanation"}}]}`))
	}))
	defer server.Close()

	client := NewOpenRouterClient("sk-test", server.URL, "test/model", nil)

	text, err := client.Complete(context.Background(), "why does this conflict?")
	require.NoError(t, err)
	assert.Equal(t, "the explanation", text)
}

func TestOpenRouterExplainUsesRequestPrompt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer server.Close()

	client := NewOpenRouterClient("sk-test", server.URL, "test/model", nil)

	text, err := client.Explain(context.Background(), explain.Request{Prompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
}

func TestOpenRouterCompleteNonSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	client := NewOpenRouterClient("sk-bad", server.URL, "test/model", nil)

	_, err := client.Complete(context.Background(), "prompt")
	require.Error(t, err)

	var failure *Failure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, http.StatusUnauthorized, failure.Status)
	assert.Contains(t, failure.Body, "invalid api key")
}

func TestOpenRouterCompleteEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewOpenRouterClient("sk-test", server.URL, "test/model", nil)

	_, err := client.Complete(context.Background(), "prompt")
	var failure *Failure
	require.True(t, errors.As(err, &failure))
	assert.Contains(t, failure.Body, "no choices")
}

func TestHuggingFaceCompleteListResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer hf-test", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"summary_text":"Adds logging to login."}]`))
	}))
	defer server.Close()

	client := NewHuggingFaceClient("hf-test", server.URL, nil)

	text, err := client.Complete(context.Background(), "summarize this")
	require.NoError(t, err)
	assert.Equal(t, "Adds logging to login.", text)
}

func TestHuggingFaceCompleteObjectResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"generated_text":"A summary."}`))
	}))
	defer server.Close()

	client := NewHuggingFaceClient("hf-test", server.URL, nil)

	text, err := client.Complete(context.Background(), "summarize this")
	require.NoError(t, err)
	assert.Equal(t, "A summary.", text)
}

func TestHuggingFaceCompleteNonSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("model loading"))
	}))
	defer server.Close()

	client := NewHuggingFaceClient("hf-test", server.URL, nil)

	_, err := client.Complete(context.Background(), "summarize this")
	var failure *Failure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, http.StatusServiceUnavailable, failure.Status)
	assert.Contains(t, failure.Body, "model loading")
}

func TestHuggingFaceCompleteMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"unexpected":"shape"}`))
	}))
	defer server.Close()

	client := NewHuggingFaceClient("hf-test", server.URL, nil)

	_, err := client.Complete(context.Background(), "summarize this")
	var failure *Failure
	require.True(t, errors.As(err, &failure))
}
