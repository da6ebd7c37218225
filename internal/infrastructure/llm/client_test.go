package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/platewise/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	client := NewClient("llama3", "http://localhost:11434/api", 30*time.Second)

	assert.NotNil(t, client)
	assert.Equal(t, "llama3", client.model)
	assert.Equal(t, "http://localhost:11434/api", client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.rateLimiter)
	assert.False(t, client.debug)
	assert.Equal(t, "llama3", client.ModelName())
}

func TestClientSetDebug(t *testing.T) {
	client := NewClient("llama3", "http://localhost:11434/api", 30*time.Second)

	assert.False(t, client.debug)

	client.SetDebug(true)
	assert.True(t, client.debug)

	client.SetDebug(false)
	assert.False(t, client.debug)
}

func TestGenerate_Success(t *testing.T) {
	// Create mock server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate", r.URL.Path)
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req generateRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		require.NoError(t, err)
		assert.Equal(t, "llama3", req.Model)
		assert.Equal(t, "Say hello", req.Prompt)
		assert.False(t, req.Stream)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(generateResponse{Response: "Hello there"})
	}))
	defer server.Close()

	client := NewClient("llama3", server.URL, 5*time.Second)
	result, err := client.Generate(context.Background(), "Say hello")

	require.NoError(t, err)
	assert.Equal(t, "Hello there", result)
}

func TestGenerate_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("model crashed"))
	}))
	defer server.Close()

	client := NewClient("llama3", server.URL, 5*time.Second)
	_, err := client.Generate(context.Background(), "Say hello")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrLLMFailure))
	assert.Contains(t, err.Error(), "status 500")
}

func TestGenerate_ConnectionRefused(t *testing.T) {
	// Point at a closed server so the transport itself fails
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient("llama3", server.URL, 5*time.Second)
	_, err := client.Generate(context.Background(), "Say hello")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrLLMFailure))
}

func TestGenerate_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient("llama3", server.URL, 5*time.Second)
	_, err := client.Generate(context.Background(), "Say hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestGenerate_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Response: "late"})
	}))
	defer server.Close()

	client := NewClient("llama3", server.URL, 5*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Generate(ctx, "Say hello")
	require.Error(t, err)
}
