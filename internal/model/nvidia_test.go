package model

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relay-ai/relay/internal/errors"
)

func testClient(baseURL string) *NVIDIAClient {
	cfg := DefaultNVIDIAConfig("test-key")
	cfg.BaseURL = baseURL
	cfg.MaxRetries = 1
	cfg.Timeout = 2 * time.Second
	return NewNVIDIAClient(cfg)
}

func completionEnvelope(text string, tokens int) string {
	env := map[string]any{
		"id":    "cmpl-1",
		"model": "meta/llama-3.1-8b-instruct",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": text},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]int{"total_tokens": tokens},
	}
	b, _ := json.Marshal(env)
	return string(b)
}

func TestGenerate_Success(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(completionEnvelope("hello there", 42)))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	resp, err := c.Generate(context.Background(), &Request{
		System: "be brief",
		Prompt: "say hello",
	})

	require.NoError(t, err)
	assert.Equal(t, "hello there", resp.Text)
	assert.Equal(t, 42, resp.TokensUsed)
	assert.Equal(t, "meta/llama-3.1-8b-instruct", resp.Model)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "meta/llama-3.1-8b-instruct", gotBody["model"])
	msgs := gotBody["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
}

func TestGenerate_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Generate(context.Background(), &Request{Prompt: "hi"})

	require.Error(t, err)
	assert.Equal(t, errors.CategoryUser, errors.GetCategory(err))
	assert.False(t, errors.IsRetryable(err))
}

func TestGenerate_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Generate(context.Background(), &Request{Prompt: "hi"})

	require.Error(t, err)
	assert.Equal(t, errors.CategoryRateLimit, errors.GetCategory(err))

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 7*time.Second, appErr.RetryAfter)
}

func TestGenerate_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"cmpl-1","choices":[]}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Generate(context.Background(), &Request{Prompt: "hi"})

	require.Error(t, err)
	assert.Equal(t, errors.CategoryPermanent, errors.GetCategory(err))
}

func TestGenerate_GarbledResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Generate(context.Background(), &Request{Prompt: "hi"})
	assert.Error(t, err)
}

func TestGenerate_NoAPIKey(t *testing.T) {
	c := NewNVIDIAClient(DefaultNVIDIAConfig(""))

	_, err := c.Generate(context.Background(), &Request{Prompt: "hi"})

	require.Error(t, err)
	assert.NotEmpty(t, errors.GetSuggestions(err))
}

func TestIsAvailable(t *testing.T) {
	var nilClient *NVIDIAClient
	assert.False(t, nilClient.IsAvailable())
	assert.False(t, NewNVIDIAClient(DefaultNVIDIAConfig("")).IsAvailable())
	assert.True(t, NewNVIDIAClient(DefaultNVIDIAConfig("key")).IsAvailable())
}

func TestName(t *testing.T) {
	assert.Equal(t, "meta/llama-3.1-8b-instruct", NewNVIDIAClient(DefaultNVIDIAConfig("key")).Name())

	var nilClient *NVIDIAClient
	assert.Equal(t, "nvidia", nilClient.Name())
}
