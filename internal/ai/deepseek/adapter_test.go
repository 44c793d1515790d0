package deepseek_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"chatserver/internal/ai"
	"chatserver/internal/ai/deepseek"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteReturnsLastChoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req struct {
			Model    string       `json:"model"`
			Messages []ai.Message `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "deepseek-chat", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, ai.RoleUser, req.Messages[0].Role)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[
			{"message":{"role":"assistant","content":"first"}},
			{"message":{"role":"assistant","content":"second"}}
		]}`))
	}))
	defer srv.Close()

	adapter := deepseek.NewAdapterWithBaseURL("test-key", "", srv.URL)
	answer, err := adapter.Complete(context.Background(), []ai.Message{ai.UserMessage("hello")})
	require.NoError(t, err)
	assert.Equal(t, "second", answer)
}

func TestCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	adapter := deepseek.NewAdapterWithBaseURL("test-key", "deepseek-chat", srv.URL)
	_, err := adapter.Complete(context.Background(), []ai.Message{ai.UserMessage("hello")})
	assert.ErrorIs(t, err, ai.ErrNoResponse)
}

func TestCompleteServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	adapter := deepseek.NewAdapterWithBaseURL("test-key", "deepseek-chat", srv.URL)
	_, err := adapter.Complete(context.Background(), []ai.Message{ai.UserMessage("hello")})

	var netErr *ai.NetworkError
	assert.ErrorAs(t, err, &netErr)
}

func TestCompleteUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	adapter := deepseek.NewAdapterWithBaseURL("test-key", "deepseek-chat", srv.URL)
	_, err := adapter.Complete(context.Background(), []ai.Message{ai.UserMessage("hello")})

	var netErr *ai.NetworkError
	assert.ErrorAs(t, err, &netErr)
}
