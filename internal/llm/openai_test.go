package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAzureTestClient(srv *httptest.Server) *AzureOpenAI {
	return NewAzureOpenAI("test-key", srv.URL, "2024-02-15-preview")
}

func TestAzureOpenAI_Complete(t *testing.T) {
	var gotPath string
	var gotBody chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		assert.Equal(t, "test-key", r.Header.Get("api-key"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &gotBody))

		fmt.Fprint(w, `{"choices": [{"message": {"role": "assistant", "content": "1"}}]}`)
	}))
	defer srv.Close()

	client := newAzureTestClient(srv)
	reply, err := client.Complete(context.Background(), Request{
		Model:         "gpt-35-turbo-16k",
		SystemMessage: "Is the given text a job title?",
		UserMessage:   "Software Engineer",
		MaxTokens:     1,
		LogitBias:     map[string]int{"15": 100, "16": 100},
	})
	require.NoError(t, err)

	assert.Equal(t, "1", reply)
	assert.Equal(t, "/openai/deployments/gpt-35-turbo-16k/chat/completions?api-version=2024-02-15-preview", gotPath)

	// Deterministic sampling is applied unconditionally.
	assert.Zero(t, gotBody.Temperature)
	assert.Equal(t, 1, gotBody.Seed)
	assert.Equal(t, 1, gotBody.MaxTokens)
	assert.Equal(t, map[string]int{"15": 100, "16": 100}, gotBody.LogitBias)
	require.Len(t, gotBody.Messages, 2)
	assert.Equal(t, "system", gotBody.Messages[0].Role)
	assert.Equal(t, "user", gotBody.Messages[1].Role)
}

func TestAzureOpenAI_Complete_JSONMode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.NotNil(t, body.ResponseFormat)
		assert.Equal(t, "json_object", body.ResponseFormat.Type)
		fmt.Fprint(w, `{"choices": [{"message": {"role": "assistant", "content": "{}"}}]}`)
	}))
	defer srv.Close()

	_, err := newAzureTestClient(srv).Complete(context.Background(), Request{Model: "m", JSONMode: true})
	require.NoError(t, err)
}

func TestAzureOpenAI_Complete_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": {"message": "rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newAzureTestClient(srv).Complete(context.Background(), Request{Model: "m"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestAzureOpenAI_Complete_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"choices": []}`)
	}))
	defer srv.Close()

	_, err := newAzureTestClient(srv).Complete(context.Background(), Request{Model: "m"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no completion choices")
}

func sseChunk(content string) string {
	chunk := map[string]any{
		"choices": []map[string]any{{"delta": map[string]string{"content": content}}},
	}
	payload, _ := json.Marshal(chunk)
	return "data: " + string(payload) + "\n\n"
}

func TestAzureOpenAI_Stream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.True(t, body.Stream)

		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, sseChunk("Hello"))
		io.WriteString(w, sseChunk(""))
		io.WriteString(w, sseChunk(", "))
		io.WriteString(w, sseChunk("world"))
		io.WriteString(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	frags, errs := newAzureTestClient(srv).Stream(context.Background(), Request{Model: "m"})

	var got []string
	for frag := range frags {
		got = append(got, frag)
	}
	require.NoError(t, <-errs)

	// Empty fragments are filtered; order is generation order.
	assert.Equal(t, []string{"Hello", ", ", "world"}, got)
	assert.Equal(t, "Hello, world", strings.Join(got, ""))
}

func TestAzureOpenAI_Stream_BackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream auth failure", http.StatusUnauthorized)
	}))
	defer srv.Close()

	frags, errs := newAzureTestClient(srv).Stream(context.Background(), Request{Model: "m"})
	for range frags {
		t.Fatal("no fragments expected")
	}
	err := <-errs
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestAzureOpenAI_Stream_CancelAbandonsGeneration(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, sseChunk("first"))
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		<-release // hold the stream open until the client has cancelled
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	frags, errs := newAzureTestClient(srv).Stream(ctx, Request{Model: "m"})

	first, ok := <-frags
	require.True(t, ok)
	assert.Equal(t, "first", first)

	cancel()
	for range frags {
	}
	err := <-errs
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGroq_AuthAndURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer groq-key", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"choices": [{"message": {"role": "assistant", "content": "ok"}}]}`)
	}))
	defer srv.Close()

	client := NewGroq("groq-key")
	client.baseURL = srv.URL

	reply, err := client.Complete(context.Background(), Request{Model: "mixtral-8x7b-32768"})
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
}

func TestGroq_Stream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, sseChunk("fast"))
		io.WriteString(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	client := NewGroq("groq-key")
	client.baseURL = srv.URL

	frags, errs := client.Stream(context.Background(), Request{Model: "m"})
	var got []string
	for frag := range frags {
		got = append(got, frag)
	}
	require.NoError(t, <-errs)
	assert.Equal(t, []string{"fast"}, got)
}
