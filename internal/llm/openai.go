package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultGroqBaseURL = "https://api.groq.com/openai/v1"
	requestTimeout     = 120 * time.Second
)

// AzureOpenAI is the primary provider. It serves one-shot and structured
// calls, and is the default streaming backend. Models map to Azure
// deployments addressed in the URL path.
type AzureOpenAI struct {
	apiKey     string
	endpoint   string
	apiVersion string
	client     *http.Client
}

// NewAzureOpenAI creates a client for an Azure OpenAI resource.
func NewAzureOpenAI(apiKey, endpoint, apiVersion string) *AzureOpenAI {
	return &AzureOpenAI{
		apiKey:     apiKey,
		endpoint:   strings.TrimSuffix(endpoint, "/"),
		apiVersion: apiVersion,
		client:     &http.Client{Timeout: requestTimeout},
	}
}

func (a *AzureOpenAI) newRequest(ctx context.Context, req Request, stream bool) (*http.Request, error) {
	url := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s", a.endpoint, req.Model, a.apiVersion)
	httpReq, err := buildChatRequest(ctx, url, req, stream)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("api-key", a.apiKey)
	return httpReq, nil
}

// Complete sends a chat completion and returns the full reply text.
func (a *AzureOpenAI) Complete(ctx context.Context, req Request) (string, error) {
	httpReq, err := a.newRequest(ctx, req, false)
	if err != nil {
		return "", err
	}
	return doComplete(a.client, httpReq)
}

// Stream sends a chat completion in streaming mode.
func (a *AzureOpenAI) Stream(ctx context.Context, req Request) (<-chan string, <-chan error) {
	return doStream(ctx, a.client, func() (*http.Request, error) {
		return a.newRequest(ctx, req, true)
	})
}

// Groq is the alternative provider: a faster, cheaper streaming path callers
// opt into explicitly. It speaks the same chat-completions wire protocol with
// bearer authentication.
type Groq struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewGroq creates a client for the Groq API.
func NewGroq(apiKey string) *Groq {
	return &Groq{
		apiKey:  apiKey,
		baseURL: defaultGroqBaseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

func (g *Groq) newRequest(ctx context.Context, req Request, stream bool) (*http.Request, error) {
	httpReq, err := buildChatRequest(ctx, g.baseURL+"/chat/completions", req, stream)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	return httpReq, nil
}

// Complete sends a chat completion and returns the full reply text.
func (g *Groq) Complete(ctx context.Context, req Request) (string, error) {
	httpReq, err := g.newRequest(ctx, req, false)
	if err != nil {
		return "", err
	}
	return doComplete(g.client, httpReq)
}

// Stream sends a chat completion in streaming mode.
func (g *Groq) Stream(ctx context.Context, req Request) (<-chan string, <-chan error) {
	return doStream(ctx, g.client, func() (*http.Request, error) {
		return g.newRequest(ctx, req, true)
	})
}

// --- shared chat-completions wire protocol ---

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	Seed           int             `json:"seed"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	LogitBias      map[string]int  `json:"logit_bias,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
	Stream         bool            `json:"stream,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

type chatStreamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

func buildChatRequest(ctx context.Context, url string, req Request, stream bool) (*http.Request, error) {
	body := chatRequest{
		Model: req.Model,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemMessage},
			{Role: "user", Content: req.UserMessage},
		},
		Temperature: temperature,
		Seed:        seed,
		MaxTokens:   req.MaxTokens,
		LogitBias:   req.LogitBias,
		Stream:      stream,
	}
	if req.JSONMode {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return httpReq, nil
}

func doComplete(client *http.Client, httpReq *http.Request) (string, error) {
	resp, err := client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("backend returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var apiResp chatResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if apiResp.Error != nil {
		return "", fmt.Errorf("backend error: %s", apiResp.Error.Message)
	}
	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}
	return apiResp.Choices[0].Message.Content, nil
}

// doStream launches the producer goroutine for a streaming completion. The
// fragment channel is unbuffered, so consumer backpressure paces reads from
// the backend.
func doStream(ctx context.Context, client *http.Client, newReq func() (*http.Request, error)) (<-chan string, <-chan error) {
	out := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errc)

		httpReq, err := newReq()
		if err != nil {
			errc <- err
			return
		}
		if err := streamChat(ctx, client, httpReq, out); err != nil {
			errc <- err
		}
	}()

	return out, errc
}

// streamChat reads server-sent events from the backend and forwards non-empty
// content deltas in generation order until the backend signals completion.
func streamChat(ctx context.Context, client *http.Client, httpReq *http.Request, out chan<- string) error {
	resp, err := client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("backend returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		payload := strings.TrimPrefix(line, "data: ")
		if payload == "[DONE]" {
			return nil
		}

		var chunk chatStreamChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			return fmt.Errorf("failed to unmarshal stream chunk: %w", err)
		}
		if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
			continue
		}

		select {
		case out <- chunk.Choices[0].Delta.Content:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err := scanner.Err(); err != nil {
		// A cancelled context surfaces as a read error on the body.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("stream read failed: %w", err)
	}
	return nil
}
