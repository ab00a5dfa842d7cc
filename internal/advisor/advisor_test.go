package advisor

import (
	"context"
	"strings"
	"sync"

	"github.com/jonathan/job-advisor/internal/config"
	"github.com/jonathan/job-advisor/internal/llm"
)

// fakeProvider scripts replies per request and counts calls. Replies are
// selected by inspecting the request so concurrent calls stay deterministic.
type fakeProvider struct {
	mu            sync.Mutex
	replyFor      func(req llm.Request) (string, error)
	streamText    string
	streamErr     error
	completeCalls int
	streamCalls   int
	requests      []llm.Request
}

func (f *fakeProvider) Complete(_ context.Context, req llm.Request) (string, error) {
	f.mu.Lock()
	f.completeCalls++
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.replyFor != nil {
		return f.replyFor(req)
	}
	return "1", nil
}

func (f *fakeProvider) Stream(ctx context.Context, req llm.Request) (<-chan string, <-chan error) {
	f.mu.Lock()
	f.streamCalls++
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		if f.streamErr != nil {
			errc <- f.streamErr
			return
		}
		// Deliver the canned text in small fragments, generation order.
		text := f.streamText
		for len(text) > 0 {
			n := 4
			if n > len(text) {
				n = len(text)
			}
			select {
			case out <- text[:n]:
				text = text[n:]
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()
	return out, errc
}

func (f *fakeProvider) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.completeCalls + f.streamCalls
}

type stubEmbedder struct {
	vec []float32
	err error
}

func (s *stubEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = s.vec
	}
	return out, nil
}

func (s *stubEmbedder) EmbedOne(_ context.Context, _ string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.vec, nil
}

type stubIndex struct {
	extracts []string
	err      error
}

func (s *stubIndex) Query(_ context.Context, _ []float32, k int) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.extracts) > k {
		return s.extracts[:k], nil
	}
	return s.extracts, nil
}

func testModels() config.Models {
	return config.Models{
		Chat:      "gpt-35-turbo-16k",
		ChatLarge: "gpt-4-32k",
		Fast:      "mixtral-8x7b-32768",
		Embedding: "text-embedding-ada-002",
	}
}

func newTestAdvisor(primary, fast *fakeProvider, embedder *stubEmbedder, index *stubIndex) *Advisor {
	if embedder == nil {
		embedder = &stubEmbedder{vec: []float32{1, 0}}
	}
	if index == nil {
		index = &stubIndex{extracts: []string{"e1", "e2", "e3", "e4", "e5"}}
	}
	return New(primary, fast, embedder, index, testModels(), nil)
}

// classifierReply scripts the two gate classifiers by system message.
func classifierReply(titleReply, descReply string) func(req llm.Request) (string, error) {
	return func(req llm.Request) (string, error) {
		if strings.Contains(req.SystemMessage, "job title?") {
			return titleReply, nil
		}
		return descReply, nil
	}
}

func drain(frags <-chan string, errs <-chan error) (string, error) {
	var sb strings.Builder
	for frag := range frags {
		sb.WriteString(frag)
	}
	return sb.String(), <-errs
}
