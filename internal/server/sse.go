package server

import (
	"fmt"
	"net/http"
)

// StreamWriter delivers generated text fragments incrementally over a
// text/event-stream response. Fragments are written raw, in generation
// order, and flushed immediately so nothing buffers server-side.
type StreamWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewStreamWriter prepares w for streaming and returns a writer over it.
func NewStreamWriter(w http.ResponseWriter) (*StreamWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	return &StreamWriter{w: w, flusher: flusher}, nil
}

// WriteFragment sends one fragment of generated text.
func (s *StreamWriter) WriteFragment(fragment string) error {
	if _, err := fmt.Fprint(s.w, fragment); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteError terminates the stream with an in-band error event. Headers
// are already sent at this point, so an HTTP status is no longer an option.
func (s *StreamWriter) WriteError(message string) {
	fmt.Fprintf(s.w, "\n\nevent: error\ndata: %s\n\n", message) //nolint:errcheck
	s.flusher.Flush()
}
