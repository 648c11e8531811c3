package ai

import (
	"io"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/packages/ssestream"

	"github.com/MohamedRasheqA/teachback/internal/errs"
)

// Stream is a lazy, finite, non-restartable sequence of text increments.
// Recv returns io.EOF after the last increment; any other error terminates
// the stream abnormally and must not be retried.
type Stream interface {
	Recv() (string, error)
	Close() error
}

// completionStream adapts the hosted model's SSE stream to Stream. The first
// chunk is prefetched at construction so that upstream failures surface
// before the transport commits to streaming.
type completionStream struct {
	raw     *ssestream.Stream[openai.ChatCompletionChunk]
	pending []string
	done    bool
}

func newCompletionStream(raw *ssestream.Stream[openai.ChatCompletionChunk]) (*completionStream, error) {
	s := &completionStream{raw: raw}

	// Pull until the first non-empty delta or stream end. An error here means
	// no token was ever produced, so the caller can still fail the request
	// with a status code.
	for {
		delta, err := s.next()
		if err == io.EOF {
			s.done = true
			return s, nil
		}
		if err != nil {
			raw.Close()
			return nil, errs.Upstreamf("starting completion stream", err)
		}
		if delta != "" {
			s.pending = append(s.pending, delta)
			return s, nil
		}
	}
}

func (s *completionStream) Recv() (string, error) {
	if len(s.pending) > 0 {
		delta := s.pending[0]
		s.pending = s.pending[1:]
		return delta, nil
	}
	if s.done {
		return "", io.EOF
	}

	for {
		delta, err := s.next()
		if err == io.EOF {
			s.done = true
			return "", io.EOF
		}
		if err != nil {
			return "", errs.Upstreamf("receiving completion chunk", err)
		}
		if delta != "" {
			return delta, nil
		}
	}
}

// next advances the underlying SSE stream by one event.
func (s *completionStream) next() (string, error) {
	if !s.raw.Next() {
		if err := s.raw.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}

	chunk := s.raw.Current()
	if len(chunk.Choices) == 0 {
		return "", nil
	}
	return chunk.Choices[0].Delta.Content, nil
}

func (s *completionStream) Close() error {
	return s.raw.Close()
}

// staticStream replays a constructed response as a single increment. Used by
// the greeting path, where the answer is chosen rather than generated.
type staticStream struct {
	text string
	sent bool
}

// NewStaticStream wraps fixed text in the Stream contract.
func NewStaticStream(text string) Stream {
	return &staticStream{text: text}
}

func (s *staticStream) Recv() (string, error) {
	if s.sent {
		return "", io.EOF
	}
	s.sent = true
	return s.text, nil
}

func (s *staticStream) Close() error { return nil }
