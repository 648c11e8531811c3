// Package rag orchestrates the retrieval-augmented chat flow: greeting
// short-circuit, embedding lookup, similarity search, prompt assembly,
// streamed completion, and the fire-and-forget memory write.
package rag

import (
	"context"
	"io"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/MohamedRasheqA/teachback/internal/analysis/greeting"
	"github.com/MohamedRasheqA/teachback/internal/errs"
	"github.com/MohamedRasheqA/teachback/internal/model/chat"
	"github.com/MohamedRasheqA/teachback/internal/model/settings"
	"github.com/MohamedRasheqA/teachback/internal/service/ai"
)

// Personas supported by the chat route. Anything else falls back to general.
const (
	PersonaGeneral  = "general"
	PersonaRoleplay = "roleplay"
)

const memoryWriteTimeout = 30 * time.Second

// Embedder converts a text query into a fixed-dimension vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Retriever returns the blank-line-joined snippet texts relevant to the
// query embedding, or the empty string when nothing clears the threshold.
type Retriever interface {
	SimilarContent(ctx context.Context, embedding []float32) (string, error)
}

// Streamer invokes the completion model in streaming mode.
type Streamer interface {
	StreamCompletion(ctx context.Context, messages []chat.Message) (ai.Stream, error)
}

// MemoryWriter appends an exchange to the long-term memory service.
type MemoryWriter interface {
	Write(ctx context.Context, userID string, messages []chat.Message) error
}

// SettingsReader resolves the stored prompt configuration.
type SettingsReader interface {
	Latest(ctx context.Context) (settings.PromptConfiguration, error)
}

// Request carries one chat turn. Messages holds the prior turns plus the
// latest user message, in order.
type Request struct {
	Messages     []chat.Message
	UserID       string
	Persona      string
	SystemPrompt string
}

// Service wires the pipeline components. All dependencies are injected; the
// service holds no request state and is safe for concurrent use.
type Service struct {
	embedder  Embedder
	retriever Retriever
	streamer  Streamer
	memory    MemoryWriter
	settings  SettingsReader

	mu  sync.Mutex
	rng *rand.Rand
}

// NewService builds the orchestrator. memory may be nil when the memory
// service is not configured; writes are then skipped entirely.
func NewService(embedder Embedder, retriever Retriever, streamer Streamer, memory MemoryWriter, settings SettingsReader) *Service {
	return &Service{
		embedder:  embedder,
		retriever: retriever,
		streamer:  streamer,
		memory:    memory,
		settings:  settings,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Respond runs one chat turn and returns the response stream. An error return
// means no stream was started and the route can still answer with a status
// code. Memory writes are best-effort background work on both paths: failures
// are logged, never surfaced, and never awaited by the response.
func (s *Service) Respond(ctx context.Context, req Request) (ai.Stream, error) {
	if len(req.Messages) == 0 {
		return nil, errs.Validationf("messages must not be empty")
	}
	if req.UserID == "" {
		return nil, errs.Validationf("userId is required")
	}

	userQuery := req.Messages[len(req.Messages)-1].Content
	prior := req.Messages[:len(req.Messages)-1]
	persona := normalizePersona(req.Persona)
	systemPrompt := s.resolveSystemPrompt(ctx, req.SystemPrompt)

	if greeting.IsGreeting(userQuery) {
		response := s.randomGreeting()
		messages := AssembleGreetingMessages(systemPrompt, prior, userQuery, response)
		s.writeMemory(req.UserID, messages)
		log.Printf("[chat] greeting detected, replying from fixed set (user=%s)", req.UserID)
		return ai.NewStaticStream(response), nil
	}

	log.Printf("[chat] processing query with %s persona (user=%s)", persona, req.UserID)

	embedding, err := s.embedder.Embed(ctx, userQuery)
	if err != nil {
		return nil, err
	}

	contextText, err := s.retriever.SimilarContent(ctx, embedding)
	if err != nil {
		return nil, err
	}

	messages := AssembleMessages(systemPrompt, contextText, prior, userQuery)

	stream, err := s.streamer.StreamCompletion(ctx, messages)
	if err != nil {
		return nil, err
	}

	// The assistant text is only known once the stream drains, so the memory
	// write is triggered from the stream's end-of-stream signal.
	return &memoryTapStream{
		inner: stream,
		onDone: func(assistantText string) {
			s.writeMemory(req.UserID, append(messages, chat.Assistant(assistantText)))
		},
	}, nil
}

func (s *Service) resolveSystemPrompt(ctx context.Context, override string) string {
	if override != "" {
		return override
	}

	if s.settings != nil {
		cfg, err := s.settings.Latest(ctx)
		if err != nil {
			// The stored prompt is an enhancement, not a dependency.
			log.Printf("[chat] falling back to default prompt: %v", err)
		} else if cfg.Prompt != "" {
			return cfg.Prompt
		}
	}

	return DefaultSystemPrompt
}

func (s *Service) randomGreeting() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pickGreeting(s.rng)
}

// writeMemory starts a detached, bounded write so a slow memory service can
// never delay the response and a failed write can never fail the request.
func (s *Service) writeMemory(userID string, messages []chat.Message) {
	if s.memory == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), memoryWriteTimeout)
		defer cancel()

		if err := s.memory.Write(ctx, userID, messages); err != nil {
			log.Printf("[memory] write failed for user=%s: %v", userID, err)
		}
	}()
}

func normalizePersona(persona string) string {
	if persona == PersonaRoleplay {
		return PersonaRoleplay
	}
	return PersonaGeneral
}

// memoryTapStream forwards increments unchanged while accumulating the full
// assistant text, invoking onDone exactly once at normal end of stream.
// Abnormal termination skips the memory write: the exchange never completed.
type memoryTapStream struct {
	inner  ai.Stream
	buf    []byte
	onDone func(assistantText string)
	fired  bool
}

func (s *memoryTapStream) Recv() (string, error) {
	delta, err := s.inner.Recv()
	if err == io.EOF && !s.fired {
		s.fired = true
		s.onDone(string(s.buf))
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}

	s.buf = append(s.buf, delta...)
	return delta, nil
}

func (s *memoryTapStream) Close() error {
	return s.inner.Close()
}
