// Package ai wraps the hosted OpenAI API behind the narrow surfaces the rest
// of the service consumes: query embeddings, streamed chat completions, a
// one-shot completion for the trace side path, and audio transcription.
package ai

import (
	"context"
	"fmt"
	"io"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/MohamedRasheqA/teachback/internal/config"
	"github.com/MohamedRasheqA/teachback/internal/errs"
	"github.com/MohamedRasheqA/teachback/internal/model/chat"
)

// Service is a thin, stateless client wrapper; safe for concurrent use.
type Service struct {
	client         openai.Client
	chatModel      string
	embeddingModel string
}

// NewService constructs the hosted-model client from configuration.
func NewService(cfg config.OpenAIConfig) (*Service, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	return &Service{
		client:         openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		chatModel:      cfg.ChatModel,
		embeddingModel: cfg.EmbeddingModel,
	}, nil
}

// Embed converts a text query into a fixed-dimension vector. There is no
// local fallback: a failed hosted call propagates as an upstream error.
func (s *Service) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := s.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: s.embeddingModel,
		Input: openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(text),
		},
	})
	if err != nil {
		return nil, errs.Upstreamf("creating embedding", err)
	}
	if len(resp.Data) == 0 {
		return nil, errs.Upstreamf("creating embedding", fmt.Errorf("empty embedding response"))
	}

	embedding := make([]float32, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		embedding[i] = float32(v)
	}
	return embedding, nil
}

// StreamCompletion invokes the chat model in streaming mode. The returned
// stream has already produced its first event, so an error here can still be
// converted to a status code; errors after this point terminate the stream
// abnormally.
func (s *Service) StreamCompletion(ctx context.Context, messages []chat.Message) (Stream, error) {
	raw := s.client.Chat.Completions.NewStreaming(ctx, openai.ChatCompletionNewParams{
		Model:    s.chatModel,
		Messages: toOpenAIMessages(messages),
	})
	return newCompletionStream(raw)
}

// Complete runs a one-shot, non-streaming completion. Used by the trace side
// path, which races against the caller's context deadline.
func (s *Service) Complete(ctx context.Context, messages []chat.Message) (string, error) {
	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    s.chatModel,
		Messages: toOpenAIMessages(messages),
	})
	if err != nil {
		return "", errs.Upstreamf("creating completion", err)
	}
	if len(resp.Choices) == 0 {
		return "", errs.Upstreamf("creating completion", fmt.Errorf("no choices returned"))
	}
	return resp.Choices[0].Message.Content, nil
}

// Transcribe converts spoken audio into English text via the hosted
// transcription model.
func (s *Service) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	resp, err := s.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model:    openai.AudioModelWhisper1,
		File:     openai.File(audio, filename, "audio/mpeg"),
		Language: openai.String("en"),
		Prompt:   openai.String("Please transcribe this audio in English only"),
	})
	if err != nil {
		return "", errs.Upstreamf("transcribing audio", err)
	}
	return resp.Text, nil
}

func toOpenAIMessages(messages []chat.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case chat.RoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))
		case chat.RoleAssistant:
			out = append(out, openai.AssistantMessage(msg.Content))
		default:
			out = append(out, openai.UserMessage(msg.Content))
		}
	}
	return out
}
