// Package chat exposes the streaming chat route.
package chat

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MohamedRasheqA/teachback/internal/errs"
	"github.com/MohamedRasheqA/teachback/internal/model/chat"
	"github.com/MohamedRasheqA/teachback/internal/service/ai"
	"github.com/MohamedRasheqA/teachback/internal/service/rag"
	"github.com/MohamedRasheqA/teachback/pkg/utils"
)

// Responder runs one chat turn and returns the response stream.
type Responder interface {
	Respond(ctx context.Context, req rag.Request) (ai.Stream, error)
}

// Handler serves the chat routes.
type Handler struct {
	svc Responder
}

// New creates the chat handler.
func New(svc Responder) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
	r.Get("/chat/ws", h.handleChatWS)
}

type chatRequest struct {
	Messages     []chat.Message `json:"messages"`
	UserID       string         `json:"userId"`
	Persona      string         `json:"persona"`
	SystemPrompt string         `json:"systemPrompt"`
}

// streamResponse is one SSE frame of the chat stream.
type streamResponse struct {
	Event    string `json:"event"`
	Content  string `json:"content,omitempty"`
	Finished bool   `json:"finished,omitempty"`
	Error    string `json:"error,omitempty"`
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload chatRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(payload.Messages) == 0 {
		utils.RespondError(w, http.StatusBadRequest, "messages must not be empty")
		return
	}
	if payload.UserID == "" {
		utils.RespondError(w, http.StatusBadRequest, "userId is required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	stream, err := h.svc.Respond(r.Context(), rag.Request{
		Messages:     payload.Messages,
		UserID:       payload.UserID,
		Persona:      payload.Persona,
		SystemPrompt: payload.SystemPrompt,
	})
	if err != nil {
		// No stream was started yet, so the failure still maps to a status
		// code. Upstream detail stays in server logs.
		log.Printf("[chat] request failed: %v", err)
		utils.RespondError(w, errs.HTTPStatus(err), errs.PublicMessage(err))
		return
	}
	defer stream.Close()

	utils.SetupSSEHeaders(w)
	h.relay(w, flusher, stream)
}

// relay forwards each increment as it arrives; nothing is buffered before
// the first byte. A mid-stream failure cannot be downgraded to a status code
// anymore, so it terminates the stream with an error event.
func (h *Handler) relay(w http.ResponseWriter, flusher http.Flusher, stream ai.Stream) {
	var full []byte
	for {
		delta, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("[chat] stream aborted: %v", err)
			utils.SendSSEChunk(w, flusher, streamResponse{Event: "error", Error: "stream interrupted"})
			return
		}

		full = append(full, delta...)
		utils.SendSSEChunk(w, flusher, streamResponse{Event: "delta", Content: delta})
	}

	utils.SendSSEChunk(w, flusher, streamResponse{Event: "message", Content: string(full)})
	utils.SendSSEChunk(w, flusher, streamResponse{Event: "end", Finished: true})
}
