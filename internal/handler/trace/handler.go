// Package trace exposes the tracing side path: each logged exchange is echoed
// through the model so the hosted observability project records it.
package trace

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MohamedRasheqA/teachback/internal/errs"
	"github.com/MohamedRasheqA/teachback/internal/model/chat"
	"github.com/MohamedRasheqA/teachback/pkg/utils"
)

// The hosted call is bounded so a stalled completion cannot hold the request
// open past the platform ceiling.
const traceTimeout = 25 * time.Second

const tracePrompt = "Just print the same response you received."

// Completer runs a one-shot completion.
type Completer interface {
	Complete(ctx context.Context, messages []chat.Message) (string, error)
}

// Handler serves the trace route.
type Handler struct {
	completer Completer
}

// New creates the trace handler.
func New(completer Completer) *Handler {
	return &Handler{completer: completer}
}

// RegisterRoutes registers the trace route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/trace", h.handleTrace)
}

type traceRequest struct {
	Question string `json:"question"`
	Response string `json:"response"`
}

func (h *Handler) handleTrace(w http.ResponseWriter, r *http.Request) {
	var payload traceRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Question == "" || payload.Response == "" {
		utils.RespondError(w, http.StatusBadRequest, "question and response are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), traceTimeout)
	defer cancel()

	content, err := h.completer.Complete(ctx, []chat.Message{
		chat.System(tracePrompt),
		chat.User(fmt.Sprintf("Question: %s\nResponse: %s", payload.Question, payload.Response)),
	})
	if err != nil {
		log.Printf("[trace] completion failed: %v", err)
		utils.RespondError(w, errs.HTTPStatus(err), errs.PublicMessage(err))
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{"success": true, "content": content})
}
