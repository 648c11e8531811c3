// Package logs exposes the conversation audit-log routes backing the
// tracking/export page.
package logs

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MohamedRasheqA/teachback/internal/errs"
	"github.com/MohamedRasheqA/teachback/internal/model/chat"
	"github.com/MohamedRasheqA/teachback/pkg/utils"
)

// Store is the session-record persistence consumed by this handler.
type Store interface {
	Append(ctx context.Context, sessionID, question, response string) (chat.SessionRecord, error)
	List(ctx context.Context, sortBy, order string) ([]chat.SessionRecord, error)
}

// Handler serves the conversation log routes.
type Handler struct {
	store Store
}

// New creates the logs handler.
func New(store Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes registers the log routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/logs", h.handleAppend)
	r.Get("/logs", h.handleList)
}

type appendRequest struct {
	SessionID string `json:"sessionId"`
	Question  string `json:"question"`
	Response  string `json:"response"`
}

func (h *Handler) handleAppend(w http.ResponseWriter, r *http.Request) {
	var payload appendRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.SessionID == "" || payload.Question == "" || payload.Response == "" {
		utils.RespondError(w, http.StatusBadRequest, "sessionId, question and response are required")
		return
	}

	record, err := h.store.Append(r.Context(), payload.SessionID, payload.Question, payload.Response)
	if err != nil {
		log.Printf("[logs] append failed for session=%s: %v", payload.SessionID, err)
		utils.RespondError(w, errs.HTTPStatus(err), errs.PublicMessage(err))
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{"success": true, "data": record})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	sortBy := r.URL.Query().Get("sortBy")
	order := r.URL.Query().Get("order")

	records, err := h.store.List(r.Context(), sortBy, order)
	if err != nil {
		log.Printf("[logs] list failed: %v", err)
		utils.RespondError(w, errs.HTTPStatus(err), errs.PublicMessage(err))
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{"success": true, "data": records})
}
