// Package settings exposes the admin prompt-configuration routes.
package settings

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MohamedRasheqA/teachback/internal/errs"
	model "github.com/MohamedRasheqA/teachback/internal/model/settings"
	"github.com/MohamedRasheqA/teachback/pkg/utils"
)

// Store is the configuration persistence consumed by this handler.
type Store interface {
	Latest(ctx context.Context) (model.PromptConfiguration, error)
	Update(ctx context.Context, upd model.Update) error
}

// Handler serves the settings routes.
type Handler struct {
	store Store
}

// New creates the settings handler.
func New(store Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes registers the settings routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/settings", h.handleGet)
	r.Post("/settings", h.handleUpdate)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.store.Latest(r.Context())
	if err != nil {
		log.Printf("[settings] fetch failed: %v", err)
		utils.RespondError(w, errs.HTTPStatus(err), errs.PublicMessage(err))
		return
	}

	utils.RespondJSON(w, http.StatusOK, cfg)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var upd model.Update
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.store.Update(r.Context(), upd); err != nil {
		log.Printf("[settings] update failed: %v", err)
		utils.RespondError(w, errs.HTTPStatus(err), errs.PublicMessage(err))
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
