// Package speech exposes the speech-to-text and text-to-speech proxy routes.
package speech

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MohamedRasheqA/teachback/internal/errs"
	"github.com/MohamedRasheqA/teachback/pkg/utils"
)

// Transcriber converts spoken audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}

// Synthesizer converts text into spoken audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voiceID string) ([]byte, string, error)
}

// Handler serves the speech proxy routes.
type Handler struct {
	transcriber Transcriber
	synthesizer Synthesizer
}

// New creates the speech handler. Either dependency may be nil when its
// hosted service is not configured; the route then answers 501.
func New(transcriber Transcriber, synthesizer Synthesizer) *Handler {
	return &Handler{transcriber: transcriber, synthesizer: synthesizer}
}

// RegisterRoutes registers the speech routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/speech-to-text", h.handleTranscribe)
	r.Post("/text-to-speech", h.handleSynthesize)
}

func (h *Handler) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	if h.transcriber == nil {
		utils.RespondError(w, http.StatusNotImplemented, "speech-to-text not configured")
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "audio file is required")
		return
	}
	defer file.Close()

	filename := header.Filename
	if filename == "" {
		filename = "audio.mp3"
	}

	text, err := h.transcriber.Transcribe(r.Context(), file, filename)
	if err != nil {
		log.Printf("[speech] transcription failed: %v", err)
		utils.RespondError(w, errs.HTTPStatus(err), errs.PublicMessage(err))
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"text": text})
}

type synthesizeRequest struct {
	Text    string `json:"text"`
	VoiceID string `json:"voiceId"`
}

func (h *Handler) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	if h.synthesizer == nil {
		utils.RespondError(w, http.StatusNotImplemented, "text-to-speech not configured")
		return
	}

	var payload synthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Text == "" {
		utils.RespondError(w, http.StatusBadRequest, "text is required")
		return
	}

	audio, contentType, err := h.synthesizer.Synthesize(r.Context(), payload.Text, payload.VoiceID)
	if err != nil {
		log.Printf("[speech] synthesis failed: %v", err)
		utils.RespondError(w, errs.HTTPStatus(err), errs.PublicMessage(err))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(audio)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(audio); err != nil {
		log.Printf("[speech] writing audio response: %v", err)
	}
}
