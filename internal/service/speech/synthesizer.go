// Package speech proxies the hosted text-to-speech service. Credentials live
// server-side only; clients never talk to the speech provider directly.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/MohamedRasheqA/teachback/internal/config"
	"github.com/MohamedRasheqA/teachback/internal/errs"
)

// Synthesizer converts text into spoken audio via the ElevenLabs API.
type Synthesizer struct {
	baseURL    string
	apiKey     string
	voiceID    string
	modelID    string
	httpClient *http.Client
}

// NewSynthesizer builds a synthesizer from configuration.
func NewSynthesizer(cfg config.SpeechConfig) *Synthesizer {
	return &Synthesizer{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.ElevenLabsAPIKey,
		voiceID: cfg.VoiceID,
		modelID: cfg.ModelID,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type synthesizeRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

// Synthesize returns the full audio payload and its content type. voiceID
// may be empty to use the configured default voice.
func (s *Synthesizer) Synthesize(ctx context.Context, text, voiceID string) ([]byte, string, error) {
	if voiceID == "" {
		voiceID = s.voiceID
	}

	body, err := json.Marshal(synthesizeRequest{Text: text, ModelID: s.modelID})
	if err != nil {
		return nil, "", fmt.Errorf("encoding synthesis payload: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", s.baseURL, voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, "", fmt.Errorf("building synthesis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, "", errs.Upstreamf("synthesizing speech", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, "", errs.Upstreamf("synthesizing speech", fmt.Errorf("status %d: %s", resp.StatusCode, detail))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", errs.Upstreamf("reading synthesized audio", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	return audio, contentType, nil
}
