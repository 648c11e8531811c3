package speech

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MohamedRasheqA/teachback/internal/config"
)

func newTestSynthesizer(serverURL string) *Synthesizer {
	return NewSynthesizer(config.SpeechConfig{
		ElevenLabsAPIKey: "el-key",
		VoiceID:          "default-voice",
		ModelID:          "eleven_multilingual_v2",
		BaseURL:          serverURL,
	})
}

func TestSynthesizeUsesDefaultVoice(t *testing.T) {
	var gotPath, gotKey string
	var gotBody synthesizeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("xi-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("mp3-bytes"))
	}))
	defer server.Close()

	audio, contentType, err := newTestSynthesizer(server.URL).Synthesize(context.Background(), "read this", "")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	if gotPath != "/v1/text-to-speech/default-voice" {
		t.Fatalf("expected default voice path, got %q", gotPath)
	}
	if gotKey != "el-key" {
		t.Fatalf("expected api key header, got %q", gotKey)
	}
	if gotBody.Text != "read this" || gotBody.ModelID != "eleven_multilingual_v2" {
		t.Fatalf("unexpected payload: %+v", gotBody)
	}
	if string(audio) != "mp3-bytes" || contentType != "audio/mpeg" {
		t.Fatalf("unexpected audio response: %q %q", audio, contentType)
	}
}

func TestSynthesizeVoiceOverride(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	if _, _, err := newTestSynthesizer(server.URL).Synthesize(context.Background(), "read this", "other-voice"); err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if gotPath != "/v1/text-to-speech/other-voice" {
		t.Fatalf("expected override voice path, got %q", gotPath)
	}
}

func TestSynthesizeNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "voice not found", http.StatusNotFound)
	}))
	defer server.Close()

	if _, _, err := newTestSynthesizer(server.URL).Synthesize(context.Background(), "read this", ""); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
