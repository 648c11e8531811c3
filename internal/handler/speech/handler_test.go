package speech

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

type fakeTranscriber struct {
	text     string
	err      error
	filename string
	audio    []byte
}

func (f *fakeTranscriber) Transcribe(_ context.Context, audio io.Reader, filename string) (string, error) {
	f.filename = filename
	f.audio, _ = io.ReadAll(audio)
	return f.text, f.err
}

type fakeSynthesizer struct {
	audio       []byte
	contentType string
	err         error
	gotText     string
	gotVoice    string
}

func (f *fakeSynthesizer) Synthesize(_ context.Context, text, voiceID string) ([]byte, string, error) {
	f.gotText, f.gotVoice = text, voiceID
	return f.audio, f.contentType, f.err
}

func newTestRouter(tr Transcriber, syn Synthesizer) http.Handler {
	r := chi.NewRouter()
	New(tr, syn).RegisterRoutes(r)
	return r
}

func multipartAudio(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	mw.Close()
	return &body, mw.FormDataContentType()
}

func TestHandleTranscribe(t *testing.T) {
	tr := &fakeTranscriber{text: "hello world"}
	body, contentType := multipartAudio(t, "audio", "clip.webm", []byte("fake-audio"))

	req := httptest.NewRequest(http.MethodPost, "/speech-to-text", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	newTestRouter(tr, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"text":"hello world"`) {
		t.Fatalf("expected transcription in body, got %s", rec.Body.String())
	}
	if tr.filename != "clip.webm" {
		t.Fatalf("expected upload filename to be forwarded, got %q", tr.filename)
	}
	if string(tr.audio) != "fake-audio" {
		t.Fatalf("expected audio bytes to be forwarded, got %q", tr.audio)
	}
}

func TestHandleTranscribeMissingAudio(t *testing.T) {
	body, contentType := multipartAudio(t, "file", "clip.webm", []byte("fake-audio"))

	req := httptest.NewRequest(http.MethodPost, "/speech-to-text", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	newTestRouter(&fakeTranscriber{}, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleTranscribeNotConfigured(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/speech-to-text", nil)
	rec := httptest.NewRecorder()
	newTestRouter(nil, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("expected status 501, got %d", rec.Code)
	}
}

func TestHandleSynthesize(t *testing.T) {
	syn := &fakeSynthesizer{audio: []byte("mp3-bytes"), contentType: "audio/mpeg"}
	req := httptest.NewRequest(http.MethodPost, "/text-to-speech", strings.NewReader(`{"text":"read this","voiceId":"v-1"}`))
	rec := httptest.NewRecorder()
	newTestRouter(nil, syn).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "audio/mpeg" {
		t.Fatalf("expected audio content type, got %q", ct)
	}
	if rec.Body.String() != "mp3-bytes" {
		t.Fatalf("expected raw audio body, got %q", rec.Body.String())
	}
	if syn.gotText != "read this" || syn.gotVoice != "v-1" {
		t.Fatalf("expected text and voice to be forwarded, got text=%q voice=%q", syn.gotText, syn.gotVoice)
	}
}

func TestHandleSynthesizeMissingText(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/text-to-speech", strings.NewReader(`{"voiceId":"v-1"}`))
	rec := httptest.NewRecorder()
	newTestRouter(nil, &fakeSynthesizer{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleSynthesizeNotConfigured(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/text-to-speech", strings.NewReader(`{"text":"read this"}`))
	rec := httptest.NewRecorder()
	newTestRouter(nil, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("expected status 501, got %d", rec.Code)
	}
}
