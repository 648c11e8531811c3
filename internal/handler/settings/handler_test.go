package settings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/MohamedRasheqA/teachback/internal/errs"
	model "github.com/MohamedRasheqA/teachback/internal/model/settings"
)

type fakeStore struct {
	latest    model.PromptConfiguration
	latestErr error
	updateErr error
	gotUpdate model.Update
}

func (f *fakeStore) Latest(_ context.Context) (model.PromptConfiguration, error) {
	if f.latestErr != nil {
		return model.PromptConfiguration{}, f.latestErr
	}
	return f.latest, nil
}

func (f *fakeStore) Update(_ context.Context, upd model.Update) error {
	f.gotUpdate = upd
	return f.updateErr
}

func newTestRouter(store Store) http.Handler {
	r := chi.NewRouter()
	New(store).RegisterRoutes(r)
	return r
}

func TestHandleGetReturnsConfiguration(t *testing.T) {
	store := &fakeStore{latest: model.PromptConfiguration{
		Prompt:      "be brief",
		Heading:     model.DefaultHeading,
		Description: model.DefaultDescription,
		PageTitle:   "Custom title",
	}}

	req := httptest.NewRequest(http.MethodGet, "/settings", nil)
	rec := httptest.NewRecorder()
	newTestRouter(store).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var got model.PromptConfiguration
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got != store.latest {
		t.Fatalf("expected %+v, got %+v", store.latest, got)
	}
}

func TestHandleUpdatePassesOnlyProvidedFields(t *testing.T) {
	store := &fakeStore{}
	req := httptest.NewRequest(http.MethodPost, "/settings", strings.NewReader(`{"heading":"New heading"}`))
	rec := httptest.NewRecorder()
	newTestRouter(store).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if store.gotUpdate.Heading == nil || *store.gotUpdate.Heading != "New heading" {
		t.Fatalf("expected heading update, got %+v", store.gotUpdate)
	}
	if store.gotUpdate.Prompt != nil || store.gotUpdate.Description != nil || store.gotUpdate.PageTitle != nil {
		t.Fatalf("unprovided fields must stay nil, got %+v", store.gotUpdate)
	}
	if !strings.Contains(rec.Body.String(), `"success":true`) {
		t.Fatalf("expected success body, got %s", rec.Body.String())
	}
}

func TestHandleUpdateRejectsInvalidBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/settings", strings.NewReader(`{`))
	rec := httptest.NewRecorder()
	newTestRouter(&fakeStore{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestHandleGetPersistenceFailure(t *testing.T) {
	store := &fakeStore{latestErr: errs.Persistencef("loading settings", errors.New("connection refused"))}
	req := httptest.NewRequest(http.MethodGet, "/settings", nil)
	rec := httptest.NewRecorder()
	newTestRouter(store).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Fatalf("persistence detail leaked to the client: %s", rec.Body.String())
	}
}
