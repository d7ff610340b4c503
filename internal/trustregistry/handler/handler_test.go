package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/phi-beta/DIACC-PCTF/internal/transport/http/shared"
	"github.com/phi-beta/DIACC-PCTF/internal/trustregistry/models"
	"github.com/phi-beta/DIACC-PCTF/internal/trustregistry/service"
	"github.com/phi-beta/DIACC-PCTF/internal/trustregistry/store"
)

func newRegistryRouter() chi.Router {
	st := store.NewInMemory()
	svc := service.New(st, st)
	h := New(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func registerBody(id string) []byte {
	expiry := time.Now().AddDate(1, 0, 0).Format(time.RFC3339)
	body, _ := json.Marshal(map[string]any{
		"participant_id":  id,
		"name":            "Entry " + id,
		"type":            "ISSUER",
		"status":          "TRUSTED",
		"assurance_level": "LOA2",
		"certifications": []map[string]any{{
			"certification_id":  "cert-1",
			"issuing_authority": "DIACC",
			"issuance_date":     time.Now().AddDate(-1, 0, 0).Format(time.RFC3339),
			"expiration_date":   expiry,
			"status":            "ACTIVE",
		}},
		"contact_information": map[string]string{"email": id + "@example.ca"},
	})
	return body
}

func doJSON(t *testing.T, router chi.Router, method, path string, body []byte) (*httptest.ResponseRecorder, shared.Envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope shared.Envelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	return rec, envelope
}

func TestRegisterEndpoint(t *testing.T) {
	router := newRegistryRouter()

	rec, envelope := doJSON(t, router, http.MethodPost, "/registry/entries", registerBody("issuer-1"))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating entry, got %d", rec.Code)
	}
	if !envelope.Success {
		t.Fatalf("expected success envelope, got %+v", envelope)
	}

	t.Run("duplicate returns 409 with failure envelope", func(t *testing.T) {
		rec, envelope := doJSON(t, router, http.MethodPost, "/registry/entries", registerBody("issuer-1"))
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409 for duplicate, got %d", rec.Code)
		}
		if envelope.Success || len(envelope.Errors) == 0 {
			t.Fatalf("expected failure envelope with errors, got %+v", envelope)
		}
	})

	t.Run("validation failure lists missing fields", func(t *testing.T) {
		body, _ := json.Marshal(map[string]any{"participant_id": "incomplete"})
		rec, envelope := doJSON(t, router, http.MethodPost, "/registry/entries", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for invalid entry, got %d", rec.Code)
		}
		if len(envelope.Errors) < 2 {
			t.Fatalf("expected per-field errors, got %v", envelope.Errors)
		}
	})
}

func TestVerifyEndpoint(t *testing.T) {
	router := newRegistryRouter()
	if rec, _ := doJSON(t, router, http.MethodPost, "/registry/entries", registerBody("issuer-1")); rec.Code != http.StatusCreated {
		t.Fatalf("setup registration failed: %d", rec.Code)
	}

	body, _ := json.Marshal(map[string]string{"participant_id": "issuer-1", "requested_by": "rp-1"})
	rec, envelope := doJSON(t, router, http.MethodPost, "/registry/verify", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 verifying trust, got %d", rec.Code)
	}

	data, _ := json.Marshal(envelope.Data)
	var result models.TrustVerificationResult
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("failed to decode verification result: %v", err)
	}
	if result.TrustStatus != models.StatusTrusted {
		t.Fatalf("expected TRUSTED result, got %s", result.TrustStatus)
	}
	if len(result.Details.Passed) != 3 {
		t.Fatalf("expected all three checks to pass, got %v", result.Details)
	}

	t.Run("unknown participant returns 404", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"participant_id": "missing"})
		rec, _ := doJSON(t, router, http.MethodPost, "/registry/verify", body)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestSearchEndpoint(t *testing.T) {
	router := newRegistryRouter()
	for _, id := range []string{"issuer-1", "issuer-2"} {
		if rec, _ := doJSON(t, router, http.MethodPost, "/registry/entries", registerBody(id)); rec.Code != http.StatusCreated {
			t.Fatalf("setup registration failed: %d", rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/registry/entries?type=ISSUER&status=TRUSTED&min_trust_score=90", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 searching, got %d", rec.Code)
	}

	var envelope shared.Envelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	data, _ := json.Marshal(envelope.Data)
	var matches []models.TrustRegistryEntry
	if err := json.Unmarshal(data, &matches); err != nil {
		t.Fatalf("failed to decode matches: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
}

func TestUpdateStatusEndpoint(t *testing.T) {
	router := newRegistryRouter()
	if rec, _ := doJSON(t, router, http.MethodPost, "/registry/entries", registerBody("issuer-1")); rec.Code != http.StatusCreated {
		t.Fatalf("setup registration failed: %d", rec.Code)
	}

	body, _ := json.Marshal(map[string]string{"status": "REVOKED", "reason": "key compromise"})
	rec, envelope := doJSON(t, router, http.MethodPut, "/registry/entries/issuer-1/status", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 updating status, got %d", rec.Code)
	}

	data, _ := json.Marshal(envelope.Data)
	var update models.StatusUpdate
	if err := json.Unmarshal(data, &update); err != nil {
		t.Fatalf("failed to decode status update: %v", err)
	}
	if update.PreviousStatus != models.StatusTrusted || update.NewStatus != models.StatusRevoked {
		t.Fatalf("unexpected transition: %+v", update)
	}
}

func TestMaintenanceEndpoint(t *testing.T) {
	router := newRegistryRouter()
	rec, envelope := doJSON(t, router, http.MethodPost, "/registry/maintenance", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 running maintenance, got %d", rec.Code)
	}
	if !envelope.Success {
		t.Fatalf("expected success envelope, got %+v", envelope)
	}
}
