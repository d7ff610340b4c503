package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/phi-beta/DIACC-PCTF/internal/conformance"
	"github.com/phi-beta/DIACC-PCTF/internal/framework/models"
	"github.com/phi-beta/DIACC-PCTF/internal/framework/service"
	"github.com/phi-beta/DIACC-PCTF/internal/framework/store"
	"github.com/phi-beta/DIACC-PCTF/internal/transport/http/shared"
)

func newFrameworkRouter() chi.Router {
	svc := service.New(store.NewInMemory())
	h := New(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	h.Register(r)
	return r
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

func participantBody(id, participantType, level string) []byte {
	body, _ := json.Marshal(map[string]any{
		"participant_id":      id,
		"name":                "Participant " + id,
		"type":                participantType,
		"certification_level": level,
		"is_active":           true,
	})
	return body
}

func TestRegisterParticipantEndpoint(t *testing.T) {
	router := newFrameworkRouter()

	rec, envelope := doJSON(t, router, http.MethodPost, "/framework/participants", participantBody("idp-1", "IDENTITY_PROVIDER", "LOA3"))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 registering participant, got %d", rec.Code)
	}
	if !envelope.Success {
		t.Fatalf("expected success envelope, got %+v", envelope)
	}

	t.Run("duplicate returns 409", func(t *testing.T) {
		rec, _ := doJSON(t, router, http.MethodPost, "/framework/participants", participantBody("idp-1", "IDENTITY_PROVIDER", "LOA3"))
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409 for duplicate, got %d", rec.Code)
		}
	})

	t.Run("unknown type returns 400", func(t *testing.T) {
		rec, envelope := doJSON(t, router, http.MethodPost, "/framework/participants", participantBody("bad-1", "BANANA", "LOA2"))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for unknown type, got %d", rec.Code)
		}
		if envelope.Success {
			t.Fatalf("expected failure envelope, got %+v", envelope)
		}
	})
}

func TestListParticipantsEndpoint(t *testing.T) {
	router := newFrameworkRouter()
	seed := [][2]string{
		{"idp-1", "IDENTITY_PROVIDER"},
		{"asp-1", "AUTHENTICATION_SERVICE_PROVIDER"},
		{"issuer-1", "ISSUER"},
	}
	for _, s := range seed {
		if rec, _ := doJSON(t, router, http.MethodPost, "/framework/participants", participantBody(s[0], s[1], "LOA2")); rec.Code != http.StatusCreated {
			t.Fatalf("setup registration failed for %s: %d", s[0], rec.Code)
		}
	}

	rec, envelope := doJSON(t, router, http.MethodGet, "/framework/participants", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 listing, got %d", rec.Code)
	}
	data, _ := json.Marshal(envelope.Data)
	var all []models.Participant
	if err := json.Unmarshal(data, &all); err != nil {
		t.Fatalf("failed to decode participants: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 participants, got %d", len(all))
	}

	t.Run("filter by type", func(t *testing.T) {
		rec, envelope := doJSON(t, router, http.MethodGet, "/framework/participants?type=ISSUER", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 filtering, got %d", rec.Code)
		}
		data, _ := json.Marshal(envelope.Data)
		var issuers []models.Participant
		if err := json.Unmarshal(data, &issuers); err != nil {
			t.Fatalf("failed to decode participants: %v", err)
		}
		if len(issuers) != 1 || issuers[0].ParticipantID != "issuer-1" {
			t.Fatalf("expected only issuer-1, got %+v", issuers)
		}
	})
}

func TestConformanceEndpoint(t *testing.T) {
	router := newFrameworkRouter()
	if rec, _ := doJSON(t, router, http.MethodPost, "/framework/participants", participantBody("issuer-1", "ISSUER", "LOA3")); rec.Code != http.StatusCreated {
		t.Fatalf("setup registration failed: %d", rec.Code)
	}

	rec, envelope := doJSON(t, router, http.MethodGet, "/framework/participants/issuer-1/conformance", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 assessing conformance, got %d", rec.Code)
	}
	data, _ := json.Marshal(envelope.Data)
	var result conformance.AssessmentResult
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("failed to decode assessment: %v", err)
	}
	if !result.OverallConformance {
		t.Fatalf("expected overall conformance, got %+v", result)
	}
	if len(result.ComponentResults) != 2 {
		t.Fatalf("expected privacy and infrastructure components for LOA3 issuer, got %d", len(result.ComponentResults))
	}

	t.Run("unknown participant returns 404", func(t *testing.T) {
		rec, _ := doJSON(t, router, http.MethodGet, "/framework/participants/missing/conformance", nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestEcosystemValidationEndpoint(t *testing.T) {
	router := newFrameworkRouter()

	rec, envelope := doJSON(t, router, http.MethodGet, "/framework/ecosystem/validation", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 validating, got %d", rec.Code)
	}
	data, _ := json.Marshal(envelope.Data)
	var validation models.EcosystemValidation
	if err := json.Unmarshal(data, &validation); err != nil {
		t.Fatalf("failed to decode validation: %v", err)
	}
	if validation.Valid {
		t.Fatalf("expected empty ecosystem to be invalid, got %+v", validation)
	}
	if len(validation.Issues) != 2 {
		t.Fatalf("expected missing identity and authentication providers, got %v", validation.Issues)
	}
}

func TestStatusReportEndpoint(t *testing.T) {
	router := newFrameworkRouter()
	if rec, _ := doJSON(t, router, http.MethodPost, "/framework/participants", participantBody("wallet-1", "WALLET_PROVIDER", "LOA2")); rec.Code != http.StatusCreated {
		t.Fatalf("setup registration failed: %d", rec.Code)
	}

	rec, envelope := doJSON(t, router, http.MethodGet, "/framework/reports/status", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 reporting, got %d", rec.Code)
	}
	data, _ := json.Marshal(envelope.Data)
	var report models.StatusReport
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if report.TotalParticipants != 1 || report.ActiveParticipants != 1 {
		t.Fatalf("unexpected counts: %+v", report)
	}
}
