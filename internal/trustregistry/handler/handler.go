package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/phi-beta/DIACC-PCTF/internal/transport/http/shared"
	"github.com/phi-beta/DIACC-PCTF/internal/trustregistry/models"
	dErrors "github.com/phi-beta/DIACC-PCTF/pkg/domain-errors"
	"github.com/phi-beta/DIACC-PCTF/pkg/domain"
)

// Service defines the trust registry operations the handler exposes.
type Service interface {
	Register(ctx context.Context, entry models.TrustRegistryEntry) (models.TrustRegistryEntry, error)
	GetEntry(ctx context.Context, id domain.ParticipantID) (models.TrustRegistryEntry, error)
	Search(ctx context.Context, criteria models.SearchCriteria) ([]models.TrustRegistryEntry, error)
	VerifyTrust(ctx context.Context, req models.VerificationRequest) (models.TrustVerificationResult, error)
	UpdateStatus(ctx context.Context, id domain.ParticipantID, status models.TrustStatus, reason string) (models.StatusUpdate, error)
	VerificationHistory(ctx context.Context, id domain.ParticipantID) ([]models.TrustVerificationResult, error)
	RunMaintenance(ctx context.Context) (models.MaintenanceReport, error)
}

// Handler handles trust registry endpoints.
type Handler struct {
	registry Service
	logger   *slog.Logger
}

// New creates a trust registry Handler.
func New(registry Service, logger *slog.Logger) *Handler {
	return &Handler{registry: registry, logger: logger}
}

// Register mounts the registry routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/registry", func(r chi.Router) {
		r.Post("/entries", h.handleRegister)
		r.Get("/entries", h.handleSearch)
		r.Get("/entries/{participantID}", h.handleGetEntry)
		r.Put("/entries/{participantID}/status", h.handleUpdateStatus)
		r.Get("/entries/{participantID}/history", h.handleHistory)
		r.Post("/verify", h.handleVerify)
		r.Post("/maintenance", h.handleMaintenance)
	})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var entry models.TrustRegistryEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	registered, err := h.registry.Register(r.Context(), entry)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteSuccess(w, http.StatusCreated, "registry entry created", registered)
}

func (h *Handler) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	id := domain.ParticipantID(chi.URLParam(r, "participantID"))
	entry, err := h.registry.GetEntry(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteSuccess(w, http.StatusOK, "registry entry", entry)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	criteria := models.SearchCriteria{
		Type:           domain.ParticipantType(r.URL.Query().Get("type")),
		Status:         models.TrustStatus(r.URL.Query().Get("status")),
		AssuranceLevel: domain.AssuranceLevel(r.URL.Query().Get("assurance_level")),
	}
	if raw := r.URL.Query().Get("min_trust_score"); raw != "" {
		minScore, err := strconv.Atoi(raw)
		if err != nil {
			shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "min_trust_score must be an integer"))
			return
		}
		criteria.MinTrustScore = minScore
	}

	matches, err := h.registry.Search(r.Context(), criteria)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteSuccess(w, http.StatusOK, "search results", matches)
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req models.VerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	result, err := h.registry.VerifyTrust(r.Context(), req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteSuccess(w, http.StatusOK, "trust verification completed", result)
}

type updateStatusRequest struct {
	Status models.TrustStatus `json:"status"`
	Reason string             `json:"reason"`
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := domain.ParticipantID(chi.URLParam(r, "participantID"))

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	update, err := h.registry.UpdateStatus(r.Context(), id, req.Status, req.Reason)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteSuccess(w, http.StatusOK, "participant status updated", update)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	id := domain.ParticipantID(chi.URLParam(r, "participantID"))
	history, err := h.registry.VerificationHistory(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteSuccess(w, http.StatusOK, "verification history", history)
}

func (h *Handler) handleMaintenance(w http.ResponseWriter, r *http.Request) {
	report, err := h.registry.RunMaintenance(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteSuccess(w, http.StatusOK, "maintenance completed", report)
}
