package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phi-beta/DIACC-PCTF/internal/conformance"
	"github.com/phi-beta/DIACC-PCTF/internal/framework/models"
	"github.com/phi-beta/DIACC-PCTF/internal/transport/http/shared"
	dErrors "github.com/phi-beta/DIACC-PCTF/pkg/domain-errors"
	"github.com/phi-beta/DIACC-PCTF/pkg/domain"
)

// Service defines the orchestrator operations the handler exposes.
type Service interface {
	RegisterParticipant(ctx context.Context, participant models.Participant) (models.Participant, error)
	Participant(ctx context.Context, id domain.ParticipantID) (models.Participant, error)
	Participants(ctx context.Context) ([]models.Participant, error)
	ParticipantsByType(ctx context.Context, t domain.ParticipantType) ([]models.Participant, error)
	AssessConformance(ctx context.Context, id domain.ParticipantID) (conformance.AssessmentResult, error)
	ValidateEcosystem(ctx context.Context) (models.EcosystemValidation, error)
	StatusReport(ctx context.Context) (models.StatusReport, error)
}

// Handler handles framework orchestrator endpoints.
type Handler struct {
	framework Service
	logger    *slog.Logger
}

// New creates a framework Handler.
func New(framework Service, logger *slog.Logger) *Handler {
	return &Handler{framework: framework, logger: logger}
}

// Register mounts the framework routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/framework", func(r chi.Router) {
		r.Post("/participants", h.handleRegister)
		r.Get("/participants", h.handleList)
		r.Get("/participants/{participantID}", h.handleGet)
		r.Get("/participants/{participantID}/conformance", h.handleAssess)
		r.Get("/ecosystem/validation", h.handleValidate)
		r.Get("/reports/status", h.handleStatusReport)
	})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var participant models.Participant
	if err := json.NewDecoder(r.Body).Decode(&participant); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	registered, err := h.framework.RegisterParticipant(r.Context(), participant)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteSuccess(w, http.StatusCreated, "participant registered", registered)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("type"); raw != "" {
		participants, err := h.framework.ParticipantsByType(r.Context(), domain.ParticipantType(raw))
		if err != nil {
			shared.WriteError(w, err)
			return
		}
		shared.WriteSuccess(w, http.StatusOK, "participants", participants)
		return
	}

	participants, err := h.framework.Participants(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteSuccess(w, http.StatusOK, "participants", participants)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id := domain.ParticipantID(chi.URLParam(r, "participantID"))
	participant, err := h.framework.Participant(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteSuccess(w, http.StatusOK, "participant", participant)
}

func (h *Handler) handleAssess(w http.ResponseWriter, r *http.Request) {
	id := domain.ParticipantID(chi.URLParam(r, "participantID"))
	result, err := h.framework.AssessConformance(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteSuccess(w, http.StatusOK, "conformance assessment", result)
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	validation, err := h.framework.ValidateEcosystem(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteSuccess(w, http.StatusOK, "ecosystem validation", validation)
}

func (h *Handler) handleStatusReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.framework.StatusReport(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteSuccess(w, http.StatusOK, "status report", report)
}
