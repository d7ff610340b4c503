// Package audit captures the activity trail the registry and orchestrator
// emit on every mutating operation. Components receive a Recorder at
// construction; nothing writes through global state.
package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/phi-beta/DIACC-PCTF/pkg/domain"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so sinks can fan out.
type Event struct {
	Timestamp     time.Time            `json:"timestamp"`
	Action        string               `json:"action"`
	ParticipantID domain.ParticipantID `json:"participant_id,omitempty"`
	Actor         string               `json:"actor,omitempty"`
	Outcome       string               `json:"outcome,omitempty"`
	Reason        string               `json:"reason,omitempty"`
}

// Recorder is the single-method activity sink injected into components.
type Recorder interface {
	Record(ctx context.Context, event Event)
}

// SlogRecorder writes events through a structured logger.
type SlogRecorder struct {
	logger *slog.Logger
}

func NewSlogRecorder(logger *slog.Logger) *SlogRecorder {
	return &SlogRecorder{logger: logger}
}

func (r *SlogRecorder) Record(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	r.logger.InfoContext(ctx, "activity",
		"action", event.Action,
		"participant_id", event.ParticipantID.String(),
		"actor", event.Actor,
		"outcome", event.Outcome,
		"reason", event.Reason,
	)
}

// InMemoryRecorder retains events in append order. Used by tests and the
// status report.
type InMemoryRecorder struct {
	mu     sync.Mutex
	events []Event
}

func NewInMemoryRecorder() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

func (r *InMemoryRecorder) Record(_ context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of the recorded events in append order.
func (r *InMemoryRecorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event{}, r.events...)
}

// Discard drops every event. Default sink when none is injected.
type Discard struct{}

func (Discard) Record(context.Context, Event) {}
