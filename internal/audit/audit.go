package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hirable/webgate/internal/infrastructure/kafka"
	"github.com/hirable/webgate/internal/models"
)

// Topic is the Kafka topic auth audit events are published to.
const Topic = "auth-events"

type EventType string

const (
	EventLogin        EventType = "user_logged_in"
	EventLoginFailed  EventType = "user_login_failed"
	EventLogout       EventType = "user_logged_out"
	EventAccessDenied EventType = "access_denied"
	EventRegistered   EventType = "user_registered"
)

// Event is one audit record of the session/authorization core.
type Event struct {
	EventID    string      `json:"event_id"`
	EventType  EventType   `json:"event_type"`
	UserID     string      `json:"user_id,omitempty"`
	Email      string      `json:"email,omitempty"`
	Role       models.Role `json:"role,omitempty"`
	Path       string      `json:"path,omitempty"`
	OccurredAt string      `json:"occurred_at"`
}

// Publisher records auth audit events. Implementations must tolerate sink
// failures; auditing is best effort and never blocks the auth flow.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// KafkaPublisher ships audit events to Kafka.
type KafkaPublisher struct {
	producer kafka.KafkaProducer
}

func NewKafkaPublisher(producer kafka.KafkaProducer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.OccurredAt == "" {
		event.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to marshal audit event", "event_type", event.EventType, "error", err)
		return
	}
	if err := p.producer.Send(ctx, Topic, event.EventID, payload); err != nil {
		slog.Error("failed to publish audit event",
			"event_type", event.EventType,
			"event_id", event.EventID,
			"error", err)
	}
}

// Nop discards all events; used when no broker is configured.
type Nop struct{}

func (Nop) Publish(ctx context.Context, event Event) {}
