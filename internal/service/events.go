package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// Domain event types emitted by the problem set workflows.
const (
	EventProblemSetCreated = "problem_set.created"
	EventProblemSetCloned  = "problem_set.cloned"
)

// DomainEvent describes a lifecycle event other services may react to.
type DomainEvent struct {
	Type         string    `json:"type"`
	DomainID     uint      `json:"domain_id"`
	ProblemSetID uint      `json:"problem_set_id"`
	ActorID      uint      `json:"actor_id"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// EventPublisher emits domain lifecycle events. Publishing is best-effort;
// failures are logged and never fail the originating operation.
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent)
}

type natsEventPublisher struct {
	conn    *nats.Conn
	subject string
	logger  zerolog.Logger
}

// NewNATSEventPublisher builds a NATS-backed publisher. A nil connection
// yields a publisher that drops every event, so callers need no nil checks.
func NewNATSEventPublisher(conn *nats.Conn, subjectBase string, logger zerolog.Logger) EventPublisher {
	return &natsEventPublisher{
		conn:    conn,
		subject: subjectBase,
		logger:  logger.With().Str("component", "event_publisher").Logger(),
	}
}

func (p *natsEventPublisher) Publish(ctx context.Context, event DomainEvent) {
	if p.conn == nil || p.subject == "" {
		return
	}

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn().Err(err).Str("event_type", event.Type).Msg("failed to marshal domain event")
		return
	}

	subject := p.subject + "." + event.Type
	if err := p.conn.Publish(subject, payload); err != nil {
		p.logger.Warn().Err(err).Str("subject", subject).Msg("failed to publish domain event")
	}
}
