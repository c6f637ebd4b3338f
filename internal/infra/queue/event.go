package mq

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Routing keys of the events published on the topic exchange.
const (
	EventSurveyCreated       = "survey.created"
	EventActivitiesGenerated = "activities.generated"
	EventFavoriteSaved       = "favorite.saved"
	EventFavoriteRemoved     = "favorite.removed"
)

type Event struct {
	Type       string            `json:"type"`
	OccurredAt time.Time         `json:"occurred_at"`
	UserID     uuid.UUID         `json:"user_id"`
	SurveyID   *uuid.UUID        `json:"survey_id,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// EventPublisher is what services depend on; *Publisher and the noop publisher satisfy it.
type EventPublisher interface {
	Publish(ctx context.Context, ev Event) error
}

type noopPublisher struct{}

// NewNoopPublisher drops every event. Used when rabbitmq is disabled.
func NewNoopPublisher() EventPublisher { return noopPublisher{} }

func (noopPublisher) Publish(context.Context, Event) error { return nil }
