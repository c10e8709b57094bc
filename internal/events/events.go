package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	// EventSource identifies this service in every published event
	EventSource = "survey-service"

	// EventVersion is the schema version stamped on every event
	EventVersion = "1.0"
)

// Event types published by the service
const (
	AccountRegistered = "account.registered"
	SurveyPublished   = "survey.published"
	ResultSubmitted   = "result.submitted"
)

// Event is the envelope for every domain event leaving the service
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent builds an event envelope around a payload
func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    EventSource,
		Version:   EventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// EventPublisher publishes domain events to the configured transport
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event *Event) error
	Close() error
}

// Payloads

type AccountRegisteredEvent struct {
	AccountID uint     `json:"account_id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Roles     []string `json:"roles"`
}

type SurveyPublishedEvent struct {
	SurveyID   uint   `json:"survey_id"`
	AccountID  uint   `json:"account_id"`
	Title      string `json:"title"`
	CategoryID *uint  `json:"category_id,omitempty"`
}

type ResultSubmittedEvent struct {
	ResultID     uint `json:"result_id"`
	SurveyID     uint `json:"survey_id"`
	AccountID    uint `json:"account_id"`
	TotalPoints  int  `json:"total_points"`
	CorrectCount int  `json:"correct_count"`
}
