package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewEvent(t *testing.T) {
	event := NewEvent(SurveyPublished, SurveyPublishedEvent{SurveyID: 1, AccountID: 2, Title: "Go basics"})

	if event.ID == "" {
		t.Error("expected a generated event id")
	}
	if event.Type != SurveyPublished {
		t.Errorf("type = %q", event.Type)
	}
	if event.Source != EventSource || event.Version != EventVersion {
		t.Errorf("source/version = %q/%q", event.Source, event.Version)
	}
	if event.Timestamp.IsZero() {
		t.Error("expected a timestamp")
	}
}

func TestGoChannelPublisherRoundTrip(t *testing.T) {
	publisher := NewGoChannelEventPublisher(discardLogger())
	defer publisher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := publisher.Subscribe(ctx, ResultSubmitted)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	sent := NewEvent(ResultSubmitted, ResultSubmittedEvent{ResultID: 3, SurveyID: 1, AccountID: 2, TotalPoints: 8})
	if err := publisher.Publish(ctx, ResultSubmitted, sent); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case msg := <-messages:
		msg.Ack()

		if msg.UUID != sent.ID {
			t.Errorf("message uuid = %q, want %q", msg.UUID, sent.ID)
		}
		if got := msg.Metadata.Get("event_type"); got != ResultSubmitted {
			t.Errorf("event_type metadata = %q", got)
		}

		var received Event
		if err := json.Unmarshal(msg.Payload, &received); err != nil {
			t.Fatalf("unmarshal payload: %v", err)
		}
		if received.Type != ResultSubmitted || received.Source != EventSource {
			t.Errorf("received %+v", received)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for the event")
	}
}

func TestMockPublisherRecordsEvents(t *testing.T) {
	mock := NewMockEventPublisher(discardLogger())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := mock.Publish(ctx, AccountRegistered, NewEvent(AccountRegistered, nil)); err != nil {
			t.Fatalf("Publish: %v", err)
		}
	}

	if got := mock.GetPublishedEvents(); len(got) != 3 {
		t.Errorf("recorded %d events, want 3", len(got))
	}

	mock.ClearEvents()
	if got := mock.GetPublishedEvents(); len(got) != 0 {
		t.Errorf("expected no events after clear, got %d", len(got))
	}
}
