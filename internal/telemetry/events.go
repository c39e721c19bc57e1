package telemetry

import (
	"context"
	"log"

	"post-service/internal/models"
)

// Event names published for post and comment changes.
const (
	PostCreated    = "post.created"
	PostEdited     = "post.edited"
	PostDeleted    = "post.deleted"
	CommentCreated = "comment.created"
	CommentEdited  = "comment.edited"
	CommentDeleted = "comment.deleted"
)

// EventEnvelope wraps a post lifecycle event on the exchange. EventName doubles
// as the routing key.
type EventEnvelope struct {
	EventType string           `json:"event_type"`
	EventName string           `json:"event_name"`
	Payload   models.PostEvent `json:"payload"`
}

// EventEmitter publishes post lifecycle events. Publishing is best effort:
// a failure is logged and never fails the request that caused it.
type EventEmitter struct {
	publisher Publisher
}

func NewEventEmitter(publisher Publisher) *EventEmitter {
	return &EventEmitter{publisher: publisher}
}

func (e *EventEmitter) Emit(ctx context.Context, name, requestID string, event models.PostEvent) {
	if e == nil || e.publisher == nil {
		return
	}

	event.Type = name
	envelope := EventEnvelope{
		EventType: "post_events",
		EventName: name,
		Payload:   event,
	}
	headers := buildHeaders(requestID, traceIDFromContext(ctx))
	if err := e.publisher.Publish(ctx, name, envelope, headers); err != nil {
		log.Printf("event publish failed: name=%s post_id=%d err=%v", name, event.PostID, err)
	}
}
