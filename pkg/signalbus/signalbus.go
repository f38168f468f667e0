package signalbus

import (
	"context"
	"encoding/json"
	"fmt"
)

// EventTypeAttribute is the message attribute carrying the event type.
const EventTypeAttribute = "event_type"

// Enqueuer places an event on a point-to-point queue.
type Enqueuer interface {
	// Enqueue returns once the broker has accepted the message. Consumer-side
	// processing is independent and asynchronous.
	Enqueue(ctx context.Context, queueURL string, event any) error
}

// Publisher broadcasts an event to every subscriber of a topic.
type Publisher interface {
	// PublishTopic returns once the broker has accepted the message, not once
	// subscribers received it.
	PublishTopic(ctx context.Context, topicARN string, event any) error
}

// Typed is implemented by events that advertise their type to consumers
// through the event_type message attribute.
type Typed interface {
	EventType() string
}

// Message is the wire form of an event.
type Message struct {
	Body      string
	EventType string
}

// Encode serializes event to a JSON message body.
func Encode(event any) (Message, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return Message{}, fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := Message{Body: string(body)}
	if typed, ok := event.(Typed); ok {
		msg.EventType = typed.EventType()
	}
	return msg, nil
}
