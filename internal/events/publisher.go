// Package events publishes CV document lifecycle notifications to RabbitMQ.
// Publishing is best-effort: the server never fails a request because the
// broker is down.
package events

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

// Event kinds emitted on document lifecycle transitions.
const (
	KindCreated = "cv.created"
	KindUpdated = "cv.updated"
	KindDeleted = "cv.deleted"
)

// Event is the wire payload published per lifecycle transition.
type Event struct {
	Kind       string    `json:"kind"`
	DocumentID uuid.UUID `json:"document_id"`
	UserID     uuid.UUID `json:"user_id"`
	LayoutID   string    `json:"layout_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher sends lifecycle events to a durable queue. The zero value (or a
// nil *Publisher) is a no-op publisher, used when no broker is configured.
type Publisher struct {
	conn  *amqp.Connection
	queue string
}

// Connect dials the broker and declares the durable queue. An empty URL
// returns a nil publisher, which drops all events.
func Connect(url, queue string) (*Publisher, error) {
	if url == "" {
		return nil, nil
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	return &Publisher{conn: conn, queue: queue}, nil
}

// Close shuts down the broker connection.
func (p *Publisher) Close() error {
	if p == nil || p.conn == nil {
		return nil
	}
	return p.conn.Close()
}

// Publish sends one event. Failures are logged and swallowed; document
// writes must not depend on broker availability.
func (p *Publisher) Publish(kind string, documentID, userID uuid.UUID, layoutID string) {
	if p == nil || p.conn == nil {
		return
	}

	event := Event{
		Kind:       kind,
		DocumentID: documentID,
		UserID:     userID,
		LayoutID:   layoutID,
		OccurredAt: time.Now().UTC(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("[events] failed to marshal %s event: %v", kind, err)
		return
	}

	ch, err := p.conn.Channel()
	if err != nil {
		log.Printf("[events] failed to open channel for %s event: %v", kind, err)
		return
	}
	defer ch.Close()

	err = ch.Publish(
		"",      // default exchange
		p.queue, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		log.Printf("[events] failed to publish %s event for document %s: %v", kind, documentID, err)
	}
}
