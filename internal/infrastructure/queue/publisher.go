// Package queue moves patient domain events between the records service and
// the audit trail over RabbitMQ.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/carebridge/patient-platform/internal/core/domain"
)

// Publisher emits patient events to a durable RabbitMQ queue. Messages are
// persistent so they survive broker restarts.
type Publisher struct {
	ch        *amqp.Channel
	conn      *amqp.Connection
	queueName string
	log       zerolog.Logger
}

// NewPublisher dials the broker, declares the queue, and returns a ready
// Publisher. Close must be called on shutdown.
func NewPublisher(uri, queueName string, log zerolog.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("amqp queue declare: %w", err)
	}

	return &Publisher{ch: ch, conn: conn, queueName: queueName, log: log}, nil
}

// Publish sends one event. The caller treats failures as non-fatal; the
// patient write has already happened by the time this runs.
func (p *Publisher) Publish(ctx context.Context, event domain.PatientEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal patient event: %w", err)
	}

	err = p.ch.PublishWithContext(ctx,
		"",          // default exchange
		p.queueName, // routing key = queue name
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish patient event: %w", err)
	}

	p.log.Debug().
		Str("patient_id", event.PatientID).
		Str("event_type", event.EventType).
		Msg("patient event published")
	return nil
}

// Close releases the channel and connection.
func (p *Publisher) Close() error {
	_ = p.ch.Close()
	return p.conn.Close()
}
