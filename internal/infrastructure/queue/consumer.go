package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/carebridge/patient-platform/internal/core/domain"
)

const maxBackoff = 30 * time.Second

// Consumer reads patient events from RabbitMQ and hands them to the
// dispatcher, which shards them across audit workers.
type Consumer struct {
	uri        string
	queueName  string
	dispatcher *Dispatcher
	log        zerolog.Logger
}

func NewConsumer(uri, queueName string, dispatcher *Dispatcher, log zerolog.Logger) *Consumer {
	return &Consumer{uri: uri, queueName: queueName, dispatcher: dispatcher, log: log}
}

// Run consumes until ctx is cancelled, reconnecting with exponential backoff
// when the broker connection drops.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		conn, err := amqp.Dial(c.uri)
		if err != nil {
			c.log.Warn().Err(err).Dur("backoff", backoff).Msg("broker dial failed, retrying")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			if backoff < maxBackoff {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := c.consumeLoop(ctx, conn); err != nil {
			c.log.Warn().Err(err).Msg("consume loop ended, reconnecting")
		}
		_ = conn.Close()
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("amqp channel: %w", err)
	}
	defer ch.Close()

	if err := ch.Qos(50, 0, false); err != nil {
		return fmt.Errorf("amqp qos: %w", err)
	}

	if _, err := ch.QueueDeclare(c.queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("amqp queue declare: %w", err)
	}

	deliveries, err := ch.Consume(c.queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("amqp consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("deliveries channel closed")
			}

			var event domain.PatientEvent
			if err := json.Unmarshal(d.Body, &event); err != nil {
				c.log.Error().Err(err).Msg("undecodable patient event, dropping")
				_ = d.Nack(false, false) // do not requeue, it will never parse
				continue
			}

			c.dispatcher.Enqueue(event)
			_ = d.Ack(false)
		}
	}
}
