package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher mengirim domain event booking ke RabbitMQ. Publish gagal hanya
// di-log oleh caller, tidak pernah menggagalkan request utama.
type Publisher struct {
	url string
	log *zap.Logger
}

func NewPublisher(url string, log *zap.Logger) *Publisher {
	return &Publisher{
		url: url,
		log: log.With(zap.String("component", "queue_publisher")),
	}
}

// PublishBookingCreated mengirim event ke queue booking.created.
func (p *Publisher) PublishBookingCreated(ctx context.Context, event BookingCreatedEvent) error {
	return p.publish(ctx, QueueBookingCreated, event)
}

// PublishBookingCancelled mengirim event ke queue booking.cancelled.
func (p *Publisher) PublishBookingCancelled(ctx context.Context, event BookingCancelledEvent) error {
	return p.publish(ctx, QueueBookingCancelled, event)
}

func (p *Publisher) publish(ctx context.Context, queueName string, payload any) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Error("Failed to dial rabbitmq", zap.Error(err), zap.String("queue", queueName))
		return fmt.Errorf("dial rabbitmq: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Error("Failed to open channel", zap.Error(err), zap.String("queue", queueName))
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Durable queue, idempotent declare.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		p.log.Error("Failed to declare queue", zap.Error(err), zap.String("queue", queueName))
		return fmt.Errorf("declare queue %s: %w", queueName, err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		p.log.Error("Failed to publish event", zap.Error(err), zap.String("queue", queueName))
		return fmt.Errorf("publish to %s: %w", queueName, err)
	}

	return nil
}
