// Package rabbitmq publishes booking events to RabbitMQ.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/srgjo27/venue_booking/internal/core/ports"
)

const (
	QueueBookingConfirmed = "booking.confirmed"
	QueueBookingCancelled = "booking.cancelled"
)

type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type Publisher struct {
	mu   sync.Mutex
	ch   channel
	conn io.Closer
}

// Dial connects to the broker and declares the booking queues.
func Dial(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: dial failed: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq: channel open failed: %w", err)
	}

	p, err := newPublisher(ch, conn)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	return p, nil
}

func newPublisher(ch channel, conn io.Closer) (*Publisher, error) {
	for _, q := range []string{QueueBookingConfirmed, QueueBookingCancelled} {
		// Durable so messages survive broker restarts.
		if _, err := ch.QueueDeclare(q, true, false, false, false, nil); err != nil {
			return nil, fmt.Errorf("rabbitmq: queue declare %s failed: %w", q, err)
		}
	}

	return &Publisher{ch: ch, conn: conn}, nil
}

func (p *Publisher) PublishBookingConfirmed(ctx context.Context, event ports.BookingEvent) error {
	return p.publish(ctx, QueueBookingConfirmed, event)
}

func (p *Publisher) PublishBookingCancelled(ctx context.Context, event ports.BookingEvent) error {
	return p.publish(ctx, QueueBookingCancelled, event)
}

func (p *Publisher) publish(ctx context.Context, queue string, event ports.BookingEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("rabbitmq: marshal event failed: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		MessageId:    event.Reference,
		Body:         body,
	}

	// amqp channels are not safe for concurrent publishing.
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		log.Printf("rabbitmq: publish to %s failed: %v", queue, err)
		return err
	}

	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		return err
	}

	if p.conn != nil {
		return p.conn.Close()
	}

	return nil
}

// LogPublisher writes events to the log. It is used when no broker is
// configured.
type LogPublisher struct{}

func (LogPublisher) PublishBookingConfirmed(_ context.Context, event ports.BookingEvent) error {
	log.Printf("event %s: booking %s (%s %s)", QueueBookingConfirmed, event.Reference, event.Amount, event.Currency)
	return nil
}

func (LogPublisher) PublishBookingCancelled(_ context.Context, event ports.BookingEvent) error {
	log.Printf("event %s: booking %s", QueueBookingCancelled, event.Reference)
	return nil
}
