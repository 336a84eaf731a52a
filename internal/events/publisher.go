// Package events publishes reservation domain events to RabbitMQ.
// Publishing is best effort: callers log failures and carry on.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"campground_backend/pkg/utils"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ReservationCreated is emitted after a reservation has been committed.
type ReservationCreated struct {
	ReservationID  int64     `json:"reservation_id"`
	CamperID       int64     `json:"camper_id"`
	CampsiteID     int64     `json:"campsite_id"`
	CheckInDate    string    `json:"check_in_date"`
	CheckOutDate   string    `json:"check_out_date"`
	NumberOfGuests int       `json:"number_of_guests"`
	TotalPrice     float64   `json:"total_price"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Publisher delivers domain events to interested consumers.
type Publisher interface {
	PublishReservationCreated(ctx context.Context, event ReservationCreated) error
	Close() error
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) PublishReservationCreated(context.Context, ReservationCreated) error { return nil }
func (NoopPublisher) Close() error                                                       { return nil }

// NewPublisher connects to the broker at url. An empty url, or a broker
// that cannot be reached, yields a NoopPublisher so the API keeps serving.
func NewPublisher(url, queue string) Publisher {
	if url == "" {
		return NoopPublisher{}
	}
	p, err := NewAMQPPublisher(url, queue)
	if err != nil {
		utils.LogWarn(err, "RabbitMQ unavailable, reservation events disabled")
		return NoopPublisher{}
	}
	utils.LogInfo("Publishing reservation events", map[string]interface{}{"queue": queue})
	return p
}

// AMQPPublisher publishes persistent JSON messages to a durable queue via
// the default exchange. It is safe for concurrent use.
type AMQPPublisher struct {
	mu    sync.Mutex
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

// NewAMQPPublisher dials the broker and declares the queue.
func NewAMQPPublisher(url, queue string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq queue declare %q: %w", queue, err)
	}
	return &AMQPPublisher{conn: conn, ch: ch, queue: queue}, nil
}

func (p *AMQPPublisher) PublishReservationCreated(ctx context.Context, event ReservationCreated) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal reservation event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         "reservation.created",
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	utils.LogDebug("Reservation event published", map[string]interface{}{"reservation_id": event.ReservationID, "queue": p.queue})
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.Close(); err != nil {
		_ = p.conn.Close()
		return err
	}
	return p.conn.Close()
}
