// Package kafka publishes finalized orders to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	otelapi "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"flowershop/pkg/logger"
	"flowershop/pkg/order"
)

const (
	BatchTimeout = 10 * time.Millisecond
	BatchSize    = 100
)

// Writer is the subset of *kafkago.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// NewWriter returns a writer for topic on broker.
func NewWriter(broker, topic string) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:         kafkago.TCP(broker),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		BatchTimeout: BatchTimeout,
		BatchSize:    BatchSize,
	}
}

// Event is the message payload.
type Event struct {
	OrderID     string       `json:"order_id"`
	Customer    string       `json:"customer"`
	Status      order.Status `json:"status"`
	Items       []order.Item `json:"items"`
	Total       float64      `json:"total"`
	Error       string       `json:"error,omitempty"`
	FinalizedAt time.Time    `json:"finalized_at"`
}

// Publisher implements order.Notifier.
type Publisher struct {
	w          Writer
	log        *logger.Logger
	propagator propagation.TextMapPropagator
	now        func() time.Time
}

// Option customizes a Publisher.
type Option func(*Publisher)

// WithPropagator sets the propagator used to write trace headers.
func WithPropagator(p propagation.TextMapPropagator) Option {
	return func(pub *Publisher) { pub.propagator = p }
}

// New creates a publisher writing through w.
func New(w Writer, log *logger.Logger, opts ...Option) *Publisher {
	p := &Publisher{w: w, log: log, propagator: otelapi.GetTextMapPropagator(), now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// OrderFinalized publishes o keyed by its ID.
func (p *Publisher) OrderFinalized(ctx context.Context, o order.Order) error {
	msg, err := p.message(ctx, o)
	if err != nil {
		p.log.Error(ctx, "serialize order event", "order_id", o.ID, "error", err)
		return err
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		p.log.Error(ctx, "publish order event", "order_id", o.ID, "error", err)
		return fmt.Errorf("publishing order %s: %w", o.ID, err)
	}
	p.log.Info(ctx, "order event published", "order_id", o.ID, "status", o.Status)
	return nil
}

// Close closes the underlying writer.
func (p *Publisher) Close() error {
	return p.w.Close()
}

func (p *Publisher) message(ctx context.Context, o order.Order) (kafkago.Message, error) {
	payload, err := json.Marshal(Event{
		OrderID:     o.ID,
		Customer:    o.Customer,
		Status:      o.Status,
		Items:       o.Items,
		Total:       o.Total,
		Error:       o.Error,
		FinalizedAt: p.now(),
	})
	if err != nil {
		return kafkago.Message{}, err
	}

	carrier := propagation.MapCarrier{}
	p.propagator.Inject(ctx, carrier)
	headers := make([]kafkago.Header, 0, len(carrier))
	for _, k := range carrier.Keys() {
		headers = append(headers, kafkago.Header{Key: k, Value: []byte(carrier.Get(k))})
	}

	return kafkago.Message{Key: []byte(o.ID), Value: payload, Headers: headers}, nil
}
