// Package inventory owns the flower stock and the append-only log of every
// attempted stock mutation.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	otelapi "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"flowershop/pkg/flower"
	"flowershop/pkg/logger"
	"flowershop/pkg/shop"
)

// TxType is the kind of stock mutation.
type TxType string

const (
	TxAdd    TxType = "add"
	TxRemove TxType = "remove"
)

// TxStatus is the outcome of a stock mutation.
type TxStatus string

const (
	StatusPending   TxStatus = "pending"
	StatusCompleted TxStatus = "completed"
	StatusFailed    TxStatus = "failed"
)

// Transaction is one entry of the transaction log.
type Transaction struct {
	ID       uuid.UUID `json:"id"`
	Type     TxType    `json:"type"`
	Flower   string    `json:"flower"`
	Quantity int       `json:"quantity"`
	Status   TxStatus  `json:"status"`
	Error    string    `json:"error,omitempty"`
	At       time.Time `json:"at"`
}

// Journal receives every finalized transaction.
type Journal interface {
	Record(ctx context.Context, tx Transaction) error
}

// Store holds the flower records and the transaction log. Each call is
// serialized; Exclusive serializes multi-call sequences such as order
// processing.
type Store struct {
	mu        sync.Mutex
	exclusive sync.Mutex

	flowers map[string]*flower.Flower
	names   []string
	txs     []Transaction

	journal Journal
	logger  *logger.Logger
	tracer  trace.Tracer
	now     func() time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithTracer sets the tracer used for mutation spans.
func WithTracer(t trace.Tracer) Option {
	return func(s *Store) { s.tracer = t }
}

// WithJournal forwards finalized transactions to j.
func WithJournal(j Journal) Option {
	return func(s *Store) { s.journal = j }
}

// WithClock sets the time source used for freshness checks and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		flowers: make(map[string]*flower.Flower),
		logger:  logger.NewNop(),
		tracer:  otelapi.Tracer("flowershop/inventory"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddFlower stores a new record, or adds f.Quantity to the record already
// stored under f.Name.
func (s *Store) AddFlower(ctx context.Context, f flower.Flower) (_ flower.Flower, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, span := s.startSpan(ctx, "inventory.add_flower", f.Name, f.Quantity)
	defer span.End()
	idx := s.begin(TxAdd, f.Name, f.Quantity)
	defer s.finish(ctx, span, idx, &err)

	if verr := f.Validate(); verr != nil {
		var dataErr *shop.InvalidFlowerDataError
		field := ""
		if errors.As(verr, &dataErr) {
			field = dataErr.Field
		}
		return flower.Flower{}, &shop.InvalidFlowerDataError{
			Code:   shop.CodeInvalidFlower,
			Field:  field,
			Reason: "Invalid flower object: " + verr.Error(),
		}
	}

	existing, ok := s.flowers[f.Name]
	if !ok {
		rec := f
		s.flowers[f.Name] = &rec
		s.names = append(s.names, f.Name)
		return rec, nil
	}
	if f.Quantity <= 0 {
		return flower.Flower{}, &shop.InvalidOrderError{Reason: "restock quantity must be positive"}
	}
	existing.Quantity += f.Quantity
	return *existing, nil
}

// Restock adds quantity to an existing record.
func (s *Store) Restock(ctx context.Context, name string, quantity int) (_ flower.Flower, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, span := s.startSpan(ctx, "inventory.restock", name, quantity)
	defer span.End()
	idx := s.begin(TxAdd, name, quantity)
	defer s.finish(ctx, span, idx, &err)

	if quantity <= 0 {
		return flower.Flower{}, &shop.InvalidOrderError{Reason: "restock quantity must be positive"}
	}
	rec, ok := s.flowers[name]
	if !ok {
		return flower.Flower{}, &shop.NotFoundError{Flower: name}
	}
	rec.Quantity += quantity
	return *rec, nil
}

// RemoveStock deducts quantity from a fresh record with enough stock.
func (s *Store) RemoveStock(ctx context.Context, name string, quantity int) (_ flower.Flower, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, span := s.startSpan(ctx, "inventory.remove_stock", name, quantity)
	defer span.End()
	idx := s.begin(TxRemove, name, quantity)
	defer s.finish(ctx, span, idx, &err)

	if strings.TrimSpace(name) == "" {
		return flower.Flower{}, &shop.InvalidOrderError{Reason: "flower name cannot be empty"}
	}
	if quantity <= 0 {
		return flower.Flower{}, &shop.InvalidOrderError{Reason: "quantity must be positive"}
	}
	rec, ok := s.flowers[name]
	if !ok {
		return flower.Flower{}, &shop.NotFoundError{Flower: name}
	}
	if !rec.IsFreshAt(s.now()) {
		return flower.Flower{}, &shop.ExpiredFlowerError{Flower: name, ExpiresAt: rec.ExpiresAt}
	}
	if quantity > rec.Quantity {
		return flower.Flower{}, &shop.OutOfStockError{Flower: name, Requested: quantity, Available: rec.Quantity}
	}
	rec.Quantity -= quantity
	return *rec, nil
}

// CheckStock returns the quantity on hand.
func (s *Store) CheckStock(name string) (int, error) {
	f, err := s.Flower(name)
	if err != nil {
		return 0, err
	}
	return f.Quantity, nil
}

// Flower returns a copy of the named record.
func (s *Store) Flower(name string) (flower.Flower, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.flowers[name]
	if !ok {
		return flower.Flower{}, &shop.NotFoundError{Flower: name}
	}
	return *rec, nil
}

// Flowers returns copies of all records in the order they were first stocked.
func (s *Store) Flowers() []flower.Flower {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]flower.Flower, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, *s.flowers[name])
	}
	return out
}

// Transactions returns a copy of the transaction log.
func (s *Store) Transactions() []Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.txs)
}

// Exclusive runs fn while holding the store's sequence lock. fn may call
// any other Store method.
func (s *Store) Exclusive(fn func() error) error {
	s.exclusive.Lock()
	defer s.exclusive.Unlock()
	return fn()
}

func (s *Store) startSpan(ctx context.Context, name, flowerName string, quantity int) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("flower.name", flowerName),
		attribute.Int("flower.quantity", quantity),
	))
}

// begin appends a pending entry and returns its index. Caller holds mu.
func (s *Store) begin(typ TxType, name string, quantity int) int {
	s.txs = append(s.txs, Transaction{
		ID:       uuid.New(),
		Type:     typ,
		Flower:   name,
		Quantity: quantity,
		Status:   StatusPending,
		At:       s.now(),
	})
	return len(s.txs) - 1
}

// finish finalizes the entry at idx. It must be deferred directly so that
// a panic in the mutation still finalizes the entry before propagating.
func (s *Store) finish(ctx context.Context, span trace.Span, idx int, errp *error) {
	tx := &s.txs[idx]
	r := recover()
	switch {
	case r != nil:
		tx.Status = StatusFailed
		tx.Error = fmt.Sprintf("panic: %v", r)
	case *errp != nil:
		tx.Status = StatusFailed
		tx.Error = (*errp).Error()
	default:
		tx.Status = StatusCompleted
	}

	span.SetAttributes(attribute.String("inventory.status", string(tx.Status)))
	if tx.Status == StatusFailed {
		span.SetStatus(codes.Error, tx.Error)
		s.logger.Warn(ctx, "inventory transaction failed",
			"tx_id", tx.ID.String(), "type", tx.Type, "flower", tx.Flower, "quantity", tx.Quantity, "error", tx.Error)
	} else {
		span.SetStatus(codes.Ok, "")
		s.logger.Info(ctx, "inventory transaction completed",
			"tx_id", tx.ID.String(), "type", tx.Type, "flower", tx.Flower, "quantity", tx.Quantity)
	}

	if s.journal != nil {
		if err := s.journal.Record(ctx, *tx); err != nil {
			s.logger.Error(ctx, "journal record", "tx_id", tx.ID.String(), "error", err)
		}
	}

	if r != nil {
		panic(r)
	}
}
