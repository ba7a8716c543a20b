package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
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

// Status is the lifecycle state of an order.
type Status string

const (
	StatusNew       Status = "new"
	StatusProcessed Status = "processed"
	StatusFailed    Status = "failed"
)

// Item is one order line. UnitPrice is set when the stock is deducted.
type Item struct {
	Flower    string  `json:"flower"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price,omitempty"`
}

// Inventory is the stock an order draws from.
type Inventory interface {
	Flower(name string) (flower.Flower, error)
	RemoveStock(ctx context.Context, name string, quantity int) (flower.Flower, error)
	Restock(ctx context.Context, name string, quantity int) (flower.Flower, error)
	Exclusive(fn func() error) error
}

// Order represents a customer order for flowers.
type Order struct {
	ID        string    `json:"id"`
	Customer  string    `json:"customer"`
	Items     []Item    `json:"items"`
	Status    Status    `json:"status"`
	Total     float64   `json:"total"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	inv    Inventory
	log    *logger.Logger
	tracer trace.Tracer
}

// Option customizes an Order.
type Option func(*Order)

// WithLogger sets the order logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *Order) { o.log = l }
}

// WithTracer sets the tracer used for processing spans.
func WithTracer(t trace.Tracer) Option {
	return func(o *Order) { o.tracer = t }
}

// WithID overrides the generated order ID.
func WithID(id string) Option {
	return func(o *Order) { o.ID = id }
}

// New creates an empty order drawing from inv. The order does not own inv.
func New(customer string, inv Inventory, opts ...Option) (*Order, error) {
	if strings.TrimSpace(customer) == "" {
		return nil, &shop.InvalidOrderError{Reason: "Customer name cannot be empty"}
	}
	if inv == nil {
		return nil, &shop.InvalidOrderError{Reason: "order requires an inventory"}
	}
	o := &Order{
		ID:        uuid.NewString(),
		Customer:  customer,
		Status:    StatusNew,
		CreatedAt: time.Now(),
		inv:       inv,
		log:       logger.NewNop(),
		tracer:    otelapi.Tracer("flowershop/order"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// AddItem appends quantity of the named flower, merging with an existing
// line for the same flower. Stock is checked only when the order is processed.
func (o *Order) AddItem(ctx context.Context, name string, quantity int) (err error) {
	defer func() {
		if err != nil {
			o.log.Warn(ctx, "order item rejected", "order_id", o.ID, "flower", name, "quantity", quantity, "error", err)
			return
		}
		o.log.Info(ctx, "order item added", "order_id", o.ID, "flower", name, "quantity", quantity)
	}()

	if o.Status != StatusNew {
		return &shop.InvalidOrderError{Reason: "Cannot modify a processed order"}
	}
	if strings.TrimSpace(name) == "" {
		return &shop.InvalidOrderError{Reason: "Flower name cannot be empty"}
	}
	if quantity <= 0 {
		return &shop.InvalidOrderError{Reason: "Quantity must be positive"}
	}
	if o.inv == nil {
		return &shop.InvalidOrderError{Reason: "order requires an inventory"}
	}
	if _, err := o.inv.Flower(name); err != nil {
		if errors.Is(err, shop.ErrFlowerNotFound) {
			return &shop.InvalidOrderError{Reason: "Unknown flower: " + name, Err: err}
		}
		return err
	}

	for i := range o.Items {
		if o.Items[i].Flower == name {
			o.Items[i].Quantity += quantity
			return nil
		}
	}
	o.Items = append(o.Items, Item{Flower: name, Quantity: quantity})
	return nil
}

type applied struct {
	flower   string
	quantity int
}

// Process deducts every item from the inventory in order. If any deduction
// fails, the deductions already applied are restored and the order is
// marked failed.
func (o *Order) Process(ctx context.Context) error {
	if o.Status != StatusNew {
		return &shop.InvalidOrderError{Reason: "Order has already been processed"}
	}
	if len(o.Items) == 0 {
		return &shop.InvalidOrderError{Reason: "Cannot process an empty order"}
	}
	if o.inv == nil {
		return &shop.InvalidOrderError{Reason: "order requires an inventory"}
	}

	ctx, span := o.tracer.Start(ctx, "order.process", trace.WithAttributes(
		attribute.String("order.id", o.ID),
		attribute.String("order.customer", o.Customer),
		attribute.Int("order.items", len(o.Items)),
	))
	defer span.End()

	return o.inv.Exclusive(func() error {
		return o.deduct(ctx, span)
	})
}

func (o *Order) deduct(ctx context.Context, span trace.Span) (err error) {
	var (
		done      []applied
		cause     error
		completed bool
	)

	defer func() {
		r := recover()
		if completed && r == nil {
			o.Status = StatusProcessed
			span.SetStatus(codes.Ok, "")
			o.log.Info(ctx, "order processed", "order_id", o.ID, "customer", o.Customer, "total", o.Total)
			return
		}

		o.Status = StatusFailed
		switch {
		case r != nil:
			o.Error = fmt.Sprintf("panic: %v", r)
		case cause != nil:
			o.Error = cause.Error()
		}
		span.SetStatus(codes.Error, o.Error)
		o.log.Warn(ctx, "order failed, rolling back", "order_id", o.ID, "applied", len(done), "error", o.Error)

		if rbErr := o.rollback(ctx, done); rbErr != nil {
			o.Error = errors.Join(errors.New(o.Error), rbErr).Error()
			span.RecordError(rbErr)
			err = errors.Join(err, rbErr)
		}
		if r != nil {
			panic(r)
		}
	}()

	for i := range o.Items {
		item := &o.Items[i]
		f, rerr := o.inv.RemoveStock(ctx, item.Flower, item.Quantity)
		if rerr != nil {
			cause = rerr
			return classify(rerr)
		}
		done = append(done, applied{flower: item.Flower, quantity: item.Quantity})
		item.UnitPrice = f.Price
		o.Total += f.Price * float64(item.Quantity)
	}
	completed = true
	return nil
}

// classify wraps the stock failures an order expects; anything else is
// returned unchanged.
func classify(err error) error {
	var (
		stockErr   *shop.OutOfStockError
		expiredErr *shop.ExpiredFlowerError
		orderErr   *shop.InvalidOrderError
	)
	if errors.As(err, &stockErr) || errors.As(err, &expiredErr) ||
		errors.Is(err, shop.ErrFlowerNotFound) || errors.As(err, &orderErr) {
		return &shop.InvalidOrderError{Reason: "Order processing failed: " + err.Error(), Err: err}
	}
	return err
}

// rollback restores done in reverse order. Every restoration is attempted;
// the ones that fail are reported together.
func (o *Order) rollback(ctx context.Context, done []applied) error {
	var failed []shop.RollbackFailure
	for i := len(done) - 1; i >= 0; i-- {
		a := done[i]
		if err := o.restore(ctx, a); err != nil {
			failed = append(failed, shop.RollbackFailure{Flower: a.flower, Quantity: a.quantity, Err: err})
		}
	}
	if len(failed) == 0 {
		o.log.Info(ctx, "inventory rollback successful", "order_id", o.ID, "restored", len(done))
		return nil
	}
	rbErr := &shop.RollbackError{Failed: failed}
	o.log.Error(ctx, "inventory inconsistent after rollback",
		"order_id", o.ID, "restored", len(done)-len(failed), "unrestored", len(failed), "error", rbErr)
	return rbErr
}

// restore isolates a single restoration so that a panicking inventory does
// not stop the remaining ones.
func (o *Order) restore(ctx context.Context, a applied) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("restock panicked: %v", r)
		}
	}()
	_, err = o.inv.Restock(ctx, a.flower, a.quantity)
	return err
}

func (o *Order) String() string {
	items := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, fmt.Sprintf("%d %s", it.Quantity, it.Flower))
	}
	return fmt.Sprintf("Order for %s: %s. Total: $%.2f (%s)", o.Customer, strings.Join(items, ", "), o.Total, o.Status)
}

// Repository defines behavior for persisting finalized orders.
type Repository interface {
	Create(ctx context.Context, o Order) error
	Get(ctx context.Context, id string) (Order, error)
	List(ctx context.Context) ([]Order, error)
	Delete(ctx context.Context, id string) error
}

// Notifier is told about every finalized order.
type Notifier interface {
	OrderFinalized(ctx context.Context, o Order) error
}

// ErrNotFound indicates the requested order does not exist.
var ErrNotFound = errors.New("order not found")
