// Package flower describes a stocked flower and its freshness window.
package flower

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"flowershop/pkg/shop"
)

// DefaultFreshness is the freshness window applied when none is given.
const DefaultFreshness = 7 * 24 * time.Hour

var namePattern = regexp.MustCompile(`^[a-zA-Z\s\-']+$`)

// Flower represents a stocked flower.
type Flower struct {
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	ExpiresAt time.Time `json:"expires_at"`
}

type options struct {
	freshness time.Duration
	now       func() time.Time
}

// Option customizes New.
type Option func(*options)

// WithFreshnessDays sets the freshness window in days.
func WithFreshnessDays(days int) Option {
	return func(o *options) { o.freshness = time.Duration(days) * 24 * time.Hour }
}

// WithFreshness sets the freshness window.
func WithFreshness(d time.Duration) Option {
	return func(o *options) { o.freshness = d }
}

// WithClock sets the time source used to compute the expiry.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New validates the attributes and returns a flower expiring one freshness
// window from now.
func New(name string, price float64, quantity int, opts ...Option) (Flower, error) {
	o := options{freshness: DefaultFreshness, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	f := Flower{Name: name, Price: price, Quantity: quantity}
	if err := f.Validate(); err != nil {
		return Flower{}, err
	}
	f.ExpiresAt = o.now().Add(o.freshness)
	return f, nil
}

// Validate checks name, price and quantity in that order.
func (f Flower) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return &shop.InvalidFlowerDataError{Code: shop.CodeEmptyName, Field: "name", Reason: "Flower name cannot be empty"}
	}
	if !namePattern.MatchString(f.Name) {
		return &shop.InvalidFlowerDataError{
			Code:   shop.CodeInvalidName,
			Field:  "name",
			Reason: fmt.Sprintf("Invalid flower name format: '%s'. Must contain only letters, spaces, hyphens, and apostrophes.", f.Name),
		}
	}
	if f.Price <= 0 {
		return &shop.InvalidFlowerDataError{Code: shop.CodeNonPositivePrice, Field: "price", Reason: "Price must be positive"}
	}
	if f.Quantity < 0 {
		return &shop.InvalidFlowerDataError{Code: shop.CodeNegativeQuantity, Field: "quantity", Reason: "Quantity cannot be negative"}
	}
	return nil
}

// IsFresh reports whether the flower is still sellable.
func (f Flower) IsFresh() bool {
	return f.IsFreshAt(time.Now())
}

// IsFreshAt reports whether the flower is sellable at t.
func (f Flower) IsFreshAt(t time.Time) bool {
	return t.Before(f.ExpiresAt)
}

func (f Flower) String() string {
	return fmt.Sprintf("%s: $%.2f, %d in stock, fresh until %s",
		f.Name, f.Price, f.Quantity, f.ExpiresAt.Format(time.DateOnly))
}
