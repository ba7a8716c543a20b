//go:build integration

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"flowershop/pkg/internal/pgtest"
	"flowershop/pkg/order"
)

func TestRepository(t *testing.T) {
	ctx := context.Background()
	repo := New(pgtest.Open(t, Schema))

	created := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	o := order.Order{
		ID:        "1",
		Customer:  "Jane",
		Items:     []order.Item{{Flower: "Rose", Quantity: 3, UnitPrice: 2}, {Flower: "Tulip", Quantity: 8}},
		Status:    order.StatusFailed,
		Total:     6,
		Error:     "[I001] Insufficient stock for Tulip. Requested: 8, Available: 5.",
		CreatedAt: created,
	}
	if err := repo.Create(ctx, o); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := repo.Get(ctx, "1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Customer != "Jane" || got.Status != order.StatusFailed || got.Total != 6 || got.Error != o.Error {
		t.Fatalf("unexpected order: %+v", got)
	}
	if len(got.Items) != 2 || got.Items[0] != o.Items[0] {
		t.Fatalf("unexpected items: %+v", got.Items)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("created_at = %v, want %v", got.CreatedAt, created)
	}

	if err := repo.Create(ctx, order.Order{ID: "2", Customer: "John", Items: []order.Item{}, Status: order.StatusProcessed, CreatedAt: created.Add(time.Minute)}); err != nil {
		t.Fatalf("create: %v", err)
	}
	list, err := repo.List(ctx)
	if err != nil || len(list) != 2 || list[0].ID != "1" {
		t.Fatalf("list: %v %+v", err, list)
	}

	if err := repo.Delete(ctx, "1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, "1"); !errors.Is(err, order.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, "1"); !errors.Is(err, order.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
