//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"flowershop/pkg/flower"
	"flowershop/pkg/internal/pgtest"
	"flowershop/pkg/inventory"
)

func TestJournalRecordsStoreTransactions(t *testing.T) {
	ctx := context.Background()
	journal := New(pgtest.Open(t, Schema))

	tick := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	store := inventory.New(inventory.WithJournal(journal), inventory.WithClock(clock))

	rose, err := flower.New("Rose", 2, 10, flower.WithClock(clock))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.AddFlower(ctx, rose); err != nil {
		t.Fatal(err)
	}
	if _, err := store.RemoveStock(ctx, "Rose", 20); err == nil {
		t.Fatal("expected out of stock")
	}

	got, err := journal.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := store.Transactions()
	if len(got) != len(want) {
		t.Fatalf("journal has %d entries, store has %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID || got[i].Status != want[i].Status || got[i].Error != want[i].Error {
			t.Fatalf("entry %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
	if got[1].Status != inventory.StatusFailed {
		t.Fatalf("expected failed removal, got %s", got[1].Status)
	}
}
