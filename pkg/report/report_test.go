package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowershop/pkg/flower"
	"flowershop/pkg/inventory"
)

var day = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return day }

func seeded(t *testing.T) *inventory.Store {
	t.Helper()
	ctx := context.Background()
	store := inventory.New(inventory.WithClock(clock))
	for _, f := range []struct {
		name  string
		price float64
		qty   int
	}{{"Rose", 2.00, 10}, {"Tulip", 1.50, 5}, {"Lily", 3.00, 2}} {
		fl, err := flower.New(f.name, f.price, f.qty, flower.WithClock(clock))
		require.NoError(t, err)
		_, err = store.AddFlower(ctx, fl)
		require.NoError(t, err)
	}
	return store
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()
	store := seeded(t)
	_, err := store.RemoveStock(ctx, "Rose", 3)
	require.NoError(t, err)
	_, err = store.RemoveStock(ctx, "Tulip", 8)
	require.Error(t, err)
	_, err = store.Restock(ctx, "Lily", 1)
	require.NoError(t, err)

	d := Generator{Now: clock}.Generate(store)

	assert.Equal(t, "2026-10-17", d.Date)
	assert.Equal(t, DefaultThreshold, d.Threshold)
	assert.Equal(t, 3, d.Inventory.Count)
	require.Len(t, d.Inventory.Levels, 3)
	assert.Equal(t, StockLevel{Flower: "Rose", Quantity: 7, Price: 2.00, Fresh: true, ExpiresAt: day.Add(flower.DefaultFreshness)}, d.Inventory.Levels[0])

	assert.Equal(t, TransactionSummary{Total: 6, Completed: 5, Failed: 1, Sold: 3, Restocked: 18}, d.Transactions)
	assert.Equal(t, []LowStockAlert{{Flower: "Lily", Quantity: 3, Price: 3.00}}, d.LowStock)
	assert.Empty(t, d.Warnings)
}

func TestGenerateThreshold(t *testing.T) {
	d := Generator{Threshold: 6, Now: clock}.Generate(seeded(t))

	names := make([]string, 0, len(d.LowStock))
	for _, a := range d.LowStock {
		names = append(names, a.Flower)
	}
	assert.Equal(t, []string{"Tulip", "Lily"}, names)
}

func TestGenerateDoesNotMutate(t *testing.T) {
	store := seeded(t)
	before := store.Flowers()
	txs := store.Transactions()

	Generator{Now: clock}.Generate(store)

	assert.Equal(t, before, store.Flowers())
	assert.Equal(t, txs, store.Transactions())
}

func TestGenerateEmptyInventory(t *testing.T) {
	d := Generator{Now: clock}.Generate(inventory.New())

	assert.Zero(t, d.Inventory.Count)
	assert.Empty(t, d.LowStock)
	assert.Equal(t, []string{"inventory is empty"}, d.Warnings)
}

type faultyReader struct{}

func (faultyReader) Flowers() []flower.Flower { panic("storage offline") }

func (faultyReader) Transactions() []inventory.Transaction { return nil }

func TestGenerateReportsReadFaults(t *testing.T) {
	var d Daily
	require.NotPanics(t, func() { d = Generator{Now: clock}.Generate(faultyReader{}) })

	assert.Equal(t, "2026-10-17", d.Date)
	assert.Equal(t, []string{"report incomplete: storage offline"}, d.Warnings)

	d = Generator{Now: clock}.Generate(nil)
	assert.Equal(t, []string{"inventory is unavailable"}, d.Warnings)
}
