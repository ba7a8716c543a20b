// Package report summarizes inventory state and the transaction log.
package report

import (
	"context"
	"fmt"
	"time"

	"flowershop/pkg/flower"
	"flowershop/pkg/inventory"
	"flowershop/pkg/logger"
)

// DefaultThreshold is the quantity below which a flower is reported as low.
const DefaultThreshold = 5

// Reader is the read side of the inventory store.
type Reader interface {
	Flowers() []flower.Flower
	Transactions() []inventory.Transaction
}

// StockLevel is one flower's state at report time.
type StockLevel struct {
	Flower    string    `json:"flower"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	Fresh     bool      `json:"fresh"`
	ExpiresAt time.Time `json:"expires_at"`
}

// InventoryStats lists every flower in insertion order.
type InventoryStats struct {
	Count  int          `json:"count"`
	Levels []StockLevel `json:"levels"`
}

// TransactionSummary counts log entries by status. Sold and Restocked sum
// the quantities of completed removals and additions.
type TransactionSummary struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
	Pending   int `json:"pending"`
	Sold      int `json:"sold"`
	Restocked int `json:"restocked"`
}

// LowStockAlert flags a flower whose quantity is under the threshold.
type LowStockAlert struct {
	Flower   string  `json:"flower"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Daily is the daily report.
type Daily struct {
	Date         string             `json:"date"`
	Threshold    int                `json:"threshold"`
	Inventory    InventoryStats     `json:"inventory"`
	Transactions TransactionSummary `json:"transactions"`
	LowStock     []LowStockAlert    `json:"low_stock"`
	Warnings     []string           `json:"warnings,omitempty"`
}

// Generator builds daily reports. The zero value is usable.
type Generator struct {
	Threshold int
	Now       func() time.Time
	Logger    *logger.Logger
}

// Generate reads inv and summarizes it. Faults raised while reading are
// recorded as warnings on the returned report.
func (g Generator) Generate(inv Reader) (d Daily) {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	log := g.Logger
	if log == nil {
		log = logger.NewNop()
	}
	threshold := g.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	at := now()
	d = Daily{
		Date:      at.Format(time.DateOnly),
		Threshold: threshold,
		Inventory: InventoryStats{Levels: []StockLevel{}},
		LowStock:  []LowStockAlert{},
	}
	ctx := context.Background()
	defer func() {
		if r := recover(); r != nil {
			d.Warnings = append(d.Warnings, fmt.Sprintf("report incomplete: %v", r))
			log.Error(ctx, "report generation failed", "error", r)
		}
	}()

	if inv == nil {
		d.Warnings = append(d.Warnings, "inventory is unavailable")
		return d
	}

	flowers := inv.Flowers()
	if len(flowers) == 0 {
		d.Warnings = append(d.Warnings, "inventory is empty")
	}
	d.Inventory.Count = len(flowers)
	for _, f := range flowers {
		d.Inventory.Levels = append(d.Inventory.Levels, StockLevel{
			Flower:    f.Name,
			Quantity:  f.Quantity,
			Price:     f.Price,
			Fresh:     f.IsFreshAt(at),
			ExpiresAt: f.ExpiresAt,
		})
		if f.Quantity < threshold {
			d.LowStock = append(d.LowStock, LowStockAlert{Flower: f.Name, Quantity: f.Quantity, Price: f.Price})
		}
	}

	for _, tx := range inv.Transactions() {
		d.Transactions.Total++
		switch tx.Status {
		case inventory.StatusCompleted:
			d.Transactions.Completed++
			switch tx.Type {
			case inventory.TxRemove:
				d.Transactions.Sold += tx.Quantity
			case inventory.TxAdd:
				d.Transactions.Restocked += tx.Quantity
			}
		case inventory.StatusFailed:
			d.Transactions.Failed++
		default:
			d.Transactions.Pending++
		}
	}

	log.Info(ctx, "daily report generated",
		"date", d.Date,
		"flowers", d.Inventory.Count,
		"transactions", d.Transactions.Total,
		"low_stock", len(d.LowStock))
	return d
}
