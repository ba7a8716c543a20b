package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"flowershop/pkg/flower"
	"flowershop/pkg/inventory"
	"flowershop/pkg/logger"
	"flowershop/pkg/order"
	"flowershop/pkg/report"
	"flowershop/pkg/shop"
)

func newDemoCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Walk through stocking, a failed removal and two orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.NewNop()
			if verbose {
				log = logger.New(cmd.ErrOrStderr(), logger.LevelDebug, "flowershop", nil)
			}
			return runDemo(cmd.Context(), cmd.OutOrStdout(), log, time.Now)
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "write structured logs to stderr")
	return cmd
}

func runDemo(ctx context.Context, w io.Writer, log *logger.Logger, now func() time.Time) error {
	if ctx == nil {
		ctx = context.Background()
	}
	store := inventory.New(inventory.WithLogger(log), inventory.WithClock(now))

	fmt.Fprintln(w, titleStyle.Render("Flower Shop Inventory"))

	step(w, 1, "Adding flowers to inventory")
	for _, s := range []struct {
		name  string
		price float64
		qty   int
		days  int
	}{
		{"Rose", 4.99, 50, 5},
		{"Tulip", 3.49, 30, 7},
		{"Lily", 5.99, 20, 4},
	} {
		f, err := flower.New(s.name, s.price, s.qty, flower.WithFreshnessDays(s.days), flower.WithClock(now))
		if err != nil {
			return err
		}
		if _, err := store.AddFlower(ctx, f); err != nil {
			return err
		}
		fmt.Fprintf(w, "   %s\n", f)
	}

	step(w, 2, "Rejecting invalid flower data")
	if _, err := flower.New("Rose@", -5.99, 10); err != nil {
		caught(w, err)
	}

	step(w, 3, "Removing more stock than available")
	if _, err := store.RemoveStock(ctx, "Rose", 100); err != nil {
		caught(w, err)
	}

	step(w, 4, "Processing a valid order")
	if _, err := placeOrder(ctx, w, store, log, "John Smith", []order.Item{{Flower: "Rose", Quantity: 5}, {Flower: "Tulip", Quantity: 3}}); err != nil {
		return err
	}

	step(w, 5, "Processing an order that cannot be filled")
	before := store.Flowers()
	_, err := placeOrder(ctx, w, store, log, "Jane Doe", []order.Item{{Flower: "Rose", Quantity: 3}, {Flower: "Lily", Quantity: 25}})
	var invalid *shop.InvalidOrderError
	if !errors.As(err, &invalid) {
		return fmt.Errorf("expected the order to fail, got %v", err)
	}
	caught(w, err)
	for i, f := range store.Flowers() {
		fmt.Fprintf(w, "   %s stock %d before, %d after\n", f.Name, before[i].Quantity, f.Quantity)
	}

	step(w, 6, "Daily report")
	fmt.Fprint(w, renderReport(report.Generator{Now: now, Logger: log}.Generate(store)))

	fmt.Fprintf(w, "\n%s\n", dimStyle.Render(fmt.Sprintf("Session ended at %s", now().Format(time.DateTime))))
	return nil
}

func placeOrder(ctx context.Context, w io.Writer, store *inventory.Store, log *logger.Logger, customer string, items []order.Item) (*order.Order, error) {
	o, err := order.New(customer, store, order.WithLogger(log))
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if err := o.AddItem(ctx, it.Flower, it.Quantity); err != nil {
			return o, err
		}
	}
	err = o.Process(ctx)
	fmt.Fprintf(w, "   %s\n", o)
	return o, err
}

func step(w io.Writer, n int, title string) {
	fmt.Fprintf(w, "\n%s\n", headerStyle.Render(fmt.Sprintf("%d. %s", n, title)))
}

func caught(w io.Writer, err error) {
	fmt.Fprintf(w, "   %s %s\n", failStyle.Render("caught:"), err)
}
