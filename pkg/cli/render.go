package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"flowershop/pkg/report"
)

var (
	accent  = lipgloss.Color("#DB2777") // rose
	fg      = lipgloss.Color("#E8E6E3")
	dim     = lipgloss.Color("#6B7280")
	success = lipgloss.Color("#22C55E")
	danger  = lipgloss.Color("#EF4444")
	warning = lipgloss.Color("#F59E0B")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2)

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(fg)
	dimStyle    = lipgloss.NewStyle().Foreground(dim)
	passStyle   = lipgloss.NewStyle().Foreground(success)
	failStyle   = lipgloss.NewStyle().Foreground(danger)
	warnStyle   = lipgloss.NewStyle().Foreground(warning)
)

func renderReport(d report.Daily) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Daily Report  " + d.Date))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "  %s  %s\n", headerStyle.Render("Inventory"), dimStyle.Render(fmt.Sprintf("%d flower types", d.Inventory.Count)))
	for _, l := range d.Inventory.Levels {
		qty := passStyle.Render(fmt.Sprintf("%5d", l.Quantity))
		if l.Quantity < d.Threshold {
			qty = warnStyle.Render(fmt.Sprintf("%5d", l.Quantity))
		}
		fresh := dimStyle.Render("fresh until " + l.ExpiresAt.Format("2006-01-02"))
		if !l.Fresh {
			fresh = failStyle.Render("expired " + l.ExpiresAt.Format("2006-01-02"))
		}
		fmt.Fprintf(&b, "    %-16s %s  $%6.2f  %s\n", l.Flower, qty, l.Price, fresh)
	}

	t := d.Transactions
	fmt.Fprintf(&b, "\n  %s\n", headerStyle.Render("Transactions"))
	fmt.Fprintf(&b, "    %s  %s  %s\n",
		passStyle.Render(fmt.Sprintf("%d completed", t.Completed)),
		failStyle.Render(fmt.Sprintf("%d failed", t.Failed)),
		dimStyle.Render(fmt.Sprintf("%d pending", t.Pending)))
	fmt.Fprintf(&b, "    %d sold, %d restocked\n", t.Sold, t.Restocked)

	fmt.Fprintf(&b, "\n  %s  %s\n", headerStyle.Render("Low stock"), dimStyle.Render(fmt.Sprintf("below %d", d.Threshold)))
	if len(d.LowStock) == 0 {
		fmt.Fprintf(&b, "    %s\n", passStyle.Render("none"))
	}
	for _, a := range d.LowStock {
		fmt.Fprintf(&b, "    %s %-16s %d left\n", warnStyle.Render("!"), a.Flower, a.Quantity)
	}

	for _, w := range d.Warnings {
		fmt.Fprintf(&b, "\n  %s %s\n", warnStyle.Render("warning:"), w)
	}
	return b.String()
}
