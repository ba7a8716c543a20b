package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowershop/pkg/cli"
	"flowershop/pkg/report"
)

const catalog = `
catalog:
  - name: Rose
    price: 4.99
    quantity: 10
  - name: Lily
    price: 5.99
    quantity: 2
`

func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flowershop.yaml")
	require.NoError(t, os.WriteFile(path, []byte(catalog), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestDemoCommand(t *testing.T) {
	out, err := run(t, "demo")
	require.NoError(t, err)

	for _, want := range []string{
		"[F003] Invalid flower name format: 'Rose@'",
		"[I001] Insufficient stock for Rose. Requested: 100, Available: 50.",
		"Order for John Smith: 5 Rose, 3 Tulip. Total: $35.42 (processed)",
		"Order for Jane Doe: 3 Rose, 25 Lily. Total: $14.97 (failed)",
		"Insufficient stock for Lily. Requested: 25, Available: 20.",
		"Rose stock 45 before, 45 after",
		"Lily stock 20 before, 20 after",
		"Daily Report",
	} {
		assert.Contains(t, out, want)
	}
}

func TestReportCommand_JSON(t *testing.T) {
	out, err := run(t, "report", "--config", writeCatalog(t), "--json")
	require.NoError(t, err)

	var d report.Daily
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, 2, d.Inventory.Count)
	assert.Equal(t, 5, d.Threshold)
	assert.Equal(t, 2, d.Transactions.Completed)
	assert.Equal(t, 12, d.Transactions.Restocked)
	require.Len(t, d.LowStock, 1)
	assert.Equal(t, "Lily", d.LowStock[0].Flower)
}

func TestReportCommand_Threshold(t *testing.T) {
	out, err := run(t, "report", "--config", writeCatalog(t), "--json", "--threshold", "20")
	require.NoError(t, err)

	var d report.Daily
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, 20, d.Threshold)
	assert.Len(t, d.LowStock, 2)

	_, err = run(t, "report", "--threshold", "0")
	assert.ErrorContains(t, err, "--threshold must be positive")
}

func TestReportCommand_DefaultTUI(t *testing.T) {
	out, err := run(t, "report", "--config", writeCatalog(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Daily Report")
	assert.Contains(t, out, "2 flower types")
	assert.Contains(t, out, "2 completed")
	assert.Contains(t, out, "Lily")
}

func TestReportCommand_EmptyCatalog(t *testing.T) {
	out, err := run(t, "report")
	require.NoError(t, err)
	assert.Contains(t, out, "inventory is empty")
}

func TestReportCommand_BadConfig(t *testing.T) {
	_, err := run(t, "report", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
