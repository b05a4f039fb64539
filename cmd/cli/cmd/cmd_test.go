package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parking-fee/core/fee"
	"parking-fee/internal/errors"
)

const testTables = `
price_table "standard" {
  name              = "Standard"
  initial_tolerance = "00:15"

  until {
    duration = "01:00"
    value    = 5
  }

  recurring {
    from  = "01:00"
    every = "00:30"
    value = 2
  }
}
`

func writeTables(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tables.hcl")
	require.NoError(t, os.WriteFile(path, []byte(testTables), 0644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { tablesPath = "" })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestQuoteCommandJSON(t *testing.T) {
	path := writeTables(t)
	entry := int64(1000000)
	exit := entry + (15+75)*60*1000

	out, err := run(t, "quote", "--tables", path, "--table", "standard",
		"--entry", strconv.FormatInt(entry, 10), "--exit", strconv.FormatInt(exit, 10), "--format", "json")
	require.NoError(t, err, out)

	var q fee.Quote
	require.NoError(t, json.Unmarshal([]byte(out), &q))
	assert.Equal(t, "standard", q.TableID)
	assert.Equal(t, 75, q.BillableMinutes)
	assert.True(t, decimal.NewFromInt(7).Equal(q.Amount), "got %s", q.Amount)
}

func TestQuoteCommandTable(t *testing.T) {
	path := writeTables(t)

	out, err := run(t, "quote", "--tables", path, "--table", "standard",
		"--entry", "2024-03-01T08:00:00Z", "--exit", "2024-03-01T08:10:00Z", "--format", "cli")
	require.NoError(t, err, out)
	assert.Contains(t, out, "PARKING FEE - Standard")
	assert.Contains(t, out, "within tolerance")
	assert.Contains(t, out, "0.00")
}

func TestQuoteCommandErrors(t *testing.T) {
	path := writeTables(t)

	_, err := run(t, "quote", "--tables", path, "--table", "valet",
		"--entry", "1000000", "--exit", "2000000", "--format", "json")
	assert.True(t, errors.IsType(err, errors.TypeNotFound), "got %v", err)

	_, err = run(t, "quote", "--tables", path, "--table", "standard",
		"--entry", "2000000", "--exit", "1000000", "--format", "json")
	assert.True(t, errors.IsType(err, errors.TypeInvalidTimeRange), "got %v", err)

	_, err = run(t, "quote", "--tables", path, "--table", "standard",
		"--entry", "noon", "--exit", "1000000", "--format", "json")
	assert.True(t, errors.IsType(err, errors.TypeInput), "got %v", err)
}

func TestTablesCommand(t *testing.T) {
	path := writeTables(t)

	out, err := run(t, "tables", "--tables", path)
	require.NoError(t, err, out)
	assert.Contains(t, out, "standard")
	assert.Contains(t, out, "5 up to 01:00")
	assert.Contains(t, out, "2 every 00:30 from 01:00")
}
