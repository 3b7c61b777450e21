package output_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnwards/retail/internal/domain"
	"github.com/johnwards/retail/internal/output"
	"github.com/johnwards/retail/internal/report"
)

func customersResult() report.Result {
	return report.Result{
		Key:     report.KeyCustomers,
		Name:    "List all customers",
		Columns: []string{"customer_id", "first_name", "last_name", "email", "date_of_birth"},
		Rows: []report.Row{
			{int64(1), "John", "Doe", "john.doe@example.com", domain.Day(1985, time.January, 15)},
			{int64(2), "Jane", "Smith", "jane.smith@example.com", domain.Day(1990, time.June, 20)},
		},
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range []string{"text", "table", "json"} {
		got, err := output.ParseFormat(f)
		require.NoError(t, err)
		assert.Equal(t, output.Format(f), got)
	}
	_, err := output.ParseFormat("csv")
	assert.Error(t, err)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "42", output.FormatValue(int64(42)))
	assert.Equal(t, "Laptop", output.FormatValue("Laptop"))
	assert.Equal(t, "2023-01-10", output.FormatValue(domain.Day(2023, time.January, 10)))
	assert.Equal(t, "1200.00", output.FormatValue(decimal.NewFromInt(1200)))
	assert.Equal(t, "NULL", output.FormatValue(nil))
}

func TestPrintText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.NewPrinter(&buf, output.FormatText).Print(customersResult()))

	want := "\nList all customers:\n" +
		"(1, John, Doe, john.doe@example.com, 1985-01-15)\n" +
		"(2, Jane, Smith, jane.smith@example.com, 1990-06-20)\n"
	assert.Equal(t, want, buf.String())
}

func TestPrintTextWithError(t *testing.T) {
	var buf bytes.Buffer
	res := report.Result{Name: "Broken report", Err: errors.New("no such table")}
	require.NoError(t, output.NewPrinter(&buf, output.FormatText).Print(res))

	assert.Equal(t, "\nBroken report:\nerror: no such table\n", buf.String())
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.NewPrinter(&buf, output.FormatTable).Print(customersResult()))

	out := buf.String()
	assert.Contains(t, out, "List all customers")
	assert.Contains(t, out, "first_name")
	assert.Contains(t, out, "jane.smith@example.com")
	assert.Contains(t, out, "1990-06-20")
	assert.Contains(t, out, "2 row(s)")
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	res := report.Result{
		Key:     report.KeyCustomerTotals,
		Name:    "Total spent per customer",
		Columns: []string{"customer_id", "total_spent"},
		Rows:    []report.Row{{int64(1), decimal.NewFromInt(1200)}},
	}
	require.NoError(t, output.NewPrinter(&buf, output.FormatJSON).Print(res))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "customer-totals", got["key"])
	assert.NotContains(t, got, "error")

	rows, ok := got["rows"].([]any)
	require.True(t, ok)
	require.Len(t, rows, 1)
	row := rows[0].(map[string]any)
	assert.Equal(t, float64(1), row["customer_id"])
	assert.Equal(t, "1200.00", row["total_spent"])
}

func TestTuple(t *testing.T) {
	assert.Equal(t, "(Headphones, 3)", output.Tuple(report.Row{"Headphones", int64(3)}))
	assert.Equal(t, "()", output.Tuple(nil))
}
