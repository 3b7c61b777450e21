// Package output renders report results for the terminal.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"

	"github.com/johnwards/retail/internal/report"
)

// Format selects how results are written.
type Format string

const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatTable, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, table or json)", s)
	}
}

var (
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
	colorPrimary = lipgloss.Color("#7C3AED")

	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	primaryStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

// Printer writes results to w in a fixed format.
type Printer struct {
	w      io.Writer
	format Format
}

// NewPrinter creates a Printer.
func NewPrinter(w io.Writer, format Format) *Printer {
	return &Printer{w: w, format: format}
}

// Print writes one report result.
func (p *Printer) Print(res report.Result) error {
	switch p.format {
	case FormatJSON:
		return p.printJSON(res)
	case FormatTable:
		return p.printTable(res)
	default:
		return p.printText(res)
	}
}

func (p *Printer) printText(res report.Result) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s:\n", res.Name)
	if res.Err != nil {
		fmt.Fprintf(&b, "error: %v\n", res.Err)
	}
	for _, row := range res.Rows {
		b.WriteString(Tuple(row))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(p.w, b.String())
	return err
}

func (p *Printer) printTable(res report.Result) error {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(primaryStyle.Render(res.Name))
	b.WriteString("\n")

	if res.Err != nil {
		b.WriteString(errorStyle.Render("✗ " + res.Err.Error()))
		b.WriteString("\n")
		_, err := io.WriteString(p.w, b.String())
		return err
	}

	rows := make([][]string, len(res.Rows))
	for i, row := range res.Rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = FormatValue(v)
		}
		rows[i] = cells
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(res.Columns...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	b.WriteString(t.String())
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d row(s)", len(res.Rows))))
	b.WriteString("\n")

	_, err := io.WriteString(p.w, b.String())
	return err
}

type jsonResult struct {
	Key     string           `json:"key"`
	Name    string           `json:"name"`
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
	Error   string           `json:"error,omitempty"`
}

// printJSON writes one JSON object per line.
func (p *Printer) printJSON(res report.Result) error {
	out := jsonResult{
		Key:     res.Key,
		Name:    res.Name,
		Columns: res.Columns,
		Rows:    make([]map[string]any, 0, len(res.Rows)),
	}
	if res.Err != nil {
		out.Error = res.Err.Error()
	}
	for _, row := range res.Rows {
		m := make(map[string]any, len(row))
		for i, v := range row {
			if i < len(res.Columns) {
				m[res.Columns[i]] = jsonValue(v)
			}
		}
		out.Rows = append(out.Rows, m)
	}

	return json.NewEncoder(p.w).Encode(out)
}

func jsonValue(v any) any {
	switch x := v.(type) {
	case time.Time, decimal.Decimal:
		return FormatValue(x)
	default:
		return v
	}
}

// Tuple renders a row as (v1, v2, ...).
func Tuple(row report.Row) string {
	parts := make([]string, len(row))
	for i, v := range row {
		parts[i] = FormatValue(v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// FormatValue renders a single result value. Dates print as YYYY-MM-DD and
// decimals with two places.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case int64:
		return strconv.FormatInt(x, 10)
	case string:
		return x
	case time.Time:
		return x.Format(time.DateOnly)
	case decimal.Decimal:
		return x.StringFixed(2)
	default:
		return fmt.Sprint(x)
	}
}

// Section renders a styled heading line.
func Section(title string) string {
	return primaryStyle.Render(title)
}
