package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/johnwards/retail/internal/database"
	"github.com/johnwards/retail/internal/errs"
)

// Row is one result tuple. Values are int64, string, time.Time or
// decimal.Decimal according to the column kinds.
type Row []any

// Result is the outcome of one report. Err is set only when the runner is
// continuing past failures.
type Result struct {
	Key     string
	Name    string
	Columns []string
	Kinds   []Kind
	Rows    []Row
	Err     error
}

// Runner executes a report catalog against a store.
type Runner struct {
	db      *database.DB
	reports []Report
	log     zerolog.Logger

	// ContinueOnError keeps running later reports after a failure. The
	// failure is recorded on its Result and all failures are returned
	// joined once the catalog is done.
	ContinueOnError bool
}

// NewRunner creates a Runner for reports.
func NewRunner(db *database.DB, reports []Report, log zerolog.Logger) *Runner {
	return &Runner{db: db, reports: reports, log: log}
}

// Reports returns the catalog the runner executes.
func (r *Runner) Reports() []Report {
	return r.reports
}

// Run executes every report in catalog order and hands each result to emit
// as soon as it is complete. Without ContinueOnError the first failing report
// stops the run; results already emitted are unaffected.
func (r *Runner) Run(ctx context.Context, emit func(Result) error) error {
	var failed []error

	for _, rep := range r.reports {
		res, err := r.execute(ctx, rep)
		if err != nil {
			if !r.ContinueOnError {
				return err
			}
			r.log.Warn().Err(err).Str("report", rep.Name).Msg("report failed, continuing")
			res.Err = err
			failed = append(failed, err)
		}

		if err := emit(res); err != nil {
			return fmt.Errorf("emit %s: %w", rep.Key, err)
		}
	}

	return errors.Join(failed...)
}

// RunAll is Run collecting every result into a slice.
func (r *Runner) RunAll(ctx context.Context) ([]Result, error) {
	results := make([]Result, 0, len(r.reports))
	err := r.Run(ctx, func(res Result) error {
		results = append(results, res)
		return nil
	})
	return results, err
}

// RunOne executes the report with the given key.
func (r *Runner) RunOne(ctx context.Context, key string) (Result, error) {
	rep, ok := Lookup(r.reports, key)
	if !ok {
		return Result{}, fmt.Errorf("unknown report %q", key)
	}
	return r.execute(ctx, rep)
}

func (r *Runner) execute(ctx context.Context, rep Report) (Result, error) {
	q := rep.Query
	res := Result{
		Key:     rep.Key,
		Name:    rep.Name,
		Columns: q.ColumnNames(),
		Kinds:   make([]Kind, len(q.Columns)),
	}
	for i, c := range q.Columns {
		res.Kinds[i] = c.Kind
	}

	if err := q.Validate(); err != nil {
		return res, errs.Query(rep.Name, fmt.Errorf("invalid query: %w", err))
	}

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, q.SQL(r.db.Dialect), q.Args...)
	if err != nil {
		return res, errs.Query(rep.Name, err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return res, errs.Query(rep.Name, err)
	}
	if len(cols) != len(q.Columns) {
		return res, errs.Query(rep.Name, fmt.Errorf("got %d columns, want %d", len(cols), len(q.Columns)))
	}

	for rows.Next() {
		row, err := scanRow(rows, res.Kinds)
		if err != nil {
			return res, errs.Query(rep.Name, err)
		}
		res.Rows = append(res.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return res, errs.Query(rep.Name, err)
	}

	r.log.Debug().
		Str("report", rep.Key).
		Int("rows", len(res.Rows)).
		Dur("elapsed", time.Since(start)).
		Msg("report complete")

	return res, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRow(rows scanner, kinds []Kind) (Row, error) {
	dest := make([]any, len(kinds))
	for i, k := range kinds {
		switch k {
		case KindInt:
			dest[i] = new(int64)
		case KindText:
			dest[i] = new(string)
		case KindDate:
			dest[i] = new(database.Date)
		case KindDecimal:
			dest[i] = new(decimal.Decimal)
		default:
			return nil, fmt.Errorf("column %d: unknown kind %s", i, k)
		}
	}

	if err := rows.Scan(dest...); err != nil {
		return nil, fmt.Errorf("scan row: %w", err)
	}

	row := make(Row, len(dest))
	for i, d := range dest {
		switch v := d.(type) {
		case *int64:
			row[i] = *v
		case *string:
			row[i] = *v
		case *database.Date:
			row[i] = v.Time
		case *decimal.Decimal:
			row[i] = *v
		}
	}
	return row, nil
}
