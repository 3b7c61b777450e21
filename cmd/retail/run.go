package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/johnwards/retail/internal/config"
	"github.com/johnwards/retail/internal/database"
	"github.com/johnwards/retail/internal/errs"
	"github.com/johnwards/retail/internal/output"
	"github.com/johnwards/retail/internal/report"
	"github.com/johnwards/retail/internal/seed"
	"github.com/johnwards/retail/internal/store"
)

// prepare opens the store, ensures the schema and reloads the seed data. The
// caller owns the returned handle.
func prepare(ctx context.Context, cfg config.Config, log zerolog.Logger) (*database.DB, error) {
	db, err := database.Open(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}

	if err := database.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Info().Msg("schema ready")

	if err := seed.ResetAndSeed(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Info().Msg("seed data loaded")

	return db, nil
}

func closeDB(db *database.DB, log zerolog.Logger) {
	if err := db.Close(); err != nil {
		log.Warn().Err(err).Msg("close database")
		return
	}
	log.Debug().Msg("database closed")
}

// run performs one full cycle: schema, reset, seed, then every report.
func run(ctx context.Context, cfg config.Config, log zerolog.Logger, printer *output.Printer) error {
	threshold, err := cfg.Report.ThresholdDecimal()
	if err != nil {
		return err
	}

	db, err := prepare(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeDB(db, log)

	params := report.Params{OrderID: cfg.Report.OrderID, Threshold: threshold}
	runner := report.NewRunner(db, report.Catalog(params), log)
	runner.ContinueOnError = cfg.Report.ContinueOnError

	if err := runner.Run(ctx, printer.Print); err != nil {
		return err
	}

	log.Info().Int("reports", len(runner.Reports())).Msg("all reports complete")
	return nil
}

// verify reseeds the store and checks it holds exactly the fixed dataset
// with every reference resolved.
func verify(ctx context.Context, cfg config.Config, log zerolog.Logger, out io.Writer) error {
	db, err := prepare(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeDB(db, log)

	s := store.New(db)
	counts, err := s.Counts(ctx)
	if err != nil {
		return err
	}

	dangling, err := s.DanglingReferences(ctx)
	if err != nil {
		return err
	}

	want := seed.Fixed().Counts()
	var b strings.Builder
	b.WriteString(output.Section("Row counts"))
	b.WriteByte('\n')
	var mismatched []string
	for _, table := range database.Tables() {
		status := "ok"
		if counts[table] != want[table] {
			status = fmt.Sprintf("want %d", want[table])
			mismatched = append(mismatched, table)
		}
		fmt.Fprintf(&b, "%-12s %3d  %s\n", table, counts[table], status)
	}

	b.WriteString(output.Section("Referential integrity"))
	b.WriteByte('\n')
	if len(dangling) == 0 {
		b.WriteString("ok\n")
	}
	for _, d := range dangling {
		b.WriteString(d.String())
		b.WriteByte('\n')
	}

	if _, err := io.WriteString(out, b.String()); err != nil {
		return err
	}

	if len(mismatched) > 0 || len(dangling) > 0 {
		return errs.SeedIntegrity(fmt.Errorf("%d table(s) with unexpected row counts, %d dangling reference(s)",
			len(mismatched), len(dangling)))
	}
	return nil
}
