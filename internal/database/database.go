package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/johnwards/retail/internal/config"
	"github.com/johnwards/retail/internal/errs"
	"github.com/johnwards/retail/internal/logger"
)

// PingTimeout bounds the startup connectivity check.
const PingTimeout = 10 * time.Second

// DB is the single store handle shared by every phase of a run.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Open connects to the store described by cfg. Any failure is a connection
// error and the returned handle is nil.
func Open(ctx context.Context, cfg config.Database, log zerolog.Logger) (*DB, error) {
	dialect, err := ParseDialect(cfg.Driver)
	if err != nil {
		return nil, errs.Connection(err)
	}

	var db *DB
	switch dialect {
	case Postgres:
		db, err = openPostgres(cfg, log)
	default:
		db, err = OpenSQLite(cfg.Path)
	}
	if err != nil {
		return nil, errs.Connection(err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, errs.Connection(fmt.Errorf("ping database: %w", err))
	}

	log.Info().Str("driver", string(dialect)).Msg("connected to the database")
	return db, nil
}

// OpenSQLite opens a SQLite database at the given DSN with foreign keys
// enforced, WAL mode and a busy timeout of 5s.
func OpenSQLite(dsn string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Single connection: an in-memory database lives and dies with it.
	sqlDB.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := sqlDB.Exec(p); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("exec %q: %w", p, err)
		}
	}

	return &DB{DB: sqlDB, Dialect: SQLite}, nil
}

func openPostgres(cfg config.Database, log zerolog.Logger) (*DB, error) {
	connConfig, err := pgx.ParseConfig(PostgresDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse pgx config: %w", err)
	}

	connConfig.Tracer = &tracelog.TraceLog{
		Logger:   pgxzero.NewLogger(logger.NewPgxLogger(log)),
		LogLevel: logger.GetPgxTraceLogLevel(log.GetLevel()),
	}

	sqlDB := stdlib.OpenDB(*connConfig)
	sqlDB.SetMaxOpenConns(1)

	return &DB{DB: sqlDB, Dialect: Postgres}, nil
}

// PostgresDSN builds a postgres:// URL, escaping the password.
func PostgresDSN(cfg config.Database) string {
	hostPort := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		url.QueryEscape(cfg.User),
		url.QueryEscape(cfg.Password),
		hostPort,
		cfg.Name,
		sslMode,
	)
}
