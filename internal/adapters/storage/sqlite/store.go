// Package sqlite implements the entity store on SQLite through database/sql
// and github.com/mattn/go-sqlite3.
//
// Every store operation runs inside one transaction. Write transactions are
// opened with BEGIN IMMEDIATE (the _txlock=immediate DSN option) so the
// write lock is taken before the first read: a uniqueness or lifecycle check
// and the write that depends on it cannot interleave with another writer.
// UNIQUE and FOREIGN KEY constraints back the application-level checks.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/jsamuelsen11/task-planner/internal/domain"
	"github.com/jsamuelsen11/task-planner/internal/platform/config"
	"github.com/jsamuelsen11/task-planner/internal/platform/telemetry"
	"github.com/jsamuelsen11/task-planner/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.Store         = (*Store)(nil)
	_ ports.HealthChecker = (*Store)(nil)
)

// Store wraps access to the SQLite database.
type Store struct {
	db      *sql.DB
	logger  *slog.Logger
	metrics *telemetry.Metrics
}

// Open initializes the SQLite database at cfg.Path and runs the schema
// migrations. metrics may be nil.
func Open(cfg *config.DatabaseConfig, logger *slog.Logger, metrics *telemetry.Metrics) (*Store, error) {
	if cfg.Path == "" {
		return nil, errors.New("empty database path")
	}
	if err := ensureDir(cfg.Path); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=%d&_foreign_keys=on&_txlock=immediate",
		cfg.Path, cfg.BusyTimeout.Milliseconds())
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// One connection serializes writers inside the process; the busy timeout
	// covers other processes sharing the file.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	s := &Store{db: db, logger: logger, metrics: metrics}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("entity store opened", slog.String("path", cfg.Path))
	return s, nil
}

// Close releases the database resources.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return "database"
}

// HealthCheck implements ports.HealthChecker by pinging the database.
func (s *Store) HealthCheck(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging sqlite: %w", err)
	}
	return nil
}

// Update implements ports.Store.
func (s *Store) Update(ctx context.Context, fn func(tx ports.Tx) error) error {
	return s.run(ctx, "update", true, fn)
}

// View implements ports.Store.
func (s *Store) View(ctx context.Context, fn func(tx ports.Tx) error) error {
	return s.run(ctx, "view", false, fn)
}

func (s *Store) run(ctx context.Context, mode string, commit bool, fn func(tx ports.Tx) error) (err error) {
	start := time.Now()
	defer func() { s.metrics.RecordTx(ctx, mode, start, err) }()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s transaction: %w", mode, err)
	}

	done := false
	defer func() {
		if done {
			return
		}
		if rbErr := sqlTx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			s.logger.ErrorContext(ctx, "rolling back transaction",
				slog.String("mode", mode),
				slog.Any("error", rbErr),
			)
		}
	}()

	if err = fn(&tx{q: sqlTx}); err != nil {
		return err
	}
	if !commit {
		return nil
	}

	if err = sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit %s transaction: %w", mode, err)
	}
	done = true
	return nil
}

func ensureDir(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o750)
}

// tx binds the repositories to one *sql.Tx.
type tx struct {
	q *sql.Tx
}

func (t *tx) Users() ports.UserRepository   { return users{q: t.q} }
func (t *tx) Teams() ports.TeamRepository   { return teams{q: t.q} }
func (t *tx) Boards() ports.BoardRepository { return boards{q: t.q} }
func (t *tx) Tasks() ports.TaskRepository   { return tasks{q: t.q} }

// translate maps driver errors onto the domain taxonomy. A UNIQUE violation
// becomes a conflict carrying conflictReason; a FOREIGN KEY violation means a
// referenced row is gone. Anything else is wrapped with op.
func translate(op string, err error, conflictReason domain.Reason) error {
	var serr sqlite3.Error
	if errors.As(err, &serr) {
		switch serr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return domain.Conflict(conflictReason, "%s: %s", op, serr.Error())
		case sqlite3.ErrConstraintForeignKey:
			return domain.NotFound(domain.ReasonNotFound, "%s: referenced record does not exist", op)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// requireAffected turns a zero-row UPDATE or DELETE into a not-found error.
func requireAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.NotFound(domain.ReasonNotFound, "%s %s", entity, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

// placeholders returns "?, ?, ..." with n markers and ids as query args.
func placeholders(ids []string) (string, []any) {
	args := make([]any, len(ids))
	marks := make([]byte, 0, len(ids)*3)
	for i, id := range ids {
		if i > 0 {
			marks = append(marks, ", "...)
		}
		marks = append(marks, '?')
		args[i] = id
	}
	return string(marks), args
}
