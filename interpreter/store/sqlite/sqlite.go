// Package sqlite provides a SQLite implementation of the endpoint
// journal.
//
// # Calling Conventions
//
// This store is a pure data access layer with no internal transaction
// management. Individual methods execute against s.conn through
// prepared statements, which may be bound to either the underlying
// *sql.DB (autocommit mode) or a *sql.Tx (transactional mode).
//
// For operations that require atomicity across multiple calls, use
// RunInTransaction:
//
//	err := store.RunInTransaction(ctx, func(txStore interpreter.Store) error {
//	    if err := txStore.DeleteEndpoint(ctx, oldPipe); err != nil {
//	        return err // triggers rollback
//	    }
//	    return txStore.SaveEndpoint(ctx, status) // commits if nil
//	})
//
// # Concurrency Model
//
// The manager serialises writers, so there is no writer contention at
// the database level. The default DEFERRED transaction type is
// sufficient; transactions provide atomicity and rollback, not
// writer coordination. WAL mode is enabled for file databases.
//
// # Prepared Statements
//
// All queries are prepared once when the store is opened. Inside a
// transaction, tx.StmtContext binds the already-compiled master
// statements to the transaction; no SQL is parsed again.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/frobware/go-ipa/interpreter"
)

// msec formats a duration as milliseconds with 3 decimal places.
func msec(d time.Duration) string {
	return fmt.Sprintf("%.3f", float64(d.Microseconds())/1000)
}

//go:embed schema.sql
var schemaSQL string

// sqliteStore implements interpreter.Store using SQLite.
type sqliteStore struct {
	db     *sql.DB
	logger *slog.Logger

	// Prepared statements for endpoint operations
	stmtGetEndpoint    *sql.Stmt
	stmtSaveEndpoint   *sql.Stmt
	stmtDeleteEndpoint *sql.Stmt
	stmtListEndpoints  *sql.Stmt

	// Prepared statements for attach records
	stmtSaveAttach   *sql.Stmt
	stmtLatestAttach *sql.Stmt
}

// New creates a new SQLite store at the given path.
func New(ctx context.Context, dbPath string, logger *slog.Logger) (interpreter.Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "store", "db", dbPath)

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open(driverName, dsn(dbPath, [][2]string{{"journal_mode", "WAL"}, {"busy_timeout", "5000"}}))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s, err := open(ctx, db, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("opened database", "path", dbPath)
	return s, nil
}

// NewInMemory creates an in-memory SQLite store for testing.
func NewInMemory(ctx context.Context, logger *slog.Logger) (interpreter.Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "store", "db", ":memory:")

	db, err := sql.Open(driverName, dsn(":memory:", nil))
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	// Every connection to :memory: is a distinct database.
	db.SetMaxOpenConns(1)

	s, err := open(ctx, db, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("opened in-memory database")
	return s, nil
}

func open(ctx context.Context, db *sql.DB, logger *slog.Logger) (*sqliteStore, error) {
	s := &sqliteStore{db: db, logger: logger}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	if err := s.prepareStatements(ctx); err != nil {
		s.closeStatements()
		db.Close()
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}
	return s, nil
}

// Close closes all prepared statements and the database connection.
func (s *sqliteStore) Close() error {
	s.closeStatements()
	return s.db.Close()
}

// closeStatements closes all prepared statements. Each close error
// is silently ignored because the database is about to be closed.
func (s *sqliteStore) closeStatements() {
	stmts := []*sql.Stmt{
		s.stmtGetEndpoint,
		s.stmtSaveEndpoint,
		s.stmtDeleteEndpoint,
		s.stmtListEndpoints,
		s.stmtSaveAttach,
		s.stmtLatestAttach,
	}
	for _, stmt := range stmts {
		if stmt != nil {
			stmt.Close()
		}
	}
}

func (s *sqliteStore) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// RunInTransaction executes the callback within a database transaction.
// If the callback returns nil, the transaction commits.
// If the callback returns an error, the transaction rolls back.
//
// The transaction store holds tx-bound handles of the master
// statements. They become invalid after commit or rollback, but the
// masters on s stay valid for the lifetime of the connection.
func (s *sqliteStore) RunInTransaction(ctx context.Context, fn func(interpreter.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	txStore := &sqliteStore{
		db:     s.db,
		logger: s.logger,
		// Endpoint statements
		stmtGetEndpoint:    tx.StmtContext(ctx, s.stmtGetEndpoint),
		stmtSaveEndpoint:   tx.StmtContext(ctx, s.stmtSaveEndpoint),
		stmtDeleteEndpoint: tx.StmtContext(ctx, s.stmtDeleteEndpoint),
		stmtListEndpoints:  tx.StmtContext(ctx, s.stmtListEndpoints),
		// Attach statements
		stmtSaveAttach:   tx.StmtContext(ctx, s.stmtSaveAttach),
		stmtLatestAttach: tx.StmtContext(ctx, s.stmtLatestAttach),
	}

	if err := fn(txStore); err != nil {
		return err
	}

	return tx.Commit()
}
