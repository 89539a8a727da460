// Package snapshot persists the last events list fetched from the spreadsheet so the site can
// keep serving real data while the upstream is down.
package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/indigoandlavender/slow-morocco-6/internal/events"
)

const createTable = `CREATE TABLE IF NOT EXISTS event_snapshots (
	batch_id VARCHAR(26) NOT NULL,
	seq INTEGER NOT NULL,
	event_id VARCHAR(191) NOT NULL,
	payload TEXT NOT NULL,
	saved_at BIGINT NOT NULL,
	PRIMARY KEY (batch_id, seq)
)`

// Batch describes the stored snapshot.
type Batch struct {
	ID      string
	SavedAt time.Time
	Count   int
}

// Store is a SQL-backed events.SnapshotStore.
type Store struct {
	db     *sql.DB
	driver string
	logger *zap.Logger
	now    func() time.Time
}

// Option customises the Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Open connects to rawDSN (see ParseDSN) and ensures the table exists.
func Open(ctx context.Context, rawDSN string, opts ...Option) (*Store, error) {
	driver, dsn, err := ParseDSN(rawDSN)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("snapshot: open %s: %w", driver, err)
	}
	if driver == driverSQLite {
		// Every sqlite connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	} else {
		db.SetConnMaxLifetime(time.Hour)
		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(2)
	}

	s := &Store{db: db, driver: driver, logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTable); err != nil {
		return fmt.Errorf("snapshot: create table: %w", err)
	}
	return nil
}

// SaveEvents replaces the stored snapshot with list in one transaction. An empty list
// leaves the stored snapshot untouched.
func (s *Store) SaveEvents(ctx context.Context, list []events.Event) (err error) {
	if len(list) == 0 {
		return nil
	}
	batch := ulid.Make().String()
	savedAt := s.now().UTC().UnixMilli()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("snapshot: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM event_snapshots`); err != nil {
		return fmt.Errorf("snapshot: clear: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO event_snapshots (batch_id, seq, event_id, payload, saved_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("snapshot: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range list {
		payload, mErr := json.Marshal(e)
		if mErr != nil {
			err = fmt.Errorf("snapshot: encode %s: %w", e.ID, mErr)
			return err
		}
		if _, err = stmt.ExecContext(ctx, batch, i, e.ID, string(payload), savedAt); err != nil {
			return fmt.Errorf("snapshot: insert %s: %w", e.ID, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("snapshot: commit: %w", err)
	}
	s.logger.Debug("snapshot: saved", zap.String("batch", batch), zap.Int("events", len(list)))
	return nil
}

// LoadEvents returns the stored snapshot in saved order. An empty store yields no events.
func (s *Store) LoadEvents(ctx context.Context) ([]events.Event, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT event_id, payload FROM event_snapshots ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("snapshot: query: %w", err)
	}
	defer rows.Close()

	var out []events.Event
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("snapshot: scan: %w", err)
		}
		var e events.Event
		if err := json.Unmarshal([]byte(payload), &e); err != nil {
			s.logger.Warn("snapshot: skipping undecodable row", zap.String("event_id", id), zap.Error(err))
			continue
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("snapshot: rows: %w", err)
	}
	return out, nil
}

// ErrEmpty is returned by Latest when nothing has been saved.
var ErrEmpty = errors.New("snapshot: empty")

// Latest describes the stored batch.
func (s *Store) Latest(ctx context.Context) (Batch, error) {
	var (
		b       Batch
		savedAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT batch_id, saved_at, COUNT(*) FROM event_snapshots GROUP BY batch_id, saved_at ORDER BY batch_id DESC LIMIT 1`,
	).Scan(&b.ID, &savedAt, &b.Count)
	if errors.Is(err, sql.ErrNoRows) {
		return Batch{}, ErrEmpty
	}
	if err != nil {
		return Batch{}, fmt.Errorf("snapshot: latest: %w", err)
	}
	b.SavedAt = time.UnixMilli(savedAt).UTC()
	return b, nil
}
