package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/Juniordecoy/xpa3-dd-dashboard/domain"
)

const doorStateSchema = `
CREATE TABLE IF NOT EXISTS door_state (
	door INTEGER PRIMARY KEY,
	location TEXT NOT NULL,
	truck_type TEXT,
	updated_at TEXT NOT NULL
);
`

// SQLiteStore keeps one row per door in a local SQLite file.
type SQLiteStore struct {
	db   *sql.DB
	seed []domain.DoorState
}

// NewSQLiteStore opens (or creates) the database at path. The schema is
// created and seeded on the first Load, not here.
func NewSQLiteStore(path string, seed []domain.DoorState) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}
	return &SQLiteStore{db: db, seed: seed}, nil
}

// Load creates the schema if absent, seeds the table only when it is empty
// and returns every row. Schema, count and seed run in one transaction so a
// concurrent starter cannot double-seed.
func (s *SQLiteStore) Load(ctx context.Context) ([]domain.DoorState, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, doorStateSchema); err != nil {
		return nil, fmt.Errorf("creating door_state table: %w", err)
	}
	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM door_state").Scan(&count); err != nil {
		return nil, fmt.Errorf("counting door_state rows: %w", err)
	}
	if count == 0 {
		for _, st := range s.seed {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO door_state (door, location, truck_type, updated_at) VALUES (?, ?, ?, ?)",
				st.Door, st.Location, nullString(st.Truck), st.UpdatedAt)
			if err != nil {
				return nil, fmt.Errorf("seeding door %d: %w", st.Door, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing seed transaction: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT door, location, truck_type, updated_at FROM door_state ORDER BY door")
	if err != nil {
		return nil, fmt.Errorf("querying door_state: %w", err)
	}
	defer rows.Close()

	var states []domain.DoorState
	for rows.Next() {
		var st domain.DoorState
		var truck sql.NullString
		if err := rows.Scan(&st.Door, &st.Location, &truck, &st.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning door_state row: %w", err)
		}
		if truck.Valid {
			st.Truck = truck.String
		}
		states = append(states, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating door_state rows: %w", err)
	}
	return states, nil
}

// Record is a no-op: the row store keeps current state, not history.
func (s *SQLiteStore) Record(context.Context, domain.DoorState) error {
	return nil
}

// Upsert replaces the row for one door, last write wins.
func (s *SQLiteStore) Upsert(ctx context.Context, st domain.DoorState) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO door_state (door, location, truck_type, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(door) DO UPDATE SET
			location = excluded.location,
			truck_type = excluded.truck_type,
			updated_at = excluded.updated_at`,
		st.Door, st.Location, nullString(st.Truck), st.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting door %d: %w", st.Door, err)
	}
	return nil
}

// Export renders every row, ordered by door, as a CSV snapshot.
func (s *SQLiteStore) Export(ctx context.Context) (domain.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT door, location, truck_type, updated_at FROM door_state ORDER BY door")
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("querying door_state: %w", err)
	}
	defer rows.Close()

	var states []domain.DoorState
	for rows.Next() {
		var st domain.DoorState
		var truck sql.NullString
		if err := rows.Scan(&st.Door, &st.Location, &truck, &st.UpdatedAt); err != nil {
			return domain.Snapshot{}, fmt.Errorf("scanning door_state row: %w", err)
		}
		if truck.Valid {
			st.Truck = truck.String
		}
		states = append(states, st)
	}
	if err := rows.Err(); err != nil {
		return domain.Snapshot{}, fmt.Errorf("iterating door_state rows: %w", err)
	}
	return domain.Snapshot{Data: encodeSnapshot(states), Filename: snapshotFilename, ContentType: snapshotMIME}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
