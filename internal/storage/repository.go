// Package storage is the SQLite visit ledger. One repository owns one
// long-lived connection pool for the life of the process; callers close
// it on every exit path so committed visits stay durable.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"storeledger/internal/core"

	_ "modernc.org/sqlite"
)

// Sync states for the export worker.
const (
	SyncPending = "pending"
	SyncDone    = "synced"
	SyncError   = "error"
)

// ErrVisitNotFound is returned when a visit id has no row.
var ErrVisitNotFound = errors.New("visit not found")

type Repository struct {
	db *sql.DB
}

// NewRepository opens (or creates) the ledger database at dbPath and
// runs pending migrations.
func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Insert appends one visit record. New rows start in the pending sync
// state so the export worker picks them up.
func (r *Repository) Insert(ctx context.Context, v core.Visit) (int64, error) {
	return r.insert(ctx, v, SyncPending)
}

func (r *Repository) insert(ctx context.Context, v core.Visit, syncState string) (int64, error) {
	if err := v.Validate(); err != nil {
		return 0, fmt.Errorf("validate visit: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO purchases (team_name, visit_number, items, total_cents, total_items, total_spent_cents, sync_state)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		v.TeamName, v.VisitNumber, v.Items, v.TotalCents, v.TotalItems, v.TotalSpentCents, syncState)
	if err != nil {
		return 0, fmt.Errorf("insert visit: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("visit id: %w", err)
	}

	slog.InfoContext(ctx, "Visit saved",
		"id", id,
		"team", v.TeamName,
		"visit_number", v.VisitNumber,
		"total_cents", v.TotalCents,
		"total_spent_cents", v.TotalSpentCents)

	return id, nil
}

// MaxVisitNumber returns the team's highest recorded visit number.
func (r *Repository) MaxVisitNumber(ctx context.Context, team string) (int, bool, error) {
	var max sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT MAX(visit_number) FROM purchases WHERE team_name = ?`, team).Scan(&max)
	if err != nil {
		return 0, false, fmt.Errorf("max visit number: %w", err)
	}
	return int(max.Int64), max.Valid, nil
}

// MaxTotalSpent returns the team's latest cumulative total in cents.
func (r *Repository) MaxTotalSpent(ctx context.Context, team string) (int64, bool, error) {
	var max sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT MAX(total_spent_cents) FROM purchases WHERE team_name = ?`, team).Scan(&max)
	if err != nil {
		return 0, false, fmt.Errorf("max total spent: %w", err)
	}
	return max.Int64, max.Valid, nil
}

// ListVisits returns a team's visits in insertion order.
func (r *Repository) ListVisits(ctx context.Context, team string) ([]core.Visit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, team_name, visit_number, items, total_cents, total_items, total_spent_cents
		FROM purchases WHERE team_name = ? ORDER BY id`, team)
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	defer rows.Close()
	return scanVisits(rows)
}

// TeamTotals aggregates visit counts and spend per team, biggest
// spenders first.
func (r *Repository) TeamTotals(ctx context.Context) ([]core.TeamTotal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT team_name, COUNT(*) AS visits, SUM(total_cents) AS spent_cents
		FROM purchases
		GROUP BY team_name
		ORDER BY spent_cents DESC`)
	if err != nil {
		return nil, fmt.Errorf("team totals: %w", err)
	}
	defer rows.Close()

	var out []core.TeamTotal
	for rows.Next() {
		var t core.TeamTotal
		if err := rows.Scan(&t.TeamName, &t.Visits, &t.SpentCents); err != nil {
			return nil, fmt.Errorf("scan team total: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate team totals: %w", err)
	}
	return out, nil
}

// GetVisit fetches one visit by id.
func (r *Repository) GetVisit(ctx context.Context, id int64) (core.Visit, error) {
	var v core.Visit
	err := r.db.QueryRowContext(ctx, `
		SELECT id, team_name, visit_number, items, total_cents, total_items, total_spent_cents
		FROM purchases WHERE id = ?`, id).
		Scan(&v.ID, &v.TeamName, &v.VisitNumber, &v.Items, &v.TotalCents, &v.TotalItems, &v.TotalSpentCents)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Visit{}, fmt.Errorf("%w: id %d", ErrVisitNotFound, id)
	}
	if err != nil {
		return core.Visit{}, fmt.Errorf("get visit: %w", err)
	}
	return v, nil
}

// DequeuePendingSync returns up to limit visits awaiting export, oldest
// first.
func (r *Repository) DequeuePendingSync(ctx context.Context, limit int) ([]core.Visit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, team_name, visit_number, items, total_cents, total_items, total_spent_cents
		FROM purchases WHERE sync_state = ? ORDER BY id LIMIT ?`, SyncPending, limit)
	if err != nil {
		return nil, fmt.Errorf("dequeue pending sync: %w", err)
	}
	defer rows.Close()
	return scanVisits(rows)
}

// MarkSynced records that a visit reached the export sheet.
func (r *Repository) MarkSynced(ctx context.Context, id int64) error {
	if err := r.setSyncState(ctx, id, SyncDone); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Visit marked as synced", "id", id)
	return nil
}

// MarkSyncError flags a visit whose export failed.
func (r *Repository) MarkSyncError(ctx context.Context, id int64) error {
	if err := r.setSyncState(ctx, id, SyncError); err != nil {
		return err
	}
	slog.WarnContext(ctx, "Visit marked with sync error", "id", id)
	return nil
}

func (r *Repository) setSyncState(ctx context.Context, id int64, state string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE purchases SET sync_state = ? WHERE id = ?`, state, id)
	if err != nil {
		return fmt.Errorf("set sync state: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: id %d", ErrVisitNotFound, id)
	}
	return nil
}

func scanVisits(rows *sql.Rows) ([]core.Visit, error) {
	var out []core.Visit
	for rows.Next() {
		var v core.Visit
		if err := rows.Scan(&v.ID, &v.TeamName, &v.VisitNumber, &v.Items,
			&v.TotalCents, &v.TotalItems, &v.TotalSpentCents); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate visits: %w", err)
	}
	return out, nil
}
