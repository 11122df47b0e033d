package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LedgerEntry records one applied shadow-schema DDL statement.
type LedgerEntry struct {
	ID        uuid.UUID `json:"id"`
	Statement string    `json:"statement"`
	AppliedAt time.Time `json:"applied_at"`
}

// ledgerRepository persists and lists ledger entries.
type ledgerRepository struct {
	pool *pgxpool.Pool
}

// LedgerRepository is the storage interface for the shadow schema ledger.
type LedgerRepository interface {
	Record(ctx context.Context, statement string) (LedgerEntry, error)
	List(ctx context.Context) ([]LedgerEntry, error)
}

// NewLedgerRepository creates a ledger repository over the connection pool.
func NewLedgerRepository(pool *pgxpool.Pool) LedgerRepository {
	return &ledgerRepository{pool: pool}
}

// Record inserts a ledger entry for an applied statement.
func (r *ledgerRepository) Record(ctx context.Context, statement string) (LedgerEntry, error) {
	entry := LedgerEntry{
		ID:        uuid.New(),
		Statement: statement,
	}
	row := r.pool.QueryRow(ctx,
		`INSERT INTO shadow_schema_ledger (id, statement) VALUES ($1, $2) RETURNING applied_at`,
		entry.ID, entry.Statement,
	)
	if err := row.Scan(&entry.AppliedAt); err != nil {
		return LedgerEntry{}, fmt.Errorf("failed to record ledger entry: %w", err)
	}
	return entry, nil
}

// List returns every ledger entry in application order.
func (r *ledgerRepository) List(ctx context.Context) ([]LedgerEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, statement, applied_at FROM shadow_schema_ledger ORDER BY applied_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []LedgerEntry
	for rows.Next() {
		var entry LedgerEntry
		if err := rows.Scan(&entry.ID, &entry.Statement, &entry.AppliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
