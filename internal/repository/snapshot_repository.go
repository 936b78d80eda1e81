package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/model"
)

// SnapshotRepository provides data access methods for the
// fund_balance_snapshot table. Snapshots are idempotent per fund and month:
// re-running a materialization overwrites the previous value.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Upsert writes a fund's balance for the given month (YYYY-MM).
func (r *SnapshotRepository) Upsert(ctx context.Context, fundID, month string, balance decimal.Decimal) error {
	query := `
		INSERT INTO fund_balance_snapshot (id, fund_id, month, balance_cents, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(fund_id, month) DO UPDATE SET balance_cents = excluded.balance_cents, created_at = excluded.created_at
	`

	_, err := r.db.ExecContext(ctx, query,
		uuid.New().String(),
		fundID,
		month,
		decimalToCents(balance),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert balance snapshot: %w", err)
	}

	return nil
}

// ListByMonth retrieves all snapshots for a month ordered by fund ID.
func (r *SnapshotRepository) ListByMonth(month string) ([]model.FundBalanceSnapshot, error) {
	query := `
		SELECT id, fund_id, month, balance_cents, created_at
		FROM fund_balance_snapshot
		WHERE month = ?
		ORDER BY fund_id ASC
	`

	rows, err := r.db.Query(query, month)
	if err != nil {
		return nil, fmt.Errorf("failed to query fund_balance_snapshot table: %w", err)
	}
	defer rows.Close()

	snapshots := []model.FundBalanceSnapshot{}

	for rows.Next() {
		var (
			s          model.FundBalanceSnapshot
			cents      int64
			createdStr string
		)

		if err := rows.Scan(&s.ID, &s.FundID, &s.Month, &cents, &createdStr); err != nil {
			return nil, fmt.Errorf("failed to scan fund_balance_snapshot results: %w", err)
		}

		s.Balance = centsToDecimal(cents)

		s.CreatedAt, err = ParseTime(createdStr)
		if err != nil {
			return nil, err
		}

		snapshots = append(snapshots, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fund_balance_snapshot table: %w", err)
	}

	return snapshots, nil
}
