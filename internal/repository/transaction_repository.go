package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/apperrors"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/model"
)

// TransactionRepository provides data access methods for the fund_transaction
// and transaction_split tables. Splits are written and deleted only together
// with their parent transaction; parent deletion cascades in the schema.
type TransactionRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *TransactionRepository) WithTx(tx *sql.Tx) *TransactionRepository {
	return &TransactionRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *TransactionRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// Insert creates a new transaction row.
func (r *TransactionRepository) Insert(ctx context.Context, t *model.Transaction) error {
	query := `
		INSERT INTO fund_transaction (id, fund_id, type, amount_cents, description, status, original_transaction_id, created_by, transaction_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var fundID any
	if t.FundID != "" {
		fundID = t.FundID
	}

	var originalID any
	if t.OriginalTransactionID != "" {
		originalID = t.OriginalTransactionID
	}

	var createdBy any
	if t.CreatedBy != "" {
		createdBy = t.CreatedBy
	}

	_, err := r.getQuerier().ExecContext(ctx, query,
		t.ID,
		fundID,
		t.Type,
		decimalToCents(t.Amount),
		t.Description,
		t.Status,
		originalID,
		createdBy,
		t.TransactionDate.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// InsertSplit creates a child split row for a transaction.
func (r *TransactionRepository) InsertSplit(ctx context.Context, s *model.Split) error {
	query := `
		INSERT INTO transaction_split (id, transaction_id, fund_id, amount_allocated_cents)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		s.ID,
		s.TransactionID,
		s.FundID,
		decimalToCents(s.AmountAllocated),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction split: %w", err)
	}

	return nil
}

// Get retrieves a single transaction by ID.
func (r *TransactionRepository) Get(transactionID string) (model.Transaction, error) {
	query := `
		SELECT id, COALESCE(fund_id, ''), type, amount_cents, description, status, COALESCE(original_transaction_id, ''), COALESCE(created_by, ''), transaction_date
		FROM fund_transaction
		WHERE id = ?
	`

	t, err := scanTransaction(r.getQuerier().QueryRow(query, transactionID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to query transaction table: %w", err)
	}

	return t, nil
}

// GetSplits retrieves all splits for a transaction, oldest insertion first.
// Returns an empty slice for non-split transactions.
func (r *TransactionRepository) GetSplits(transactionID string) ([]model.Split, error) {
	query := `
		SELECT id, transaction_id, fund_id, amount_allocated_cents
		FROM transaction_split
		WHERE transaction_id = ?
		ORDER BY rowid ASC
	`

	rows, err := r.getQuerier().Query(query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction_split table: %w", err)
	}
	defer rows.Close()

	splits := []model.Split{}

	for rows.Next() {
		var (
			s     model.Split
			cents int64
		)

		if err := rows.Scan(&s.ID, &s.TransactionID, &s.FundID, &cents); err != nil {
			return nil, fmt.Errorf("failed to scan transaction_split results: %w", err)
		}

		s.AmountAllocated = centsToDecimal(cents)
		splits = append(splits, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction_split table: %w", err)
	}

	return splits, nil
}

// GetDetail retrieves a transaction with its fund name and split breakdown.
func (r *TransactionRepository) GetDetail(transactionID string) (model.TransactionDetail, error) {
	t, err := r.Get(transactionID)
	if err != nil {
		return model.TransactionDetail{}, err
	}

	detail := model.TransactionDetail{Transaction: t}

	if t.FundID != "" {
		if err := r.getQuerier().QueryRow(`SELECT name FROM fund WHERE id = ?`, t.FundID).Scan(&detail.FundName); err != nil {
			return model.TransactionDetail{}, fmt.Errorf("failed to resolve fund name: %w", err)
		}
		return detail, nil
	}

	detail.Splits, err = r.getSplitDetails(transactionID)
	if err != nil {
		return model.TransactionDetail{}, err
	}

	return detail, nil
}

func (r *TransactionRepository) getSplitDetails(transactionID string) ([]model.SplitDetail, error) {
	query := `
		SELECT ts.id, ts.transaction_id, ts.fund_id, ts.amount_allocated_cents, f.name
		FROM transaction_split ts
		INNER JOIN fund f ON f.id = ts.fund_id
		WHERE ts.transaction_id = ?
		ORDER BY ts.rowid ASC
	`

	rows, err := r.getQuerier().Query(query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction_split table: %w", err)
	}
	defer rows.Close()

	splits := []model.SplitDetail{}

	for rows.Next() {
		var (
			s     model.SplitDetail
			cents int64
		)

		if err := rows.Scan(&s.ID, &s.TransactionID, &s.FundID, &cents, &s.FundName); err != nil {
			return nil, fmt.Errorf("failed to scan transaction_split results: %w", err)
		}

		s.AmountAllocated = centsToDecimal(cents)
		splits = append(splits, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction_split table: %w", err)
	}

	return splits, nil
}

// TransactionFilter narrows List results. Zero values mean "no filter".
// FundID matches single-fund transactions against that fund as well as
// parent transactions with a split allocated to it.
type TransactionFilter struct {
	Type   string
	FundID string
	Limit  int
	Offset int
}

// List retrieves transactions newest first, with optional type and fund
// filters and limit/offset pagination.
func (r *TransactionRepository) List(filter TransactionFilter) ([]model.TransactionDetail, error) {
	query := `
		SELECT DISTINCT t.id, COALESCE(t.fund_id, ''), t.type, t.amount_cents, t.description, t.status, COALESCE(t.original_transaction_id, ''), COALESCE(t.created_by, ''), t.transaction_date
		FROM fund_transaction t
		LEFT JOIN transaction_split ts ON ts.transaction_id = t.id
	`

	conditions := []string{}
	args := []any{}

	if filter.Type != "" {
		conditions = append(conditions, "t.type = ?")
		args = append(args, filter.Type)
	}
	if filter.FundID != "" {
		conditions = append(conditions, "(t.fund_id = ? OR ts.fund_id = ?)")
		args = append(args, filter.FundID, filter.FundID)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY t.transaction_date DESC, t.id DESC"

	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.getQuerier().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.TransactionDetail{}

	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}
		transactions = append(transactions, model.TransactionDetail{Transaction: t})
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	// Enrich with fund names and split breakdowns.
	for i := range transactions {
		if transactions[i].FundID != "" {
			if err := r.getQuerier().QueryRow(`SELECT name FROM fund WHERE id = ?`, transactions[i].FundID).Scan(&transactions[i].FundName); err != nil {
				return nil, fmt.Errorf("failed to resolve fund name: %w", err)
			}
			continue
		}

		transactions[i].Splits, err = r.getSplitDetails(transactions[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return transactions, nil
}

// Delete removes a transaction; the schema cascades the delete to its splits.
func (r *TransactionRepository) Delete(ctx context.Context, transactionID string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM fund_transaction WHERE id = ?`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}

	return nil
}

// SumByType returns the total amount of active transactions of the given
// type within [start, end).
func (r *TransactionRepository) SumByType(transactionType string, start, end time.Time) (decimal.Decimal, error) {
	var cents int64

	query := `
		SELECT COALESCE(SUM(amount_cents), 0)
		FROM fund_transaction
		WHERE type = ?
		AND status = ?
		AND transaction_date >= ?
		AND transaction_date < ?
	`

	err := r.getQuerier().QueryRow(query,
		transactionType,
		model.StatusActive,
		start.UTC().Format(time.RFC3339),
		end.UTC().Format(time.RFC3339),
	).Scan(&cents)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum transactions: %w", err)
	}

	return centsToDecimal(cents), nil
}

func scanTransaction(row rowScanner) (model.Transaction, error) {
	var (
		t       model.Transaction
		cents   int64
		dateStr string
	)

	err := row.Scan(
		&t.ID,
		&t.FundID,
		&t.Type,
		&cents,
		&t.Description,
		&t.Status,
		&t.OriginalTransactionID,
		&t.CreatedBy,
		&dateStr,
	)
	if err != nil {
		return model.Transaction{}, err
	}

	t.Amount = centsToDecimal(cents)

	t.TransactionDate, err = ParseTime(dateStr)
	if err != nil {
		return model.Transaction{}, err
	}

	return t, nil
}
