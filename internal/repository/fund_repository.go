package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/apperrors"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/model"
)

// FundRepository provides data access methods for the fund table. Balance
// mutations go through AdjustBalance and DebitBalance, which update the
// stored balance in a single SQL statement so concurrent writers can never
// lose an update.
type FundRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewFundRepository creates a new FundRepository with the provided database connection.
func NewFundRepository(db *sql.DB) *FundRepository {
	return &FundRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *FundRepository) WithTx(tx *sql.Tx) *FundRepository {
	return &FundRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *FundRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// Insert creates a new fund row.
func (r *FundRepository) Insert(ctx context.Context, fund *model.Fund) error {
	query := `
		INSERT INTO fund (id, name, fund_type, description, current_balance_cents, default_percentage_bp, created_by, date_created)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	var createdBy any
	if fund.CreatedBy != "" {
		createdBy = fund.CreatedBy
	}

	_, err := r.getQuerier().ExecContext(ctx, query,
		fund.ID,
		fund.Name,
		fund.FundType,
		fund.Description,
		decimalToCents(fund.CurrentBalance),
		percentToBP(fund.DefaultPercentage),
		createdBy,
		fund.DateCreated.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to insert fund: %w", err)
	}

	return nil
}

// GetFund retrieves a single fund by ID.
func (r *FundRepository) GetFund(fundID string) (model.Fund, error) {
	query := `
		SELECT id, name, fund_type, description, current_balance_cents, default_percentage_bp, COALESCE(created_by, ''), date_created
		FROM fund
		WHERE id = ?
	`

	fund, err := r.scanFund(r.getQuerier().QueryRow(query, fundID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Fund{}, apperrors.ErrFundNotFound
	}
	if err != nil {
		return model.Fund{}, fmt.Errorf("failed to query fund table: %w", err)
	}

	return fund, nil
}

// ListFunds retrieves all funds ordered by creation date.
// Returns an empty slice if no funds exist.
func (r *FundRepository) ListFunds() ([]model.Fund, error) {
	query := `
		SELECT id, name, fund_type, description, current_balance_cents, default_percentage_bp, COALESCE(created_by, ''), date_created
		FROM fund
		ORDER BY date_created ASC, name ASC
	`

	rows, err := r.getQuerier().Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query fund table: %w", err)
	}
	defer rows.Close()

	funds := []model.Fund{}

	for rows.Next() {
		fund, err := r.scanFund(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fund table results: %w", err)
		}
		funds = append(funds, fund)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fund table: %w", err)
	}

	return funds, nil
}

// ListSplitFunds retrieves all funds with a positive default percentage,
// excluding the given fund ID. These are the funds a quick split allocates
// to before the remainder fund absorbs the residual.
func (r *FundRepository) ListSplitFunds(excludeFundID string) ([]model.Fund, error) {
	query := `
		SELECT id, name, fund_type, description, current_balance_cents, default_percentage_bp, COALESCE(created_by, ''), date_created
		FROM fund
		WHERE default_percentage_bp > 0
		AND id != ?
		ORDER BY date_created ASC, name ASC
	`

	rows, err := r.getQuerier().Query(query, excludeFundID)
	if err != nil {
		return nil, fmt.Errorf("failed to query fund table: %w", err)
	}
	defer rows.Close()

	funds := []model.Fund{}

	for rows.Next() {
		fund, err := r.scanFund(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fund table results: %w", err)
		}
		funds = append(funds, fund)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fund table: %w", err)
	}

	return funds, nil
}

// AdjustBalance atomically adds the signed amount to the fund's balance.
// The increment happens inside the UPDATE statement itself, never as a
// read-modify-write in application code.
func (r *FundRepository) AdjustBalance(ctx context.Context, fundID string, amount decimal.Decimal) error {
	query := `
		UPDATE fund
		SET current_balance_cents = current_balance_cents + ?
		WHERE id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query, decimalToCents(amount), fundID)
	if err != nil {
		return fmt.Errorf("failed to adjust fund balance: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrFundNotFound
	}

	return nil
}

// DebitBalance atomically subtracts amount from the fund's balance, but only
// if the balance covers it. The check and the decrement are one statement, so
// two concurrent withdrawals can never drive a balance negative.
func (r *FundRepository) DebitBalance(ctx context.Context, fundID string, amount decimal.Decimal) error {
	cents := decimalToCents(amount)

	query := `
		UPDATE fund
		SET current_balance_cents = current_balance_cents - ?
		WHERE id = ?
		AND current_balance_cents >= ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query, cents, fundID, cents)
	if err != nil {
		return fmt.Errorf("failed to debit fund balance: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		// Distinguish a missing fund from an uncovered withdrawal.
		if _, err := r.GetFund(fundID); err != nil {
			return err
		}
		return apperrors.ErrInsufficientFunds
	}

	return nil
}

// TotalBalance returns the sum of current balances across all funds.
func (r *FundRepository) TotalBalance() (decimal.Decimal, error) {
	var totalCents int64

	query := `SELECT COALESCE(SUM(current_balance_cents), 0) FROM fund`

	if err := r.getQuerier().QueryRow(query).Scan(&totalCents); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum fund balances: %w", err)
	}

	return centsToDecimal(totalCents), nil
}

// UpdatePercentage sets a fund's default allocation percentage.
func (r *FundRepository) UpdatePercentage(ctx context.Context, fundID string, percentage decimal.Decimal) error {
	query := `
		UPDATE fund
		SET default_percentage_bp = ?
		WHERE id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query, percentToBP(percentage), fundID)
	if err != nil {
		return fmt.Errorf("failed to update fund percentage: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrFundNotFound
	}

	return nil
}

// Delete removes a fund that is not referenced by any transaction or split.
// Referenced funds are protected and deletion fails with ErrFundInUse.
func (r *FundRepository) Delete(ctx context.Context, fundID string) error {
	var references int64

	countQuery := `
		SELECT (SELECT COUNT(*) FROM fund_transaction WHERE fund_id = ?)
		     + (SELECT COUNT(*) FROM transaction_split WHERE fund_id = ?)
	`

	if err := r.getQuerier().QueryRowContext(ctx, countQuery, fundID, fundID).Scan(&references); err != nil {
		return fmt.Errorf("failed to count fund references: %w", err)
	}
	if references > 0 {
		return apperrors.ErrFundInUse
	}

	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM fund WHERE id = ?`, fundID)
	if err != nil {
		return fmt.Errorf("failed to delete fund: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrFundNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *FundRepository) scanFund(row rowScanner) (model.Fund, error) {
	var (
		fund         model.Fund
		balanceCents int64
		percentBP    int64
		createdStr   string
	)

	err := row.Scan(
		&fund.ID,
		&fund.Name,
		&fund.FundType,
		&fund.Description,
		&balanceCents,
		&percentBP,
		&fund.CreatedBy,
		&createdStr,
	)
	if err != nil {
		return model.Fund{}, err
	}

	fund.CurrentBalance = centsToDecimal(balanceCents)
	fund.DefaultPercentage = bpToPercent(percentBP)

	fund.DateCreated, err = ParseTime(createdStr)
	if err != nil {
		return model.Fund{}, err
	}

	return fund, nil
}
