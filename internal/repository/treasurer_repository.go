package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/apperrors"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/model"
)

// TreasurerRepository provides data access methods for the treasurer table.
type TreasurerRepository struct {
	db *sql.DB
}

// NewTreasurerRepository creates a new TreasurerRepository with the provided database connection.
func NewTreasurerRepository(db *sql.DB) *TreasurerRepository {
	return &TreasurerRepository{db: db}
}

// Insert creates a new treasurer row.
func (r *TreasurerRepository) Insert(ctx context.Context, t *model.Treasurer) error {
	query := `
		INSERT INTO treasurer (id, username, email, first_name, last_name, phone_number, church_branch, position, is_approved, is_admin, is_active, date_created)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Username,
		t.Email,
		t.FirstName,
		t.LastName,
		t.PhoneNumber,
		t.ChurchBranch,
		t.Position,
		t.IsApproved,
		t.IsAdmin,
		t.IsActive,
		t.DateCreated.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to insert treasurer: %w", err)
	}

	return nil
}

// Get retrieves a single treasurer by ID.
func (r *TreasurerRepository) Get(treasurerID string) (model.Treasurer, error) {
	query := `
		SELECT id, username, email, COALESCE(first_name, ''), COALESCE(last_name, ''), COALESCE(phone_number, ''), COALESCE(church_branch, ''), position, is_approved, is_admin, is_active, date_created
		FROM treasurer
		WHERE id = ?
	`

	t, err := scanTreasurer(r.db.QueryRow(query, treasurerID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Treasurer{}, apperrors.ErrTreasurerNotFound
	}
	if err != nil {
		return model.Treasurer{}, fmt.Errorf("failed to query treasurer table: %w", err)
	}

	return t, nil
}

// List retrieves all treasurers, pending approval first, then by username.
func (r *TreasurerRepository) List() ([]model.Treasurer, error) {
	query := `
		SELECT id, username, email, COALESCE(first_name, ''), COALESCE(last_name, ''), COALESCE(phone_number, ''), COALESCE(church_branch, ''), position, is_approved, is_admin, is_active, date_created
		FROM treasurer
		ORDER BY is_approved ASC, username ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query treasurer table: %w", err)
	}
	defer rows.Close()

	treasurers := []model.Treasurer{}

	for rows.Next() {
		t, err := scanTreasurer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan treasurer table results: %w", err)
		}
		treasurers = append(treasurers, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating treasurer table: %w", err)
	}

	return treasurers, nil
}

// SetApproved updates the approval flag.
func (r *TreasurerRepository) SetApproved(ctx context.Context, treasurerID string, approved bool) error {
	return r.setFlag(ctx, treasurerID, "is_approved", approved)
}

// SetActive updates the active flag. Disabled treasurers keep their records
// and history but cannot act.
func (r *TreasurerRepository) SetActive(ctx context.Context, treasurerID string, active bool) error {
	return r.setFlag(ctx, treasurerID, "is_active", active)
}

// UpdateProfile updates the mutable profile fields of a treasurer.
func (r *TreasurerRepository) UpdateProfile(ctx context.Context, t *model.Treasurer) error {
	query := `
		UPDATE treasurer
		SET first_name = ?, last_name = ?, phone_number = ?, church_branch = ?, email = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		t.FirstName,
		t.LastName,
		t.PhoneNumber,
		t.ChurchBranch,
		t.Email,
		t.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to update treasurer profile: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTreasurerNotFound
	}

	return nil
}

func (r *TreasurerRepository) setFlag(ctx context.Context, treasurerID, column string, value bool) error {
	//#nosec G202 -- Safe: column names come from the two callers above, not from user input
	query := `UPDATE treasurer SET ` + column + ` = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, value, treasurerID)
	if err != nil {
		return fmt.Errorf("failed to update treasurer: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTreasurerNotFound
	}

	return nil
}

func scanTreasurer(row rowScanner) (model.Treasurer, error) {
	var (
		t       model.Treasurer
		dateStr string
	)

	err := row.Scan(
		&t.ID,
		&t.Username,
		&t.Email,
		&t.FirstName,
		&t.LastName,
		&t.PhoneNumber,
		&t.ChurchBranch,
		&t.Position,
		&t.IsApproved,
		&t.IsAdmin,
		&t.IsActive,
		&dateStr,
	)
	if err != nil {
		return model.Treasurer{}, err
	}

	t.DateCreated, err = ParseTime(dateStr)
	if err != nil {
		return model.Treasurer{}, err
	}

	return t, nil
}
