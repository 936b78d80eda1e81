package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/model"
)

// FundBuilder provides a fluent interface for creating test funds.
//
// Example usage:
//
//	// Simple creation with defaults
//	fund := testutil.NewFund().Build(t, db)
//
//	// Customized fund
//	fund := testutil.NewFund().
//	    WithName("Building Fund").
//	    WithBalance("150.00").
//	    WithDefaultPercentage("30").
//	    Build(t, db)
type FundBuilder struct {
	ID                string
	Name              string
	FundType          string
	Description       string
	CurrentBalance    decimal.Decimal
	DefaultPercentage decimal.Decimal
	CreatedBy         string
}

// NewFund creates a FundBuilder with sensible defaults.
func NewFund() *FundBuilder {
	return &FundBuilder{
		ID:                MakeID(),
		Name:              MakeFundName("Test Fund"),
		FundType:          MakeFundType("TEST"),
		Description:       "Test description",
		CurrentBalance:    decimal.Zero,
		DefaultPercentage: decimal.Zero,
	}
}

// WithID sets a custom ID.
func (b *FundBuilder) WithID(id string) *FundBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *FundBuilder) WithName(name string) *FundBuilder {
	b.Name = name
	return b
}

// WithFundType sets a custom fund type.
func (b *FundBuilder) WithFundType(fundType string) *FundBuilder {
	b.FundType = fundType
	return b
}

// WithBalance sets the starting balance from a decimal string.
func (b *FundBuilder) WithBalance(balance string) *FundBuilder {
	b.CurrentBalance = decimal.RequireFromString(balance)
	return b
}

// WithDefaultPercentage sets the default offering percentage from a decimal string.
func (b *FundBuilder) WithDefaultPercentage(percentage string) *FundBuilder {
	b.DefaultPercentage = decimal.RequireFromString(percentage)
	return b
}

// WithCreatedBy sets the creating treasurer's ID.
func (b *FundBuilder) WithCreatedBy(treasurerID string) *FundBuilder {
	b.CreatedBy = treasurerID
	return b
}

// Build creates the fund in the database and returns it.
func (b *FundBuilder) Build(t *testing.T, db *sql.DB) model.Fund {
	t.Helper()

	query := `
		INSERT INTO fund (id, name, fund_type, description, current_balance_cents, default_percentage_bp, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	var createdBy any
	if b.CreatedBy != "" {
		createdBy = b.CreatedBy
	}

	balanceCents := b.CurrentBalance.Round(2).Shift(2).IntPart()
	percentageBP := b.DefaultPercentage.Shift(2).IntPart()

	_, err := db.Exec(query, b.ID, b.Name, b.FundType, b.Description, balanceCents, percentageBP, createdBy)
	if err != nil {
		t.Fatalf("Failed to create test fund: %v", err)
	}

	return model.Fund{
		ID:                b.ID,
		Name:              b.Name,
		FundType:          b.FundType,
		Description:       b.Description,
		CurrentBalance:    b.CurrentBalance.Round(2),
		DefaultPercentage: b.DefaultPercentage,
		CreatedBy:         b.CreatedBy,
	}
}

// Convenience functions

// CreateFund creates a fund with the given name and default values.
//
// Example usage:
//
//	fund := testutil.CreateFund(t, db, "General Fund")
func CreateFund(t *testing.T, db *sql.DB, name string) model.Fund {
	t.Helper()
	return NewFund().WithName(name).Build(t, db)
}

// CreateSplitFund creates a fund with a default offering percentage.
//
// Example usage:
//
//	fund := testutil.CreateSplitFund(t, db, "Missions", "20")
func CreateSplitFund(t *testing.T, db *sql.DB, name, percentage string) model.Fund {
	t.Helper()
	return NewFund().WithName(name).WithDefaultPercentage(percentage).Build(t, db)
}

// TransactionBuilder provides a fluent interface for creating test
// transactions, optionally with split rows.
//
// Example usage:
//
//	transaction := testutil.NewTransaction().
//	    WithFund(fund.ID).
//	    WithAmount("50.00").
//	    Build(t, db)
//
//	split := testutil.NewTransaction().
//	    WithAmount("100.00").
//	    WithSplit(fundA.ID, "40.00").
//	    WithSplit(fundB.ID, "60.00").
//	    Build(t, db)
type TransactionBuilder struct {
	ID              string
	FundID          string
	Type            string
	Amount          decimal.Decimal
	Description     string
	CreatedBy       string
	TransactionDate time.Time
	Splits          []model.Split
}

// NewTransaction creates a TransactionBuilder with sensible defaults.
func NewTransaction() *TransactionBuilder {
	return &TransactionBuilder{
		ID:              MakeID(),
		Type:            model.TypeOffering,
		Amount:          decimal.RequireFromString("10.00"),
		Description:     "Test transaction",
		TransactionDate: time.Now().UTC(),
	}
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.ID = id
	return b
}

// WithFund sets the single target fund. Leave unset for split transactions.
func (b *TransactionBuilder) WithFund(fundID string) *TransactionBuilder {
	b.FundID = fundID
	return b
}

// WithType sets the transaction type.
func (b *TransactionBuilder) WithType(transactionType string) *TransactionBuilder {
	b.Type = transactionType
	return b
}

// WithAmount sets the gross amount from a decimal string.
func (b *TransactionBuilder) WithAmount(amount string) *TransactionBuilder {
	b.Amount = decimal.RequireFromString(amount)
	return b
}

// WithDescription sets a custom description.
func (b *TransactionBuilder) WithDescription(description string) *TransactionBuilder {
	b.Description = description
	return b
}

// WithDate sets the transaction date.
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	b.TransactionDate = date
	return b
}

// WithSplit adds a split row allocating part of the amount to a fund.
func (b *TransactionBuilder) WithSplit(fundID, amount string) *TransactionBuilder {
	b.Splits = append(b.Splits, model.Split{
		ID:              MakeID(),
		TransactionID:   b.ID,
		FundID:          fundID,
		AmountAllocated: decimal.RequireFromString(amount),
	})
	return b
}

// Build creates the transaction (and any splits) in the database.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	var fundID any
	if b.FundID != "" {
		fundID = b.FundID
	}
	var createdBy any
	if b.CreatedBy != "" {
		createdBy = b.CreatedBy
	}

	query := `
		INSERT INTO fund_transaction (id, fund_id, type, amount_cents, description, created_by, transaction_date, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, fundID, b.Type, b.Amount.Round(2).Shift(2).IntPart(),
		b.Description, createdBy, b.TransactionDate.UTC().Format(time.RFC3339), model.StatusActive,
	)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	for _, split := range b.Splits {
		splitQuery := `
			INSERT INTO transaction_split (id, transaction_id, fund_id, amount_allocated_cents)
			VALUES (?, ?, ?, ?)
		`
		_, err := db.Exec(splitQuery, split.ID, split.TransactionID, split.FundID, split.AmountAllocated.Round(2).Shift(2).IntPart())
		if err != nil {
			t.Fatalf("Failed to create test split: %v", err)
		}
	}

	return model.Transaction{
		ID:              b.ID,
		FundID:          b.FundID,
		Type:            b.Type,
		Amount:          b.Amount.Round(2),
		Description:     b.Description,
		Status:          model.StatusActive,
		CreatedBy:       b.CreatedBy,
		TransactionDate: b.TransactionDate,
	}
}

// TreasurerBuilder provides a fluent interface for creating test treasurers.
//
// Example usage:
//
//	treasurer := testutil.NewTreasurer().Approved().Build(t, db)
type TreasurerBuilder struct {
	ID         string
	Username   string
	Email      string
	IsApproved bool
	IsAdmin    bool
	IsActive   bool
}

// NewTreasurer creates a TreasurerBuilder with sensible defaults.
func NewTreasurer() *TreasurerBuilder {
	username := "treasurer" + randomAlphanumeric(6)
	return &TreasurerBuilder{
		ID:       MakeID(),
		Username: username,
		Email:    username + "@example.org",
		IsActive: true,
	}
}

// WithID sets a custom ID.
func (b *TreasurerBuilder) WithID(id string) *TreasurerBuilder {
	b.ID = id
	return b
}

// WithUsername sets a custom username.
func (b *TreasurerBuilder) WithUsername(username string) *TreasurerBuilder {
	b.Username = username
	return b
}

// WithEmail sets a custom email address.
func (b *TreasurerBuilder) WithEmail(email string) *TreasurerBuilder {
	b.Email = email
	return b
}

// Approved marks the treasurer as approved.
func (b *TreasurerBuilder) Approved() *TreasurerBuilder {
	b.IsApproved = true
	return b
}

// Admin marks the treasurer as an administrator.
func (b *TreasurerBuilder) Admin() *TreasurerBuilder {
	b.IsAdmin = true
	return b
}

// Inactive marks the treasurer as deactivated.
func (b *TreasurerBuilder) Inactive() *TreasurerBuilder {
	b.IsActive = false
	return b
}

// Build creates the treasurer in the database and returns it.
func (b *TreasurerBuilder) Build(t *testing.T, db *sql.DB) model.Treasurer {
	t.Helper()

	query := `
		INSERT INTO treasurer (id, username, email, is_approved, is_admin, is_active)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Username, b.Email, b.IsApproved, b.IsAdmin, b.IsActive)
	if err != nil {
		t.Fatalf("Failed to create test treasurer: %v", err)
	}

	return model.Treasurer{
		ID:         b.ID,
		Username:   b.Username,
		Email:      b.Email,
		Position:   "Treasurer",
		IsApproved: b.IsApproved,
		IsAdmin:    b.IsAdmin,
		IsActive:   b.IsActive,
	}
}

// SetRemainderFund designates a fund as the quick-split remainder fund.
//
// Example usage:
//
//	fund := testutil.CreateFund(t, db, "General Fund")
//	testutil.SetRemainderFund(t, db, fund.ID)
func SetRemainderFund(t *testing.T, db *sql.DB, fundID string) {
	t.Helper()

	query := `
		INSERT INTO system_setting (id, "key", value, updated_at)
		VALUES (?, 'remainder_fund_id', ?, CURRENT_TIMESTAMP)
		ON CONFLICT("key") DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`

	if _, err := db.Exec(query, MakeID(), fundID); err != nil {
		t.Fatalf("Failed to set remainder fund: %v", err)
	}
}

// FundBalance reads a fund's current balance directly from the database.
//
// Example usage:
//
//	balance := testutil.FundBalance(t, db, fund.ID)
//	assert.True(t, balance.Equal(decimal.RequireFromString("30.00")))
func FundBalance(t *testing.T, db *sql.DB, fundID string) decimal.Decimal {
	t.Helper()

	var cents int64
	err := db.QueryRow("SELECT current_balance_cents FROM fund WHERE id = ?", fundID).Scan(&cents)
	if err != nil {
		t.Fatalf("Failed to read fund balance: %v", err)
	}

	return decimal.New(cents, -2)
}
