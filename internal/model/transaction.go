package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types. Amounts are always positive; direction is carried by the
// type, never by the sign.
const (
	TypeOffering   = "OFFERING"
	TypeWithdrawal = "WITHDRAWAL"
)

// Transaction statuses.
const (
	StatusActive   = "ACTIVE"
	StatusReverted = "REVERTED"
)

// Transaction represents one recorded monetary movement. Exactly one of the
// following holds: FundID is set (single-fund transaction) or one or more
// splits reference it (multi-fund offering, FundID empty).
type Transaction struct {
	ID          string          `json:"id"`
	FundID      string          `json:"fundId,omitempty"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	// OriginalTransactionID links a reversal-as-new-transaction back to the
	// record it reverses. Unused by the delete-based undo path but kept for
	// explicit correction entries.
	OriginalTransactionID string    `json:"originalTransactionId,omitempty"`
	CreatedBy             string    `json:"createdBy"`
	TransactionDate       time.Time `json:"transactionDate"`
}

// Split records one fund's share of a multi-fund transaction. Splits are
// created atomically with their parent and are never mutated afterwards;
// they disappear only when the parent is deleted during a reversal.
type Split struct {
	ID              string          `json:"id"`
	TransactionID   string          `json:"transactionId"`
	FundID          string          `json:"fundId"`
	AmountAllocated decimal.Decimal `json:"amountAllocated"`
}

// TransactionDetail is a transaction with its splits and display data for
// API responses.
type TransactionDetail struct {
	Transaction
	FundName string        `json:"fundName,omitempty"`
	Splits   []SplitDetail `json:"splits,omitempty"`
}

// SplitDetail is a split enriched with its fund name.
type SplitDetail struct {
	Split
	FundName string `json:"fundName"`
}
