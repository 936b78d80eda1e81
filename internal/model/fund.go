package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fund represents a named bucket of money with an accounting balance.
// CurrentBalance is derived data: it always equals the signed sum of all
// active transaction and split effects against the fund, and is only ever
// mutated through the allocation and reversal services.
type Fund struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	FundType          string          `json:"fundType"`
	Description       string          `json:"description,omitempty"`
	CurrentBalance    decimal.Decimal `json:"currentBalance"`
	DefaultPercentage decimal.Decimal `json:"defaultPercentage"`
	CreatedBy         string          `json:"createdBy,omitempty"`
	DateCreated       time.Time       `json:"dateCreated,omitempty"`
}

// FundBalance is the per-fund balance slice returned to callers after an
// allocation or reversal, so the UI can refresh without a second round trip.
type FundBalance struct {
	FundID     string          `json:"fundId"`
	FundName   string          `json:"fundName"`
	NewBalance decimal.Decimal `json:"newBalance"`
}

// FundBalanceSnapshot is one fund's materialized month-end balance.
type FundBalanceSnapshot struct {
	ID        string          `json:"id"`
	FundID    string          `json:"fundId"`
	Month     string          `json:"month"` // YYYY-MM
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
}
