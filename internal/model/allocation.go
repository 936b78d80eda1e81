package model

import "github.com/shopspring/decimal"

// AllocationResult is returned by every allocation and withdrawal operation.
// It carries everything the web layer needs to confirm and refresh: the
// created transaction, the new balance of every touched fund, and a
// human-readable confirmation message.
type AllocationResult struct {
	TransactionID string          `json:"transactionId"`
	Amount        decimal.Decimal `json:"amount"`
	FundBalances  []FundBalance   `json:"fundBalances"`
	Message       string          `json:"message"`
}

// ReversalResult is returned by a successful undo: the funds whose balances
// were restored and a confirmation message.
type ReversalResult struct {
	TransactionID string          `json:"transactionId"`
	Amount        decimal.Decimal `json:"amount"`
	FundBalances  []FundBalance   `json:"fundBalances"`
	Message       string          `json:"message"`
}

// Summary is the dashboard aggregate: all funds, the organization-wide
// balance, this month's net growth, the trailing twelve month average, and
// the most recent transactions.
type Summary struct {
	Funds            []Fund              `json:"funds"`
	TotalBalance     decimal.Decimal     `json:"totalBalance"`
	ThisMonthGrowth  decimal.Decimal     `json:"thisMonthGrowth"`
	AvgMonthlyGrowth decimal.Decimal     `json:"avgMonthlyGrowth"`
	Recent           []TransactionDetail `json:"recentTransactions"`
}
