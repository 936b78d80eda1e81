package request

// QuickSplitRequest carries one gross offering amount to divide across all
// funds by their default percentages.
type QuickSplitRequest struct {
	Amount    string `json:"amount"`
	CreatedBy string `json:"createdBy,omitempty"`
}

// FundAmount is one fund's explicit share of an offering.
type FundAmount struct {
	FundID string `json:"fundId"`
	Amount string `json:"amount"`
}

// SpecificDepositRequest carries explicit per-fund offering amounts.
type SpecificDepositRequest struct {
	Allocations []FundAmount `json:"allocations"`
	CreatedBy   string       `json:"createdBy,omitempty"`
}

// WithdrawalRequest debits a single fund.
type WithdrawalRequest struct {
	FundID      string `json:"fundId"`
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
	CreatedBy   string `json:"createdBy,omitempty"`
}
