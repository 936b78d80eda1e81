package request

type CreateFundRequest struct {
	Name           string `json:"name"`
	FundType       string `json:"fundType"`
	Description    string `json:"description,omitempty"`
	OpeningBalance string `json:"openingBalance,omitempty"`
	CreatedBy      string `json:"createdBy,omitempty"`
}

// DefaultSplitRequest maps fund IDs to percentage strings. The fund service
// rejects configurations that do not sum to 100%.
type DefaultSplitRequest struct {
	Percentages map[string]string `json:"percentages"`
}
