package validation

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/api/request"
)

// ValidateCreateFund validates a fund creation request.
//
// Required fields:
//   - name: non-empty, at most 100 characters
//   - fundType: non-empty, at most 50 characters
//
// Optional fields:
//   - openingBalance: must parse as a non-negative decimal if provided
func ValidateCreateFund(req request.CreateFundRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	} else if len(req.Name) > 100 {
		errors["name"] = "name must be 100 characters or less"
	}

	if strings.TrimSpace(req.FundType) == "" {
		errors["fundType"] = "fundType is required"
	} else if len(req.FundType) > 50 {
		errors["fundType"] = "fundType must be 50 characters or less"
	}

	if req.OpeningBalance != "" {
		balance, err := decimal.NewFromString(strings.ReplaceAll(req.OpeningBalance, ",", ""))
		if err != nil {
			errors["openingBalance"] = "openingBalance must be a decimal amount"
		} else if balance.IsNegative() {
			errors["openingBalance"] = "openingBalance cannot be negative"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateDefaultSplit validates a default split configuration request.
// Each percentage must parse as a decimal; range and 100%-total checks are
// business rules enforced by the fund service.
func ValidateDefaultSplit(req request.DefaultSplitRequest) error {
	errors := make(map[string]string)

	if len(req.Percentages) == 0 {
		errors["percentages"] = "at least one percentage is required"
	}

	for fundID, raw := range req.Percentages {
		if err := ValidateUUID(fundID); err != nil {
			errors[fundID] = err.Error()
			continue
		}
		if _, err := decimal.NewFromString(raw); err != nil {
			errors[fundID] = "percentage must be a decimal number"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
