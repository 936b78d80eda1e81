package validation

import (
	"strings"

	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/api/request"
)

// ValidateQuickSplit validates a quick split request. The amount's value
// range is checked by the allocation engine; here we only require presence.
func ValidateQuickSplit(req request.QuickSplitRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Amount) == "" {
		errors["amount"] = "amount is required"
	}

	if req.CreatedBy != "" {
		if err := ValidateUUID(req.CreatedBy); err != nil {
			errors["createdBy"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateSpecificDeposit validates an explicit per-fund offering request.
// Individual amounts are parsed by the engine, which discards unusable
// entries; only the structure is checked here.
func ValidateSpecificDeposit(req request.SpecificDepositRequest) error {
	errors := make(map[string]string)

	if len(req.Allocations) == 0 {
		errors["allocations"] = "at least one fund allocation is required"
	}

	for _, allocation := range req.Allocations {
		if err := ValidateUUID(allocation.FundID); err != nil {
			errors["allocations"] = "every allocation needs a valid fund ID"
			break
		}
	}

	if req.CreatedBy != "" {
		if err := ValidateUUID(req.CreatedBy); err != nil {
			errors["createdBy"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateWithdrawal validates a withdrawal request.
//
// Required fields:
//   - fundId: must be a valid UUID
//   - amount: must be present
func ValidateWithdrawal(req request.WithdrawalRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.FundID); err != nil {
		errors["fundId"] = err.Error()
	}

	if strings.TrimSpace(req.Amount) == "" {
		errors["amount"] = "amount is required"
	}

	if req.CreatedBy != "" {
		if err := ValidateUUID(req.CreatedBy); err != nil {
			errors["createdBy"] = err.Error()
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
