package handlers

import (
	"net/http"

	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/api/request"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/api/response"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/service"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/validation"
)

// AllocationHandler handles HTTP requests for offering deposits and
// withdrawals. All money movement in the API flows through these endpoints.
type AllocationHandler struct {
	allocationService *service.AllocationService
}

// NewAllocationHandler creates a new AllocationHandler with the provided service dependency.
func NewAllocationHandler(allocationService *service.AllocationService) *AllocationHandler {
	return &AllocationHandler{
		allocationService: allocationService,
	}
}

// QuickSplit handles POST requests to record a gross offering split across
// all funds by their default percentages.
//
// Endpoint: POST /api/offering/quick-split
// Request Body: QuickSplitRequest (amount)
// Response: 200 OK with AllocationResult
// Error: 400 Bad Request if the amount is missing or non-positive
// Error: 409 Conflict if no remainder fund is configured, no fund is
// eligible, or the configured percentages exceed 100%
func (h *AllocationHandler) QuickSplit(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.QuickSplitRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateQuickSplit(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := h.allocationService.QuickSplit(r.Context(), req.Amount, req.CreatedBy)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// DepositSpecific handles POST requests to record an offering with explicit
// per-fund amounts.
//
// Endpoint: POST /api/offering/specific
// Request Body: SpecificDepositRequest (allocations)
// Response: 200 OK with AllocationResult
// Error: 400 Bad Request if no allocation carries a positive amount
// Error: 404 Not Found if a target fund does not exist
func (h *AllocationHandler) DepositSpecific(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SpecificDepositRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSpecificDeposit(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	entries := make([]service.DepositEntry, len(req.Allocations))
	for i, a := range req.Allocations {
		entries[i] = service.DepositEntry{FundID: a.FundID, Amount: a.Amount}
	}

	result, err := h.allocationService.DepositSpecific(r.Context(), entries, req.CreatedBy)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// Withdraw handles POST requests to debit a single fund.
//
// Endpoint: POST /api/withdrawal
// Request Body: WithdrawalRequest (fundId, amount, description)
// Response: 200 OK with AllocationResult
// Error: 400 Bad Request if the amount is missing or non-positive
// Error: 404 Not Found if the fund does not exist
// Error: 409 Conflict if the fund balance cannot cover the amount
func (h *AllocationHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.WithdrawalRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateWithdrawal(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := h.allocationService.Withdraw(r.Context(), req.FundID, req.Amount, req.Description, req.CreatedBy)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
