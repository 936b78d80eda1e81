package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/api/request"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/api/response"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/apperrors"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/service"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/validation"
)

// FundHandler handles HTTP requests for fund endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the fundService.
type FundHandler struct {
	fundService *service.FundService
}

// NewFundHandler creates a new FundHandler with the provided service dependency.
func NewFundHandler(fundService *service.FundService) *FundHandler {
	return &FundHandler{
		fundService: fundService,
	}
}

// ListFunds handles GET requests to retrieve all funds.
//
// Endpoint: GET /api/fund
// Response: 200 OK with array of Fund
// Error: 500 Internal Server Error if retrieval fails
func (h *FundHandler) ListFunds(w http.ResponseWriter, _ *http.Request) {
	funds, err := h.fundService.ListFunds()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveFunds.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, funds)
}

// GetFund handles GET requests to retrieve a single fund by ID.
//
// Endpoint: GET /api/fund/{uuid}
// Response: 200 OK with Fund
// Error: 404 Not Found if the fund does not exist
func (h *FundHandler) GetFund(w http.ResponseWriter, r *http.Request) {
	fundID := chi.URLParam(r, "uuid")

	fund, err := h.fundService.GetFund(fundID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, fund)
}

// CreateFund handles POST requests to create a new fund.
//
// Endpoint: POST /api/fund
// Request Body: CreateFundRequest (name, fundType, description, openingBalance)
// Response: 201 Created with Fund
// Error: 400 Bad Request if validation fails
// Error: 409 Conflict if the fund type already exists
func (h *FundHandler) CreateFund(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateFundRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateFund(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	fund, err := h.fundService.CreateFund(r.Context(), req.Name, req.FundType, req.Description, req.OpeningBalance, req.CreatedBy)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, fund)
}

// DeleteFund handles DELETE requests to remove a fund.
// Funds referenced by transactions or splits are protected.
//
// Endpoint: DELETE /api/fund/{uuid}
// Response: 204 No Content
// Error: 404 Not Found if the fund does not exist
// Error: 409 Conflict if the fund is still referenced
func (h *FundHandler) DeleteFund(w http.ResponseWriter, r *http.Request) {
	fundID := chi.URLParam(r, "uuid")

	if err := h.fundService.DeleteFund(r.Context(), fundID); err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// TotalBalance handles GET requests for the organization-wide balance.
//
// Endpoint: GET /api/fund/total-balance
// Response: 200 OK with {"totalBalance": "123.45"}
func (h *FundHandler) TotalBalance(w http.ResponseWriter, _ *http.Request) {
	total, err := h.fundService.TotalBalance()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveFunds.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]decimal.Decimal{"totalBalance": total})
}

// SaveDefaultSplit handles POST requests to store default offering
// percentages. The configuration must sum to 100%.
//
// Endpoint: POST /api/fund/default-split
// Request Body: DefaultSplitRequest (fund ID -> percentage string)
// Response: 200 OK
// Error: 400 Bad Request if a percentage is malformed or out of range
// Error: 409 Conflict if the percentages do not sum to 100%
func (h *FundHandler) SaveDefaultSplit(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.DefaultSplitRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateDefaultSplit(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	percentages := make(map[string]decimal.Decimal, len(req.Percentages))
	for fundID, raw := range req.Percentages {
		percentages[fundID], _ = decimal.NewFromString(raw)
	}

	if err := h.fundService.SaveDefaultSplit(r.Context(), percentages); err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]string{"message": "Default offering split saved successfully."})
}

// SetRemainderFund handles PUT requests to designate the remainder fund.
//
// Endpoint: PUT /api/fund/remainder/{uuid}
// Response: 200 OK
// Error: 404 Not Found if the fund does not exist
func (h *FundHandler) SetRemainderFund(w http.ResponseWriter, r *http.Request) {
	fundID := chi.URLParam(r, "uuid")

	if err := h.fundService.SetRemainderFund(r.Context(), fundID); err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]string{"message": "Remainder fund updated."})
}

// GetRemainderFund handles GET requests for the designated remainder fund.
//
// Endpoint: GET /api/fund/remainder
// Response: 200 OK with Fund
// Error: 409 Conflict if no remainder fund is configured
func (h *FundHandler) GetRemainderFund(w http.ResponseWriter, _ *http.Request) {
	fund, err := h.fundService.GetRemainderFund()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, fund)
}
