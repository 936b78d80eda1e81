package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/api/response"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/apperrors"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/repository"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/service"
)

// TransactionHandler handles HTTP requests for the transaction history and
// the undo endpoint.
type TransactionHandler struct {
	reportService   *service.ReportService
	reversalService *service.ReversalService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependencies.
func NewTransactionHandler(reportService *service.ReportService, reversalService *service.ReversalService) *TransactionHandler {
	return &TransactionHandler{
		reportService:   reportService,
		reversalService: reversalService,
	}
}

// ListTransactions handles GET requests for the transaction history, newest
// first. Supports optional type, fund, limit and offset query parameters.
//
// Endpoint: GET /api/transaction?type=OFFERING&fund={uuid}&limit=20&offset=0
// Response: 200 OK with array of TransactionDetail
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	filter := repository.TransactionFilter{
		Type:   r.URL.Query().Get("type"),
		FundID: r.URL.Query().Get("fund"),
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			response.RespondError(w, http.StatusBadRequest, "invalid limit parameter", "")
			return
		}
		filter.Limit = limit
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			response.RespondError(w, http.StatusBadRequest, "invalid offset parameter", "")
			return
		}
		filter.Offset = offset
	}

	transactions, err := h.reportService.ListTransactions(filter)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// GetTransaction handles GET requests for a single transaction with its
// split breakdown.
//
// Endpoint: GET /api/transaction/{uuid}
// Response: 200 OK with TransactionDetail
// Error: 404 Not Found if the transaction does not exist
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	detail, err := h.reportService.GetTransaction(transactionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, detail)
}

// UndoTransaction handles POST requests to reverse a recent transaction.
// Only transactions younger than the undo window can be reversed.
//
// Endpoint: POST /api/transaction/{uuid}/undo
// Response: 200 OK with ReversalResult
// Error: 404 Not Found if the transaction does not exist
// Error: 409 Conflict if the undo window has expired
func (h *TransactionHandler) UndoTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	result, err := h.reversalService.Undo(r.Context(), transactionID, time.Now().UTC())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
