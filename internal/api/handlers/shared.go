package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/api/response"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/apperrors"
)

// parseJSON decodes a request body into the given request type.
// Unknown fields are rejected so typos surface as 400s instead of being
// silently dropped.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		return req, fmt.Errorf("invalid JSON body: %w", err)
	}

	return req, nil
}

// respondServiceError maps service-layer errors onto HTTP statuses:
// missing entities become 404, bad input 400, business-rule conflicts 409,
// and everything else 500.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrFundNotFound),
		errors.Is(err, apperrors.ErrTransactionNotFound),
		errors.Is(err, apperrors.ErrTreasurerNotFound):
		response.RespondError(w, http.StatusNotFound, err.Error(), "")

	case errors.Is(err, apperrors.ErrNonPositiveAmount),
		errors.Is(err, apperrors.ErrMissingRequiredField),
		errors.Is(err, apperrors.ErrPercentageOutOfRange),
		errors.Is(err, apperrors.ErrInvalidUUID),
		errors.Is(err, apperrors.ErrEmptyID):
		response.RespondError(w, http.StatusBadRequest, err.Error(), "")

	case errors.Is(err, apperrors.ErrInsufficientFunds),
		errors.Is(err, apperrors.ErrUndoWindowExpired),
		errors.Is(err, apperrors.ErrRemainderFundNotConfigured),
		errors.Is(err, apperrors.ErrNoEligibleFunds),
		errors.Is(err, apperrors.ErrPercentagesNotHundred),
		errors.Is(err, apperrors.ErrDuplicateEntry),
		errors.Is(err, apperrors.ErrFundInUse),
		errors.Is(err, apperrors.ErrTreasurerAlreadyApproved):
		response.RespondError(w, http.StatusConflict, err.Error(), "")

	default:
		response.RespondError(w, http.StatusInternalServerError, "internal error", err.Error())
	}
}
