package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/api/request"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/api/response"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/apperrors"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/service"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/validation"
)

// TreasurerHandler handles HTTP requests for treasurer account management.
type TreasurerHandler struct {
	treasurerService *service.TreasurerService
}

// NewTreasurerHandler creates a new TreasurerHandler with the provided service dependency.
func NewTreasurerHandler(treasurerService *service.TreasurerService) *TreasurerHandler {
	return &TreasurerHandler{
		treasurerService: treasurerService,
	}
}

// Register handles POST requests to create a treasurer account. New accounts
// start unapproved and need administrator approval before they can act.
//
// Endpoint: POST /api/treasurer/register
// Request Body: RegisterTreasurerRequest (username, email)
// Response: 201 Created with Treasurer
// Error: 409 Conflict if the username or email is already taken
func (h *TreasurerHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.RegisterTreasurerRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateRegisterTreasurer(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	treasurer, err := h.treasurerService.Register(r.Context(), req.Username, req.Email)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, treasurer)
}

// ListTreasurers handles GET requests for all treasurer accounts, pending
// approval first.
//
// Endpoint: GET /api/treasurer
// Response: 200 OK with array of Treasurer
func (h *TreasurerHandler) ListTreasurers(w http.ResponseWriter, _ *http.Request) {
	treasurers, err := h.treasurerService.List()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTreasurers.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, treasurers)
}

// GetTreasurer handles GET requests for a single treasurer account.
//
// Endpoint: GET /api/treasurer/{uuid}
// Response: 200 OK with Treasurer
// Error: 404 Not Found if the treasurer does not exist
func (h *TreasurerHandler) GetTreasurer(w http.ResponseWriter, r *http.Request) {
	treasurerID := chi.URLParam(r, "uuid")

	treasurer, err := h.treasurerService.Get(treasurerID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, treasurer)
}

// Approve handles POST requests to approve a pending treasurer.
//
// Endpoint: POST /api/treasurer/{uuid}/approve
// Response: 200 OK
// Error: 404 Not Found if the treasurer does not exist
// Error: 409 Conflict if the treasurer is already approved
func (h *TreasurerHandler) Approve(w http.ResponseWriter, r *http.Request) {
	treasurerID := chi.URLParam(r, "uuid")

	if err := h.treasurerService.Approve(r.Context(), treasurerID); err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]string{"message": "Treasurer approved."})
}

// Disable handles POST requests to deactivate a treasurer account.
//
// Endpoint: POST /api/treasurer/{uuid}/disable
// Response: 200 OK
// Error: 404 Not Found if the treasurer does not exist
func (h *TreasurerHandler) Disable(w http.ResponseWriter, r *http.Request) {
	treasurerID := chi.URLParam(r, "uuid")

	if err := h.treasurerService.Disable(r.Context(), treasurerID); err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]string{"message": "Treasurer disabled."})
}

// Enable handles POST requests to reactivate a treasurer account.
//
// Endpoint: POST /api/treasurer/{uuid}/enable
// Response: 200 OK
// Error: 404 Not Found if the treasurer does not exist
func (h *TreasurerHandler) Enable(w http.ResponseWriter, r *http.Request) {
	treasurerID := chi.URLParam(r, "uuid")

	if err := h.treasurerService.Enable(r.Context(), treasurerID); err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]string{"message": "Treasurer enabled."})
}

// UpdateProfile handles PUT requests to update a treasurer's profile fields.
// Only the fields present in the request body are changed.
//
// Endpoint: PUT /api/treasurer/{uuid}
// Request Body: UpdateProfileRequest
// Response: 200 OK with Treasurer
// Error: 404 Not Found if the treasurer does not exist
func (h *TreasurerHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	treasurerID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateProfileRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateProfile(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	treasurer, err := h.treasurerService.Get(treasurerID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if req.FirstName != nil {
		treasurer.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		treasurer.LastName = *req.LastName
	}
	if req.PhoneNumber != nil {
		treasurer.PhoneNumber = *req.PhoneNumber
	}
	if req.ChurchBranch != nil {
		treasurer.ChurchBranch = *req.ChurchBranch
	}
	if req.Email != nil {
		treasurer.Email = *req.Email
	}

	if err := h.treasurerService.UpdateProfile(r.Context(), &treasurer); err != nil {
		respondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, treasurer)
}
