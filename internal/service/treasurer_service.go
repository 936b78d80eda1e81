package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/apperrors"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/model"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/repository"
)

// TreasurerService handles treasurer account registration and the approval
// state machine. Whether a caller may invoke these operations is decided
// upstream; credentials and sessions are not handled here.
type TreasurerService struct {
	treasurerRepo *repository.TreasurerRepository
}

// NewTreasurerService creates a new TreasurerService with the provided repository dependency.
func NewTreasurerService(treasurerRepo *repository.TreasurerRepository) *TreasurerService {
	return &TreasurerService{
		treasurerRepo: treasurerRepo,
	}
}

// Register creates a new treasurer account pending administrator approval.
func (s *TreasurerService) Register(ctx context.Context, username, email string) (*model.Treasurer, error) {
	treasurer := &model.Treasurer{
		ID:          uuid.New().String(),
		Username:    username,
		Email:       email,
		Position:    "Treasurer",
		IsApproved:  false,
		IsActive:    true,
		DateCreated: time.Now().UTC(),
	}

	if err := s.treasurerRepo.Insert(ctx, treasurer); err != nil {
		return nil, err
	}

	return treasurer, nil
}

// Get retrieves a single treasurer by ID.
func (s *TreasurerService) Get(treasurerID string) (model.Treasurer, error) {
	return s.treasurerRepo.Get(treasurerID)
}

// List retrieves all treasurers, pending approval first.
func (s *TreasurerService) List() ([]model.Treasurer, error) {
	return s.treasurerRepo.List()
}

// Approve marks a pending treasurer as approved. Approving an already
// approved treasurer reports ErrTreasurerAlreadyApproved.
func (s *TreasurerService) Approve(ctx context.Context, treasurerID string) error {
	treasurer, err := s.treasurerRepo.Get(treasurerID)
	if err != nil {
		return err
	}

	if treasurer.IsApproved {
		return apperrors.ErrTreasurerAlreadyApproved
	}

	return s.treasurerRepo.SetApproved(ctx, treasurerID, true)
}

// Disable deactivates a treasurer account without deleting its history.
func (s *TreasurerService) Disable(ctx context.Context, treasurerID string) error {
	return s.treasurerRepo.SetActive(ctx, treasurerID, false)
}

// Enable reactivates a previously disabled treasurer account.
func (s *TreasurerService) Enable(ctx context.Context, treasurerID string) error {
	return s.treasurerRepo.SetActive(ctx, treasurerID, true)
}

// UpdateProfile updates the mutable profile fields of a treasurer.
func (s *TreasurerService) UpdateProfile(ctx context.Context, treasurer *model.Treasurer) error {
	return s.treasurerRepo.UpdateProfile(ctx, treasurer)
}
