package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/apperrors"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/model"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/repository"
)

// Tolerance when checking that default percentages sum to 100%.
var percentageTolerance = decimal.NewFromFloat(0.01)

// FundService handles fund lifecycle and allocation configuration. Fund
// balances themselves are only ever mutated through the allocation and
// reversal services.
type FundService struct {
	db          *sql.DB
	fundRepo    *repository.FundRepository
	settingRepo *repository.SettingRepository
}

// NewFundService creates a new FundService with the provided repository dependencies.
func NewFundService(
	db *sql.DB,
	fundRepo *repository.FundRepository,
	settingRepo *repository.SettingRepository,
) *FundService {
	return &FundService{
		db:          db,
		fundRepo:    fundRepo,
		settingRepo: settingRepo,
	}
}

// CreateFund creates a fund with an optional opening balance.
func (s *FundService) CreateFund(ctx context.Context, name, fundType, description, rawOpeningBalance, actorID string) (*model.Fund, error) {
	opening := decimal.Zero
	if rawOpeningBalance != "" {
		parsed, err := parseAmount(rawOpeningBalance)
		if err != nil {
			return nil, err
		}
		opening = parsed
	}

	fund := &model.Fund{
		ID:             uuid.New().String(),
		Name:           name,
		FundType:       fundType,
		Description:    description,
		CurrentBalance: opening,
		CreatedBy:      actorID,
		DateCreated:    time.Now().UTC(),
	}

	if err := s.fundRepo.Insert(ctx, fund); err != nil {
		return nil, err
	}

	return fund, nil
}

// GetFund retrieves a single fund by ID.
func (s *FundService) GetFund(fundID string) (model.Fund, error) {
	return s.fundRepo.GetFund(fundID)
}

// ListFunds retrieves all funds.
func (s *FundService) ListFunds() ([]model.Fund, error) {
	return s.fundRepo.ListFunds()
}

// TotalBalance returns the organization-wide balance across all funds.
func (s *FundService) TotalBalance() (decimal.Decimal, error) {
	return s.fundRepo.TotalBalance()
}

// DeleteFund removes a fund that no transaction or split references.
func (s *FundService) DeleteFund(ctx context.Context, fundID string) error {
	return s.fundRepo.Delete(ctx, fundID)
}

// SaveDefaultSplit stores the default offering percentages, keyed by fund ID.
// Every percentage must lie in [0, 100] and the total must equal 100% within
// a 0.01 tolerance; otherwise nothing is saved.
func (s *FundService) SaveDefaultSplit(ctx context.Context, percentages map[string]decimal.Decimal) error {
	total := decimal.Zero

	for _, percentage := range percentages {
		if percentage.IsNegative() || percentage.GreaterThan(oneHundred) {
			return apperrors.ErrPercentageOutOfRange
		}
		total = total.Add(percentage)
	}

	if total.Sub(oneHundred).Abs().GreaterThan(percentageTolerance) {
		return apperrors.ErrPercentagesNotHundred
	}

	return runInTx(ctx, s.db, func(tx *sql.Tx) error {
		fundRepo := s.fundRepo.WithTx(tx)

		for fundID, percentage := range percentages {
			if err := fundRepo.UpdatePercentage(ctx, fundID, percentage); err != nil {
				return err
			}
		}

		return nil
	})
}

// SetRemainderFund designates the fund that absorbs quick-split residue.
// The fund must exist.
func (s *FundService) SetRemainderFund(ctx context.Context, fundID string) error {
	if _, err := s.fundRepo.GetFund(fundID); err != nil {
		return err
	}

	return s.settingRepo.Set(ctx, repository.SettingKeyRemainderFund, fundID)
}

// GetRemainderFund returns the currently designated remainder fund.
func (s *FundService) GetRemainderFund() (model.Fund, error) {
	fundID, err := s.settingRepo.Get(repository.SettingKeyRemainderFund)
	if err != nil {
		return model.Fund{}, apperrors.ErrRemainderFundNotConfigured
	}

	fund, err := s.fundRepo.GetFund(fundID)
	if err != nil {
		return model.Fund{}, apperrors.ErrRemainderFundNotConfigured
	}

	return fund, nil
}
