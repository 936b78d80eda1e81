package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/apperrors"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/model"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/repository"
)

var oneHundred = decimal.NewFromInt(100)

// AllocationService turns gross offering amounts into per-fund allocations
// and records withdrawals. Every operation runs as one database transaction:
// fund balance updates and transaction/split rows commit together or not at
// all, and split amounts always sum exactly to the parent amount.
type AllocationService struct {
	db              *sql.DB
	fundRepo        *repository.FundRepository
	transactionRepo *repository.TransactionRepository
	settingRepo     *repository.SettingRepository
}

// NewAllocationService creates a new AllocationService with the provided repository dependencies.
func NewAllocationService(
	db *sql.DB,
	fundRepo *repository.FundRepository,
	transactionRepo *repository.TransactionRepository,
	settingRepo *repository.SettingRepository,
) *AllocationService {
	return &AllocationService{
		db:              db,
		fundRepo:        fundRepo,
		transactionRepo: transactionRepo,
		settingRepo:     settingRepo,
	}
}

// DepositEntry is one fund's share of an explicit multi-fund offering, as
// received from the form: the amount is still a raw string.
type DepositEntry struct {
	FundID string
	Amount string
}

// QuickSplit records a single gross offering and divides it across all funds
// with a positive default percentage. Each allocation is rounded half-up to
// two decimals; the configured remainder fund then absorbs the exact residual,
// which covers both its own intended share and all rounding error. The sum of
// the splits therefore equals the gross amount by construction.
func (s *AllocationService) QuickSplit(ctx context.Context, rawAmount, actorID string) (*model.AllocationResult, error) {
	gross, err := parseAmount(rawAmount)
	if err != nil {
		return nil, err
	}

	var result *model.AllocationResult

	err = runInTx(ctx, s.db, func(tx *sql.Tx) error {
		fundRepo := s.fundRepo.WithTx(tx)
		transactionRepo := s.transactionRepo.WithTx(tx)

		remainderFund, err := s.remainderFund(tx)
		if err != nil {
			return err
		}

		splitFunds, err := fundRepo.ListSplitFunds(remainderFund.ID)
		if err != nil {
			return err
		}

		if len(splitFunds) == 0 && remainderFund.DefaultPercentage.IsZero() {
			return apperrors.ErrNoEligibleFunds
		}

		parent := &model.Transaction{
			ID:              uuid.New().String(),
			Type:            model.TypeOffering,
			Amount:          gross,
			Description:     fmt.Sprintf("Quick split offering (total: %s)", gross.StringFixed(2)),
			Status:          model.StatusActive,
			CreatedBy:       actorID,
			TransactionDate: time.Now().UTC(),
		}

		if err := transactionRepo.Insert(ctx, parent); err != nil {
			return err
		}

		totalAllocated := decimal.Zero
		touched := []string{}

		for _, fund := range splitFunds {
			allocated := gross.Mul(fund.DefaultPercentage).Div(oneHundred).Round(2)
			if !allocated.IsPositive() {
				continue
			}

			if err := fundRepo.AdjustBalance(ctx, fund.ID, allocated); err != nil {
				return err
			}

			split := &model.Split{
				ID:              uuid.New().String(),
				TransactionID:   parent.ID,
				FundID:          fund.ID,
				AmountAllocated: allocated,
			}
			if err := transactionRepo.InsertSplit(ctx, split); err != nil {
				return err
			}

			totalAllocated = totalAllocated.Add(allocated)
			touched = append(touched, fund.ID)
		}

		// The remainder is the exact residual, never recomputed from the
		// remainder fund's own percentage. A negative residual means the
		// configured percentages exceed 100%.
		remainder := gross.Sub(totalAllocated)
		if remainder.IsNegative() {
			return apperrors.ErrPercentagesNotHundred
		}

		if remainder.IsPositive() {
			if err := fundRepo.AdjustBalance(ctx, remainderFund.ID, remainder); err != nil {
				return err
			}

			split := &model.Split{
				ID:              uuid.New().String(),
				TransactionID:   parent.ID,
				FundID:          remainderFund.ID,
				AmountAllocated: remainder,
			}
			if err := transactionRepo.InsertSplit(ctx, split); err != nil {
				return err
			}

			touched = append(touched, remainderFund.ID)
		}

		balances, err := newBalances(fundRepo, touched)
		if err != nil {
			return err
		}

		result = &model.AllocationResult{
			TransactionID: parent.ID,
			Amount:        gross,
			FundBalances:  balances,
			Message:       fmt.Sprintf("Quick split successful. Total %s recorded and split across %d funds.", gross.StringFixed(2), len(touched)),
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// DepositSpecific records an offering with explicit per-fund amounts.
// Unparsable and non-positive entries are discarded. A single surviving
// entry becomes a plain single-fund transaction with no split rows; two or
// more become one parent transaction with a split per fund.
func (s *AllocationService) DepositSpecific(ctx context.Context, entries []DepositEntry, actorID string) (*model.AllocationResult, error) {
	allocations := []allocation{}
	total := decimal.Zero

	for _, entry := range entries {
		amount, err := parseAmount(entry.Amount)
		if err != nil {
			continue
		}
		allocations = append(allocations, allocation{fundID: entry.FundID, amount: amount})
		total = total.Add(amount)
	}

	if !total.IsPositive() {
		return nil, apperrors.ErrNonPositiveAmount
	}

	var result *model.AllocationResult

	err := runInTx(ctx, s.db, func(tx *sql.Tx) error {
		fundRepo := s.fundRepo.WithTx(tx)
		transactionRepo := s.transactionRepo.WithTx(tx)

		// Resolve every target fund before the first write, so validation
		// failures cannot interleave with mutations.
		funds := make([]model.Fund, len(allocations))
		for i, a := range allocations {
			fund, err := fundRepo.GetFund(a.fundID)
			if err != nil {
				return err
			}
			funds[i] = fund
		}

		if len(allocations) == 1 {
			fund := funds[0]
			amount := allocations[0].amount

			transaction := &model.Transaction{
				ID:              uuid.New().String(),
				FundID:          fund.ID,
				Type:            model.TypeOffering,
				Amount:          amount,
				Description:     fmt.Sprintf("Specific offering to %s", fund.Name),
				Status:          model.StatusActive,
				CreatedBy:       actorID,
				TransactionDate: time.Now().UTC(),
			}

			if err := transactionRepo.Insert(ctx, transaction); err != nil {
				return err
			}
			if err := fundRepo.AdjustBalance(ctx, fund.ID, amount); err != nil {
				return err
			}

			balances, err := newBalances(fundRepo, []string{fund.ID})
			if err != nil {
				return err
			}

			result = &model.AllocationResult{
				TransactionID: transaction.ID,
				Amount:        amount,
				FundBalances:  balances,
				Message:       fmt.Sprintf("Specific offering of %s recorded for %s.", amount.StringFixed(2), fund.Name),
			}

			return nil
		}

		names := make([]string, len(funds))
		for i, fund := range funds {
			names[i] = fund.Name
		}

		parent := &model.Transaction{
			ID:              uuid.New().String(),
			Type:            model.TypeOffering,
			Amount:          total,
			Description:     fmt.Sprintf("Specific multi-fund offering (allocated to %s) (total: %s)", fundListText(names), total.StringFixed(2)),
			Status:          model.StatusActive,
			CreatedBy:       actorID,
			TransactionDate: time.Now().UTC(),
		}

		if err := transactionRepo.Insert(ctx, parent); err != nil {
			return err
		}

		touched := []string{}

		for i, a := range allocations {
			if err := fundRepo.AdjustBalance(ctx, a.fundID, a.amount); err != nil {
				return err
			}

			split := &model.Split{
				ID:              uuid.New().String(),
				TransactionID:   parent.ID,
				FundID:          a.fundID,
				AmountAllocated: a.amount,
			}
			if err := transactionRepo.InsertSplit(ctx, split); err != nil {
				return err
			}

			touched = append(touched, funds[i].ID)
		}

		balances, err := newBalances(fundRepo, touched)
		if err != nil {
			return err
		}

		result = &model.AllocationResult{
			TransactionID: parent.ID,
			Amount:        total,
			FundBalances:  balances,
			Message:       fmt.Sprintf("Specific offering of %s successfully split across %d funds.", total.StringFixed(2), len(allocations)),
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Withdraw debits a single fund. The balance check and the decrement are one
// atomic statement inside the transaction, so concurrent withdrawals against
// the same fund cannot drive its balance negative.
func (s *AllocationService) Withdraw(ctx context.Context, fundID, rawAmount, description, actorID string) (*model.AllocationResult, error) {
	amount, err := parseAmount(rawAmount)
	if err != nil {
		return nil, err
	}
	if fundID == "" {
		return nil, apperrors.ErrMissingRequiredField
	}

	var result *model.AllocationResult

	err = runInTx(ctx, s.db, func(tx *sql.Tx) error {
		fundRepo := s.fundRepo.WithTx(tx)
		transactionRepo := s.transactionRepo.WithTx(tx)

		fund, err := fundRepo.GetFund(fundID)
		if err != nil {
			return err
		}

		if err := fundRepo.DebitBalance(ctx, fund.ID, amount); err != nil {
			return err
		}

		if description == "" {
			description = fmt.Sprintf("Withdrawal from %s", fund.Name)
		}

		transaction := &model.Transaction{
			ID:              uuid.New().String(),
			FundID:          fund.ID,
			Type:            model.TypeWithdrawal,
			Amount:          amount,
			Description:     description,
			Status:          model.StatusActive,
			CreatedBy:       actorID,
			TransactionDate: time.Now().UTC(),
		}

		if err := transactionRepo.Insert(ctx, transaction); err != nil {
			return err
		}

		balances, err := newBalances(fundRepo, []string{fund.ID})
		if err != nil {
			return err
		}

		result = &model.AllocationResult{
			TransactionID: transaction.ID,
			Amount:        amount,
			FundBalances:  balances,
			Message:       fmt.Sprintf("%s withdrawn from %s.", amount.StringFixed(2), fund.Name),
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

type allocation struct {
	fundID string
	amount decimal.Decimal
}

// remainderFund resolves the configured remainder fund inside tx.
func (s *AllocationService) remainderFund(tx *sql.Tx) (model.Fund, error) {
	remainderID, err := s.settingRepo.WithTx(tx).Get(repository.SettingKeyRemainderFund)
	if errors.Is(err, apperrors.ErrSettingNotFound) {
		return model.Fund{}, apperrors.ErrRemainderFundNotConfigured
	}
	if err != nil {
		return model.Fund{}, err
	}

	fund, err := s.fundRepo.WithTx(tx).GetFund(remainderID)
	if errors.Is(err, apperrors.ErrFundNotFound) {
		return model.Fund{}, apperrors.ErrRemainderFundNotConfigured
	}
	if err != nil {
		return model.Fund{}, err
	}

	return fund, nil
}

// parseAmount parses a raw monetary string into a positive amount with two
// fractional digits. Grouping separators and surrounding whitespace are
// stripped before parsing.
func parseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if cleaned == "" {
		return decimal.Zero, apperrors.ErrNonPositiveAmount
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, apperrors.ErrNonPositiveAmount
	}

	amount = amount.Round(2)
	if !amount.IsPositive() {
		return decimal.Zero, apperrors.ErrNonPositiveAmount
	}

	return amount, nil
}

// newBalances re-reads the touched funds and returns their post-operation
// balances in touch order, for the caller's UI refresh.
func newBalances(fundRepo *repository.FundRepository, fundIDs []string) ([]model.FundBalance, error) {
	balances := make([]model.FundBalance, 0, len(fundIDs))

	for _, id := range fundIDs {
		fund, err := fundRepo.GetFund(id)
		if err != nil {
			return nil, err
		}
		balances = append(balances, model.FundBalance{
			FundID:     fund.ID,
			FundName:   fund.Name,
			NewBalance: fund.CurrentBalance,
		})
	}

	return balances, nil
}

// fundListText renders fund names the way the confirmation text shows them:
// "A", "A and B", or "A, B, and N other(s)".
func fundListText(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return fmt.Sprintf("%s, %s, and %d other(s)", names[0], names[1], len(names)-2)
	}
}
