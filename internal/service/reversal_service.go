package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/apperrors"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/model"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/repository"
)

// UndoWindow is how long after creation a transaction may still be reversed.
// A business-rule deadline, not a concurrency control.
const UndoWindow = 5 * time.Minute

// ReversalService undoes recent transactions: it applies the inverse balance
// effect to every affected fund and deletes the transaction (splits cascade),
// all inside one database transaction.
type ReversalService struct {
	db              *sql.DB
	fundRepo        *repository.FundRepository
	transactionRepo *repository.TransactionRepository
}

// NewReversalService creates a new ReversalService with the provided repository dependencies.
func NewReversalService(
	db *sql.DB,
	fundRepo *repository.FundRepository,
	transactionRepo *repository.TransactionRepository,
) *ReversalService {
	return &ReversalService{
		db:              db,
		fundRepo:        fundRepo,
		transactionRepo: transactionRepo,
	}
}

// Undo reverses the transaction's balance effect and removes it. Reversals
// at or past the undo window boundary are rejected. On any failure the whole
// unit rolls back; a partially reversed split is never observable.
func (s *ReversalService) Undo(ctx context.Context, transactionID string, now time.Time) (*model.ReversalResult, error) {
	var result *model.ReversalResult

	err := runInTx(ctx, s.db, func(tx *sql.Tx) error {
		fundRepo := s.fundRepo.WithTx(tx)
		transactionRepo := s.transactionRepo.WithTx(tx)

		transaction, err := transactionRepo.Get(transactionID)
		if err != nil {
			return err
		}

		if now.Sub(transaction.TransactionDate) >= UndoWindow {
			return apperrors.ErrUndoWindowExpired
		}

		splits, err := transactionRepo.GetSplits(transactionID)
		if err != nil {
			return err
		}

		touched := []string{}

		switch {
		case len(splits) > 0:
			// Split transactions are always offerings: take each
			// allocation back out of its fund.
			for _, split := range splits {
				if err := fundRepo.AdjustBalance(ctx, split.FundID, split.AmountAllocated.Neg()); err != nil {
					return err
				}
				touched = append(touched, split.FundID)
			}

		case transaction.FundID != "":
			delta := transaction.Amount.Neg()
			if transaction.Type == model.TypeWithdrawal {
				delta = transaction.Amount
			}
			if err := fundRepo.AdjustBalance(ctx, transaction.FundID, delta); err != nil {
				return err
			}
			touched = append(touched, transaction.FundID)

		default:
			// A transaction must reference a fund or carry splits.
			return apperrors.ErrDataInconsistency
		}

		if err := transactionRepo.Delete(ctx, transactionID); err != nil {
			return err
		}

		balances, err := newBalances(fundRepo, touched)
		if err != nil {
			return err
		}

		result = &model.ReversalResult{
			TransactionID: transactionID,
			Amount:        transaction.Amount,
			FundBalances:  balances,
			Message:       fmt.Sprintf("Transaction of %s has been successfully undone.", transaction.Amount.StringFixed(2)),
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
