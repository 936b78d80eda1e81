package service

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/model"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/repository"
)

// ReportService aggregates balances and growth figures for the dashboard.
// All figures are derived from active transactions only.
type ReportService struct {
	fundRepo        *repository.FundRepository
	transactionRepo *repository.TransactionRepository
}

// NewReportService creates a new ReportService with the provided repository dependencies.
func NewReportService(
	fundRepo *repository.FundRepository,
	transactionRepo *repository.TransactionRepository,
) *ReportService {
	return &ReportService{
		fundRepo:        fundRepo,
		transactionRepo: transactionRepo,
	}
}

// NetGrowth returns offerings minus withdrawals over [start, end).
func (s *ReportService) NetGrowth(start, end time.Time) (decimal.Decimal, error) {
	income, err := s.transactionRepo.SumByType(model.TypeOffering, start, end)
	if err != nil {
		return decimal.Zero, err
	}

	expense, err := s.transactionRepo.SumByType(model.TypeWithdrawal, start, end)
	if err != nil {
		return decimal.Zero, err
	}

	return income.Sub(expense), nil
}

// Summary builds the dashboard aggregate: all funds, the organization-wide
// balance, net growth for the current month so far, the average monthly net
// growth over the twelve full months before the current one, and the five
// most recent transactions.
func (s *ReportService) Summary(now time.Time) (*model.Summary, error) {
	funds, err := s.fundRepo.ListFunds()
	if err != nil {
		return nil, err
	}

	total, err := s.fundRepo.TotalBalance()
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	thisMonth, err := s.NetGrowth(monthStart, now)
	if err != nil {
		return nil, err
	}

	avg, err := s.averageMonthlyGrowth(monthStart)
	if err != nil {
		return nil, err
	}

	recent, err := s.transactionRepo.List(repository.TransactionFilter{Limit: 5})
	if err != nil {
		return nil, err
	}

	return &model.Summary{
		Funds:            funds,
		TotalBalance:     total,
		ThisMonthGrowth:  thisMonth,
		AvgMonthlyGrowth: avg,
		Recent:           recent,
	}, nil
}

// averageMonthlyGrowth averages net growth over the twelve full months
// ending at currentMonthStart. The twelve month queries are independent, so
// they fan out concurrently.
func (s *ReportService) averageMonthlyGrowth(currentMonthStart time.Time) (decimal.Decimal, error) {
	const months = 12

	var (
		g       errgroup.Group
		mu      sync.Mutex
		growths = make([]decimal.Decimal, months)
	)

	windowStart := currentMonthStart.AddDate(0, -months, 0)

	for i := 0; i < months; i++ {
		i := i
		g.Go(func() error {
			start := windowStart.AddDate(0, i, 0)
			end := windowStart.AddDate(0, i+1, 0)

			growth, err := s.NetGrowth(start, end)
			if err != nil {
				return err
			}

			mu.Lock()
			growths[i] = growth
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, growth := range growths {
		total = total.Add(growth)
	}

	return total.Div(decimal.NewFromInt(months)).Round(2), nil
}

// ListTransactions retrieves transactions with optional filters.
func (s *ReportService) ListTransactions(filter repository.TransactionFilter) ([]model.TransactionDetail, error) {
	return s.transactionRepo.List(filter)
}

// GetTransaction retrieves a single transaction with its split breakdown.
func (s *ReportService) GetTransaction(transactionID string) (model.TransactionDetail, error) {
	return s.transactionRepo.GetDetail(transactionID)
}
