package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/repository"
)

// SnapshotService materializes month-end fund balances into the
// fund_balance_snapshot table. The scheduler runs it at the start of each
// month; re-running for the same month overwrites the previous snapshot.
type SnapshotService struct {
	fundRepo     *repository.FundRepository
	snapshotRepo *repository.SnapshotRepository
}

// NewSnapshotService creates a new SnapshotService with the provided repository dependencies.
func NewSnapshotService(
	fundRepo *repository.FundRepository,
	snapshotRepo *repository.SnapshotRepository,
) *SnapshotService {
	return &SnapshotService{
		fundRepo:     fundRepo,
		snapshotRepo: snapshotRepo,
	}
}

// Run snapshots every fund's current balance under the month that just
// ended relative to now. Returns the number of funds snapshotted.
func (s *SnapshotService) Run(ctx context.Context, now time.Time) (int, error) {
	month := now.AddDate(0, -1, 0).Format("2006-01")

	funds, err := s.fundRepo.ListFunds()
	if err != nil {
		return 0, err
	}

	g, ctx := errgroup.WithContext(ctx)

	for _, fund := range funds {
		fund := fund
		g.Go(func() error {
			return s.snapshotRepo.Upsert(ctx, fund.ID, month, fund.CurrentBalance)
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	return len(funds), nil
}
