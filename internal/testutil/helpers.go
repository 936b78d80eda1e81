package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/repository"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/service"
)

func NewTestFundService(t *testing.T, db *sql.DB) *service.FundService {
	t.Helper()

	fundRepo := repository.NewFundRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	return service.NewFundService(
		db,
		fundRepo,
		settingRepo,
	)
}

func NewTestAllocationService(t *testing.T, db *sql.DB) *service.AllocationService {
	t.Helper()

	fundRepo := repository.NewFundRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	return service.NewAllocationService(
		db,
		fundRepo,
		transactionRepo,
		settingRepo,
	)
}

func NewTestReversalService(t *testing.T, db *sql.DB) *service.ReversalService {
	t.Helper()

	fundRepo := repository.NewFundRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	return service.NewReversalService(
		db,
		fundRepo,
		transactionRepo,
	)
}

func NewTestReportService(t *testing.T, db *sql.DB) *service.ReportService {
	t.Helper()

	fundRepo := repository.NewFundRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	return service.NewReportService(
		fundRepo,
		transactionRepo,
	)
}

func NewTestTreasurerService(t *testing.T, db *sql.DB) *service.TreasurerService {
	t.Helper()

	treasurerRepo := repository.NewTreasurerRepository(db)

	return service.NewTreasurerService(treasurerRepo)
}

func NewTestSnapshotService(t *testing.T, db *sql.DB) *service.SnapshotService {
	t.Helper()

	fundRepo := repository.NewFundRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	return service.NewSnapshotService(
		fundRepo,
		snapshotRepo,
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeFundName generates a unique fund name for testing.
//
// Example usage:
//
//	name := testutil.MakeFundName("Building Fund")
//	// Returns: "Building Fund XYZ789"
func MakeFundName(base string) string {
	if base == "" {
		base = "Fund"
	}
	return base + " " + randomAlphanumeric(6)
}

// MakeFundType generates a unique fund type for testing. Fund types carry a
// UNIQUE constraint, so every test fund needs its own.
//
// Example usage:
//
//	fundType := testutil.MakeFundType("TITHE")
//	// Returns: "TITHE_AB12CD"
func MakeFundType(base string) string {
	if base == "" {
		base = "TYPE"
	}
	return base + "_" + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
