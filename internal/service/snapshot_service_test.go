package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/testutil"
)

func TestSnapshotService_Run(t *testing.T) {
	t.Run("snapshots every fund under the month that just ended", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db)

		testutil.NewFund().WithName("A").WithBalance("100.00").Build(t, db)
		testutil.NewFund().WithName("B").WithBalance("250.00").Build(t, db)

		now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
		count, err := svc.Run(context.Background(), now)
		require.NoError(t, err)

		assert.Equal(t, 2, count)
		testutil.AssertRowCount(t, db, "fund_balance_snapshot", 2)

		var month string
		err = db.QueryRow("SELECT DISTINCT month FROM fund_balance_snapshot").Scan(&month)
		require.NoError(t, err)
		assert.Equal(t, "2026-02", month)
	})

	t.Run("re-running for the same month overwrites the snapshot", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db)

		fund := testutil.NewFund().WithName("A").WithBalance("100.00").Build(t, db)

		now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
		_, err := svc.Run(context.Background(), now)
		require.NoError(t, err)

		// Balance changes, then the snapshot is rebuilt.
		_, err = db.Exec("UPDATE fund SET current_balance_cents = 15000 WHERE id = ?", fund.ID)
		require.NoError(t, err)

		_, err = svc.Run(context.Background(), now)
		require.NoError(t, err)

		testutil.AssertRowCount(t, db, "fund_balance_snapshot", 1)

		var cents int64
		err = db.QueryRow("SELECT balance_cents FROM fund_balance_snapshot WHERE fund_id = ?", fund.ID).Scan(&cents)
		require.NoError(t, err)
		assert.True(t, decimal.New(cents, -2).Equal(decimal.RequireFromString("150.00")))
	})

	t.Run("no funds means nothing to snapshot", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db)

		count, err := svc.Run(context.Background(), time.Now().UTC())
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}
