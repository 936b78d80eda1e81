package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/apperrors"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/service"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/testutil"
)

// TestReversalService_Undo tests the undo operation.
//
// WHY: Undo is the only way money leaves the ledger without a withdrawal.
// These tests verify the round trip (deposit then undo restores every
// balance exactly), the time window, and that failures leave no trace.
func TestReversalService_Undo(t *testing.T) {
	t.Run("undoing a quick split restores all balances", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		allocationSvc := testutil.NewTestAllocationService(t, db)
		reversalSvc := testutil.NewTestReversalService(t, db)

		a := testutil.CreateSplitFund(t, db, "Fund A", "33")
		b := testutil.CreateSplitFund(t, db, "Fund B", "33")
		c := testutil.CreateSplitFund(t, db, "Fund C", "34")
		testutil.SetRemainderFund(t, db, c.ID)

		result, err := allocationSvc.QuickSplit(context.Background(), "10.00", "")
		require.NoError(t, err)

		reversal, err := reversalSvc.Undo(context.Background(), result.TransactionID, time.Now().UTC())
		require.NoError(t, err)

		assert.True(t, reversal.Amount.Equal(decimal.RequireFromString("10.00")))
		assert.True(t, testutil.FundBalance(t, db, a.ID).IsZero())
		assert.True(t, testutil.FundBalance(t, db, b.ID).IsZero())
		assert.True(t, testutil.FundBalance(t, db, c.ID).IsZero())

		// Transaction and splits are gone.
		testutil.AssertRowCount(t, db, "fund_transaction", 0)
		testutil.AssertRowCount(t, db, "transaction_split", 0)
	})

	t.Run("undoing a single fund offering removes the deposit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		reversalSvc := testutil.NewTestReversalService(t, db)

		fund := testutil.NewFund().WithName("General").WithBalance("80.00").Build(t, db)
		transaction := testutil.NewTransaction().
			WithFund(fund.ID).
			WithAmount("30.00").
			Build(t, db)

		_, err := reversalSvc.Undo(context.Background(), transaction.ID, time.Now().UTC())
		require.NoError(t, err)

		assert.True(t, testutil.FundBalance(t, db, fund.ID).Equal(decimal.RequireFromString("50.00")))
	})

	t.Run("undoing a withdrawal adds the amount back", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		reversalSvc := testutil.NewTestReversalService(t, db)

		fund := testutil.NewFund().WithName("General").WithBalance("70.00").Build(t, db)
		withdrawal := testutil.NewTransaction().
			WithFund(fund.ID).
			WithType("WITHDRAWAL").
			WithAmount("30.00").
			Build(t, db)

		_, err := reversalSvc.Undo(context.Background(), withdrawal.ID, time.Now().UTC())
		require.NoError(t, err)

		assert.True(t, testutil.FundBalance(t, db, fund.ID).Equal(decimal.RequireFromString("100.00")))
	})

	t.Run("rejects undo at exactly the window boundary", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		reversalSvc := testutil.NewTestReversalService(t, db)

		fund := testutil.NewFund().WithName("General").WithBalance("30.00").Build(t, db)
		created := time.Now().UTC().Add(-service.UndoWindow)
		transaction := testutil.NewTransaction().
			WithFund(fund.ID).
			WithAmount("30.00").
			WithDate(created).
			Build(t, db)

		_, err := reversalSvc.Undo(context.Background(), transaction.ID, time.Now().UTC())
		require.ErrorIs(t, err, apperrors.ErrUndoWindowExpired)

		// Nothing changed.
		assert.True(t, testutil.FundBalance(t, db, fund.ID).Equal(decimal.RequireFromString("30.00")))
		testutil.AssertRowCount(t, db, "fund_transaction", 1)
	})

	t.Run("allows undo just inside the window", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		reversalSvc := testutil.NewTestReversalService(t, db)

		fund := testutil.NewFund().WithName("General").WithBalance("30.00").Build(t, db)
		created := time.Now().UTC().Add(-service.UndoWindow + time.Minute)
		transaction := testutil.NewTransaction().
			WithFund(fund.ID).
			WithAmount("30.00").
			WithDate(created).
			Build(t, db)

		_, err := reversalSvc.Undo(context.Background(), transaction.ID, time.Now().UTC())
		require.NoError(t, err)

		assert.True(t, testutil.FundBalance(t, db, fund.ID).IsZero())
	})

	t.Run("fails for an unknown transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		reversalSvc := testutil.NewTestReversalService(t, db)

		_, err := reversalSvc.Undo(context.Background(), testutil.MakeID(), time.Now().UTC())
		assert.ErrorIs(t, err, apperrors.ErrTransactionNotFound)
	})

	t.Run("same transaction cannot be undone twice", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		reversalSvc := testutil.NewTestReversalService(t, db)

		fund := testutil.NewFund().WithName("General").WithBalance("30.00").Build(t, db)
		transaction := testutil.NewTransaction().
			WithFund(fund.ID).
			WithAmount("30.00").
			Build(t, db)

		_, err := reversalSvc.Undo(context.Background(), transaction.ID, time.Now().UTC())
		require.NoError(t, err)

		_, err = reversalSvc.Undo(context.Background(), transaction.ID, time.Now().UTC())
		assert.ErrorIs(t, err, apperrors.ErrTransactionNotFound)

		assert.True(t, testutil.FundBalance(t, db, fund.ID).IsZero())
	})
}
