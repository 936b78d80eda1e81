package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/apperrors"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/testutil"
)

func TestFundService_CreateFund(t *testing.T) {
	t.Run("creates fund with zero balance by default", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)

		fund, err := svc.CreateFund(context.Background(), "Building Fund", "BUILDING", "Roof and walls", "", "")
		require.NoError(t, err)

		assert.True(t, fund.CurrentBalance.IsZero())
		testutil.AssertRowCount(t, db, "fund", 1)
	})

	t.Run("creates fund with an opening balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)

		fund, err := svc.CreateFund(context.Background(), "Building Fund", "BUILDING", "", "250.00", "")
		require.NoError(t, err)

		assert.True(t, fund.CurrentBalance.Equal(decimal.RequireFromString("250.00")))
		assert.True(t, testutil.FundBalance(t, db, fund.ID).Equal(decimal.RequireFromString("250.00")))
	})

	t.Run("rejects duplicate fund type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)

		_, err := svc.CreateFund(context.Background(), "Fund A", "TITHE", "", "", "")
		require.NoError(t, err)

		_, err = svc.CreateFund(context.Background(), "Fund B", "TITHE", "", "", "")
		assert.ErrorIs(t, err, apperrors.ErrDuplicateEntry)
	})
}

func TestFundService_DeleteFund(t *testing.T) {
	t.Run("deletes an unreferenced fund", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)

		fund := testutil.CreateFund(t, db, "Temp Fund")

		require.NoError(t, svc.DeleteFund(context.Background(), fund.ID))
		testutil.AssertRowCount(t, db, "fund", 0)
	})

	t.Run("refuses to delete a fund with transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)

		fund := testutil.NewFund().WithName("General").WithBalance("10.00").Build(t, db)
		testutil.NewTransaction().WithFund(fund.ID).WithAmount("10.00").Build(t, db)

		err := svc.DeleteFund(context.Background(), fund.ID)
		assert.ErrorIs(t, err, apperrors.ErrFundInUse)
		testutil.AssertRowCount(t, db, "fund", 1)
	})

	t.Run("refuses to delete a fund referenced by splits", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)

		fund := testutil.CreateFund(t, db, "Fund A")
		other := testutil.CreateFund(t, db, "Fund B")
		testutil.NewTransaction().
			WithAmount("100.00").
			WithSplit(fund.ID, "40.00").
			WithSplit(other.ID, "60.00").
			Build(t, db)

		err := svc.DeleteFund(context.Background(), fund.ID)
		assert.ErrorIs(t, err, apperrors.ErrFundInUse)
	})
}

// TestFundService_SaveDefaultSplit tests the default percentage configuration.
//
// WHY: The quick split trusts this configuration to sum to 100%. Accepting a
// bad configuration here would silently corrupt every later offering split.
func TestFundService_SaveDefaultSplit(t *testing.T) {
	t.Run("saves percentages that sum to 100", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)

		a := testutil.CreateFund(t, db, "Fund A")
		b := testutil.CreateFund(t, db, "Fund B")

		err := svc.SaveDefaultSplit(context.Background(), map[string]decimal.Decimal{
			a.ID: decimal.RequireFromString("40"),
			b.ID: decimal.RequireFromString("60"),
		})
		require.NoError(t, err)

		funds, err := svc.ListFunds()
		require.NoError(t, err)
		for _, fund := range funds {
			if fund.ID == a.ID {
				assert.True(t, fund.DefaultPercentage.Equal(decimal.RequireFromString("40")))
			}
		}
	})

	t.Run("accepts fractional percentages within tolerance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)

		a := testutil.CreateFund(t, db, "Fund A")
		b := testutil.CreateFund(t, db, "Fund B")
		c := testutil.CreateFund(t, db, "Fund C")

		err := svc.SaveDefaultSplit(context.Background(), map[string]decimal.Decimal{
			a.ID: decimal.RequireFromString("33.33"),
			b.ID: decimal.RequireFromString("33.33"),
			c.ID: decimal.RequireFromString("33.33"),
		})
		assert.NoError(t, err)
	})

	t.Run("rejects percentages not summing to 100", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)

		a := testutil.CreateFund(t, db, "Fund A")
		b := testutil.CreateFund(t, db, "Fund B")

		err := svc.SaveDefaultSplit(context.Background(), map[string]decimal.Decimal{
			a.ID: decimal.RequireFromString("40"),
			b.ID: decimal.RequireFromString("50"),
		})
		assert.ErrorIs(t, err, apperrors.ErrPercentagesNotHundred)
	})

	t.Run("rejects out-of-range percentages", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)

		a := testutil.CreateFund(t, db, "Fund A")
		b := testutil.CreateFund(t, db, "Fund B")

		err := svc.SaveDefaultSplit(context.Background(), map[string]decimal.Decimal{
			a.ID: decimal.RequireFromString("150"),
			b.ID: decimal.RequireFromString("-50"),
		})
		assert.ErrorIs(t, err, apperrors.ErrPercentageOutOfRange)
	})
}

func TestFundService_RemainderFund(t *testing.T) {
	t.Run("set and get round trip", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)

		fund := testutil.CreateFund(t, db, "General")

		require.NoError(t, svc.SetRemainderFund(context.Background(), fund.ID))

		got, err := svc.GetRemainderFund()
		require.NoError(t, err)
		assert.Equal(t, fund.ID, got.ID)
	})

	t.Run("set rejects unknown fund", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)

		err := svc.SetRemainderFund(context.Background(), testutil.MakeID())
		assert.ErrorIs(t, err, apperrors.ErrFundNotFound)
	})

	t.Run("get fails when not configured", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)

		_, err := svc.GetRemainderFund()
		assert.ErrorIs(t, err, apperrors.ErrRemainderFundNotConfigured)
	})

	t.Run("reassigning replaces the previous designation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestFundService(t, db)

		first := testutil.CreateFund(t, db, "General")
		second := testutil.CreateFund(t, db, "Missions")

		require.NoError(t, svc.SetRemainderFund(context.Background(), first.ID))
		require.NoError(t, svc.SetRemainderFund(context.Background(), second.ID))

		got, err := svc.GetRemainderFund()
		require.NoError(t, err)
		assert.Equal(t, second.ID, got.ID)
		testutil.AssertRowCount(t, db, "system_setting", 1)
	})
}

func TestFundService_TotalBalance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestFundService(t, db)

	testutil.NewFund().WithName("A").WithBalance("10.50").Build(t, db)
	testutil.NewFund().WithName("B").WithBalance("20.25").Build(t, db)

	total, err := svc.TotalBalance()
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("30.75")))
}
