package service_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/repository"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/testutil"
)

func TestReportService_NetGrowth(t *testing.T) {
	t.Run("offerings minus withdrawals inside the window", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReportService(t, db)

		fund := testutil.NewFund().WithName("General").WithBalance("500.00").Build(t, db)

		now := time.Now().UTC()
		testutil.NewTransaction().WithFund(fund.ID).WithAmount("100.00").WithDate(now.Add(-time.Hour)).Build(t, db)
		testutil.NewTransaction().WithFund(fund.ID).WithAmount("50.00").WithDate(now.Add(-2 * time.Hour)).Build(t, db)
		testutil.NewTransaction().WithFund(fund.ID).WithType("WITHDRAWAL").WithAmount("30.00").WithDate(now.Add(-time.Hour)).Build(t, db)

		growth, err := svc.NetGrowth(now.Add(-24*time.Hour), now)
		require.NoError(t, err)

		assert.True(t, growth.Equal(decimal.RequireFromString("120.00")))
	})

	t.Run("transactions outside the window are excluded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReportService(t, db)

		fund := testutil.NewFund().WithName("General").Build(t, db)

		now := time.Now().UTC()
		testutil.NewTransaction().WithFund(fund.ID).WithAmount("100.00").WithDate(now.Add(-48 * time.Hour)).Build(t, db)
		testutil.NewTransaction().WithFund(fund.ID).WithAmount("40.00").WithDate(now.Add(-time.Hour)).Build(t, db)

		growth, err := svc.NetGrowth(now.Add(-24*time.Hour), now)
		require.NoError(t, err)

		assert.True(t, growth.Equal(decimal.RequireFromString("40.00")))
	})

	t.Run("zero when no transactions exist", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReportService(t, db)

		now := time.Now().UTC()
		growth, err := svc.NetGrowth(now.Add(-24*time.Hour), now)
		require.NoError(t, err)

		assert.True(t, growth.IsZero())
	})
}

func TestReportService_Summary(t *testing.T) {
	t.Run("aggregates funds, balances and recent transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReportService(t, db)

		fund := testutil.NewFund().WithName("General").WithBalance("300.00").Build(t, db)
		other := testutil.NewFund().WithName("Missions").WithBalance("200.00").Build(t, db)

		now := time.Now().UTC()
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

		// One offering this month, one in an earlier month.
		testutil.NewTransaction().WithFund(fund.ID).WithAmount("120.00").WithDate(monthStart.Add(time.Hour)).Build(t, db)
		testutil.NewTransaction().WithFund(other.ID).WithAmount("60.00").WithDate(monthStart.AddDate(0, -2, 0)).Build(t, db)

		summary, err := svc.Summary(now)
		require.NoError(t, err)

		assert.Len(t, summary.Funds, 2)
		assert.True(t, summary.TotalBalance.Equal(decimal.RequireFromString("500.00")))
		assert.True(t, summary.ThisMonthGrowth.Equal(decimal.RequireFromString("120.00")))
		// 60.00 of growth spread over 12 months.
		assert.True(t, summary.AvgMonthlyGrowth.Equal(decimal.RequireFromString("5.00")))
		assert.Len(t, summary.Recent, 2)
	})

	t.Run("recent list is capped at five, newest first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReportService(t, db)

		fund := testutil.NewFund().WithName("General").Build(t, db)

		now := time.Now().UTC()
		for i := 0; i < 7; i++ {
			testutil.NewTransaction().
				WithFund(fund.ID).
				WithAmount("10.00").
				WithDate(now.Add(-time.Duration(i) * time.Hour)).
				Build(t, db)
		}

		summary, err := svc.Summary(now)
		require.NoError(t, err)

		require.Len(t, summary.Recent, 5)
		for i := 1; i < len(summary.Recent); i++ {
			assert.False(t, summary.Recent[i].TransactionDate.After(summary.Recent[i-1].TransactionDate),
				"recent transactions should be newest first")
		}
	})
}

func TestReportService_ListTransactions(t *testing.T) {
	t.Run("filters by type and fund", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReportService(t, db)

		a := testutil.NewFund().WithName("Fund A").WithBalance("100.00").Build(t, db)
		b := testutil.NewFund().WithName("Fund B").WithBalance("100.00").Build(t, db)

		testutil.NewTransaction().WithFund(a.ID).WithAmount("10.00").Build(t, db)
		testutil.NewTransaction().WithFund(a.ID).WithType("WITHDRAWAL").WithAmount("5.00").Build(t, db)
		testutil.NewTransaction().WithFund(b.ID).WithAmount("20.00").Build(t, db)

		offerings, err := svc.ListTransactions(repository.TransactionFilter{Type: "OFFERING"})
		require.NoError(t, err)
		assert.Len(t, offerings, 2)

		fundA, err := svc.ListTransactions(repository.TransactionFilter{FundID: a.ID})
		require.NoError(t, err)
		assert.Len(t, fundA, 2)
	})

	t.Run("fund filter matches split membership", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReportService(t, db)

		a := testutil.CreateFund(t, db, "Fund A")
		b := testutil.CreateFund(t, db, "Fund B")

		testutil.NewTransaction().
			WithAmount("100.00").
			WithSplit(a.ID, "40.00").
			WithSplit(b.ID, "60.00").
			Build(t, db)

		forA, err := svc.ListTransactions(repository.TransactionFilter{FundID: a.ID})
		require.NoError(t, err)
		require.Len(t, forA, 1)
		assert.Len(t, forA[0].Splits, 2)
	})
}

func TestReportService_GetTransaction(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestReportService(t, db)

	a := testutil.CreateFund(t, db, "Fund A")
	b := testutil.CreateFund(t, db, "Fund B")
	parent := testutil.NewTransaction().
		WithAmount("100.00").
		WithSplit(a.ID, "40.00").
		WithSplit(b.ID, "60.00").
		Build(t, db)

	detail, err := svc.GetTransaction(parent.ID)
	require.NoError(t, err)

	assert.Equal(t, parent.ID, detail.ID)
	require.Len(t, detail.Splits, 2)
	assert.Equal(t, a.Name, detail.Splits[0].FundName)
}
