package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/model"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/service"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/testutil"
)

func setupTransactionHandler(t *testing.T) (*TransactionHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	reportSvc := testutil.NewTestReportService(t, db)
	reversalSvc := testutil.NewTestReversalService(t, db)
	return NewTransactionHandler(reportSvc, reversalSvc), db
}

func TestTransactionHandler_ListTransactions(t *testing.T) {
	t.Run("returns transactions newest first", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)

		fund := testutil.NewFund().WithName("General").WithBalance("100.00").Build(t, db)
		now := time.Now().UTC()
		testutil.NewTransaction().WithFund(fund.ID).WithAmount("10.00").WithDate(now.Add(-2 * time.Hour)).Build(t, db)
		testutil.NewTransaction().WithFund(fund.ID).WithAmount("20.00").WithDate(now.Add(-time.Hour)).Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/transaction", nil)
		w := httptest.NewRecorder()

		handler.ListTransactions(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var transactions []model.TransactionDetail
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&transactions)

		if len(transactions) != 2 {
			t.Fatalf("Expected 2 transactions, got %d", len(transactions))
		}
		if transactions[0].Amount.String() != "20" {
			t.Errorf("Expected newest transaction (20) first, got %s", transactions[0].Amount)
		}
	})

	t.Run("applies limit and type filters from query parameters", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)

		fund := testutil.NewFund().WithName("General").WithBalance("100.00").Build(t, db)
		testutil.NewTransaction().WithFund(fund.ID).WithAmount("10.00").Build(t, db)
		testutil.NewTransaction().WithFund(fund.ID).WithType("WITHDRAWAL").WithAmount("5.00").Build(t, db)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/transaction",
			map[string]string{"type": "OFFERING", "limit": "5"})
		w := httptest.NewRecorder()

		handler.ListTransactions(w, req)

		var transactions []model.TransactionDetail
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&transactions)

		if len(transactions) != 1 {
			t.Errorf("Expected 1 offering, got %d", len(transactions))
		}
	})

	t.Run("returns 400 for a malformed limit", func(t *testing.T) {
		handler, _ := setupTransactionHandler(t)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/transaction",
			map[string]string{"limit": "many"})
		w := httptest.NewRecorder()

		handler.ListTransactions(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTransactionHandler_GetTransaction(t *testing.T) {
	t.Run("returns the split breakdown", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)

		a := testutil.CreateFund(t, db, "Fund A")
		b := testutil.CreateFund(t, db, "Fund B")
		parent := testutil.NewTransaction().
			WithAmount("100.00").
			WithSplit(a.ID, "40.00").
			WithSplit(b.ID, "60.00").
			Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/transaction/"+parent.ID,
			map[string]string{"uuid": parent.ID})
		w := httptest.NewRecorder()

		handler.GetTransaction(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var detail model.TransactionDetail
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&detail)

		if len(detail.Splits) != 2 {
			t.Errorf("Expected 2 splits, got %d", len(detail.Splits))
		}
	})

	t.Run("returns 404 for an unknown transaction", func(t *testing.T) {
		handler, _ := setupTransactionHandler(t)

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/transaction/"+id,
			map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.GetTransaction(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTransactionHandler_UndoTransaction(t *testing.T) {
	t.Run("undoes a recent transaction", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)

		fund := testutil.NewFund().WithName("General").WithBalance("30.00").Build(t, db)
		transaction := testutil.NewTransaction().WithFund(fund.ID).WithAmount("30.00").Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodPost, "/api/transaction/"+transaction.ID+"/undo",
			map[string]string{"uuid": transaction.ID})
		w := httptest.NewRecorder()

		handler.UndoTransaction(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		testutil.AssertRowCount(t, db, "fund_transaction", 0)
	})

	t.Run("returns 409 when the undo window has expired", func(t *testing.T) {
		handler, db := setupTransactionHandler(t)

		fund := testutil.NewFund().WithName("General").WithBalance("30.00").Build(t, db)
		old := time.Now().UTC().Add(-service.UndoWindow - time.Minute)
		transaction := testutil.NewTransaction().WithFund(fund.ID).WithAmount("30.00").WithDate(old).Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodPost, "/api/transaction/"+transaction.ID+"/undo",
			map[string]string{"uuid": transaction.ID})
		w := httptest.NewRecorder()

		handler.UndoTransaction(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("Expected 409, got %d: %s", w.Code, w.Body.String())
		}
		testutil.AssertRowCount(t, db, "fund_transaction", 1)
	})
}
