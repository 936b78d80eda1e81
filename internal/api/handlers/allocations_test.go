package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/model"
	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/testutil"
)

func TestAllocationHandler_QuickSplit(t *testing.T) {
	setupHandler := func(t *testing.T) (*AllocationHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAllocationService(t, db)
		return NewAllocationHandler(svc), db
	}

	t.Run("records and splits a valid offering", func(t *testing.T) {
		handler, db := setupHandler(t)

		testutil.CreateSplitFund(t, db, "Tithe", "40")
		general := testutil.CreateSplitFund(t, db, "General", "60")
		testutil.SetRemainderFund(t, db, general.ID)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/offering/quick-split",
			map[string]string{"amount": "100.00"})
		w := httptest.NewRecorder()

		handler.QuickSplit(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var result model.AllocationResult
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&result)

		if result.TransactionID == "" {
			t.Error("Expected a transaction ID in the response")
		}
		if len(result.FundBalances) != 2 {
			t.Errorf("Expected 2 fund balances, got %d", len(result.FundBalances))
		}
	})

	t.Run("returns 400 for a missing amount", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/offering/quick-split",
			map[string]string{})
		w := httptest.NewRecorder()

		handler.QuickSplit(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for unknown fields in the body", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/offering/quick-split",
			map[string]string{"amount": "10.00", "bogus": "field"})
		w := httptest.NewRecorder()

		handler.QuickSplit(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 409 when no remainder fund is configured", func(t *testing.T) {
		handler, db := setupHandler(t)

		testutil.CreateSplitFund(t, db, "Tithe", "100")

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/offering/quick-split",
			map[string]string{"amount": "50.00"})
		w := httptest.NewRecorder()

		handler.QuickSplit(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("Expected 409, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestAllocationHandler_DepositSpecific(t *testing.T) {
	setupHandler := func(t *testing.T) (*AllocationHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAllocationService(t, db)
		return NewAllocationHandler(svc), db
	}

	t.Run("records a multi-fund deposit", func(t *testing.T) {
		handler, db := setupHandler(t)

		a := testutil.CreateFund(t, db, "Fund A")
		b := testutil.CreateFund(t, db, "Fund B")

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/offering/specific",
			map[string]any{
				"allocations": []map[string]string{
					{"fundId": a.ID, "amount": "40.00"},
					{"fundId": b.ID, "amount": "60.00"},
				},
			})
		w := httptest.NewRecorder()

		handler.DepositSpecific(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		testutil.AssertRowCount(t, db, "transaction_split", 2)
	})

	t.Run("returns 400 for empty allocations", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/offering/specific",
			map[string]any{"allocations": []map[string]string{}})
		w := httptest.NewRecorder()

		handler.DepositSpecific(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 404 for an unknown fund", func(t *testing.T) {
		handler, db := setupHandler(t)

		a := testutil.CreateFund(t, db, "Fund A")

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/offering/specific",
			map[string]any{
				"allocations": []map[string]string{
					{"fundId": a.ID, "amount": "40.00"},
					{"fundId": testutil.MakeID(), "amount": "60.00"},
				},
			})
		w := httptest.NewRecorder()

		handler.DepositSpecific(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestAllocationHandler_Withdraw(t *testing.T) {
	setupHandler := func(t *testing.T) (*AllocationHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAllocationService(t, db)
		return NewAllocationHandler(svc), db
	}

	t.Run("debits the fund", func(t *testing.T) {
		handler, db := setupHandler(t)

		fund := testutil.NewFund().WithName("General").WithBalance("100.00").Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/withdrawal",
			map[string]string{"fundId": fund.ID, "amount": "30.00"})
		w := httptest.NewRecorder()

		handler.Withdraw(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 409 when the balance cannot cover the amount", func(t *testing.T) {
		handler, db := setupHandler(t)

		fund := testutil.NewFund().WithName("General").WithBalance("10.00").Build(t, db)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/withdrawal",
			map[string]string{"fundId": fund.ID, "amount": "30.00"})
		w := httptest.NewRecorder()

		handler.Withdraw(w, req)

		if w.Code != http.StatusConflict {
			t.Errorf("Expected 409, got %d: %s", w.Code, w.Body.String())
		}
	})
}
