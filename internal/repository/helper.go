package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// querier is satisfied by both *sql.DB and *sql.Tx. Repositories hold a DB
// plus an optional Tx and pick whichever is active, so the same data access
// code runs standalone or inside an atomic unit.
type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Money is stored as integer cents and percentages as basis points so that
// SQLite's in-place "SET x = x + ?" arithmetic is exact. The conversions
// below are the only place the two representations meet; amounts are
// quantized to two fractional digits before they reach a repository.

func centsToDecimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

func decimalToCents(d decimal.Decimal) int64 {
	return d.Round(2).Shift(2).IntPart()
}

func bpToPercent(bp int64) decimal.Decimal {
	return decimal.New(bp, -2)
}

func percentToBP(p decimal.Decimal) int64 {
	return p.Round(2).Shift(2).IntPart()
}

// ParseTime parses a timestamp in RFC3339, SQLite default, or date-only format.
func ParseTime(str string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse time %q", str)
}

// isUniqueViolation reports whether err is a SQLite unique constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
