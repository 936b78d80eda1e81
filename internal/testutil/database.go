package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the goose migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Treasurer table
		CREATE TABLE treasurer (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			username VARCHAR(30) NOT NULL UNIQUE,
			email VARCHAR(254) NOT NULL UNIQUE,
			first_name VARCHAR(30),
			last_name VARCHAR(30),
			phone_number VARCHAR(15),
			church_branch VARCHAR(100),
			position VARCHAR(100) NOT NULL DEFAULT 'Treasurer',
			is_approved BOOLEAN NOT NULL DEFAULT FALSE,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			date_created DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		-- Fund table (money in integer cents, percentages in basis points)
		CREATE TABLE fund (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			fund_type VARCHAR(50) NOT NULL UNIQUE,
			description TEXT NOT NULL DEFAULT '',
			current_balance_cents INTEGER NOT NULL DEFAULT 0,
			default_percentage_bp INTEGER NOT NULL DEFAULT 0,
			created_by VARCHAR(36),
			date_created DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(created_by) REFERENCES treasurer(id)
		);

		-- Transaction table (fund_id NULL when split across funds)
		CREATE TABLE fund_transaction (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			fund_id VARCHAR(36),
			type VARCHAR(20) NOT NULL,
			amount_cents INTEGER NOT NULL CHECK (amount_cents > 0),
			description TEXT NOT NULL DEFAULT '',
			created_by VARCHAR(36),
			transaction_date DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			status VARCHAR(10) NOT NULL DEFAULT 'ACTIVE',
			original_transaction_id VARCHAR(36) REFERENCES fund_transaction(id),
			FOREIGN KEY(fund_id) REFERENCES fund(id),
			FOREIGN KEY(created_by) REFERENCES treasurer(id)
		);

		-- Split table (cascades with parent transaction)
		CREATE TABLE transaction_split (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			transaction_id VARCHAR(36) NOT NULL,
			fund_id VARCHAR(36) NOT NULL,
			amount_allocated_cents INTEGER NOT NULL CHECK (amount_allocated_cents > 0),
			FOREIGN KEY(transaction_id) REFERENCES fund_transaction(id) ON DELETE CASCADE,
			FOREIGN KEY(fund_id) REFERENCES fund(id) ON DELETE RESTRICT
		);

		-- System setting table
		CREATE TABLE system_setting (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			"key" VARCHAR(50) NOT NULL UNIQUE,
			value VARCHAR(255) NOT NULL,
			updated_at DATETIME
		);

		-- Month-end balance snapshot table
		CREATE TABLE fund_balance_snapshot (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			fund_id VARCHAR(36) NOT NULL,
			month VARCHAR(7) NOT NULL,
			balance_cents INTEGER NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(fund_id) REFERENCES fund(id) ON DELETE CASCADE,
			CONSTRAINT uq_fund_snapshot_month UNIQUE (fund_id, month)
		);

		-- Indexes for performance
		CREATE INDEX ix_fund_transaction_fund_id ON fund_transaction(fund_id);
		CREATE INDEX ix_fund_transaction_date ON fund_transaction(transaction_date);
		CREATE INDEX ix_fund_transaction_type ON fund_transaction(type);
		CREATE INDEX ix_fund_transaction_status ON fund_transaction(status);
		CREATE INDEX ix_transaction_split_transaction_id ON transaction_split(transaction_id);
		CREATE INDEX ix_transaction_split_fund_id ON transaction_split(fund_id);
		CREATE INDEX ix_fund_balance_snapshot_month ON fund_balance_snapshot(month);
	`

	_, err := db.Exec(schema)
	return err
}

// CleanDatabase truncates all tables in dependency order.
// Useful for reusing the same database across multiple tests.
func CleanDatabase(t *testing.T, db *sql.DB) {
	t.Helper()

	// Order matters: delete children before parents due to foreign keys
	tables := []string{
		"fund_balance_snapshot",
		"transaction_split",
		"fund_transaction",
		"fund",
		"treasurer",
		"system_setting",
	}

	for _, table := range tables {
		query := "DELETE FROM " + table
		if _, err := db.Exec(query); err != nil {
			t.Fatalf("Failed to clean table %s: %v", table, err)
		}
	}
}

// CountRows returns the number of rows in a table.
// Useful for assertions in tests.
//
// Example usage:
//
//	count := testutil.CountRows(t, db, "fund")
//	assert.Equal(t, 2, count)
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	query := "SELECT COUNT(*) FROM " + table
	err := db.QueryRow(query).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}

	return count
}

// AssertRowCount asserts that a table has the expected number of rows.
//
// Example usage:
//
//	testutil.AssertRowCount(t, db, "fund", 2)
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	actual := CountRows(t, db, table)
	if actual != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, actual)
	}
}
