package postgresqltest

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
)

// TestDatabaseSetup holds a migrated test database.
type TestDatabaseSetup struct {
	DB *database.DB
}

// Directory and roster tables are owned by other services; tests provision a minimal shape.
var externalTables = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		id UUID PRIMARY KEY,
		first_name TEXT,
		last_name TEXT,
		department TEXT,
		position TEXT,
		daily_rate NUMERIC(12,2),
		status TEXT NOT NULL,
		role TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS schedule_entries (
		employee_id TEXT NOT NULL,
		year INT NOT NULL,
		month INT NOT NULL,
		day INT NOT NULL,
		shift_code TEXT,
		PRIMARY KEY (employee_id, year, month, day)
	)`,
}

// NewTestDatabase connects to TEST_DATABASE_URL and skips the test when it is unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 4, MinConns: 1})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	t.Cleanup(db.Close)

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	for _, ddl := range externalTables {
		if _, err := db.Exec(ctx, ddl); err != nil {
			t.Fatalf("failed to create external table: %v", err)
		}
	}

	setup := &TestDatabaseSetup{DB: db}
	if err := setup.TruncateAllTables(ctx); err != nil {
		t.Fatalf("%v", err)
	}
	return setup
}

// TruncateAllTables removes all rows from every table the tests touch.
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"payroll_entries",
		"payroll_runs",
		"schedule_entries",
		"employees",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}
