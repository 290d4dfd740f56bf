package db

import (
	"errors"
	"os"
)

// TestStore is the shared store used by database-backed tests. It is
// populated by InitTestDB and stays nil when no test database is configured.
var TestStore Store

// InitTestDB connects to TEST_DATABASE_URL and applies migrations, so tests
// run against the same schema the server deploys.
func InitTestDB(migrationsPath string) error {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		return errors.New("TEST_DATABASE_URL environment variable is not set")
	}

	conn, err := Init(dbURL)
	if err != nil {
		return err
	}
	if err := RunMigrations(conn, migrationsPath); err != nil {
		return err
	}

	TestStore = NewStore(conn)
	return nil
}
