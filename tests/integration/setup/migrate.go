package setup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigration applies db/migrations from the repository root.
func RunMigration(pgURL string, t *testing.T) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	// tests/integration -> repository root
	absPath, err := filepath.Abs(filepath.Join(wd, "..", "..", "db", "migrations"))
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	t.Logf("Running migrations from %s", absPath)

	m, err := migrate.New("file://"+absPath, pgURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
