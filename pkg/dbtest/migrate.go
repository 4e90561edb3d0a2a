package dbtest

import (
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
)

// MigrateFromFile applies schema files to the test database in order. Files
// are executed as-is, so they must be idempotent (CREATE TABLE IF NOT EXISTS).
func MigrateFromFile(db *sqlx.DB, fileNames ...string) error {
	for _, fileName := range fileNames {
		fileBytes, err := os.ReadFile(fileName)
		if err != nil {
			return fmt.Errorf("os.ReadFile: %w", err)
		}

		if _, err = db.Exec(string(fileBytes)); err != nil {
			return fmt.Errorf("db.Exec %s: %w", fileName, err)
		}
	}

	return nil
}
