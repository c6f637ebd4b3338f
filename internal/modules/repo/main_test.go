package repo

import (
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/quokkabay/quokkabay/internal/infra/db"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const defaultTestDSN = "host=localhost user=quokka password=quokka dbname=quokkabay_test port=5432 sslmode=disable"

// setupTestDB connects to the local test database and applies the schema. Tests are
// skipped when no database is reachable.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("QUOKKA_TEST_DSN")
	if dsn == "" {
		dsn = defaultTestDSN
	}
	return openTestDB(t, dsn)
}

func openTestDB(t *testing.T, dsn string) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Skip("Test database not available, skipping integration tests")
		return nil
	}
	if err := db.MigrateUp(dsn, zap.NewNop()); err != nil {
		t.Skipf("Test database not migratable: %v", err)
		return nil
	}
	return gdb
}

func cleanupUser(gdb *gorm.DB, userID uuid.UUID) {
	gdb.Exec("DELETE FROM favorites WHERE user_id = ?", userID)
	gdb.Exec("DELETE FROM survey_activities WHERE user_id = ?", userID)
	gdb.Exec("DELETE FROM surveys WHERE user_id = ?", userID)
}
