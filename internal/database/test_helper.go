package database

import (
	"testing"

	"custopro-api/internal/config"
	"custopro-api/internal/document"
	"custopro-api/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return testDB
}

// CreateTestCustomer stores one raw customer document and returns it with
// its generated store key filled in.
func CreateTestCustomer(t *testing.T, db *DB, doc document.Document) *models.CustomerDocument {
	t.Helper()

	record := &models.CustomerDocument{Doc: doc}
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("failed to create test customer: %v", err)
	}

	return record
}

func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	if err := db.Exec("DELETE FROM customer_documents").Error; err != nil {
		t.Logf("failed to cleanup customer_documents: %v", err)
	}
}
