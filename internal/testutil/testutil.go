package testutil

import (
	"os"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pulsemind/pulsemind-backend/internal/platform/logger"
	"github.com/pulsemind/pulsemind-backend/internal/trust"
	"github.com/pulsemind/pulsemind-backend/internal/types"
)

// Logger returns a quiet logger for tests.
func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	log, err := logger.New("production")
	if err != nil {
		tb.Fatalf("init test logger: %v", err)
	}
	return log
}

// DB opens the database named by TEST_POSTGRES_DSN and migrates the schema.
// Tests that need a live database are skipped when the variable is unset.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		tb.Skip("TEST_POSTGRES_DSN not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Recommendation{},
		&types.Event{},
		&types.EventParticipant{},
		&types.Notification{},
		&types.ChatMessage{},
		&types.FlaggedContent{},
		&types.EngagementEvent{},
	); err != nil {
		tb.Fatalf("migrate test schema: %v", err)
	}
	return db
}

// Tx runs the test inside a transaction that is rolled back at cleanup, so
// tests never leak rows into each other.
func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin test transaction: %v", tx.Error)
	}
	tb.Cleanup(func() { tx.Rollback() })
	return tx
}

// SeedUser inserts a fresh account at the bottom of the trust ladder.
func SeedUser(tb testing.TB, db *gorm.DB) *types.User {
	tb.Helper()
	user := &types.User{
		ID:              uuid.New(),
		Username:        "Test User",
		Email:           uuid.New().String() + "@example.com",
		City:            "Testville",
		Password:        "hashed",
		CurrentPhase:    trust.PhaseAIOnly,
		ReputationScore: 50,
	}
	if err := db.Create(user).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return user
}

// SeedOperator inserts the bypass account.
func SeedOperator(tb testing.TB, db *gorm.DB) *types.User {
	tb.Helper()
	user := &types.User{
		ID:              uuid.New(),
		Username:        "Operator",
		Email:           uuid.New().String() + "@example.com",
		City:            "Operations",
		Password:        "hashed",
		IsOperator:      true,
		CurrentPhase:    trust.PhaseFullAccess,
		ReadinessScore:  100,
		ReputationScore: 100,
	}
	if err := db.Create(user).Error; err != nil {
		tb.Fatalf("seed operator: %v", err)
	}
	return user
}
