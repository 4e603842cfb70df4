package db

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pulsemind/pulsemind-backend/internal/platform/logger"
	"github.com/pulsemind/pulsemind-backend/internal/trust"
	"github.com/pulsemind/pulsemind-backend/internal/types"
)

func sqliteService(t *testing.T) *Service {
	t.Helper()
	log, err := logger.New("production")
	if err != nil {
		t.Fatalf("build logger: %v", err)
	}
	path := filepath.Join(t.TempDir(), "test.db")
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return &Service{db: gdb, log: log}
}

// The sqlite fallback has to survive a full migration plus inserts, so the
// model tags cannot carry postgres-only default expressions.
func TestSQLiteMigrateAndInsert(t *testing.T) {
	svc := sqliteService(t)
	if err := svc.AutoMigrateAll(); err != nil {
		t.Fatalf("AutoMigrateAll on sqlite: %v", err)
	}

	user := &types.User{
		Username:        "Robin Walker",
		Email:           "robin@example.com",
		City:            "Lisbon",
		Password:        "hashed",
		CurrentPhase:    trust.PhaseAIOnly,
		ReputationScore: 50,
	}
	if err := svc.DB().Create(user).Error; err != nil {
		t.Fatalf("insert user: %v", err)
	}
	if user.ID == uuid.Nil {
		t.Fatal("expected BeforeCreate to assign the user ID")
	}

	rec := &types.Recommendation{
		UserID:      user.ID,
		Type:        "book",
		Title:       "Evening wind-down",
		Description: "Short breathing routine before sleep",
		Likes:       datatypes.JSON([]byte("[]")),
		Dislikes:    datatypes.JSON([]byte("[]")),
	}
	if err := svc.DB().Create(rec).Error; err != nil {
		t.Fatalf("insert recommendation: %v", err)
	}

	var reloaded types.User
	if err := svc.DB().First(&reloaded, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if reloaded.Email != user.Email {
		t.Fatalf("reloaded email = %q, want %q", reloaded.Email, user.Email)
	}
	if reloaded.CurrentPhase != trust.PhaseAIOnly {
		t.Fatalf("reloaded phase = %q, want %q", reloaded.CurrentPhase, trust.PhaseAIOnly)
	}
	if reloaded.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be populated on insert")
	}
}
