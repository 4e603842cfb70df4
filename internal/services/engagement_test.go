package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/pulsemind/pulsemind-backend/internal/repos"
	"github.com/pulsemind/pulsemind-backend/internal/testutil"
	"github.com/pulsemind/pulsemind-backend/internal/trust"
)

func TestTrackEngagementSessionPersists(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	userRepo := repos.NewUserRepo(tx, log)
	eventRepo := repos.NewEngagementEventRepo(tx, log)
	es := NewEngagementService(tx, log, userRepo, eventRepo)

	user := testutil.SeedUser(t, tx)
	ctx := context.Background()

	result, err := es.TrackEngagement(ctx, user.ID, trust.ActionSession, trust.EngagementPayload{})
	if err != nil {
		t.Fatalf("track engagement: %v", err)
	}
	if result.ReadinessScore <= 0 {
		t.Fatalf("readiness = %v, want > 0 after first session", result.ReadinessScore)
	}

	reloaded, err := userRepo.GetByID(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if reloaded.SessionCount != 1 {
		t.Fatalf("session count = %d, want 1", reloaded.SessionCount)
	}
	if reloaded.EngagementDays != 1 {
		t.Fatalf("engagement days = %d, want 1", reloaded.EngagementDays)
	}
	if reloaded.ReadinessScore != result.ReadinessScore {
		t.Fatalf("persisted readiness %v != reported %v", reloaded.ReadinessScore, result.ReadinessScore)
	}

	events, err := eventRepo.ListByUser(ctx, nil, user.ID, 10)
	if err != nil {
		t.Fatalf("list audit events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("audit events = %d, want 1", len(events))
	}
	if events[0].Action != trust.ActionSession {
		t.Fatalf("audit action = %q", events[0].Action)
	}
	if events[0].ReadinessAfter != result.ReadinessScore {
		t.Fatalf("audit readiness %v != reported %v", events[0].ReadinessAfter, result.ReadinessScore)
	}
}

func TestTrackEngagementOperatorBypass(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	userRepo := repos.NewUserRepo(tx, log)
	eventRepo := repos.NewEngagementEventRepo(tx, log)
	es := NewEngagementService(tx, log, userRepo, eventRepo)

	operator := testutil.SeedOperator(t, tx)
	ctx := context.Background()

	result, err := es.TrackEngagement(ctx, operator.ID, trust.ActionSession, trust.EngagementPayload{})
	if err != nil {
		t.Fatalf("track engagement: %v", err)
	}
	if result.ReadinessScore != 100 || result.CurrentPhase != trust.PhaseFullAccess {
		t.Fatalf("operator reported %v/%v, want 100/full-access", result.ReadinessScore, result.CurrentPhase)
	}

	reloaded, err := userRepo.GetByID(ctx, nil, operator.ID)
	if err != nil {
		t.Fatalf("reload operator: %v", err)
	}
	if reloaded.SessionCount != 0 {
		t.Fatalf("operator counters mutated: sessions=%d", reloaded.SessionCount)
	}
	events, err := eventRepo.ListByUser(ctx, nil, operator.ID, 10)
	if err != nil {
		t.Fatalf("list audit events: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("operator bypass wrote %d audit rows", len(events))
	}
}

func TestTrackEngagementUnknownUser(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	es := NewEngagementService(tx, log, repos.NewUserRepo(tx, log), repos.NewEngagementEventRepo(tx, log))

	_, err := es.TrackEngagement(context.Background(), uuid.New(), trust.ActionSession, trust.EngagementPayload{})
	if err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestAdjustReputationRoundTrip(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	userRepo := repos.NewUserRepo(tx, log)
	us := NewUserService(tx, log, userRepo)

	user := testutil.SeedUser(t, tx)
	ctx := context.Background()

	updated, err := us.AdjustReputation(ctx, user.ID, true)
	if err != nil {
		t.Fatalf("positive adjust: %v", err)
	}
	if updated.ReputationScore != 55 {
		t.Fatalf("reputation = %v, want 55", updated.ReputationScore)
	}

	updated, err = us.AdjustReputation(ctx, user.ID, false)
	if err != nil {
		t.Fatalf("negative adjust: %v", err)
	}
	if updated.ReputationScore != 45 {
		t.Fatalf("reputation = %v, want 45", updated.ReputationScore)
	}
	if updated.WarningCount != 1 {
		t.Fatalf("warning count = %d, want 1", updated.WarningCount)
	}
}
