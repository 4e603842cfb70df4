package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/pulsemind/pulsemind-backend/internal/moderation"
	"github.com/pulsemind/pulsemind-backend/internal/repos"
	"github.com/pulsemind/pulsemind-backend/internal/testutil"
	"github.com/pulsemind/pulsemind-backend/internal/types"
)

func TestScreenContentCleanTextPersistsNothing(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	userRepo := repos.NewUserRepo(tx, log)
	flagRepo := repos.NewFlaggedContentRepo(tx, log)
	ms := NewModerationService(tx, log, moderation.NewDetector(), userRepo, flagRepo)

	user := testutil.SeedUser(t, tx)
	ctx := context.Background()

	if err := ms.ScreenContent(ctx, user.ID, types.ContentTypeMessage, uuid.New(), "looking forward to the session tomorrow"); err != nil {
		t.Fatalf("clean text rejected: %v", err)
	}

	reloaded, err := userRepo.GetByID(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if reloaded.ToxicityFlags != 0 || reloaded.ReputationScore != 50 {
		t.Fatalf("clean text mutated user: flags=%d reputation=%v", reloaded.ToxicityFlags, reloaded.ReputationScore)
	}
	pending, err := flagRepo.ListPending(ctx, nil, 10)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("clean text created %d flag rows", len(pending))
	}
}

func TestScreenContentToxicTextCommitsPenalty(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	userRepo := repos.NewUserRepo(tx, log)
	flagRepo := repos.NewFlaggedContentRepo(tx, log)
	ms := NewModerationService(tx, log, moderation.NewDetector(), userRepo, flagRepo)

	user := testutil.SeedUser(t, tx)
	ctx := context.Background()

	err := ms.ScreenContent(ctx, user.ID, types.ContentTypeMessage, uuid.New(), "you are a stupid worthless idiot")
	if err == nil {
		t.Fatal("expected rejection")
	}
	rejected, ok := AsContentRejected(err)
	if !ok {
		t.Fatalf("expected ContentRejectedError, got %v", err)
	}
	if rejected.Score < moderation.ToxicThreshold {
		t.Fatalf("rejected score %v below threshold", rejected.Score)
	}
	if len(rejected.FlaggedTerms) == 0 {
		t.Fatal("rejection carries no flagged terms")
	}

	reloaded, err := userRepo.GetByID(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if reloaded.ToxicityFlags != 1 {
		t.Fatalf("toxicity flags = %d, want 1", reloaded.ToxicityFlags)
	}
	if reloaded.ReputationScore != 40 {
		t.Fatalf("reputation = %v, want 40", reloaded.ReputationScore)
	}
	if reloaded.IsShadowBanned {
		t.Fatal("shadow banned after a single flag")
	}

	pending, err := flagRepo.ListPending(ctx, nil, 10)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("flag rows = %d, want 1", len(pending))
	}
	if pending[0].Reason != types.FlagReasonAutomated {
		t.Fatalf("flag reason = %q", pending[0].Reason)
	}
}

func TestScreenContentCollectsTermsAcrossTexts(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	userRepo := repos.NewUserRepo(tx, log)
	flagRepo := repos.NewFlaggedContentRepo(tx, log)
	ms := NewModerationService(tx, log, moderation.NewDetector(), userRepo, flagRepo)

	user := testutil.SeedUser(t, tx)
	ctx := context.Background()

	// Title scores 0.8, description 0.6. The rejection reports the worst
	// score but the terms of every checked text.
	err := ms.ScreenContent(ctx, user.ID, types.ContentTypeEvent, uuid.New(),
		"thinking about suicide",
		"this stupid dumb idea",
	)
	if err == nil {
		t.Fatal("expected rejection")
	}
	rejected, ok := AsContentRejected(err)
	if !ok {
		t.Fatalf("expected ContentRejectedError, got %v", err)
	}
	if rejected.Score != 0.8 {
		t.Fatalf("rejected score = %v, want 0.8", rejected.Score)
	}
	for _, want := range []string{"suicide", "stupid", "dumb"} {
		found := false
		for _, term := range rejected.FlaggedTerms {
			if term == want {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("flagged terms %v missing %q", rejected.FlaggedTerms, want)
		}
	}
}

func TestScreenContentThirdFlagShadowBans(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	userRepo := repos.NewUserRepo(tx, log)
	flagRepo := repos.NewFlaggedContentRepo(tx, log)
	ms := NewModerationService(tx, log, moderation.NewDetector(), userRepo, flagRepo)

	user := testutil.SeedUser(t, tx)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := ms.ScreenContent(ctx, user.ID, types.ContentTypeMessage, uuid.New(), "kill yourself")
		if _, ok := AsContentRejected(err); !ok {
			t.Fatalf("submission %d: expected rejection, got %v", i+1, err)
		}
	}

	reloaded, err := userRepo.GetByID(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if reloaded.ToxicityFlags != 3 {
		t.Fatalf("toxicity flags = %d, want 3", reloaded.ToxicityFlags)
	}
	if !reloaded.IsShadowBanned {
		t.Fatal("not shadow banned at 3 flags")
	}
	if reloaded.ReputationScore != 20 {
		t.Fatalf("reputation = %v, want 20", reloaded.ReputationScore)
	}
}

func TestFlagManuallyFixedSeverity(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	userRepo := repos.NewUserRepo(tx, log)
	flagRepo := repos.NewFlaggedContentRepo(tx, log)
	ms := NewModerationService(tx, log, moderation.NewDetector(), userRepo, flagRepo)

	reporter := testutil.SeedUser(t, tx)
	author := testutil.SeedUser(t, tx)
	ctx := context.Background()

	flag, err := ms.FlagManually(ctx, reporter.ID, types.ContentTypeEvent, uuid.New(), author.ID, "misleading content")
	if err != nil {
		t.Fatalf("manual flag: %v", err)
	}
	if flag.ToxicityScore != ManualFlagSeverity {
		t.Fatalf("manual flag severity = %v, want %v", flag.ToxicityScore, ManualFlagSeverity)
	}
	if flag.Status != types.FlagStatusPending {
		t.Fatalf("manual flag status = %q", flag.Status)
	}

	// Reporter's own counters stay untouched.
	reloaded, err := userRepo.GetByID(ctx, nil, reporter.ID)
	if err != nil {
		t.Fatalf("reload reporter: %v", err)
	}
	if reloaded.ToxicityFlags != 0 || reloaded.WarningCount != 0 {
		t.Fatalf("manual flag mutated reporter: flags=%d warnings=%d", reloaded.ToxicityFlags, reloaded.WarningCount)
	}
}
