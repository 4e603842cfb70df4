package services

import (
	"context"
	"strings"
	"testing"

	"github.com/pulsemind/pulsemind-backend/internal/moderation"
	"github.com/pulsemind/pulsemind-backend/internal/repos"
	"github.com/pulsemind/pulsemind-backend/internal/testutil"
	"github.com/pulsemind/pulsemind-backend/internal/types"
)

func TestPostMessageLimitCountsRunes(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	userRepo := repos.NewUserRepo(tx, log)
	flagRepo := repos.NewFlaggedContentRepo(tx, log)
	chatRepo := repos.NewChatMessageRepo(tx, log)
	ms := NewModerationService(tx, log, moderation.NewDetector(), userRepo, flagRepo)
	cs := NewChatService(tx, log, chatRepo, ms, nil)

	user := testutil.SeedUser(t, tx)
	ctx := context.Background()

	// 500 two-byte runes is exactly at the limit even though it is 1000
	// bytes.
	atLimit := strings.Repeat("é", types.ChatMessageMaxLen)
	msg, err := cs.PostMessage(ctx, user.ID, atLimit)
	if err != nil {
		t.Fatalf("message of %d runes rejected: %v", types.ChatMessageMaxLen, err)
	}
	if msg.Message != atLimit {
		t.Fatal("stored message does not match input")
	}

	overLimit := strings.Repeat("é", types.ChatMessageMaxLen+1)
	if _, err := cs.PostMessage(ctx, user.ID, overLimit); err == nil {
		t.Fatalf("message of %d runes accepted", types.ChatMessageMaxLen+1)
	}
}
