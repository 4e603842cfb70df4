package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	redisclient "github.com/pulsemind/pulsemind-backend/internal/clients/redis"
	"github.com/pulsemind/pulsemind-backend/internal/platform/logger"
	"github.com/pulsemind/pulsemind-backend/internal/repos"
	"github.com/pulsemind/pulsemind-backend/internal/types"
)

const chatWindowSize = 100

type ChatService interface {
	RecentMessages(ctx context.Context) ([]*types.ChatMessage, error)
	PostMessage(ctx context.Context, authorID uuid.UUID, text string) (*types.ChatMessage, error)
}

type chatService struct {
	db                *gorm.DB
	log               *logger.Logger
	chatMessageRepo   repos.ChatMessageRepo
	moderationService ModerationService
	cache             redisclient.ChatCache
}

// NewChatService wires the community chat. cache may be nil; the service
// then reads postgres directly.
func NewChatService(
	db *gorm.DB,
	baseLog *logger.Logger,
	chatMessageRepo repos.ChatMessageRepo,
	moderationService ModerationService,
	cache redisclient.ChatCache,
) ChatService {
	return &chatService{
		db:                db,
		log:               baseLog.With("service", "ChatService"),
		chatMessageRepo:   chatMessageRepo,
		moderationService: moderationService,
		cache:             cache,
	}
}

func (cs *chatService) RecentMessages(ctx context.Context) ([]*types.ChatMessage, error) {
	if cs.cache != nil {
		cached, err := cs.cache.Recent(ctx, chatWindowSize)
		if err != nil {
			cs.log.Warn("chat cache read failed, falling back to db", "error", err)
		} else if len(cached) > 0 {
			return cached, nil
		}
	}

	messages, err := cs.chatMessageRepo.ListRecent(ctx, nil, chatWindowSize)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}

	if cs.cache != nil {
		for _, msg := range messages {
			if err := cs.cache.Push(ctx, msg); err != nil {
				cs.log.Warn("chat cache warm failed", "error", err)
				break
			}
		}
	}
	return messages, nil
}

func (cs *chatService) PostMessage(ctx context.Context, authorID uuid.UUID, text string) (*types.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("a message is required")
	}
	if utf8.RuneCountInString(text) > types.ChatMessageMaxLen {
		return nil, fmt.Errorf("message exceeds %d characters", types.ChatMessageMaxLen)
	}

	msg := &types.ChatMessage{
		ID:      uuid.New(),
		UserID:  authorID,
		Message: text,
	}

	if err := cs.moderationService.ScreenContent(ctx, authorID, types.ContentTypeMessage, msg.ID, text); err != nil {
		return nil, err
	}

	created, err := cs.chatMessageRepo.Create(ctx, nil, msg)
	if err != nil {
		return nil, fmt.Errorf("create chat message: %w", err)
	}

	if cs.cache != nil {
		if err := cs.cache.Push(ctx, created); err != nil {
			cs.log.Warn("chat cache push failed", "error", err)
		}
	}
	return created, nil
}
