package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pulsemind/pulsemind-backend/internal/platform/logger"
	"github.com/pulsemind/pulsemind-backend/internal/repos"
	"github.com/pulsemind/pulsemind-backend/internal/types"
)

// CreateEventInput is the validated shape for a new community event.
type CreateEventInput struct {
	Sport           string    `json:"sport"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Date            time.Time `json:"date"`
	DurationMinutes int       `json:"duration_minutes"`
	MaxParticipants int       `json:"max_participants"`
	Location        string    `json:"location"`
}

// MyEvents groups the events a user created and the ones they joined.
type MyEvents struct {
	Created []*types.Event            `json:"created"`
	Joined  []*types.EventParticipant `json:"joined"`
}

type EventService interface {
	Create(ctx context.Context, creatorID uuid.UUID, input CreateEventInput) (*types.Event, error)
	ListAll(ctx context.Context) ([]*types.Event, error)
	Join(ctx context.Context, eventID, userID uuid.UUID) (*types.EventParticipant, error)
	RespondToJoin(ctx context.Context, eventID, participantID, creatorID uuid.UUID, accept bool) (*types.EventParticipant, error)
	MyEvents(ctx context.Context, userID uuid.UUID) (*MyEvents, error)
	React(ctx context.Context, eventID, userID uuid.UUID, like bool) (*types.Event, error)
}

type eventService struct {
	db                   *gorm.DB
	log                  *logger.Logger
	eventRepo            repos.EventRepo
	eventParticipantRepo repos.EventParticipantRepo
	notificationRepo     repos.NotificationRepo
	userRepo             repos.UserRepo
	moderationService    ModerationService
}

func NewEventService(
	db *gorm.DB,
	baseLog *logger.Logger,
	eventRepo repos.EventRepo,
	eventParticipantRepo repos.EventParticipantRepo,
	notificationRepo repos.NotificationRepo,
	userRepo repos.UserRepo,
	moderationService ModerationService,
) EventService {
	return &eventService{
		db:                   db,
		log:                  baseLog.With("service", "EventService"),
		eventRepo:            eventRepo,
		eventParticipantRepo: eventParticipantRepo,
		notificationRepo:     notificationRepo,
		userRepo:             userRepo,
		moderationService:    moderationService,
	}
}

func (es *eventService) Create(ctx context.Context, creatorID uuid.UUID, input CreateEventInput) (*types.Event, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	if input.Title == "" || input.Description == "" {
		return nil, fmt.Errorf("a title and description are required")
	}
	if input.MaxParticipants < 1 {
		return nil, fmt.Errorf("max participants must be at least 1")
	}
	if input.Date.IsZero() {
		return nil, fmt.Errorf("a date is required")
	}

	event := &types.Event{
		ID:              uuid.New(),
		CreatorID:       creatorID,
		Sport:           strings.TrimSpace(input.Sport),
		Title:           input.Title,
		Description:     input.Description,
		Date:            input.Date,
		DurationMinutes: input.DurationMinutes,
		MaxParticipants: input.MaxParticipants,
		Location:        strings.TrimSpace(input.Location),
		Status:          types.EventStatusOpen,
		Likes:           datatypes.JSON([]byte("[]")),
		Dislikes:        datatypes.JSON([]byte("[]")),
	}

	if err := es.moderationService.ScreenContent(ctx, creatorID, types.ContentTypeEvent, event.ID, input.Title, input.Description); err != nil {
		return nil, err
	}

	if _, err := es.eventRepo.Create(ctx, nil, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (es *eventService) ListAll(ctx context.Context) ([]*types.Event, error) {
	return es.eventRepo.ListAll(ctx, nil)
}

// Join files a pending request and notifies the creator. Creators cannot
// join their own events and repeat requests are rejected.
func (es *eventService) Join(ctx context.Context, eventID, userID uuid.UUID) (*types.EventParticipant, error) {
	event, err := es.eventRepo.GetByID(ctx, nil, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load event: %w", err)
	}
	if event.CreatorID == userID {
		return nil, fmt.Errorf("you cannot join your own event")
	}
	if event.Status != types.EventStatusOpen {
		return nil, fmt.Errorf("event is not open for joining")
	}

	if _, err := es.eventParticipantRepo.GetByEventAndUser(ctx, nil, eventID, userID); err == nil {
		return nil, fmt.Errorf("you already requested to join this event")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check existing request: %w", err)
	}

	requester, err := es.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load requester: %w", err)
	}

	var participant *types.EventParticipant
	if err := es.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		participant, err = es.eventParticipantRepo.Create(ctx, tx, &types.EventParticipant{
			ID:      uuid.New(),
			EventID: eventID,
			UserID:  userID,
			Status:  types.ParticipantStatusPending,
		})
		if err != nil {
			return fmt.Errorf("create join request: %w", err)
		}
		if _, err := es.notificationRepo.Create(ctx, tx, &types.Notification{
			ID:          uuid.New(),
			RecipientID: event.CreatorID,
			SenderID:    userID,
			EventID:     eventID,
			Type:        types.NotificationJoinRequest,
			Message:     fmt.Sprintf("%s wants to join %q", requester.Username, event.Title),
		}); err != nil {
			return fmt.Errorf("notify creator: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return participant, nil
}

// RespondToJoin lets the event creator accept or reject a pending request.
// Acceptance bumps the participant count and flips the event to full at
// capacity; either way the requester is notified.
func (es *eventService) RespondToJoin(ctx context.Context, eventID, participantID, creatorID uuid.UUID, accept bool) (*types.EventParticipant, error) {
	event, err := es.eventRepo.GetByID(ctx, nil, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load event: %w", err)
	}
	if event.CreatorID != creatorID {
		return nil, fmt.Errorf("only the event creator can respond to join requests")
	}

	participant, err := es.eventParticipantRepo.GetByID(ctx, nil, participantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load join request: %w", err)
	}
	if participant.EventID != eventID {
		return nil, ErrNotFound
	}
	if participant.Status != types.ParticipantStatusPending {
		return nil, fmt.Errorf("join request already handled")
	}

	notifType := types.NotificationRequestRejected
	message := fmt.Sprintf("Your request to join %q was declined", event.Title)
	participant.Status = types.ParticipantStatusRejected

	if accept {
		if event.Status == types.EventStatusFull || event.CurrentParticipants >= event.MaxParticipants {
			return nil, fmt.Errorf("event is already full")
		}
		participant.Status = types.ParticipantStatusAccepted
		notifType = types.NotificationRequestAccepted
		message = fmt.Sprintf("You were accepted to %q", event.Title)
		event.CurrentParticipants++
		if event.CurrentParticipants >= event.MaxParticipants {
			event.Status = types.EventStatusFull
		}
	}

	if err := es.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := es.eventParticipantRepo.Save(ctx, tx, participant); err != nil {
			return fmt.Errorf("save join request: %w", err)
		}
		if accept {
			if err := es.eventRepo.Save(ctx, tx, event); err != nil {
				return fmt.Errorf("save event: %w", err)
			}
		}
		if _, err := es.notificationRepo.Create(ctx, tx, &types.Notification{
			ID:          uuid.New(),
			RecipientID: participant.UserID,
			SenderID:    creatorID,
			EventID:     eventID,
			Type:        notifType,
			Message:     message,
		}); err != nil {
			return fmt.Errorf("notify requester: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return participant, nil
}

// MyEvents fetches created and joined events concurrently.
func (es *eventService) MyEvents(ctx context.Context, userID uuid.UUID) (*MyEvents, error) {
	var out MyEvents
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		created, err := es.eventRepo.ListByCreator(gctx, nil, userID)
		if err != nil {
			return fmt.Errorf("list created events: %w", err)
		}
		out.Created = created
		return nil
	})
	g.Go(func() error {
		joined, err := es.eventParticipantRepo.ListByUser(gctx, nil, userID)
		if err != nil {
			return fmt.Errorf("list joined events: %w", err)
		}
		out.Joined = joined
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

func (es *eventService) React(ctx context.Context, eventID, userID uuid.UUID, like bool) (*types.Event, error) {
	event, err := es.eventRepo.GetByID(ctx, nil, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load event: %w", err)
	}

	likes, dislikes, err := toggleReaction(event.Likes, event.Dislikes, userID, like)
	if err != nil {
		return nil, err
	}
	event.Likes = likes
	event.Dislikes = dislikes

	if err := es.eventRepo.Save(ctx, nil, event); err != nil {
		return nil, fmt.Errorf("save reaction: %w", err)
	}
	return event, nil
}
