package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pulsemind/pulsemind-backend/internal/platform/logger"
	"github.com/pulsemind/pulsemind-backend/internal/repos"
	"github.com/pulsemind/pulsemind-backend/internal/types"
)

type RecommendationService interface {
	Create(ctx context.Context, authorID uuid.UUID, recType, title, description string) (*types.Recommendation, error)
	ListAll(ctx context.Context) ([]*types.Recommendation, error)
	React(ctx context.Context, recID, userID uuid.UUID, like bool) (*types.Recommendation, error)
}

type recommendationService struct {
	db                 *gorm.DB
	log                *logger.Logger
	recommendationRepo repos.RecommendationRepo
	moderationService  ModerationService
}

func NewRecommendationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	recommendationRepo repos.RecommendationRepo,
	moderationService ModerationService,
) RecommendationService {
	return &recommendationService{
		db:                 db,
		log:                baseLog.With("service", "RecommendationService"),
		recommendationRepo: recommendationRepo,
		moderationService:  moderationService,
	}
}

func (rs *recommendationService) Create(ctx context.Context, authorID uuid.UUID, recType, title, description string) (*types.Recommendation, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return nil, fmt.Errorf("a title and description are required")
	}

	rec := &types.Recommendation{
		ID:          uuid.New(),
		UserID:      authorID,
		Type:        recType,
		Title:       title,
		Description: description,
		Likes:       datatypes.JSON([]byte("[]")),
		Dislikes:    datatypes.JSON([]byte("[]")),
	}

	// Toxic submissions are dropped; only the flag and penalty persist.
	if err := rs.moderationService.ScreenContent(ctx, authorID, types.ContentTypeRecommendation, rec.ID, title, description); err != nil {
		return nil, err
	}

	if _, err := rs.recommendationRepo.Create(ctx, nil, rec); err != nil {
		return nil, fmt.Errorf("create recommendation: %w", err)
	}
	return rec, nil
}

func (rs *recommendationService) ListAll(ctx context.Context) ([]*types.Recommendation, error) {
	return rs.recommendationRepo.ListAll(ctx, nil)
}

// React toggles the user in the chosen reaction list and removes them from
// the opposite one.
func (rs *recommendationService) React(ctx context.Context, recID, userID uuid.UUID, like bool) (*types.Recommendation, error) {
	rec, err := rs.recommendationRepo.GetByID(ctx, nil, recID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load recommendation: %w", err)
	}

	likes, dislikes, err := toggleReaction(rec.Likes, rec.Dislikes, userID, like)
	if err != nil {
		return nil, err
	}
	rec.Likes = likes
	rec.Dislikes = dislikes

	if err := rs.recommendationRepo.Save(ctx, nil, rec); err != nil {
		return nil, fmt.Errorf("save reaction: %w", err)
	}
	return rec, nil
}

// toggleReaction implements the shared like/dislike semantics: a repeat of
// the same reaction removes it, any reaction clears the opposite list.
func toggleReaction(likesRaw, dislikesRaw datatypes.JSON, userID uuid.UUID, like bool) (datatypes.JSON, datatypes.JSON, error) {
	likes, err := decodeIDList(likesRaw)
	if err != nil {
		return nil, nil, fmt.Errorf("decode likes: %w", err)
	}
	dislikes, err := decodeIDList(dislikesRaw)
	if err != nil {
		return nil, nil, fmt.Errorf("decode dislikes: %w", err)
	}

	id := userID.String()
	if like {
		if containsID(likes, id) {
			likes = removeID(likes, id)
		} else {
			likes = append(likes, id)
		}
		dislikes = removeID(dislikes, id)
	} else {
		if containsID(dislikes, id) {
			dislikes = removeID(dislikes, id)
		} else {
			dislikes = append(dislikes, id)
		}
		likes = removeID(likes, id)
	}

	likesOut, err := json.Marshal(likes)
	if err != nil {
		return nil, nil, fmt.Errorf("encode likes: %w", err)
	}
	dislikesOut, err := json.Marshal(dislikes)
	if err != nil {
		return nil, nil, fmt.Errorf("encode dislikes: %w", err)
	}
	return datatypes.JSON(likesOut), datatypes.JSON(dislikesOut), nil
}

func decodeIDList(raw datatypes.JSON) ([]string, error) {
	if len(raw) == 0 {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func containsID(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

func removeID(list []string, id string) []string {
	out := list[:0]
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
