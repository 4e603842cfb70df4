package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pulsemind/pulsemind-backend/internal/trust"
	"github.com/pulsemind/pulsemind-backend/internal/types"
)

// GoogleVerifier validates a Google ID token and returns the asserted
// identity. Kept behind an interface so tests never talk to Google.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleIdentity, error)
}

type GoogleIdentity struct {
	GoogleID string
	Email    string
	Name     string
}

// tokenInfoVerifier checks the token against Google's tokeninfo endpoint
// and pins the audience to our client id.
type tokenInfoVerifier struct {
	clientID   string
	httpClient *http.Client
}

func NewGoogleVerifier(clientID string) GoogleVerifier {
	return &tokenInfoVerifier{
		clientID:   strings.TrimSpace(clientID),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *tokenInfoVerifier) Verify(ctx context.Context, idToken string) (*GoogleIdentity, error) {
	if v.clientID == "" {
		return nil, fmt.Errorf("google auth is not configured")
	}
	endpoint := "https://oauth2.googleapis.com/tokeninfo?id_token=" + url.QueryEscape(idToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("verify google token: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("invalid google token")
	}

	var claims struct {
		Sub           string `json:"sub"`
		Aud           string `json:"aud"`
		Email         string `json:"email"`
		EmailVerified string `json:"email_verified"`
		Name          string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		return nil, fmt.Errorf("decode tokeninfo response: %w", err)
	}
	if claims.Aud != v.clientID {
		return nil, fmt.Errorf("google token audience mismatch")
	}
	if claims.EmailVerified != "true" {
		return nil, fmt.Errorf("google account email not verified")
	}
	return &GoogleIdentity{
		GoogleID: claims.Sub,
		Email:    strings.ToLower(claims.Email),
		Name:     claims.Name,
	}, nil
}

// LoginUserWithGoogle signs in via a verified Google identity, creating the
// account on first sight. New accounts start at the bottom of the ladder
// like any other signup.
func (as *authService) LoginUserWithGoogle(ctx context.Context, identity *GoogleIdentity) (*types.User, string, string, error) {
	if identity == nil || identity.Email == "" {
		return nil, "", "", fmt.Errorf("google identity required")
	}

	user, err := as.userRepo.GetByEmail(ctx, nil, identity.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", fmt.Errorf("retrieve user by email: %w", err)
		}
		name := strings.TrimSpace(identity.Name)
		if name == "" {
			name = strings.Split(identity.Email, "@")[0]
		}
		user = &types.User{
			ID:              uuid.New(),
			Username:        name,
			Email:           identity.Email,
			City:            "Unknown",
			Password:        uuid.New().String(),
			GoogleID:        identity.GoogleID,
			CurrentPhase:    trust.PhaseAIOnly,
			ReputationScore: 50,
		}
		if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if _, err := as.userRepo.Create(ctx, tx, []*types.User{user}); err != nil {
				return fmt.Errorf("create user: %w", err)
			}
			if as.avatarService != nil {
				if err := as.avatarService.GenerateUserAvatar(ctx, tx, user); err != nil {
					as.log.Warn("avatar generation failed", "user_id", user.ID, "error", err)
				}
			}
			return nil
		}); err != nil {
			return nil, "", "", err
		}
	} else if user.GoogleID == "" {
		user.GoogleID = identity.GoogleID
		if err := as.userRepo.Save(ctx, nil, user); err != nil {
			return nil, "", "", fmt.Errorf("link google account: %w", err)
		}
	}

	var accessToken, refreshToken string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := as.userTokenRepo.DeleteByUserID(ctx, tx, user.ID); err != nil {
			return fmt.Errorf("clear previous tokens: %w", err)
		}
		accessToken, refreshToken, err = as.issueTokens(ctx, tx, user)
		return err
	}); err != nil {
		return nil, "", "", err
	}
	return user, accessToken, refreshToken, nil
}
