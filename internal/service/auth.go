// Package service implements the cache-aside orchestrator: each service
// composes a repository with the remote origin and decides, per operation,
// whether to answer locally, refresh from the origin, or write through.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/nephrolog/nephrolog-sync/internal/apperrors"
	"github.com/nephrolog/nephrolog-sync/internal/models"
	"github.com/nephrolog/nephrolog-sync/internal/repository"
	"github.com/nephrolog/nephrolog-sync/internal/types"
)

// AuthService handles authentication, registration and logout. Reads are
// local-first: a cached credential match never touches the origin.
type AuthService struct {
	accounts        *repository.AccountRepository
	profiles        *repository.ProfileRepository
	goals           *repository.GoalRepository
	foods           *repository.FoodRepository
	recommendations *repository.RecommendationRepository
	samples         *repository.QuantitySampleRepository
	origin          Origin
}

func NewAuthService(
	accounts *repository.AccountRepository,
	profiles *repository.ProfileRepository,
	goals *repository.GoalRepository,
	foods *repository.FoodRepository,
	recommendations *repository.RecommendationRepository,
	samples *repository.QuantitySampleRepository,
	origin Origin,
) *AuthService {
	return &AuthService{
		accounts:        accounts,
		profiles:        profiles,
		goals:           goals,
		foods:           foods,
		recommendations: recommendations,
		samples:         samples,
		origin:          origin,
	}
}

// Authenticate tries the local account cache before any network call. A
// cached match refreshes the record's retrieval date and skips the origin
// entirely; only a local miss reaches the origin, and origin success
// additionally resolves a profile (read-or-create) before returning.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	if email == "" {
		return nil, &apperrors.ValidationError{Field: apperrors.FieldEmail, Message: "email must not be empty"}
	}
	if password == "" {
		return nil, &apperrors.ValidationError{Field: apperrors.FieldPassword, Message: "password must not be empty"}
	}

	accounts, err := s.accounts.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	var emailMatch *models.Account
	for _, account := range accounts {
		if account.Email != email {
			continue
		}
		emailMatch = account
		if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) == nil {
			// Local session: refresh the retrieval date as a side effect.
			if err := s.accounts.Update(ctx, []*models.Account{account}); err != nil {
				return nil, err
			}
			slog.Debug("local credential match", "user", account.UserID)
			return newSession(account, ""), nil
		}
	}

	result, err := s.origin.Login(ctx, email, password)
	if err != nil {
		// Only an explicit credential rejection becomes a mismatch; a
		// transport failure or server fault surfaces as the origin error
		// it is.
		var originErr *apperrors.OriginError
		if errors.As(err, &originErr) && originErr.Rejected() {
			field := apperrors.FieldEmail
			if emailMatch != nil {
				field = apperrors.FieldPassword
			}
			return nil, &apperrors.AuthMismatchError{Field: field, Message: originErr.Message}
		}
		return nil, err
	}

	account, err := s.cacheCredentials(ctx, result.Account, password)
	if err != nil {
		return nil, err
	}
	if err := s.resolveProfile(ctx, account, result.Profile); err != nil {
		return nil, err
	}
	return newSession(account, result.Token), nil
}

// Register is write-through: the origin assigns canonical identifiers
// first, then the returned account and profile are inserted locally.
func (s *AuthService) Register(ctx context.Context, email, password string, profile *models.Profile) (*Session, error) {
	if email == "" {
		return nil, &apperrors.ValidationError{Field: apperrors.FieldEmail, Message: "email must not be empty"}
	}
	if password == "" {
		return nil, &apperrors.ValidationError{Field: apperrors.FieldPassword, Message: "password must not be empty"}
	}

	result, err := s.origin.Register(ctx, email, password, profile)
	if err != nil {
		return nil, err
	}

	account, err := s.cacheCredentials(ctx, result.Account, password)
	if err != nil {
		return nil, err
	}
	if err := s.resolveProfile(ctx, account, result.Profile); err != nil {
		return nil, err
	}
	return newSession(account, result.Token), nil
}

// Logout clears the user's local scope unconditionally; the origin call is
// fire-and-forget relative to the clear, so local state reads as logged out
// even while the remote call is in flight or after it fails.
func (s *AuthService) Logout(ctx context.Context, uc types.UserContext) error {
	if uc.Token != "" {
		go func(token string) {
			logoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := s.origin.Logout(logoutCtx, token); err != nil {
				slog.Warn("origin logout failed", "error", err)
			}
		}(uc.Token)
	}

	if err := s.goals.RemoveAllForUser(ctx, uc); err != nil {
		return err
	}
	if err := s.foods.RemoveAllForUser(ctx, uc); err != nil {
		return err
	}
	if err := s.recommendations.RemoveAllForUser(ctx, uc); err != nil {
		return err
	}
	if err := s.samples.RemoveAllForUser(ctx, uc); err != nil {
		return err
	}
	return s.profiles.RemoveAllForUser(ctx, uc)
}

// cacheCredentials upserts the origin's account with a freshly hashed copy
// of the password the user just proved.
func (s *AuthService) cacheCredentials(ctx context.Context, account *models.Account, password string) (*models.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	account.PasswordHash = string(hash)
	saved, err := s.accounts.Upsert(ctx, []*models.Account{account})
	if err != nil {
		return nil, err
	}
	return saved[0], nil
}

// resolveProfile is the read-or-create half of remote authentication: keep
// an existing cached profile, otherwise insert the origin's.
func (s *AuthService) resolveProfile(ctx context.Context, account *models.Account, profile *models.Profile) error {
	uc := types.UserContext{UserID: account.UserID}
	existing, err := s.profiles.GetForUser(ctx, uc)
	if err != nil {
		return err
	}
	if existing != nil || profile == nil {
		return nil
	}
	profile.SetOwner(account.UserID)
	_, err = s.profiles.Insert(ctx, []*models.Profile{profile})
	return err
}
