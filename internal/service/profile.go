package service

import (
	"context"
	"log/slog"

	"github.com/nephrolog/nephrolog-sync/internal/apperrors"
	"github.com/nephrolog/nephrolog-sync/internal/models"
	"github.com/nephrolog/nephrolog-sync/internal/repository"
	"github.com/nephrolog/nephrolog-sync/internal/types"
)

// ProfileService serves the user's profile cache-aside and keeps profile
// writes round-tripping through the origin.
type ProfileService struct {
	profiles *repository.ProfileRepository
	origin   Origin
	sensor   DeviceSensor
}

func NewProfileService(profiles *repository.ProfileRepository, origin Origin, sensor DeviceSensor) *ProfileService {
	return &ProfileService{profiles: profiles, origin: origin, sensor: sensor}
}

// Get returns the cached profile when present, merging in today's
// device-sourced weight as a derived, never-persisted field. There is no
// origin fallback for a missing profile: a profile only ever enters the
// cache through authentication or Update.
func (s *ProfileService) Get(ctx context.Context, uc types.UserContext) (*models.Profile, error) {
	profile, err := s.profiles.GetForUser(ctx, uc)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, &apperrors.NotFoundError{Resource: "profile", ID: uc.UserID}
	}

	if s.sensor != nil {
		weight, ok, err := s.sensor.TodayValue(ctx, models.SampleWeight)
		switch {
		case err != nil:
			// The derived merge is best-effort; the cached profile still
			// answers the read.
			slog.Warn("device weight lookup failed", "user", uc.UserID, "error", err)
		case ok:
			profile.WeightKG = weight
		}
	}
	return profile, nil
}

// Update is unconditionally a write: the origin saves first, then the
// returned profile is written read-modify-write into the cache (update the
// existing row when present, insert otherwise). No expiry branch exists.
func (s *ProfileService) Update(ctx context.Context, uc types.UserContext, profile *models.Profile) (*models.Profile, error) {
	saved, err := s.origin.SaveProfile(ctx, uc.Token, profile)
	if err != nil {
		return nil, err
	}
	saved.SetOwner(uc.UserID)

	existing, err := s.profiles.GetForUser(ctx, uc)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		saved.ID = existing.ID
		saved.CreatedAt = existing.CreatedAt
		if err := s.profiles.Update(ctx, []*models.Profile{saved}); err != nil {
			return nil, err
		}
		return saved, nil
	}

	inserted, err := s.profiles.Insert(ctx, []*models.Profile{saved})
	if err != nil {
		return nil, err
	}
	return inserted[0], nil
}
