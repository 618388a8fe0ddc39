package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/nephrolog/nephrolog-sync/internal/models"
	"github.com/nephrolog/nephrolog-sync/internal/repository"
	"github.com/nephrolog/nephrolog-sync/internal/store"
	"github.com/nephrolog/nephrolog-sync/internal/types"
)

// GoalService serves goals cache-aside. Goals are cache-only once created
// locally; only the initial population comes from the origin.
type GoalService struct {
	goals  *repository.GoalRepository
	origin Origin
}

func NewGoalService(goals *repository.GoalRepository, origin Origin) *GoalService {
	return &GoalService{goals: goals, origin: origin}
}

// GetAll returns the user's goals, fetching from the origin and populating
// the cache only when the cached set is expired. A non-empty cache answers
// without any origin call; an origin failure aborts the read rather than
// serving stale data.
func (s *GoalService) GetAll(ctx context.Context, uc types.UserContext, override *time.Duration) ([]*models.Goal, error) {
	cached, err := s.goals.GetAllForUser(ctx, uc)
	if err != nil {
		return nil, err
	}
	if !store.IsExpired(cached, override) {
		slog.Debug("serving goals from cache", "user", uc.UserID, "count", len(cached))
		return cached, nil
	}

	fetched, err := s.origin.FetchGoals(ctx, uc.Token)
	if err != nil {
		return nil, err
	}
	for _, goal := range fetched {
		goal.SetOwner(uc.UserID)
	}
	if _, err := s.goals.Upsert(ctx, fetched); err != nil {
		return nil, err
	}
	return s.goals.GetAllForUser(ctx, uc)
}

// Save dispatches on id presence: an empty id inserts with a freshly
// generated identifier, a non-empty id updates the existing row.
func (s *GoalService) Save(ctx context.Context, uc types.UserContext, goal *models.Goal) (*models.Goal, error) {
	goal.SetOwner(uc.UserID)
	if goal.ID == "" {
		inserted, err := s.goals.Insert(ctx, []*models.Goal{goal})
		if err != nil {
			return nil, err
		}
		return inserted[0], nil
	}
	if err := s.goals.Update(ctx, []*models.Goal{goal}); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *GoalService) Delete(ctx context.Context, uc types.UserContext, goal *models.Goal) error {
	return s.goals.Delete(ctx, []*models.Goal{goal})
}

func (s *GoalService) RemoveAll(ctx context.Context, uc types.UserContext) error {
	return s.goals.RemoveAllForUser(ctx, uc)
}
