package gym

import (
	"context"
	"errors"
)

var (
	ErrGymNotFound = errors.New("gym not found")
	ErrNotOwner    = errors.New("gym does not belong to this owner")
)

type Service interface {
	CreateGym(ctx context.Context, ownerID int, req CreateGymRequest) (*Gym, error)
	GetOwnedGym(ctx context.Context, ownerID, gymID int) (*Gym, error)
	ListGyms(ctx context.Context, ownerID int) ([]Gym, error)
	UpdateGym(ctx context.Context, ownerID, gymID int, req UpdateGymRequest) (*Gym, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateGym(ctx context.Context, ownerID int, req CreateGymRequest) (*Gym, error) {
	return s.repo.Create(ctx, ownerID, req)
}

// GetOwnedGym is the tenancy gate: every owner-facing route resolves the
// gym through it before touching gym-scoped rows.
func (s *service) GetOwnedGym(ctx context.Context, ownerID, gymID int) (*Gym, error) {
	gym, err := s.repo.GetByID(ctx, gymID)
	if err != nil {
		return nil, ErrGymNotFound
	}

	if gym.OwnerID != ownerID {
		return nil, ErrNotOwner
	}

	return gym, nil
}

func (s *service) ListGyms(ctx context.Context, ownerID int) ([]Gym, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *service) UpdateGym(ctx context.Context, ownerID, gymID int, req UpdateGymRequest) (*Gym, error) {
	if _, err := s.GetOwnedGym(ctx, ownerID, gymID); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, gymID, req)
}
