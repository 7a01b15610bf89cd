package gym

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGymRepo struct{ mock.Mock }

func (m *MockGymRepo) Create(ctx context.Context, ownerID int, req CreateGymRequest) (*Gym, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Gym), args.Error(1)
}

func (m *MockGymRepo) GetByID(ctx context.Context, id int) (*Gym, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Gym), args.Error(1)
}

func (m *MockGymRepo) GetBySlug(ctx context.Context, slug string) (*Gym, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Gym), args.Error(1)
}

func (m *MockGymRepo) ListByOwner(ctx context.Context, ownerID int) ([]Gym, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Gym), args.Error(1)
}

func (m *MockGymRepo) ListActive(ctx context.Context) ([]Gym, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Gym), args.Error(1)
}

func (m *MockGymRepo) Update(ctx context.Context, id int, req UpdateGymRequest) (*Gym, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Gym), args.Error(1)
}

func TestGetOwnedGym(t *testing.T) {
	repo := new(MockGymRepo)
	svc := NewService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, 1).Return(&Gym{ID: 1, OwnerID: 7, Name: "Iron Temple"}, nil)

	g, err := svc.GetOwnedGym(ctx, 7, 1)
	require.NoError(t, err)
	assert.Equal(t, "Iron Temple", g.Name)
}

func TestGetOwnedGym_NotFound(t *testing.T) {
	repo := new(MockGymRepo)
	svc := NewService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, 9).Return(nil, assert.AnError)

	_, err := svc.GetOwnedGym(ctx, 7, 9)
	assert.ErrorIs(t, err, ErrGymNotFound)
}

func TestGetOwnedGym_WrongOwner(t *testing.T) {
	repo := new(MockGymRepo)
	svc := NewService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, 1).Return(&Gym{ID: 1, OwnerID: 8}, nil)

	_, err := svc.GetOwnedGym(ctx, 7, 1)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestUpdateGym_ChecksOwnership(t *testing.T) {
	repo := new(MockGymRepo)
	svc := NewService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, 1).Return(&Gym{ID: 1, OwnerID: 8}, nil)

	name := "New Name"
	_, err := svc.UpdateGym(ctx, 7, 1, UpdateGymRequest{Name: &name})
	assert.ErrorIs(t, err, ErrNotOwner)
	repo.AssertNotCalled(t, "Update")
}
