package service

import (
	"context"
	"testing"

	"zoomies/internal/domain/user/model"
	"zoomies/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	config.GlobalConfig.JWT = config.JWTConfig{
		Secret: "test_secret_key_for_unit_tests_0123456789",
		Expire: 24,
	}
	m.Run()
}

// MockUserRepository is a mock of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Upsert(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func TestEnsureProfile(t *testing.T) {
	t.Run("profile upserted and session issued", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)

		mockRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		session, err := service.EnsureProfile(context.Background(), "user-1", ProfilePayload{
			Nickname:  "Ana",
			AvatarURL: "https://example.com/a.png",
			Email:     "ana@example.com",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, session.Token)
		assert.NotNil(t, session.ExpireAt)
		assert.Equal(t, "Ana", session.User.Nickname)
		mockRepo.AssertExpectations(t)
	})

	t.Run("empty nickname defaults to email prefix", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)

		mockRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		session, err := service.EnsureProfile(context.Background(), "user-1", ProfilePayload{
			Email: "mochi@example.com",
		})

		assert.NoError(t, err)
		assert.Equal(t, "mochi", session.User.Nickname)
	})

	t.Run("upsert failure is returned", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)

		mockRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*model.User")).Return(assert.AnError)

		session, err := service.EnsureProfile(context.Background(), "user-1", ProfilePayload{Email: "x@example.com"})

		assert.Error(t, err)
		assert.Nil(t, session)
	})
}

func TestGetProfile(t *testing.T) {
	t.Run("get profile success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)
		user := &model.User{ID: "user-1", Nickname: "Ana"}

		mockRepo.On("GetByID", mock.Anything, "user-1").Return(user, nil)

		result, err := service.GetProfile(context.Background(), "user-1")

		assert.NoError(t, err)
		assert.Equal(t, "user-1", result.ID)
	})

	t.Run("missing profile propagates not found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)

		mockRepo.On("GetByID", mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound)

		_, err := service.GetProfile(context.Background(), "missing")

		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}
