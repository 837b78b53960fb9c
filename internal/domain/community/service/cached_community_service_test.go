package service

import (
	"context"
	"testing"
	"time"

	"zoomies/internal/domain/community/model"
	"zoomies/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCacheService is a mock of cache.CacheService
type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) Get(ctx context.Context, key string, dest interface{}) error {
	args := m.Called(ctx, key, dest)
	return args.Error(0)
}

func (m *MockCacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheService) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheService) InvalidatePattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

func TestCachedListCommunities(t *testing.T) {
	t.Run("cache miss falls through and backfills", func(t *testing.T) {
		repo := new(MockCommunityRepository)
		mockCache := new(MockCacheService)
		svc := NewCachedCommunityService(NewCommunityService(repo, new(MockActivityQueue)), mockCache)

		mockCache.On("Get", mock.Anything, CommunityListCacheKey, mock.Anything).Return(cache.ErrCacheMiss)
		repo.On("GetList", mock.Anything).Return([]model.Community{testCommunity("c1", "Cats")}, nil)
		repo.On("GetStats", mock.Anything).Return([]model.Stats{}, nil)
		mockCache.On("Set", mock.Anything, CommunityListCacheKey, mock.Anything, CommunityListCacheTTL).Return(nil)

		result, err := svc.ListCommunities(context.Background())

		assert.NoError(t, err)
		assert.Len(t, result, 1)
		mockCache.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		repo := new(MockCommunityRepository)
		mockCache := new(MockCacheService)
		svc := NewCachedCommunityService(NewCommunityService(repo, new(MockActivityQueue)), mockCache)

		mockCache.On("Get", mock.Anything, CommunityListCacheKey, mock.Anything).Return(nil)

		_, err := svc.ListCommunities(context.Background())

		assert.NoError(t, err)
		repo.AssertNotCalled(t, "GetList", mock.Anything)
	})
}

func TestCachedJoinInvalidates(t *testing.T) {
	repo := new(MockCommunityRepository)
	mockCache := new(MockCacheService)
	svc := NewCachedCommunityService(NewCommunityService(repo, new(MockActivityQueue)), mockCache)
	community := testCommunity("c1", "Cats")

	repo.On("GetByID", mock.Anything, "c1").Return(&community, nil)
	repo.On("Join", mock.Anything, "user-1", "c1").Return(nil)
	mockCache.On("Delete", mock.Anything, CommunityListCacheKey).Return(nil)

	err := svc.Join(context.Background(), "user-1", "c1")

	assert.NoError(t, err)
	mockCache.AssertExpectations(t)
}

func TestCachedJoinFailureSkipsInvalidation(t *testing.T) {
	repo := new(MockCommunityRepository)
	mockCache := new(MockCacheService)
	svc := NewCachedCommunityService(NewCommunityService(repo, new(MockActivityQueue)), mockCache)

	repo.On("GetByID", mock.Anything, "c1").Return(nil, assert.AnError)

	err := svc.Join(context.Background(), "user-1", "c1")

	assert.Error(t, err)
	mockCache.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
