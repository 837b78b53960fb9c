package service

import (
	"context"
	"testing"
	"time"

	"zoomies/internal/domain/community/model"
	"zoomies/internal/pkg/worker"
	"zoomies/pkg/logger"
	baseModel "zoomies/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	logger.Init("debug")
	m.Run()
}

// MockCommunityRepository is a mock of CommunityRepository
type MockCommunityRepository struct {
	mock.Mock
}

func (m *MockCommunityRepository) GetList(ctx context.Context) ([]model.Community, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Community), args.Error(1)
}

func (m *MockCommunityRepository) GetByID(ctx context.Context, id string) (*model.Community, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Community), args.Error(1)
}

func (m *MockCommunityRepository) GetSummariesByIDs(ctx context.Context, ids []string) ([]model.Community, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Community), args.Error(1)
}

func (m *MockCommunityRepository) GetStats(ctx context.Context) ([]model.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Stats), args.Error(1)
}

func (m *MockCommunityRepository) GetUserMemberships(ctx context.Context, userID string) ([]model.Member, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Member), args.Error(1)
}

func (m *MockCommunityRepository) Join(ctx context.Context, userID, communityID string) error {
	args := m.Called(ctx, userID, communityID)
	return args.Error(0)
}

func (m *MockCommunityRepository) Leave(ctx context.Context, userID, communityID string) error {
	args := m.Called(ctx, userID, communityID)
	return args.Error(0)
}

func (m *MockCommunityRepository) TouchActivity(ctx context.Context, userID, communityID string) error {
	args := m.Called(ctx, userID, communityID)
	return args.Error(0)
}

// MockActivityQueue is a mock of ActivityQueue
type MockActivityQueue struct {
	mock.Mock
}

func (m *MockActivityQueue) AddTask(task worker.ActivityTask) {
	m.Called(task)
}

func testCommunity(id, name string) model.Community {
	return model.Community{
		BaseModel: baseModel.BaseModel{ID: id, CreatedAt: time.Now()},
		Name:      name,
	}
}

func TestListCommunities(t *testing.T) {
	t.Run("stats merged by community id", func(t *testing.T) {
		repo := new(MockCommunityRepository)
		svc := NewCommunityService(repo, new(MockActivityQueue))

		repo.On("GetList", mock.Anything).Return([]model.Community{
			testCommunity("c1", "Cats"),
			testCommunity("c2", "Dogs"),
		}, nil)
		repo.On("GetStats", mock.Anything).Return([]model.Stats{
			{CommunityID: "c1", MemberCount: 12, ActiveCount: 3},
		}, nil)

		result, err := svc.ListCommunities(context.Background())

		assert.NoError(t, err)
		assert.Len(t, result, 2)
		assert.Equal(t, int64(12), result[0].MemberCount)
		assert.Equal(t, int64(3), result[0].ActiveCount)
		// 没有成员的社区计数为 0
		assert.Equal(t, int64(0), result[1].MemberCount)
		repo.AssertExpectations(t)
	})

	t.Run("stats failure degrades to zero counts", func(t *testing.T) {
		repo := new(MockCommunityRepository)
		svc := NewCommunityService(repo, new(MockActivityQueue))

		repo.On("GetList", mock.Anything).Return([]model.Community{testCommunity("c1", "Cats")}, nil)
		repo.On("GetStats", mock.Anything).Return(nil, assert.AnError)

		result, err := svc.ListCommunities(context.Background())

		assert.NoError(t, err)
		assert.Len(t, result, 1)
		assert.Equal(t, int64(0), result[0].MemberCount)
	})

	t.Run("list failure is returned", func(t *testing.T) {
		repo := new(MockCommunityRepository)
		svc := NewCommunityService(repo, new(MockActivityQueue))

		repo.On("GetList", mock.Anything).Return(nil, assert.AnError)

		_, err := svc.ListCommunities(context.Background())

		assert.Error(t, err)
	})
}

func TestJoin(t *testing.T) {
	t.Run("join delegates to upsert", func(t *testing.T) {
		repo := new(MockCommunityRepository)
		svc := NewCommunityService(repo, new(MockActivityQueue))
		community := testCommunity("c1", "Cats")

		repo.On("GetByID", mock.Anything, "c1").Return(&community, nil)
		repo.On("Join", mock.Anything, "user-1", "c1").Return(nil)

		err := svc.Join(context.Background(), "user-1", "c1")

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("join unknown community returns not found", func(t *testing.T) {
		repo := new(MockCommunityRepository)
		svc := NewCommunityService(repo, new(MockActivityQueue))

		repo.On("GetByID", mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound)

		err := svc.Join(context.Background(), "user-1", "missing")

		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		repo.AssertNotCalled(t, "Join", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLeave(t *testing.T) {
	t.Run("leave is idempotent", func(t *testing.T) {
		repo := new(MockCommunityRepository)
		svc := NewCommunityService(repo, new(MockActivityQueue))

		// 仓储对不存在的行也返回 nil
		repo.On("Leave", mock.Anything, "user-1", "c1").Return(nil)

		assert.NoError(t, svc.Leave(context.Background(), "user-1", "c1"))
		assert.NoError(t, svc.Leave(context.Background(), "user-1", "c1"))
	})
}

func TestTouchActivity(t *testing.T) {
	t.Run("touch enqueues worker task", func(t *testing.T) {
		repo := new(MockCommunityRepository)
		queue := new(MockActivityQueue)
		svc := NewCommunityService(repo, queue)

		queue.On("AddTask", worker.ActivityTask{UserID: "user-1", CommunityID: "c1"}).Return()

		svc.TouchActivity("user-1", "c1")

		queue.AssertExpectations(t)
	})
}
