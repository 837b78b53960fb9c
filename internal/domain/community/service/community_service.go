package service

import (
	"context"
	"zoomies/internal/domain/community/model"
	"zoomies/internal/domain/community/repository"
	"zoomies/internal/pkg/worker"
	"zoomies/pkg/logger"

	"go.uber.org/zap"
)

// ActivityQueue 活跃度任务投递接口
type ActivityQueue interface {
	AddTask(task worker.ActivityTask)
}

// CommunityService 社区服务接口
type CommunityService interface {
	ListCommunities(ctx context.Context) ([]model.CommunityWithStats, error)
	ListUserCommunities(ctx context.Context, userID string) ([]model.Member, error)
	Join(ctx context.Context, userID, communityID string) error
	Leave(ctx context.Context, userID, communityID string) error
	TouchActivity(userID, communityID string)
}

// communityService 实现
type communityService struct {
	repo     repository.CommunityRepository
	activity ActivityQueue
}

// NewCommunityService 创建社区服务
func NewCommunityService(repo repository.CommunityRepository, activity ActivityQueue) CommunityService {
	return &communityService{repo: repo, activity: activity}
}

// ListCommunities 社区列表 + 成员统计
// 两次查询按 community_id 合并；统计失败只降级为 0，列表本身照常返回
func (s *communityService) ListCommunities(ctx context.Context) ([]model.CommunityWithStats, error) {
	communities, err := s.repo.GetList(ctx)
	if err != nil {
		return nil, err
	}

	statsByID := make(map[string]model.Stats)
	stats, err := s.repo.GetStats(ctx)
	if err != nil {
		logger.Log.Warn("Failed to load community stats, falling back to zero counts", zap.Error(err))
	} else {
		for _, st := range stats {
			statsByID[st.CommunityID] = st
		}
	}

	result := make([]model.CommunityWithStats, 0, len(communities))
	for _, c := range communities {
		st := statsByID[c.ID]
		result = append(result, model.CommunityWithStats{
			Community:   c,
			MemberCount: st.MemberCount,
			ActiveCount: st.ActiveCount,
		})
	}
	return result, nil
}

// ListUserCommunities 当前用户加入的社区
func (s *communityService) ListUserCommunities(ctx context.Context, userID string) ([]model.Member, error) {
	return s.repo.GetUserMemberships(ctx, userID)
}

// Join 加入社区（幂等）
func (s *communityService) Join(ctx context.Context, userID, communityID string) error {
	// 先确认社区存在，给调用方一个明确的 not-found
	if _, err := s.repo.GetByID(ctx, communityID); err != nil {
		return err
	}
	return s.repo.Join(ctx, userID, communityID)
}

// Leave 退出社区（幂等，未加入过也不报错）
func (s *communityService) Leave(ctx context.Context, userID, communityID string) error {
	return s.repo.Leave(ctx, userID, communityID)
}

// TouchActivity 刷新活跃时间，投递到 worker 池异步执行
func (s *communityService) TouchActivity(userID, communityID string) {
	s.activity.AddTask(worker.ActivityTask{
		UserID:      userID,
		CommunityID: communityID,
	})
}
