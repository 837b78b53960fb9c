package service

import (
	"context"
	"time"
	"zoomies/internal/domain/community/model"
	"zoomies/pkg/cache"
	"zoomies/pkg/logger"
	"zoomies/pkg/metrics"

	"go.uber.org/zap"
)

// 缓存键常量
const (
	CommunityListCacheKey = "community:list"
	CommunityListCacheTTL = time.Minute * 5
)

// CachedCommunityService 带缓存的社区服务
// 社区列表读多写少，列表+统计的两次查询结果整体进 Redis
type CachedCommunityService struct {
	inner CommunityService
	cache cache.CacheService
}

// NewCachedCommunityService 创建带缓存的社区服务
func NewCachedCommunityService(inner CommunityService, cache cache.CacheService) CommunityService {
	return &CachedCommunityService{inner: inner, cache: cache}
}

// ListCommunities 优先读缓存，未命中回源并回填
func (s *CachedCommunityService) ListCommunities(ctx context.Context) ([]model.CommunityWithStats, error) {
	var cached []model.CommunityWithStats
	if err := s.cache.Get(ctx, CommunityListCacheKey, &cached); err == nil {
		metrics.GetGlobalCollector().RecordCacheHit("community")
		return cached, nil
	}
	metrics.GetGlobalCollector().RecordCacheMiss("community")

	result, err := s.inner.ListCommunities(ctx)
	if err != nil {
		return nil, err
	}

	// 回填失败不影响主流程
	if err := s.cache.Set(ctx, CommunityListCacheKey, result, CommunityListCacheTTL); err != nil {
		logger.Log.Warn("Failed to cache community list", zap.Error(err))
	}
	return result, nil
}

// ListUserCommunities 用户维度的列表不缓存，直接透传
func (s *CachedCommunityService) ListUserCommunities(ctx context.Context, userID string) ([]model.Member, error) {
	return s.inner.ListUserCommunities(ctx, userID)
}

// Join 加入社区并失效列表缓存（成员数变了）
func (s *CachedCommunityService) Join(ctx context.Context, userID, communityID string) error {
	if err := s.inner.Join(ctx, userID, communityID); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Leave 退出社区并失效列表缓存
func (s *CachedCommunityService) Leave(ctx context.Context, userID, communityID string) error {
	if err := s.inner.Leave(ctx, userID, communityID); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// TouchActivity 活跃时间只影响统计的时间窗口，靠 TTL 自然过期即可
func (s *CachedCommunityService) TouchActivity(userID, communityID string) {
	s.inner.TouchActivity(userID, communityID)
}

func (s *CachedCommunityService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, CommunityListCacheKey); err != nil {
		logger.Log.Warn("Failed to invalidate community cache", zap.Error(err))
	}
}
