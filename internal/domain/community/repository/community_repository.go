package repository

import (
	"context"
	"time"
	"zoomies/internal/domain/community/model"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 活跃成员的判定窗口
const activeWindow = 7 * 24 * time.Hour

// CommunityRepository 接口定义
type CommunityRepository interface {
	GetList(ctx context.Context) ([]model.Community, error)
	GetByID(ctx context.Context, id string) (*model.Community, error)
	GetSummariesByIDs(ctx context.Context, ids []string) ([]model.Community, error)
	GetStats(ctx context.Context) ([]model.Stats, error)
	GetUserMemberships(ctx context.Context, userID string) ([]model.Member, error)
	Join(ctx context.Context, userID, communityID string) error
	Leave(ctx context.Context, userID, communityID string) error
	TouchActivity(ctx context.Context, userID, communityID string) error
}

// communityRepository 实现
// 常规读写走 gorm，成员数聚合用 sqlx 直接扫描到 Stats
type communityRepository struct {
	db  *gorm.DB
	sdb *sqlx.DB
}

// NewCommunityRepository 创建新的仓库实例
func NewCommunityRepository(db *gorm.DB, sdb *sqlx.DB) CommunityRepository {
	return &communityRepository{db: db, sdb: sdb}
}

// GetList 获取全部社区，按名称排序
func (r *communityRepository) GetList(ctx context.Context) ([]model.Community, error) {
	var communities []model.Community
	if err := r.db.WithContext(ctx).Order("name asc").Find(&communities).Error; err != nil {
		return nil, err
	}
	return communities, nil
}

// GetByID 根据ID获取社区
func (r *communityRepository) GetByID(ctx context.Context, id string) (*model.Community, error) {
	var community model.Community
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&community).Error; err != nil {
		return nil, err
	}
	return &community, nil
}

// GetSummariesByIDs 批量获取社区，用于全站动态流的社区补全
func (r *communityRepository) GetSummariesByIDs(ctx context.Context, ids []string) ([]model.Community, error) {
	var communities []model.Community
	if len(ids) == 0 {
		return communities, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&communities).Error; err != nil {
		return nil, err
	}
	return communities, nil
}

const statsQuery = `
SELECT community_id,
       COUNT(*) FILTER (WHERE is_active)                                  AS member_count,
       COUNT(*) FILTER (WHERE is_active AND last_activity > $1)           AS active_count
FROM community_members
GROUP BY community_id`

// GetStats 按社区聚合成员数与活跃成员数
func (r *communityRepository) GetStats(ctx context.Context) ([]model.Stats, error) {
	var stats []model.Stats
	since := time.Now().Add(-activeWindow)
	if err := r.sdb.SelectContext(ctx, &stats, statsQuery, since); err != nil {
		return nil, err
	}
	return stats, nil
}

// GetUserMemberships 获取用户的有效社区成员关系，带社区摘要
func (r *communityRepository) GetUserMemberships(ctx context.Context, userID string) ([]model.Member, error) {
	var members []model.Member
	err := r.db.WithContext(ctx).
		Preload("Community").
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("joined_at desc").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// Join 幂等加入：重复加入只刷新活跃时间
func (r *communityRepository) Join(ctx context.Context, userID, communityID string) error {
	now := time.Now()
	member := &model.Member{
		UserID:       userID,
		CommunityID:  communityID,
		JoinedAt:     now,
		LastActivity: now,
		IsActive:     true,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "community_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"is_active":     true,
			"last_activity": now,
			"updated_at":    now,
		}),
	}).Create(member).Error
}

// Leave 幂等退出：行不存在也视为成功
func (r *communityRepository) Leave(ctx context.Context, userID, communityID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND community_id = ?", userID, communityID).
		Delete(&model.Member{}).Error
}

// TouchActivity 刷新成员的最近活跃时间
func (r *communityRepository) TouchActivity(ctx context.Context, userID, communityID string) error {
	return r.db.WithContext(ctx).Model(&model.Member{}).
		Where("user_id = ? AND community_id = ?", userID, communityID).
		Update("last_activity", time.Now()).Error
}
