package model

import (
	"time"
	baseModel "zoomies/pkg/model"
)

// Community 社区
type Community struct {
	baseModel.BaseModel
	Name        string `gorm:"uniqueIndex" json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"` // 图标标签，前端映射成表情/图片
}

func (Community) TableName() string {
	return "communities"
}

// Member 社区成员关系
// (user_id, community_id) 唯一，加入走 upsert，退出直接删行
type Member struct {
	baseModel.BaseModel
	UserID       string    `gorm:"uniqueIndex:idx_member_user_community" json:"userId"`
	CommunityID  string    `gorm:"uniqueIndex:idx_member_user_community" json:"communityId"`
	JoinedAt     time.Time `json:"joinedAt"`
	LastActivity time.Time `json:"lastActivity"`
	IsActive     bool      `gorm:"default:true" json:"isActive"`

	Community *Community `gorm:"foreignKey:CommunityID" json:"community,omitempty"`
}

func (Member) TableName() string {
	return "community_members"
}

// Stats 成员数聚合结果，由 sqlx 直接扫描
type Stats struct {
	CommunityID string `db:"community_id" json:"communityId"`
	MemberCount int64  `db:"member_count" json:"memberCount"`
	ActiveCount int64  `db:"active_count" json:"activeCount"`
}

// CommunityWithStats 社区 + 成员统计
type CommunityWithStats struct {
	Community
	MemberCount int64 `json:"memberCount"`
	ActiveCount int64 `json:"activeCount"`
}

// Summary 嵌入帖子列表的社区摘要
type Summary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// ToSummary 转为摘要视图
func (c *Community) ToSummary() Summary {
	return Summary{
		ID:   c.ID,
		Name: c.Name,
		Icon: c.Icon,
	}
}
