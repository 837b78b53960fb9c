package model

import (
	"time"
)

// User 用户资料
// ID 由上游身份源下发（首次登录时随 payload 传入），不在本地生成
type User struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Nickname  string    `json:"nickname"`
	AvatarURL string    `json:"avatarUrl"`
	Email     string    `gorm:"uniqueIndex" json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// Summary 嵌入帖子列表的作者摘要
type Summary struct {
	ID        string `json:"id"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatarUrl"`
}

// ToSummary 转为摘要视图
func (u *User) ToSummary() Summary {
	return Summary{
		ID:        u.ID,
		Nickname:  u.Nickname,
		AvatarURL: u.AvatarURL,
	}
}
