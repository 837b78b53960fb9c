package model

import (
	"encoding/json"

	communityModel "zoomies/internal/domain/community/model"
	userModel "zoomies/internal/domain/user/model"
	baseModel "zoomies/pkg/model"
)

// Post 帖子
// 赞踩计数是 *_votes 表的反范式缓存，投票事务内同步重算
type Post struct {
	baseModel.BaseModel
	AuthorID    string          `gorm:"index" json:"authorId"`
	CommunityID *string         `gorm:"index" json:"communityId"`
	Title       string          `json:"title"`
	Content     string          `json:"content"`
	Topic       *string         `json:"topic"`
	ImageURLs   json.RawMessage `gorm:"type:jsonb" json:"imageUrls"` // 图片 URL 数组
	Upvotes     int64           `json:"upvotes"`
	Downvotes   int64           `json:"downvotes"`
}

func (Post) TableName() string {
	return "community_posts"
}

// PostVote 帖子投票，(user_id, post_id) 唯一，value 为 +1/-1
type PostVote struct {
	baseModel.BaseModel
	UserID string `gorm:"uniqueIndex:idx_post_vote_user_post" json:"userId"`
	PostID string `gorm:"uniqueIndex:idx_post_vote_user_post" json:"postId"`
	Value  int    `json:"value"`
}

func (PostVote) TableName() string {
	return "post_votes"
}

// Comment 评论，只允许一层嵌套：回复的 parent 必须是顶层评论
type Comment struct {
	baseModel.BaseModel
	AuthorID  string  `gorm:"index" json:"authorId"`
	PostID    string  `gorm:"index" json:"postId"`
	ParentID  *string `gorm:"index" json:"parentId"`
	Content   string  `json:"content"`
	Upvotes   int64   `json:"upvotes"`
	Downvotes int64   `json:"downvotes"`
}

func (Comment) TableName() string {
	return "post_comments"
}

// CommentVote 评论投票，(user_id, comment_id) 唯一
type CommentVote struct {
	baseModel.BaseModel
	UserID    string `gorm:"uniqueIndex:idx_comment_vote_user_comment" json:"userId"`
	CommentID string `gorm:"uniqueIndex:idx_comment_vote_user_comment" json:"commentId"`
	Value     int    `json:"value"`
}

func (CommentVote) TableName() string {
	return "comment_votes"
}

// PostView 帖子 + 补全的作者/社区摘要
// 补全失败时对应字段为 null，不影响列表其余部分
type PostView struct {
	Post
	Author    *userModel.Summary      `json:"author"`
	Community *communityModel.Summary `json:"community"`
}

// CommentThread 顶层评论及其直接回复
type CommentThread struct {
	Comment
	Replies []Comment `json:"replies"`
}
