package repository

import (
	"context"
	"time"
	"zoomies/internal/domain/feed/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FeedRepository 接口定义
type FeedRepository interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPostByID(ctx context.Context, id string) (*model.Post, error)
	GetPosts(ctx context.Context, communityID *string, limit int) ([]model.Post, error)
	DeletePost(ctx context.Context, id string) error
	VotePost(ctx context.Context, userID, postID string, value int) error

	CreateComment(ctx context.Context, comment *model.Comment) error
	GetCommentByID(ctx context.Context, id string) (*model.Comment, error)
	GetTopLevelComments(ctx context.Context, postID string) ([]model.Comment, error)
	GetRepliesByParentIDs(ctx context.Context, parentIDs []string) ([]model.Comment, error)
	VoteComment(ctx context.Context, userID, commentID string, value int) error
}

type feedRepository struct {
	db *gorm.DB
}

func NewFeedRepository(db *gorm.DB) FeedRepository {
	return &feedRepository{db: db}
}

// --- Post ---

func (r *feedRepository) CreatePost(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *feedRepository) GetPostByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPosts 最新优先的帖子列表，communityID 为空时取全站
func (r *feedRepository) GetPosts(ctx context.Context, communityID *string, limit int) ([]model.Post, error) {
	var posts []model.Post

	query := r.db.WithContext(ctx).Model(&model.Post{})
	if communityID != nil {
		query = query.Where("community_id = ?", *communityID)
	}

	if err := query.Order("created_at desc").Limit(limit).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// DeletePost 物理删除，关联的投票和评论靠外键级联清理
func (r *feedRepository) DeletePost(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Post{}).Error
}

// VotePost 投票主流程：upsert 投票行 → 重算计数 → 回写帖子
// 三步在同一事务里执行，中途崩溃不会留下与投票表不一致的计数
func (r *feedRepository) VotePost(ctx context.Context, userID, postID string, value int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post model.Post
		if err := tx.Where("id = ?", postID).First(&post).Error; err != nil {
			return err
		}

		vote := &model.PostVote{UserID: userID, PostID: postID, Value: value}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"value":      value,
				"updated_at": time.Now(),
			}),
		}).Create(vote).Error; err != nil {
			return err
		}

		up, down, err := countVotes(tx, &model.PostVote{}, "post_id", postID)
		if err != nil {
			return err
		}

		return tx.Model(&model.Post{}).Where("id = ?", postID).Updates(map[string]interface{}{
			"upvotes":   up,
			"downvotes": down,
		}).Error
	})
}

// --- Comment ---

func (r *feedRepository) CreateComment(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *feedRepository) GetCommentByID(ctx context.Context, id string) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetTopLevelComments 顶层评论，最新优先
func (r *feedRepository) GetTopLevelComments(ctx context.Context, postID string) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND parent_id IS NULL", postID).
		Order("created_at desc").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// GetRepliesByParentIDs 一次取回一批顶层评论的全部回复，按时间正序
func (r *feedRepository) GetRepliesByParentIDs(ctx context.Context, parentIDs []string) ([]model.Comment, error) {
	var replies []model.Comment
	if len(parentIDs) == 0 {
		return replies, nil
	}
	err := r.db.WithContext(ctx).
		Where("parent_id IN ?", parentIDs).
		Order("created_at asc").
		Find(&replies).Error
	if err != nil {
		return nil, err
	}
	return replies, nil
}

// VoteComment 与 VotePost 相同的事务结构，作用在评论上
func (r *feedRepository) VoteComment(ctx context.Context, userID, commentID string, value int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment model.Comment
		if err := tx.Where("id = ?", commentID).First(&comment).Error; err != nil {
			return err
		}

		vote := &model.CommentVote{UserID: userID, CommentID: commentID, Value: value}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "comment_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"value":      value,
				"updated_at": time.Now(),
			}),
		}).Create(vote).Error; err != nil {
			return err
		}

		up, down, err := countVotes(tx, &model.CommentVote{}, "comment_id", commentID)
		if err != nil {
			return err
		}

		return tx.Model(&model.Comment{}).Where("id = ?", commentID).Updates(map[string]interface{}{
			"upvotes":   up,
			"downvotes": down,
		}).Error
	})
}

// countVotes 重算某个目标的赞踩数
func countVotes(tx *gorm.DB, voteModel interface{}, targetColumn, targetID string) (int64, int64, error) {
	var up, down int64
	if err := tx.Model(voteModel).Where(targetColumn+" = ? AND value = ?", targetID, 1).Count(&up).Error; err != nil {
		return 0, 0, err
	}
	if err := tx.Model(voteModel).Where(targetColumn+" = ? AND value = ?", targetID, -1).Count(&down).Error; err != nil {
		return 0, 0, err
	}
	return up, down, nil
}
