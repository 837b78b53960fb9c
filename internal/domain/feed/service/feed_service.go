package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	communityModel "zoomies/internal/domain/community/model"
	"zoomies/internal/domain/feed/model"
	"zoomies/internal/domain/feed/repository"
	userModel "zoomies/internal/domain/user/model"
	"zoomies/internal/pkg/worker"
	"zoomies/pkg/logger"
	"zoomies/pkg/utils"

	"go.uber.org/zap"
)

// 业务错误，由 handler 映射成对应的响应码
var (
	ErrInvalidVote       = errors.New("vote value must be +1 or -1")
	ErrNotPostOwner      = errors.New("only the author can delete a post")
	ErrParentMismatch    = errors.New("parent comment does not belong to this post")
	ErrParentNotTopLevel = errors.New("replies to replies are not allowed")
)

// PostInput 发帖输入
type PostInput struct {
	Title       string
	Content     string
	Topic       *string
	ImageURLs   []string
	CommunityID *string
}

// AuthorLookup 作者资料批量查询，由 user 仓储实现
type AuthorLookup interface {
	GetByIDs(ctx context.Context, ids []string) ([]userModel.User, error)
}

// CommunityLookup 社区摘要批量查询，由 community 仓储实现
type CommunityLookup interface {
	GetSummariesByIDs(ctx context.Context, ids []string) ([]communityModel.Community, error)
}

// ActivityQueue 活跃度任务投递接口
type ActivityQueue interface {
	AddTask(task worker.ActivityTask)
}

// FeedService 动态流服务接口
type FeedService interface {
	CreatePost(ctx context.Context, authorID string, input PostInput) (*model.Post, error)
	DeletePost(ctx context.Context, requesterID, postID string) error
	ListPosts(ctx context.Context, communityID *string, limit int) ([]model.PostView, error)
	VotePost(ctx context.Context, userID, postID string, value int) error

	CreateComment(ctx context.Context, authorID, postID, content string, parentID *string) (*model.Comment, error)
	ListComments(ctx context.Context, postID string) ([]model.CommentThread, error)
	VoteComment(ctx context.Context, userID, commentID string, value int) error
}

type feedService struct {
	repo        repository.FeedRepository
	authors     AuthorLookup
	communities CommunityLookup
	activity    ActivityQueue
}

func NewFeedService(repo repository.FeedRepository, authors AuthorLookup, communities CommunityLookup, activity ActivityQueue) FeedService {
	return &feedService{
		repo:        repo,
		authors:     authors,
		communities: communities,
		activity:    activity,
	}
}

// CreatePost 发帖；带社区时顺带刷新作者在该社区的活跃时间
// 发帖和活跃度是两次独立写入，活跃度走异步队列，失败只记日志
func (s *feedService) CreatePost(ctx context.Context, authorID string, input PostInput) (*model.Post, error) {
	images := input.ImageURLs
	if images == nil {
		// 无图的帖子统一存 []，和建表默认值保持一致
		images = []string{}
	}
	imageJSON, _ := json.Marshal(images)

	post := &model.Post{
		AuthorID:    authorID,
		CommunityID: input.CommunityID,
		Title:       input.Title,
		Content:     input.Content,
		Topic:       input.Topic,
		ImageURLs:   imageJSON,
	}

	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	if input.CommunityID != nil {
		s.activity.AddTask(worker.ActivityTask{
			UserID:      authorID,
			CommunityID: *input.CommunityID,
		})
	}

	return post, nil
}

// DeletePost 仅作者本人可删
func (s *feedService) DeletePost(ctx context.Context, requesterID, postID string) error {
	post, err := s.repo.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != requesterID {
		return ErrNotPostOwner
	}
	return s.repo.DeletePost(ctx, postID)
}

// ListPosts 帖子列表，补全作者摘要；全站流再补社区摘要
// 补全是两条 id IN (...) 批量查询并发执行，任一失败只让对应字段为 null
func (s *feedService) ListPosts(ctx context.Context, communityID *string, limit int) ([]model.PostView, error) {
	posts, err := s.repo.GetPosts(ctx, communityID, utils.ClampLimit(limit))
	if err != nil {
		return nil, err
	}

	authorIDs := make([]string, 0, len(posts))
	communityIDs := make([]string, 0, len(posts))
	seenAuthor := make(map[string]bool)
	seenCommunity := make(map[string]bool)
	for _, p := range posts {
		if !seenAuthor[p.AuthorID] {
			seenAuthor[p.AuthorID] = true
			authorIDs = append(authorIDs, p.AuthorID)
		}
		if communityID == nil && p.CommunityID != nil && !seenCommunity[*p.CommunityID] {
			seenCommunity[*p.CommunityID] = true
			communityIDs = append(communityIDs, *p.CommunityID)
		}
	}

	authorByID := make(map[string]userModel.Summary)
	communityByID := make(map[string]communityModel.Summary)

	var wg sync.WaitGroup
	var mu sync.Mutex

	wg.Add(1)
	go func() {
		defer wg.Done()
		users, err := s.authors.GetByIDs(ctx, authorIDs)
		if err != nil {
			logger.Log.Warn("Failed to load post authors", zap.Error(err))
			return
		}
		mu.Lock()
		defer mu.Unlock()
		for i := range users {
			authorByID[users[i].ID] = users[i].ToSummary()
		}
	}()

	if len(communityIDs) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			communities, err := s.communities.GetSummariesByIDs(ctx, communityIDs)
			if err != nil {
				logger.Log.Warn("Failed to load post communities", zap.Error(err))
				return
			}
			mu.Lock()
			defer mu.Unlock()
			for i := range communities {
				communityByID[communities[i].ID] = communities[i].ToSummary()
			}
		}()
	}

	wg.Wait()

	views := make([]model.PostView, 0, len(posts))
	for _, p := range posts {
		view := model.PostView{Post: p}
		if author, ok := authorByID[p.AuthorID]; ok {
			view.Author = &author
		}
		if p.CommunityID != nil {
			if community, ok := communityByID[*p.CommunityID]; ok {
				view.Community = &community
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// VotePost 投票，upsert + 重算计数在仓储层的事务里完成
func (s *feedService) VotePost(ctx context.Context, userID, postID string, value int) error {
	if value != 1 && value != -1 {
		return ErrInvalidVote
	}
	return s.repo.VotePost(ctx, userID, postID, value)
}

// CreateComment 发评论；回复时校验父评论属于同一帖子且是顶层评论
func (s *feedService) CreateComment(ctx context.Context, authorID, postID, content string, parentID *string) (*model.Comment, error) {
	if _, err := s.repo.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}

	if parentID != nil {
		parent, err := s.repo.GetCommentByID(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != postID {
			return nil, ErrParentMismatch
		}
		// 只允许一层嵌套
		if parent.ParentID != nil {
			return nil, ErrParentNotTopLevel
		}
	}

	comment := &model.Comment{
		AuthorID: authorID,
		PostID:   postID,
		ParentID: parentID,
		Content:  content,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments 顶层评论最新优先，每条带时间正序的回复
// 回复用一条 parent_id IN (...) 查询取回后在内存里分组
func (s *feedService) ListComments(ctx context.Context, postID string) ([]model.CommentThread, error) {
	topLevel, err := s.repo.GetTopLevelComments(ctx, postID)
	if err != nil {
		return nil, err
	}

	parentIDs := make([]string, 0, len(topLevel))
	for _, c := range topLevel {
		parentIDs = append(parentIDs, c.ID)
	}

	replies, err := s.repo.GetRepliesByParentIDs(ctx, parentIDs)
	if err != nil {
		return nil, err
	}

	repliesByParent := make(map[string][]model.Comment)
	for _, reply := range replies {
		if reply.ParentID == nil {
			continue
		}
		repliesByParent[*reply.ParentID] = append(repliesByParent[*reply.ParentID], reply)
	}

	threads := make([]model.CommentThread, 0, len(topLevel))
	for _, c := range topLevel {
		threads = append(threads, model.CommentThread{
			Comment: c,
			Replies: repliesByParent[c.ID],
		})
	}
	return threads, nil
}

// VoteComment 评论投票，规则与帖子一致
func (s *feedService) VoteComment(ctx context.Context, userID, commentID string, value int) error {
	if value != 1 && value != -1 {
		return ErrInvalidVote
	}
	return s.repo.VoteComment(ctx, userID, commentID, value)
}
