package handler

import (
	"errors"
	"net/http"
	"zoomies/internal/domain/feed/service"
	"zoomies/internal/pkg/common"
	"zoomies/internal/pkg/middleware"
	"zoomies/pkg/response"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	service service.FeedService
}

func NewFeedHandler(s service.FeedService) *FeedHandler {
	return &FeedHandler{service: s}
}

// PostQuery 帖子列表查询参数
type PostQuery struct {
	CommunityID *string `form:"community_id"`
	Limit       int     `form:"limit"`
}

// PostFormInput 发帖输入
type PostFormInput struct {
	Title       string   `json:"title" binding:"required"`
	Content     string   `json:"content" binding:"required"`
	Topic       *string  `json:"topic"`
	ImageURLs   []string `json:"imageUrls"`
	CommunityID *string  `json:"communityId"`
}

// VoteInput 投票输入
type VoteInput struct {
	Value int `json:"value" binding:"required,oneof=1 -1"`
}

// CommentInput 评论输入
type CommentInput struct {
	Content  string  `json:"content" binding:"required"`
	ParentID *string `json:"parentId"`
}

// ListPosts 帖子列表
// @Summary 获取动态流（全站或指定社区）
// @Tags Feed
// @Param community_id query string false "社区ID"
// @Param limit query int false "条数上限"
// @Success 200 {array} model.PostView
// @Router /posts [get]
func (h *FeedHandler) ListPosts(c *gin.Context) {
	var q PostQuery
	c.ShouldBindQuery(&q)

	posts, err := h.service.ListPosts(c.Request.Context(), q.CommunityID, q.Limit)
	if err != nil {
		common.HandleError(c, err, response.ErrPostNotFound, "post not found")
		return
	}
	response.Success(c, posts)
}

// CreatePost 发帖
// @Summary 发布帖子
// @Tags Feed
// @Accept json
// @Produce json
// @Param input body PostFormInput true "帖子内容"
// @Success 200 {object} model.Post
// @Router /posts [post]
func (h *FeedHandler) CreatePost(c *gin.Context) {
	var input PostFormInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	post, err := h.service.CreatePost(c.Request.Context(), userID, service.PostInput{
		Title:       input.Title,
		Content:     input.Content,
		Topic:       input.Topic,
		ImageURLs:   input.ImageURLs,
		CommunityID: input.CommunityID,
	})
	if err != nil {
		common.HandleError(c, err, response.ErrPostNotFound, "post not found")
		return
	}
	response.Success(c, post)
}

// DeletePost 删除帖子（仅作者）
func (h *FeedHandler) DeletePost(c *gin.Context) {
	postID := c.Param("id")
	userID := middleware.GetUserID(c)

	err := h.service.DeletePost(c.Request.Context(), userID, postID)
	if err != nil {
		if errors.Is(err, service.ErrNotPostOwner) {
			response.Error(c, http.StatusForbidden, response.ErrNotPostOwner, err.Error())
			return
		}
		common.HandleError(c, err, response.ErrPostNotFound, "post not found")
		return
	}
	response.Success(c, "success")
}

// VotePost 帖子投票
// @Summary 给帖子投票（+1/-1，重复投票覆盖）
// @Tags Feed
// @Param id path string true "帖子ID"
// @Param input body VoteInput true "票值"
// @Success 200 {string} string "success"
// @Router /posts/{id}/vote [post]
func (h *FeedHandler) VotePost(c *gin.Context) {
	postID := c.Param("id")

	var input VoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	if err := h.service.VotePost(c.Request.Context(), userID, postID, input.Value); err != nil {
		if errors.Is(err, service.ErrInvalidVote) {
			response.Error(c, http.StatusBadRequest, response.ErrInvalidVote, err.Error())
			return
		}
		common.HandleError(c, err, response.ErrPostNotFound, "post not found")
		return
	}
	response.Success(c, "success")
}

// ListComments 评论列表
func (h *FeedHandler) ListComments(c *gin.Context) {
	postID := c.Param("id")

	threads, err := h.service.ListComments(c.Request.Context(), postID)
	if err != nil {
		common.HandleError(c, err, response.ErrPostNotFound, "post not found")
		return
	}
	response.Success(c, threads)
}

// CreateComment 发表评论
func (h *FeedHandler) CreateComment(c *gin.Context) {
	postID := c.Param("id")

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	comment, err := h.service.CreateComment(c.Request.Context(), userID, postID, input.Content, input.ParentID)
	if err != nil {
		if errors.Is(err, service.ErrParentMismatch) || errors.Is(err, service.ErrParentNotTopLevel) {
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParent, err.Error())
			return
		}
		common.HandleError(c, err, response.ErrCommentNotFound, "post or parent comment not found")
		return
	}
	response.Success(c, comment)
}

// VoteComment 评论投票
func (h *FeedHandler) VoteComment(c *gin.Context) {
	commentID := c.Param("id")

	var input VoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	if err := h.service.VoteComment(c.Request.Context(), userID, commentID, input.Value); err != nil {
		if errors.Is(err, service.ErrInvalidVote) {
			response.Error(c, http.StatusBadRequest, response.ErrInvalidVote, err.Error())
			return
		}
		common.HandleError(c, err, response.ErrCommentNotFound, "comment not found")
		return
	}
	response.Success(c, "success")
}
