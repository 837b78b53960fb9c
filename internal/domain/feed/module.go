package feed

import (
	communityRepo "zoomies/internal/domain/community/repository"
	"zoomies/internal/domain/feed/handler"
	"zoomies/internal/domain/feed/repository"
	"zoomies/internal/domain/feed/service"
	userRepo "zoomies/internal/domain/user/repository"
	"zoomies/internal/pkg/middleware"
	"zoomies/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// FeedModule 动态流模块
type FeedModule struct{}

func init() {
	registry.Register(&FeedModule{})
}

func (m *FeedModule) Name() string {
	return "feed"
}

func (m *FeedModule) Priority() int {
	return 10
}

func (m *FeedModule) Init(ctx *registry.ModuleContext) error {
	fRepo := repository.NewFeedRepository(ctx.DB)
	// 帖子补全需要跨域查作者和社区，仓储都只是 db 的薄封装，这里直接各建一份
	authors := userRepo.NewUserRepository(ctx.DB)
	communities := communityRepo.NewCommunityRepository(ctx.DB, ctx.SQLX)

	fService := service.NewFeedService(fRepo, authors, communities, ctx.Activity)
	fHandler := handler.NewFeedHandler(fService)

	setupRoutes(ctx.Router, fHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.FeedHandler) {
	posts := r.Group("/posts")

	// 浏览不需要登录
	posts.GET("", h.ListPosts)
	posts.GET("/:id/comments", h.ListComments)

	auth := posts.Group("")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.POST("", h.CreatePost)
		auth.DELETE("/:id", h.DeletePost)
		auth.POST("/:id/vote", h.VotePost)
		auth.POST("/:id/comments", h.CreateComment)
	}

	comments := r.Group("/comments")
	comments.Use(middleware.AuthMiddleware())
	{
		comments.POST("/:id/vote", h.VoteComment)
	}
}
