package community

import (
	"zoomies/internal/domain/community/handler"
	"zoomies/internal/domain/community/repository"
	"zoomies/internal/domain/community/service"
	"zoomies/internal/pkg/middleware"
	"zoomies/internal/pkg/registry"
	"zoomies/pkg/cache"

	"github.com/gin-gonic/gin"
)

// CommunityModule 社区模块
type CommunityModule struct{}

func init() {
	registry.Register(&CommunityModule{})
}

func (m *CommunityModule) Name() string {
	return "community"
}

func (m *CommunityModule) Priority() int {
	return 5
}

func (m *CommunityModule) Init(ctx *registry.ModuleContext) error {
	cRepo := repository.NewCommunityRepository(ctx.DB, ctx.SQLX)
	cService := service.NewCommunityService(cRepo, ctx.Activity)
	cService = service.NewCachedCommunityService(cService, cache.NewRedisCache(ctx.Redis))
	cHandler := handler.NewCommunityHandler(cService)

	setupRoutes(ctx.Router, cHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.CommunityHandler) {
	g := r.Group("/communities")

	// 未登录也能浏览社区列表
	g.GET("", h.ListCommunities)

	auth := g.Group("")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/mine", h.ListMine)
		auth.POST("/:id/join", h.Join)
		auth.DELETE("/:id/join", h.Leave)
	}
}
