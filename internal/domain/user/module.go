package user

import (
	"zoomies/internal/domain/user/handler"
	"zoomies/internal/domain/user/repository"
	"zoomies/internal/domain/user/service"
	"zoomies/internal/pkg/middleware"
	"zoomies/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// UserModule 用户模块
type UserModule struct{}

func init() {
	registry.Register(&UserModule{})
}

func (m *UserModule) Name() string {
	return "user"
}

func (m *UserModule) Priority() int {
	return 1
}

func (m *UserModule) Init(ctx *registry.ModuleContext) error {
	uRepo := repository.NewUserRepository(ctx.DB)
	uService := service.NewUserService(uRepo)
	uHandler := handler.NewUserHandler(uService)

	setupRoutes(ctx.Router, uHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.UserHandler) {
	r.POST("/auth/session", h.CreateSession)

	auth := r.Group("/users")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/me", h.GetMe)
	}
}
