package handler

import (
	"net/http"
	"zoomies/internal/domain/user/service"
	"zoomies/internal/pkg/common"
	"zoomies/internal/pkg/middleware"
	"zoomies/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

// SessionInput 登录会话输入，由前端透传身份源的用户信息
type SessionInput struct {
	UserID    string `json:"userId" binding:"required,uuid"`
	Nickname  string `json:"nickname"`
	AvatarURL string `json:"avatarUrl"`
	Email     string `json:"email" binding:"required,email"`
}

// CreateSession 建立会话
// @Summary 确保用户资料存在并签发 Token
// @Tags User
// @Accept json
// @Produce json
// @Param input body SessionInput true "身份信息"
// @Success 200 {object} service.Session
// @Router /auth/session [post]
func (h *UserHandler) CreateSession(c *gin.Context) {
	var input SessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	session, err := h.service.EnsureProfile(c.Request.Context(), input.UserID, service.ProfilePayload{
		Nickname:  input.Nickname,
		AvatarURL: input.AvatarURL,
		Email:     input.Email,
	})
	if err != nil {
		common.HandleError(c, err, response.ErrUserNotFound, "user not found")
		return
	}
	response.Success(c, session)
}

// GetMe 获取当前登录用户资料
func (h *UserHandler) GetMe(c *gin.Context) {
	userID := middleware.GetUserID(c)

	user, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		common.HandleError(c, err, response.ErrUserNotFound, "user not found")
		return
	}
	response.Success(c, user)
}
