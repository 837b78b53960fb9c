package handler

import (
	"zoomies/internal/domain/community/service"
	"zoomies/internal/pkg/common"
	"zoomies/internal/pkg/middleware"
	"zoomies/pkg/response"

	"github.com/gin-gonic/gin"
)

type CommunityHandler struct {
	service service.CommunityService
}

func NewCommunityHandler(s service.CommunityService) *CommunityHandler {
	return &CommunityHandler{service: s}
}

// ListCommunities 社区列表
// @Summary 获取全部社区及成员统计
// @Tags Community
// @Produce json
// @Success 200 {array} model.CommunityWithStats
// @Router /communities [get]
func (h *CommunityHandler) ListCommunities(c *gin.Context) {
	communities, err := h.service.ListCommunities(c.Request.Context())
	if err != nil {
		common.HandleError(c, err, response.ErrCommunityNotFound, "community not found")
		return
	}
	response.Success(c, communities)
}

// ListMine 我加入的社区
func (h *CommunityHandler) ListMine(c *gin.Context) {
	userID := middleware.GetUserID(c)

	members, err := h.service.ListUserCommunities(c.Request.Context(), userID)
	if err != nil {
		common.HandleError(c, err, response.ErrCommunityNotFound, "community not found")
		return
	}
	response.Success(c, members)
}

// Join 加入社区
// @Summary 加入社区（幂等）
// @Tags Community
// @Param id path string true "社区ID"
// @Success 200 {string} string "success"
// @Router /communities/{id}/join [post]
func (h *CommunityHandler) Join(c *gin.Context) {
	communityID := c.Param("id")
	userID := middleware.GetUserID(c)

	if err := h.service.Join(c.Request.Context(), userID, communityID); err != nil {
		common.HandleError(c, err, response.ErrCommunityNotFound, "community not found")
		return
	}
	response.Success(c, "success")
}

// Leave 退出社区
func (h *CommunityHandler) Leave(c *gin.Context) {
	communityID := c.Param("id")
	userID := middleware.GetUserID(c)

	if err := h.service.Leave(c.Request.Context(), userID, communityID); err != nil {
		common.HandleError(c, err, response.ErrCommunityNotFound, "community not found")
		return
	}
	response.Success(c, "success")
}
