package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/cinesocial/pkg/response"
)

type followRequest struct {
	Following int64 `json:"following" binding:"required"`
}

// Follow 建立关注（异步写粉丝表）
// @Summary 关注用户
// @Tags followers
// @Accept json
// @Produce json
// @Param user_id path int true "用户ID"
// @Param request body followRequest true "被关注的用户"
// @Success 201 {object} map[string]model.Follow
// @Failure 400 {object} response.Response
// @Router /api/users/{user_id}/followers [post]
func (h *Handler) Follow(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	var req followRequest
	if !bindJSON(c, &req) {
		return
	}
	follow, err := h.relService.Follow(c.Request.Context(), userID, req.Following)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"following": follow})
}

// Unfollow 取消关注
// @Summary 取消关注
// @Tags followers
// @Accept json
// @Param user_id path int true "用户ID"
// @Param request body followRequest true "取消关注的用户"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /api/users/{user_id}/followers [delete]
func (h *Handler) Unfollow(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	var req followRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.relService.Unfollow(c.Request.Context(), userID, req.Following); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// GetFollowData 关注列表与粉丝列表（粉丝来自冗余表）
// @Summary 关注与粉丝
// @Tags followers
// @Produce json
// @Param user_id path int true "用户ID"
// @Param order query string false "ASC 或 DESC" default(DESC)
// @Success 200 {object} service.FollowData
// @Failure 400 {object} response.Response
// @Router /api/users/{user_id}/followers [get]
func (h *Handler) GetFollowData(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	data, err := h.relService.FollowData(c.Request.Context(), userID, c.Query("order"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, data)
}
