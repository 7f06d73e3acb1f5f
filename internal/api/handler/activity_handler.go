package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/cinesocial/pkg/response"
)

// GetActivity 用户本人动态
// @Summary 用户动态（发帖、看过、点赞、评论、评分，按时间倒序）
// @Tags activity
// @Produce json
// @Param user_id path int true "用户ID"
// @Success 200 {object} map[string][]interface{}
// @Failure 400 {object} response.Response
// @Router /api/users/{user_id}/activity [get]
func (h *Handler) GetActivity(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	events, err := h.activityService.OwnActivity(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"activity": events})
}

// GetFollowerActivity 关注的人的动态
// @Summary 关注动态（看过、点赞、评论、评分，不含发帖）
// @Tags activity
// @Produce json
// @Param user_id path int true "用户ID"
// @Success 200 {object} map[string][]interface{}
// @Failure 400 {object} response.Response
// @Router /api/users/{user_id}/follower_activity [get]
func (h *Handler) GetFollowerActivity(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	events, err := h.activityService.FollowerActivity(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"activity": events})
}
