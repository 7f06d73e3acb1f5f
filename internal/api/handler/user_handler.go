package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/cinesocial/internal/service"
	"github.com/d60-Lab/cinesocial/pkg/response"
)

type usernameRequest struct {
	Username string `json:"username"`
}

// Register 注册
// @Summary 注册
// @Tags users
// @Accept json
// @Produce json
// @Param request body service.RegisterInput true "注册信息"
// @Success 201 {object} map[string]model.User
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req service.RegisterInput
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"user": user})
}

// CheckUsername 用户名是否可用
// @Summary 检查用户名
// @Tags users
// @Accept json
// @Produce json
// @Param request body usernameRequest true "用户名"
// @Success 200 {object} map[string]bool
// @Router /api/checkusername [post]
func (h *Handler) CheckUsername(c *gin.Context) {
	var req usernameRequest
	if !bindJSON(c, &req) {
		return
	}
	free, err := h.userService.UsernameFree(c.Request.Context(), req.Username)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"usernameFree": free})
}

// GetUsers 全部用户
// @Summary 用户列表
// @Tags users
// @Produce json
// @Success 200 {object} map[string][]model.User
// @Router /api/users [get]
func (h *Handler) GetUsers(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"users": users})
}

// GetUser 用户详情，含关注数与粉丝数
// @Summary 用户详情
// @Tags users
// @Produce json
// @Param user_id path int true "用户ID"
// @Success 200 {object} map[string]model.UserProfile
// @Failure 404 {object} response.Response
// @Router /api/users/{user_id} [get]
func (h *Handler) GetUser(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	user, err := h.userService.Get(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"user": user})
}

// PatchUser 修改资料
// @Summary 修改资料
// @Tags users
// @Accept json
// @Produce json
// @Param user_id path int true "用户ID"
// @Param request body service.UpdateUserInput true "资料"
// @Success 200 {object} map[string]model.User
// @Failure 404 {object} response.Response
// @Router /api/users/{user_id} [patch]
func (h *Handler) PatchUser(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	var req service.UpdateUserInput
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.userService.Update(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"user": user})
}

// DeleteUser 注销用户
// @Summary 注销用户
// @Tags users
// @Param user_id path int true "用户ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /api/users/{user_id} [delete]
func (h *Handler) DeleteUser(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	if _, err := h.userService.Delete(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
