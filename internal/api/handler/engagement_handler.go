package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/cinesocial/internal/service"
	"github.com/d60-Lab/cinesocial/pkg/response"
)

type likeRequest struct {
	UserID int64 `json:"user_id"`
	PostID int64 `json:"post_id"`
}

// AddPostLike 点赞
// @Summary 点赞
// @Tags post_likes
// @Accept json
// @Produce json
// @Param request body likeRequest true "点赞"
// @Success 201 {object} map[string]model.PostLike
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/post_likes [post]
func (h *Handler) AddPostLike(c *gin.Context) {
	var req likeRequest
	if !bindJSON(c, &req) {
		return
	}
	like, err := h.engagementService.Like(c.Request.Context(), req.UserID, req.PostID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"like": like})
}

// DeletePostLike 取消点赞
// @Summary 取消点赞
// @Tags post_likes
// @Param user_id path int true "用户ID"
// @Param post_id path int true "帖子ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /api/users/{user_id}/post_likes/{post_id} [delete]
func (h *Handler) DeletePostLike(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	postID, ok := idParam(c, "post_id")
	if !ok {
		return
	}
	if _, err := h.engagementService.Unlike(c.Request.Context(), userID, postID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// GetPostLikers 点赞的用户
// @Summary 帖子点赞用户
// @Tags post_likes
// @Produce json
// @Param post_id path int true "帖子ID"
// @Success 200 {object} map[string][]model.UserSummary
// @Router /api/posts/{post_id}/post_likes [get]
func (h *Handler) GetPostLikers(c *gin.Context) {
	postID, ok := idParam(c, "post_id")
	if !ok {
		return
	}
	users, err := h.engagementService.Likers(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"users": users})
}

// GetUserLikes 用户赞过的帖子 ID
// @Summary 用户点赞
// @Tags post_likes
// @Produce json
// @Param user_id path int true "用户ID"
// @Success 200 {object} map[string][]int64
// @Router /api/users/{user_id}/post_likes [get]
func (h *Handler) GetUserLikes(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	ids, err := h.engagementService.LikedPosts(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"post_likes": ids})
}

// GetComments 帖子评论
// @Summary 帖子评论
// @Tags comments
// @Produce json
// @Param post_id path int true "帖子ID"
// @Success 200 {object} map[string][]model.Comment
// @Failure 404 {object} response.Response
// @Router /api/posts/{post_id}/comments [get]
func (h *Handler) GetComments(c *gin.Context) {
	postID, ok := idParam(c, "post_id")
	if !ok {
		return
	}
	comments, err := h.engagementService.Comments(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"comments": comments})
}

// AddComment 发表评论
// @Summary 发表评论
// @Tags comments
// @Accept json
// @Produce json
// @Param post_id path int true "帖子ID"
// @Param request body service.CreateCommentInput true "评论"
// @Success 201 {object} map[string]model.Comment
// @Failure 400 {object} response.Response
// @Router /api/posts/{post_id}/comments [post]
func (h *Handler) AddComment(c *gin.Context) {
	postID, ok := idParam(c, "post_id")
	if !ok {
		return
	}
	var req service.CreateCommentInput
	if !bindJSON(c, &req) {
		return
	}
	comment, err := h.engagementService.AddComment(c.Request.Context(), postID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"comment": comment})
}

// PatchComment 修改评论
// @Summary 修改评论
// @Tags comments
// @Accept json
// @Produce json
// @Param comment_id path int true "评论ID"
// @Param request body patchBodyRequest true "正文"
// @Success 200 {object} map[string]model.Comment
// @Failure 404 {object} response.Response
// @Router /api/comments/{comment_id} [patch]
func (h *Handler) PatchComment(c *gin.Context) {
	commentID, ok := idParam(c, "comment_id")
	if !ok {
		return
	}
	var req patchBodyRequest
	if !bindJSON(c, &req) {
		return
	}
	comment, err := h.engagementService.EditComment(c.Request.Context(), commentID, req.Body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"comment": comment})
}

// DeleteComment 删除评论
// @Summary 删除评论
// @Tags comments
// @Param comment_id path int true "评论ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /api/comments/{comment_id} [delete]
func (h *Handler) DeleteComment(c *gin.Context) {
	commentID, ok := idParam(c, "comment_id")
	if !ok {
		return
	}
	if _, err := h.engagementService.DeleteComment(c.Request.Context(), commentID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
