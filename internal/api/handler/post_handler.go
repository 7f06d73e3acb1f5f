package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/cinesocial/internal/model"
	"github.com/d60-Lab/cinesocial/internal/service"
	"github.com/d60-Lab/cinesocial/pkg/response"
)

type viewerBody struct {
	UserID *int64 `json:"user_id"`
}

type patchBodyRequest struct {
	Body string `json:"body"`
}

type genreRequest struct {
	Genre string `json:"genre"`
}

func feedParams(c *gin.Context) service.FeedParams {
	return service.FeedParams{
		Limit: c.Query("limit"),
		Page:  c.Query("page"),
		Genre: c.Query("genre"),
		Order: c.Query("order"),
	}
}

// viewerID 查看者：优先取 ?user_id=，否则取 JSON 请求体中的 user_id
func viewerID(c *gin.Context) (*int64, bool) {
	if s := c.Query("user_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			response.BadRequest(c, "Bad Request")
			return nil, false
		}
		return &id, true
	}
	if c.Request.ContentLength <= 0 {
		return nil, true
	}
	var body viewerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "Body Invalid")
		return nil, false
	}
	return body.UserID, true
}

// GetPosts 帖子流
// @Summary 帖子流（可按类型过滤，指定查看者时只看本人及关注的人）
// @Tags posts
// @Produce json
// @Param limit query int false "每页条数 (0,100]" default(10)
// @Param page query int false "页码" default(1)
// @Param genre query string false "类型 ID 或名称"
// @Param user_id query int false "查看者"
// @Success 200 {object} map[string][]model.PostView
// @Failure 400 {object} response.Response
// @Router /api/posts [get]
func (h *Handler) GetPosts(c *gin.Context) {
	viewer, ok := viewerID(c)
	if !ok {
		return
	}
	posts, err := h.postService.ComposeFeed(c.Request.Context(), viewer, feedParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"posts": posts})
}

// GetPost 单个帖子及其类型标签
// @Summary 帖子详情
// @Tags posts
// @Produce json
// @Param post_id path int true "帖子ID"
// @Success 200 {object} map[string]model.PostDetail
// @Failure 404 {object} response.Response
// @Router /api/posts/{post_id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	postID, ok := idParam(c, "post_id")
	if !ok {
		return
	}
	post, err := h.postService.GetPost(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"post": post})
}

// GetPostsByMovie 某部电影的帖子
// @Summary 电影帖子
// @Tags posts
// @Produce json
// @Param movie_id path string true "电影ID"
// @Param limit query int false "每页条数" default(10)
// @Param page query int false "页码" default(1)
// @Success 200 {object} map[string][]model.PostView
// @Failure 400 {object} response.Response
// @Router /api/{movie_id}/posts [get]
func (h *Handler) GetPostsByMovie(c *gin.Context) {
	posts, err := h.postService.PostsByMovie(c.Request.Context(), c.Param("movie_id"), feedParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"posts": posts})
}

// GetPostsByUser 用户发过的帖子
// @Summary 用户帖子
// @Tags posts
// @Produce json
// @Param user_id path int true "用户ID"
// @Success 200 {object} map[string][]model.PostView
// @Router /api/users/{user_id}/posts [get]
func (h *Handler) GetPostsByUser(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	posts, err := h.postService.PostsByUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"posts": posts})
}

// CreatePost 发帖
// @Summary 发帖
// @Tags posts
// @Accept json
// @Produce json
// @Param request body service.CreatePostInput true "帖子"
// @Success 201 {object} map[string]model.Post
// @Failure 400 {object} response.Response
// @Router /api/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req service.CreatePostInput
	if !bindJSON(c, &req) {
		return
	}
	post, err := h.postService.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"post": post})
}

// PatchPost 修改帖子正文
// @Summary 修改帖子
// @Tags posts
// @Accept json
// @Produce json
// @Param post_id path int true "帖子ID"
// @Param request body patchBodyRequest true "正文"
// @Success 200 {object} map[string]model.Post
// @Failure 404 {object} response.Response
// @Router /api/posts/{post_id} [patch]
func (h *Handler) PatchPost(c *gin.Context) {
	postID, ok := idParam(c, "post_id")
	if !ok {
		return
	}
	var req patchBodyRequest
	if !bindJSON(c, &req) {
		return
	}
	post, err := h.postService.UpdateBody(c.Request.Context(), postID, req.Body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"post": post})
}

// DeletePost 删除帖子
// @Summary 删除帖子
// @Tags posts
// @Param post_id path int true "帖子ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /api/posts/{post_id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	postID, ok := idParam(c, "post_id")
	if !ok {
		return
	}
	if _, err := h.postService.Delete(c.Request.Context(), postID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// GetPostGenres 帖子的类型标签
// @Summary 帖子类型
// @Tags genres
// @Produce json
// @Param post_id path int true "帖子ID"
// @Success 200 {object} map[string][]string
// @Failure 404 {object} response.Response
// @Router /api/posts/{post_id}/genres [get]
func (h *Handler) GetPostGenres(c *gin.Context) {
	postID, ok := idParam(c, "post_id")
	if !ok {
		return
	}
	genres, err := h.postService.ListGenres(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"postGenres": genres})
}

// AddPostGenre 给帖子打类型标签
// @Summary 添加类型
// @Tags genres
// @Accept json
// @Produce json
// @Param post_id path int true "帖子ID"
// @Param request body genreRequest true "类型 ID 或名称"
// @Success 201 {object} map[string]model.PostGenre
// @Failure 400 {object} response.Response
// @Router /api/posts/{post_id}/genres [post]
func (h *Handler) AddPostGenre(c *gin.Context) {
	postID, ok := idParam(c, "post_id")
	if !ok {
		return
	}
	var req genreRequest
	if !bindJSON(c, &req) {
		return
	}
	tag, err := h.postService.AddGenre(c.Request.Context(), postID, req.Genre)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"genreObj": tag})
}

// DeletePostGenre 移除帖子的类型标签
// @Summary 移除类型
// @Tags genres
// @Accept json
// @Param post_id path int true "帖子ID"
// @Param request body genreRequest true "类型 ID 或名称"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /api/posts/{post_id}/genres [delete]
func (h *Handler) DeletePostGenre(c *gin.Context) {
	postID, ok := idParam(c, "post_id")
	if !ok {
		return
	}
	var req genreRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := h.postService.RemoveGenre(c.Request.Context(), postID, req.Genre); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListGenres 类型词表
// @Summary 类型词表
// @Tags genres
// @Produce json
// @Success 200 {object} map[string][]model.Genre
// @Router /api/genres [get]
func (h *Handler) ListGenres(c *gin.Context) {
	response.Success(c, gin.H{"genres": model.Genres()})
}
