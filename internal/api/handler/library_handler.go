package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/cinesocial/internal/service"
	"github.com/d60-Lab/cinesocial/pkg/response"
)

// GetFavourites 收藏列表
// @Summary 收藏列表
// @Tags favourites
// @Produce json
// @Param user_id path int true "用户ID"
// @Param order query string false "ASC 或 DESC" default(DESC)
// @Success 200 {object} map[string][]model.Favourite
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/users/{user_id}/favourites [get]
func (h *Handler) GetFavourites(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	favs, err := h.libraryService.Favourites(c.Request.Context(), userID, c.Query("order"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"favourites": favs})
}

// AddFavourite 收藏电影
// @Summary 收藏电影
// @Tags favourites
// @Accept json
// @Produce json
// @Param user_id path int true "用户ID"
// @Param request body service.BookmarkInput true "电影"
// @Success 201 {object} map[string]model.Favourite
// @Failure 400 {object} response.Response
// @Router /api/users/{user_id}/favourites [post]
func (h *Handler) AddFavourite(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	var req service.BookmarkInput
	if !bindJSON(c, &req) {
		return
	}
	fav, err := h.libraryService.AddFavourite(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"favourite": fav})
}

// DeleteFavourite 取消收藏
// @Summary 取消收藏
// @Tags favourites
// @Param user_id path int true "用户ID"
// @Param movie_id path string true "电影ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /api/users/{user_id}/favourites/{movie_id} [delete]
func (h *Handler) DeleteFavourite(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	if _, err := h.libraryService.RemoveFavourite(c.Request.Context(), userID, c.Param("movie_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// GetWatched 看过列表
// @Summary 看过列表
// @Tags watched
// @Produce json
// @Param user_id path int true "用户ID"
// @Param order query string false "ASC 或 DESC" default(DESC)
// @Success 200 {object} map[string][]model.Watched
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/users/{user_id}/watched [get]
func (h *Handler) GetWatched(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	rows, err := h.libraryService.Watched(c.Request.Context(), userID, c.Query("order"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"watched": rows})
}

// AddWatched 标记看过
// @Summary 标记看过
// @Tags watched
// @Accept json
// @Produce json
// @Param user_id path int true "用户ID"
// @Param request body service.BookmarkInput true "电影"
// @Success 201 {object} map[string]model.Watched
// @Failure 400 {object} response.Response
// @Router /api/users/{user_id}/watched [post]
func (h *Handler) AddWatched(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	var req service.BookmarkInput
	if !bindJSON(c, &req) {
		return
	}
	row, err := h.libraryService.AddWatched(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"watched": row})
}

// DeleteWatched 取消看过
// @Summary 取消看过
// @Tags watched
// @Param user_id path int true "用户ID"
// @Param movie_id path string true "电影ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /api/users/{user_id}/watched/{movie_id} [delete]
func (h *Handler) DeleteWatched(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	if _, err := h.libraryService.RemoveWatched(c.Request.Context(), userID, c.Param("movie_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
