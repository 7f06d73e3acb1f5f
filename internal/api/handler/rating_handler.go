package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/cinesocial/internal/service"
	"github.com/d60-Lab/cinesocial/pkg/response"
)

type patchRatingRequest struct {
	Rating int `json:"rating"`
}

// GetMovieRating 电影平均分
// @Summary 电影平均分（保留一位小数，无评分时为 null）
// @Tags ratings
// @Produce json
// @Param movie_id path string true "电影ID"
// @Success 200 {object} map[string]float64
// @Router /api/ratings/{movie_id} [get]
func (h *Handler) GetMovieRating(c *gin.Context) {
	avg, err := h.ratingService.Average(c.Request.Context(), c.Param("movie_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"rating": avg})
}

// GetUserRatings 用户的评分；带 movie_id 时只返回该电影的评分
// @Summary 用户评分
// @Tags ratings
// @Produce json
// @Param user_id path int true "用户ID"
// @Param movie_id query string false "电影ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/users/{user_id}/ratings [get]
func (h *Handler) GetUserRatings(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	movieID := c.Query("movie_id")
	ratings, err := h.ratingService.ListByUser(c.Request.Context(), userID, movieID)
	if err != nil {
		response.Error(c, err)
		return
	}
	found := len(ratings) > 0
	if movieID == "" {
		response.Success(c, gin.H{"response": found, "ratings": ratings})
		return
	}
	if !found {
		response.Success(c, gin.H{"response": false, "rating": gin.H{}})
		return
	}
	response.Success(c, gin.H{"response": true, "rating": ratings[0]})
}

// AddRating 评分
// @Summary 评分
// @Tags ratings
// @Accept json
// @Produce json
// @Param user_id path int true "用户ID"
// @Param movie_id path string true "电影ID"
// @Param request body service.RateInput true "评分"
// @Success 201 {object} map[string]model.Rating
// @Failure 400 {object} response.Response
// @Router /api/users/{user_id}/ratings/{movie_id} [post]
func (h *Handler) AddRating(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	var req service.RateInput
	if !bindJSON(c, &req) {
		return
	}
	rating, err := h.ratingService.Rate(c.Request.Context(), userID, c.Param("movie_id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{"rating": rating})
}

// PatchRating 修改评分
// @Summary 修改评分
// @Tags ratings
// @Accept json
// @Produce json
// @Param user_id path int true "用户ID"
// @Param movie_id path string true "电影ID"
// @Param request body patchRatingRequest true "评分"
// @Success 200 {object} map[string]model.Rating
// @Failure 404 {object} response.Response
// @Router /api/users/{user_id}/ratings/{movie_id} [patch]
func (h *Handler) PatchRating(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	var req patchRatingRequest
	if !bindJSON(c, &req) {
		return
	}
	rating, err := h.ratingService.Update(c.Request.Context(), userID, c.Param("movie_id"), req.Rating)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"rating": rating})
}

// DeleteRating 删除评分
// @Summary 删除评分
// @Tags ratings
// @Param user_id path int true "用户ID"
// @Param movie_id path string true "电影ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /api/users/{user_id}/ratings/{movie_id} [delete]
func (h *Handler) DeleteRating(c *gin.Context) {
	userID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	if _, err := h.ratingService.Delete(c.Request.Context(), userID, c.Param("movie_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
