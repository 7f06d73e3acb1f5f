package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/cinesocial/internal/service"
	"github.com/d60-Lab/cinesocial/pkg/response"
)

// Handler 聚合全部 HTTP 处理函数
type Handler struct {
	postService       service.PostService
	activityService   service.ActivityService
	ratingService     service.RatingService
	relService        service.RelationshipService
	engagementService service.EngagementService
	libraryService    service.LibraryService
	userService       service.UserService
}

// Services Handler 依赖的服务
type Services struct {
	Posts      service.PostService
	Activity   service.ActivityService
	Ratings    service.RatingService
	Relations  service.RelationshipService
	Engagement service.EngagementService
	Library    service.LibraryService
	Users      service.UserService
}

func NewHandler(s Services) *Handler {
	return &Handler{
		postService:       s.Posts,
		activityService:   s.Activity,
		ratingService:     s.Ratings,
		relService:        s.Relations,
		engagementService: s.Engagement,
		libraryService:    s.Library,
		userService:       s.Users,
	}
}

// idParam 解析路径中的整数 ID，失败时直接返回 400
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "Bad Request")
		return 0, false
	}
	return id, true
}

// bindJSON 绑定请求体，失败时直接返回 400
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		response.BadRequest(c, "Body Invalid")
		return false
	}
	return true
}
