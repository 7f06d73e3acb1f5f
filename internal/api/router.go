package api

import (
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/cinesocial/config"
	_ "github.com/d60-Lab/cinesocial/docs"
	"github.com/d60-Lab/cinesocial/internal/api/handler"
	"github.com/d60-Lab/cinesocial/internal/api/middleware"
)

// NewRouter 组装中间件与全部路由
func NewRouter(cfg *config.Config, h *handler.Handler) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Recovery(), middleware.AccessLog())
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	r.Use(
		gzip.Gzip(gzip.DefaultCompression),
		middleware.RateLimit(cfg.Server.RateLimit, cfg.Server.RateBurst),
		middleware.Timeout(cfg.Server.RequestTimeout),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	if cfg.Server.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")
	{
		api.GET("/genres", h.ListGenres)
		api.POST("/register", h.Register)
		api.POST("/checkusername", h.CheckUsername)
		api.GET("/ratings/:movie_id", h.GetMovieRating)
		api.POST("/post_likes", h.AddPostLike)
		api.GET("/:movie_id/posts", h.GetPostsByMovie)
		api.GET("/movies/:movie_id/posts", h.GetPostsByMovie)

		posts := api.Group("/posts")
		posts.GET("", h.GetPosts)
		posts.POST("", h.CreatePost)
		posts.GET("/:post_id", h.GetPost)
		posts.PATCH("/:post_id", h.PatchPost)
		posts.DELETE("/:post_id", h.DeletePost)
		posts.GET("/:post_id/genres", h.GetPostGenres)
		posts.POST("/:post_id/genres", h.AddPostGenre)
		posts.DELETE("/:post_id/genres", h.DeletePostGenre)
		posts.GET("/:post_id/comments", h.GetComments)
		posts.POST("/:post_id/comments", h.AddComment)
		posts.GET("/:post_id/post_likes", h.GetPostLikers)

		comments := api.Group("/comments")
		comments.PATCH("/:comment_id", h.PatchComment)
		comments.DELETE("/:comment_id", h.DeleteComment)

		users := api.Group("/users")
		users.GET("", h.GetUsers)
		users.GET("/:user_id", h.GetUser)
		users.PATCH("/:user_id", h.PatchUser)
		users.DELETE("/:user_id", h.DeleteUser)
		users.GET("/:user_id/posts", h.GetPostsByUser)
		users.GET("/:user_id/activity", h.GetActivity)
		users.GET("/:user_id/follower_activity", h.GetFollowerActivity)
		users.GET("/:user_id/favourites", h.GetFavourites)
		users.POST("/:user_id/favourites", h.AddFavourite)
		users.DELETE("/:user_id/favourites/:movie_id", h.DeleteFavourite)
		users.GET("/:user_id/watched", h.GetWatched)
		users.POST("/:user_id/watched", h.AddWatched)
		users.DELETE("/:user_id/watched/:movie_id", h.DeleteWatched)
		users.GET("/:user_id/followers", h.GetFollowData)
		users.POST("/:user_id/followers", h.Follow)
		users.DELETE("/:user_id/followers", h.Unfollow)
		users.GET("/:user_id/post_likes", h.GetUserLikes)
		users.DELETE("/:user_id/post_likes/:post_id", h.DeletePostLike)
		users.GET("/:user_id/ratings", h.GetUserRatings)
		users.POST("/:user_id/ratings/:movie_id", h.AddRating)
		users.PATCH("/:user_id/ratings/:movie_id", h.PatchRating)
		users.DELETE("/:user_id/ratings/:movie_id", h.DeleteRating)
	}
	return r
}
