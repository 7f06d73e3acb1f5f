package service

import "github.com/d60-Lab/cinesocial/pkg/apperr"

// 业务错误，Msg 直接返回给客户端
var (
	ErrInvalidLimit      = apperr.Validation("Invalid limit")
	ErrInvalidGenre      = apperr.Validation("Invalid genre")
	ErrInvalidOrder      = apperr.Validation("Invalid order query")
	ErrMissingFields     = apperr.Validation("missing required fields")
	ErrInvalidRating     = apperr.Validation("Invalid rating")
	ErrFollowSelf        = apperr.Validation("cannot follow self")
	ErrPostNotFound      = apperr.NotFound("Resource not found")
	ErrUserNotFound      = apperr.NotFound("User Not Found")
	ErrLikeNotFound      = apperr.NotFound("Like Not Found")
	ErrCommentNotFound   = apperr.NotFound("Comment Not Found")
	ErrFavouriteNotFound = apperr.NotFound("Favourite Not Found")
	ErrWatchedNotFound   = apperr.NotFound("Watched Not Found")
	ErrRatingNotFound    = apperr.NotFound("Rating Not Found")
	ErrGenreNotFound     = apperr.NotFound("Genre Not Found")
	ErrFollowNotFound    = apperr.NotFound("Follow Not Found")
	ErrUsernameTaken     = apperr.Conflict("Username taken")
)
