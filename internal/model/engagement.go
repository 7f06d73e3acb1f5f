package model

import "time"

// Rating 用户对电影的评分；(user_id, movie_id) 语义上唯一
type Rating struct {
	RatingID    int64     `json:"rating_id" gorm:"primaryKey"`
	UserID      int64     `json:"user_id" gorm:"index:idx_rating_user_movie;not null"`
	MovieID     string    `json:"movie_id" gorm:"type:varchar(32);index:idx_rating_user_movie;index:idx_rating_movie;not null"`
	Rating      int       `json:"rating" gorm:"not null"`
	MovieTitle  string    `json:"movie_title"`
	MoviePoster string    `json:"movie_poster"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Rating) TableName() string { return "ratings" }

// Favourite 收藏
type Favourite struct {
	FavouriteID int64     `json:"favourite_id" gorm:"primaryKey"`
	UserID      int64     `json:"user_id" gorm:"index:idx_favourite_user;not null"`
	MovieID     string    `json:"movie_id" gorm:"type:varchar(32);not null"`
	MoviePoster string    `json:"movie_poster"`
	MovieTitle  string    `json:"movie_title" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Favourite) TableName() string { return "favourites" }

// Watched 看过
type Watched struct {
	WatchedID   int64     `json:"watched_id" gorm:"primaryKey"`
	UserID      int64     `json:"user_id" gorm:"index:idx_watched_user;not null"`
	MovieID     string    `json:"movie_id" gorm:"type:varchar(32);not null"`
	MoviePoster string    `json:"movie_poster"`
	MovieTitle  string    `json:"movie_title"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Watched) TableName() string { return "watched" }

// Comment 帖子评论
type Comment struct {
	CommentID int64     `json:"comment_id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"index:idx_comment_user;not null"`
	PostID    int64     `json:"post" gorm:"index:idx_comment_post;not null"`
	Author    string    `json:"author" gorm:"type:varchar(64)"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`

	Post *Post `json:"-" gorm:"foreignKey:PostID;references:PostID;constraint:OnDelete:CASCADE"`
}

func (Comment) TableName() string { return "comments" }

// PostLike 点赞；(user_id, post_id) 唯一
type PostLike struct {
	LikeID    int64     `json:"like_id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"uniqueIndex:ux_like_user_post;not null"`
	PostID    int64     `json:"post" gorm:"uniqueIndex:ux_like_user_post;index:idx_like_post;not null"`
	CreatedAt time.Time `json:"created_at"`

	Post *Post `json:"-" gorm:"foreignKey:PostID;references:PostID;constraint:OnDelete:CASCADE"`
}

func (PostLike) TableName() string { return "post_likes" }

// PostGenre 帖子的类型标签，Genre 为 TMDB 类型 ID
type PostGenre struct {
	ID        int64     `json:"-" gorm:"primaryKey"`
	PostID    int64     `json:"post" gorm:"uniqueIndex:ux_genre_post_genre;not null"`
	Genre     string    `json:"genre" gorm:"type:varchar(16);uniqueIndex:ux_genre_post_genre;index:idx_genre_genre;not null"`
	CreatedAt time.Time `json:"created_at"`

	Post *Post `json:"-" gorm:"foreignKey:PostID;references:PostID;constraint:OnDelete:CASCADE"`
}

func (PostGenre) TableName() string { return "genres" }
