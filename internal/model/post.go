package model

import "time"

// Post 影评帖子
type Post struct {
	PostID      int64     `json:"post_id" gorm:"primaryKey"`
	Author      string    `json:"author" gorm:"type:varchar(64);not null"`
	UserID      int64     `json:"user_id" gorm:"index:idx_post_user;not null"`
	MovieTitle  string    `json:"movie_title" gorm:"not null"`
	MovieID     string    `json:"movie_id" gorm:"type:varchar(32);index:idx_post_movie;not null"`
	Released    string    `json:"released"`
	MoviePoster string    `json:"movie_poster"`
	Body        string    `json:"body" gorm:"type:text;not null"`
	MediaType   string    `json:"media_type"`
	CreatedAt   time.Time `json:"created_at" gorm:"index:idx_post_created"`

	User *User `json:"-" gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE"`
}

func (Post) TableName() string { return "posts" }

// PostView 列表视图：派生的点赞数、评论数、作者头像，以及查看者本人对该电影的评分
type PostView struct {
	Post
	Likes        int64   `json:"likes"`
	CommentCount int64   `json:"comment_count"`
	ProfilePic   *string `json:"profile_pic"`
	Rating       *int    `json:"rating"`
	AuthorRating *int    `json:"author_rating"`
}

// PostDetail 单帖视图，Genres 按打标顺序
type PostDetail struct {
	PostView
	Genres []string `json:"genres" gorm:"-"`
}
