package model

import "time"

// EventKind 动态类型
type EventKind string

const (
	EventPost     EventKind = "post"
	EventWatched  EventKind = "watched"
	EventPostLike EventKind = "post_like"
	EventComment  EventKind = "comment"
	EventRating   EventKind = "rating"
)

// ActivityEvent 动态流中的一条记录。实现仅限本包内的类型。
type ActivityEvent interface {
	Kind() EventKind
	OccurredAt() time.Time
	ActorID() int64
	activity()
}

// PostLikeActivity 点赞记录，附带被赞帖子的电影信息
type PostLikeActivity struct {
	LikeID      int64     `json:"like_id"`
	UserID      int64     `json:"user_id"`
	PostID      int64     `json:"post"`
	CreatedAt   time.Time `json:"created_at"`
	Author      *string   `json:"author"`
	MovieID     *string   `json:"movie_id"`
	MovieTitle  *string   `json:"movie_title"`
	MoviePoster *string   `json:"movie_poster"`
	Body        *string   `json:"body"`
}

// CommentActivity 评论记录，附带所评帖子的电影信息
type CommentActivity struct {
	CommentID   int64     `json:"comment_id"`
	UserID      int64     `json:"user_id"`
	PostID      int64     `json:"post"`
	Author      string    `json:"author"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"created_at"`
	MovieID     *string   `json:"movie_id"`
	MovieTitle  *string   `json:"movie_title"`
	MoviePoster *string   `json:"movie_poster"`
}

type PostEvent struct {
	Type EventKind `json:"type"`
	PostView
}

type WatchedEvent struct {
	Type EventKind `json:"type"`
	Watched
}

type PostLikeEvent struct {
	Type EventKind `json:"type"`
	PostLikeActivity
}

type CommentEvent struct {
	Type EventKind `json:"type"`
	CommentActivity
}

type RatingEvent struct {
	Type EventKind `json:"type"`
	Rating
}

// NoActivity 没有任何动态时返回的占位项
type NoActivity struct {
	Msg string `json:"msg"`
}

func NewPostEvent(v PostView) *PostEvent { return &PostEvent{Type: EventPost, PostView: v} }

func NewWatchedEvent(w Watched) *WatchedEvent { return &WatchedEvent{Type: EventWatched, Watched: w} }

func NewPostLikeEvent(l PostLikeActivity) *PostLikeEvent {
	return &PostLikeEvent{Type: EventPostLike, PostLikeActivity: l}
}

func NewCommentEvent(c CommentActivity) *CommentEvent {
	return &CommentEvent{Type: EventComment, CommentActivity: c}
}

func NewRatingEvent(r Rating) *RatingEvent { return &RatingEvent{Type: EventRating, Rating: r} }

func NewNoActivity() *NoActivity { return &NoActivity{Msg: "No activity yet!"} }

func (e *PostEvent) Kind() EventKind       { return EventPost }
func (e *PostEvent) OccurredAt() time.Time { return e.CreatedAt }
func (e *PostEvent) ActorID() int64        { return e.UserID }
func (*PostEvent) activity()               {}

func (e *WatchedEvent) Kind() EventKind       { return EventWatched }
func (e *WatchedEvent) OccurredAt() time.Time { return e.CreatedAt }
func (e *WatchedEvent) ActorID() int64        { return e.UserID }
func (*WatchedEvent) activity()               {}

func (e *PostLikeEvent) Kind() EventKind       { return EventPostLike }
func (e *PostLikeEvent) OccurredAt() time.Time { return e.CreatedAt }
func (e *PostLikeEvent) ActorID() int64        { return e.UserID }
func (*PostLikeEvent) activity()               {}

func (e *CommentEvent) Kind() EventKind       { return EventComment }
func (e *CommentEvent) OccurredAt() time.Time { return e.CreatedAt }
func (e *CommentEvent) ActorID() int64        { return e.UserID }
func (*CommentEvent) activity()               {}

func (e *RatingEvent) Kind() EventKind       { return EventRating }
func (e *RatingEvent) OccurredAt() time.Time { return e.CreatedAt }
func (e *RatingEvent) ActorID() int64        { return e.UserID }
func (*RatingEvent) activity()               {}

func (*NoActivity) Kind() EventKind       { return "" }
func (*NoActivity) OccurredAt() time.Time { return time.Time{} }
func (*NoActivity) ActorID() int64        { return 0 }
func (*NoActivity) activity()             {}
