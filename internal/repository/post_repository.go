package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/cinesocial/internal/model"
)

// FeedQuery 帖子列表查询条件
type FeedQuery struct {
	// ViewerID 非空时为每条帖子附上查看者本人对该电影的评分
	ViewerID *int64
	// FollowScope 仅保留查看者本人及其关注者的帖子（需要 ViewerID）
	FollowScope bool
	AuthorID    *int64
	GenreID     string
	MovieID     string
	Limit       int
	Offset      int
}

func (q FeedQuery) scopes() []Scope {
	var scopes []Scope
	if q.FollowScope && q.ViewerID != nil {
		scopes = append(scopes, OwnedBySelfOrFollowees("p.user_id", *q.ViewerID))
	}
	if q.AuthorID != nil {
		scopes = append(scopes, OwnedBy("p.user_id", *q.AuthorID))
	}
	if q.GenreID != "" {
		scopes = append(scopes, TaggedWith(q.GenreID))
	}
	if q.MovieID != "" {
		scopes = append(scopes, ForMovie(q.MovieID))
	}
	return append(scopes, Paginate(q.Limit, q.Offset))
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	Exists(ctx context.Context, postID int64) (bool, error)
	UpdateBody(ctx context.Context, postID int64, body string) (*model.Post, error)
	Delete(ctx context.Context, postID int64) (*model.Post, error)
	ListViews(ctx context.Context, q FeedQuery) ([]model.PostView, error)
	GetView(ctx context.Context, postID int64, viewerID *int64) (*model.PostView, error)
	ListGenres(ctx context.Context, postID int64) ([]string, error)
	AddGenre(ctx context.Context, postID int64, genreID string) (*model.PostGenre, error)
	RemoveGenre(ctx context.Context, postID int64, genreID string) (*model.PostGenre, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

const postViewColumns = `p.post_id, p.author, p.user_id, p.movie_title, p.movie_id, p.released,
	p.movie_poster, p.body, p.media_type, p.created_at,
	COALESCE(l.likes, 0) AS likes,
	COALESCE(c.comment_count, 0) AS comment_count,
	u.profile_pic,
	ar.rating AS author_rating`

// postViews 帖子视图的基础查询：派生计数与评分都通过预聚合的派生表 LEFT JOIN，
// 保证每个帖子恰好一行
func postViews(ctx context.Context, db *gorm.DB, viewerID *int64) *gorm.DB {
	likes := db.Model(&model.PostLike{}).Select("post_id, COUNT(*) AS likes").Group("post_id")
	comments := db.Model(&model.Comment{}).Select("post_id, COUNT(*) AS comment_count").Group("post_id")
	authorRatings := db.Model(&model.Rating{}).
		Select("user_id, movie_id, MAX(rating) AS rating").
		Group("user_id, movie_id")

	q := db.WithContext(ctx).Table("posts AS p").
		Joins("LEFT JOIN (?) AS l ON l.post_id = p.post_id", likes).
		Joins("LEFT JOIN (?) AS c ON c.post_id = p.post_id", comments).
		Joins("LEFT JOIN users AS u ON u.user_id = p.user_id").
		Joins("LEFT JOIN (?) AS ar ON ar.user_id = p.user_id AND ar.movie_id = p.movie_id", authorRatings)

	if viewerID == nil {
		return q.Select(postViewColumns + ", NULL AS rating")
	}
	viewerRatings := db.Model(&model.Rating{}).
		Select("movie_id, MAX(rating) AS rating").
		Where("user_id = ?", *viewerID).
		Group("movie_id")
	return q.Joins("LEFT JOIN (?) AS vr ON vr.movie_id = p.movie_id", viewerRatings).
		Select(postViewColumns + ", vr.rating AS rating")
}

func newestFirst(tx *gorm.DB) *gorm.DB {
	return tx.Order("p.created_at DESC").Order("p.post_id DESC")
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) Exists(ctx context.Context, postID int64) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&model.Post{}).Where("post_id = ?", postID).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *postRepository) UpdateBody(ctx context.Context, postID int64, body string) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Post{}).Where("post_id = ?", postID).Update("body", body)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&post, "post_id = ?", postID).Error
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Delete(ctx context.Context, postID int64) (*model.Post, error) {
	var post model.Post
	if err := deleteReturning(ctx, r.db, &post, "post_id = ?", postID); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListViews(ctx context.Context, q FeedQuery) ([]model.PostView, error) {
	views := make([]model.PostView, 0)
	err := postViews(ctx, r.db, q.ViewerID).
		Scopes(q.scopes()...).
		Scopes(newestFirst).
		Scan(&views).Error
	return views, err
}

func (r *postRepository) GetView(ctx context.Context, postID int64, viewerID *int64) (*model.PostView, error) {
	var views []model.PostView
	if err := postViews(ctx, r.db, viewerID).Where("p.post_id = ?", postID).Limit(1).Scan(&views).Error; err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &views[0], nil
}

func (r *postRepository) ListGenres(ctx context.Context, postID int64) ([]string, error) {
	genres := make([]string, 0)
	err := r.db.WithContext(ctx).
		Model(&model.PostGenre{}).
		Where("post_id = ?", postID).
		Order("id").
		Pluck("genre", &genres).Error
	return genres, err
}

func (r *postRepository) AddGenre(ctx context.Context, postID int64, genreID string) (*model.PostGenre, error) {
	tag := &model.PostGenre{PostID: postID, Genre: genreID}
	// 幂等：重复打标不报错，返回已有的标签
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(tag)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		tag = &model.PostGenre{}
		if err := r.db.WithContext(ctx).Where("post_id = ? AND genre = ?", postID, genreID).First(tag).Error; err != nil {
			return nil, err
		}
	}
	return tag, nil
}

func (r *postRepository) RemoveGenre(ctx context.Context, postID int64, genreID string) (*model.PostGenre, error) {
	var tag model.PostGenre
	if err := deleteReturning(ctx, r.db, &tag, "post_id = ? AND genre = ?", postID, genreID); err != nil {
		return nil, err
	}
	return &tag, nil
}

// deleteReturning 在事务内先取出再删除，返回被删除的行
func deleteReturning[T any](ctx context.Context, db *gorm.DB, dest *T, query string, args ...any) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(query, args...).First(dest).Error; err != nil {
			return err
		}
		return tx.Delete(dest).Error
	})
}

// IsNotFound 报告 err 是否为记录不存在
func IsNotFound(err error) bool { return errors.Is(err, gorm.ErrRecordNotFound) }
