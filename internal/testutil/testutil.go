// Package testutil 测试用的内存数据库与数据构造器
package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/d60-Lab/cinesocial/internal/model"
	"github.com/d60-Lab/cinesocial/pkg/database"
)

// NewDB 打开一个迁移好的 sqlite 内存库。
// :memory: 库按连接隔离，所以只允许一个连接。
func NewDB(tb testing.TB) *gorm.DB {
	tb.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		tb.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.AutoMigrate(db); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	tb.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// Base 固定的起始时间，构造器以它为基准生成 created_at
var Base = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// At 返回 Base 之后第 n 分钟
func At(n int) time.Time { return Base.Add(time.Duration(n) * time.Minute) }

// Fixture 直接写库的数据构造器
type Fixture struct {
	tb testing.TB
	db *gorm.DB
}

func NewFixture(tb testing.TB, db *gorm.DB) *Fixture { return &Fixture{tb: tb, db: db} }

func (f *Fixture) create(v any) {
	f.tb.Helper()
	if err := f.db.Create(v).Error; err != nil {
		f.tb.Fatalf("create %T: %v", v, err)
	}
}

func (f *Fixture) User(username string) *model.User {
	f.tb.Helper()
	pic := "https://img.example.com/" + username + ".png"
	u := &model.User{
		Username:   username,
		Name:       username,
		Email:      username + "@example.com",
		ProfilePic: &pic,
		Hash:       "x",
		CreatedAt:  Base,
	}
	f.create(u)
	return u
}

func (f *Fixture) Users(n int) []*model.User {
	f.tb.Helper()
	users := make([]*model.User, n)
	for i := range users {
		users[i] = f.User(fmt.Sprintf("user%d", i+1))
	}
	return users
}

func (f *Fixture) Post(author *model.User, movieID string, at time.Time) *model.Post {
	f.tb.Helper()
	p := &model.Post{
		Author:     author.Username,
		UserID:     author.UserID,
		MovieTitle: "Movie " + movieID,
		MovieID:    movieID,
		Released:   "2020",
		Body:       fmt.Sprintf("%s on %s", author.Username, movieID),
		MediaType:  "movie",
		CreatedAt:  at,
	}
	f.create(p)
	return p
}

func (f *Fixture) Tag(post *model.Post, genreID string) {
	f.tb.Helper()
	f.create(&model.PostGenre{PostID: post.PostID, Genre: genreID, CreatedAt: post.CreatedAt})
}

func (f *Fixture) Like(user *model.User, post *model.Post, at time.Time) *model.PostLike {
	f.tb.Helper()
	l := &model.PostLike{UserID: user.UserID, PostID: post.PostID, CreatedAt: at}
	f.create(l)
	return l
}

func (f *Fixture) Comment(user *model.User, post *model.Post, at time.Time) *model.Comment {
	f.tb.Helper()
	c := &model.Comment{UserID: user.UserID, PostID: post.PostID, Author: user.Username, Body: "nice", CreatedAt: at}
	f.create(c)
	return c
}

func (f *Fixture) Rating(user *model.User, movieID string, value int, at time.Time) *model.Rating {
	f.tb.Helper()
	r := &model.Rating{UserID: user.UserID, MovieID: movieID, Rating: value, MovieTitle: "Movie " + movieID, CreatedAt: at}
	f.create(r)
	return r
}

func (f *Fixture) Watched(user *model.User, movieID string, at time.Time) *model.Watched {
	f.tb.Helper()
	w := &model.Watched{UserID: user.UserID, MovieID: movieID, MovieTitle: "Movie " + movieID, CreatedAt: at}
	f.create(w)
	return w
}

func (f *Fixture) Favourite(user *model.User, movieID string, at time.Time) *model.Favourite {
	f.tb.Helper()
	fav := &model.Favourite{UserID: user.UserID, MovieID: movieID, MovieTitle: "Movie " + movieID, CreatedAt: at}
	f.create(fav)
	return fav
}

// Follow user 关注 following，同时写入粉丝冗余表
func (f *Fixture) Follow(user, following *model.User, at time.Time) {
	f.tb.Helper()
	f.create(&model.Follow{UserID: user.UserID, Following: following.UserID, CreatedAt: at})
	f.create(&model.Fan{UserID: following.UserID, FanID: user.UserID, CreatedAt: at})
}
