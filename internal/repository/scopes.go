package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/cinesocial/internal/model"
)

// Scope 可组合的查询条件；取值一律走参数绑定，不拼接进 SQL 文本
type Scope = func(*gorm.DB) *gorm.DB

// followeesOf 子查询：userID 关注的所有人
func followeesOf(tx *gorm.DB, userID int64) *gorm.DB {
	return tx.Session(&gorm.Session{NewDB: true}).
		Model(&model.Follow{}).
		Select("following").
		Where("user_id = ?", userID)
}

// OwnedBy column 属于 userID
func OwnedBy(column string, userID int64) Scope {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where(column+" = ?", userID)
	}
}

// OwnedByFollowees column 属于 userID 关注的人
func OwnedByFollowees(column string, userID int64) Scope {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where(column+" IN (?)", followeesOf(tx, userID))
	}
}

// OwnedBySelfOrFollowees column 属于 userID 本人或其关注的人
func OwnedBySelfOrFollowees(column string, userID int64) Scope {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where(column+" = ? OR "+column+" IN (?)", userID, followeesOf(tx, userID))
	}
}

// TaggedWith 帖子带有指定类型标签
func TaggedWith(genreID string) Scope {
	return func(tx *gorm.DB) *gorm.DB {
		tagged := tx.Session(&gorm.Session{NewDB: true}).
			Model(&model.PostGenre{}).
			Select("post_id").
			Where("genre = ?", genreID)
		return tx.Where("p.post_id IN (?)", tagged)
	}
}

// ForMovie 帖子关于指定电影
func ForMovie(movieID string) Scope {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("p.movie_id = ?", movieID)
	}
}

// Paginate limit<=0 表示不分页；offset 由调用方保证非负
func Paginate(limit, offset int) Scope {
	return func(tx *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return tx
		}
		return tx.Limit(limit).Offset(offset)
	}
}

// ByCreatedAt 按 created_at 排序；table 为空时不加表前缀
func ByCreatedAt(table string, desc bool) Scope {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Order(clause.OrderByColumn{Column: clause.Column{Table: table, Name: "created_at"}, Desc: desc})
	}
}
