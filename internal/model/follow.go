package model

import "time"

// Follow 关注关系（UserID 关注 Following），(user_id, following) 唯一
type Follow struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"index:idx_follow_pair,unique;not null"`
	Following int64     `json:"following" gorm:"index:idx_follow_pair,unique;index:idx_follow_following;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (Follow) TableName() string { return "follows" }
