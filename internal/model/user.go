package model

import "time"

// User 用户
type User struct {
	UserID     int64     `json:"user_id" gorm:"primaryKey"`
	Username   string    `json:"username" gorm:"type:varchar(64);uniqueIndex;not null"`
	Name       string    `json:"name" gorm:"type:varchar(128);not null"`
	Email      string    `json:"email" gorm:"type:varchar(255);not null"`
	ProfilePic *string   `json:"profile_pic"`
	Hash       string    `json:"-" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }

// UserProfile 用户详情，附带关注数与粉丝数
type UserProfile struct {
	User
	Following int64 `json:"following"`
	Followers int64 `json:"followers"`
}

// UserSummary 列表中展示的用户信息；CreatedAt 为关系（关注/点赞）建立时间
type UserSummary struct {
	UserID     int64     `json:"user_id"`
	Username   string    `json:"username"`
	Name       string    `json:"name"`
	ProfilePic *string   `json:"profile_pic"`
	CreatedAt  time.Time `json:"created_at"`
}
