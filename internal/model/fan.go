package model

import "time"

// Fan 粉丝关系（UserID 的粉丝是 FanID）冗余自 Follow
type Fan struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	UserID    int64     `json:"user_id" gorm:"index:idx_fan_user;index:idx_fan_pair,unique;not null"`
	FanID     int64     `json:"fan_id" gorm:"not null;index:idx_fan_pair,unique"`
	CreatedAt time.Time `json:"created_at"`
}

func (Fan) TableName() string { return "fans" }
