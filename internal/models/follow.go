package models

import (
	"time"
)

type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FromUserID uint      `gorm:"not null;uniqueIndex:idx_follows_pair,priority:1" json:"from_user_id"`
	ToUserID   uint      `gorm:"not null;uniqueIndex:idx_follows_pair,priority:2;index" json:"to_user_id"`
	CreatedAt  time.Time `json:"created_at"`
	FromUser   User      `gorm:"foreignKey:FromUserID" json:"-"`
	ToUser     User      `gorm:"foreignKey:ToUserID" json:"-"`
}
