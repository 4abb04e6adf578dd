package models

import (
	"time"
)

const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

// PostLike holds the single reaction a user has on a post.
type PostLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_likes_pair,priority:1" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_likes_pair,priority:2;index" json:"user_id"`
	Value     string    `gorm:"size:10;not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Post      Post      `gorm:"foreignKey:PostID" json:"-"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}

func IsValidReaction(value string) bool {
	return value == ReactionLike || value == ReactionDislike
}
