package models

import (
	"time"
)

// MaxCommentLevel bounds the depth of a reply chain. Top-level comments are level 1.
const MaxCommentLevel = 5

type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"-"`
	PostID     uint      `gorm:"not null;index" json:"post_id"`
	ParentID   *uint     `gorm:"index" json:"parent_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Level      int       `gorm:"not null;default:1" json:"level"`
	IsApproved bool      `gorm:"not null;default:false;index" json:"is_approved"`
	FlagReason string    `gorm:"size:50" json:"flag_reason,omitempty"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	User       User      `gorm:"foreignKey:UserID" json:"user"`
	Post       Post      `gorm:"foreignKey:PostID" json:"-"`
	Parent     *Comment  `gorm:"foreignKey:ParentID" json:"-"`
}

// CommentReport is unique per (comment, reporter); a repeated report
// overwrites the reason.
type CommentReport struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CommentID  uint      `gorm:"not null;uniqueIndex:idx_comment_reports_pair,priority:1" json:"comment_id"`
	ReporterID uint      `gorm:"not null;uniqueIndex:idx_comment_reports_pair,priority:2" json:"reporter_id"`
	Reason     string    `gorm:"size:200;not null" json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Comment    Comment   `gorm:"foreignKey:CommentID" json:"-"`
	Reporter   User      `gorm:"foreignKey:ReporterID" json:"-"`
}
