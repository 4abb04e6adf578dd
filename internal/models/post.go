package models

import (
	"time"
)

const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// Post is owned by exactly one user. CommentsCount and LikesCount are derived
// per query and never stored.
type Post struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"-"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Slug        string     `gorm:"size:280;not null;uniqueIndex" json:"slug"`
	Description string     `gorm:"type:text" json:"description"`
	Status      string     `gorm:"size:20;not null;default:'draft';index" json:"status"`
	ReadingTime int        `gorm:"not null;default:1" json:"reading_time"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `gorm:"index" json:"updated_at"`
	User        User       `gorm:"foreignKey:UserID" json:"author"`
	Categories  []Category `gorm:"many2many:post_categories" json:"categories"`

	CommentsCount int64 `gorm:"->;-:migration" json:"comments_count"`
	LikesCount    int64 `gorm:"->;-:migration" json:"likes_count"`
}

func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// VisibleTo reports whether the post can be read by the given user. A zero
// userID is an anonymous viewer.
func (p *Post) VisibleTo(userID uint) bool {
	return p.IsPublished() || (userID != 0 && p.UserID == userID)
}

type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Slug        string    `gorm:"size:120;not null;uniqueIndex" json:"slug"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}
