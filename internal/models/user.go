package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account that can author posts, react, comment, follow and block.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:150;not null;uniqueIndex" json:"username"`
	Phone     string    `gorm:"size:20;not null;uniqueIndex" json:"-"`
	Password  string    `gorm:"not null" json:"-"`
	FullName  string    `gorm:"size:255" json:"full_name"`
	Age       *int      `json:"age"`
	Gender    string    `gorm:"size:10" json:"gender"`
	Email     string    `gorm:"size:255" json:"email"`
	Bio       string    `gorm:"type:text" json:"bio"`
	Role      string    `gorm:"size:20;default:'user'" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
