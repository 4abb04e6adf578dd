package dto

import "time"

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=150,username"`
	Phone    string `json:"phone" validate:"required,min=7,max=20,numeric"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	FullName string `json:"full_name" validate:"max=255"`
	Age      *int   `json:"age" validate:"omitempty,min=0,max=150"`
	Gender   string `json:"gender" validate:"omitempty,oneof=male female other"`
	Email    string `json:"email" validate:"omitempty,email,max=255"`
	Bio      string `json:"bio" validate:"max=2000"`
}

// LoginRequest accepts either the username or the phone number as Username.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type TokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type ProfileResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Phone     string    `json:"phone"`
	FullName  string    `json:"full_name"`
	Age       *int      `json:"age"`
	Gender    string    `json:"gender"`
	Email     string    `json:"email"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"created_at"`
}

type UpdateProfileRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,max=255"`
	Age      *int    `json:"age" validate:"omitempty,min=0,max=150"`
	Gender   *string `json:"gender" validate:"omitempty,oneof=male female other"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Bio      *string `json:"bio" validate:"omitempty,max=2000"`
}

// PublicProfileResponse is what other users see.
type PublicProfileResponse struct {
	Username       string `json:"username"`
	FullName       string `json:"full_name"`
	Age            *int   `json:"age"`
	Bio            string `json:"bio"`
	Email          string `json:"email"`
	FollowersCount int64  `json:"followers_count"`
	FollowingCount int64  `json:"following_count"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
	Cache     string `json:"cache"`
}
