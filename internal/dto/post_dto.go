package dto

import "github.com/ahmetcoskunkizilkaya/microblog-api/internal/models"

type CreatePostRequest struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Description string   `json:"description"`
	Status      string   `json:"status" validate:"omitempty,oneof=draft published"`
	Categories  []string `json:"categories"`
}

// UpdatePostRequest is a partial update; nil fields are left untouched.
// A non-nil Categories replaces the post's category set.
type UpdatePostRequest struct {
	Title       *string   `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string   `json:"description"`
	Status      *string   `json:"status" validate:"omitempty,oneof=draft published"`
	Categories  *[]string `json:"categories"`
}

type PostListResponse struct {
	Count   int64         `json:"count"`
	Results []models.Post `json:"results"`
}

type AuthorResponse struct {
	Username       string `json:"username"`
	FullName       string `json:"full_name"`
	Age            *int   `json:"age"`
	Bio            string `json:"bio"`
	Email          string `json:"email"`
	FollowersCount int64  `json:"followers_count"`
}

type AuthorPostsResponse struct {
	Author AuthorResponse `json:"author"`
	Count  int64          `json:"count"`
	Posts  []models.Post  `json:"posts"`
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=2000"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}
