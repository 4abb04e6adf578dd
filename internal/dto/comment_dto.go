package dto

import "github.com/ahmetcoskunkizilkaya/microblog-api/internal/models"

type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required,max=5000"`
	ParentID *uint  `json:"parent_id"`
}

type CommentListResponse struct {
	Count   int64            `json:"count"`
	Results []models.Comment `json:"results"`
}
