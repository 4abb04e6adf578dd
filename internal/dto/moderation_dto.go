package dto

import "github.com/ahmetcoskunkizilkaya/microblog-api/internal/models"

type ReportCommentRequest struct {
	Reason string `json:"reason" validate:"required,max=200"`
}

type ReportResponse struct {
	Message string                `json:"message"`
	Report  *models.CommentReport `json:"report"`
}

type ReactRequest struct {
	Value string `json:"value"`
}

type ReactResponse struct {
	Message string `json:"message"`
}

type ReportListResponse struct {
	Count   int64                  `json:"count"`
	Results []models.CommentReport `json:"results"`
}

type BlockListResponse struct {
	Count   int            `json:"count"`
	Results []models.Block `json:"results"`
}
