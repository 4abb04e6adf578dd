package handlers

import (
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

// ModerationHandler is the admin side of the comment queue. Routes are
// guarded by middleware.AdminRequired.
type ModerationHandler struct {
	commentService *services.CommentService
}

func NewModerationHandler(commentService *services.CommentService) *ModerationHandler {
	return &ModerationHandler{commentService: commentService}
}

func (h *ModerationHandler) Pending(c *fiber.Ctx) error {
	limit, offset := page(c)
	comments, total, err := h.commentService.Pending(limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.CommentListResponse{Count: total, Results: comments})
}

func (h *ModerationHandler) Approve(c *fiber.Ctx) error {
	commentID, ok := pathID(c, "id")
	if !ok {
		return fail(c, services.ErrCommentNotFound)
	}

	if _, err := h.commentService.Approve(commentID); err != nil {
		return fail(c, err)
	}
	return message(c, fiber.StatusOK, "Comment approved")
}

func (h *ModerationHandler) Delete(c *fiber.Ctx) error {
	commentID, ok := pathID(c, "id")
	if !ok {
		return fail(c, services.ErrCommentNotFound)
	}

	if err := h.commentService.Delete(commentID); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ModerationHandler) Reports(c *fiber.Ctx) error {
	limit, offset := page(c)
	reports, total, err := h.commentService.Reports(limit, offset)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.ReportListResponse{Count: total, Results: reports})
}
