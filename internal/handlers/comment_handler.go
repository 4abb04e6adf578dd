package handlers

import (
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) List(c *fiber.Ctx) error {
	comments, err := h.commentService.ListForPost(c.Params("post_slug"), middleware.OptionalUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.CommentListResponse{Count: int64(len(comments)), Results: comments})
}

func (h *CommentHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateCommentRequest
	if errs := bindAndValidate(c, &req); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	comment, err := h.commentService.Create(userID, c.Params("post_slug"), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *CommentHandler) Report(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	commentID, ok := pathID(c, "id")
	if !ok {
		return fail(c, services.ErrCommentNotFound)
	}

	var req dto.ReportCommentRequest
	if errs := bindAndValidate(c, &req); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	report, outcome, err := h.commentService.Report(userID, commentID, req.Reason)
	if err != nil {
		return fail(c, err)
	}

	if outcome == services.ReportUpdated {
		return c.JSON(dto.ReportResponse{Message: "Report updated", Report: report})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ReportResponse{Message: "Report submitted", Report: report})
}
