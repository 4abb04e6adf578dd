package handlers

import (
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type PostHandler struct {
	postService *services.PostService
	likeService *services.LikeService
}

func NewPostHandler(postService *services.PostService, likeService *services.LikeService) *PostHandler {
	return &PostHandler{postService: postService, likeService: likeService}
}

func (h *PostHandler) List(c *fiber.Ctx) error {
	posts, total, err := h.postService.ListPublished(c.UserContext(), postFilter(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.PostListResponse{Count: total, Results: posts})
}

func (h *PostHandler) Mine(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	posts, total, err := h.postService.ListMine(c.UserContext(), userID, postFilter(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.PostListResponse{Count: total, Results: posts})
}

func (h *PostHandler) ByAuthor(c *fiber.Ctx) error {
	resp, err := h.postService.ListByAuthor(c.UserContext(), c.Params("username"), postFilter(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

func (h *PostHandler) ByCategory(c *fiber.Ctx) error {
	posts, total, err := h.postService.ListByCategory(c.UserContext(), c.Params("slug"), postFilter(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.PostListResponse{Count: total, Results: posts})
}

func (h *PostHandler) Get(c *fiber.Ctx) error {
	post, err := h.postService.Get(c.UserContext(), c.Params("slug"), middleware.OptionalUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(post)
}

func (h *PostHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreatePostRequest
	if errs := bindAndValidate(c, &req); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	post, err := h.postService.Create(c.UserContext(), userID, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *PostHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.UpdatePostRequest
	if errs := bindAndValidate(c, &req); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	post, err := h.postService.Update(c.UserContext(), userID, c.Params("slug"), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(post)
}

func (h *PostHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	if err := h.postService.Delete(c.UserContext(), userID, c.Params("slug")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *PostHandler) React(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.ReactRequest
	if errs := bindAndValidate(c, &req); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	result, err := h.likeService.React(userID, c.Params("slug"), req.Value)
	if err != nil {
		return fail(c, err)
	}

	status := fiber.StatusOK
	if result.Outcome == services.ReactionAdded {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(dto.ReactResponse{Message: result.Message()})
}
