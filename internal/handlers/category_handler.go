package handlers

import (
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	categories, err := h.categoryService.List(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(categories)
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if errs := bindAndValidate(c, &req); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	category, err := h.categoryService.Create(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateCategoryRequest
	if errs := bindAndValidate(c, &req); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	category, err := h.categoryService.Update(c.UserContext(), c.Params("slug"), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(category)
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.categoryService.Delete(c.UserContext(), c.Params("slug")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
