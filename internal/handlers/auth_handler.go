package handlers

import (
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService    *services.AuthService
	profileService *services.ProfileService
}

func NewAuthHandler(authService *services.AuthService, profileService *services.ProfileService) *AuthHandler {
	return &AuthHandler{authService: authService, profileService: profileService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if errs := bindAndValidate(c, &req); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	resp, err := h.authService.Register(&req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if errs := bindAndValidate(c, &req); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if errs := bindAndValidate(c, &req); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	resp, err := h.authService.Refresh(&req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if errs := bindAndValidate(c, &req); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	if err := h.authService.Logout(&req); err != nil {
		return fail(c, err)
	}
	return message(c, fiber.StatusOK, "Logged out successfully")
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	resp, err := h.profileService.Me(userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.UpdateProfileRequest
	if errs := bindAndValidate(c, &req); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errs)
	}

	resp, err := h.profileService.UpdateMe(userID, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

func (h *AuthHandler) PublicProfile(c *fiber.Ctx) error {
	resp, err := h.profileService.Public(c.Params("username"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}
