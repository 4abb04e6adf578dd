package handlers

import (
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

// RelationshipHandler serves block and follow edges between users.
type RelationshipHandler struct {
	blockService   *services.BlockService
	followService  *services.FollowService
	profileService *services.ProfileService
}

func NewRelationshipHandler(blockService *services.BlockService, followService *services.FollowService, profileService *services.ProfileService) *RelationshipHandler {
	return &RelationshipHandler{blockService: blockService, followService: followService, profileService: profileService}
}

func (h *RelationshipHandler) Block(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	target, err := h.profileService.Find(c.Params("username"))
	if err != nil {
		return fail(c, err)
	}

	created, err := h.blockService.Block(userID, target.ID)
	if err != nil {
		return fail(c, err)
	}
	if !created {
		return message(c, fiber.StatusOK, "User already blocked")
	}
	return message(c, fiber.StatusCreated, "User blocked")
}

func (h *RelationshipHandler) Unblock(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	target, err := h.profileService.Find(c.Params("username"))
	if err != nil {
		return fail(c, err)
	}

	if err := h.blockService.Unblock(userID, target.ID); err != nil {
		return fail(c, err)
	}
	return message(c, fiber.StatusOK, "User unblocked")
}

func (h *RelationshipHandler) BlockedUsers(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	blocks, err := h.blockService.BlockedUsers(userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.BlockListResponse{Count: len(blocks), Results: blocks})
}

func (h *RelationshipHandler) Follow(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	username := c.Params("username")
	if _, err := h.followService.Follow(userID, username); err != nil {
		return fail(c, err)
	}
	return message(c, fiber.StatusCreated, "You are now following "+username)
}

func (h *RelationshipHandler) Unfollow(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	if err := h.followService.Unfollow(userID, c.Params("username")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
