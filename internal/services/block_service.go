package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BlockChecker answers whether two users may interact.
type BlockChecker interface {
	IsBlockedPair(a, b uint) (bool, error)
}

type BlockService struct {
	db *gorm.DB
}

func NewBlockService(db *gorm.DB) *BlockService {
	return &BlockService{db: db}
}

// IsBlockedPair is true when either user blocks the other.
func (s *BlockService) IsBlockedPair(a, b uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Block{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)", a, b, b, a).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check block: %w", err)
	}
	return count > 0, nil
}

// Block ensures a (blocker, blocked) edge exists and reports whether it was
// newly created. Existing follows, likes and comments are left in place.
func (s *BlockService) Block(blockerID, blockedID uint) (bool, error) {
	if blockerID == blockedID {
		return false, ErrSelfBlock
	}

	block := models.Block{BlockerID: blockerID, BlockedID: blockedID}
	result := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&block)
	if result.Error != nil {
		return false, fmt.Errorf("failed to block user: %w", result.Error)
	}

	created := result.RowsAffected == 1
	if created {
		slog.Info("user blocked", "action", "block", "user_id", blockerID, "target_id", blockedID)
	}
	return created, nil
}

// Unblock removes the (blocker, blocked) edge. Missing edges are not an error.
func (s *BlockService) Unblock(blockerID, blockedID uint) error {
	result := s.db.Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).Delete(&models.Block{})
	if result.Error != nil {
		return fmt.Errorf("failed to unblock user: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		slog.Info("user unblocked", "action", "unblock", "user_id", blockerID, "target_id", blockedID)
	}
	return nil
}

func (s *BlockService) BlockedUsers(userID uint) ([]models.Block, error) {
	var blocks []models.Block
	if err := s.db.Preload("Blocked").Where("blocker_id = ?", userID).Order("created_at DESC").Find(&blocks).Error; err != nil {
		return nil, fmt.Errorf("failed to list blocked users: %w", err)
	}
	return blocks, nil
}

func ensureNotBlocked(checker BlockChecker, a, b uint) error {
	blocked, err := checker.IsBlockedPair(a, b)
	if err != nil {
		return err
	}
	if blocked {
		return ErrBlockedInteraction
	}
	return nil
}

func findUserByUsername(db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}
