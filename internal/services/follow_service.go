package services

import (
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowService struct {
	db     *gorm.DB
	blocks BlockChecker
}

func NewFollowService(db *gorm.DB, blocks BlockChecker) *FollowService {
	return &FollowService{db: db, blocks: blocks}
}

// Follow creates the (actor -> target) edge. Edges are unique per ordered pair.
func (s *FollowService) Follow(actorID uint, username string) (*models.Follow, error) {
	target, err := findUserByUsername(s.db, username)
	if err != nil {
		return nil, err
	}
	if target.ID == actorID {
		return nil, ErrSelfFollow
	}
	if err := ensureNotBlocked(s.blocks, actorID, target.ID); err != nil {
		return nil, err
	}

	follow := models.Follow{FromUserID: actorID, ToUserID: target.ID}
	result := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to follow user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrAlreadyFollowing
	}

	slog.Info("user followed", "action", "follow", "user_id", actorID, "target_id", target.ID)
	return &follow, nil
}

func (s *FollowService) Unfollow(actorID uint, username string) error {
	target, err := findUserByUsername(s.db, username)
	if err != nil {
		return err
	}

	result := s.db.Where("from_user_id = ? AND to_user_id = ?", actorID, target.ID).Delete(&models.Follow{})
	if result.Error != nil {
		return fmt.Errorf("failed to unfollow user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFollowing
	}

	slog.Info("user unfollowed", "action", "unfollow", "user_id", actorID, "target_id", target.ID)
	return nil
}

func (s *FollowService) FollowersCount(userID uint) (int64, error) {
	return countFollows(s.db, "to_user_id", userID)
}

func (s *FollowService) FollowingCount(userID uint) (int64, error) {
	return countFollows(s.db, "from_user_id", userID)
}

func countFollows(db *gorm.DB, column string, userID uint) (int64, error) {
	var count int64
	if err := db.Model(&models.Follow{}).Where(column+" = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count follows: %w", err)
	}
	return count, nil
}
