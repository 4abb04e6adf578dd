package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReactionOutcome describes what React did to the stored reaction.
type ReactionOutcome int

const (
	ReactionAdded ReactionOutcome = iota + 1
	ReactionUnchanged
	ReactionUpdated
)

type ReactionResult struct {
	Outcome ReactionOutcome
	Value   string
}

func (r ReactionResult) Message() string {
	switch r.Outcome {
	case ReactionAdded:
		return strings.ToUpper(r.Value[:1]) + r.Value[1:] + " added"
	case ReactionUnchanged:
		return "Already " + r.Value + "d"
	default:
		return "Updated to " + r.Value
	}
}

type LikeService struct {
	db     *gorm.DB
	blocks BlockChecker
}

func NewLikeService(db *gorm.DB, blocks BlockChecker) *LikeService {
	return &LikeService{db: db, blocks: blocks}
}

// React records value as the actor's single reaction on a published post.
func (s *LikeService) React(actorID uint, postSlug, value string) (*ReactionResult, error) {
	if !models.IsValidReaction(value) {
		return nil, ErrInvalidReaction
	}

	var post models.Post
	if err := s.db.Where("slug = ? AND status = ?", postSlug, models.PostStatusPublished).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to load post: %w", err)
	}
	if err := ensureNotBlocked(s.blocks, actorID, post.UserID); err != nil {
		return nil, err
	}

	result := &ReactionResult{Value: value}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := findReaction(tx, post.ID, actorID)
		if err != nil {
			return err
		}

		if existing == nil {
			like := models.PostLike{PostID: post.ID, UserID: actorID, Value: value}
			created := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
			if created.Error != nil {
				return fmt.Errorf("failed to create reaction: %w", created.Error)
			}
			if created.RowsAffected == 1 {
				result.Outcome = ReactionAdded
				return nil
			}
			// A concurrent request inserted first; treat its row as ours.
			if existing, err = findReaction(tx, post.ID, actorID); err != nil {
				return err
			}
			if existing == nil {
				return fmt.Errorf("reaction for post %d vanished during upsert", post.ID)
			}
		}

		if existing.Value == value {
			result.Outcome = ReactionUnchanged
			return nil
		}
		result.Outcome = ReactionUpdated
		if err := tx.Model(existing).Update("value", value).Error; err != nil {
			return fmt.Errorf("failed to update reaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("post reaction", "action", "react", "user_id", actorID, "post_id", post.ID, "value", value, "outcome", int(result.Outcome))
	return result, nil
}

func findReaction(tx *gorm.DB, postID, userID uint) (*models.PostLike, error) {
	var like models.PostLike
	err := tx.Where("post_id = ? AND user_id = ?", postID, userID).First(&like).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load reaction: %w", err)
	}
	return &like, nil
}
