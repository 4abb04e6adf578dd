package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReportOutcome tells whether Report created or overwrote a report.
type ReportOutcome int

const (
	ReportSubmitted ReportOutcome = iota + 1
	ReportUpdated
)

type CommentService struct {
	db     *gorm.DB
	blocks BlockChecker
	filter *ContentFilter
}

func NewCommentService(db *gorm.DB, blocks BlockChecker, filter *ContentFilter) *CommentService {
	return &CommentService{db: db, blocks: blocks, filter: filter}
}

// Create adds a comment to a post. Comments always start unapproved and stay
// hidden from listings until a moderator approves them.
func (s *CommentService) Create(actorID uint, postSlug string, req *dto.CreateCommentRequest) (*models.Comment, error) {
	post, err := s.visiblePost(postSlug, actorID)
	if err != nil {
		return nil, err
	}
	if err := ensureNotBlocked(s.blocks, actorID, post.UserID); err != nil {
		return nil, err
	}

	level := 1
	if req.ParentID != nil {
		var parent models.Comment
		if err := s.db.Where("id = ? AND post_id = ?", *req.ParentID, post.ID).First(&parent).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidParent
			}
			return nil, fmt.Errorf("failed to load parent comment: %w", err)
		}
		if parent.Level >= models.MaxCommentLevel {
			return nil, ErrCommentTooDeep
		}
		level = parent.Level + 1
	}

	comment := models.Comment{
		UserID:     actorID,
		PostID:     post.ID,
		ParentID:   req.ParentID,
		Content:    strings.TrimSpace(req.Content),
		Level:      level,
		IsApproved: false,
	}
	if s.filter != nil {
		comment.FlagReason = s.filter.Screen(comment.Content)
	}

	if err := s.db.Omit(clause.Associations).Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	slog.Info("comment created", "action", "comment_create", "user_id", actorID, "post_id", post.ID, "comment_id", comment.ID, "flag", comment.FlagReason)
	if err := s.db.First(&comment.User, actorID).Error; err != nil {
		return nil, fmt.Errorf("failed to load commenter: %w", err)
	}
	return &comment, nil
}

// ListForPost returns approved comments, newest first.
func (s *CommentService) ListForPost(postSlug string, viewerID uint) ([]models.Comment, error) {
	post, err := s.visiblePost(postSlug, viewerID)
	if err != nil {
		return nil, err
	}

	comments := make([]models.Comment, 0)
	err = s.db.Preload("User").
		Where("post_id = ? AND is_approved = ?", post.ID, true).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// Report files or overwrites the actor's report on a comment. There is never
// more than one report per (comment, reporter).
func (s *CommentService) Report(actorID, commentID uint, reason string) (*models.CommentReport, ReportOutcome, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, 0, ErrEmptyReason
	}
	if _, err := s.find(commentID); err != nil {
		return nil, 0, err
	}

	var (
		report  models.CommentReport
		outcome ReportOutcome
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		report = models.CommentReport{CommentID: commentID, ReporterID: actorID, Reason: reason}
		created := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&report)
		if created.Error != nil {
			return fmt.Errorf("failed to create report: %w", created.Error)
		}
		if created.RowsAffected == 1 {
			outcome = ReportSubmitted
			return nil
		}

		outcome = ReportUpdated
		if err := tx.Where("comment_id = ? AND reporter_id = ?", commentID, actorID).First(&report).Error; err != nil {
			return fmt.Errorf("failed to load report: %w", err)
		}
		if err := tx.Model(&report).Update("reason", reason).Error; err != nil {
			return fmt.Errorf("failed to update report: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	slog.Info("comment reported", "action", "comment_report", "user_id", actorID, "comment_id", commentID, "outcome", int(outcome))
	return &report, outcome, nil
}

// Pending lists comments awaiting approval, flagged ones first.
func (s *CommentService) Pending(limit, offset int) ([]models.Comment, int64, error) {
	var total int64
	q := s.db.Model(&models.Comment{}).Where("is_approved = ?", false)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count pending comments: %w", err)
	}

	comments := make([]models.Comment, 0)
	err := s.db.Preload("User").
		Where("is_approved = ?", false).
		Order("CASE WHEN flag_reason = '' OR flag_reason IS NULL THEN 1 ELSE 0 END, created_at ASC").
		Limit(limit).Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list pending comments: %w", err)
	}
	return comments, total, nil
}

func (s *CommentService) Approve(commentID uint) (*models.Comment, error) {
	comment, err := s.find(commentID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(comment).Update("is_approved", true).Error; err != nil {
		return nil, fmt.Errorf("failed to approve comment: %w", err)
	}
	slog.Info("comment approved", "action", "comment_approve", "comment_id", commentID)
	return comment, nil
}

// Delete removes a comment, every reply beneath it and their reports.
func (s *CommentService) Delete(commentID uint) error {
	if _, err := s.find(commentID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		ids := []uint{commentID}
		frontier := []uint{commentID}
		for depth := 1; depth < models.MaxCommentLevel && len(frontier) > 0; depth++ {
			var children []models.Comment
			if err := tx.Select("id").Where("parent_id IN ?", frontier).Find(&children).Error; err != nil {
				return fmt.Errorf("failed to load replies: %w", err)
			}
			frontier = lo.Map(children, func(c models.Comment, _ int) uint { return c.ID })
			ids = append(ids, frontier...)
		}

		if err := tx.Where("comment_id IN ?", ids).Delete(&models.CommentReport{}).Error; err != nil {
			return fmt.Errorf("failed to delete reports: %w", err)
		}
		if err := tx.Where("id IN ?", ids).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("failed to delete comments: %w", err)
		}
		return nil
	})
}

func (s *CommentService) Reports(limit, offset int) ([]models.CommentReport, int64, error) {
	var total int64
	if err := s.db.Model(&models.CommentReport{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	reports := make([]models.CommentReport, 0)
	if err := s.db.Order("updated_at DESC").Limit(limit).Offset(offset).Find(&reports).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, total, nil
}

func (s *CommentService) find(commentID uint) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to load comment: %w", err)
	}
	return &comment, nil
}

func (s *CommentService) visiblePost(postSlug string, viewerID uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.Where("slug = ?", postSlug).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to load post: %w", err)
	}
	if !post.VisibleTo(viewerID) {
		return nil, ErrPostNotFound
	}
	return &post, nil
}
