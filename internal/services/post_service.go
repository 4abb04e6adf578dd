package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/cache"
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Derived per-post counters. Only approved comments and "like" reactions count.
const (
	commentsCountColumn = "(SELECT COUNT(DISTINCT comments.id) FROM comments WHERE comments.post_id = posts.id AND comments.is_approved = ?) AS comments_count"
	likesCountColumn    = "(SELECT COUNT(DISTINCT post_likes.id) FROM post_likes WHERE post_likes.post_id = posts.id AND post_likes.value = ?) AS likes_count"
)

var postOrderings = map[string]string{
	"updated_at":     "posts.updated_at",
	"created_at":     "posts.created_at",
	"comments_count": "comments_count",
	"likes_count":    "likes_count",
}

// PostFilter carries the search, ordering and paging options of a listing.
type PostFilter struct {
	Search   string
	Ordering string
	Limit    int
	Offset   int
}

func (f PostFilter) orderBy() string {
	field := strings.TrimPrefix(f.Ordering, "-")
	column, ok := postOrderings[field]
	if !ok {
		return "posts.updated_at DESC, posts.id DESC"
	}
	if strings.HasPrefix(f.Ordering, "-") {
		return column + " DESC, posts.id DESC"
	}
	return column + " ASC, posts.id DESC"
}

func (f PostFilter) page() (limit, offset int) {
	limit, offset = f.Limit, f.Offset
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

type PostService struct {
	db          *gorm.DB
	invalidator cache.Invalidator
	namespace   string
}

func NewPostService(db *gorm.DB, invalidator cache.Invalidator, namespace string) *PostService {
	return &PostService{db: db, invalidator: invalidator, namespace: namespace}
}

// ListPublished returns published posts with their derived counters.
func (s *PostService) ListPublished(ctx context.Context, f PostFilter) ([]models.Post, int64, error) {
	return s.list(s.published(ctx), f)
}

// ListMine returns every post owned by userID, drafts included.
func (s *PostService) ListMine(ctx context.Context, userID uint, f PostFilter) ([]models.Post, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Post{}).Where("posts.user_id = ?", userID)
	return s.list(q, f)
}

func (s *PostService) ListByAuthor(ctx context.Context, username string, f PostFilter) (*dto.AuthorPostsResponse, error) {
	author, err := findUserByUsername(s.db.WithContext(ctx), username)
	if err != nil {
		return nil, err
	}
	followers, err := countFollows(s.db.WithContext(ctx), "to_user_id", author.ID)
	if err != nil {
		return nil, err
	}

	posts, total, err := s.list(s.published(ctx).Where("posts.user_id = ?", author.ID), f)
	if err != nil {
		return nil, err
	}

	return &dto.AuthorPostsResponse{
		Author: dto.AuthorResponse{
			Username:       author.Username,
			FullName:       author.FullName,
			Age:            author.Age,
			Bio:            author.Bio,
			Email:          author.Email,
			FollowersCount: followers,
		},
		Count: total,
		Posts: posts,
	}, nil
}

func (s *PostService) ListByCategory(ctx context.Context, categorySlug string, f PostFilter) ([]models.Post, int64, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).Where("slug = ?", categorySlug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrCategoryNotFound
		}
		return nil, 0, fmt.Errorf("failed to load category: %w", err)
	}

	linked := s.db.Table("post_categories").Select("post_id").Where("category_id = ?", category.ID)
	return s.list(s.published(ctx).Where("posts.id IN (?)", linked), f)
}

// Get returns a post by slug. Drafts are visible to their owner only; a zero
// viewerID is an anonymous reader.
func (s *PostService) Get(ctx context.Context, postSlug string, viewerID uint) (*models.Post, error) {
	var post models.Post
	err := withStats(s.db.WithContext(ctx).Model(&models.Post{})).
		Where("posts.slug = ?", postSlug).
		First(&post).Error
	if err != nil {
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

// Create stores a post owned by ownerID. The owner is never taken from the payload.
func (s *PostService) Create(ctx context.Context, ownerID uint, req *dto.CreatePostRequest) (*models.Post, error) {
	status := req.Status
	if status == "" {
		status = models.PostStatusDraft
	}

	var post models.Post
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories, err := resolveCategories(tx, req.Categories)
		if err != nil {
			return err
		}
		postSlug, err := uniqueSlug(tx, &models.Post{}, req.Title, "post")
		if err != nil {
			return err
		}

		post = models.Post{
			UserID:      ownerID,
			Title:       req.Title,
			Slug:        postSlug,
			Description: req.Description,
			Status:      status,
			ReadingTime: readingTime(req.Description),
			Categories:  categories,
		}
		if err := tx.Omit("Categories.*").Create(&post).Error; err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.evictReadCache(ctx)
	return s.Get(ctx, post.Slug, ownerID)
}

// Update applies a partial update. Only the owner may change a post.
func (s *PostService) Update(ctx context.Context, actorID uint, postSlug string, req *dto.UpdatePostRequest) (*models.Post, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := ownedPost(tx, postSlug, actorID)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{"updated_at": time.Now()}
		if req.Title != nil {
			updates["title"] = *req.Title
		}
		if req.Description != nil {
			updates["description"] = *req.Description
			updates["reading_time"] = readingTime(*req.Description)
		}
		if req.Status != nil {
			updates["status"] = *req.Status
		}
		if err := tx.Model(post).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update post: %w", err)
		}

		if req.Categories != nil {
			categories, err := resolveCategories(tx, *req.Categories)
			if err != nil {
				return err
			}
			association := tx.Model(post).Association("Categories")
			if len(categories) == 0 {
				err = association.Clear()
			} else {
				err = association.Replace(categories)
			}
			if err != nil {
				return fmt.Errorf("failed to update post categories: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.evictReadCache(ctx)
	return s.Get(ctx, postSlug, actorID)
}

// Delete removes a post together with its comments, their reports, its
// reactions and its category links.
func (s *PostService) Delete(ctx context.Context, actorID uint, postSlug string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := ownedPost(tx, postSlug, actorID)
		if err != nil {
			return err
		}

		commentIDs := tx.Model(&models.Comment{}).Select("id").Where("post_id = ?", post.ID)
		if err := tx.Where("comment_id IN (?)", commentIDs).Delete(&models.CommentReport{}).Error; err != nil {
			return fmt.Errorf("failed to delete comment reports: %w", err)
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("failed to delete comments: %w", err)
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.PostLike{}).Error; err != nil {
			return fmt.Errorf("failed to delete reactions: %w", err)
		}
		if err := tx.Model(post).Association("Categories").Clear(); err != nil {
			return fmt.Errorf("failed to clear post categories: %w", err)
		}
		if err := tx.Delete(post).Error; err != nil {
			return fmt.Errorf("failed to delete post: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.evictReadCache(ctx)
	return nil
}

func (s *PostService) published(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Post{}).Where("posts.status = ?", models.PostStatusPublished)
}

func (s *PostService) list(q *gorm.DB, f PostFilter) ([]models.Post, int64, error) {
	if f.Search != "" {
		probe := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("(LOWER(posts.title) LIKE ? OR LOWER(posts.description) LIKE ?)", probe, probe)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	limit, offset := f.page()
	posts := make([]models.Post, 0)
	if err := withStats(q).Order(f.orderBy()).Limit(limit).Offset(offset).Find(&posts).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, total, nil
}

func (s *PostService) evictReadCache(ctx context.Context) {
	evictNamespace(ctx, s.invalidator, s.namespace)
}

func withStats(q *gorm.DB) *gorm.DB {
	return q.Select("posts.*, "+commentsCountColumn+", "+likesCountColumn, true, models.ReactionLike).
		Preload("User").
		Preload("Categories")
}

// ownedPost loads a post for mutation. A draft the actor does not own is
// reported as missing rather than forbidden.
func ownedPost(tx *gorm.DB, postSlug string, actorID uint) (*models.Post, error) {
	var post models.Post
	if err := tx.Where("slug = ?", postSlug).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to load post: %w", err)
	}
	if !post.VisibleTo(actorID) {
		return nil, ErrPostNotFound
	}
	if post.UserID != actorID {
		return nil, ErrNotPostOwner
	}
	return &post, nil
}

func resolveCategories(tx *gorm.DB, slugs []string) ([]models.Category, error) {
	slugs = lo.Uniq(lo.Compact(slugs))
	categories := make([]models.Category, 0, len(slugs))
	if len(slugs) == 0 {
		return categories, nil
	}
	if err := tx.Where("slug IN ?", slugs).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	if len(categories) != len(slugs) {
		return nil, ErrUnknownCategory
	}
	return categories, nil
}

// evictNamespace drops every cached read response. A cache failure never
// fails the write that triggered it.
func evictNamespace(ctx context.Context, invalidator cache.Invalidator, namespace string) {
	if invalidator == nil {
		return
	}
	if err := invalidator.EvictNamespace(ctx, namespace); err != nil {
		slog.Error("read cache eviction failed", "action", "cache_evict", "namespace", namespace, "error", err)
	}
}
