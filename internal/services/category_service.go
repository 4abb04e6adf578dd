package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/cache"
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/models"
	"gorm.io/gorm"
)

// CategoryService manages categories. Every write evicts the read cache, as
// category listings are served from it.
type CategoryService struct {
	db          *gorm.DB
	invalidator cache.Invalidator
	namespace   string
}

func NewCategoryService(db *gorm.DB, invalidator cache.Invalidator, namespace string) *CategoryService {
	return &CategoryService{db: db, invalidator: invalidator, namespace: namespace}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	categories := make([]models.Category, 0)
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) Create(ctx context.Context, req *dto.CategoryRequest) (*models.Category, error) {
	var category models.Category
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categorySlug, err := uniqueSlug(tx, &models.Category{}, req.Name, "category")
		if err != nil {
			return err
		}
		category = models.Category{Name: req.Name, Slug: categorySlug, Description: req.Description}
		if err := tx.Create(&category).Error; err != nil {
			return fmt.Errorf("failed to create category: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	evictNamespace(ctx, s.invalidator, s.namespace)
	return &category, nil
}

func (s *CategoryService) Update(ctx context.Context, categorySlug string, req *dto.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.find(ctx, categorySlug)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(category).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update category: %w", err)
		}
	}

	evictNamespace(ctx, s.invalidator, s.namespace)
	return category, nil
}

// Delete removes a category and its post links. Posts themselves stay.
func (s *CategoryService) Delete(ctx context.Context, categorySlug string) error {
	category, err := s.find(ctx, categorySlug)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM post_categories WHERE category_id = ?", category.ID).Error; err != nil {
			return fmt.Errorf("failed to unlink category: %w", err)
		}
		if err := tx.Delete(category).Error; err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	evictNamespace(ctx, s.invalidator, s.namespace)
	return nil
}

func (s *CategoryService) find(ctx context.Context, categorySlug string) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).Where("slug = ?", categorySlug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	return &category, nil
}
