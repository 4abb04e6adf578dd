package services

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

const (
	maxSlugLength  = 250
	wordsPerMinute = 200
)

// Post slugs that would shadow fixed routes under /posts/.
var reservedSlugs = map[string]bool{
	"my-posts": true,
	"author":   true,
	"category": true,
}

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// uniqueSlug derives a URL-safe slug from text and appends -2, -3, ... until it
// is free in the table behind model.
func uniqueSlug(tx *gorm.DB, model interface{}, text, fallback string) (string, error) {
	base := slug.Make(text)
	if len(base) > maxSlugLength {
		base = strings.Trim(base[:maxSlugLength], "-")
	}
	if base == "" {
		base = fallback
	}

	candidate := base
	for i := 2; ; i++ {
		if !reservedSlugs[candidate] {
			var count int64
			if err := tx.Model(model).Where("slug = ?", candidate).Count(&count).Error; err != nil {
				return "", fmt.Errorf("failed to check slug: %w", err)
			}
			if count == 0 {
				return candidate, nil
			}
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// readingTime estimates minutes to read a rich-text body. Never less than one.
func readingTime(description string) int {
	words := len(strings.Fields(htmlTag.ReplaceAllString(description, " ")))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}
