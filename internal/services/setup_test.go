package services

import (
	"context"
	"sync"
	"testing"

	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/database"
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Each connection to :memory: is its own database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Phone:    "555" + username,
		Password: "x",
		Role:     models.RoleUser,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedPost(t *testing.T, db *gorm.DB, owner *models.User, slug, status string) *models.Post {
	t.Helper()
	post := &models.Post{UserID: owner.ID, Title: slug, Slug: slug, Status: status, ReadingTime: 1}
	require.NoError(t, db.Omit("User", "Categories").Create(post).Error)
	return post
}

func seedComment(t *testing.T, db *gorm.DB, author *models.User, post *models.Post, approved bool) *models.Comment {
	t.Helper()
	comment := &models.Comment{UserID: author.ID, PostID: post.ID, Content: "hello", Level: 1}
	require.NoError(t, db.Omit("User", "Post", "Parent").Create(comment).Error)
	if approved {
		require.NoError(t, db.Model(comment).Update("is_approved", true).Error)
	}
	return comment
}

// recordingInvalidator captures eviction calls and can be told to fail.
type recordingInvalidator struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (r *recordingInvalidator) EvictNamespace(_ context.Context, prefix string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, prefix)
	return r.err
}

func (r *recordingInvalidator) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}
