package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testNamespace = "mbapi:"

func newPostService(t *testing.T) (*PostService, *gorm.DB, *recordingInvalidator) {
	t.Helper()
	db := newTestDB(t)
	inv := &recordingInvalidator{}
	return NewPostService(db, inv, testNamespace), db, inv
}

func strPtr(s string) *string { return &s }

func TestCreatePost(t *testing.T) {
	svc, db, inv := newPostService(t)
	alice := seedUser(t, db, "alice")
	require.NoError(t, db.Create(&models.Category{Name: "Go", Slug: "go"}).Error)

	post, err := svc.Create(context.Background(), alice.ID, &dto.CreatePostRequest{
		Title:       "Hello World",
		Description: "<p>" + strings.Repeat("word ", 450) + "</p>",
		Categories:  []string{"go", "go", ""},
	})
	require.NoError(t, err)

	assert.Equal(t, "hello-world", post.Slug)
	assert.Equal(t, models.PostStatusDraft, post.Status)
	assert.Equal(t, 3, post.ReadingTime)
	assert.Equal(t, "alice", post.User.Username)
	require.Len(t, post.Categories, 1)
	assert.Equal(t, "go", post.Categories[0].Slug)
	assert.Equal(t, []string{testNamespace}, inv.calls)

	again, err := svc.Create(context.Background(), alice.ID, &dto.CreatePostRequest{Title: "Hello World"})
	require.NoError(t, err)
	assert.Equal(t, "hello-world-2", again.Slug)
}

func TestCreatePostReservedAndUnknown(t *testing.T) {
	svc, db, _ := newPostService(t)
	alice := seedUser(t, db, "alice")

	post, err := svc.Create(context.Background(), alice.ID, &dto.CreatePostRequest{Title: "My Posts"})
	require.NoError(t, err)
	assert.Equal(t, "my-posts-2", post.Slug)

	_, err = svc.Create(context.Background(), alice.ID, &dto.CreatePostRequest{Title: "x", Categories: []string{"nope"}})
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestListPublishedCounts(t *testing.T) {
	svc, db, _ := newPostService(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	post := seedPost(t, db, alice, "published", models.PostStatusPublished)
	seedPost(t, db, alice, "draft", models.PostStatusDraft)

	seedComment(t, db, bob, post, true)
	seedComment(t, db, carol, post, true)
	seedComment(t, db, carol, post, false)
	require.NoError(t, db.Create(&models.PostLike{PostID: post.ID, UserID: bob.ID, Value: models.ReactionLike}).Error)
	require.NoError(t, db.Create(&models.PostLike{PostID: post.ID, UserID: carol.ID, Value: models.ReactionDislike}).Error)

	posts, total, err := svc.ListPublished(context.Background(), PostFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, posts, 1)
	assert.Equal(t, "published", posts[0].Slug)
	assert.EqualValues(t, 2, posts[0].CommentsCount)
	assert.EqualValues(t, 1, posts[0].LikesCount)
	assert.Equal(t, "alice", posts[0].User.Username)
}

func TestListSearchOrderingAndPaging(t *testing.T) {
	svc, db, _ := newPostService(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	quiet := seedPost(t, db, alice, "quiet-golang", models.PostStatusPublished)
	popular := seedPost(t, db, alice, "popular-golang", models.PostStatusPublished)
	seedPost(t, db, alice, "rust", models.PostStatusPublished)
	require.NoError(t, db.Create(&models.PostLike{PostID: popular.ID, UserID: bob.ID, Value: models.ReactionLike}).Error)

	posts, total, err := svc.ListPublished(context.Background(), PostFilter{Search: "GoLang", Ordering: "-likes_count"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, posts, 2)
	assert.Equal(t, popular.ID, posts[0].ID)
	assert.Equal(t, quiet.ID, posts[1].ID)

	posts, total, err = svc.ListPublished(context.Background(), PostFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, posts, 1)
}

func TestPostFilterDefaults(t *testing.T) {
	assert.Equal(t, "posts.updated_at DESC, posts.id DESC", PostFilter{Ordering: "password"}.orderBy())
	assert.Equal(t, "posts.created_at ASC, posts.id DESC", PostFilter{Ordering: "created_at"}.orderBy())

	limit, offset := PostFilter{Limit: 500, Offset: -4}.page()
	assert.Equal(t, MaxPageSize, limit)
	assert.Equal(t, 0, offset)
}

func TestGetDraftVisibility(t *testing.T) {
	svc, db, _ := newPostService(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	seedPost(t, db, alice, "draft", models.PostStatusDraft)

	_, err := svc.Get(context.Background(), "draft", 0)
	assert.ErrorIs(t, err, ErrPostNotFound)
	_, err = svc.Get(context.Background(), "draft", bob.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)

	post, err := svc.Get(context.Background(), "draft", alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "draft", post.Slug)

	mine, total, err := svc.ListMine(context.Background(), alice.ID, PostFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, mine, 1)
}

func TestUpdatePostOwnership(t *testing.T) {
	svc, db, inv := newPostService(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	seedPost(t, db, alice, "hello", models.PostStatusPublished)
	seedPost(t, db, alice, "draft", models.PostStatusDraft)
	require.NoError(t, db.Create(&models.Category{Name: "Go", Slug: "go"}).Error)

	_, err := svc.Update(context.Background(), bob.ID, "hello", &dto.UpdatePostRequest{Title: strPtr("mine now")})
	assert.ErrorIs(t, err, ErrNotPostOwner)
	_, err = svc.Update(context.Background(), bob.ID, "draft", &dto.UpdatePostRequest{Title: strPtr("mine now")})
	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.Zero(t, inv.count())

	categories := []string{"go"}
	post, err := svc.Update(context.Background(), alice.ID, "hello", &dto.UpdatePostRequest{
		Title:      strPtr("Renamed"),
		Categories: &categories,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", post.Title)
	assert.Equal(t, "hello", post.Slug)
	require.Len(t, post.Categories, 1)

	empty := []string{}
	post, err = svc.Update(context.Background(), alice.ID, "hello", &dto.UpdatePostRequest{Categories: &empty})
	require.NoError(t, err)
	assert.Empty(t, post.Categories)
	assert.Equal(t, 2, inv.count())
}

func TestDeletePostCascades(t *testing.T) {
	svc, db, inv := newPostService(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, alice, "hello", models.PostStatusPublished)
	comment := seedComment(t, db, bob, post, true)
	require.NoError(t, db.Create(&models.CommentReport{CommentID: comment.ID, ReporterID: alice.ID, Reason: "rude"}).Error)
	require.NoError(t, db.Create(&models.PostLike{PostID: post.ID, UserID: bob.ID, Value: models.ReactionLike}).Error)

	assert.ErrorIs(t, svc.Delete(context.Background(), bob.ID, "hello"), ErrNotPostOwner)
	require.NoError(t, svc.Delete(context.Background(), alice.ID, "hello"))

	for _, model := range []interface{}{&models.Post{}, &models.Comment{}, &models.CommentReport{}, &models.PostLike{}} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zero(t, count)
	}
	assert.Equal(t, 1, inv.count())
}

func TestWriteSucceedsWhenEvictionFails(t *testing.T) {
	db := newTestDB(t)
	inv := &recordingInvalidator{err: errors.New("redis down")}
	svc := NewPostService(db, inv, testNamespace)
	alice := seedUser(t, db, "alice")

	post, err := svc.Create(context.Background(), alice.ID, &dto.CreatePostRequest{Title: "Still saved", Status: models.PostStatusPublished})
	require.NoError(t, err)
	assert.Equal(t, "still-saved", post.Slug)
	assert.Equal(t, 1, inv.count())
}

func TestListByAuthorAndCategory(t *testing.T) {
	svc, db, _ := newPostService(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	require.NoError(t, db.Create(&models.Category{Name: "Go", Slug: "go"}).Error)
	require.NoError(t, db.Create(&models.Follow{FromUserID: bob.ID, ToUserID: alice.ID}).Error)

	_, err := svc.Create(context.Background(), alice.ID, &dto.CreatePostRequest{Title: "Tagged", Status: models.PostStatusPublished, Categories: []string{"go"}})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), alice.ID, &dto.CreatePostRequest{Title: "Untagged", Status: models.PostStatusPublished})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), alice.ID, &dto.CreatePostRequest{Title: "Hidden", Categories: []string{"go"}})
	require.NoError(t, err)

	author, err := svc.ListByAuthor(context.Background(), "alice", PostFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, author.Count)
	assert.EqualValues(t, 1, author.Author.FollowersCount)

	_, err = svc.ListByAuthor(context.Background(), "nobody", PostFilter{})
	assert.ErrorIs(t, err, ErrUserNotFound)

	posts, total, err := svc.ListByCategory(context.Background(), "go", PostFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, posts, 1)
	assert.Equal(t, "tagged", posts[0].Slug)

	_, _, err = svc.ListByCategory(context.Background(), "missing", PostFilter{})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryLifecycle(t *testing.T) {
	db := newTestDB(t)
	inv := &recordingInvalidator{}
	svc := NewCategoryService(db, inv, testNamespace)
	posts := NewPostService(db, nil, testNamespace)
	alice := seedUser(t, db, "alice")
	ctx := context.Background()

	category, err := svc.Create(ctx, &dto.CategoryRequest{Name: "Go Lang"})
	require.NoError(t, err)
	assert.Equal(t, "go-lang", category.Slug)

	_, err = posts.Create(ctx, alice.ID, &dto.CreatePostRequest{Title: "Tagged", Status: models.PostStatusPublished, Categories: []string{"go-lang"}})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "go-lang", &dto.UpdateCategoryRequest{Name: strPtr("Golang")})
	require.NoError(t, err)
	assert.Equal(t, "Golang", updated.Name)

	require.NoError(t, svc.Delete(ctx, "go-lang"))
	assert.ErrorIs(t, svc.Delete(ctx, "go-lang"), ErrCategoryNotFound)

	post, err := posts.Get(ctx, "tagged", 0)
	require.NoError(t, err)
	assert.Empty(t, post.Categories)

	listed, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
	assert.Equal(t, 3, inv.count())
}
