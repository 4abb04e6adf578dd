package services

import (
	"sync"
	"testing"

	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReact(t *testing.T) {
	db := newTestDB(t)
	svc := NewLikeService(db, NewBlockService(db))
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	seedPost(t, db, alice, "hello", models.PostStatusPublished)

	res, err := svc.React(bob.ID, "hello", models.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, ReactionAdded, res.Outcome)
	assert.Equal(t, "Like added", res.Message())

	res, err = svc.React(bob.ID, "hello", models.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, ReactionUnchanged, res.Outcome)
	assert.Equal(t, "Already liked", res.Message())

	res, err = svc.React(bob.ID, "hello", models.ReactionDislike)
	require.NoError(t, err)
	assert.Equal(t, ReactionUpdated, res.Outcome)
	assert.Equal(t, "Updated to dislike", res.Message())

	var likes []models.PostLike
	require.NoError(t, db.Find(&likes).Error)
	require.Len(t, likes, 1)
	assert.Equal(t, models.ReactionDislike, likes[0].Value)
}

func TestReactRejections(t *testing.T) {
	db := newTestDB(t)
	blocks := NewBlockService(db)
	svc := NewLikeService(db, blocks)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	seedPost(t, db, alice, "hello", models.PostStatusPublished)
	seedPost(t, db, alice, "draft", models.PostStatusDraft)

	_, err := svc.React(bob.ID, "hello", "love")
	assert.ErrorIs(t, err, ErrInvalidReaction)

	_, err = svc.React(bob.ID, "draft", models.ReactionLike)
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = svc.React(bob.ID, "missing", models.ReactionLike)
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = blocks.Block(alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = svc.React(bob.ID, "hello", models.ReactionLike)
	assert.ErrorIs(t, err, ErrBlockedInteraction)

	var count int64
	db.Model(&models.PostLike{}).Count(&count)
	assert.Zero(t, count)
}

func TestReactConcurrentRequestsKeepOneRow(t *testing.T) {
	db := newTestDB(t)
	svc := NewLikeService(db, NewBlockService(db))
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	seedPost(t, db, alice, "hello", models.PostStatusPublished)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.React(bob.ID, "hello", models.ReactionLike)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	var count int64
	db.Model(&models.PostLike{}).Count(&count)
	assert.EqualValues(t, 1, count)
}
