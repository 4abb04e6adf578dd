package services

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewBlockService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	created, err := svc.Block(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.Block(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, created)

	var count int64
	db.Model(&models.Block{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestBlockSelf(t *testing.T) {
	db := newTestDB(t)
	svc := NewBlockService(db)
	alice := seedUser(t, db, "alice")

	_, err := svc.Block(alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrSelfBlock)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestIsBlockedPairIsSymmetric(t *testing.T) {
	db := newTestDB(t)
	svc := NewBlockService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	_, err := svc.Block(alice.ID, bob.ID)
	require.NoError(t, err)

	blocked, err := svc.IsBlockedPair(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, blocked)

	blocked, err = svc.IsBlockedPair(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, blocked)

	blocked, err = svc.IsBlockedPair(alice.ID, carol.ID)
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestUnblockAndList(t *testing.T) {
	db := newTestDB(t)
	svc := NewBlockService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	_, err := svc.Block(alice.ID, bob.ID)
	require.NoError(t, err)

	blocks, err := svc.BlockedUsers(alice.ID)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "bob", blocks[0].Blocked.Username)

	require.NoError(t, svc.Unblock(alice.ID, bob.ID))
	require.NoError(t, svc.Unblock(alice.ID, bob.ID))

	blocked, err := svc.IsBlockedPair(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestFollow(t *testing.T) {
	db := newTestDB(t)
	blocks := NewBlockService(db)
	svc := NewFollowService(db, blocks)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	_, err := svc.Follow(alice.ID, "bob")
	require.NoError(t, err)

	_, err = svc.Follow(alice.ID, "bob")
	assert.ErrorIs(t, err, ErrAlreadyFollowing)

	followers, err := svc.FollowersCount(bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, followers)

	following, err := svc.FollowingCount(alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, following)

	require.NoError(t, svc.Unfollow(alice.ID, "bob"))
	assert.ErrorIs(t, svc.Unfollow(alice.ID, "bob"), ErrNotFollowing)
}

func TestFollowRejections(t *testing.T) {
	db := newTestDB(t)
	blocks := NewBlockService(db)
	svc := NewFollowService(db, blocks)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	_, err := svc.Follow(alice.ID, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Follow(alice.ID, "alice")
	assert.ErrorIs(t, err, ErrSelfFollow)

	_, err = blocks.Block(bob.ID, alice.ID)
	require.NoError(t, err)
	_, err = svc.Follow(alice.ID, "bob")
	assert.ErrorIs(t, err, ErrBlockedInteraction)
	assert.Equal(t, KindPermission, KindOf(err))
}

func TestBlockKeepsExistingFollow(t *testing.T) {
	db := newTestDB(t)
	blocks := NewBlockService(db)
	follows := NewFollowService(db, blocks)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	_, err := follows.Follow(alice.ID, "bob")
	require.NoError(t, err)
	_, err = blocks.Block(bob.ID, alice.ID)
	require.NoError(t, err)

	followers, err := follows.FollowersCount(bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, followers)
}

func TestPublicProfileCounts(t *testing.T) {
	db := newTestDB(t)
	follows := NewFollowService(db, NewBlockService(db))
	profiles := NewProfileService(db)
	alice := seedUser(t, db, "alice")
	seedUser(t, db, "bob")
	seedUser(t, db, "carol")

	_, err := follows.Follow(alice.ID, "bob")
	require.NoError(t, err)
	_, err = follows.Follow(alice.ID, "carol")
	require.NoError(t, err)

	profile, err := profiles.Public("alice")
	require.NoError(t, err)
	assert.EqualValues(t, 0, profile.FollowersCount)
	assert.EqualValues(t, 2, profile.FollowingCount)

	_, err = profiles.Public("nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
