package services

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/microblog-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommentService(t *testing.T) (*CommentService, *BlockService, *models.User, *models.User) {
	t.Helper()
	db := newTestDB(t)
	blocks := NewBlockService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	seedPost(t, db, alice, "hello", models.PostStatusPublished)
	seedPost(t, db, alice, "secret", models.PostStatusDraft)
	return NewCommentService(db, blocks, NewContentFilter()), blocks, alice, bob
}

func TestCreateCommentStartsUnapproved(t *testing.T) {
	svc, _, _, bob := newCommentService(t)

	comment, err := svc.Create(bob.ID, "hello", &dto.CreateCommentRequest{Content: "  nice post  "})
	require.NoError(t, err)
	assert.False(t, comment.IsApproved)
	assert.Equal(t, 1, comment.Level)
	assert.Equal(t, "nice post", comment.Content)
	assert.Equal(t, "bob", comment.User.Username)
	assert.Empty(t, comment.FlagReason)

	listed, err := svc.ListForPost("hello", 0)
	require.NoError(t, err)
	assert.Empty(t, listed)

	_, err = svc.Approve(comment.ID)
	require.NoError(t, err)

	listed, err = svc.ListForPost("hello", 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, comment.ID, listed[0].ID)
}

func TestCreateCommentFlagsContent(t *testing.T) {
	svc, _, _, bob := newCommentService(t)

	comment, err := svc.Create(bob.ID, "hello", &dto.CreateCommentRequest{Content: "visit https://example.com now"})
	require.NoError(t, err)
	assert.Equal(t, FlagLink, comment.FlagReason)
}

func TestCreateCommentOnDraft(t *testing.T) {
	svc, _, alice, bob := newCommentService(t)

	_, err := svc.Create(bob.ID, "secret", &dto.CreateCommentRequest{Content: "hi"})
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = svc.Create(alice.ID, "secret", &dto.CreateCommentRequest{Content: "note to self"})
	assert.NoError(t, err)
}

func TestCreateCommentBlocked(t *testing.T) {
	svc, blocks, alice, bob := newCommentService(t)

	_, err := blocks.Block(alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = svc.Create(bob.ID, "hello", &dto.CreateCommentRequest{Content: "hi"})
	assert.ErrorIs(t, err, ErrBlockedInteraction)
}

func TestReplyDepth(t *testing.T) {
	svc, _, _, bob := newCommentService(t)

	parent, err := svc.Create(bob.ID, "hello", &dto.CreateCommentRequest{Content: "level 1"})
	require.NoError(t, err)
	for level := 2; level <= models.MaxCommentLevel; level++ {
		parent, err = svc.Create(bob.ID, "hello", &dto.CreateCommentRequest{Content: "reply", ParentID: &parent.ID})
		require.NoError(t, err)
		assert.Equal(t, level, parent.Level)
	}

	_, err = svc.Create(bob.ID, "hello", &dto.CreateCommentRequest{Content: "too deep", ParentID: &parent.ID})
	assert.ErrorIs(t, err, ErrCommentTooDeep)
}

func TestReplyParentMustBelongToPost(t *testing.T) {
	svc, _, alice, bob := newCommentService(t)

	onDraft, err := svc.Create(alice.ID, "secret", &dto.CreateCommentRequest{Content: "draft note"})
	require.NoError(t, err)

	_, err = svc.Create(bob.ID, "hello", &dto.CreateCommentRequest{Content: "reply", ParentID: &onDraft.ID})
	assert.ErrorIs(t, err, ErrInvalidParent)

	missing := uint(9999)
	_, err = svc.Create(bob.ID, "hello", &dto.CreateCommentRequest{Content: "reply", ParentID: &missing})
	assert.ErrorIs(t, err, ErrInvalidParent)
}

func TestReportUpsert(t *testing.T) {
	svc, _, alice, bob := newCommentService(t)

	comment, err := svc.Create(bob.ID, "hello", &dto.CreateCommentRequest{Content: "hi"})
	require.NoError(t, err)

	report, outcome, err := svc.Report(alice.ID, comment.ID, "rude")
	require.NoError(t, err)
	assert.Equal(t, ReportSubmitted, outcome)
	assert.Equal(t, "rude", report.Reason)

	report, outcome, err = svc.Report(alice.ID, comment.ID, "spam")
	require.NoError(t, err)
	assert.Equal(t, ReportUpdated, outcome)
	assert.Equal(t, "spam", report.Reason)

	reports, total, err := svc.Reports(DefaultPageSize, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, reports, 1)
	assert.Equal(t, "spam", reports[0].Reason)

	_, _, err = svc.Report(alice.ID, comment.ID, "   ")
	assert.ErrorIs(t, err, ErrEmptyReason)

	_, _, err = svc.Report(alice.ID, 9999, "rude")
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestPendingPutsFlaggedFirst(t *testing.T) {
	svc, _, _, bob := newCommentService(t)

	clean, err := svc.Create(bob.ID, "hello", &dto.CreateCommentRequest{Content: "thanks"})
	require.NoError(t, err)
	flagged, err := svc.Create(bob.ID, "hello", &dto.CreateCommentRequest{Content: "what a scam"})
	require.NoError(t, err)

	pending, total, err := svc.Pending(DefaultPageSize, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, pending, 2)
	assert.Equal(t, flagged.ID, pending[0].ID)
	assert.Equal(t, clean.ID, pending[1].ID)
}

func TestDeleteCommentRemovesReplies(t *testing.T) {
	svc, _, alice, bob := newCommentService(t)

	root, err := svc.Create(bob.ID, "hello", &dto.CreateCommentRequest{Content: "root"})
	require.NoError(t, err)
	reply, err := svc.Create(alice.ID, "hello", &dto.CreateCommentRequest{Content: "reply", ParentID: &root.ID})
	require.NoError(t, err)
	_, err = svc.Create(bob.ID, "hello", &dto.CreateCommentRequest{Content: "nested", ParentID: &reply.ID})
	require.NoError(t, err)
	other, err := svc.Create(bob.ID, "hello", &dto.CreateCommentRequest{Content: "other"})
	require.NoError(t, err)
	_, _, err = svc.Report(alice.ID, reply.ID, "rude")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(root.ID))

	var remaining []models.Comment
	require.NoError(t, svc.db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, other.ID, remaining[0].ID)

	var reports int64
	svc.db.Model(&models.CommentReport{}).Count(&reports)
	assert.Zero(t, reports)

	assert.ErrorIs(t, svc.Delete(root.ID), ErrCommentNotFound)
}
