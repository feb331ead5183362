package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelgrove/storefront/internal/domain/entity"
)

func newCommentFixture(t *testing.T) (*CommentService, *entity.Product) {
	t.Helper()
	p := &entity.Product{Name: "Hollow Depths", Price: 24.99}
	products := newFakeProductRepo(p)
	return NewCommentService(newFakeCommentRepo(), products, nil), p
}

func TestCreateCommentAssignsIdentityServerSide(t *testing.T) {
	svc, p := newCommentFixture(t)

	c, err := svc.Create(context.Background(), p.ID, "u1", "ada", "great game")
	require.NoError(t, err)

	assert.NoError(t, uuid.Validate(c.ID), "comment IDs are uuids")
	assert.Equal(t, "u1", c.UserID)
	assert.Equal(t, "ada", c.UserName)
	assert.Equal(t, 0, c.Likes)
	assert.Empty(t, c.Replies)
	assert.False(t, c.Timestamp.IsZero())
}

func TestCreateCommentValidation(t *testing.T) {
	svc, p := newCommentFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, p.ID, "u1", "ada", "   ")
	assert.ErrorIs(t, err, ErrEmptyText)

	_, err = svc.Create(ctx, "missing", "u1", "ada", "hi")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestListCommentsKeepsInsertionOrder(t *testing.T) {
	svc, p := newCommentFixture(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, p.ID, "u1", "ada", "first")
	require.NoError(t, err)
	second, err := svc.Create(ctx, p.ID, "u2", "bob", "second")
	require.NoError(t, err)

	list, err := svc.List(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
}

func TestEditCommentOwnership(t *testing.T) {
	svc, p := newCommentFixture(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, p.ID, "u1", "ada", "original")
	require.NoError(t, err)

	_, err = svc.Edit(ctx, p.ID, c.ID, "u2", "hijacked")
	assert.ErrorIs(t, err, ErrNotCommentAuthor)

	updated, err := svc.Edit(ctx, p.ID, c.ID, "u1", "revised")
	require.NoError(t, err)
	assert.Equal(t, "revised", updated.Text)

	_, err = svc.Edit(ctx, p.ID, "missing", "u1", "x")
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestDeleteCommentOwnershipAndIdempotence(t *testing.T) {
	svc, p := newCommentFixture(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, p.ID, "u1", "ada", "to be removed")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, p.ID, c.ID, "u2"), ErrNotCommentAuthor)

	require.NoError(t, svc.Delete(ctx, p.ID, c.ID, "u1"))

	// deleting an already-gone comment succeeds silently
	assert.NoError(t, svc.Delete(ctx, p.ID, c.ID, "u1"))

	list, err := svc.List(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestLikeCommentAtMostOncePerUser(t *testing.T) {
	svc, p := newCommentFixture(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, p.ID, "u1", "ada", "like me")
	require.NoError(t, err)

	liked, err := svc.Like(ctx, p.ID, c.ID, "u2")
	require.NoError(t, err)
	assert.Equal(t, 1, liked.Likes)

	liked, err = svc.Like(ctx, p.ID, c.ID, "u2")
	require.NoError(t, err)
	assert.Equal(t, 1, liked.Likes, "repeat like by the same user is a no-op")

	liked, err = svc.Like(ctx, p.ID, c.ID, "u3")
	require.NoError(t, err)
	assert.Equal(t, 2, liked.Likes)

	_, err = svc.Like(ctx, p.ID, "missing", "u2")
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestReplyToComment(t *testing.T) {
	svc, p := newCommentFixture(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, p.ID, "u1", "ada", "parent")
	require.NoError(t, err)

	r, err := svc.Reply(ctx, p.ID, c.ID, "u2", "bob", "agreed")
	require.NoError(t, err)
	assert.NoError(t, uuid.Validate(r.ID))
	assert.Equal(t, "u2", r.UserID)

	list, err := svc.List(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].Replies, 1)
	assert.Equal(t, "agreed", list[0].Replies[0].Text)
}

func TestRepliesAreNotAddressable(t *testing.T) {
	svc, p := newCommentFixture(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, p.ID, "u1", "ada", "parent")
	require.NoError(t, err)
	r, err := svc.Reply(ctx, p.ID, c.ID, "u2", "bob", "reply")
	require.NoError(t, err)

	// a reply ID is not a comment ID: replying to it or liking it 404s
	_, err = svc.Reply(ctx, p.ID, r.ID, "u3", "eve", "nested")
	assert.ErrorIs(t, err, ErrCommentNotFound)

	_, err = svc.Like(ctx, p.ID, r.ID, "u3")
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestDeleteCascadesReplies(t *testing.T) {
	svc, p := newCommentFixture(t)
	ctx := context.Background()

	c, err := svc.Create(ctx, p.ID, "u1", "ada", "parent")
	require.NoError(t, err)
	_, err = svc.Reply(ctx, p.ID, c.ID, "u2", "bob", "child")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, p.ID, c.ID, "u1"))

	list, err := svc.List(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
