package repository

import (
	"context"
	"errors"

	"github.com/pixelgrove/storefront/internal/domain/entity"
)

// ErrNoComment is returned when a comment ID does not exist under the product.
// Reply IDs are not addressable through these methods, so targeting a reply
// yields ErrNoComment as well.
var ErrNoComment = errors.New("comment not found")

// CommentRepository stores the per-product comment forest: top-level comments,
// their ordered replies, and the per-user like set each count derives from.
type CommentRepository interface {
	Insert(ctx context.Context, c *entity.Comment) error
	ListByProduct(ctx context.Context, productID string) ([]entity.Comment, error)
	// Get returns the comment without its replies populated.
	Get(ctx context.Context, productID, commentID string) (*entity.Comment, error)
	UpdateText(ctx context.Context, productID, commentID, text string) error
	// Delete removes the comment with its replies and likes; deleting an
	// absent comment is a no-op.
	Delete(ctx context.Context, productID, commentID string) error
	// Like inserts (commentID, userID) into the like set if absent and
	// returns the resulting count.
	Like(ctx context.Context, productID, commentID, userID string) (int, error)
	InsertReply(ctx context.Context, productID, commentID string, r *entity.Reply) error
}
