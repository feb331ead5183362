package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pixelgrove/storefront/internal/domain/entity"
	repo "github.com/pixelgrove/storefront/internal/domain/repository"
)

var (
	ErrCommentNotFound  = errors.New("comment not found")
	ErrNotCommentAuthor = errors.New("comment belongs to another user")
	ErrEmptyText        = errors.New("text must not be empty")
)

// CommentService runs the per-product comment forest. Authorship is pinned to
// the authenticated caller's user ID at creation, and edit/delete are gated on
// that ID here rather than trusting anything the client sends.
type CommentService struct {
	Comments repo.CommentRepository
	Products repo.ProductRepository
	Logger   *logrus.Logger
}

func NewCommentService(comments repo.CommentRepository, products repo.ProductRepository, logger *logrus.Logger) *CommentService {
	return &CommentService{Comments: comments, Products: products, Logger: logger}
}

func (s *CommentService) requireProduct(ctx context.Context, productID string) error {
	_, err := s.Products.GetByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrProductNotFound
	}
	return err
}

// Create appends a fresh comment with a server-assigned ID and timestamp.
func (s *CommentService) Create(ctx context.Context, productID, userID, userName, text string) (*entity.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}

	c := &entity.Comment{
		ID:        uuid.NewString(),
		ProductID: productID,
		UserID:    userID,
		UserName:  userName,
		Text:      text,
		Likes:     0,
		Replies:   []entity.Reply{},
	}
	if err := s.Comments.Insert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns the product's full forest in storage order; sorting by recency
// is left to the caller.
func (s *CommentService) List(ctx context.Context, productID string) ([]entity.Comment, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	return s.Comments.ListByProduct(ctx, productID)
}

// Delete removes the caller's comment along with its embedded replies.
// Deleting an already-gone comment succeeds silently.
func (s *CommentService) Delete(ctx context.Context, productID, commentID, userID string) error {
	if err := s.requireProduct(ctx, productID); err != nil {
		return err
	}
	c, err := s.Comments.Get(ctx, productID, commentID)
	if errors.Is(err, repo.ErrNoComment) {
		return nil
	}
	if err != nil {
		return err
	}
	if c.UserID != userID {
		return ErrNotCommentAuthor
	}
	return s.Comments.Delete(ctx, productID, commentID)
}

// Edit overwrites the comment text in place; there is no version history.
func (s *CommentService) Edit(ctx context.Context, productID, commentID, userID, text string) (*entity.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	c, err := s.Comments.Get(ctx, productID, commentID)
	if err != nil {
		if errors.Is(err, repo.ErrNoComment) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if c.UserID != userID {
		return nil, ErrNotCommentAuthor
	}
	if err := s.Comments.UpdateText(ctx, productID, commentID, text); err != nil {
		if errors.Is(err, repo.ErrNoComment) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	c.Text = text
	return c, nil
}

// Like records the caller in the comment's like set and returns the comment
// with the derived count. A repeat like by the same user changes nothing.
func (s *CommentService) Like(ctx context.Context, productID, commentID, userID string) (*entity.Comment, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	likes, err := s.Comments.Like(ctx, productID, commentID, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNoComment) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	c, err := s.Comments.Get(ctx, productID, commentID)
	if err != nil {
		if errors.Is(err, repo.ErrNoComment) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	c.Likes = likes
	return c, nil
}

// Reply appends a reply under an existing top-level comment. Reply IDs are
// not addressable as comments, so replying to a reply fails with not-found.
func (s *CommentService) Reply(ctx context.Context, productID, commentID, userID, userName, text string) (*entity.Reply, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}

	r := &entity.Reply{
		ID:       uuid.NewString(),
		UserID:   userID,
		UserName: userName,
		Text:     text,
		Likes:    0,
	}
	if err := s.Comments.InsertReply(ctx, productID, commentID, r); err != nil {
		if errors.Is(err, repo.ErrNoComment) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"product_id": productID, "comment_id": commentID}).
			Debug("reply created")
	}
	return r, nil
}
