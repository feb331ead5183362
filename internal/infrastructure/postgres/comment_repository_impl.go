package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pixelgrove/storefront/internal/domain/entity"
	"github.com/pixelgrove/storefront/internal/domain/repository"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func (r *CommentRepository) Insert(ctx context.Context, c *entity.Comment) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO product_comments (id, product_id, user_id, user_name, body)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, c.ID, c.ProductID, c.UserID, c.UserName, c.Text).Scan(&c.Timestamp)
}

// ListByProduct returns the forest in storage order, replies nested under
// their parent and like counts derived from the like set.
func (r *CommentRepository) ListByProduct(ctx context.Context, productID string) ([]entity.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.product_id, c.user_id, c.user_name, c.body, c.created_at,
			(SELECT COUNT(*) FROM comment_likes cl WHERE cl.comment_id = c.id)
		FROM product_comments c
		WHERE c.product_id = $1
		ORDER BY c.created_at, c.id
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []entity.Comment{}
	index := map[string]int{}
	for rows.Next() {
		var c entity.Comment
		c.Replies = []entity.Reply{}
		if err := rows.Scan(&c.ID, &c.ProductID, &c.UserID, &c.UserName, &c.Text,
			&c.Timestamp, &c.Likes); err != nil {
			return nil, err
		}
		index[c.ID] = len(comments)
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return comments, nil
	}

	replyRows, err := r.pool.Query(ctx, `
		SELECT rp.comment_id, rp.id, rp.user_id, rp.user_name, rp.body, rp.likes, rp.created_at
		FROM comment_replies rp
		JOIN product_comments c ON c.id = rp.comment_id
		WHERE c.product_id = $1
		ORDER BY rp.created_at, rp.id
	`, productID)
	if err != nil {
		return nil, err
	}
	defer replyRows.Close()

	for replyRows.Next() {
		var parentID string
		var rp entity.Reply
		if err := replyRows.Scan(&parentID, &rp.ID, &rp.UserID, &rp.UserName, &rp.Text,
			&rp.Likes, &rp.Timestamp); err != nil {
			return nil, err
		}
		if i, ok := index[parentID]; ok {
			comments[i].Replies = append(comments[i].Replies, rp)
		}
	}
	return comments, replyRows.Err()
}

func (r *CommentRepository) Get(ctx context.Context, productID, commentID string) (*entity.Comment, error) {
	c := &entity.Comment{Replies: []entity.Reply{}}
	row := r.pool.QueryRow(ctx, `
		SELECT c.id, c.product_id, c.user_id, c.user_name, c.body, c.created_at,
			(SELECT COUNT(*) FROM comment_likes cl WHERE cl.comment_id = c.id)
		FROM product_comments c
		WHERE c.product_id = $1 AND c.id = $2
	`, productID, commentID)
	if err := row.Scan(&c.ID, &c.ProductID, &c.UserID, &c.UserName, &c.Text,
		&c.Timestamp, &c.Likes); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNoComment
		}
		return nil, err
	}
	return c, nil
}

func (r *CommentRepository) UpdateText(ctx context.Context, productID, commentID, text string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE product_comments SET body = $1 WHERE product_id = $2 AND id = $3
	`, text, productID, commentID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNoComment
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, productID, commentID string) error {
	// Replies and likes go with the comment via ON DELETE CASCADE.
	_, err := r.pool.Exec(ctx, `
		DELETE FROM product_comments WHERE product_id = $1 AND id = $2
	`, productID, commentID)
	return err
}

func (r *CommentRepository) Like(ctx context.Context, productID, commentID, userID string) (int, error) {
	// Atomic set insert; a second like by the same user is a no-op, and
	// concurrent likes by different users can never lose a count.
	res, err := r.pool.Exec(ctx, `
		INSERT INTO comment_likes (comment_id, user_id)
		SELECT c.id, $3 FROM product_comments c WHERE c.product_id = $1 AND c.id = $2
		ON CONFLICT (comment_id, user_id) DO NOTHING
	`, productID, commentID, userID)
	if err != nil {
		return 0, err
	}
	if res.RowsAffected() == 0 {
		// Either the comment is missing or the user already liked it.
		var exists bool
		if err := r.pool.QueryRow(ctx, `
			SELECT EXISTS (SELECT 1 FROM product_comments WHERE product_id = $1 AND id = $2)
		`, productID, commentID).Scan(&exists); err != nil {
			return 0, err
		}
		if !exists {
			return 0, repository.ErrNoComment
		}
	}

	var likes int
	err = r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM comment_likes WHERE comment_id = $1
	`, commentID).Scan(&likes)
	return likes, err
}

func (r *CommentRepository) InsertReply(ctx context.Context, productID, commentID string, rp *entity.Reply) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO comment_replies (id, comment_id, user_id, user_name, body)
		SELECT $1, c.id, $3, $4, $5 FROM product_comments c WHERE c.product_id = $2 AND c.id = $6
		RETURNING created_at
	`, rp.ID, productID, rp.UserID, rp.UserName, rp.Text, commentID).Scan(&rp.Timestamp)
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNoComment
	}
	return err
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
