package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"cliper/internal/models"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create stores the comment, bumps the post's comments_count and fills comment.User.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	comment.ID = uuid.New().String()

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE posts SET comments_count = comments_count + 1 WHERE id = $1`, comment.PostID)
		if err != nil {
			return fmt.Errorf("increment comments_count: %w", err)
		}
		if err := requireAffected(res); err != nil {
			return err
		}

		err = tx.QueryRowxContext(ctx, `
			INSERT INTO comments (id, post_id, user_id, content)
			VALUES ($1, $2, $3, $4)
			RETURNING created_at
		`, comment.ID, comment.PostID, comment.UserID, comment.Content).Scan(&comment.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert comment: %w", err)
		}

		err = tx.GetContext(ctx, &comment.User,
			`SELECT id, username, full_name, profile_picture FROM users WHERE id = $1`, comment.UserID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("load comment author: %w", err)
		}
		return nil
	})
}

func (r *commentRepository) ListByPost(ctx context.Context, postID string, page models.Page) ([]models.Comment, error) {
	comments := []models.Comment{}

	query := `
		SELECT c.id, c.post_id, c.user_id, c.content, c.created_at,
			u.id AS "author.id", u.username AS "author.username", u.full_name AS "author.full_name",
			u.profile_picture AS "author.profile_picture"
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT $2 OFFSET $3
	`

	if err := r.db.SelectContext(ctx, &comments, query, postID, page.Fetch(), page.Offset()); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}
