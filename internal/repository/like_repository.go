package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle returns ErrConflict when a concurrent request inserted the same like first;
// the like then exists and the counter has already been bumped by that request.
func (r *likeRepository) Toggle(ctx context.Context, postID, userID string) (bool, error) {
	var liked bool

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
		if err != nil {
			return fmt.Errorf("delete like: %w", err)
		}
		removed, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}

		if removed > 0 {
			if _, err := tx.ExecContext(ctx,
				`UPDATE posts SET likes_count = GREATEST(likes_count - 1, 0) WHERE id = $1`, postID); err != nil {
				return fmt.Errorf("decrement likes_count: %w", err)
			}
			liked = false
			return nil
		}

		res, err = tx.ExecContext(ctx, `
			INSERT INTO likes (id, post_id, user_id)
			VALUES ($1, $2, $3)
			ON CONFLICT (post_id, user_id) DO NOTHING
		`, uuid.New().String(), postID, userID)
		if err != nil {
			return fmt.Errorf("insert like: %w", err)
		}
		inserted, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}

		liked = true
		if inserted == 0 {
			return ErrConflict
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE posts SET likes_count = likes_count + 1 WHERE id = $1`, postID); err != nil {
			return fmt.Errorf("increment likes_count: %w", err)
		}
		return nil
	})

	return liked, err
}
