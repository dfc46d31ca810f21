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

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create inserts the edge and bumps both counters in one transaction.
// An existing edge yields ErrConflict and leaves the counters untouched.
func (r *followRepository) Create(ctx context.Context, followerID, followingID string) (*models.Follow, error) {
	follow := &models.Follow{}

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO follows (id, follower_id, following_id)
			VALUES ($1, $2, $3)
			ON CONFLICT (follower_id, following_id) DO NOTHING
			RETURNING id, follower_id, following_id, created_at
		`
		if err := tx.GetContext(ctx, follow, query, uuid.New().String(), followerID, followingID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrConflict
			}
			return fmt.Errorf("insert follow: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET followers_count = followers_count + 1 WHERE id = $1`, followingID); err != nil {
			return fmt.Errorf("increment followers_count: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET following_count = following_count + 1 WHERE id = $1`, followerID); err != nil {
			return fmt.Errorf("increment following_count: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return follow, nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followingID string) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx,
			`DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`, followerID, followingID)
		if err != nil {
			return fmt.Errorf("delete follow: %w", err)
		}
		if err := requireAffected(res); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET followers_count = GREATEST(followers_count - 1, 0) WHERE id = $1`, followingID); err != nil {
			return fmt.Errorf("decrement followers_count: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET following_count = GREATEST(following_count - 1, 0) WHERE id = $1`, followerID); err != nil {
			return fmt.Errorf("decrement following_count: %w", err)
		}
		return nil
	})
}

func (r *followRepository) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	var exists bool

	query := `SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2)`

	if err := r.db.GetContext(ctx, &exists, query, followerID, followingID); err != nil {
		return false, fmt.Errorf("check follow: %w", err)
	}
	return exists, nil
}

func (r *followRepository) ListFollowers(ctx context.Context, userID string, page models.Page) ([]models.UserSummary, error) {
	return r.list(ctx, "follower_id", "following_id", userID, page)
}

func (r *followRepository) ListFollowing(ctx context.Context, userID string, page models.Page) ([]models.UserSummary, error) {
	return r.list(ctx, "following_id", "follower_id", userID, page)
}

// list joins the user on joinColumn for every edge whose filterColumn equals userID, newest edge first.
func (r *followRepository) list(ctx context.Context, joinColumn, filterColumn, userID string, page models.Page) ([]models.UserSummary, error) {
	users := []models.UserSummary{}

	query := `
		SELECT u.id, u.username, u.full_name, u.profile_picture, u.bio
		FROM follows f
		JOIN users u ON u.id = f.` + joinColumn + `
		WHERE f.` + filterColumn + ` = $1
		ORDER BY f.created_at DESC
		LIMIT $2 OFFSET $3
	`

	if err := r.db.SelectContext(ctx, &users, query, userID, page.Fetch(), page.Offset()); err != nil {
		return nil, fmt.Errorf("list follows: %w", err)
	}
	return users, nil
}
