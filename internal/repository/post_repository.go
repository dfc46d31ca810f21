package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"cliper/internal/models"
)

const postColumns = `p.id, p.user_id, p.image_url, p.image_key, p.caption, p.location, p.hashtags,
	p.likes_count, p.comments_count, p.created_at`

// feedColumns expects the viewer id as $1.
const feedColumns = postColumns + `,
	u.id AS "author.id", u.username AS "author.username", u.full_name AS "author.full_name",
	u.profile_picture AS "author.profile_picture",
	EXISTS (SELECT 1 FROM likes l WHERE l.post_id = p.id AND l.user_id = $1) AS is_liked`

type PostRepositoryImpl struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

// Create stores the post with zeroed counters and increments the author's posts_count in the same transaction.
func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if post.Hashtags == nil {
		post.Hashtags = pq.StringArray{}
	}
	post.LikesCount = 0
	post.CommentsCount = 0

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO posts (id, user_id, image_url, image_key, caption, location, hashtags)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING created_at
		`
		err := tx.QueryRowxContext(ctx, query,
			post.ID, post.UserID, post.ImageURL, post.ImageKey, post.Caption, post.Location, post.Hashtags,
		).Scan(&post.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert post: %w", err)
		}

		res, err := tx.ExecContext(ctx, `UPDATE users SET posts_count = posts_count + 1 WHERE id = $1`, post.UserID)
		if err != nil {
			return fmt.Errorf("increment posts_count: %w", err)
		}
		return requireAffected(res)
	})
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	var post models.Post

	query := `SELECT ` + postColumns + ` FROM posts p WHERE p.id = $1`

	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}

	return &post, nil
}

func (r *PostRepositoryImpl) GetWithAuthor(ctx context.Context, postID, viewerID string) (*models.FeedPost, error) {
	var post models.FeedPost

	query := `
		SELECT ` + feedColumns + `
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $2
	`

	err := r.db.GetContext(ctx, &post, query, viewerID, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get post with author: %w", err)
	}

	return &post, nil
}

// Feed returns posts written by the accounts userID follows, newest first.
func (r *PostRepositoryImpl) Feed(ctx context.Context, userID string, page models.Page) ([]models.FeedPost, error) {
	posts := []models.FeedPost{}

	query := `
		SELECT ` + feedColumns + `
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id IN (SELECT following_id FROM follows WHERE follower_id = $1)
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2 OFFSET $3
	`

	if err := r.db.SelectContext(ctx, &posts, query, userID, page.Fetch(), page.Offset()); err != nil {
		return nil, fmt.Errorf("get feed: %w", err)
	}
	return posts, nil
}

func (r *PostRepositoryImpl) ListByUser(ctx context.Context, userID string, page models.Page) ([]models.Post, error) {
	posts := []models.Post{}

	query := `
		SELECT ` + postColumns + `
		FROM posts p
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2 OFFSET $3
	`

	if err := r.db.SelectContext(ctx, &posts, query, userID, page.Fetch(), page.Offset()); err != nil {
		return nil, fmt.Errorf("list user posts: %w", err)
	}
	return posts, nil
}
