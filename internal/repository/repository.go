package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"cliper/internal/models"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrConflict         = errors.New("record already exists")
	ErrPasswordMismatch = errors.New("password does not match")
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetProfileByUsername(ctx context.Context, username string) (*models.PublicUser, error)
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)
	UsernameTakenByOther(ctx context.Context, username, userID string) (bool, error)
	UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.User, error)
	UpdateProfilePicture(ctx context.Context, userID, url string) (string, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	Search(ctx context.Context, viewerID, query string, page models.Page) ([]models.PublicUser, error)
	Suggested(ctx context.Context, viewerID string, limit int) ([]models.PublicUser, error)
}

type FollowRepository interface {
	Create(ctx context.Context, followerID, followingID string) (*models.Follow, error)
	Delete(ctx context.Context, followerID, followingID string) error
	Exists(ctx context.Context, followerID, followingID string) (bool, error)
	ListFollowers(ctx context.Context, userID string, page models.Page) ([]models.UserSummary, error)
	ListFollowing(ctx context.Context, userID string, page models.Page) ([]models.UserSummary, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	GetWithAuthor(ctx context.Context, postID, viewerID string) (*models.FeedPost, error)
	Feed(ctx context.Context, userID string, page models.Page) ([]models.FeedPost, error)
	ListByUser(ctx context.Context, userID string, page models.Page) ([]models.Post, error)
}

type LikeRepository interface {
	// Toggle removes the viewer's like when present and adds it otherwise, reporting the resulting state.
	Toggle(ctx context.Context, postID, userID string) (bool, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPost(ctx context.Context, postID string, page models.Page) ([]models.Comment, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByRecipient(ctx context.Context, recipientID, notificationType string, page models.Page) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID, recipientID string) error
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
	CountUnread(ctx context.Context, recipientID string) (int, error)
	Delete(ctx context.Context, notificationID, recipientID string) error
}

type TablesRepository interface {
	CountTablesDB(ctx context.Context) (int, error)
}

type Repository struct {
	User         UserRepository
	Follow       FollowRepository
	Post         PostRepository
	Like         LikeRepository
	Comment      CommentRepository
	Notification NotificationRepository
	Tables       TablesRepository
}

func NewRepository(db *sqlx.DB, bcryptCost int) *Repository {
	return &Repository{
		User:         NewUserRepository(db, bcryptCost),
		Follow:       NewFollowRepository(db),
		Post:         NewPostRepository(db),
		Like:         NewLikeRepository(db),
		Comment:      NewCommentRepository(db),
		Notification: NewNotificationRepository(db),
		Tables:       NewTablesRepository(db),
	}
}

func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func requireAffected(res interface{ RowsAffected() (int64, error) }) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
