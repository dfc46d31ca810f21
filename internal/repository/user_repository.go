package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"cliper/internal/models"
)

const userColumns = `id, email, password_hash, username, full_name, profile_picture, bio, is_private,
	followers_count, following_count, posts_count, created_at, updated_at`

const publicUserColumns = `id, username, full_name, profile_picture, bio, is_private,
	followers_count, following_count, posts_count, created_at`

type userRepository struct {
	db         *sqlx.DB
	bcryptCost int
}

func NewUserRepository(db *sqlx.DB, bcryptCost int) UserRepository {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userRepository{db: db, bcryptCost: bcryptCost}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), r.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.ID = uuid.New().String()
	user.PasswordHash = string(hashedPassword)

	query := `
		INSERT INTO users (id, email, password_hash, username, full_name, profile_picture, bio, is_private)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err = r.db.QueryRowxContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Username, user.FullName,
		user.ProfilePicture, user.Bio, user.IsPrivate,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *userRepository) getOne(ctx context.Context, column, value string) (*models.User, error) {
	var user models.User

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + column + ` = $1`

	err := r.db.GetContext(ctx, &user, query, value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by %s: %w", column, err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return r.getOne(ctx, "id", userID)
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, "email", email)
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, "username", username)
}

func (r *userRepository) GetProfileByUsername(ctx context.Context, username string) (*models.PublicUser, error) {
	var user models.PublicUser

	query := `SELECT ` + publicUserColumns + ` FROM users WHERE username = $1`

	err := r.db.GetContext(ctx, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return &user, nil
}

func (r *userRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var exists bool

	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 OR username = $2)`

	if err := r.db.GetContext(ctx, &exists, query, email, username); err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return exists, nil
}

func (r *userRepository) UsernameTakenByOther(ctx context.Context, username, userID string) (bool, error) {
	var taken bool

	query := `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 AND id <> $2)`

	if err := r.db.GetContext(ctx, &taken, query, username, userID); err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return taken, nil
}

// UpdateProfile applies only the non-nil fields of req.
func (r *userRepository) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.User, error) {
	var user models.User

	query := `
		UPDATE users
		SET username = COALESCE($2, username),
			full_name = COALESCE($3, full_name),
			bio = COALESCE($4, bio),
			is_private = COALESCE($5, is_private),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	err := r.db.GetContext(ctx, &user, query, userID, req.Username, req.FullName, req.Bio, req.IsPrivate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}

	return &user, nil
}

func (r *userRepository) UpdateProfilePicture(ctx context.Context, userID, url string) (string, error) {
	var picture string

	query := `UPDATE users SET profile_picture = $2, updated_at = NOW() WHERE id = $1 RETURNING profile_picture`

	err := r.db.GetContext(ctx, &picture, query, userID, url)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("update profile picture: %w", err)
	}

	return picture, nil
}

func (r *userRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	user, err := r.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrPasswordMismatch
	}

	return user, nil
}

func likePattern(q string) string {
	q = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(q)
	return "%" + q + "%"
}

func (r *userRepository) Search(ctx context.Context, viewerID, query string, page models.Page) ([]models.PublicUser, error) {
	users := []models.PublicUser{}

	q := `
		SELECT ` + publicUserColumns + `
		FROM users
		WHERE (username ILIKE $2 OR full_name ILIKE $2) AND id <> $1
		ORDER BY followers_count DESC, username ASC
		LIMIT $3 OFFSET $4
	`

	if err := r.db.SelectContext(ctx, &users, q, viewerID, likePattern(query), page.Fetch(), page.Offset()); err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return users, nil
}

func (r *userRepository) Suggested(ctx context.Context, viewerID string, limit int) ([]models.PublicUser, error) {
	users := []models.PublicUser{}

	q := `
		SELECT ` + publicUserColumns + `
		FROM users
		WHERE id <> $1
			AND id NOT IN (SELECT following_id FROM follows WHERE follower_id = $1)
		ORDER BY followers_count DESC, created_at DESC
		LIMIT $2
	`

	if err := r.db.SelectContext(ctx, &users, q, viewerID, limit); err != nil {
		return nil, fmt.Errorf("suggested users: %w", err)
	}
	return users, nil
}
