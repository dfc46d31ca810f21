package service

import (
	"context"
	"errors"
	"strings"

	"cliper/internal/models"
	"cliper/internal/repository"
)

const defaultSuggestedLimit = 10

type UserService interface {
	GetProfile(ctx context.Context, username string) (*models.PublicUser, error)
	Search(ctx context.Context, viewerID, query string, page models.Page) ([]models.PublicUser, bool, error)
	Suggested(ctx context.Context, viewerID string, limit int) ([]models.PublicUser, error)
	UpdateProfilePicture(ctx context.Context, userID, pictureURL string) (string, error)
	Stats(ctx context.Context, userID string) (*models.UserStats, error)
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(ctx context.Context, username string) (*models.PublicUser, error) {
	user, err := s.userRepo.GetProfileByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Search(ctx context.Context, viewerID, query string, page models.Page) ([]models.PublicUser, bool, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, false, NewValidationError("Search query is required")
	}

	users, err := s.userRepo.Search(ctx, viewerID, query, page)
	if err != nil {
		return nil, false, err
	}

	users, hasMore := trimPage(users, page)
	return users, hasMore, nil
}

func (s *userService) Suggested(ctx context.Context, viewerID string, limit int) ([]models.PublicUser, error) {
	if limit < 1 {
		limit = defaultSuggestedLimit
	}
	if limit > models.MaxPageLimit {
		limit = models.MaxPageLimit
	}
	return s.userRepo.Suggested(ctx, viewerID, limit)
}

func (s *userService) UpdateProfilePicture(ctx context.Context, userID, pictureURL string) (string, error) {
	pictureURL = strings.TrimSpace(pictureURL)
	if pictureURL == "" {
		return "", NewValidationError("Profile picture URL is required")
	}

	picture, err := s.userRepo.UpdateProfilePicture(ctx, userID, pictureURL)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return picture, nil
}

func (s *userService) Stats(ctx context.Context, userID string) (*models.UserStats, error) {
	if !isUUID(userID) {
		return nil, ErrUserNotFound
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &models.UserStats{
		FollowersCount: user.FollowersCount,
		FollowingCount: user.FollowingCount,
		PostsCount:     user.PostsCount,
	}, nil
}

func (s *userService) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	_, err := s.userRepo.GetUserByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}
