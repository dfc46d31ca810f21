package service

import (
	"context"
	"errors"

	"cliper/internal/models"
	"cliper/internal/repository"
)

type FollowService interface {
	Follow(ctx context.Context, followerID, targetID string) (*models.Follow, error)
	Unfollow(ctx context.Context, followerID, targetID string) error
	IsFollowing(ctx context.Context, followerID, targetID string) (bool, error)
	Followers(ctx context.Context, userID string, page models.Page) ([]models.UserSummary, bool, error)
	Following(ctx context.Context, userID string, page models.Page) ([]models.UserSummary, bool, error)
}

type followService struct {
	userRepo      repository.UserRepository
	followRepo    repository.FollowRepository
	notifications NotificationService
}

func NewFollowService(userRepo repository.UserRepository, followRepo repository.FollowRepository, notifications NotificationService) FollowService {
	return &followService{
		userRepo:      userRepo,
		followRepo:    followRepo,
		notifications: notifications,
	}
}

// Follow checks run in a fixed order: self, missing target, existing edge.
func (s *followService) Follow(ctx context.Context, followerID, targetID string) (*models.Follow, error) {
	if followerID == targetID {
		return nil, ErrSelfFollow
	}

	if !isUUID(targetID) {
		return nil, ErrUserNotFound
	}
	if _, err := s.userRepo.GetUserByID(ctx, targetID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	exists, err := s.followRepo.Exists(ctx, followerID, targetID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyFollowing
	}

	follow, err := s.followRepo.Create(ctx, followerID, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrAlreadyFollowing
		}
		return nil, err
	}

	s.notifications.Create(ctx, models.CreateNotificationRequest{
		Type:        models.NotificationFollow,
		SenderID:    followerID,
		RecipientID: targetID,
		Content:     "started following you",
	})

	return follow, nil
}

func (s *followService) Unfollow(ctx context.Context, followerID, targetID string) error {
	if followerID == targetID {
		return ErrSelfUnfollow
	}
	if !isUUID(targetID) {
		return ErrNotFollowing
	}

	exists, err := s.followRepo.Exists(ctx, followerID, targetID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFollowing
	}

	if err := s.followRepo.Delete(ctx, followerID, targetID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFollowing
		}
		return err
	}
	return nil
}

func (s *followService) IsFollowing(ctx context.Context, followerID, targetID string) (bool, error) {
	if !isUUID(targetID) {
		return false, nil
	}
	return s.followRepo.Exists(ctx, followerID, targetID)
}

func (s *followService) Followers(ctx context.Context, userID string, page models.Page) ([]models.UserSummary, bool, error) {
	if !isUUID(userID) {
		return []models.UserSummary{}, false, nil
	}

	users, err := s.followRepo.ListFollowers(ctx, userID, page)
	if err != nil {
		return nil, false, err
	}

	users, hasMore := trimPage(users, page)
	return users, hasMore, nil
}

func (s *followService) Following(ctx context.Context, userID string, page models.Page) ([]models.UserSummary, bool, error) {
	if !isUUID(userID) {
		return []models.UserSummary{}, false, nil
	}

	users, err := s.followRepo.ListFollowing(ctx, userID, page)
	if err != nil {
		return nil, false, err
	}

	users, hasMore := trimPage(users, page)
	return users, hasMore, nil
}
