package service

import (
	"github.com/sirupsen/logrus"

	"cliper/internal/config"
	"cliper/internal/repository"
	"cliper/internal/storage"
)

type Service struct {
	Auth         AuthService
	User         UserService
	Follow       FollowService
	Post         PostService
	Notification NotificationService
	Health       HealthService
}

func NewService(
	rep *repository.Repository,
	cfg *config.Config,
	store storage.Storage,
	pusher NotificationPusher,
	checks HealthChecks,
	log logrus.FieldLogger,
) *Service {
	notifications := NewNotificationService(rep.Notification, pusher, log)

	return &Service{
		Auth:         NewAuthService(rep.User, cfg),
		User:         NewUserService(rep.User),
		Follow:       NewFollowService(rep.User, rep.Follow, notifications),
		Post:         NewPostService(rep.Post, rep.Like, rep.Comment, store, notifications, log),
		Notification: notifications,
		Health:       NewHealthService(rep.Tables, checks),
	}
}
