package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"cliper/internal/models"
	"cliper/internal/repository"
)

// NotificationPusher delivers a stored notification to the recipient's live connections.
// Implemented by the realtime hub and by the RabbitMQ publisher.
type NotificationPusher interface {
	PushNotification(ctx context.Context, recipientID string, notification *models.Notification) error
}

type NotificationService interface {
	// Create never fails the caller: it returns nil when the notification could not be stored.
	Create(ctx context.Context, req models.CreateNotificationRequest) *models.Notification
	List(ctx context.Context, recipientID, notificationType string, page models.Page) ([]models.Notification, bool, error)
	MarkRead(ctx context.Context, notificationID, recipientID string) error
	MarkAllRead(ctx context.Context, recipientID string) error
	UnreadCount(ctx context.Context, recipientID string) (int, error)
	Delete(ctx context.Context, notificationID, recipientID string) error
}

type notificationService struct {
	repo   repository.NotificationRepository
	pusher NotificationPusher
	log    logrus.FieldLogger
}

func NewNotificationService(repo repository.NotificationRepository, pusher NotificationPusher, log logrus.FieldLogger) NotificationService {
	return &notificationService{repo: repo, pusher: pusher, log: log}
}

// Create persists first and pushes second. A push failure is logged; the stored row is still returned.
func (s *notificationService) Create(ctx context.Context, req models.CreateNotificationRequest) *models.Notification {
	notification := &models.Notification{
		Type:        req.Type,
		SenderID:    req.SenderID,
		RecipientID: req.RecipientID,
		Content:     req.Content,
		PostID:      req.PostID,
		CommentID:   req.CommentID,
	}

	entry := s.log.WithFields(logrus.Fields{
		"type":      req.Type,
		"sender":    req.SenderID,
		"recipient": req.RecipientID,
	})

	if err := s.repo.Create(ctx, notification); err != nil {
		entry.WithError(err).Warn("failed to store notification")
		return nil
	}

	if s.pusher != nil {
		if err := s.pusher.PushNotification(ctx, req.RecipientID, notification); err != nil {
			entry.WithError(err).Warn("failed to push notification")
		}
	}

	return notification
}

func normalizeNotificationType(t string) (string, error) {
	switch t {
	case "", "all":
		return "", nil
	case models.NotificationFollow, models.NotificationLike, models.NotificationComment:
		return t, nil
	default:
		return "", NewValidationError("Invalid notification type")
	}
}

func (s *notificationService) List(ctx context.Context, recipientID, notificationType string, page models.Page) ([]models.Notification, bool, error) {
	notificationType, err := normalizeNotificationType(notificationType)
	if err != nil {
		return nil, false, err
	}

	list, err := s.repo.ListByRecipient(ctx, recipientID, notificationType, page)
	if err != nil {
		return nil, false, err
	}

	list, hasMore := trimPage(list, page)
	return list, hasMore, nil
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID, recipientID string) error {
	if !isUUID(notificationID) {
		return ErrNotificationNotFound
	}
	if err := s.repo.MarkRead(ctx, notificationID, recipientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, recipientID string) error {
	_, err := s.repo.MarkAllRead(ctx, recipientID)
	return err
}

func (s *notificationService) UnreadCount(ctx context.Context, recipientID string) (int, error) {
	return s.repo.CountUnread(ctx, recipientID)
}

func (s *notificationService) Delete(ctx context.Context, notificationID, recipientID string) error {
	if !isUUID(notificationID) {
		return ErrNotificationNotFound
	}
	if err := s.repo.Delete(ctx, notificationID, recipientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	return nil
}
