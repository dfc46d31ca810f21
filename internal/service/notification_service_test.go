package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cliper/internal/models"
	"cliper/internal/repository"
)

func TestNotificationService_Create(t *testing.T) {
	ctx := context.Background()
	req := models.CreateNotificationRequest{
		Type: models.NotificationFollow, SenderID: "alice", RecipientID: "bob", Content: "started following you",
	}

	t.Run("persists then pushes", func(t *testing.T) {
		logger, _ := test.NewNullLogger()
		repo, pusher := new(MockNotificationRepository), new(MockPusher)
		svc := NewNotificationService(repo, pusher, logger)

		repo.On("Create", ctx, mock.Anything).
			Run(func(args mock.Arguments) { args.Get(1).(*models.Notification).ID = "n1" }).
			Return(nil)
		pusher.On("PushNotification", ctx, "bob", mock.MatchedBy(func(n *models.Notification) bool {
			return n.ID == "n1" && !n.IsRead
		})).Return(nil)

		n := svc.Create(ctx, req)

		require.NotNil(t, n)
		assert.Equal(t, "n1", n.ID)
		pusher.AssertExpectations(t)
	})

	t.Run("storage failure returns nil and skips the push", func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		repo, pusher := new(MockNotificationRepository), new(MockPusher)
		svc := NewNotificationService(repo, pusher, logger)

		repo.On("Create", ctx, mock.Anything).Return(errors.New("db down"))

		assert.Nil(t, svc.Create(ctx, req))
		pusher.AssertNotCalled(t, "PushNotification", mock.Anything, mock.Anything, mock.Anything)
		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	})

	t.Run("push failure is logged and the stored row returned", func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		repo, pusher := new(MockNotificationRepository), new(MockPusher)
		svc := NewNotificationService(repo, pusher, logger)

		repo.On("Create", ctx, mock.Anything).Return(nil)
		pusher.On("PushNotification", ctx, "bob", mock.Anything).Return(errors.New("broker closed"))

		assert.NotNil(t, svc.Create(ctx, req))
		require.Len(t, hook.Entries, 1)
		assert.Equal(t, "failed to push notification", hook.LastEntry().Message)
	})

	t.Run("nil pusher stores only", func(t *testing.T) {
		logger, _ := test.NewNullLogger()
		repo := new(MockNotificationRepository)
		svc := NewNotificationService(repo, nil, logger)

		repo.On("Create", ctx, mock.Anything).Return(nil)

		assert.NotNil(t, svc.Create(ctx, req))
	})
}

func TestNotificationService_List(t *testing.T) {
	ctx := context.Background()
	logger, _ := test.NewNullLogger()
	page := models.NewPage(1, 20, 20)

	tests := []struct {
		name      string
		filter    string
		repoType  string
		wantError bool
	}{
		{name: "all maps to no filter", filter: "all", repoType: ""},
		{name: "empty maps to no filter", filter: "", repoType: ""},
		{name: "kind filter", filter: "like", repoType: "like"},
		{name: "unknown kind", filter: "mention", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockNotificationRepository)
			svc := NewNotificationService(repo, nil, logger)

			if !tt.wantError {
				repo.On("ListByRecipient", ctx, "bob", tt.repoType, page).Return([]models.Notification{{ID: "n1"}}, nil)
			}

			list, hasMore, err := svc.List(ctx, "bob", tt.filter, page)

			if tt.wantError {
				var vErr *ValidationError
				assert.ErrorAs(t, err, &vErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, list, 1)
			assert.False(t, hasMore)
		})
	}
}

func TestNotificationService_ReadState(t *testing.T) {
	ctx := context.Background()
	logger, _ := test.NewNullLogger()
	id := uuid.New().String()

	repo := new(MockNotificationRepository)
	svc := NewNotificationService(repo, nil, logger)

	repo.On("MarkRead", ctx, id, "bob").Return(repository.ErrNotFound)
	repo.On("Delete", ctx, id, "bob").Return(nil)
	repo.On("Delete", ctx, id, "mallory").Return(repository.ErrNotFound)
	repo.On("MarkAllRead", ctx, "bob").Return(int64(2), nil)
	repo.On("CountUnread", ctx, "bob").Return(0, nil)

	assert.ErrorIs(t, svc.MarkRead(ctx, id, "bob"), ErrNotificationNotFound)
	assert.ErrorIs(t, svc.MarkRead(ctx, "bad-id", "bob"), ErrNotificationNotFound)
	assert.NoError(t, svc.Delete(ctx, id, "bob"))
	assert.ErrorIs(t, svc.Delete(ctx, id, "mallory"), ErrNotificationNotFound)
	assert.NoError(t, svc.MarkAllRead(ctx, "bob"))

	count, err := svc.UnreadCount(ctx, "bob")
	require.NoError(t, err)
	assert.Zero(t, count)
}
