package service

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"cliper/internal/models"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	args := m.Called(ctx, user, password)
	return args.Error(0)
}

func (m *MockUserRepository) getUser(args mock.Arguments) (*models.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return m.getUser(m.Called(ctx, userID))
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.getUser(m.Called(ctx, email))
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.getUser(m.Called(ctx, username))
}

func (m *MockUserRepository) GetProfileByUsername(ctx context.Context, username string) (*models.PublicUser, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*models.PublicUser)
	return user, args.Error(1)
}

func (m *MockUserRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	args := m.Called(ctx, email, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UsernameTakenByOther(ctx context.Context, username, userID string) (bool, error) {
	args := m.Called(ctx, username, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.User, error) {
	return m.getUser(m.Called(ctx, userID, req))
}

func (m *MockUserRepository) UpdateProfilePicture(ctx context.Context, userID, url string) (string, error) {
	args := m.Called(ctx, userID, url)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	return m.getUser(m.Called(ctx, email, password))
}

func (m *MockUserRepository) Search(ctx context.Context, viewerID, query string, page models.Page) ([]models.PublicUser, error) {
	args := m.Called(ctx, viewerID, query, page)
	users, _ := args.Get(0).([]models.PublicUser)
	return users, args.Error(1)
}

func (m *MockUserRepository) Suggested(ctx context.Context, viewerID string, limit int) ([]models.PublicUser, error) {
	args := m.Called(ctx, viewerID, limit)
	users, _ := args.Get(0).([]models.PublicUser)
	return users, args.Error(1)
}

type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Create(ctx context.Context, followerID, followingID string) (*models.Follow, error) {
	args := m.Called(ctx, followerID, followingID)
	follow, _ := args.Get(0).(*models.Follow)
	return follow, args.Error(1)
}

func (m *MockFollowRepository) Delete(ctx context.Context, followerID, followingID string) error {
	return m.Called(ctx, followerID, followingID).Error(0)
}

func (m *MockFollowRepository) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	args := m.Called(ctx, followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) ListFollowers(ctx context.Context, userID string, page models.Page) ([]models.UserSummary, error) {
	args := m.Called(ctx, userID, page)
	users, _ := args.Get(0).([]models.UserSummary)
	return users, args.Error(1)
}

func (m *MockFollowRepository) ListFollowing(ctx context.Context, userID string, page models.Page) ([]models.UserSummary, error) {
	args := m.Called(ctx, userID, page)
	users, _ := args.Get(0).([]models.UserSummary)
	return users, args.Error(1)
}

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	args := m.Called(ctx, postID)
	post, _ := args.Get(0).(*models.Post)
	return post, args.Error(1)
}

func (m *MockPostRepository) GetWithAuthor(ctx context.Context, postID, viewerID string) (*models.FeedPost, error) {
	args := m.Called(ctx, postID, viewerID)
	post, _ := args.Get(0).(*models.FeedPost)
	return post, args.Error(1)
}

func (m *MockPostRepository) Feed(ctx context.Context, userID string, page models.Page) ([]models.FeedPost, error) {
	args := m.Called(ctx, userID, page)
	posts, _ := args.Get(0).([]models.FeedPost)
	return posts, args.Error(1)
}

func (m *MockPostRepository) ListByUser(ctx context.Context, userID string, page models.Page) ([]models.Post, error) {
	args := m.Called(ctx, userID, page)
	posts, _ := args.Get(0).([]models.Post)
	return posts, args.Error(1)
}

type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) Toggle(ctx context.Context, postID, userID string) (bool, error) {
	args := m.Called(ctx, postID, userID)
	return args.Bool(0), args.Error(1)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID string, page models.Page) ([]models.Comment, error) {
	args := m.Called(ctx, postID, page)
	comments, _ := args.Get(0).([]models.Comment)
	return comments, args.Error(1)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return m.Called(ctx, notification).Error(0)
}

func (m *MockNotificationRepository) ListByRecipient(ctx context.Context, recipientID, notificationType string, page models.Page) ([]models.Notification, error) {
	args := m.Called(ctx, recipientID, notificationType, page)
	list, _ := args.Get(0).([]models.Notification)
	return list, args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, notificationID, recipientID string) error {
	return m.Called(ctx, notificationID, recipientID).Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	args := m.Called(ctx, recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, recipientID string) (int, error) {
	args := m.Called(ctx, recipientID)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationRepository) Delete(ctx context.Context, notificationID, recipientID string) error {
	return m.Called(ctx, notificationID, recipientID).Error(0)
}

type MockTablesRepository struct {
	mock.Mock
}

func (m *MockTablesRepository) CountTablesDB(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadImage(ctx context.Context, ownerID, fileName, contentType string, file io.Reader, size int64) (string, string, error) {
	args := m.Called(ctx, ownerID, fileName, contentType, file, size)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockStorage) DeleteImage(ctx context.Context, objectName string) error {
	return m.Called(ctx, objectName).Error(0)
}

func (m *MockStorage) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockPusher struct {
	mock.Mock
}

func (m *MockPusher) PushNotification(ctx context.Context, recipientID string, notification *models.Notification) error {
	return m.Called(ctx, recipientID, notification).Error(0)
}

// MockNotifications records Create calls made by the follow and post services.
type MockNotifications struct {
	mock.Mock
}

func (m *MockNotifications) Create(ctx context.Context, req models.CreateNotificationRequest) *models.Notification {
	args := m.Called(ctx, req)
	n, _ := args.Get(0).(*models.Notification)
	return n
}

func (m *MockNotifications) List(ctx context.Context, recipientID, notificationType string, page models.Page) ([]models.Notification, bool, error) {
	args := m.Called(ctx, recipientID, notificationType, page)
	list, _ := args.Get(0).([]models.Notification)
	return list, args.Bool(1), args.Error(2)
}

func (m *MockNotifications) MarkRead(ctx context.Context, notificationID, recipientID string) error {
	return m.Called(ctx, notificationID, recipientID).Error(0)
}

func (m *MockNotifications) MarkAllRead(ctx context.Context, recipientID string) error {
	return m.Called(ctx, recipientID).Error(0)
}

func (m *MockNotifications) UnreadCount(ctx context.Context, recipientID string) (int, error) {
	args := m.Called(ctx, recipientID)
	return args.Int(0), args.Error(1)
}

func (m *MockNotifications) Delete(ctx context.Context, notificationID, recipientID string) error {
	return m.Called(ctx, notificationID, recipientID).Error(0)
}
