package test

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"cliper/internal/models"
	"cliper/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req models.CreateUserRequest) (*models.User, string, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(0).(*models.User)
	return user, args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	args := m.Called(ctx, email, password)
	user, _ := args.Get(0).(*models.User)
	return user, args.String(1), args.Error(2)
}

func (m *MockAuthService) GenerateToken(user *models.User) (string, error) {
	args := m.Called(user)
	return args.String(0), args.Error(1)
}

// ParseToken accepts "token-<userId>" so tests can authenticate without JWTs.
func (m *MockAuthService) ParseToken(tokenString string) (service.Identity, error) {
	if tokenString == "" {
		return service.Identity{}, service.ErrUnauthenticated
	}
	if len(tokenString) > 6 && tokenString[:6] == "token-" {
		return service.Identity{UserID: tokenString[6:]}, nil
	}
	return service.Identity{}, service.ErrInvalidToken
}

func (m *MockAuthService) GetCurrentUser(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockAuthService) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.User, error) {
	args := m.Called(ctx, userID, req)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetProfile(ctx context.Context, username string) (*models.PublicUser, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*models.PublicUser)
	return user, args.Error(1)
}

func (m *MockUserService) Search(ctx context.Context, viewerID, query string, page models.Page) ([]models.PublicUser, bool, error) {
	args := m.Called(ctx, viewerID, query, page)
	users, _ := args.Get(0).([]models.PublicUser)
	return users, args.Bool(1), args.Error(2)
}

func (m *MockUserService) Suggested(ctx context.Context, viewerID string, limit int) ([]models.PublicUser, error) {
	args := m.Called(ctx, viewerID, limit)
	users, _ := args.Get(0).([]models.PublicUser)
	return users, args.Error(1)
}

func (m *MockUserService) UpdateProfilePicture(ctx context.Context, userID, pictureURL string) (string, error) {
	args := m.Called(ctx, userID, pictureURL)
	return args.String(0), args.Error(1)
}

func (m *MockUserService) Stats(ctx context.Context, userID string) (*models.UserStats, error) {
	args := m.Called(ctx, userID)
	stats, _ := args.Get(0).(*models.UserStats)
	return stats, args.Error(1)
}

func (m *MockUserService) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

type MockFollowService struct {
	mock.Mock
}

func (m *MockFollowService) Follow(ctx context.Context, followerID, targetID string) (*models.Follow, error) {
	args := m.Called(ctx, followerID, targetID)
	follow, _ := args.Get(0).(*models.Follow)
	return follow, args.Error(1)
}

func (m *MockFollowService) Unfollow(ctx context.Context, followerID, targetID string) error {
	return m.Called(ctx, followerID, targetID).Error(0)
}

func (m *MockFollowService) IsFollowing(ctx context.Context, followerID, targetID string) (bool, error) {
	args := m.Called(ctx, followerID, targetID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowService) Followers(ctx context.Context, userID string, page models.Page) ([]models.UserSummary, bool, error) {
	args := m.Called(ctx, userID, page)
	users, _ := args.Get(0).([]models.UserSummary)
	return users, args.Bool(1), args.Error(2)
}

func (m *MockFollowService) Following(ctx context.Context, userID string, page models.Page) ([]models.UserSummary, bool, error) {
	args := m.Called(ctx, userID, page)
	users, _ := args.Get(0).([]models.UserSummary)
	return users, args.Bool(1), args.Error(2)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, req models.CreatePostRequest, file io.Reader) (*models.FeedPost, error) {
	args := m.Called(ctx, req, file)
	post, _ := args.Get(0).(*models.FeedPost)
	return post, args.Error(1)
}

func (m *MockPostService) Feed(ctx context.Context, userID string, page models.Page) ([]models.FeedPost, bool, error) {
	args := m.Called(ctx, userID, page)
	posts, _ := args.Get(0).([]models.FeedPost)
	return posts, args.Bool(1), args.Error(2)
}

func (m *MockPostService) ToggleLike(ctx context.Context, userID, postID string) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostService) AddComment(ctx context.Context, userID, postID, content string) (*models.Comment, error) {
	args := m.Called(ctx, userID, postID, content)
	comment, _ := args.Get(0).(*models.Comment)
	return comment, args.Error(1)
}

func (m *MockPostService) Comments(ctx context.Context, postID string, page models.Page) ([]models.Comment, bool, error) {
	args := m.Called(ctx, postID, page)
	comments, _ := args.Get(0).([]models.Comment)
	return comments, args.Bool(1), args.Error(2)
}

func (m *MockPostService) UserPosts(ctx context.Context, userID string, page models.Page) ([]models.Post, bool, error) {
	args := m.Called(ctx, userID, page)
	posts, _ := args.Get(0).([]models.Post)
	return posts, args.Bool(1), args.Error(2)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Create(ctx context.Context, req models.CreateNotificationRequest) *models.Notification {
	n, _ := m.Called(ctx, req).Get(0).(*models.Notification)
	return n
}

func (m *MockNotificationService) List(ctx context.Context, recipientID, notificationType string, page models.Page) ([]models.Notification, bool, error) {
	args := m.Called(ctx, recipientID, notificationType, page)
	list, _ := args.Get(0).([]models.Notification)
	return list, args.Bool(1), args.Error(2)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, notificationID, recipientID string) error {
	return m.Called(ctx, notificationID, recipientID).Error(0)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, recipientID string) error {
	return m.Called(ctx, recipientID).Error(0)
}

func (m *MockNotificationService) UnreadCount(ctx context.Context, recipientID string) (int, error) {
	args := m.Called(ctx, recipientID)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationService) Delete(ctx context.Context, notificationID, recipientID string) error {
	return m.Called(ctx, notificationID, recipientID).Error(0)
}

type MockHealthService struct {
	mock.Mock
}

func (m *MockHealthService) Check(ctx context.Context) models.HealthStatus {
	return m.Called(ctx).Get(0).(models.HealthStatus)
}
