package models

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	ID             string    `json:"id" db:"id"`
	Email          string    `json:"email" db:"email"`
	PasswordHash   string    `json:"-" db:"password_hash"`
	Username       string    `json:"username" db:"username"`
	FullName       string    `json:"fullName" db:"full_name"`
	ProfilePicture string    `json:"profilePicture" db:"profile_picture"`
	Bio            string    `json:"bio" db:"bio"`
	IsPrivate      bool      `json:"isPrivate" db:"is_private"`
	FollowersCount int       `json:"followersCount" db:"followers_count"`
	FollowingCount int       `json:"followingCount" db:"following_count"`
	PostsCount     int       `json:"postsCount" db:"posts_count"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"-" db:"updated_at"`
}

// PublicUser is a profile as other users see it. It never carries the email.
type PublicUser struct {
	ID             string    `json:"id" db:"id"`
	Username       string    `json:"username" db:"username"`
	FullName       string    `json:"fullName" db:"full_name"`
	ProfilePicture string    `json:"profilePicture" db:"profile_picture"`
	Bio            string    `json:"bio" db:"bio"`
	IsPrivate      bool      `json:"isPrivate" db:"is_private"`
	FollowersCount int       `json:"followersCount" db:"followers_count"`
	FollowingCount int       `json:"followingCount" db:"following_count"`
	PostsCount     int       `json:"postsCount" db:"posts_count"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// UserSummary is the author/sender shape embedded in posts, comments, notifications and follow lists.
type UserSummary struct {
	ID             string `json:"id" db:"id"`
	Username       string `json:"username" db:"username"`
	FullName       string `json:"fullName" db:"full_name"`
	ProfilePicture string `json:"profilePicture" db:"profile_picture"`
	Bio            string `json:"bio,omitempty" db:"bio"`
}

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Username string `json:"username" validate:"required,min=3,max=30,username"`
	FullName string `json:"fullName" validate:"required,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest fields left nil (or empty) keep their stored value.
type UpdateProfileRequest struct {
	Username  *string `json:"username" validate:"omitempty,min=3,max=30,username"`
	FullName  *string `json:"fullName" validate:"omitempty,max=100"`
	Bio       *string `json:"bio" validate:"omitempty,max=500"`
	IsPrivate *bool   `json:"isPrivate"`
}

type ProfilePictureRequest struct {
	ProfilePicture string `json:"profilePicture" validate:"required,url"`
}

type UserStats struct {
	FollowersCount int `json:"followersCount" db:"followers_count"`
	FollowingCount int `json:"followingCount" db:"following_count"`
	PostsCount     int `json:"postsCount" db:"posts_count"`
}

type Follow struct {
	ID          string    `json:"id" db:"id"`
	FollowerID  string    `json:"followerId" db:"follower_id"`
	FollowingID string    `json:"followingId" db:"following_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

type Post struct {
	ID            string         `json:"id" db:"id"`
	UserID        string         `json:"-" db:"user_id"`
	ImageURL      string         `json:"imageUrl" db:"image_url"`
	ImageKey      string         `json:"-" db:"image_key"`
	Caption       string         `json:"caption" db:"caption"`
	Location      string         `json:"location" db:"location"`
	Hashtags      pq.StringArray `json:"hashtags" db:"hashtags"`
	LikesCount    int            `json:"likesCount" db:"likes_count"`
	CommentsCount int            `json:"commentsCount" db:"comments_count"`
	CreatedAt     time.Time      `json:"createdAt" db:"created_at"`
}

// FeedPost is a post joined with its author and the viewer's like state.
type FeedPost struct {
	Post
	User    UserSummary `json:"user" db:"author"`
	IsLiked bool        `json:"isLiked" db:"is_liked"`
}

type CreatePostRequest struct {
	UserID      string
	Caption     string `validate:"max=2200"`
	Location    string `validate:"max=100"`
	Hashtags    []string
	FileName    string
	ContentType string
	Size        int64
}

type Comment struct {
	ID        string      `json:"id" db:"id"`
	PostID    string      `json:"-" db:"post_id"`
	UserID    string      `json:"-" db:"user_id"`
	Content   string      `json:"content" db:"content"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`
	User      UserSummary `json:"user" db:"author"`
}

type CommentRequest struct {
	Content string `json:"content" validate:"max=1000"`
}

const (
	NotificationFollow  = "follow"
	NotificationLike    = "like"
	NotificationComment = "comment"
)

type Notification struct {
	ID          string      `json:"id" db:"id"`
	Type        string      `json:"type" db:"type"`
	SenderID    string      `json:"-" db:"sender_id"`
	RecipientID string      `json:"-" db:"recipient_id"`
	Content     string      `json:"content" db:"content"`
	PostID      *string     `json:"postId" db:"post_id"`
	CommentID   *string     `json:"commentId" db:"comment_id"`
	IsRead      bool        `json:"isRead" db:"is_read"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
	Sender      UserSummary `json:"sender" db:"sender"`
}

type CreateNotificationRequest struct {
	Type        string
	SenderID    string
	RecipientID string
	Content     string
	PostID      *string
	CommentID   *string
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 50
)

// MaxPage keeps (page-1)*limit far from integer overflow.
const MaxPage = 100000

// Page is an offset-based page request. Page is 1-based.
type Page struct {
	Page  int
	Limit int
}

func NewPage(page, limit, defaultLimit int) Page {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return Page{Page: page, Limit: limit}
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Fetch is the number of rows to request so that one extra row reveals whether another page exists.
func (p Page) Fetch() int {
	return p.Limit + 1
}

const (
	StatusConnected     = "Connected"
	StatusUnavailable   = "Unavailable"
	StatusNotConfigured = "Not configured"
)

type HealthStatus struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Database string `json:"database"`
	Tables   int    `json:"tables"`
	Storage  string `json:"storage"`
	Redis    string `json:"redis"`
	Broker   string `json:"broker"`
}
