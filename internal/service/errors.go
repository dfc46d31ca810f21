package service

import "errors"

// ValidationError reports client-fixable input problems. Message is shown to the client as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

var (
	ErrUnauthenticated      = errors.New("no token provided")
	ErrInvalidToken         = errors.New("invalid token")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserNotFound         = errors.New("user not found")
	ErrPostNotFound         = errors.New("post not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrSelfFollow           = errors.New("cannot follow yourself")
	ErrSelfUnfollow         = errors.New("cannot unfollow yourself")
	ErrAlreadyFollowing     = errors.New("already following this user")
	ErrNotFollowing         = errors.New("not following this user")
	ErrUserExists           = errors.New("user with this email or username already exists")
	ErrUsernameTaken        = errors.New("username already taken")
	ErrUpstream             = errors.New("upstream service failure")
)
