package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"cliper/internal/service"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, ErrorResponse{Error: message}, statusCode)
}

func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	writeJSON(w, data, http.StatusOK)
}

func writeCreated(w http.ResponseWriter, data interface{}) {
	writeJSON(w, data, http.StatusCreated)
}

var clientErrors = []struct {
	err     error
	message string
	status  int
}{
	{service.ErrUnauthenticated, "No token provided", http.StatusUnauthorized},
	{service.ErrInvalidToken, "Invalid token", http.StatusUnauthorized},
	{service.ErrInvalidCredentials, "Invalid credentials", http.StatusUnauthorized},
	{service.ErrUserNotFound, "User not found", http.StatusNotFound},
	{service.ErrPostNotFound, "Post not found", http.StatusNotFound},
	{service.ErrNotificationNotFound, "Notification not found", http.StatusNotFound},
	{service.ErrSelfFollow, "Cannot follow yourself", http.StatusBadRequest},
	{service.ErrSelfUnfollow, "Cannot unfollow yourself", http.StatusBadRequest},
	{service.ErrAlreadyFollowing, "Already following this user", http.StatusBadRequest},
	{service.ErrNotFollowing, "Not following this user", http.StatusBadRequest},
	{service.ErrUserExists, "User with this email or username already exists", http.StatusBadRequest},
	{service.ErrUsernameTaken, "Username already taken", http.StatusBadRequest},
}

// WriteServiceError maps a service error to its status and client message.
// Anything unrecognised is logged and reported as a 500.
func WriteServiceError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	writeServiceError(w, log, err, "Internal server error")
}

func writeServiceError(w http.ResponseWriter, log logrus.FieldLogger, err error, internalMessage string) {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		WriteError(w, vErr.Message, http.StatusBadRequest)
		return
	}

	for _, ce := range clientErrors {
		if errors.Is(err, ce.err) {
			WriteError(w, ce.message, ce.status)
			return
		}
	}

	if log != nil {
		log.WithError(err).Error("request failed")
	}
	WriteError(w, internalMessage, http.StatusInternalServerError)
}
