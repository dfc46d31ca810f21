package handlers

import (
	"net/http"
	"strings"

	"cliper/internal/models"
)

type AuthResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
	Token   string       `json:"token"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)
	req.FullName = strings.TrimSpace(req.FullName)

	if !h.validate(w, req) {
		return
	}

	user, token, err := h.AuthService.Register(r.Context(), req)
	if err != nil {
		h.fail(w, err, "Failed to create user")
		return
	}

	writeCreated(w, AuthResponse{Message: "User created successfully", User: user, Token: token})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if !h.validate(w, req) {
		return
	}

	user, token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, err, "Internal server error")
		return
	}

	writeSuccess(w, AuthResponse{Message: "Login successful", User: user, Token: token})
}

func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.AuthService.GetCurrentUser(r.Context(), currentUserID(r))
	if err != nil {
		h.fail(w, err, "Internal server error")
		return
	}

	writeSuccess(w, map[string]interface{}{"user": user})
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	trimPtr(req.Username)
	trimPtr(req.FullName)
	trimPtr(req.Bio)

	if !h.validate(w, req) {
		return
	}

	user, err := h.AuthService.UpdateProfile(r.Context(), currentUserID(r), req)
	if err != nil {
		h.fail(w, err, "Failed to update profile")
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message": "Profile updated successfully",
		"user":    user,
	})
}
