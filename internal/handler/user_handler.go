package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"cliper/internal/models"
)

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserService.GetProfile(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		h.fail(w, err, "Internal server error")
		return
	}

	writeSuccess(w, map[string]interface{}{"user": user})
}

func (h *Handlers) SearchUsers(w http.ResponseWriter, r *http.Request) {
	users, hasMore, err := h.UserService.Search(
		r.Context(),
		currentUserID(r),
		r.URL.Query().Get("q"),
		pageFromQuery(r, models.DefaultPageLimit),
	)
	if err != nil {
		h.fail(w, err, "Failed to search users")
		return
	}

	writeSuccess(w, map[string]interface{}{"users": users, "hasMore": hasMore})
}

func (h *Handlers) SuggestedUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.Suggested(r.Context(), currentUserID(r), queryInt(r, "limit"))
	if err != nil {
		h.fail(w, err, "Failed to fetch suggested users")
		return
	}

	writeSuccess(w, map[string]interface{}{"users": users})
}

func (h *Handlers) UpdateProfilePicture(w http.ResponseWriter, r *http.Request) {
	var req models.ProfilePictureRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.ProfilePicture == "" {
		WriteError(w, "Profile picture URL is required", http.StatusBadRequest)
		return
	}
	if !h.validate(w, req) {
		return
	}

	picture, err := h.UserService.UpdateProfilePicture(r.Context(), currentUserID(r), req.ProfilePicture)
	if err != nil {
		h.fail(w, err, "Failed to update profile picture")
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message":        "Profile picture updated successfully",
		"profilePicture": picture,
	})
}

func (h *Handlers) UserStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.UserService.Stats(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		h.fail(w, err, "Internal server error")
		return
	}

	writeSuccess(w, map[string]interface{}{"stats": stats})
}

func (h *Handlers) CheckUsername(w http.ResponseWriter, r *http.Request) {
	available, err := h.UserService.IsUsernameAvailable(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		h.fail(w, err, "Internal server error")
		return
	}

	writeSuccess(w, map[string]interface{}{"available": available})
}
