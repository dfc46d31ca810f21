package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"cliper/internal/models"
)

func (h *Handlers) Follow(w http.ResponseWriter, r *http.Request) {
	follow, err := h.FollowService.Follow(r.Context(), currentUserID(r), mux.Vars(r)["userId"])
	if err != nil {
		h.fail(w, err, "Failed to follow user")
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message": "Successfully followed user",
		"follow":  follow,
	})
}

func (h *Handlers) Unfollow(w http.ResponseWriter, r *http.Request) {
	if err := h.FollowService.Unfollow(r.Context(), currentUserID(r), mux.Vars(r)["userId"]); err != nil {
		h.fail(w, err, "Failed to unfollow user")
		return
	}

	writeSuccess(w, map[string]interface{}{"message": "Successfully unfollowed user"})
}

func (h *Handlers) FollowStatus(w http.ResponseWriter, r *http.Request) {
	following, err := h.FollowService.IsFollowing(r.Context(), currentUserID(r), mux.Vars(r)["userId"])
	if err != nil {
		h.fail(w, err, "Internal server error")
		return
	}

	writeSuccess(w, map[string]interface{}{"isFollowing": following})
}

func (h *Handlers) Followers(w http.ResponseWriter, r *http.Request) {
	users, hasMore, err := h.FollowService.Followers(r.Context(), mux.Vars(r)["userId"], pageFromQuery(r, models.DefaultPageLimit))
	if err != nil {
		h.fail(w, err, "Failed to fetch followers")
		return
	}

	writeSuccess(w, map[string]interface{}{"followers": users, "hasMore": hasMore})
}

func (h *Handlers) Following(w http.ResponseWriter, r *http.Request) {
	users, hasMore, err := h.FollowService.Following(r.Context(), mux.Vars(r)["userId"], pageFromQuery(r, models.DefaultPageLimit))
	if err != nil {
		h.fail(w, err, "Failed to fetch following")
		return
	}

	writeSuccess(w, map[string]interface{}{"following": users, "hasMore": hasMore})
}
