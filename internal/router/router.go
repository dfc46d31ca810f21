package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"cliper/internal/config"
	handlers "cliper/internal/handler"
	"cliper/internal/middleware"
)

type Options struct {
	Handlers *handlers.Handlers
	Tokens   middleware.TokenParser
	// Realtime serves the websocket endpoint; nil leaves /ws unrouted.
	Realtime http.Handler
	// Limiter is nil when redis is not configured.
	Limiter   middleware.Counter
	RateLimit config.RateLimit
	Origin    string
	Log       logrus.FieldLogger
}

// New builds the route table wrapped in recovery, logging, CORS and rate limiting.
func New(opts Options) http.Handler {
	h := opts.Handlers
	auth := middleware.RequireAuth(opts.Tokens, opts.Log)
	protected := func(f http.HandlerFunc) http.Handler { return auth(f) }

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, "Route not found", http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	r.HandleFunc("/api/health", h.Health).Methods(http.MethodGet)

	a := r.PathPrefix("/api/auth").Subrouter()
	a.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	a.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	a.Handle("/me", protected(h.GetCurrentUser)).Methods(http.MethodGet)
	a.Handle("/profile", protected(h.UpdateProfile)).Methods(http.MethodPut)

	u := r.PathPrefix("/api/users").Subrouter()
	u.HandleFunc("/profile/{username}", h.GetProfile).Methods(http.MethodGet)
	u.Handle("/search", protected(h.SearchUsers)).Methods(http.MethodGet)
	u.Handle("/suggested", protected(h.SuggestedUsers)).Methods(http.MethodGet)
	u.Handle("/profile-picture", protected(h.UpdateProfilePicture)).Methods(http.MethodPut)
	u.HandleFunc("/check-username/{username}", h.CheckUsername).Methods(http.MethodGet)
	u.HandleFunc("/{userId}/stats", h.UserStats).Methods(http.MethodGet)

	f := r.PathPrefix("/api/follows").Subrouter()
	f.Handle("/{userId}", protected(h.Follow)).Methods(http.MethodPost)
	f.Handle("/{userId}", protected(h.Unfollow)).Methods(http.MethodDelete)
	f.Handle("/{userId}/status", protected(h.FollowStatus)).Methods(http.MethodGet)
	f.HandleFunc("/{userId}/followers", h.Followers).Methods(http.MethodGet)
	f.HandleFunc("/{userId}/following", h.Following).Methods(http.MethodGet)

	p := r.PathPrefix("/api/posts").Subrouter()
	p.Handle("", protected(h.CreatePost)).Methods(http.MethodPost)
	p.Handle("/", protected(h.CreatePost)).Methods(http.MethodPost)
	p.Handle("/feed", protected(h.Feed)).Methods(http.MethodGet)
	p.HandleFunc("/user/{userId}", h.UserPosts).Methods(http.MethodGet)
	p.Handle("/{postId}/like", protected(h.ToggleLike)).Methods(http.MethodPost)
	p.Handle("/{postId}/comments", protected(h.AddComment)).Methods(http.MethodPost)
	p.HandleFunc("/{postId}/comments", h.Comments).Methods(http.MethodGet)

	n := r.PathPrefix("/api/notifications").Subrouter()
	n.Handle("", protected(h.ListNotifications)).Methods(http.MethodGet)
	n.Handle("/", protected(h.ListNotifications)).Methods(http.MethodGet)
	n.Handle("/read-all", protected(h.MarkAllNotificationsRead)).Methods(http.MethodPatch)
	n.Handle("/unread-count", protected(h.UnreadCount)).Methods(http.MethodGet)
	n.Handle("/{id}/read", protected(h.MarkNotificationRead)).Methods(http.MethodPatch)
	n.Handle("/{id}", protected(h.DeleteNotification)).Methods(http.MethodDelete)

	if opts.Realtime != nil {
		r.Handle("/ws", middleware.RequireSocketAuth(opts.Tokens, opts.Log)(opts.Realtime)).Methods(http.MethodGet)
	}

	return middleware.Chain(r,
		middleware.Recovery(opts.Log),
		middleware.Logging(opts.Log),
		middleware.CORS(opts.Origin),
		middleware.RateLimit(opts.Limiter, opts.RateLimit, opts.Log),
	)
}
