package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"cliper/internal/config"
	"cliper/internal/models"
	"cliper/internal/service"
)

const maxJSONBody = 10 << 20

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

type Handlers struct {
	AuthService         service.AuthService
	UserService         service.UserService
	FollowService       service.FollowService
	PostService         service.PostService
	NotificationService service.NotificationService
	HealthService       service.HealthService
	Cfg                 *config.Config
	Validate            *validator.Validate
	Log                 logrus.FieldLogger
}

func NewHandlers(svc *service.Service, cfg *config.Config, log logrus.FieldLogger) *Handlers {
	return &Handlers{
		AuthService:         svc.Auth,
		UserService:         svc.User,
		FollowService:       svc.Follow,
		PostService:         svc.Post,
		NotificationService: svc.Notification,
		HealthService:       svc.Health,
		Cfg:                 cfg,
		Validate:            NewValidator(),
		Log:                 log,
	}
}

// NewValidator reports fields by their JSON names and knows the "username" tag.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	return v
}

func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return "Invalid request data"
	}

	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Invalid email address"
	case "url":
		return fe.Field() + " must be a valid URL"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	case "username":
		return "username may only contain letters, numbers and underscores"
	default:
		return fe.Field() + " is invalid"
	}
}

// validate writes a 400 and returns false when req fails validation.
func (h *Handlers) validate(w http.ResponseWriter, req interface{}) bool {
	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, validationMessage(err), http.StatusBadRequest)
		return false
	}
	return true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return false
		}
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handlers) fail(w http.ResponseWriter, err error, internalMessage string) {
	writeServiceError(w, h.Log, err, internalMessage)
}

// currentUserID is only meaningful behind the auth middleware.
func currentUserID(r *http.Request) string {
	id, _ := service.IdentityFromContext(r.Context())
	return id.UserID
}

func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}

func pageFromQuery(r *http.Request, defaultLimit int) models.Page {
	return models.NewPage(queryInt(r, "page"), queryInt(r, "limit"), defaultLimit)
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}
