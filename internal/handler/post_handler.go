package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gorilla/mux"

	"cliper/internal/models"
	"cliper/internal/service"
)

const (
	feedPageLimit      = 10
	userPostsPageLimit = 12
	multipartMemory    = 2 << 20
)

func (h *Handlers) tooLarge(w http.ResponseWriter) {
	WriteError(w, "File too large (max "+humanize.Bytes(uint64(h.Cfg.MaxUploadSize))+")", http.StatusBadRequest)
}

// sniffImage checks the declared and the detected type of an upload and
// rewinds the file. It returns the detected MIME type.
func sniffImage(file multipart.File, header *multipart.FileHeader) (string, error) {
	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		return "", errors.New("declared type is not an image")
	}

	detected, err := mimetype.DetectReader(file)
	if err != nil {
		return "", err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	if !strings.HasPrefix(detected.String(), "image/") {
		return "", errors.New("content is not an image")
	}
	return detected.String(), nil
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize+multipartMemory)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.tooLarge(w)
			return
		}
		WriteError(w, "Image is required", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("image")
	if err != nil {
		WriteError(w, "Image is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if header.Size > h.Cfg.MaxUploadSize {
		h.tooLarge(w)
		return
	}

	contentType, err := sniffImage(file, header)
	if err != nil {
		WriteError(w, "Only image files are allowed", http.StatusBadRequest)
		return
	}

	req := models.CreatePostRequest{
		UserID:      currentUserID(r),
		Caption:     r.FormValue("caption"),
		Location:    r.FormValue("location"),
		Hashtags:    service.ParseHashtags(r.FormValue("hashtags")),
		FileName:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
	}
	if !h.validate(w, req) {
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), req, file)
	if err != nil {
		h.fail(w, err, "Failed to create post")
		return
	}

	writeCreated(w, map[string]interface{}{
		"message": "Post created successfully",
		"post":    post,
	})
}

func (h *Handlers) Feed(w http.ResponseWriter, r *http.Request) {
	posts, hasMore, err := h.PostService.Feed(r.Context(), currentUserID(r), pageFromQuery(r, feedPageLimit))
	if err != nil {
		h.fail(w, err, "Failed to fetch feed")
		return
	}

	writeSuccess(w, map[string]interface{}{"posts": posts, "hasMore": hasMore})
}

func (h *Handlers) ToggleLike(w http.ResponseWriter, r *http.Request) {
	liked, err := h.PostService.ToggleLike(r.Context(), currentUserID(r), mux.Vars(r)["postId"])
	if err != nil {
		h.fail(w, err, "Internal server error")
		return
	}

	message := "Post unliked"
	if liked {
		message = "Post liked"
	}
	writeSuccess(w, map[string]interface{}{"message": message, "isLiked": liked})
}

func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	var req models.CommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !h.validate(w, req) {
		return
	}

	comment, err := h.PostService.AddComment(r.Context(), currentUserID(r), mux.Vars(r)["postId"], req.Content)
	if err != nil {
		h.fail(w, err, "Failed to create comment")
		return
	}

	writeCreated(w, map[string]interface{}{
		"message": "Comment created successfully",
		"comment": comment,
	})
}

func (h *Handlers) Comments(w http.ResponseWriter, r *http.Request) {
	comments, hasMore, err := h.PostService.Comments(r.Context(), mux.Vars(r)["postId"], pageFromQuery(r, models.DefaultPageLimit))
	if err != nil {
		h.fail(w, err, "Failed to fetch comments")
		return
	}

	writeSuccess(w, map[string]interface{}{"comments": comments, "hasMore": hasMore})
}

func (h *Handlers) UserPosts(w http.ResponseWriter, r *http.Request) {
	posts, hasMore, err := h.PostService.UserPosts(r.Context(), mux.Vars(r)["userId"], pageFromQuery(r, userPostsPageLimit))
	if err != nil {
		h.fail(w, err, "Failed to fetch posts")
		return
	}

	writeSuccess(w, map[string]interface{}{"posts": posts, "hasMore": hasMore})
}
