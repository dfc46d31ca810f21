package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"cliper/internal/models"
	"cliper/internal/repository"
	"cliper/internal/storage"
)

type PostService interface {
	CreatePost(ctx context.Context, req models.CreatePostRequest, file io.Reader) (*models.FeedPost, error)
	Feed(ctx context.Context, userID string, page models.Page) ([]models.FeedPost, bool, error)
	ToggleLike(ctx context.Context, userID, postID string) (bool, error)
	AddComment(ctx context.Context, userID, postID, content string) (*models.Comment, error)
	Comments(ctx context.Context, postID string, page models.Page) ([]models.Comment, bool, error)
	UserPosts(ctx context.Context, userID string, page models.Page) ([]models.Post, bool, error)
}

type postService struct {
	postRepo      repository.PostRepository
	likeRepo      repository.LikeRepository
	commentRepo   repository.CommentRepository
	storage       storage.Storage
	notifications NotificationService
	log           logrus.FieldLogger
}

func NewPostService(
	postRepo repository.PostRepository,
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
	store storage.Storage,
	notifications NotificationService,
	log logrus.FieldLogger,
) PostService {
	return &postService{
		postRepo:      postRepo,
		likeRepo:      likeRepo,
		commentRepo:   commentRepo,
		storage:       store,
		notifications: notifications,
		log:           log,
	}
}

// ParseHashtags splits a comma separated list, trimming entries and dropping empty ones.
func ParseHashtags(raw string) []string {
	tags := []string{}
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// CreatePost uploads the image first; if the row cannot be stored the uploaded object is removed again.
func (p *postService) CreatePost(ctx context.Context, req models.CreatePostRequest, file io.Reader) (*models.FeedPost, error) {
	objectName, imageURL, err := p.storage.UploadImage(ctx, req.UserID, req.FileName, req.ContentType, file, req.Size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	post := &models.Post{
		UserID:   req.UserID,
		ImageURL: imageURL,
		ImageKey: objectName,
		Caption:  strings.TrimSpace(req.Caption),
		Location: strings.TrimSpace(req.Location),
		Hashtags: pq.StringArray(req.Hashtags),
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		if delErr := p.storage.DeleteImage(ctx, objectName); delErr != nil {
			p.log.WithError(delErr).WithField("object", objectName).Warn("failed to remove orphaned upload")
		}
		return nil, err
	}

	full, err := p.postRepo.GetWithAuthor(ctx, post.ID, req.UserID)
	if err != nil {
		p.log.WithError(err).WithField("post_id", post.ID).Warn("failed to reload created post")
		return &models.FeedPost{Post: *post, User: models.UserSummary{ID: req.UserID}}, nil
	}
	return full, nil
}

func (p *postService) Feed(ctx context.Context, userID string, page models.Page) ([]models.FeedPost, bool, error) {
	posts, err := p.postRepo.Feed(ctx, userID, page)
	if err != nil {
		return nil, false, err
	}

	posts, hasMore := trimPage(posts, page)
	return posts, hasMore, nil
}

func (p *postService) getPost(ctx context.Context, postID string) (*models.Post, error) {
	if !isUUID(postID) {
		return nil, ErrPostNotFound
	}

	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// ToggleLike flips the caller's like. A new like on someone else's post notifies the author.
func (p *postService) ToggleLike(ctx context.Context, userID, postID string) (bool, error) {
	post, err := p.getPost(ctx, postID)
	if err != nil {
		return false, err
	}

	liked, err := p.likeRepo.Toggle(ctx, postID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return true, nil
		}
		return false, err
	}

	if liked && post.UserID != userID {
		p.notifications.Create(ctx, models.CreateNotificationRequest{
			Type:        models.NotificationLike,
			SenderID:    userID,
			RecipientID: post.UserID,
			Content:     "liked your post",
			PostID:      &post.ID,
		})
	}

	return liked, nil
}

func (p *postService) AddComment(ctx context.Context, userID, postID, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, NewValidationError("Comment content is required")
	}

	post, err := p.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{PostID: postID, UserID: userID, Content: content}
	if err := p.commentRepo.Create(ctx, comment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if post.UserID != userID {
		p.notifications.Create(ctx, models.CreateNotificationRequest{
			Type:        models.NotificationComment,
			SenderID:    userID,
			RecipientID: post.UserID,
			Content:     `commented: "` + content + `"`,
			PostID:      &post.ID,
			CommentID:   &comment.ID,
		})
	}

	return comment, nil
}

func (p *postService) Comments(ctx context.Context, postID string, page models.Page) ([]models.Comment, bool, error) {
	if !isUUID(postID) {
		return []models.Comment{}, false, nil
	}

	comments, err := p.commentRepo.ListByPost(ctx, postID, page)
	if err != nil {
		return nil, false, err
	}

	comments, hasMore := trimPage(comments, page)
	return comments, hasMore, nil
}

func (p *postService) UserPosts(ctx context.Context, userID string, page models.Page) ([]models.Post, bool, error) {
	if !isUUID(userID) {
		return []models.Post{}, false, nil
	}

	posts, err := p.postRepo.ListByUser(ctx, userID, page)
	if err != nil {
		return nil, false, err
	}

	posts, hasMore := trimPage(posts, page)
	return posts, hasMore, nil
}
