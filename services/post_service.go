package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pilinks/events"
	"pilinks/models"
	"pilinks/repositories"
)

type PostService interface {
	CreatePost(ctx context.Context, req models.CreatePostRequest, user *models.User) (*models.Post, error)
	GetPosts(params models.PostListParams, user *models.User) ([]models.Post, int64, error)
	GetPublicPosts(params models.PostListParams) ([]models.Post, int64, error)
	GetPost(id string) (*models.Post, error)
	UpdateStatus(id string, status models.PostStatus, actor *models.User) (*models.Post, error)
	DeletePost(id string, actor *models.User) error
}

type postService struct {
	postRepo repositories.PostRepository
	enricher EnrichmentService
	bus      *events.Bus
}

func NewPostService(postRepo repositories.PostRepository, enricher EnrichmentService, bus *events.Bus) PostService {
	return &postService{
		postRepo: postRepo,
		enricher: enricher,
		bus:      bus,
	}
}

// CreatePost classifies and enriches the submission, then stores it as
// pending. An anonymous caller gets an explicit error instead of a silent
// drop.
func (s *postService) CreatePost(ctx context.Context, req models.CreatePostRequest, user *models.User) (*models.Post, error) {
	if user == nil {
		return nil, fmt.Errorf("%w: login required to submit a link", models.ErrUnauthorized)
	}

	category := req.Category
	if !models.ValidCategory(category) {
		category = models.DetectCategory(req.OriginalURL)
	}

	title := req.Title
	description := req.Description
	thumbnail := req.ThumbnailImage

	if title == "" || description == "" || thumbnail == "" {
		meta := s.enricher.Fetch(ctx, req.OriginalURL)
		if title == "" {
			title = meta.Title
		}
		if description == "" {
			description = meta.Description
		}
		if thumbnail == "" {
			thumbnail = meta.Image
		}
	}

	post := &models.Post{
		ID:             uuid.NewString(),
		UserID:         user.ID,
		PiUsername:     user.PiUsername,
		OriginalURL:    normalizeURL(req.OriginalURL),
		Category:       category,
		Title:          title,
		Description:    description,
		ThumbnailImage: thumbnail,
		Comment:        req.Comment,
		Status:         models.StatusPending,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	s.bus.Publish(events.Event{Type: events.PostCreated, PostID: post.ID})
	return post, nil
}

// GetPosts lists submissions for an authenticated caller. Admins see the
// whole queue with any status filter; everyone else sees only their own.
func (s *postService) GetPosts(params models.PostListParams, user *models.User) ([]models.Post, int64, error) {
	if user == nil {
		return nil, 0, models.ErrUnauthorized
	}
	if !user.IsAdmin() {
		params.UserID = user.ID
	}
	return s.postRepo.GetList(params)
}

// GetPublicPosts is the anonymous feed: active posts only.
func (s *postService) GetPublicPosts(params models.PostListParams) ([]models.Post, int64, error) {
	params.Status = string(models.StatusActive)
	params.UserID = ""
	return s.postRepo.GetList(params)
}

func (s *postService) GetPost(id string) (*models.Post, error) {
	return s.postRepo.GetByID(id)
}

// UpdateStatus applies one moderation transition. Only admins may call it
// and only the transitions of the lifecycle are accepted.
func (s *postService) UpdateStatus(id string, status models.PostStatus, actor *models.User) (*models.Post, error) {
	if !actor.IsAdmin() {
		return nil, models.ErrForbidden
	}
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", models.ErrInvalidTransition, status)
	}

	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !post.Status.CanTransition(status) {
		return nil, fmt.Errorf("%w: %s -> %s", models.ErrInvalidTransition, post.Status, status)
	}

	if err := s.postRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}

	post.Status = status
	s.bus.Publish(events.Event{Type: events.PostUpdated, PostID: id})
	return post, nil
}

// DeletePost permanently removes a rejected post. Deletion is not reachable
// from any other status.
func (s *postService) DeletePost(id string, actor *models.User) error {
	if !actor.IsAdmin() {
		return models.ErrForbidden
	}

	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return err
	}
	if post.Status != models.StatusRejected {
		return fmt.Errorf("%w: only rejected posts can be deleted", models.ErrInvalidTransition)
	}

	if err := s.postRepo.Delete(id); err != nil {
		return err
	}

	s.bus.Publish(events.Event{Type: events.PostDeleted, PostID: id})
	return nil
}
