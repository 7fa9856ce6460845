package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pilinks/events"
	"pilinks/models"
	"pilinks/repositories"
)

func newTestPostService() (PostService, *events.Bus) {
	repo := repositories.NewMemoryPostRepository()
	bus := events.NewBus()
	// disabled enricher: every fetch degrades to placeholder metadata, which
	// is exactly the enrichment-failure path
	svc := NewPostService(repo, NewEnrichmentService(false), bus)
	return svc, bus
}

func testUser() *models.User {
	return &models.User{ID: "user-1", PiUsername: "pioneer", PiUID: "uid-1", Role: models.RoleUser}
}

func testAdmin() *models.User {
	return &models.User{ID: "admin-1", PiUsername: "mod", PiUID: "uid-admin", Role: models.RoleAdmin}
}

func TestCreatePostPendingWithPlaceholderMetadata(t *testing.T) {
	svc, _ := newTestPostService()
	start := time.Now().UTC()

	post, err := svc.CreatePost(context.Background(), models.CreatePostRequest{
		OriginalURL: "youtube.com/watch?v=abc",
	}, testUser())

	assert.NoError(t, err)
	assert.Equal(t, models.StatusPending, post.Status)
	assert.Equal(t, models.CategoryYoutube, post.Category)
	assert.Equal(t, "https://youtube.com/watch?v=abc", post.OriginalURL)
	assert.NotEmpty(t, post.Title)
	assert.NotEmpty(t, post.ThumbnailImage)
	assert.NotEmpty(t, post.Description)
	assert.False(t, post.CreatedAt.Before(start))
	assert.Equal(t, "user-1", post.UserID)
	assert.Equal(t, "pioneer", post.PiUsername)
}

func TestCreatePostKeepsUserMetadata(t *testing.T) {
	svc, _ := newTestPostService()

	post, err := svc.CreatePost(context.Background(), models.CreatePostRequest{
		OriginalURL: "https://reddit.com/r/pi",
		Title:       "my title",
		Description: "my description",
		Comment:     "worth a read",
	}, testUser())

	assert.NoError(t, err)
	assert.Equal(t, "my title", post.Title)
	assert.Equal(t, "my description", post.Description)
	assert.Equal(t, "worth a read", post.Comment)
	assert.Equal(t, models.CategoryReddit, post.Category)
	// thumbnail was not supplied, so the enricher fills it
	assert.NotEmpty(t, post.ThumbnailImage)
}

func TestCreatePostCategoryOverride(t *testing.T) {
	svc, _ := newTestPostService()

	post, err := svc.CreatePost(context.Background(), models.CreatePostRequest{
		OriginalURL: "https://youtube.com/watch?v=abc",
		Category:    models.CategoryOther,
	}, testUser())

	assert.NoError(t, err)
	assert.Equal(t, models.CategoryOther, post.Category)
}

func TestCreatePostAnonymousIsRejected(t *testing.T) {
	svc, _ := newTestPostService()

	_, err := svc.CreatePost(context.Background(), models.CreatePostRequest{
		OriginalURL: "https://example.com",
	}, nil)

	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestCreatePostAppearsInOwnList(t *testing.T) {
	svc, _ := newTestPostService()
	user := testUser()

	post, err := svc.CreatePost(context.Background(), models.CreatePostRequest{OriginalURL: "https://example.com"}, user)
	assert.NoError(t, err)

	posts, total, err := svc.GetPosts(models.PostListParams{Page: 1, Limit: 20}, user)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, post.ID, posts[0].ID)
}

func TestGetPostsScopedToOwnerUnlessAdmin(t *testing.T) {
	svc, _ := newTestPostService()
	user := testUser()

	_, err := svc.CreatePost(context.Background(), models.CreatePostRequest{OriginalURL: "https://example.com"}, user)
	assert.NoError(t, err)

	stranger := &models.User{ID: "user-2", PiUsername: "other", Role: models.RoleUser}
	posts, _, err := svc.GetPosts(models.PostListParams{Page: 1, Limit: 20}, stranger)
	assert.NoError(t, err)
	assert.Empty(t, posts)

	posts, _, err = svc.GetPosts(models.PostListParams{Status: "pending", Page: 1, Limit: 20}, testAdmin())
	assert.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestUpdateStatusApproval(t *testing.T) {
	svc, _ := newTestPostService()

	post, _ := svc.CreatePost(context.Background(), models.CreatePostRequest{OriginalURL: "https://example.com"}, testUser())
	other, _ := svc.CreatePost(context.Background(), models.CreatePostRequest{OriginalURL: "https://example.org"}, testUser())

	updated, err := svc.UpdateStatus(post.ID, models.StatusActive, testAdmin())
	assert.NoError(t, err)
	assert.Equal(t, models.StatusActive, updated.Status)

	// the approved post is in the public feed, the other is not
	public, total, err := svc.GetPublicPosts(models.PostListParams{Page: 1, Limit: 20})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, post.ID, public[0].ID)

	untouched, err := svc.GetPost(other.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusPending, untouched.Status)
}

func TestUpdateStatusRequiresAdmin(t *testing.T) {
	svc, _ := newTestPostService()
	post, _ := svc.CreatePost(context.Background(), models.CreatePostRequest{OriginalURL: "https://example.com"}, testUser())

	_, err := svc.UpdateStatus(post.ID, models.StatusActive, testUser())
	assert.ErrorIs(t, err, models.ErrForbidden)

	_, err = svc.UpdateStatus(post.ID, models.StatusActive, nil)
	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestUpdateStatusInvalidTransitions(t *testing.T) {
	svc, _ := newTestPostService()
	admin := testAdmin()
	post, _ := svc.CreatePost(context.Background(), models.CreatePostRequest{OriginalURL: "https://example.com"}, testUser())

	_, err := svc.UpdateStatus(post.ID, models.StatusActive, admin)
	assert.NoError(t, err)

	// active is terminal
	_, err = svc.UpdateStatus(post.ID, models.StatusPending, admin)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	_, err = svc.UpdateStatus(post.ID, models.PostStatus("deleted"), admin)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	_, err = svc.UpdateStatus("missing", models.StatusActive, admin)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRejectedRestoreAndDelete(t *testing.T) {
	svc, _ := newTestPostService()
	admin := testAdmin()

	post, _ := svc.CreatePost(context.Background(), models.CreatePostRequest{OriginalURL: "https://example.com"}, testUser())

	_, err := svc.UpdateStatus(post.ID, models.StatusRejected, admin)
	assert.NoError(t, err)

	// restore puts it back into the queue
	restored, err := svc.UpdateStatus(post.ID, models.StatusPending, admin)
	assert.NoError(t, err)
	assert.Equal(t, models.StatusPending, restored.Status)

	// deletion is only reachable from rejected
	assert.ErrorIs(t, svc.DeletePost(post.ID, admin), models.ErrInvalidTransition)

	_, err = svc.UpdateStatus(post.ID, models.StatusRejected, admin)
	assert.NoError(t, err)
	assert.ErrorIs(t, svc.DeletePost(post.ID, testUser()), models.ErrForbidden)
	assert.NoError(t, svc.DeletePost(post.ID, admin))

	_, err = svc.GetPost(post.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMutationsPublishEvents(t *testing.T) {
	svc, bus := newTestPostService()
	admin := testAdmin()

	var got []events.Event
	unsubscribe := bus.Subscribe(func(e events.Event) {
		got = append(got, e)
	})
	defer unsubscribe()

	post, _ := svc.CreatePost(context.Background(), models.CreatePostRequest{OriginalURL: "https://example.com"}, testUser())
	_, err := svc.UpdateStatus(post.ID, models.StatusRejected, admin)
	assert.NoError(t, err)
	assert.NoError(t, svc.DeletePost(post.ID, admin))

	assert.Len(t, got, 3)
	assert.Equal(t, events.PostCreated, got[0].Type)
	assert.Equal(t, events.PostUpdated, got[1].Type)
	assert.Equal(t, events.PostDeleted, got[2].Type)
	assert.Equal(t, post.ID, got[2].PostID)
}
