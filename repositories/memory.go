package repositories

import (
	"sort"
	"sync"

	"pilinks/models"
)

// In-memory repositories back mock mode: same contract as the Postgres ones,
// contents live only as long as the process.

type memoryPostRepository struct {
	mu    sync.RWMutex
	posts map[string]models.Post
}

func NewMemoryPostRepository() PostRepository {
	return &memoryPostRepository{posts: make(map[string]models.Post)}
}

func (r *memoryPostRepository) Create(post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts[post.ID] = *post
	return nil
}

func (r *memoryPostRepository) GetByID(id string) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &post, nil
}

func (r *memoryPostRepository) GetList(params models.PostListParams) ([]models.Post, int64, error) {
	r.mu.RLock()
	matched := make([]models.Post, 0, len(r.posts))
	for _, post := range r.posts {
		if params.Status != "" && string(post.Status) != params.Status {
			continue
		}
		if params.Category != "" && string(post.Category) != params.Category {
			continue
		}
		if params.UserID != "" && post.UserID != params.UserID {
			continue
		}
		matched = append(matched, post)
	}
	r.mu.RUnlock()

	// newest first, id as tie-breaker for a stable order
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))

	if params.Limit > 0 {
		offset := (params.Page - 1) * params.Limit
		if offset < 0 {
			offset = 0
		}
		if offset >= len(matched) {
			return []models.Post{}, total, nil
		}
		end := offset + params.Limit
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[offset:end]
	}

	return matched, total, nil
}

func (r *memoryPostRepository) UpdateStatus(id string, status models.PostStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return models.ErrNotFound
	}
	post.Status = status
	r.posts[id] = post
	return nil
}

func (r *memoryPostRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User // keyed by id
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{users: make(map[string]models.User)}
}

func (r *memoryUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &user, nil
}

func (r *memoryUserRepository) GetByPiUID(piUID string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.PiUID == piUID {
			u := user
			return &u, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *memoryUserRepository) Upsert(user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.users {
		if existing.PiUID == user.PiUID {
			existing.PiUsername = user.PiUsername
			existing.Role = user.Role
			r.users[id] = existing
			return &existing, nil
		}
	}
	r.users[user.ID] = *user
	saved := *user
	return &saved, nil
}
