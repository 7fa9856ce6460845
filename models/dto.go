package models

type LoginRequest struct {
	AccessToken string `json:"access_token" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type CreatePostRequest struct {
	OriginalURL    string   `json:"original_url" binding:"required,max=2048"`
	Category       Category `json:"category,omitempty" validate:"omitempty,oneof=Web X Instagram Threads Reddit Notion Youtube Other"`
	Title          string   `json:"title" binding:"max=255"`
	Description    string   `json:"description" binding:"max=2000"`
	ThumbnailImage string   `json:"thumbnail_image" binding:"max=2048"`
	Comment        string   `json:"comment" binding:"max=500"`
}

type UpdatePostStatusRequest struct {
	Status PostStatus `json:"status" binding:"required" validate:"required,oneof=pending active rejected"`
}

type PostListParams struct {
	Status   string `form:"status"`
	Category string `form:"category"`
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=20"`
	// UserID is never bound from the query; the service fills it in for
	// non-admin callers so they only see their own submissions.
	UserID string `form:"-"`
}

// OGMetadata is the enricher's best-effort preview for a submitted link.
type OGMetadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Domain      string `json:"domain"`
}
