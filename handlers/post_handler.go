package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gopkg.in/go-playground/validator.v9"

	"pilinks/helper"
	"pilinks/models"
	"pilinks/services"
)

type PostHandler struct {
	postService services.PostService
	Helper      *helper.HTTPHelper
}

func NewPostHandler(postService services.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
		Helper:      helper.NewHTTPHelper(),
	}
}

// currentUser rebuilds the caller's identity from the JWT claims the auth
// middleware stashed in the context. Nil means anonymous.
func currentUser(c *gin.Context) *models.User {
	userID, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	username, _ := c.Get("pi_username")
	role, _ := c.Get("role")
	return &models.User{
		ID:         userID.(string),
		PiUsername: username.(string),
		Role:       models.UserRole(role.(string)),
	}
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Helper.Validate.Struct(req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			h.Helper.SendValidationError(c, validationErrors)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), req, currentUser(c))
	if err != nil {
		c.JSON(h.Helper.GetStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, post)
}

// GetPosts lists submissions for the authenticated caller: admins see the
// moderation queue (any status filter), users see their own posts.
func (h *PostHandler) GetPosts(c *gin.Context) {
	var params models.PostListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if params.Page == 0 {
		params.Page = 1
	}
	if params.Limit == 0 {
		params.Limit = 20
	}

	posts, total, err := h.postService.GetPosts(params, currentUser(c))
	if err != nil {
		c.JSON(h.Helper.GetStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":      posts,
		"total":      total,
		"pagination": h.Helper.GeneratePaging(c, params.Limit, params.Page, int(total)),
	})
}

// GetPublicPosts is the anonymous feed: active posts only, newest first.
func (h *PostHandler) GetPublicPosts(c *gin.Context) {
	var params models.PostListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if params.Page == 0 {
		params.Page = 1
	}
	if params.Limit == 0 {
		params.Limit = 20
	}

	posts, total, err := h.postService.GetPublicPosts(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":      posts,
		"total":      total,
		"pagination": h.Helper.GeneratePaging(c, params.Limit, params.Page, int(total)),
	})
}

func (h *PostHandler) GetPublicPost(c *gin.Context) {
	post, err := h.postService.GetPost(c.Param("id"))
	if err != nil {
		c.JSON(h.Helper.GetStatusCode(err), gin.H{"error": err.Error()})
		return
	}
	if post.Status != models.StatusActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// UpdatePostStatus applies one moderation transition (admin only).
func (h *PostHandler) UpdatePostStatus(c *gin.Context) {
	var req models.UpdatePostStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Helper.Validate.Struct(req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			h.Helper.SendValidationError(c, validationErrors)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postService.UpdateStatus(c.Param("id"), req.Status, currentUser(c))
	if err != nil {
		c.JSON(h.Helper.GetStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost permanently removes a rejected post (admin only).
func (h *PostHandler) DeletePost(c *gin.Context) {
	if err := h.postService.DeletePost(c.Param("id"), currentUser(c)); err != nil {
		c.JSON(h.Helper.GetStatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
