package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/blogsphere/blogsphere/internal/models"
	"github.com/blogsphere/blogsphere/internal/posts"
	"github.com/blogsphere/blogsphere/internal/posts/service"
	"github.com/blogsphere/blogsphere/internal/users"
	"github.com/blogsphere/blogsphere/pkg/logger"
	"github.com/blogsphere/blogsphere/pkg/metrics"
	"github.com/blogsphere/blogsphere/pkg/middleware"
)

// PostsHandler exposes the post CRUD API. All routes except the shared
// lookup run behind the auth middleware and operate on the caller's posts
// only.
type PostsHandler struct {
	svc   *service.Service
	users *users.Service
}

func NewPostsHandler(svc *service.Service, u *users.Service) *PostsHandler {
	return &PostsHandler{svc: svc, users: u}
}

// Register routes under /api/posts
func (h *PostsHandler) Register(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	p := rg.Group("/api/posts")
	p.GET("/shared/:id", h.GetShared)

	owned := p.Group("", requireAuth)
	owned.POST("", h.Create)
	owned.GET("", h.List)
	owned.GET("/:id", h.Get)
	owned.PUT("/:id", h.Update)
	owned.DELETE("/:id", h.Delete)
}

type createPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Shared  *bool  `json:"shared"`
}

type updatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Shared  *bool   `json:"shared"`
}

type authorPayload struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Picture string `json:"picture,omitempty"`
}

// postResponse carries the post together with author display data resolved
// at read time; the post itself only stores the owner's id.
type postResponse struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	Author    authorPayload `json:"author"`
	Shared    bool          `json:"shared"`
	CreatedAt time.Time     `json:"createdAt"`
}

func renderPost(p *posts.Post, author *models.User) postResponse {
	resp := postResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Author:    authorPayload{ID: p.Author},
		Shared:    p.Shared,
		CreatedAt: p.CreatedAt,
	}
	if author != nil {
		resp.Author.Name = author.Name
		resp.Author.Email = author.Email
		resp.Author.Picture = author.Picture
	}
	return resp
}

// Create stores a new post owned by the caller
func (h *PostsHandler) Create(c *gin.Context) {
	u := middleware.CurrentUser(c)
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	shared := req.Shared != nil && *req.Shared
	p, err := h.svc.Create(c.Request.Context(), u.ID, req.Title, req.Content, shared)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "title and content are required"})
			return
		}
		logger.Errorf("create post failed: %v", err)
		metrics.PostOperationErrors.WithLabelValues("create").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create post"})
		return
	}
	metrics.PostOperations.WithLabelValues("create").Inc()
	c.JSON(http.StatusCreated, renderPost(p, u))
}

// List returns the caller's posts, newest first
func (h *PostsHandler) List(c *gin.Context) {
	u := middleware.CurrentUser(c)
	list, err := h.svc.List(c.Request.Context(), u.ID)
	if err != nil {
		logger.Errorf("list posts failed: %v", err)
		metrics.PostOperationErrors.WithLabelValues("list").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list posts"})
		return
	}
	out := make([]postResponse, 0, len(list))
	for _, p := range list {
		out = append(out, renderPost(p, u))
	}
	metrics.PostOperations.WithLabelValues("list").Inc()
	c.JSON(http.StatusOK, out)
}

// Get returns one of the caller's posts by id
func (h *PostsHandler) Get(c *gin.Context) {
	u := middleware.CurrentUser(c)
	p, err := h.svc.Get(c.Request.Context(), u.ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "post not found"})
			return
		}
		logger.Errorf("get post failed: %v", err)
		metrics.PostOperationErrors.WithLabelValues("get").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load post"})
		return
	}
	metrics.PostOperations.WithLabelValues("get").Inc()
	c.JSON(http.StatusOK, renderPost(p, u))
}

// Update applies a partial update to one of the caller's posts
func (h *PostsHandler) Update(c *gin.Context) {
	u := middleware.CurrentUser(c)
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	upd := posts.Update{Title: req.Title, Content: req.Content, Shared: req.Shared}
	p, err := h.svc.Update(c.Request.Context(), u.ID, c.Param("id"), upd)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"message": "title and content cannot be empty"})
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "post not found"})
		default:
			logger.Errorf("update post failed: %v", err)
			metrics.PostOperationErrors.WithLabelValues("update").Inc()
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update post"})
		}
		return
	}
	metrics.PostOperations.WithLabelValues("update").Inc()
	c.JSON(http.StatusOK, renderPost(p, u))
}

// Delete removes one of the caller's posts
func (h *PostsHandler) Delete(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if err := h.svc.Delete(c.Request.Context(), u.ID, c.Param("id")); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "post not found"})
			return
		}
		logger.Errorf("delete post failed: %v", err)
		metrics.PostOperationErrors.WithLabelValues("delete").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete post"})
		return
	}
	metrics.PostOperations.WithLabelValues("delete").Inc()
	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}

// GetShared resolves a post without authentication. The only gate is the
// post's visibility flag; a private post is reported as absent.
func (h *PostsHandler) GetShared(c *gin.Context) {
	p, err := h.svc.GetShared(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "post not found"})
			return
		}
		logger.Errorf("get shared post failed: %v", err)
		metrics.PostOperationErrors.WithLabelValues("get_shared").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load post"})
		return
	}
	// author display data is best-effort here; the post renders without it
	author, err := h.users.GetByID(c.Request.Context(), p.Author)
	if err != nil {
		logger.Warnf("author lookup for shared post %s failed: %v", p.ID, err)
	}
	metrics.PostOperations.WithLabelValues("get_shared").Inc()
	c.JSON(http.StatusOK, renderPost(p, author))
}
