package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/platewise/backend/internal/domain"
)

// userRequest is the JSON body for creating or updating a user
type userRequest struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email" binding:"required,email"`
	Name  string    `json:"name"`
}

// CreateUser handles POST /users
func (h *Handler) CreateUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:        req.ID,
		Email:     req.Email,
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	if err := h.users.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetUser handles GET /users/:id
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUser handles PUT /users/:id
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ID != uuid.Nil && req.ID != id {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID mismatch"})
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	user.Email = req.Email
	user.Name = req.Name

	if err := h.users.UpdateUser(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser handles DELETE /users/:id, cascading to preferences and
// favorites
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.users.DeleteUser(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// SetUserPreferences handles POST /users/:id/preferences
func (h *Handler) SetUserPreferences(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var prefs domain.UserPreferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.userExists(c, id) {
		return
	}

	if err := h.users.SetPreferences(c.Request.Context(), id, &prefs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, prefs)
}

// GetUserPreferences handles GET /users/:id/preferences
func (h *Handler) GetUserPreferences(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if !h.userExists(c, id) {
		return
	}

	prefs, err := h.users.GetPreferences(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if prefs == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User preferences not found"})
		return
	}

	c.JSON(http.StatusOK, prefs)
}

// AddFavorite handles POST /users/:id/favorites/:recipe_id
func (h *Handler) AddFavorite(c *gin.Context) {
	userID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	recipeID, ok := pathUUID(c, "recipe_id")
	if !ok {
		return
	}

	if !h.userExists(c, userID) {
		return
	}

	fav := &domain.UserFavorite{
		RecipeID: recipeID,
		Notes:    c.Query("notes"),
		AddedAt:  time.Now().UTC(),
	}

	if err := h.users.AddFavorite(c.Request.Context(), userID, fav); err != nil {
		if errors.Is(err, domain.ErrDuplicateFavorite) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Recipe is already a favorite"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, fav)
}

// ListFavorites handles GET /users/:id/favorites
func (h *Handler) ListFavorites(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if !h.userExists(c, id) {
		return
	}

	favorites, err := h.users.ListFavorites(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if favorites == nil {
		favorites = []*domain.UserFavorite{}
	}

	c.JSON(http.StatusOK, favorites)
}

// RemoveFavorite handles DELETE /users/:id/favorites/:recipe_id
func (h *Handler) RemoveFavorite(c *gin.Context) {
	userID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	recipeID, ok := pathUUID(c, "recipe_id")
	if !ok {
		return
	}

	if !h.userExists(c, userID) {
		return
	}

	removed, err := h.users.RemoveFavorite(c.Request.Context(), userID, recipeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Favorite not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Favorite removed successfully"})
}

// userExists answers 404 itself when the user is absent
func (h *Handler) userExists(c *gin.Context, id uuid.UUID) bool {
	user, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return false
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return false
	}
	return true
}

// isClientError reports whether an error maps to a 400 at the boundary
func isClientError(err error) bool {
	return errors.Is(err, domain.ErrInvalidRequest)
}
