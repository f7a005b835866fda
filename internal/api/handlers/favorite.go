package handlers

import (
	"errors"
	"net/http"
	"wordvault/internal/auth"
	"wordvault/internal/models"
	"wordvault/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FavoriteHandler handles HTTP requests for saved words. Every operation is
// scoped to the authenticated user; a favorite owned by someone else is
// indistinguishable from one that does not exist.
type FavoriteHandler struct {
	favoriteRepo repository.FavoriteRepository
}

// NewFavoriteHandler creates a new favorites handler
func NewFavoriteHandler(favoriteRepo repository.FavoriteRepository) *FavoriteHandler {
	return &FavoriteHandler{favoriteRepo: favoriteRepo}
}

// ownedFavorite loads a favorite by path ID and checks it belongs to the user.
func (h *FavoriteHandler) ownedFavorite(c *gin.Context, user *models.User) (*models.Favorite, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid favorite id"})
		return nil, false
	}

	favorite, err := h.favoriteRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrFavoriteNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "favorite not found"})
		} else {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal server error"})
		}
		return nil, false
	}

	if favorite.UserID != user.ID {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "favorite not found"})
		return nil, false
	}

	return favorite, true
}

// List godoc
// @Summary List saved words
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Favorite "Saved words, newest first"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /favorites [get]
func (h *FavoriteHandler) List(c *gin.Context) {
	user := auth.GetUserFromContext(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	favorites, err := h.favoriteRepo.ListByUserID(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal server error"})
		return
	}
	if favorites == nil {
		favorites = []models.Favorite{}
	}

	c.JSON(http.StatusOK, favorites)
}

// Create godoc
// @Summary Save a word
// @Tags favorites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateFavoriteRequest true "Word to save"
// @Success 201 {object} models.Favorite "Saved word"
// @Failure 400 {object} models.ErrorResponse "Invalid request format"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /favorites [post]
func (h *FavoriteHandler) Create(c *gin.Context) {
	user := auth.GetUserFromContext(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req models.CreateFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	favorite := &models.Favorite{
		UserID:     user.ID,
		Word:       req.Word,
		Definition: req.Definition,
		Notes:      req.Notes,
	}
	if err := h.favoriteRepo.Create(c.Request.Context(), favorite); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, favorite)
}

// Update godoc
// @Summary Update a saved word's notes
// @Tags favorites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Favorite ID"
// @Param request body models.UpdateFavoriteRequest true "New notes"
// @Success 200 {object} models.Favorite "Updated favorite"
// @Failure 400 {object} models.ErrorResponse "Invalid request format"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "Favorite not found"
// @Router /favorites/{id} [put]
func (h *FavoriteHandler) Update(c *gin.Context) {
	user := auth.GetUserFromContext(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	favorite, ok := h.ownedFavorite(c, user)
	if !ok {
		return
	}

	var req models.UpdateFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.favoriteRepo.UpdateNotes(c.Request.Context(), favorite.ID, req.Notes); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal server error"})
		return
	}
	favorite.Notes = req.Notes

	c.JSON(http.StatusOK, favorite)
}

// Delete godoc
// @Summary Delete a saved word
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param id path string true "Favorite ID"
// @Success 200 {object} models.SuccessResponse "Favorite deleted"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "Favorite not found"
// @Router /favorites/{id} [delete]
func (h *FavoriteHandler) Delete(c *gin.Context) {
	user := auth.GetUserFromContext(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	favorite, ok := h.ownedFavorite(c, user)
	if !ok {
		return
	}

	if err := h.favoriteRepo.Delete(c.Request.Context(), favorite.ID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Message: "favorite deleted"})
}
