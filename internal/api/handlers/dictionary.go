package handlers

import (
	"errors"
	"net/http"
	"wordvault/internal/dictionary"
	"wordvault/internal/models"

	"github.com/gin-gonic/gin"
)

// DictionaryHandler handles HTTP requests for word lookups
type DictionaryHandler struct {
	dictService *dictionary.Service
}

// NewDictionaryHandler creates a new dictionary handler
func NewDictionaryHandler(dictService *dictionary.Service) *DictionaryHandler {
	return &DictionaryHandler{dictService: dictService}
}

func respondDictionaryError(c *gin.Context, err error) {
	if errors.Is(err, dictionary.ErrWordNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "word not found"})
		return
	}
	c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "dictionary service unavailable"})
}

func language(c *gin.Context) string {
	return c.DefaultQuery("language", "en")
}

// Search godoc
// @Summary Look up a word
// @Description Return the full flattened dictionary entry for a word
// @Tags dictionary
// @Produce json
// @Param q query string true "Word to look up"
// @Param language query string false "Language code" default(en)
// @Success 200 {object} models.WordResult "Word entry"
// @Failure 400 {object} models.ErrorResponse "Missing query"
// @Failure 404 {object} models.ErrorResponse "Word not found"
// @Failure 502 {object} models.ErrorResponse "Upstream unavailable"
// @Router /dictionary/search [get]
func (h *DictionaryHandler) Search(c *gin.Context) {
	word := c.Query("q")
	if word == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "query parameter 'q' is required"})
		return
	}

	result, err := h.dictService.Search(c.Request.Context(), language(c), word)
	if err != nil {
		respondDictionaryError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Definitions godoc
// @Summary Word definitions
// @Tags dictionary
// @Produce json
// @Param word path string true "Word"
// @Param language query string false "Language code" default(en)
// @Success 200 {array} models.Definition "Definitions"
// @Failure 404 {object} models.ErrorResponse "Word not found"
// @Failure 502 {object} models.ErrorResponse "Upstream unavailable"
// @Router /dictionary/{word}/definitions [get]
func (h *DictionaryHandler) Definitions(c *gin.Context) {
	defs, err := h.dictService.Definitions(c.Request.Context(), language(c), c.Param("word"))
	if err != nil {
		respondDictionaryError(c, err)
		return
	}
	c.JSON(http.StatusOK, defs)
}

// Synonyms godoc
// @Summary Word synonyms
// @Tags dictionary
// @Produce json
// @Param word path string true "Word"
// @Param language query string false "Language code" default(en)
// @Success 200 {array} string "Synonyms"
// @Failure 404 {object} models.ErrorResponse "Word not found"
// @Failure 502 {object} models.ErrorResponse "Upstream unavailable"
// @Router /dictionary/{word}/synonyms [get]
func (h *DictionaryHandler) Synonyms(c *gin.Context) {
	words, err := h.dictService.Synonyms(c.Request.Context(), language(c), c.Param("word"))
	if err != nil {
		respondDictionaryError(c, err)
		return
	}
	c.JSON(http.StatusOK, words)
}

// Antonyms godoc
// @Summary Word antonyms
// @Tags dictionary
// @Produce json
// @Param word path string true "Word"
// @Param language query string false "Language code" default(en)
// @Success 200 {array} string "Antonyms"
// @Failure 404 {object} models.ErrorResponse "Word not found"
// @Failure 502 {object} models.ErrorResponse "Upstream unavailable"
// @Router /dictionary/{word}/antonyms [get]
func (h *DictionaryHandler) Antonyms(c *gin.Context) {
	words, err := h.dictService.Antonyms(c.Request.Context(), language(c), c.Param("word"))
	if err != nil {
		respondDictionaryError(c, err)
		return
	}
	c.JSON(http.StatusOK, words)
}

// Examples godoc
// @Summary Word usage examples
// @Tags dictionary
// @Produce json
// @Param word path string true "Word"
// @Param language query string false "Language code" default(en)
// @Success 200 {array} models.Example "Examples"
// @Failure 404 {object} models.ErrorResponse "Word not found"
// @Failure 502 {object} models.ErrorResponse "Upstream unavailable"
// @Router /dictionary/{word}/examples [get]
func (h *DictionaryHandler) Examples(c *gin.Context) {
	examples, err := h.dictService.Examples(c.Request.Context(), language(c), c.Param("word"))
	if err != nil {
		respondDictionaryError(c, err)
		return
	}
	c.JSON(http.StatusOK, examples)
}

// Pronunciation godoc
// @Summary Word pronunciation
// @Description Return the audio pronunciation URL when the upstream has one
// @Tags dictionary
// @Produce json
// @Param word path string true "Word"
// @Param language query string false "Language code" default(en)
// @Success 200 {object} map[string]string "Pronunciation URL"
// @Failure 404 {object} models.ErrorResponse "Word not found"
// @Failure 502 {object} models.ErrorResponse "Upstream unavailable"
// @Router /dictionary/{word}/pronunciation [get]
func (h *DictionaryHandler) Pronunciation(c *gin.Context) {
	audio, err := h.dictService.Pronunciation(c.Request.Context(), language(c), c.Param("word"))
	if err != nil {
		respondDictionaryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pronunciation": audio})
}

// ClearCache godoc
// @Summary Drop the cached entry for a word
// @Tags dictionary
// @Produce json
// @Security BearerAuth
// @Param word path string true "Word"
// @Param language query string false "Language code" default(en)
// @Success 200 {object} models.SuccessResponse "Cache cleared"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /dictionary/{word}/cache [delete]
func (h *DictionaryHandler) ClearCache(c *gin.Context) {
	h.dictService.ClearCache(c.Request.Context(), language(c), c.Param("word"))
	c.JSON(http.StatusOK, models.SuccessResponse{Message: "cache cleared"})
}
