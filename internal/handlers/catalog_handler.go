package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetGenres handles GET /genres.
func (h *HandlerManager) GetGenres(c *gin.Context) {
	genres, err := h.CatalogSvc.GetAllGenres(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, genres)
}

// GetGenre handles GET /genres/:id.
func (h *HandlerManager) GetGenre(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	genre, err := h.CatalogSvc.GetGenre(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, genre)
}

// GetMpaRatings handles GET /mpa.
func (h *HandlerManager) GetMpaRatings(c *gin.Context) {
	ratings, err := h.CatalogSvc.GetAllMpa(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ratings)
}

// GetMpa handles GET /mpa/:id.
func (h *HandlerManager) GetMpa(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	rating, err := h.CatalogSvc.GetMpa(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rating)
}
