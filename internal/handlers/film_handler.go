package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/filmorate/internal/models"
)

// GetFilms handles GET /films.
func (h *HandlerManager) GetFilms(c *gin.Context) {
	films, err := h.FilmSvc.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, films)
}

// GetFilm handles GET /films/:id.
func (h *HandlerManager) GetFilm(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	film, err := h.FilmSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, film)
}

// CreateFilm handles POST /films.
func (h *HandlerManager) CreateFilm(c *gin.Context) {
	var film models.Film
	if err := c.ShouldBindJSON(&film); err != nil {
		badRequest(c, "invalid film body: "+err.Error())
		return
	}

	created, err := h.FilmSvc.Create(c.Request.Context(), &film)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

// UpdateFilm handles PUT /films; the body carries the id.
func (h *HandlerManager) UpdateFilm(c *gin.Context) {
	var film models.Film
	if err := c.ShouldBindJSON(&film); err != nil {
		badRequest(c, "invalid film body: "+err.Error())
		return
	}

	updated, err := h.FilmSvc.Update(c.Request.Context(), &film)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteFilm handles DELETE /films/:id.
func (h *HandlerManager) DeleteFilm(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.FilmSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// AddLike handles PUT /films/:id/like/:userId.
func (h *HandlerManager) AddLike(c *gin.Context) {
	filmID, userID, ok := likeParams(c)
	if !ok {
		return
	}

	if err := h.FilmSvc.AddLike(c.Request.Context(), filmID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// RemoveLike handles DELETE /films/:id/like/:userId.
func (h *HandlerManager) RemoveLike(c *gin.Context) {
	filmID, userID, ok := likeParams(c)
	if !ok {
		return
	}

	if err := h.FilmSvc.RemoveLike(c.Request.Context(), filmID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// CountLikes handles GET /films/:id/likes.
func (h *HandlerManager) CountLikes(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	count, err := h.FilmSvc.CountLikes(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"filmId": id, "likes": count})
}

// GetPopularFilms handles GET /films/popular?count=N.
func (h *HandlerManager) GetPopularFilms(c *gin.Context) {
	count := h.FilmSvc.DefaultCount()
	if raw, present := c.GetQuery("count"); present {
		n, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, "count must be an integer")
			return
		}
		count = n
	}

	films, err := h.FilmSvc.GetMostPopular(c.Request.Context(), count)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, films)
}

func likeParams(c *gin.Context) (filmID, userID uint, ok bool) {
	if filmID, ok = pathID(c, "id"); !ok {
		return 0, 0, false
	}
	if userID, ok = pathID(c, "userId"); !ok {
		return 0, 0, false
	}
	return filmID, userID, true
}
