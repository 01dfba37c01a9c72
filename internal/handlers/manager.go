package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/filmorate/internal/services"
)

// HandlerManager serves the HTTP API on top of the services.
type HandlerManager struct {
	UserSvc    *services.UserService
	FilmSvc    *services.FilmService
	CatalogSvc *services.CatalogService
}

func NewHandlerManager(
	userSvc *services.UserService,
	filmSvc *services.FilmService,
	catalogSvc *services.CatalogService,
) *HandlerManager {
	return &HandlerManager{
		UserSvc:    userSvc,
		FilmSvc:    filmSvc,
		CatalogSvc: catalogSvc,
	}
}

// RegisterRoutes registers all routes onto the gin engine.
func (h *HandlerManager) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	users := r.Group("/users")
	{
		users.GET("", h.GetUsers)
		users.POST("", h.CreateUser)
		users.PUT("", h.UpdateUser)
		users.GET("/:id", h.GetUser)
		users.DELETE("/:id", h.DeleteUser)
		users.GET("/:id/friends", h.GetFriends)
		users.PUT("/:id/friends/:friendId", h.AddFriend)
		users.DELETE("/:id/friends/:friendId", h.RemoveFriend)
		users.GET("/:id/friends/common/:otherId", h.GetCommonFriends)
	}

	films := r.Group("/films")
	{
		films.GET("", h.GetFilms)
		films.POST("", h.CreateFilm)
		films.PUT("", h.UpdateFilm)
		films.GET("/popular", h.GetPopularFilms)
		films.GET("/:id", h.GetFilm)
		films.DELETE("/:id", h.DeleteFilm)
		films.GET("/:id/likes", h.CountLikes)
		films.PUT("/:id/like/:userId", h.AddLike)
		films.DELETE("/:id/like/:userId", h.RemoveLike)
	}

	r.GET("/genres", h.GetGenres)
	r.GET("/genres/:id", h.GetGenre)
	r.GET("/mpa", h.GetMpaRatings)
	r.GET("/mpa/:id", h.GetMpa)
}
