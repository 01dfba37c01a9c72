package repositories

import (
	"context"

	"github.com/mroshb/filmorate/internal/models"
)

// UserRepository stores users and the friendship graph between them.
//
// Implementations do not enforce referential integrity on relation calls;
// callers check that both users exist first. Get, Update and Delete return a
// NOT_FOUND AppError for an unknown id.
type UserRepository interface {
	// Create assigns the next id, ignoring any id already set on user.
	Create(ctx context.Context, user *models.User) error
	Get(ctx context.Context, id uint) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	// Delete removes the user and every friendship edge touching it.
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)

	// AddFriend inserts the undirected edge; adding an existing edge is a no-op.
	AddFriend(ctx context.Context, userID, friendID uint) error
	// RemoveFriend deletes the undirected edge; removing a missing edge is a no-op.
	RemoveFriend(ctx context.Context, userID, friendID uint) error
	// GetFriends returns userID's friends ordered by id.
	GetFriends(ctx context.Context, userID uint) ([]models.User, error)
	// GetMutualFriends returns the users that are friends of both ids, ordered by id.
	GetMutualFriends(ctx context.Context, userID, otherID uint) ([]models.User, error)
}

// FilmRepository stores films and the like relation from users to films.
type FilmRepository interface {
	// Create assigns the next id, ignoring any id already set on film.
	Create(ctx context.Context, film *models.Film) error
	Get(ctx context.Context, id uint) (*models.Film, error)
	GetAll(ctx context.Context) ([]models.Film, error)
	Update(ctx context.Context, film *models.Film) error
	// Delete removes the film together with its likes and genre links.
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)

	AddLike(ctx context.Context, filmID, userID uint) error
	RemoveLike(ctx context.Context, filmID, userID uint) error
	// RemoveUserLikes drops every like made by userID.
	RemoveUserLikes(ctx context.Context, userID uint) error
	CountLikes(ctx context.Context, filmID uint) (int64, error)
	// GetMostPopular ranks all films by like count descending, then id
	// ascending, and returns at most count of them.
	GetMostPopular(ctx context.Context, count int) ([]models.Film, error)
}

// CatalogRepository serves the read-only genre and MPA rating reference data.
type CatalogRepository interface {
	GetAllGenres(ctx context.Context) ([]models.Genre, error)
	GetGenre(ctx context.Context, id uint) (*models.Genre, error)
	// GenresExist reports whether every id names a known genre.
	GenresExist(ctx context.Context, ids []uint) (bool, error)
	GetAllMpa(ctx context.Context) ([]models.Mpa, error)
	GetMpa(ctx context.Context, id uint) (*models.Mpa, error)
	MpaExists(ctx context.Context, id uint) (bool, error)
}
