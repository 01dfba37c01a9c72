package services

import (
	"context"
	"time"

	"github.com/mroshb/filmorate/internal/cache"
	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/internal/repositories"
	"github.com/mroshb/filmorate/internal/validation"
	"github.com/mroshb/filmorate/pkg/errors"
	"github.com/mroshb/filmorate/pkg/logger"
)

type UserService struct {
	users repositories.UserRepository
	films repositories.FilmRepository
	cache cache.PopularCache
	now   func() time.Time
}

func NewUserService(users repositories.UserRepository, films repositories.FilmRepository, popular cache.PopularCache) *UserService {
	if popular == nil {
		popular = cache.NopCache{}
	}
	return &UserService{
		users: users,
		films: films,
		cache: popular,
		now:   time.Now,
	}
}

func (s *UserService) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := validation.User(user, s.now()); err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("User created", "user_id", user.ID, "login", user.Login)
	return user, nil
}

func (s *UserService) Update(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == 0 {
		return nil, errors.Validation("user id is required")
	}
	if err := validation.User(user, s.now()); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("User updated", "user_id", user.ID)
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	return s.users.Get(ctx, id)
}

func (s *UserService) GetAll(ctx context.Context) ([]models.User, error) {
	return s.users.GetAll(ctx)
}

// Delete removes the user with its friendships and likes.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	if err := s.requireUsers(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.films.RemoveUserLikes(ctx, id); err != nil {
		return err
	}
	invalidatePopular(ctx, s.cache)

	logger.Info("User deleted", "user_id", id)
	return nil
}

func (s *UserService) AddFriend(ctx context.Context, userID, friendID uint) error {
	if userID == friendID {
		return errors.InvalidArgument("user can't be friends with themselves")
	}
	if err := s.requireUsers(ctx, userID, friendID); err != nil {
		return err
	}
	if err := s.users.AddFriend(ctx, userID, friendID); err != nil {
		return err
	}

	logger.Info("Friend added", "user_id", userID, "friend_id", friendID)
	return nil
}

func (s *UserService) RemoveFriend(ctx context.Context, userID, friendID uint) error {
	if err := s.requireUsers(ctx, userID, friendID); err != nil {
		return err
	}
	if err := s.users.RemoveFriend(ctx, userID, friendID); err != nil {
		return err
	}

	logger.Info("Friend removed", "user_id", userID, "friend_id", friendID)
	return nil
}

func (s *UserService) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	if err := s.requireUsers(ctx, userID); err != nil {
		return nil, err
	}
	friends, err := s.users.GetFriends(ctx, userID)
	if err != nil {
		return nil, err
	}

	logger.Debug("Friends listed", "user_id", userID, "count", len(friends))
	return friends, nil
}

func (s *UserService) GetMutualFriends(ctx context.Context, userID, otherID uint) ([]models.User, error) {
	if err := s.requireUsers(ctx, userID, otherID); err != nil {
		return nil, err
	}
	mutual, err := s.users.GetMutualFriends(ctx, userID, otherID)
	if err != nil {
		return nil, err
	}

	logger.Debug("Mutual friends listed", "user_id", userID, "other_id", otherID, "count", len(mutual))
	return mutual, nil
}

// requireUsers fails with NOT_FOUND naming the first id that is not stored.
func (s *UserService) requireUsers(ctx context.Context, ids ...uint) error {
	return requireUsers(ctx, s.users, ids...)
}

func requireUsers(ctx context.Context, users repositories.UserRepository, ids ...uint) error {
	for _, id := range ids {
		ok, err := users.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return errors.NotFound(errors.EntityUser, id)
		}
	}
	return nil
}

func invalidatePopular(ctx context.Context, popular cache.PopularCache) {
	if err := popular.Invalidate(ctx); err != nil {
		logger.Warn("Failed to invalidate popular films cache", "error", err)
	}
}
