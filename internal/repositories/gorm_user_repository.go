package repositories

import (
	"context"

	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userColumns are written on Update; id is never changed.
var userColumns = []string{"email", "login", "name", "birthday"}

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts a new user and lets the database assign its id
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = 0
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create user")
	}
	return nil
}

func (r *GormUserRepository) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).First(&user, id)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.NotFound(errors.EntityUser, id)
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get user")
	}
	return &user, nil
}

func (r *GormUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list users")
	}
	return users, nil
}

func (r *GormUserRepository) Update(ctx context.Context, user *models.User) error {
	result := r.db.WithContext(ctx).Model(user).Select(userColumns).Updates(user)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return errors.NotFound(errors.EntityUser, user.ID)
	}
	return nil
}

func (r *GormUserRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_low_id = ? OR user_high_id = ?", id, id).
			Delete(&models.Friendship{}).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to remove friendships")
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.FilmLike{}).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to remove likes")
		}

		result := tx.Delete(&models.User{}, id)
		if result.Error != nil {
			return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to delete user")
		}
		if result.RowsAffected == 0 {
			return errors.NotFound(errors.EntityUser, id)
		}
		return nil
	})
}

func (r *GormUserRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, errors.ErrCodeInternalError, "failed to check user")
	}
	return count > 0, nil
}

// AddFriend checks both users and inserts the edge in one transaction so a
// concurrent Delete cannot leave a dangling edge behind.
func (r *GormUserRepository) AddFriend(ctx context.Context, userID, friendID uint) error {
	if userID == friendID {
		return errors.InvalidArgument("user can't be friends with themselves")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var found []uint
		if err := tx.Model(&models.User{}).Where("id IN ?", []uint{userID, friendID}).
			Pluck("id", &found).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to check users")
		}
		for _, id := range []uint{userID, friendID} {
			if !containsID(found, id) {
				return errors.NotFound(errors.EntityUser, id)
			}
		}

		edge := models.NewFriendship(userID, friendID)
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to add friend")
		}
		return nil
	})
}

func (r *GormUserRepository) RemoveFriend(ctx context.Context, userID, friendID uint) error {
	edge := models.NewFriendship(userID, friendID)
	err := r.db.WithContext(ctx).
		Where("user_low_id = ? AND user_high_id = ?", edge.UserLowID, edge.UserHighID).
		Delete(&models.Friendship{}).Error
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to remove friend")
	}
	return nil
}

func (r *GormUserRepository) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	db := r.db.WithContext(ctx)
	ids, err := friendIDs(db, userID)
	if err != nil {
		return nil, err
	}
	return usersByIDs(db, ids)
}

// GetMutualFriends intersects the two friend sets in Go; set operator
// precedence differs between the supported databases.
func (r *GormUserRepository) GetMutualFriends(ctx context.Context, userID, otherID uint) ([]models.User, error) {
	db := r.db.WithContext(ctx)
	left, err := friendIDs(db, userID)
	if err != nil {
		return nil, err
	}
	right, err := friendIDs(db, otherID)
	if err != nil {
		return nil, err
	}
	return usersByIDs(db, intersectIDs(left, right))
}

func friendIDs(db *gorm.DB, userID uint) ([]uint, error) {
	var ids []uint
	err := db.Raw(
		`SELECT user_high_id FROM friendships WHERE user_low_id = ?
		 UNION
		 SELECT user_low_id FROM friendships WHERE user_high_id = ?`,
		userID, userID,
	).Scan(&ids).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get friends")
	}
	return ids, nil
}

func usersByIDs(db *gorm.DB, ids []uint) ([]models.User, error) {
	users := make([]models.User, 0, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	if err := db.Where("id IN ?", ids).Order("id").Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to load users")
	}
	return users, nil
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Ensure interface is satisfied at compile time.
var _ UserRepository = (*GormUserRepository)(nil)
