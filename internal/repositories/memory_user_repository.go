package repositories

import (
	"context"
	"sync"

	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/pkg/errors"
)

// MemoryUserRepository keeps users and friendships in process memory.
//
// The canonical edge set is the source of truth for friendships; adjacency is
// an index over it. Both are only changed through addEdge and removeEdge while
// mu is held, so readers never see one direction without the other.
type MemoryUserRepository struct {
	mu        sync.RWMutex
	nextID    uint
	users     map[uint]models.User
	edges     map[models.Friendship]struct{}
	adjacency map[uint]map[uint]struct{}
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users:     make(map[uint]models.User),
		edges:     make(map[models.Friendship]struct{}),
		adjacency: make(map[uint]map[uint]struct{}),
	}
}

// Create stores a new user under the next sequence value
func (r *MemoryUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) Get(ctx context.Context, id uint) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound(errors.EntityUser, id)
	}
	return &user, nil
}

func (r *MemoryUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]uint, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	return r.usersByIDs(ids), nil
}

// Update replaces the stored record
func (r *MemoryUserRepository) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return errors.NotFound(errors.EntityUser, user.ID)
	}
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return errors.NotFound(errors.EntityUser, id)
	}
	for friendID := range r.adjacency[id] {
		r.removeEdge(models.NewFriendship(id, friendID))
	}
	delete(r.adjacency, id)
	delete(r.users, id)
	return nil
}

func (r *MemoryUserRepository) Exists(ctx context.Context, id uint) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.users[id]
	return ok, nil
}

// AddFriend re-checks both users under the write lock so a concurrent Delete
// cannot leave a dangling edge behind.
func (r *MemoryUserRepository) AddFriend(ctx context.Context, userID, friendID uint) error {
	if userID == friendID {
		return errors.InvalidArgument("user can't be friends with themselves")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range []uint{userID, friendID} {
		if _, ok := r.users[id]; !ok {
			return errors.NotFound(errors.EntityUser, id)
		}
	}
	r.addEdge(models.NewFriendship(userID, friendID))
	return nil
}

func (r *MemoryUserRepository) RemoveFriend(ctx context.Context, userID, friendID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.removeEdge(models.NewFriendship(userID, friendID))
	return nil
}

func (r *MemoryUserRepository) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.usersByIDs(r.friendIDs(userID)), nil
}

func (r *MemoryUserRepository) GetMutualFriends(ctx context.Context, userID, otherID uint) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := intersectIDs(r.friendIDs(userID), r.friendIDs(otherID))
	return r.usersByIDs(ids), nil
}

// friendIDs must be called with r.mu held.
func (r *MemoryUserRepository) friendIDs(userID uint) []uint {
	friends := r.adjacency[userID]
	ids := make([]uint, 0, len(friends))
	for id := range friends {
		ids = append(ids, id)
	}
	return ids
}

func (r *MemoryUserRepository) addEdge(edge models.Friendship) {
	r.edges[edge] = struct{}{}
	r.link(edge.UserLowID, edge.UserHighID)
	r.link(edge.UserHighID, edge.UserLowID)
}

func (r *MemoryUserRepository) removeEdge(edge models.Friendship) {
	if _, ok := r.edges[edge]; !ok {
		return
	}
	delete(r.edges, edge)
	r.unlink(edge.UserLowID, edge.UserHighID)
	r.unlink(edge.UserHighID, edge.UserLowID)
}

func (r *MemoryUserRepository) link(from, to uint) {
	set, ok := r.adjacency[from]
	if !ok {
		set = make(map[uint]struct{})
		r.adjacency[from] = set
	}
	set[to] = struct{}{}
}

func (r *MemoryUserRepository) unlink(from, to uint) {
	set := r.adjacency[from]
	delete(set, to)
	if len(set) == 0 {
		delete(r.adjacency, from)
	}
}

// usersByIDs must be called with mu held.
func (r *MemoryUserRepository) usersByIDs(ids []uint) []models.User {
	sortIDs(ids)
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			users = append(users, user)
		}
	}
	return users
}

// Ensure interface is satisfied at compile time.
var _ UserRepository = (*MemoryUserRepository)(nil)
