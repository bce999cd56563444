package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/bloodlink-registry/apperrors"
	"github.com/bloodlink-registry/models"
)

// InMemoryUserRepository keeps users in memory. Uniqueness is checked and the
// write applied under one lock, matching the database's unique indexes.
type InMemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

// NewInMemoryUserRepository creates an empty in-memory user repository
func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users: make(map[string]models.User),
	}
}

func (r *InMemoryUserRepository) FindByID(_ context.Context, id string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, exists := r.users[id]
	if !exists {
		return models.User{}, ErrNotFound
	}
	return cloneUser(user), nil
}

func (r *InMemoryUserRepository) FindByUsername(_ context.Context, username string) (models.User, error) {
	return r.findBy(func(u models.User) bool { return u.Username == username })
}

func (r *InMemoryUserRepository) FindByEmail(_ context.Context, email string) (models.User, error) {
	return r.findBy(func(u models.User) bool { return u.Email == email })
}

func (r *InMemoryUserRepository) FindByPhone(_ context.Context, phone string) (models.User, error) {
	return r.findBy(func(u models.User) bool { return u.Phone == phone })
}

func (r *InMemoryUserRepository) findBy(match func(models.User) bool) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if match(user) {
			return cloneUser(user), nil
		}
	}
	return models.User{}, ErrNotFound
}

func (r *InMemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := user.BeforeCreate(nil); err != nil {
		return err
	}
	if err := r.checkUnique(user); err != nil {
		return err
	}

	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	r.users[user.ID] = cloneUser(*user)
	return nil
}

func (r *InMemoryUserRepository) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.users[user.ID]
	if !exists {
		return ErrNotFound
	}
	if err := r.checkUnique(user); err != nil {
		return err
	}

	user.CreatedAt = existing.CreatedAt
	user.UpdatedAt = time.Now()
	r.users[user.ID] = cloneUser(*user)
	return nil
}

// checkUnique must be called with the write lock held
func (r *InMemoryUserRepository) checkUnique(user *models.User) error {
	conflicts := apperrors.FieldErrors{}
	for id, other := range r.users {
		if id == user.ID {
			continue
		}
		if other.Username == user.Username {
			conflicts.Add("username", MsgUsernameTaken)
		}
		if other.Email == user.Email {
			conflicts.Add("email", MsgUserEmailTaken)
		}
		if other.Phone == user.Phone {
			conflicts.Add("phone", MsgUserPhoneTaken)
		}
	}
	if len(conflicts) > 0 {
		return &apperrors.ConflictError{Fields: conflicts}
	}
	return nil
}

func (r *InMemoryUserRepository) exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.users[id]
	return ok
}

func cloneUser(u models.User) models.User {
	if u.AvatarPath != nil {
		path := *u.AvatarPath
		u.AvatarPath = &path
	}
	u.Profile = nil
	return u
}
