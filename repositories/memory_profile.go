package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/bloodlink-registry/models"
)

// InMemoryProfileRepository keeps profiles in memory, keyed by owning user
type InMemoryProfileRepository struct {
	mu       sync.Mutex
	users    *InMemoryUserRepository
	profiles map[string]models.Profile
}

// NewInMemoryProfileRepository creates an empty profile repository whose
// owners must exist in users
func NewInMemoryProfileRepository(users *InMemoryUserRepository) *InMemoryProfileRepository {
	return &InMemoryProfileRepository{
		users:    users,
		profiles: make(map[string]models.Profile),
	}
}

func (r *InMemoryProfileRepository) FindByUserID(_ context.Context, userID string) (models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, exists := r.profiles[userID]
	if !exists {
		return models.Profile{}, ErrNotFound
	}
	return profile, nil
}

func (r *InMemoryProfileRepository) Upsert(_ context.Context, profile *models.Profile) error {
	if !r.users.exists(profile.UserID) {
		return ErrMissingOwner
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if existing, exists := r.profiles[profile.UserID]; exists {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
	} else {
		if err := profile.BeforeCreate(nil); err != nil {
			return err
		}
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	r.profiles[profile.UserID] = *profile
	return nil
}
