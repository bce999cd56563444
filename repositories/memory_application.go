package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bloodlink-registry/models"
)

// InMemoryApplicationRepository keeps donor applications in memory
type InMemoryApplicationRepository struct {
	mu           sync.RWMutex
	users        *InMemoryUserRepository
	applications map[string]models.DonorApplication
}

// NewInMemoryApplicationRepository creates an empty application repository whose
// applicants must exist in users
func NewInMemoryApplicationRepository(users *InMemoryUserRepository) *InMemoryApplicationRepository {
	return &InMemoryApplicationRepository{
		users:        users,
		applications: make(map[string]models.DonorApplication),
	}
}

func (r *InMemoryApplicationRepository) Create(_ context.Context, application *models.DonorApplication) error {
	if !r.users.exists(application.UserID) {
		return ErrMissingOwner
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := application.BeforeCreate(nil); err != nil {
		return err
	}
	application.UpdatedAt = time.Now()
	stored := *application
	stored.Applicant = nil
	r.applications[application.ID] = stored
	return nil
}

func (r *InMemoryApplicationRepository) FindByID(ctx context.Context, id string) (models.DonorApplication, error) {
	r.mu.RLock()
	application, exists := r.applications[id]
	r.mu.RUnlock()
	if !exists {
		return models.DonorApplication{}, ErrNotFound
	}
	return r.withApplicant(ctx, application), nil
}

func (r *InMemoryApplicationRepository) FindByUserID(_ context.Context, userID string) ([]models.DonorApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	applications := make([]models.DonorApplication, 0)
	for _, a := range r.applications {
		if a.UserID == userID {
			applications = append(applications, a)
		}
	}
	sort.Slice(applications, func(i, j int) bool {
		return applications[i].SubmittedAt.After(applications[j].SubmittedAt)
	})
	return applications, nil
}

func (r *InMemoryApplicationRepository) FindAll(ctx context.Context, status *models.ApplicationStatus) ([]models.DonorApplication, error) {
	r.mu.RLock()
	applications := make([]models.DonorApplication, 0, len(r.applications))
	for _, a := range r.applications {
		if status == nil || a.Status == *status {
			applications = append(applications, a)
		}
	}
	r.mu.RUnlock()

	sort.Slice(applications, func(i, j int) bool {
		return applications[i].SubmittedAt.Before(applications[j].SubmittedAt)
	})
	for i := range applications {
		applications[i] = r.withApplicant(ctx, applications[i])
	}
	return applications, nil
}

func (r *InMemoryApplicationRepository) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) (models.DonorApplication, error) {
	r.mu.Lock()
	application, exists := r.applications[id]
	if !exists {
		r.mu.Unlock()
		return models.DonorApplication{}, ErrNotFound
	}
	application.Status = status
	application.UpdatedAt = time.Now()
	r.applications[id] = application
	r.mu.Unlock()

	return r.withApplicant(ctx, application), nil
}

func (r *InMemoryApplicationRepository) withApplicant(ctx context.Context, a models.DonorApplication) models.DonorApplication {
	if user, err := r.users.FindByID(ctx, a.UserID); err == nil {
		a.Applicant = &user
	}
	return a
}
