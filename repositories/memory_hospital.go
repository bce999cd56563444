package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bloodlink-registry/apperrors"
	"github.com/bloodlink-registry/models"
)

// InMemoryHospitalRepository keeps the hospital directory in memory
type InMemoryHospitalRepository struct {
	mu        sync.RWMutex
	hospitals map[string]models.Hospital
}

// NewInMemoryHospitalRepository creates an empty in-memory hospital repository
func NewInMemoryHospitalRepository() *InMemoryHospitalRepository {
	return &InMemoryHospitalRepository{
		hospitals: make(map[string]models.Hospital),
	}
}

func (r *InMemoryHospitalRepository) FindAll(_ context.Context) ([]models.Hospital, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	hospitals := make([]models.Hospital, 0, len(r.hospitals))
	for _, h := range r.hospitals {
		hospitals = append(hospitals, cloneHospital(h))
	}
	sort.Slice(hospitals, func(i, j int) bool {
		if hospitals[i].Name != hospitals[j].Name {
			return hospitals[i].Name < hospitals[j].Name
		}
		return hospitals[i].ID < hospitals[j].ID
	})
	return hospitals, nil
}

func (r *InMemoryHospitalRepository) FindByID(_ context.Context, id string) (models.Hospital, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	hospital, exists := r.hospitals[id]
	if !exists {
		return models.Hospital{}, ErrNotFound
	}
	return cloneHospital(hospital), nil
}

func (r *InMemoryHospitalRepository) FindByHRN(_ context.Context, hrn string) (models.Hospital, error) {
	return r.findBy(func(h models.Hospital) bool { return h.HRN == hrn })
}

func (r *InMemoryHospitalRepository) FindByName(_ context.Context, name string) (models.Hospital, error) {
	return r.findBy(func(h models.Hospital) bool { return h.Name == name })
}

func (r *InMemoryHospitalRepository) FindByPhone(_ context.Context, phone string) (models.Hospital, error) {
	return r.findBy(func(h models.Hospital) bool { return h.Phone == phone })
}

func (r *InMemoryHospitalRepository) FindByEmail(_ context.Context, email string) (models.Hospital, error) {
	return r.findBy(func(h models.Hospital) bool { return h.Email == email })
}

func (r *InMemoryHospitalRepository) findBy(match func(models.Hospital) bool) (models.Hospital, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, h := range r.hospitals {
		if match(h) {
			return cloneHospital(h), nil
		}
	}
	return models.Hospital{}, ErrNotFound
}

func (r *InMemoryHospitalRepository) Create(_ context.Context, hospital *models.Hospital) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := hospital.BeforeCreate(nil); err != nil {
		return err
	}
	if err := r.checkUnique(hospital); err != nil {
		return err
	}

	now := time.Now()
	hospital.CreatedAt, hospital.UpdatedAt = now, now
	r.hospitals[hospital.ID] = cloneHospital(*hospital)
	return nil
}

func (r *InMemoryHospitalRepository) Update(_ context.Context, hospital *models.Hospital) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.hospitals[hospital.ID]
	if !exists {
		return ErrNotFound
	}
	if err := r.checkUnique(hospital); err != nil {
		return err
	}

	hospital.CreatedAt = existing.CreatedAt
	hospital.UpdatedAt = time.Now()
	r.hospitals[hospital.ID] = cloneHospital(*hospital)
	return nil
}

// checkUnique must be called with the write lock held
func (r *InMemoryHospitalRepository) checkUnique(hospital *models.Hospital) error {
	conflicts := apperrors.FieldErrors{}
	for id, other := range r.hospitals {
		if id == hospital.ID {
			continue
		}
		if other.Name == hospital.Name {
			conflicts.Add("name", MsgHospitalNameTaken)
		}
		if other.HRN == hospital.HRN {
			conflicts.Add("hrn", MsgHRNTaken)
		}
		if other.Phone == hospital.Phone {
			conflicts.Add("phone", MsgHospitalPhoneTaken)
		}
		if other.Email == hospital.Email {
			conflicts.Add("email", MsgHospitalEmailTaken)
		}
	}
	if len(conflicts) > 0 {
		return &apperrors.ConflictError{Fields: conflicts}
	}
	return nil
}

func cloneHospital(h models.Hospital) models.Hospital {
	if h.ImagePath != nil {
		path := *h.ImagePath
		h.ImagePath = &path
	}
	return h
}
