package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DonorApplication is a request by a user to be accepted as a blood donor
type DonorApplication struct {
	ID          string            `json:"id" gorm:"primaryKey;type:uuid"`
	HeightCM    float64           `json:"heightCm" gorm:"not null"`
	WeightKG    float64           `json:"weightKg" gorm:"not null"`
	Habits      string            `json:"habits" gorm:"size:256"`
	UIDN        string            `json:"uidn" gorm:"column:uidn;size:4;not null"`
	Status      ApplicationStatus `json:"status" gorm:"type:varchar(10);not null;default:'PENDING'"`
	SubmittedAt time.Time         `json:"submittedAt" gorm:"index;not null"`
	UserID      string            `json:"userId" gorm:"type:uuid;not null;index"`
	UpdatedAt   time.Time         `json:"updatedAt"`

	// Relations
	Applicant *User `json:"applicant,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
}

// BeforeCreate assigns the identifier, submission time and initial status
func (a *DonorApplication) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.SubmittedAt.IsZero() {
		a.SubmittedAt = time.Now().UTC()
	}
	if a.Status == "" {
		a.Status = ApplicationStatusPending
	}
	return nil
}
