package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Hospital is a partner hospital in the directory, keyed by its registration number
type Hospital struct {
	ID         string    `json:"id" gorm:"primaryKey;type:uuid"`
	Name       string    `json:"name" gorm:"size:64;not null;uniqueIndex:uq_hospitals_name"`
	HRN        string    `json:"hrn" gorm:"column:hrn;size:32;not null;uniqueIndex:uq_hospitals_hrn"`
	ImagePath  *string   `json:"imagePath,omitempty" gorm:"size:256;default:null"`
	Address    string    `json:"address" gorm:"size:120;not null"`
	CityOrTown string    `json:"cityOrTown" gorm:"size:100;not null"`
	State      string    `json:"state" gorm:"size:100;not null"`
	ZipCode    string    `json:"zipCode" gorm:"size:10;not null"`
	Phone      string    `json:"phone" gorm:"size:10;not null;uniqueIndex:uq_hospitals_phone"`
	Email      string    `json:"email" gorm:"size:120;not null;uniqueIndex:uq_hospitals_email"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// BeforeCreate assigns the identifier before the row is inserted
func (h *Hospital) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}
