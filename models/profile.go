package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile holds the donor demographics of a user (1:1)
type Profile struct {
	ID         string     `json:"id" gorm:"primaryKey;type:uuid"`
	UserID     string     `json:"userId" gorm:"type:uuid;not null;uniqueIndex:uq_profiles_user_id"`
	DOB        time.Time  `json:"dob" gorm:"type:date;not null"`
	Gender     Gender     `json:"gender" gorm:"type:varchar(20);not null"`
	BloodGroup BloodGroup `json:"bloodGroup" gorm:"type:varchar(3);not null"`
	Address    string     `json:"address" gorm:"size:120;not null"`
	State      string     `json:"state" gorm:"size:100;not null"`
	ZipCode    string     `json:"zipCode" gorm:"size:10;not null"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// BeforeCreate assigns the identifier before the row is inserted
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
