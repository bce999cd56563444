package dto

import "github.com/bloodlink-registry/models"

// ApplicationRequest represents a donor application submission
type ApplicationRequest struct {
	HeightCM float64 `json:"heightCm" validate:"required,gt=0,lte=300"`
	WeightKG float64 `json:"weightKg" validate:"required,gt=0,lte=500"`
	Habits   string  `json:"habits" validate:"max=256"`
	UIDN     string  `json:"uidn" validate:"required,len=4"`
}

// ApplicationStatusRequest represents an admin review decision
type ApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,application_status"`
}

// ApplicationListResponse represents a list of donor applications
type ApplicationListResponse struct {
	Applications []models.DonorApplication `json:"applications"`
	TotalCount   int                       `json:"totalCount"`
}
