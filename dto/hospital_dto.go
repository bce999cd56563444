package dto

import "github.com/bloodlink-registry/models"

// HospitalRequest represents the payload for creating or editing a hospital.
// It binds from JSON and from multipart forms (when an image is attached).
type HospitalRequest struct {
	Name       string `json:"name" form:"name" validate:"required,max=64"`
	HRN        string `json:"hrn" form:"hrn" validate:"required,max=32,excludesall=/"`
	Address    string `json:"address" form:"address" validate:"required,max=120"`
	CityOrTown string `json:"cityOrTown" form:"cityOrTown" validate:"required,max=100"`
	State      string `json:"state" form:"state" validate:"required,max=100"`
	ZipCode    string `json:"zipCode" form:"zipCode" validate:"required,max=10"`
	Phone      string `json:"phone" form:"phone" validate:"required,number,max=10"`
	Email      string `json:"email" form:"email" validate:"required,email,max=120"`
}

// HospitalListResponse represents the hospital directory listing
type HospitalListResponse struct {
	Hospitals  []models.Hospital `json:"hospitals"`
	TotalCount int               `json:"totalCount"`
}
