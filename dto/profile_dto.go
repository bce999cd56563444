package dto

import "github.com/bloodlink-registry/models"

// DateLayout is the wire format of dates such as a profile's date of birth
const DateLayout = "2006-01-02"

// ProfileRequest represents the payload for creating or updating a donor profile
type ProfileRequest struct {
	DOB        string `json:"dob" validate:"required,datetime=2006-01-02,past_date"`
	Gender     string `json:"gender" validate:"required,gender"`
	BloodGroup string `json:"bloodGroup" validate:"required,blood_group"`
	Address    string `json:"address" validate:"required,max=120"`
	State      string `json:"state" validate:"required,max=100"`
	ZipCode    string `json:"zipCode" validate:"required,max=10"`
}

// ProfileResponse pairs a profile with the username that owns it
type ProfileResponse struct {
	Username string         `json:"username"`
	Profile  models.Profile `json:"profile"`
}
