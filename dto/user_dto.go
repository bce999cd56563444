package dto

// UpdateAccountRequest is the explicit edit path for a user's unique identity fields
type UpdateAccountRequest struct {
	Username string `json:"username" validate:"required,max=64,excludesall=/"`
	Email    string `json:"email" validate:"required,email,max=120"`
	Phone    string `json:"phone" validate:"required,number,max=10"`
}

// ChangePasswordRequest replaces the password of the acting user
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
	NewPassword2    string `json:"newPassword2" validate:"required,eqfield=NewPassword"`
}

// FileUpload is an uploaded file as declared by the client
type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Image is stored or generated image content ready to be served
type Image struct {
	ContentType string
	Data        []byte
}
