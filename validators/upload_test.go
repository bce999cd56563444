package validators

import (
	"testing"

	"github.com/bloodlink-registry/dto"
	"github.com/stretchr/testify/assert"
)

func TestValidateUpload(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}

	tests := []struct {
		name    string
		upload  *dto.FileUpload
		wantErr string
	}{
		{"absent upload is fine", nil, ""},
		{"png", &dto.FileUpload{Filename: "me.png", ContentType: "image/png", Data: png}, ""},
		{"extension is case insensitive", &dto.FileUpload{Filename: "ME.JPEG", ContentType: "image/jpeg", Data: png}, ""},
		{"content type parameters ignored", &dto.FileUpload{Filename: "a.jpg", ContentType: "image/jpeg; q=1", Data: png}, ""},
		{"no extension", &dto.FileUpload{Filename: "avatar", ContentType: "image/png", Data: png},
			"File must have one of the following extensions: jpg, jpeg, png"},
		{"wrong extension", &dto.FileUpload{Filename: "avatar.gif", ContentType: "image/png", Data: png},
			"File must have one of the following extensions: jpg, jpeg, png"},
		{"wrong declared type", &dto.FileUpload{Filename: "avatar.png", ContentType: "text/html", Data: png},
			"File must be a JPEG or PNG image."},
		{"missing declared type", &dto.FileUpload{Filename: "avatar.png", Data: png},
			"File must be a JPEG or PNG image."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpload(tt.upload, ImagePolicy)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestValidateUploadTrustsDeclaredType(t *testing.T) {
	// Declared type wins even when the bytes are not an image
	upload := &dto.FileUpload{Filename: "script.png", ContentType: "image/png", Data: []byte("<script>")}
	assert.NoError(t, ValidateUpload(upload, ImagePolicy))
}

func TestValidateUploadSize(t *testing.T) {
	policy := UploadPolicy{Extensions: []string{"png"}, MIMETypes: []string{"image/png"}, MaxBytes: 4}

	assert.NoError(t, ValidateUpload(&dto.FileUpload{Filename: "a.png", ContentType: "image/png", Data: make([]byte, 4)}, policy))
	assert.EqualError(t,
		ValidateUpload(&dto.FileUpload{Filename: "a.png", ContentType: "image/png", Data: make([]byte, 5)}, policy),
		"File must not exceed 4 bytes.")
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "png", Extension("a.b.PNG"))
	assert.Equal(t, "", Extension("noext"))
	assert.Equal(t, "", Extension("trailing."))
}
