package validators

import (
	"fmt"
	"mime"
	"strings"

	"github.com/bloodlink-registry/dto"
)

// UploadPolicy whitelists what an uploaded file may be.
// The MIME check trusts the content type declared by the client.
type UploadPolicy struct {
	Extensions []string
	MIMETypes  []string
	MaxBytes   int64
}

// ImagePolicy accepts JPEG and PNG images up to 1 MiB
var ImagePolicy = UploadPolicy{
	Extensions: []string{"jpg", "jpeg", "png"},
	MIMETypes:  []string{"image/jpeg", "image/png"},
	MaxBytes:   1 * 1024 * 1024,
}

// ValidateUpload checks an optional upload against policy. A nil upload is valid.
func ValidateUpload(upload *dto.FileUpload, policy UploadPolicy) error {
	if upload == nil {
		return nil
	}

	if !contains(policy.Extensions, Extension(upload.Filename)) {
		return RuleError{"File must have one of the following extensions: " + strings.Join(policy.Extensions, ", ")}
	}

	mediaType, _, err := mime.ParseMediaType(upload.ContentType)
	if err != nil || !contains(policy.MIMETypes, strings.ToLower(mediaType)) {
		return RuleError{"File must be a JPEG or PNG image."}
	}

	if policy.MaxBytes > 0 && int64(len(upload.Data)) > policy.MaxBytes {
		return RuleError{fmt.Sprintf("File must not exceed %d bytes.", policy.MaxBytes)}
	}
	return nil
}

// Extension returns the lower-cased text after the last dot of filename, or ""
func Extension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}

func contains(list []string, value string) bool {
	if value == "" {
		return false
	}
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
