package services

import (
	"testing"

	"github.com/bloodlink-registry/dto"
	"github.com/bloodlink-registry/repositories"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hospitalRequest(name, hrn, phone, email string) dto.HospitalRequest {
	return dto.HospitalRequest{
		Name:       name,
		HRN:        hrn,
		Address:    "1 Care Rd",
		CityOrTown: "Springfield",
		State:      "IL",
		ZipCode:    "62701",
		Phone:      phone,
		Email:      email,
	}
}

func TestAdminResubmitsOwnHRN(t *testing.T) {
	env := newTestEnv(t)
	admin := env.admin(t)

	created, err := env.hospitalService.Create(env.ctx, admin, hospitalRequest("General", "H-001", "5550000001", "general@h.org"), nil)
	require.NoError(t, err)

	updated, err := env.hospitalService.Update(env.ctx, admin, "H-001", hospitalRequest("General", "H-001", "5550000099", "general@h.org"), nil)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "5550000099", updated.Phone)

	stored, err := env.hospitalService.Get(env.ctx, "H-001")
	require.NoError(t, err)
	assert.Equal(t, "5550000099", stored.Phone)

	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.HospitalWritesTotal.WithLabelValues("create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.HospitalWritesTotal.WithLabelValues("update")))
}

func TestHospitalConflictsWithOthers(t *testing.T) {
	env := newTestEnv(t)
	admin := env.admin(t)

	_, err := env.hospitalService.Create(env.ctx, admin, hospitalRequest("General", "H-001", "5550000001", "general@h.org"), nil)
	require.NoError(t, err)
	_, err = env.hospitalService.Create(env.ctx, admin, hospitalRequest("Children's", "H-002", "5550000002", "kids@h.org"), nil)
	require.NoError(t, err)

	_, err = env.hospitalService.Create(env.ctx, admin, hospitalRequest("General", "H-001", "5550000003", "new@h.org"), nil)
	fields := requireConflictError(t, err)
	assert.Equal(t, repositories.MsgHospitalNameTaken, fields["name"])
	assert.Equal(t, repositories.MsgHRNTaken, fields["hrn"])

	// Renaming H-002 onto H-001's registration number
	_, err = env.hospitalService.Update(env.ctx, admin, "H-002", hospitalRequest("Children's", "H-001", "5550000002", "kids@h.org"), nil)
	fields = requireConflictError(t, err)
	assert.Equal(t, repositories.MsgHRNTaken, fields["hrn"])

	list, err := env.hospitalService.List(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, list.TotalCount)
}

func TestHospitalWritesRequireAdmin(t *testing.T) {
	env := newTestEnv(t)
	alice := env.register(t, "alice", "alice@x.com", "5551234567")

	_, err := env.hospitalService.Create(env.ctx, alice.Actor(), hospitalRequest("General", "H-001", "5550000001", "general@h.org"), nil)
	assert.False(t, requireAuthorizationError(t, err).Unauthenticated)

	list, err := env.hospitalService.List(env.ctx)
	require.NoError(t, err)
	assert.Empty(t, list.Hospitals)
}

func TestHospitalValidation(t *testing.T) {
	env := newTestEnv(t)
	admin := env.admin(t)

	req := hospitalRequest("", "H-001", "phone", "bad")
	_, err := env.hospitalService.Create(env.ctx, admin, req, &dto.FileUpload{
		Filename: "front.png", ContentType: "text/plain", Data: []byte("x"),
	})
	fields := requireValidationError(t, err)
	assert.Equal(t, "This field is required.", fields["name"])
	assert.Equal(t, "Field must contain digits only.", fields["phone"])
	assert.Equal(t, "Invalid email address.", fields["email"])
	assert.Equal(t, "File must be a JPEG or PNG image.", fields["image"])
}

func TestHospitalImage(t *testing.T) {
	env := newTestEnv(t)
	admin := env.admin(t)

	_, err := env.hospitalService.Create(env.ctx, admin, hospitalRequest("General", "H-001", "5550000001", "general@h.org"), nil)
	require.NoError(t, err)
	_, err = env.hospitalService.Image(env.ctx, "H-001")
	requireNotFoundError(t, err)

	updated, err := env.hospitalService.Update(env.ctx, admin, "H-001",
		hospitalRequest("General", "H-001", "5550000001", "general@h.org"),
		&dto.FileUpload{Filename: "front.jpg", ContentType: "image/jpeg", Data: []byte("jpeg-bytes")})
	require.NoError(t, err)
	require.NotNil(t, updated.ImagePath)
	assert.Regexp(t, `^hospitals/.+\.jpg$`, *updated.ImagePath)

	img, err := env.hospitalService.Image(env.ctx, "H-001")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", img.ContentType)
	assert.Equal(t, []byte("jpeg-bytes"), img.Data)
}

func TestUnknownHospital(t *testing.T) {
	env := newTestEnv(t)
	admin := env.admin(t)

	_, err := env.hospitalService.Get(env.ctx, "H-404")
	requireNotFoundError(t, err)

	_, err = env.hospitalService.Update(env.ctx, admin, "H-404", hospitalRequest("X", "H-404", "5550000001", "x@h.org"), nil)
	requireNotFoundError(t, err)
}
