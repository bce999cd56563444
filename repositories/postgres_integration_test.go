//go:build integration

package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bloodlink-registry/apperrors"
	"github.com/bloodlink-registry/models"
	"github.com/bloodlink-registry/testutil/containers"
	"github.com/stretchr/testify/suite"
)

type PostgresRepositorySuite struct {
	suite.Suite
	ctx          context.Context
	pg           *containers.PostgresContainer
	users        *GormUserRepository
	profiles     *GormProfileRepository
	hospitals    *GormHospitalRepository
	applications *GormApplicationRepository
}

func TestPostgresRepositorySuite(t *testing.T) {
	suite.Run(t, new(PostgresRepositorySuite))
}

func (s *PostgresRepositorySuite) SetupSuite() {
	s.ctx = context.Background()
	s.pg = containers.NewPostgresContainer(s.T())
	s.users = NewUserRepository(s.pg.DB)
	s.profiles = NewProfileRepository(s.pg.DB)
	s.hospitals = NewHospitalRepository(s.pg.DB)
	s.applications = NewApplicationRepository(s.pg.DB)
}

func (s *PostgresRepositorySuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate(s.ctx))
}

func (s *PostgresRepositorySuite) createUser(username, email, phone string) *models.User {
	user := &models.User{Username: username, Email: email, Phone: phone, PasswordHash: "hash"}
	s.Require().NoError(s.users.Create(s.ctx, user))
	return user
}

func (s *PostgresRepositorySuite) TestUniqueIndexesReportTheField() {
	s.createUser("alice", "alice@x.com", "5551234567")

	err := s.users.Create(s.ctx, &models.User{Username: "alice", Email: "b@x.com", Phone: "5550000000", PasswordHash: "h"})
	var conflict *apperrors.ConflictError
	s.Require().True(errors.As(err, &conflict))
	s.Equal(MsgUsernameTaken, conflict.Fields["username"])

	err = s.users.Create(s.ctx, &models.User{Username: "bob", Email: "alice@x.com", Phone: "5550000000", PasswordHash: "h"})
	s.Require().True(errors.As(err, &conflict))
	s.Equal(MsgUserEmailTaken, conflict.Fields["email"])
}

func (s *PostgresRepositorySuite) TestConcurrentRegistrationHasOneWinner() {
	const goroutines = 10
	var wg sync.WaitGroup
	var successes, conflicts atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := s.users.Create(s.ctx, &models.User{
				Username: "alice", Email: fmt.Sprintf("a%d@x.com", i),
				Phone: fmt.Sprintf("555%07d", i), PasswordHash: "h",
			})
			var conflict *apperrors.ConflictError
			switch {
			case err == nil:
				successes.Add(1)
			case errors.As(err, &conflict):
				conflicts.Add(1)
			}
		}(i)
	}
	wg.Wait()

	s.Equal(int32(1), successes.Load())
	s.Equal(int32(goroutines-1), conflicts.Load())
}

func (s *PostgresRepositorySuite) TestUserUpdate() {
	alice := s.createUser("alice", "alice@x.com", "5551234567")
	path := "avatars/alice.png"
	alice.AvatarPath = &path
	s.Require().NoError(s.users.Update(s.ctx, alice))

	stored, err := s.users.FindByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Require().NotNil(stored.AvatarPath)
	s.Equal(path, *stored.AvatarPath)

	s.ErrorIs(s.users.Update(s.ctx, &models.User{ID: "00000000-0000-0000-0000-000000000000", Username: "x"}), ErrNotFound)
}

func (s *PostgresRepositorySuite) TestProfileUpsertIsIdempotent() {
	alice := s.createUser("alice", "alice@x.com", "5551234567")
	profile := models.Profile{
		UserID: alice.ID, DOB: time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC),
		Gender: models.GenderFemale, BloodGroup: models.BloodGroupONegative,
		Address: "1 Main St", State: "CA", ZipCode: "94000",
	}

	first := profile
	s.Require().NoError(s.profiles.Upsert(s.ctx, &first))
	second := profile
	s.Require().NoError(s.profiles.Upsert(s.ctx, &second))
	s.Equal(first.ID, second.ID)

	var count int64
	s.Require().NoError(s.pg.DB.Model(&models.Profile{}).Where("user_id = ?", alice.ID).Count(&count).Error)
	s.Equal(int64(1), count)

	stored, err := s.profiles.FindByUserID(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Equal(models.BloodGroupONegative, stored.BloodGroup)
	s.Equal("1990-01-02", stored.DOB.Format("2006-01-02"))
}

func (s *PostgresRepositorySuite) TestProfileRequiresOwner() {
	err := s.profiles.Upsert(s.ctx, &models.Profile{
		UserID: "00000000-0000-0000-0000-000000000001", DOB: time.Now().AddDate(-20, 0, 0),
		Gender: models.GenderMale, BloodGroup: models.BloodGroupAPositive,
	})
	s.ErrorIs(err, ErrMissingOwner)
}

func (s *PostgresRepositorySuite) TestHospitalUpdateKeepsOwnHRN() {
	h := &models.Hospital{
		Name: "General", HRN: "H-001", Phone: "5550000001", Email: "general@h.org",
		Address: "1 Care Rd", CityOrTown: "Springfield", State: "IL", ZipCode: "62701",
	}
	s.Require().NoError(s.hospitals.Create(s.ctx, h))

	h.Address = "2 Care Rd"
	s.Require().NoError(s.hospitals.Update(s.ctx, h))

	stored, err := s.hospitals.FindByHRN(s.ctx, "H-001")
	s.Require().NoError(err)
	s.Equal("2 Care Rd", stored.Address)
}

func (s *PostgresRepositorySuite) TestApplicationLifecycle() {
	alice := s.createUser("alice", "alice@x.com", "5551234567")
	app := &models.DonorApplication{UserID: alice.ID, HeightCM: 170, WeightKG: 60, UIDN: "1234"}
	s.Require().NoError(s.applications.Create(s.ctx, app))
	s.Equal(models.ApplicationStatusPending, app.Status)

	pending := models.ApplicationStatusPending
	all, err := s.applications.FindAll(s.ctx, &pending)
	s.Require().NoError(err)
	s.Require().Len(all, 1)
	s.Require().NotNil(all[0].Applicant)
	s.Equal("alice", all[0].Applicant.Username)

	updated, err := s.applications.UpdateStatus(s.ctx, app.ID, models.ApplicationStatusRejected)
	s.Require().NoError(err)
	s.Equal(models.ApplicationStatusRejected, updated.Status)
}
