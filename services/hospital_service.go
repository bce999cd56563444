package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bloodlink-registry/dto"
	"github.com/bloodlink-registry/metrics"
	"github.com/bloodlink-registry/models"
	"github.com/bloodlink-registry/policy"
	"github.com/bloodlink-registry/repositories"
	"github.com/bloodlink-registry/storage"
	"github.com/bloodlink-registry/validators"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HospitalService handles the hospital directory
type HospitalService struct {
	hospitals    repositories.HospitalRepository
	files        storage.FileStore
	uploadPolicy validators.UploadPolicy
	metrics      *metrics.Metrics
	log          *zap.Logger
}

// NewHospitalService creates a new hospital service instance
func NewHospitalService(hospitals repositories.HospitalRepository, files storage.FileStore, uploadPolicy validators.UploadPolicy, m *metrics.Metrics, log *zap.Logger) *HospitalService {
	return &HospitalService{hospitals: hospitals, files: files, uploadPolicy: uploadPolicy, metrics: m, log: log}
}

// List returns every hospital ordered by name
func (s *HospitalService) List(ctx context.Context) (dto.HospitalListResponse, error) {
	hospitals, err := s.hospitals.FindAll(ctx)
	if err != nil {
		return dto.HospitalListResponse{}, fmt.Errorf("failed to list hospitals: %w", err)
	}
	return dto.HospitalListResponse{Hospitals: hospitals, TotalCount: len(hospitals)}, nil
}

// Get retrieves a hospital by its registration number
func (s *HospitalService) Get(ctx context.Context, hrn string) (models.Hospital, error) {
	hospital, err := s.hospitals.FindByHRN(ctx, hrn)
	if err != nil {
		return models.Hospital{}, notFound(err, "hospital", hrn)
	}
	return hospital, nil
}

// Create adds a hospital to the directory. Administrators only.
func (s *HospitalService) Create(ctx context.Context, actor models.Actor, req dto.HospitalRequest, image *dto.FileUpload) (models.Hospital, error) {
	if err := policy.CanManageHospitals(actor); err != nil {
		return models.Hospital{}, err
	}
	if err := s.validate(ctx, "", req, image); err != nil {
		return models.Hospital{}, err
	}

	hospital := models.Hospital{}
	applyHospitalRequest(&hospital, req)
	if err := s.storeImage(ctx, &hospital, image); err != nil {
		return models.Hospital{}, err
	}

	if err := s.hospitals.Create(ctx, &hospital); err != nil {
		s.logOrphan(image, hospital.ImagePath, err)
		return models.Hospital{}, err
	}

	s.metrics.IncrementHospitalWrites("create")
	s.log.Info("hospital created", zap.String("hospital_id", hospital.ID), zap.String("hrn", hospital.HRN))
	return hospital, nil
}

// Update edits the hospital currently registered as hrn. Administrators only.
// The hospital's own name, HRN, phone and email never count as conflicts.
func (s *HospitalService) Update(ctx context.Context, actor models.Actor, hrn string, req dto.HospitalRequest, image *dto.FileUpload) (models.Hospital, error) {
	if err := policy.CanManageHospitals(actor); err != nil {
		return models.Hospital{}, err
	}
	hospital, err := s.Get(ctx, hrn)
	if err != nil {
		return models.Hospital{}, err
	}
	if err := s.validate(ctx, hospital.ID, req, image); err != nil {
		return models.Hospital{}, err
	}

	applyHospitalRequest(&hospital, req)
	if err := s.storeImage(ctx, &hospital, image); err != nil {
		return models.Hospital{}, err
	}

	if err := s.hospitals.Update(ctx, &hospital); err != nil {
		s.logOrphan(image, hospital.ImagePath, err)
		if errors.Is(err, repositories.ErrNotFound) {
			return models.Hospital{}, notFound(err, "hospital", hrn)
		}
		return models.Hospital{}, err
	}

	s.metrics.IncrementHospitalWrites("update")
	s.log.Info("hospital updated", zap.String("hospital_id", hospital.ID), zap.String("hrn", hospital.HRN))
	return hospital, nil
}

// Image returns the uploaded image of a hospital
func (s *HospitalService) Image(ctx context.Context, hrn string) (dto.Image, error) {
	hospital, err := s.Get(ctx, hrn)
	if err != nil {
		return dto.Image{}, err
	}
	if hospital.ImagePath == nil {
		return dto.Image{}, notFound(repositories.ErrNotFound, "hospital image", hrn)
	}

	data, err := s.files.Open(ctx, *hospital.ImagePath)
	if errors.Is(err, storage.ErrNotExist) {
		return dto.Image{}, notFound(repositories.ErrNotFound, "hospital image", hrn)
	}
	if err != nil {
		return dto.Image{}, fmt.Errorf("failed to read hospital image: %w", err)
	}
	return dto.Image{ContentType: imageContentType(*hospital.ImagePath), Data: data}, nil
}

// validate collects format, upload and uniqueness errors of one submission.
// excludeID is the id of the hospital being edited, empty on create.
func (s *HospitalService) validate(ctx context.Context, excludeID string, req dto.HospitalRequest, image *dto.FileUpload) error {
	fields := validators.ValidateStruct(req)
	if err := validators.ValidateUpload(image, s.uploadPolicy); err != nil {
		fields.Add("image", err.Error())
	}

	conflicts, err := validators.CheckUnique(ctx, excludeID,
		validators.UniqueRule{Field: "name", Value: req.Name, Message: repositories.MsgHospitalNameTaken, Lookup: hospitalLookup(s.hospitals.FindByName)},
		validators.UniqueRule{Field: "hrn", Value: req.HRN, Message: repositories.MsgHRNTaken, Lookup: hospitalLookup(s.hospitals.FindByHRN)},
		validators.UniqueRule{Field: "phone", Value: req.Phone, Message: repositories.MsgHospitalPhoneTaken, Lookup: hospitalLookup(s.hospitals.FindByPhone)},
		validators.UniqueRule{Field: "email", Value: req.Email, Message: repositories.MsgHospitalEmailTaken, Lookup: hospitalLookup(s.hospitals.FindByEmail)},
	)
	if err != nil {
		return fmt.Errorf("failed to check hospital uniqueness: %w", err)
	}
	return submissionError(fields, conflicts)
}

// storeImage writes an optional upload before the row; a failed row write leaves the file orphaned
func (s *HospitalService) storeImage(ctx context.Context, hospital *models.Hospital, image *dto.FileUpload) error {
	if image == nil {
		return nil
	}
	name := uuid.NewString() + "." + validators.Extension(image.Filename)
	path, err := s.files.Save(ctx, storage.HospitalDir, name, image.Data)
	if err != nil {
		return fmt.Errorf("failed to store hospital image: %w", err)
	}
	hospital.ImagePath = &path
	return nil
}

func (s *HospitalService) logOrphan(image *dto.FileUpload, path *string, err error) {
	if image != nil && path != nil {
		s.log.Warn("hospital image orphaned", zap.String("path", *path), zap.Error(err))
	}
}

func applyHospitalRequest(hospital *models.Hospital, req dto.HospitalRequest) {
	hospital.Name = req.Name
	hospital.HRN = req.HRN
	hospital.Address = req.Address
	hospital.CityOrTown = req.CityOrTown
	hospital.State = req.State
	hospital.ZipCode = req.ZipCode
	hospital.Phone = req.Phone
	hospital.Email = req.Email
}
