package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-api/internal/converter"
	"clinic-api/internal/delivery/dto"
	"clinic-api/internal/delivery/http/middleware"
	"clinic-api/internal/domain/entity"
	"clinic-api/internal/domain/repository"
	"clinic-api/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientNotFound  = errors.New("patient not found")
	ErrPatientNotOwned  = errors.New("patient profile does not belong to you")
	ErrProfileForbidden = errors.New("patients may only access their own profile")
)

type PatientUsecase interface {
	List(ctx context.Context, identity *middleware.Identity) (*dto.PatientListResponse, error)
	Search(ctx context.Context, query string) (*dto.PatientListResponse, error)
	Create(ctx context.Context, identity *middleware.Identity, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	Update(ctx context.Context, identity *middleware.Identity, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
}

type patientUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	counterRepo  repository.CounterRepository
	auditService service.AuditService
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	counterRepo repository.CounterRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:           db,
		log:          log,
		patientRepo:  patientRepo,
		counterRepo:  counterRepo,
		auditService: auditService,
	}
}

// List returns all patients for staff callers; a patient-role caller
// only ever sees their own linked profile.
func (u *patientUsecase) List(ctx context.Context, identity *middleware.Identity) (*dto.PatientListResponse, error) {
	db := u.db.WithContext(ctx)

	if identity.Role == entity.RolePatient {
		patient, err := u.patientRepo.FindByUserID(db, identity.UserID)
		if err != nil {
			u.log.Warnf("Failed to find patient profile for user %s: %+v", identity.UserID, err)
			return nil, err
		}
		var patients []entity.Patient
		if patient != nil {
			patients = append(patients, *patient)
		}
		return &dto.PatientListResponse{
			Patients: converter.PatientsToResponses(patients),
			Total:    len(patients),
		}, nil
	}

	patients, err := u.patientRepo.FindAll(db)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}

// Search matches name, mobile or patient code case-insensitively.
func (u *patientUsecase) Search(ctx context.Context, query string) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.Search(u.db.WithContext(ctx), query)
	if err != nil {
		u.log.Warnf("Failed to search patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}

// Create registers a patient on behalf of the front desk. The patient
// code comes from the atomic sequence, so concurrent registrations
// never collide.
func (u *patientUsecase) Create(ctx context.Context, identity *middleware.Identity, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	db := u.db.WithContext(ctx)

	seq, err := u.counterRepo.Next(db, entity.PatientSequence)
	if err != nil {
		u.log.Warnf("Failed to advance patient sequence: %+v", err)
		return nil, err
	}

	address := req.Address
	if address == "" {
		address = entity.DefaultAddress
	}

	patient := &entity.Patient{
		PatientCode:      entity.FormatCode("PAT", seq),
		Name:             req.Name,
		Age:              req.Age,
		Gender:           req.Gender,
		Mobile:           req.Mobile,
		Address:          address,
		RegistrationDate: time.Now().Truncate(24 * time.Hour),
	}

	if err := u.patientRepo.Create(db, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	u.auditService.Log(db, &identity.UserID, entity.AuditActionPatientCreate, entity.JSON{
		"patient_code": patient.PatientCode,
	})

	return converter.PatientToResponse(patient), nil
}

// Update applies a shallow merge of the mutable profile fields. The
// identifier and patient code never change. A patient-role caller may
// only update their own linked profile.
func (u *patientUsecase) Update(ctx context.Context, identity *middleware.Identity, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	db := u.db.WithContext(ctx)

	patient, err := u.patientRepo.FindByID(db, req.ID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.ID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if identity.Role == entity.RolePatient {
		if patient.UserID == nil || *patient.UserID != identity.UserID {
			return nil, ErrPatientNotOwned
		}
	}

	if req.Name != nil {
		patient.Name = *req.Name
	}
	if req.Age != nil {
		patient.Age = *req.Age
	}
	if req.Gender != nil {
		patient.Gender = *req.Gender
	}
	if req.Mobile != nil {
		patient.Mobile = *req.Mobile
	}
	if req.Address != nil {
		patient.Address = *req.Address
	}

	if err := u.patientRepo.Update(db, patient); err != nil {
		u.log.Warnf("Failed to update patient %s: %+v", req.ID, err)
		return nil, err
	}

	u.auditService.Log(db, &identity.UserID, entity.AuditActionPatientUpdate, entity.JSON{
		"patient_code": patient.PatientCode,
	})

	return converter.PatientToResponse(patient), nil
}
