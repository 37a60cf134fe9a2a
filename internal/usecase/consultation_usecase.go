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

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrConsultationExists       = errors.New("a consultation already exists for this appointment")
	ErrAppointmentNotEligible   = errors.New("appointment is not eligible for a consultation")
	ErrAppointmentNotOwnedByDoc = errors.New("appointment is assigned to another doctor")
)

type ConsultationUsecase interface {
	Create(ctx context.Context, identity *middleware.Identity, req *dto.CreateConsultationRequest) (*dto.ConsultationResponse, error)
	List(ctx context.Context, identity *middleware.Identity, patientID *uuid.UUID) (*dto.ConsultationListResponse, error)
}

type consultationUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	consultationRepo repository.ConsultationRepository
	appointmentRepo  repository.AppointmentRepository
	patientRepo      repository.PatientRepository
	auditService     service.AuditService
}

func NewConsultationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	consultationRepo repository.ConsultationRepository,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) ConsultationUsecase {
	return &consultationUsecase{
		db:               db,
		log:              log,
		consultationRepo: consultationRepo,
		appointmentRepo:  appointmentRepo,
		patientRepo:      patientRepo,
		auditService:     auditService,
	}
}

// Create records the clinical outcome of a visit. Only the assigned
// doctor may write it, only against a confirmed or in-progress
// appointment without an existing consultation. The consultation
// insert and the appointment's move to completed happen in one
// transaction, so neither is ever observed without the other.
func (u *consultationUsecase) Create(ctx context.Context, identity *middleware.Identity, req *dto.CreateConsultationRequest) (*dto.ConsultationResponse, error) {
	db := u.db.WithContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(db, req.AppointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", req.AppointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if appointment.DoctorID != identity.UserID {
		return nil, ErrAppointmentNotOwnedByDoc
	}
	if !appointment.ConsultationEligible() {
		return nil, ErrAppointmentNotEligible
	}

	existing, err := u.consultationRepo.FindByAppointmentID(db, req.AppointmentID)
	if err != nil {
		u.log.Warnf("Failed to check existing consultation: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrConsultationExists
	}

	var followUp *time.Time
	if req.FollowUpDate != "" {
		parsed, err := time.Parse("2006-01-02", req.FollowUpDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		followUp = &parsed
	}

	consultation := &entity.Consultation{
		AppointmentID: req.AppointmentID,
		PatientID:     appointment.PatientID,
		DoctorID:      identity.UserID,
		Symptoms:      req.Symptoms,
		Diagnosis:     req.Diagnosis,
		Prescription:  req.Prescription,
		FollowUpDate:  followUp,
		Notes:         req.Notes,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.consultationRepo.Create(tx, consultation); err != nil {
		if isDuplicateKeyError(err, "appointment_id") {
			return nil, ErrConsultationExists
		}
		u.log.Warnf("Failed to create consultation: %+v", err)
		return nil, err
	}

	if err := u.appointmentRepo.UpdateStatus(tx, appointment.ID, entity.AppointmentStatusCompleted); err != nil {
		u.log.Warnf("Failed to complete appointment %s: %+v", appointment.ID, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.auditService.Log(db, &identity.UserID, entity.AuditActionConsultationCreate, entity.JSON{
		"appointment_code": appointment.AppointmentCode,
	})

	return converter.ConsultationToResponse(consultation), nil
}

// List returns consultations newest first: patients see their own,
// doctors see the ones they wrote, other staff see everything. Staff
// and doctors may narrow to one patient.
func (u *consultationUsecase) List(ctx context.Context, identity *middleware.Identity, patientID *uuid.UUID) (*dto.ConsultationListResponse, error) {
	db := u.db.WithContext(ctx)

	var consultations []entity.Consultation
	var err error

	switch {
	case identity.Role == entity.RolePatient:
		var patient *entity.Patient
		patient, err = u.patientRepo.FindByUserID(db, identity.UserID)
		if err == nil {
			if patient == nil {
				return &dto.ConsultationListResponse{Consultations: []dto.ConsultationResponse{}}, nil
			}
			consultations, err = u.consultationRepo.FindByPatientID(db, patient.ID)
		}
	case patientID != nil:
		consultations, err = u.consultationRepo.FindByPatientID(db, *patientID)
	case identity.Role == entity.RoleDoctor:
		consultations, err = u.consultationRepo.FindByDoctorID(db, identity.UserID)
	default:
		consultations, err = u.consultationRepo.FindAll(db)
	}

	if err != nil {
		u.log.Warnf("Failed to list consultations: %+v", err)
		return nil, err
	}

	return &dto.ConsultationListResponse{
		Consultations: converter.ConsultationsToResponses(consultations),
		Total:         len(consultations),
	}, nil
}
