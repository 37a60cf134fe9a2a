package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"clinic-api/internal/converter"
	"clinic-api/internal/delivery/dto"
	"clinic-api/internal/delivery/http/middleware"
	"clinic-api/internal/domain/entity"
	"clinic-api/internal/domain/repository"
	"clinic-api/internal/service"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// maxUploadSize caps a single inline attachment at 5 MiB.
const maxUploadSize = 5 << 20

// allowedUploadTypes is the attachment allow-list: health record
// documents and scans only.
var allowedUploadTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
	"application/vnd.ms-powerpoint": true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
}

var (
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrSlotUnavailable         = errors.New("selected time slot is no longer available")
	ErrInvalidTimeSlot         = errors.New("invalid time slot")
	ErrInvalidDateFormat       = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidStatusTransition = errors.New("invalid appointment status transition")
	ErrPatientRequired         = errors.New("patient is required")
	ErrFileTooLarge            = errors.New("uploaded file exceeds the size limit")
	ErrUnsupportedFileType     = errors.New("uploaded file type is not supported")
	ErrInvalidFileEncoding     = errors.New("uploaded file is not a valid base64 data URL")
)

type AppointmentUsecase interface {
	List(ctx context.Context, identity *middleware.Identity, patientID *uuid.UUID) (*dto.AppointmentListResponse, error)
	Create(ctx context.Context, identity *middleware.Identity, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, identity *middleware.Identity, id uuid.UUID, status entity.AppointmentStatus) (*dto.AppointmentResponse, error)
	AvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailableSlotsResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	userRepo        repository.UserRepository
	counterRepo     repository.CounterRepository
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	userRepo repository.UserRepository,
	counterRepo repository.CounterRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		userRepo:        userRepo,
		counterRepo:     counterRepo,
		auditService:    auditService,
	}
}

// List returns appointments scoped to the caller: doctors see their
// own, patients see their linked profile's, staff see everything.
// Staff may narrow to one patient. Ordering is date descending.
func (u *appointmentUsecase) List(ctx context.Context, identity *middleware.Identity, patientID *uuid.UUID) (*dto.AppointmentListResponse, error) {
	db := u.db.WithContext(ctx)

	var appointments []entity.Appointment
	var err error

	switch identity.Role {
	case entity.RoleDoctor:
		appointments, err = u.appointmentRepo.FindByDoctorID(db, identity.UserID)
	case entity.RolePatient:
		var patient *entity.Patient
		patient, err = u.patientRepo.FindByUserID(db, identity.UserID)
		if err == nil {
			if patient == nil {
				return &dto.AppointmentListResponse{Appointments: []dto.AppointmentResponse{}}, nil
			}
			appointments, err = u.appointmentRepo.FindByPatientID(db, patient.ID)
		}
	default:
		if patientID != nil {
			appointments, err = u.appointmentRepo.FindByPatientID(db, *patientID)
		} else {
			appointments, err = u.appointmentRepo.FindAll(db)
		}
	}

	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments, identity.Role, identity.UserID),
		Total:        len(appointments),
	}, nil
}

// Create books a visit. Availability is checked against the loaded
// day first; the partial unique index on (doctor, date, slot) catches
// the race when two bookings pass that check concurrently.
func (u *appointmentUsecase) Create(ctx context.Context, identity *middleware.Identity, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	if !entity.IsValidTimeSlot(req.TimeSlot) {
		return nil, ErrInvalidTimeSlot
	}

	patient, err := u.resolvePatient(db, identity, req.PatientID)
	if err != nil {
		return nil, err
	}

	doctor, err := u.userRepo.FindByID(db, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil || doctor.RoleName() != entity.RoleDoctor {
		return nil, ErrDoctorNotFound
	}

	files, err := validateUploads(req.Files)
	if err != nil {
		return nil, err
	}

	dayAppointments, err := u.appointmentRepo.FindByDoctorAndDate(db, req.DoctorID, date)
	if err != nil {
		u.log.Warnf("Failed to load appointments for doctor %s on %s: %+v", req.DoctorID, req.Date, err)
		return nil, err
	}
	if !slotAvailable(dayAppointments, req.TimeSlot) {
		return nil, ErrSlotUnavailable
	}

	seq, err := u.counterRepo.Next(db, entity.AppointmentSequence)
	if err != nil {
		u.log.Warnf("Failed to advance appointment sequence: %+v", err)
		return nil, err
	}

	appointment := &entity.Appointment{
		AppointmentCode: entity.FormatCode("APT", seq),
		PatientID:       patient.ID,
		DoctorID:        req.DoctorID,
		Date:            date,
		TimeSlot:        req.TimeSlot,
		Status:          entity.AppointmentStatusWaiting,
		UploadedFiles:   files,
		RecordNote:      req.RecordNote,
	}

	if err := u.appointmentRepo.Create(db, appointment); err != nil {
		if isDuplicateKeyError(err, "doctor_slot") {
			return nil, ErrSlotUnavailable
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.auditService.Log(db, &identity.UserID, entity.AuditActionAppointmentCreate, entity.JSON{
		"appointment_code": appointment.AppointmentCode,
		"doctor_id":        req.DoctorID.String(),
		"date":             req.Date,
		"time_slot":        req.TimeSlot,
	})

	appointment.Patient = *patient
	appointment.Doctor = *doctor
	return converter.AppointmentToResponse(appointment, identity.Role, identity.UserID), nil
}

// UpdateStatus moves an appointment along its lifecycle. Transitions
// must follow waiting -> confirmed -> in-progress -> completed, with
// cancellation from any non-terminal state; re-setting the current
// status is a no-op.
func (u *appointmentUsecase) UpdateStatus(ctx context.Context, identity *middleware.Identity, id uuid.UUID, status entity.AppointmentStatus) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if !appointment.Status.CanTransitionTo(status) {
		return nil, ErrInvalidStatusTransition
	}

	if appointment.Status != status {
		if err := u.appointmentRepo.UpdateStatus(db, id, status); err != nil {
			u.log.Warnf("Failed to update appointment %s status: %+v", id, err)
			return nil, err
		}

		u.auditService.Log(db, &identity.UserID, entity.AuditActionAppointmentStatus, entity.JSON{
			"appointment_code": appointment.AppointmentCode,
			"from":             string(appointment.Status),
			"to":               string(status),
		})

		appointment.Status = status
	}

	return converter.AppointmentToResponse(appointment, identity.Role, identity.UserID), nil
}

// AvailableSlots reports the fixed slot list minus slots taken by
// non-cancelled appointments of the doctor on the date, in fixed
// slot order.
func (u *appointmentUsecase) AvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailableSlotsResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	appointments, err := u.appointmentRepo.FindByDoctorAndDate(u.db.WithContext(ctx), doctorID, day)
	if err != nil {
		u.log.Warnf("Failed to load appointments for doctor %s on %s: %+v", doctorID, date, err)
		return nil, err
	}

	return &dto.AvailableSlotsResponse{
		DoctorID: doctorID,
		Date:     date,
		Slots:    entity.AvailableSlots(appointments, doctorID, day),
	}, nil
}

// resolvePatient returns the booking subject: patient-role callers
// always book for their own linked profile, staff name the patient
// explicitly.
func (u *appointmentUsecase) resolvePatient(db *gorm.DB, identity *middleware.Identity, patientID *uuid.UUID) (*entity.Patient, error) {
	if identity.Role == entity.RolePatient {
		patient, err := u.patientRepo.FindByUserID(db, identity.UserID)
		if err != nil {
			u.log.Warnf("Failed to find patient profile for user %s: %+v", identity.UserID, err)
			return nil, err
		}
		if patient == nil {
			return nil, ErrPatientNotFound
		}
		return patient, nil
	}

	if patientID == nil {
		return nil, ErrPatientRequired
	}
	patient, err := u.patientRepo.FindByID(db, *patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", *patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return patient, nil
}

func slotAvailable(appointments []entity.Appointment, slot string) bool {
	for _, a := range appointments {
		if !a.IsCancelled() && a.TimeSlot == slot {
			return false
		}
	}
	return true
}

// validateUploads decodes each data URL, sniffs the real content type
// and checks it against the allow-list. The declared type is ignored;
// only sniffed bytes count.
func validateUploads(files []dto.UploadedFileRequest) (entity.UploadedFiles, error) {
	if len(files) == 0 {
		return nil, nil
	}

	out := make(entity.UploadedFiles, 0, len(files))
	for _, f := range files {
		payload, ok := dataURLPayload(f.DataURL)
		if !ok {
			return nil, ErrInvalidFileEncoding
		}
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, ErrInvalidFileEncoding
		}
		if len(data) > maxUploadSize {
			return nil, ErrFileTooLarge
		}

		detected := mimetype.Detect(data)
		if !allowedUploadTypes[detected.String()] {
			return nil, ErrUnsupportedFileType
		}

		out = append(out, entity.UploadedFile{
			Name:    f.Name,
			Size:    int64(len(data)),
			Type:    detected.String(),
			DataURL: f.DataURL,
		})
	}
	return out, nil
}

// dataURLPayload extracts the base64 payload of a data URL such as
// "data:application/pdf;base64,JVBERi0...".
func dataURLPayload(dataURL string) (string, bool) {
	if !strings.HasPrefix(dataURL, "data:") {
		return "", false
	}
	idx := strings.Index(dataURL, ",")
	if idx < 0 {
		return "", false
	}
	meta := dataURL[len("data:"):idx]
	if !strings.HasSuffix(meta, ";base64") {
		return "", false
	}
	return dataURL[idx+1:], true
}
