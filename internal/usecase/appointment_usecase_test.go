package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinic-api/internal/delivery/dto"
	"clinic-api/internal/delivery/http/middleware"
	"clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

func staffIdentity() *middleware.Identity {
	return &middleware.Identity{
		UserID: uuid.New(),
		Email:  "reception@clinic.com",
		Role:   entity.RoleReceptionist,
		Name:   "Reception",
	}
}

func newAppointmentUsecaseForTest(
	appointmentRepo *mockAppointmentRepo,
	patientRepo *mockPatientRepo,
	userRepo *mockUserRepo,
	counterRepo *mockCounterRepo,
	audit *mockAuditService,
) AppointmentUsecase {
	return NewAppointmentUsecase(testDB(), testLogger(), appointmentRepo, patientRepo, userRepo, counterRepo, audit)
}

func TestAppointmentCreate(t *testing.T) {
	doctorID := uuid.New()
	patientID := uuid.New()

	patient := &entity.Patient{ID: patientID, PatientCode: "PAT-001", Name: "Amit Patel"}
	doctor := &entity.User{ID: doctorID, RoleID: entity.RoleIDDoctor, Name: "Dr. Sharma"}

	appointmentRepo := &mockAppointmentRepo{
		FindByDoctorAndDateFn: func(id uuid.UUID, date time.Time) ([]entity.Appointment, error) {
			return nil, nil
		},
		CreateFn: func(a *entity.Appointment) error {
			a.ID = uuid.New()
			return nil
		},
	}
	patientRepo := &mockPatientRepo{
		FindByIDFn: func(id uuid.UUID) (*entity.Patient, error) { return patient, nil },
	}
	userRepo := &mockUserRepo{
		FindByIDFn: func(id uuid.UUID) (*entity.User, error) { return doctor, nil },
	}
	counterRepo := &mockCounterRepo{
		NextFn: func(name string) (int64, error) {
			if name != entity.AppointmentSequence {
				t.Errorf("sequence name = %q, want %q", name, entity.AppointmentSequence)
			}
			return 7, nil
		},
	}
	audit := &mockAuditService{}

	usecase := newAppointmentUsecaseForTest(appointmentRepo, patientRepo, userRepo, counterRepo, audit)

	resp, err := usecase.Create(context.Background(), staffIdentity(), &dto.CreateAppointmentRequest{
		PatientID: &patientID,
		DoctorID:  doctorID,
		Date:      "2025-06-10",
		TimeSlot:  "10:00 AM",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if resp.AppointmentCode != "APT-007" {
		t.Errorf("appointment code = %q, want APT-007", resp.AppointmentCode)
	}
	if resp.Status != string(entity.AppointmentStatusWaiting) {
		t.Errorf("status = %q, want waiting", resp.Status)
	}
	if resp.PatientName != "Amit Patel" || resp.DoctorName != "Dr. Sharma" {
		t.Errorf("names not resolved: %q / %q", resp.PatientName, resp.DoctorName)
	}
	if len(audit.Actions) != 1 || audit.Actions[0] != entity.AuditActionAppointmentCreate {
		t.Errorf("audit actions = %v", audit.Actions)
	}
}

func TestAppointmentCreateRejectsTakenSlot(t *testing.T) {
	doctorID := uuid.New()
	patientID := uuid.New()

	appointmentRepo := &mockAppointmentRepo{
		FindByDoctorAndDateFn: func(id uuid.UUID, date time.Time) ([]entity.Appointment, error) {
			return []entity.Appointment{
				{DoctorID: doctorID, TimeSlot: "10:00 AM", Status: entity.AppointmentStatusConfirmed},
			}, nil
		},
	}
	patientRepo := &mockPatientRepo{
		FindByIDFn: func(id uuid.UUID) (*entity.Patient, error) {
			return &entity.Patient{ID: patientID}, nil
		},
	}
	userRepo := &mockUserRepo{
		FindByIDFn: func(id uuid.UUID) (*entity.User, error) {
			return &entity.User{ID: doctorID, RoleID: entity.RoleIDDoctor}, nil
		},
	}

	usecase := newAppointmentUsecaseForTest(appointmentRepo, patientRepo, userRepo, &mockCounterRepo{}, &mockAuditService{})

	_, err := usecase.Create(context.Background(), staffIdentity(), &dto.CreateAppointmentRequest{
		PatientID: &patientID,
		DoctorID:  doctorID,
		Date:      "2025-06-10",
		TimeSlot:  "10:00 AM",
	})
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Errorf("Create() error = %v, want ErrSlotUnavailable", err)
	}
}

func TestAppointmentCreateCancelledSlotIsFree(t *testing.T) {
	doctorID := uuid.New()
	patientID := uuid.New()

	appointmentRepo := &mockAppointmentRepo{
		FindByDoctorAndDateFn: func(id uuid.UUID, date time.Time) ([]entity.Appointment, error) {
			return []entity.Appointment{
				{DoctorID: doctorID, TimeSlot: "10:00 AM", Status: entity.AppointmentStatusCancelled},
			}, nil
		},
		CreateFn: func(a *entity.Appointment) error { return nil },
	}
	patientRepo := &mockPatientRepo{
		FindByIDFn: func(id uuid.UUID) (*entity.Patient, error) {
			return &entity.Patient{ID: patientID}, nil
		},
	}
	userRepo := &mockUserRepo{
		FindByIDFn: func(id uuid.UUID) (*entity.User, error) {
			return &entity.User{ID: doctorID, RoleID: entity.RoleIDDoctor}, nil
		},
	}
	counterRepo := &mockCounterRepo{NextFn: func(name string) (int64, error) { return 1, nil }}

	usecase := newAppointmentUsecaseForTest(appointmentRepo, patientRepo, userRepo, counterRepo, &mockAuditService{})

	_, err := usecase.Create(context.Background(), staffIdentity(), &dto.CreateAppointmentRequest{
		PatientID: &patientID,
		DoctorID:  doctorID,
		Date:      "2025-06-10",
		TimeSlot:  "10:00 AM",
	})
	if err != nil {
		t.Errorf("Create() on a cancelled slot error = %v, want nil", err)
	}
}

func TestAppointmentCreateValidation(t *testing.T) {
	patientID := uuid.New()
	usecase := newAppointmentUsecaseForTest(&mockAppointmentRepo{}, &mockPatientRepo{}, &mockUserRepo{}, &mockCounterRepo{}, &mockAuditService{})

	tests := []struct {
		name    string
		req     *dto.CreateAppointmentRequest
		wantErr error
	}{
		{
			"bad date",
			&dto.CreateAppointmentRequest{PatientID: &patientID, DoctorID: uuid.New(), Date: "10-06-2025", TimeSlot: "10:00 AM"},
			ErrInvalidDateFormat,
		},
		{
			"unknown slot",
			&dto.CreateAppointmentRequest{PatientID: &patientID, DoctorID: uuid.New(), Date: "2025-06-10", TimeSlot: "09:00 AM"},
			ErrInvalidTimeSlot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := usecase.Create(context.Background(), staffIdentity(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAppointmentCreateStaffMustNamePatient(t *testing.T) {
	usecase := newAppointmentUsecaseForTest(&mockAppointmentRepo{}, &mockPatientRepo{}, &mockUserRepo{}, &mockCounterRepo{}, &mockAuditService{})

	_, err := usecase.Create(context.Background(), staffIdentity(), &dto.CreateAppointmentRequest{
		DoctorID: uuid.New(),
		Date:     "2025-06-10",
		TimeSlot: "10:00 AM",
	})
	if !errors.Is(err, ErrPatientRequired) {
		t.Errorf("Create() error = %v, want ErrPatientRequired", err)
	}
}

func TestAppointmentCreatePatientBooksOwnProfile(t *testing.T) {
	doctorID := uuid.New()
	userID := uuid.New()
	ownProfile := &entity.Patient{ID: uuid.New(), UserID: &userID}
	strangerID := uuid.New()

	var bookedFor uuid.UUID
	appointmentRepo := &mockAppointmentRepo{
		FindByDoctorAndDateFn: func(id uuid.UUID, date time.Time) ([]entity.Appointment, error) {
			return nil, nil
		},
		CreateFn: func(a *entity.Appointment) error {
			bookedFor = a.PatientID
			return nil
		},
	}
	patientRepo := &mockPatientRepo{
		FindByUserIDFn: func(id uuid.UUID) (*entity.Patient, error) { return ownProfile, nil },
	}
	userRepo := &mockUserRepo{
		FindByIDFn: func(id uuid.UUID) (*entity.User, error) {
			return &entity.User{ID: doctorID, RoleID: entity.RoleIDDoctor}, nil
		},
	}
	counterRepo := &mockCounterRepo{NextFn: func(name string) (int64, error) { return 2, nil }}

	usecase := newAppointmentUsecaseForTest(appointmentRepo, patientRepo, userRepo, counterRepo, &mockAuditService{})

	identity := &middleware.Identity{UserID: userID, Role: entity.RolePatient}
	_, err := usecase.Create(context.Background(), identity, &dto.CreateAppointmentRequest{
		// A patient naming someone else is ignored.
		PatientID: &strangerID,
		DoctorID:  doctorID,
		Date:      "2025-06-10",
		TimeSlot:  "11:00 AM",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if bookedFor != ownProfile.ID {
		t.Errorf("booked for %s, want own profile %s", bookedFor, ownProfile.ID)
	}
}

func TestAppointmentCreateDuplicateKeyRace(t *testing.T) {
	doctorID := uuid.New()
	patientID := uuid.New()

	appointmentRepo := &mockAppointmentRepo{
		FindByDoctorAndDateFn: func(id uuid.UUID, date time.Time) ([]entity.Appointment, error) {
			return nil, nil
		},
		CreateFn: func(a *entity.Appointment) error {
			// A concurrent booking won the race after the availability check.
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_appointments_doctor_slot"}
		},
	}
	patientRepo := &mockPatientRepo{
		FindByIDFn: func(id uuid.UUID) (*entity.Patient, error) {
			return &entity.Patient{ID: patientID}, nil
		},
	}
	userRepo := &mockUserRepo{
		FindByIDFn: func(id uuid.UUID) (*entity.User, error) {
			return &entity.User{ID: doctorID, RoleID: entity.RoleIDDoctor}, nil
		},
	}
	counterRepo := &mockCounterRepo{NextFn: func(name string) (int64, error) { return 3, nil }}

	usecase := newAppointmentUsecaseForTest(appointmentRepo, patientRepo, userRepo, counterRepo, &mockAuditService{})

	_, err := usecase.Create(context.Background(), staffIdentity(), &dto.CreateAppointmentRequest{
		PatientID: &patientID,
		DoctorID:  doctorID,
		Date:      "2025-06-10",
		TimeSlot:  "10:00 AM",
	})
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Errorf("Create() error = %v, want ErrSlotUnavailable", err)
	}
}

func TestAppointmentCreateRejectsNonDoctor(t *testing.T) {
	patientID := uuid.New()

	patientRepo := &mockPatientRepo{
		FindByIDFn: func(id uuid.UUID) (*entity.Patient, error) {
			return &entity.Patient{ID: patientID}, nil
		},
	}
	userRepo := &mockUserRepo{
		FindByIDFn: func(id uuid.UUID) (*entity.User, error) {
			return &entity.User{ID: id, RoleID: entity.RoleIDReceptionist}, nil
		},
	}

	usecase := newAppointmentUsecaseForTest(&mockAppointmentRepo{}, patientRepo, userRepo, &mockCounterRepo{}, &mockAuditService{})

	_, err := usecase.Create(context.Background(), staffIdentity(), &dto.CreateAppointmentRequest{
		PatientID: &patientID,
		DoctorID:  uuid.New(),
		Date:      "2025-06-10",
		TimeSlot:  "10:00 AM",
	})
	if !errors.Is(err, ErrDoctorNotFound) {
		t.Errorf("Create() error = %v, want ErrDoctorNotFound", err)
	}
}

func TestAppointmentUpdateStatus(t *testing.T) {
	id := uuid.New()
	appointment := &entity.Appointment{
		ID:              id,
		AppointmentCode: "APT-001",
		Status:          entity.AppointmentStatusWaiting,
	}

	var updated entity.AppointmentStatus
	appointmentRepo := &mockAppointmentRepo{
		FindByIDFn: func(got uuid.UUID) (*entity.Appointment, error) {
			a := *appointment
			return &a, nil
		},
		UpdateStatusFn: func(got uuid.UUID, status entity.AppointmentStatus) error {
			updated = status
			return nil
		},
	}
	audit := &mockAuditService{}

	usecase := newAppointmentUsecaseForTest(appointmentRepo, &mockPatientRepo{}, &mockUserRepo{}, &mockCounterRepo{}, audit)

	resp, err := usecase.UpdateStatus(context.Background(), staffIdentity(), id, entity.AppointmentStatusConfirmed)
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if updated != entity.AppointmentStatusConfirmed {
		t.Errorf("persisted status = %q, want confirmed", updated)
	}
	if resp.Status != string(entity.AppointmentStatusConfirmed) {
		t.Errorf("response status = %q, want confirmed", resp.Status)
	}
	if len(audit.Actions) != 1 {
		t.Errorf("audit actions = %v", audit.Actions)
	}
}

func TestAppointmentUpdateStatusRejectsIllegalTransition(t *testing.T) {
	id := uuid.New()
	appointmentRepo := &mockAppointmentRepo{
		FindByIDFn: func(got uuid.UUID) (*entity.Appointment, error) {
			return &entity.Appointment{ID: id, Status: entity.AppointmentStatusWaiting}, nil
		},
		UpdateStatusFn: func(got uuid.UUID, status entity.AppointmentStatus) error {
			t.Error("UpdateStatus should not be called for an illegal transition")
			return nil
		},
	}

	usecase := newAppointmentUsecaseForTest(appointmentRepo, &mockPatientRepo{}, &mockUserRepo{}, &mockCounterRepo{}, &mockAuditService{})

	_, err := usecase.UpdateStatus(context.Background(), staffIdentity(), id, entity.AppointmentStatusCompleted)
	if !errors.Is(err, ErrInvalidStatusTransition) {
		t.Errorf("UpdateStatus() error = %v, want ErrInvalidStatusTransition", err)
	}
}

func TestAppointmentUpdateStatusSameStatusNoOp(t *testing.T) {
	id := uuid.New()
	appointmentRepo := &mockAppointmentRepo{
		FindByIDFn: func(got uuid.UUID) (*entity.Appointment, error) {
			return &entity.Appointment{ID: id, Status: entity.AppointmentStatusConfirmed}, nil
		},
		UpdateStatusFn: func(got uuid.UUID, status entity.AppointmentStatus) error {
			t.Error("re-setting the current status must not write")
			return nil
		},
	}
	audit := &mockAuditService{}

	usecase := newAppointmentUsecaseForTest(appointmentRepo, &mockPatientRepo{}, &mockUserRepo{}, &mockCounterRepo{}, audit)

	resp, err := usecase.UpdateStatus(context.Background(), staffIdentity(), id, entity.AppointmentStatusConfirmed)
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if resp.Status != string(entity.AppointmentStatusConfirmed) {
		t.Errorf("response status = %q, want confirmed", resp.Status)
	}
	if len(audit.Actions) != 0 {
		t.Errorf("no audit entry expected for a no-op, got %v", audit.Actions)
	}
}

func TestAppointmentUpdateStatusNotFound(t *testing.T) {
	appointmentRepo := &mockAppointmentRepo{
		FindByIDFn: func(got uuid.UUID) (*entity.Appointment, error) { return nil, nil },
	}

	usecase := newAppointmentUsecaseForTest(appointmentRepo, &mockPatientRepo{}, &mockUserRepo{}, &mockCounterRepo{}, &mockAuditService{})

	_, err := usecase.UpdateStatus(context.Background(), staffIdentity(), uuid.New(), entity.AppointmentStatusConfirmed)
	if !errors.Is(err, ErrAppointmentNotFound) {
		t.Errorf("UpdateStatus() error = %v, want ErrAppointmentNotFound", err)
	}
}

func TestAppointmentAvailableSlots(t *testing.T) {
	doctorID := uuid.New()
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	appointmentRepo := &mockAppointmentRepo{
		FindByDoctorAndDateFn: func(id uuid.UUID, day time.Time) ([]entity.Appointment, error) {
			return []entity.Appointment{
				{DoctorID: doctorID, Date: date, TimeSlot: "10:00 AM", Status: entity.AppointmentStatusWaiting},
				{DoctorID: doctorID, Date: date, TimeSlot: "04:00 PM", Status: entity.AppointmentStatusCancelled},
			}, nil
		},
	}

	usecase := newAppointmentUsecaseForTest(appointmentRepo, &mockPatientRepo{}, &mockUserRepo{}, &mockCounterRepo{}, &mockAuditService{})

	resp, err := usecase.AvailableSlots(context.Background(), doctorID, "2025-06-10")
	if err != nil {
		t.Fatalf("AvailableSlots() error = %v", err)
	}
	if len(resp.Slots) != 13 {
		t.Errorf("expected 13 slots, got %d: %v", len(resp.Slots), resp.Slots)
	}
	for _, slot := range resp.Slots {
		if slot == "10:00 AM" {
			t.Error("taken slot 10:00 AM reported as available")
		}
	}
}

func TestAppointmentAvailableSlotsBadDate(t *testing.T) {
	usecase := newAppointmentUsecaseForTest(&mockAppointmentRepo{}, &mockPatientRepo{}, &mockUserRepo{}, &mockCounterRepo{}, &mockAuditService{})

	_, err := usecase.AvailableSlots(context.Background(), uuid.New(), "June 10")
	if !errors.Is(err, ErrInvalidDateFormat) {
		t.Errorf("AvailableSlots() error = %v, want ErrInvalidDateFormat", err)
	}
}

func TestAppointmentListScoping(t *testing.T) {
	doctorID := uuid.New()
	patientUserID := uuid.New()
	patientProfile := &entity.Patient{ID: uuid.New(), UserID: &patientUserID}

	doctorCalls := 0
	patientCalls := 0
	allCalls := 0

	appointmentRepo := &mockAppointmentRepo{
		FindByDoctorIDFn: func(id uuid.UUID) ([]entity.Appointment, error) {
			doctorCalls++
			if id != doctorID {
				t.Errorf("doctor scope queried for %s, want %s", id, doctorID)
			}
			return nil, nil
		},
		FindByPatientIDFn: func(id uuid.UUID) ([]entity.Appointment, error) {
			patientCalls++
			if id != patientProfile.ID {
				t.Errorf("patient scope queried for %s, want %s", id, patientProfile.ID)
			}
			return nil, nil
		},
		FindAllFn: func() ([]entity.Appointment, error) {
			allCalls++
			return nil, nil
		},
	}
	patientRepo := &mockPatientRepo{
		FindByUserIDFn: func(id uuid.UUID) (*entity.Patient, error) { return patientProfile, nil },
	}

	usecase := newAppointmentUsecaseForTest(appointmentRepo, patientRepo, &mockUserRepo{}, &mockCounterRepo{}, &mockAuditService{})

	ctx := context.Background()
	if _, err := usecase.List(ctx, &middleware.Identity{UserID: doctorID, Role: entity.RoleDoctor}, nil); err != nil {
		t.Fatalf("doctor List() error = %v", err)
	}
	if _, err := usecase.List(ctx, &middleware.Identity{UserID: patientUserID, Role: entity.RolePatient}, nil); err != nil {
		t.Fatalf("patient List() error = %v", err)
	}
	if _, err := usecase.List(ctx, staffIdentity(), nil); err != nil {
		t.Fatalf("staff List() error = %v", err)
	}

	if doctorCalls != 1 || patientCalls != 1 || allCalls != 1 {
		t.Errorf("scope calls = doctor %d, patient %d, all %d, want 1 each", doctorCalls, patientCalls, allCalls)
	}
}
