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
)

func newPatientUsecaseForTest(patientRepo *mockPatientRepo, counterRepo *mockCounterRepo, audit *mockAuditService) PatientUsecase {
	return NewPatientUsecase(testDB(), testLogger(), patientRepo, counterRepo, audit)
}

func TestPatientCreate(t *testing.T) {
	var created *entity.Patient
	patientRepo := &mockPatientRepo{
		CreateFn: func(p *entity.Patient) error {
			created = p
			return nil
		},
	}
	counterRepo := &mockCounterRepo{
		NextFn: func(name string) (int64, error) {
			if name != entity.PatientSequence {
				t.Errorf("sequence name = %q, want %q", name, entity.PatientSequence)
			}
			return 12, nil
		},
	}
	audit := &mockAuditService{}

	usecase := newPatientUsecaseForTest(patientRepo, counterRepo, audit)

	resp, err := usecase.Create(context.Background(), staffIdentity(), &dto.CreatePatientRequest{
		Name:   "Sunita Rao",
		Age:    34,
		Gender: entity.GenderFemale,
		Mobile: "9876543210",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if resp.PatientCode != "PAT-012" {
		t.Errorf("patient code = %q, want PAT-012", resp.PatientCode)
	}
	if created.Address != entity.DefaultAddress {
		t.Errorf("address = %q, want default %q", created.Address, entity.DefaultAddress)
	}
	if created.RegistrationDate.IsZero() {
		t.Error("registration date not set")
	}
	if len(audit.Actions) != 1 || audit.Actions[0] != entity.AuditActionPatientCreate {
		t.Errorf("audit actions = %v", audit.Actions)
	}
}

func TestPatientCreateKeepsSuppliedAddress(t *testing.T) {
	var created *entity.Patient
	patientRepo := &mockPatientRepo{
		CreateFn: func(p *entity.Patient) error {
			created = p
			return nil
		},
	}
	counterRepo := &mockCounterRepo{NextFn: func(name string) (int64, error) { return 1, nil }}

	usecase := newPatientUsecaseForTest(patientRepo, counterRepo, &mockAuditService{})

	_, err := usecase.Create(context.Background(), staffIdentity(), &dto.CreatePatientRequest{
		Name:    "Ravi Kumar",
		Age:     40,
		Gender:  entity.GenderMale,
		Mobile:  "9000000000",
		Address: "12 MG Road, Pune",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.Address != "12 MG Road, Pune" {
		t.Errorf("address = %q, want the supplied one", created.Address)
	}
}

func TestPatientUpdateShallowMerge(t *testing.T) {
	id := uuid.New()
	existing := &entity.Patient{
		ID:               id,
		PatientCode:      "PAT-001",
		Name:             "Amit Patel",
		Age:              45,
		Gender:           entity.GenderMale,
		Mobile:           "9876543210",
		Address:          "Old address",
		RegistrationDate: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	}

	var saved *entity.Patient
	patientRepo := &mockPatientRepo{
		FindByIDFn: func(got uuid.UUID) (*entity.Patient, error) {
			p := *existing
			return &p, nil
		},
		UpdateFn: func(p *entity.Patient) error {
			saved = p
			return nil
		},
	}

	usecase := newPatientUsecaseForTest(patientRepo, &mockCounterRepo{}, &mockAuditService{})

	newAddress := "New address"
	newAge := 46
	resp, err := usecase.Update(context.Background(), staffIdentity(), &dto.UpdatePatientRequest{
		ID:      id,
		Age:     &newAge,
		Address: &newAddress,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if saved.Age != 46 || saved.Address != "New address" {
		t.Errorf("merge missed fields: age %d address %q", saved.Age, saved.Address)
	}
	if saved.Name != "Amit Patel" || saved.Mobile != "9876543210" {
		t.Errorf("untouched fields changed: %q %q", saved.Name, saved.Mobile)
	}
	if resp.PatientCode != "PAT-001" {
		t.Errorf("patient code changed to %q", resp.PatientCode)
	}
}

func TestPatientUpdateOwnership(t *testing.T) {
	ownerID := uuid.New()
	id := uuid.New()
	profile := &entity.Patient{ID: id, PatientCode: "PAT-002", UserID: &ownerID}

	patientRepo := &mockPatientRepo{
		FindByIDFn: func(got uuid.UUID) (*entity.Patient, error) {
			p := *profile
			return &p, nil
		},
		UpdateFn: func(p *entity.Patient) error { return nil },
	}

	usecase := newPatientUsecaseForTest(patientRepo, &mockCounterRepo{}, &mockAuditService{})

	name := "Changed"
	req := &dto.UpdatePatientRequest{ID: id, Name: &name}

	// Another patient may not touch the profile.
	_, err := usecase.Update(context.Background(), &middleware.Identity{UserID: uuid.New(), Role: entity.RolePatient}, req)
	if !errors.Is(err, ErrPatientNotOwned) {
		t.Errorf("Update() by a stranger error = %v, want ErrPatientNotOwned", err)
	}

	// The linked user may.
	if _, err := usecase.Update(context.Background(), &middleware.Identity{UserID: ownerID, Role: entity.RolePatient}, req); err != nil {
		t.Errorf("Update() by the owner error = %v", err)
	}
}

func TestPatientUpdateNotFound(t *testing.T) {
	patientRepo := &mockPatientRepo{
		FindByIDFn: func(got uuid.UUID) (*entity.Patient, error) { return nil, nil },
	}

	usecase := newPatientUsecaseForTest(patientRepo, &mockCounterRepo{}, &mockAuditService{})

	_, err := usecase.Update(context.Background(), staffIdentity(), &dto.UpdatePatientRequest{ID: uuid.New()})
	if !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("Update() error = %v, want ErrPatientNotFound", err)
	}
}

func TestPatientListScoping(t *testing.T) {
	userID := uuid.New()
	profile := &entity.Patient{ID: uuid.New(), PatientCode: "PAT-003", UserID: &userID}

	patientRepo := &mockPatientRepo{
		FindByUserIDFn: func(got uuid.UUID) (*entity.Patient, error) {
			if got != userID {
				t.Errorf("looked up user %s, want %s", got, userID)
			}
			return profile, nil
		},
		FindAllFn: func() ([]entity.Patient, error) {
			return []entity.Patient{{PatientCode: "PAT-001"}, {PatientCode: "PAT-002"}, *profile}, nil
		},
	}

	usecase := newPatientUsecaseForTest(patientRepo, &mockCounterRepo{}, &mockAuditService{})

	own, err := usecase.List(context.Background(), &middleware.Identity{UserID: userID, Role: entity.RolePatient})
	if err != nil {
		t.Fatalf("patient List() error = %v", err)
	}
	if own.Total != 1 || own.Patients[0].PatientCode != "PAT-003" {
		t.Errorf("patient sees %d records, want only their own", own.Total)
	}

	all, err := usecase.List(context.Background(), staffIdentity())
	if err != nil {
		t.Fatalf("staff List() error = %v", err)
	}
	if all.Total != 3 {
		t.Errorf("staff sees %d records, want 3", all.Total)
	}
}

func TestPatientListUnlinkedPatientUser(t *testing.T) {
	patientRepo := &mockPatientRepo{
		FindByUserIDFn: func(got uuid.UUID) (*entity.Patient, error) { return nil, nil },
	}

	usecase := newPatientUsecaseForTest(patientRepo, &mockCounterRepo{}, &mockAuditService{})

	resp, err := usecase.List(context.Background(), &middleware.Identity{UserID: uuid.New(), Role: entity.RolePatient})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if resp.Total != 0 {
		t.Errorf("unlinked patient sees %d records, want 0", resp.Total)
	}
}
