package service

import (
	"context"
	"fmt"
	"time"

	"clinic-api/internal/domain/entity"
	"clinic-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedAccount struct {
	Name           string
	Email          string
	Password       string
	RoleID         int
	Mobile         string
	Specialization string
}

var demoAccounts = []seedAccount{
	{Name: "Dr. Sree Ram (Admin)", Email: "admin@clinic.com", Password: "admin123", RoleID: entity.RoleIDAdmin},
	{Name: "Dr. Sree Ram", Email: "doctor@clinic.com", Password: "doctor123", RoleID: entity.RoleIDDoctor, Specialization: "General Medicine"},
	{Name: "Priya Sharma", Email: "reception@clinic.com", Password: "reception123", RoleID: entity.RoleIDReceptionist, Mobile: "9876543210"},
	{Name: "Amit Patel", Email: "patient@clinic.com", Password: "patient123", RoleID: entity.RoleIDPatient, Mobile: "9123456780"},
}

var demoPatient = entity.Patient{
	PatientCode: "PAT-001",
	Name:        "Amit Patel",
	Age:         35,
	Gender:      entity.GenderMale,
	Mobile:      "9123456780",
	Address:     "12 MG Road, Mumbai",
}

// SeedService creates the demo accounts and demo patient. Running it
// repeatedly is a no-op for records that already exist.
type SeedService struct {
	db          *gorm.DB
	log         *logrus.Logger
	userRepo    repository.UserRepository
	patientRepo repository.PatientRepository
	counterRepo repository.CounterRepository
}

func NewSeedService(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	patientRepo repository.PatientRepository,
	counterRepo repository.CounterRepository,
) *SeedService {
	return &SeedService{
		db:          db,
		log:         log,
		userRepo:    userRepo,
		patientRepo: patientRepo,
		counterRepo: counterRepo,
	}
}

// Run seeds the demo data and returns a human-readable summary line
// per account.
func (s *SeedService) Run(ctx context.Context) ([]string, error) {
	db := s.db.WithContext(ctx)
	var results []string

	for _, account := range demoAccounts {
		existing, err := s.userRepo.FindByEmail(db, account.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			results = append(results, fmt.Sprintf("Skipped %s - already exists", account.Email))
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(account.Password), 12)
		if err != nil {
			return nil, err
		}

		user := &entity.User{
			RoleID:         account.RoleID,
			Name:           account.Name,
			Email:          account.Email,
			Password:       string(hashed),
			Mobile:         account.Mobile,
			Specialization: account.Specialization,
		}
		if err := s.userRepo.Create(db, user); err != nil {
			return nil, err
		}

		if account.RoleID == entity.RoleIDPatient {
			created, err := s.seedDemoPatient(db, user)
			if err != nil {
				return nil, err
			}
			if created {
				results = append(results, fmt.Sprintf("Created demo patient: %s", demoPatient.PatientCode))
			}
		}

		results = append(results, fmt.Sprintf("Created %s: %s", entity.RoleNameFromID(account.RoleID), account.Email))
	}

	s.log.Infof("Seed finished: %d entries", len(results))
	return results, nil
}

// seedDemoPatient creates the demo profile unless its code is already
// taken, by an earlier seed run or by a real registration that claimed
// the first sequence number.
func (s *SeedService) seedDemoPatient(db *gorm.DB, user *entity.User) (bool, error) {
	existing, err := s.patientRepo.FindByCode(db, demoPatient.PatientCode)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	// Keep the counter in step with the fixed demo code.
	if _, err := s.counterRepo.Next(db, entity.PatientSequence); err != nil {
		return false, err
	}

	patient := demoPatient
	patient.UserID = &user.ID
	patient.RegistrationDate = time.Now().Truncate(24 * time.Hour)
	if err := s.patientRepo.Create(db, &patient); err != nil {
		return false, err
	}
	return true, nil
}
