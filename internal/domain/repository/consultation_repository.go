package repository

import (
	"clinic-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConsultationRepository interface {
	Create(db *gorm.DB, consultation *entity.Consultation) error
	FindAll(db *gorm.DB) ([]entity.Consultation, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Consultation, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Consultation, error)
	FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) (*entity.Consultation, error)
}
