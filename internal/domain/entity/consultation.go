package entity

import (
	"time"

	"github.com/google/uuid"
)

// Consultation is the clinical record of one completed visit,
// written once by the attending doctor. At most one consultation
// exists per appointment (unique index on appointment_id).
type Consultation struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AppointmentID uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"appointment_id"`
	PatientID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Symptoms      string     `gorm:"type:text;not null" json:"symptoms"`
	Diagnosis     string     `gorm:"type:text;not null" json:"diagnosis"`
	Prescription  string     `gorm:"type:text;not null" json:"prescription"`
	FollowUpDate  *time.Time `gorm:"type:date" json:"follow_up_date,omitempty"`
	Notes         string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
	Patient     Patient     `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor      User        `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Consultation) TableName() string {
	return "consultations"
}
