package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Patient represents a clinical-subject profile. A patient profile may
// be linked to a User (self-registered patients) or standalone
// (front-desk registrations).
type Patient struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientCode      string     `gorm:"type:varchar(20);uniqueIndex;not null" json:"patient_code"`
	Name             string     `gorm:"type:varchar(255);not null" json:"name"`
	Age              int        `gorm:"not null" json:"age"`
	Gender           string     `gorm:"type:varchar(10);not null" json:"gender"`
	Mobile           string     `gorm:"type:varchar(20);index" json:"mobile"`
	Address          string     `gorm:"type:text;not null;default:'Not provided'" json:"address"`
	RegistrationDate time.Time  `gorm:"type:date;not null" json:"registration_date"`
	UserID           *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// Gender constants
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// DefaultAddress is stored when no address is supplied.
const DefaultAddress = "Not provided"

// Sequence names for human-readable codes (counters table).
const (
	PatientSequence     = "patient"
	AppointmentSequence = "appointment"
)

// FormatCode renders a sequential human-readable code such as
// PAT-001 or APT-042. Numbers above 999 keep their full width.
func FormatCode(prefix string, n int64) string {
	return fmt.Sprintf("%s-%03d", prefix, n)
}
