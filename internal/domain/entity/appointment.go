package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusWaiting    AppointmentStatus = "waiting"
	AppointmentStatusConfirmed  AppointmentStatus = "confirmed"
	AppointmentStatusInProgress AppointmentStatus = "in-progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
)

// IsValid reports whether the status is one of the known lifecycle states.
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusWaiting, AppointmentStatusConfirmed,
		AppointmentStatusInProgress, AppointmentStatusCompleted,
		AppointmentStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

// CanTransitionTo validates a status change against the lifecycle:
// waiting -> confirmed -> in-progress -> completed, with cancellation
// allowed from any non-terminal state. Re-setting the current status
// is allowed as a no-op.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if !next.IsValid() {
		return false
	}
	if s == next {
		return !s.IsTerminal()
	}
	switch s {
	case AppointmentStatusWaiting:
		return next == AppointmentStatusConfirmed || next == AppointmentStatusCancelled
	case AppointmentStatusConfirmed:
		return next == AppointmentStatusInProgress || next == AppointmentStatusCancelled
	case AppointmentStatusInProgress:
		return next == AppointmentStatusCompleted || next == AppointmentStatusCancelled
	}
	return false
}

// UploadedFile is a health record attachment supplied at booking time.
// Content is carried inline as a base64 data URL.
type UploadedFile struct {
	Name    string `json:"name"`
	Size    int64  `json:"size"`
	Type    string `json:"type"`
	DataURL string `json:"data_url"`
}

// UploadedFiles stores attachments as a JSONB column.
type UploadedFiles []UploadedFile

// Value implements driver.Valuer for JSONB storage.
func (f UploadedFiles) Value() (driver.Value, error) {
	if len(f) == 0 {
		return nil, nil
	}
	return json.Marshal(f)
}

// Scan implements sql.Scanner for JSONB storage.
func (f *UploadedFiles) Scan(value interface{}) error {
	if value == nil {
		*f = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	var result []UploadedFile
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*f = result
	return nil
}

// Appointment represents a scheduled visit of a patient to a doctor
// on a given date and time slot.
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AppointmentCode string            `gorm:"type:varchar(20);uniqueIndex;not null" json:"appointment_code"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Date            time.Time         `gorm:"type:date;not null;index" json:"date"`
	TimeSlot        string            `gorm:"type:varchar(10);not null" json:"time_slot"`
	Status          AppointmentStatus `gorm:"type:appointment_status;not null;default:'waiting';index" json:"status"`
	UploadedFiles   UploadedFiles     `gorm:"type:jsonb" json:"uploaded_files,omitempty"`
	RecordNote      string            `gorm:"type:text" json:"record_note,omitempty"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  User    `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsCancelled reports whether the appointment has been cancelled.
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// ConsultationEligible reports whether a doctor may record a
// consultation against this appointment. Only confirmed or
// in-progress visits qualify.
func (a *Appointment) ConsultationEligible() bool {
	return a.Status == AppointmentStatusConfirmed || a.Status == AppointmentStatusInProgress
}
