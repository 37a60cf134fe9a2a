package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateConsultationRequest struct {
	AppointmentID uuid.UUID `json:"appointment_id" validate:"required"`
	Symptoms      string    `json:"symptoms" validate:"required,max=2000"`
	Diagnosis     string    `json:"diagnosis" validate:"required,max=2000"`
	Prescription  string    `json:"prescription" validate:"required,max=2000"`
	FollowUpDate  string    `json:"follow_up_date" validate:"omitempty"`
	Notes         string    `json:"notes" validate:"omitempty,max=2000"`
}

// Response DTOs

type ConsultationResponse struct {
	ID            uuid.UUID `json:"id"`
	AppointmentID uuid.UUID `json:"appointment_id"`
	PatientID     uuid.UUID `json:"patient_id"`
	DoctorID      uuid.UUID `json:"doctor_id"`
	Symptoms      string    `json:"symptoms"`
	Diagnosis     string    `json:"diagnosis"`
	Prescription  string    `json:"prescription"`
	FollowUpDate  string    `json:"follow_up_date,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type ConsultationListResponse struct {
	Consultations []ConsultationResponse `json:"consultations"`
	Total         int                    `json:"total"`
}
