package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type UploadedFileRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Size    int64  `json:"size" validate:"required,gte=1"`
	Type    string `json:"type" validate:"required,max=100"`
	DataURL string `json:"data_url" validate:"required"`
}

type CreateAppointmentRequest struct {
	// Ignored for patient-role callers: their own profile is used.
	PatientID  *uuid.UUID            `json:"patient_id"`
	DoctorID   uuid.UUID             `json:"doctor_id" validate:"required"`
	Date       string                `json:"date" validate:"required"`
	TimeSlot   string                `json:"time_slot" validate:"required"`
	Files      []UploadedFileRequest `json:"uploaded_files" validate:"omitempty,max=5,dive"`
	RecordNote string                `json:"record_note" validate:"omitempty,max=2000"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=waiting confirmed in-progress completed cancelled"`
}

// Response DTOs

type UploadedFileResponse struct {
	Name    string `json:"name"`
	Size    int64  `json:"size"`
	Type    string `json:"type"`
	DataURL string `json:"data_url"`
}

type AppointmentResponse struct {
	ID              uuid.UUID `json:"id"`
	AppointmentCode string    `json:"appointment_code"`
	PatientID       uuid.UUID `json:"patient_id"`
	PatientName     string    `json:"patient_name,omitempty"`
	DoctorID        uuid.UUID `json:"doctor_id"`
	DoctorName      string    `json:"doctor_name,omitempty"`
	Date            string    `json:"date"`
	TimeSlot        string    `json:"time_slot"`
	Status          string    `json:"status"`
	// Confidential: present only for the assigned doctor.
	UploadedFiles []UploadedFileResponse `json:"uploaded_files,omitempty"`
	RecordNote    string                 `json:"record_note,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type AvailableSlotsResponse struct {
	DoctorID uuid.UUID `json:"doctor_id"`
	Date     string    `json:"date"`
	Slots    []string  `json:"slots"`
}
