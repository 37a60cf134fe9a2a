package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreatePatientRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Age     int    `json:"age" validate:"required,gte=0,lte=150"`
	Gender  string `json:"gender" validate:"required,oneof=male female other"`
	Mobile  string `json:"mobile" validate:"required,max=20"`
	Address string `json:"address" validate:"omitempty,max=500"`
}

// UpdatePatientRequest carries a shallow partial update. The code and
// internal identifier are never mutable.
type UpdatePatientRequest struct {
	ID      uuid.UUID `json:"id" validate:"required"`
	Name    *string   `json:"name" validate:"omitempty,max=255"`
	Age     *int      `json:"age" validate:"omitempty,gte=0,lte=150"`
	Gender  *string   `json:"gender" validate:"omitempty,oneof=male female other"`
	Mobile  *string   `json:"mobile" validate:"omitempty,max=20"`
	Address *string   `json:"address" validate:"omitempty,max=500"`
}

// Response DTOs

type PatientResponse struct {
	ID               uuid.UUID  `json:"id"`
	PatientCode      string     `json:"patient_code"`
	Name             string     `json:"name"`
	Age              int        `json:"age"`
	Gender           string     `json:"gender"`
	Mobile           string     `json:"mobile"`
	Address          string     `json:"address"`
	RegistrationDate string     `json:"registration_date"`
	UserID           *uuid.UUID `json:"user_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
