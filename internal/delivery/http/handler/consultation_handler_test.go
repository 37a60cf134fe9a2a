package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clinic-api/internal/delivery/dto"
	"clinic-api/internal/delivery/http/middleware"
	"clinic-api/internal/domain/entity"
	"clinic-api/internal/usecase"
	"clinic-api/pkg/validator"

	"github.com/google/uuid"
)

type mockConsultationUsecase struct {
	CreateFn func(identity *middleware.Identity, req *dto.CreateConsultationRequest) (*dto.ConsultationResponse, error)
	ListFn   func(identity *middleware.Identity, patientID *uuid.UUID) (*dto.ConsultationListResponse, error)
}

func (m *mockConsultationUsecase) Create(ctx context.Context, identity *middleware.Identity, req *dto.CreateConsultationRequest) (*dto.ConsultationResponse, error) {
	return m.CreateFn(identity, req)
}

func (m *mockConsultationUsecase) List(ctx context.Context, identity *middleware.Identity, patientID *uuid.UUID) (*dto.ConsultationListResponse, error) {
	return m.ListFn(identity, patientID)
}

func consultationBody() string {
	return fmt.Sprintf(`{"appointment_id":%q,"symptoms":"fever","diagnosis":"viral infection","prescription":"rest"}`, uuid.New())
}

func TestConsultationCreateErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		usecaseErr error
		wantStatus int
	}{
		{"missing appointment", usecase.ErrAppointmentNotFound, http.StatusNotFound},
		{"another doctor's appointment", usecase.ErrAppointmentNotOwnedByDoc, http.StatusForbidden},
		{"ineligible status", usecase.ErrAppointmentNotEligible, http.StatusConflict},
		{"duplicate consultation", usecase.ErrConsultationExists, http.StatusConflict},
		{"bad follow-up date", usecase.ErrInvalidDateFormat, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			consultationUsecase := &mockConsultationUsecase{
				CreateFn: func(identity *middleware.Identity, req *dto.CreateConsultationRequest) (*dto.ConsultationResponse, error) {
					return nil, tt.usecaseErr
				},
			}
			h := NewConsultationHandler(consultationUsecase, validator.NewValidator())

			req := withIdentity(httptest.NewRequest(http.MethodPost, "/api/v1/consultations", strings.NewReader(consultationBody())), entity.RoleDoctor)
			rec := httptest.NewRecorder()

			h.Create(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestConsultationCreateValidation(t *testing.T) {
	h := NewConsultationHandler(&mockConsultationUsecase{}, validator.NewValidator())

	// Diagnosis and prescription missing.
	body := fmt.Sprintf(`{"appointment_id":%q,"symptoms":"fever"}`, uuid.New())
	req := withIdentity(httptest.NewRequest(http.MethodPost, "/api/v1/consultations", strings.NewReader(body)), entity.RoleDoctor)
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestConsultationCreateSuccess(t *testing.T) {
	consultationUsecase := &mockConsultationUsecase{
		CreateFn: func(identity *middleware.Identity, req *dto.CreateConsultationRequest) (*dto.ConsultationResponse, error) {
			return &dto.ConsultationResponse{ID: uuid.New(), Symptoms: req.Symptoms}, nil
		},
	}
	h := NewConsultationHandler(consultationUsecase, validator.NewValidator())

	req := withIdentity(httptest.NewRequest(http.MethodPost, "/api/v1/consultations", strings.NewReader(consultationBody())), entity.RoleDoctor)
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
}
