package converter

import (
	"clinic-api/internal/delivery/dto"
	"clinic-api/internal/domain/entity"
)

// ConsultationToResponse converts a Consultation entity to its DTO.
func ConsultationToResponse(consultation *entity.Consultation) *dto.ConsultationResponse {
	if consultation == nil {
		return nil
	}

	response := &dto.ConsultationResponse{
		ID:            consultation.ID,
		AppointmentID: consultation.AppointmentID,
		PatientID:     consultation.PatientID,
		DoctorID:      consultation.DoctorID,
		Symptoms:      consultation.Symptoms,
		Diagnosis:     consultation.Diagnosis,
		Prescription:  consultation.Prescription,
		Notes:         consultation.Notes,
		CreatedAt:     consultation.CreatedAt,
	}
	if consultation.FollowUpDate != nil {
		response.FollowUpDate = consultation.FollowUpDate.Format("2006-01-02")
	}
	return response
}

// ConsultationsToResponses converts a slice of Consultation entities.
func ConsultationsToResponses(consultations []entity.Consultation) []dto.ConsultationResponse {
	responses := make([]dto.ConsultationResponse, len(consultations))
	for i, consultation := range consultations {
		resp := ConsultationToResponse(&consultation)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
