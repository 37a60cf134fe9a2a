package converter

import (
	"clinic-api/internal/delivery/dto"
	"clinic-api/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to its response DTO.
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}
	return &dto.PatientResponse{
		ID:               patient.ID,
		PatientCode:      patient.PatientCode,
		Name:             patient.Name,
		Age:              patient.Age,
		Gender:           patient.Gender,
		Mobile:           patient.Mobile,
		Address:          patient.Address,
		RegistrationDate: patient.RegistrationDate.Format("2006-01-02"),
		UserID:           patient.UserID,
		CreatedAt:        patient.CreatedAt,
		UpdatedAt:        patient.UpdatedAt,
	}
}

// PatientsToResponses converts a slice of Patient entities.
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i, patient := range patients {
		resp := PatientToResponse(&patient)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
