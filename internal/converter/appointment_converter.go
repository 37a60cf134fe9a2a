package converter

import (
	"clinic-api/internal/delivery/dto"
	"clinic-api/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity for a specific
// viewer. The uploaded files and record note are confidential: they
// appear only when the viewer is the assigned doctor.
func AppointmentToResponse(appointment *entity.Appointment, viewerRole string, viewerID uuid.UUID) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:              appointment.ID,
		AppointmentCode: appointment.AppointmentCode,
		PatientID:       appointment.PatientID,
		PatientName:     appointment.Patient.Name,
		DoctorID:        appointment.DoctorID,
		DoctorName:      appointment.Doctor.Name,
		Date:            appointment.Date.Format("2006-01-02"),
		TimeSlot:        appointment.TimeSlot,
		Status:          string(appointment.Status),
		CreatedAt:       appointment.CreatedAt,
		UpdatedAt:       appointment.UpdatedAt,
	}

	if viewerRole == entity.RoleDoctor && viewerID == appointment.DoctorID {
		response.RecordNote = appointment.RecordNote
		if len(appointment.UploadedFiles) > 0 {
			files := make([]dto.UploadedFileResponse, len(appointment.UploadedFiles))
			for i, f := range appointment.UploadedFiles {
				files[i] = dto.UploadedFileResponse{
					Name:    f.Name,
					Size:    f.Size,
					Type:    f.Type,
					DataURL: f.DataURL,
				}
			}
			response.UploadedFiles = files
		}
	}

	return response
}

// AppointmentsToResponses converts a slice of appointments for a
// specific viewer.
func AppointmentsToResponses(appointments []entity.Appointment, viewerRole string, viewerID uuid.UUID) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment, viewerRole, viewerID)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
