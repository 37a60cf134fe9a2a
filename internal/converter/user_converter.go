package converter

import (
	"clinic-api/internal/delivery/dto"
	"clinic-api/internal/domain/entity"
)

// UserToResponse converts a User entity to its password-free summary.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Role:           user.RoleName(),
		Mobile:         user.Mobile,
		Specialization: user.Specialization,
		CreatedAt:      user.CreatedAt,
	}
}

// UserToDoctorResponse converts a doctor-role User to the doctor
// directory entry.
func UserToDoctorResponse(user *entity.User) *dto.DoctorResponse {
	if user == nil {
		return nil
	}
	return &dto.DoctorResponse{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Specialization: user.Specialization,
		Mobile:         user.Mobile,
	}
}

// UsersToDoctorResponses converts a slice of doctor users.
func UsersToDoctorResponses(users []entity.User) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(users))
	for i, user := range users {
		resp := UserToDoctorResponse(&user)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
