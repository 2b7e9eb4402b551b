package handler

import (
	"telemed-service/internal/model"
)

// userPayload is the user object returned by registration and login
// responses. Role-specific fields are filled from the profile when one is
// part of the response.
type userPayload struct {
	ID                  uint   `json:"id"`
	Role                string `json:"role"`
	Phone               string `json:"phone"`
	Email               string `json:"email,omitempty"`
	Name                string `json:"name,omitempty"`
	MedicalRecordNumber string `json:"medicalRecordNumber,omitempty"`
	Village             string `json:"village,omitempty"`
	EmployeeID          string `json:"employeeId,omitempty"`
	Specialization      string `json:"specialization,omitempty"`
	AssignedVillage     string `json:"assignedVillage,omitempty"`
}

func newUserPayload(u *model.User, p model.Profile) userPayload {
	payload := userPayload{
		ID:    u.ID,
		Role:  u.Role,
		Phone: u.Phone,
	}
	if u.Email != nil {
		payload.Email = *u.Email
	}
	if u.EmployeeID != nil {
		payload.EmployeeID = *u.EmployeeID
	}

	switch profile := p.(type) {
	case *model.Patient:
		payload.Name = profile.Name
		payload.MedicalRecordNumber = profile.MedicalRecordNumber
		payload.Village = profile.Village
	case *model.Doctor:
		payload.Name = profile.Name
		payload.Specialization = profile.Specialization
	case *model.HealthWorker:
		payload.Name = profile.Name
		payload.AssignedVillage = profile.AssignedVillage
	}
	return payload
}
