package service

import (
	"regexp"
	"strings"

	"telemed-service/internal/model"
)

var (
	nonDigits    = regexp.MustCompile(`[^0-9]`)
	phonePattern = regexp.MustCompile(`^[0-9]{10,15}$`)
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
)

// validPhone checks the 10-15 digit rule after stripping formatting
// characters such as spaces and dashes.
func validPhone(phone string) bool {
	return phonePattern.MatchString(nonDigits.ReplaceAllString(phone, ""))
}

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// validatePatient checks and normalizes a patient registration in place
func validatePatient(req *PatientRegistration) error {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return invalidField("name", "name is required")
	}
	if req.Age < 1 || req.Age > 150 {
		return invalidField("age", "age must be between 1 and 150")
	}
	switch req.Gender {
	case model.GenderMale, model.GenderFemale, model.GenderOther:
	default:
		return invalidField("gender", "gender must be male, female or other")
	}
	if strings.TrimSpace(req.Village) == "" {
		return invalidField("village", "village is required")
	}
	if req.Phone == "" {
		return invalidField("phone", "phone is required")
	}
	if !validPhone(req.Phone) {
		return invalidField("phone", "invalid phone number format")
	}
	return nil
}

// validateStaff checks and normalizes the shared doctor/health-worker
// identity fields in place: the name is trimmed and the email lowercased.
func validateStaff(req *staffRegistration) error {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return invalidField("name", "name is required")
	}
	if req.Email == "" {
		return invalidField("email", "email is required")
	}
	if !validEmail(req.Email) {
		return invalidField("email", "invalid email format")
	}
	req.Email = strings.ToLower(req.Email)
	if req.Phone == "" {
		return invalidField("phone", "phone is required")
	}
	if !validPhone(req.Phone) {
		return invalidField("phone", "invalid phone number format")
	}
	if len(req.Password) < 6 {
		return invalidField("password", "password must be at least 6 characters long")
	}
	if strings.TrimSpace(req.EmployeeID) == "" {
		return invalidField("employeeId", "employee id is required")
	}
	return nil
}
