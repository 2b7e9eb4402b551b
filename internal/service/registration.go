package service

import (
	"context"
	"errors"
	"fmt"

	"telemed-service/internal/model"
	"telemed-service/internal/repository"
	"telemed-service/pkg/hashutil"
	"telemed-service/pkg/jwtutil"

	"gorm.io/gorm"
)

// PatientRegistration is the patient sign-up payload
type PatientRegistration struct {
	Name    string
	Age     int
	Gender  string
	Village string
	Phone   string
}

// DoctorRegistration is the doctor sign-up payload
type DoctorRegistration struct {
	Name       string
	Phone      string
	Email      string
	Password   string
	EmployeeID string
}

// HealthWorkerRegistration is the health worker sign-up payload
type HealthWorkerRegistration struct {
	Name       string
	Village    string
	Phone      string
	Email      string
	Password   string
	EmployeeID string
}

// staffRegistration holds the identity fields shared by the secret-bearing
// roles; the role-specific profile is built by the caller.
type staffRegistration struct {
	Name       string
	Phone      string
	Email      string
	Password   string
	EmployeeID string
}

// RegistrationResult is the terminal Created state: the new identity, its
// profile with derived fields populated, and a bearer token.
type RegistrationResult struct {
	Token   string
	User    *model.User
	Profile model.Profile
}

// RegistrationService creates identities with their role profiles. The
// per-role entry points share one workflow: validate, uniqueness pre-check,
// atomic create, token issuance.
type RegistrationService interface {
	RegisterPatient(ctx context.Context, req PatientRegistration) (*RegistrationResult, error)
	RegisterDoctor(ctx context.Context, req DoctorRegistration) (*RegistrationResult, error)
	RegisterHealthWorker(ctx context.Context, req HealthWorkerRegistration) (*RegistrationResult, error)
}

type registrationService struct {
	users  repository.UserRepository
	hasher *hashutil.Hasher
}

// NewRegistrationService creates a new RegistrationService instance
func NewRegistrationService(users repository.UserRepository, hasher *hashutil.Hasher) RegistrationService {
	return &registrationService{users: users, hasher: hasher}
}

func (s *registrationService) RegisterPatient(ctx context.Context, req PatientRegistration) (*RegistrationResult, error) {
	if err := validatePatient(&req); err != nil {
		return nil, err
	}

	// Advisory pre-check; the transactional create below is the
	// authoritative guard if a concurrent registration races past it.
	_, err := s.users.FindByRoleAndPhone(ctx, model.RolePatient, req.Phone)
	if err == nil {
		return nil, repository.ErrDuplicateIdentity
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &model.User{
		Role:       model.RolePatient,
		Phone:      req.Phone,
		IsVerified: true,
		IsActive:   true,
	}
	patient := &model.Patient{
		Name:    req.Name,
		Age:     req.Age,
		Gender:  req.Gender,
		Village: req.Village,
	}

	return s.create(ctx, user, patient)
}

func (s *registrationService) RegisterDoctor(ctx context.Context, req DoctorRegistration) (*RegistrationResult, error) {
	fields := staffRegistration(req)
	if err := validateStaff(&fields); err != nil {
		return nil, err
	}

	profile := &model.Doctor{
		Name:           fields.Name,
		Phone:          fields.Phone,
		Email:          fields.Email,
		EmployeeID:     fields.EmployeeID,
		Specialization: "General Medicine",
		Qualification:  "MBBS",
		IsAvailable:    true,
	}
	return s.registerStaff(ctx, model.RoleDoctor, fields, profile)
}

func (s *registrationService) RegisterHealthWorker(ctx context.Context, req HealthWorkerRegistration) (*RegistrationResult, error) {
	if req.Village == "" {
		return nil, invalidField("village", "village is required")
	}
	fields := staffRegistration{
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Password:   req.Password,
		EmployeeID: req.EmployeeID,
	}
	if err := validateStaff(&fields); err != nil {
		return nil, err
	}

	profile := &model.HealthWorker{
		Name:            fields.Name,
		AssignedVillage: req.Village,
		Phone:           fields.Phone,
		Email:           fields.Email,
		EmployeeID:      fields.EmployeeID,
		Qualification:   "ANM/GNM",
		ShiftTiming:     "Day Shift",
		IsOnDuty:        true,
	}
	return s.registerStaff(ctx, model.RoleHealthWorker, fields, profile)
}

// registerStaff runs the shared workflow for the secret-bearing roles
func (s *registrationService) registerStaff(ctx context.Context, role string, fields staffRegistration, profile model.Profile) (*RegistrationResult, error) {
	_, err := s.users.FindByUniqueFields(ctx, role, fields.Phone, fields.Email, fields.EmployeeID)
	if err == nil {
		return nil, repository.ErrDuplicateIdentity
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(fields.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Role:         role,
		Phone:        fields.Phone,
		Email:        &fields.Email,
		PasswordHash: &hash,
		EmployeeID:   &fields.EmployeeID,
		IsVerified:   true,
		IsActive:     true,
	}
	return s.create(ctx, user, profile)
}

// create performs the atomic insert and issues the bearer token
func (s *registrationService) create(ctx context.Context, user *model.User, profile model.Profile) (*RegistrationResult, error) {
	if err := s.users.CreateWithProfile(ctx, user, profile); err != nil {
		return nil, err
	}

	token, err := jwtutil.GenerateToken(user.ID, user.Role, user.Phone, emailOrEmpty(user))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &RegistrationResult{Token: token, User: user, Profile: profile}, nil
}

func emailOrEmpty(u *model.User) string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}
