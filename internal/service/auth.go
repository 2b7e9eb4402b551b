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

// AuthResult is a successful login: the identity plus a bearer token
type AuthResult struct {
	Token string
	User  *model.User
}

// AuthService implements the login flavors: direct patient lookup by phone,
// direct secret check for doctors and health workers, and the two-stage
// OTP-gated flow. Stage one of the OTP flow never issues a token.
type AuthService interface {
	LoginPatient(ctx context.Context, phone string) (*AuthResult, error)
	Login(ctx context.Context, identifier, password, employeeID, role string) (*AuthResult, error)
	LoginStage1(ctx context.Context, identifier, password, employeeID string) (uint, error)
	RequestPatientOtp(ctx context.Context, phone string) (uint, error)
	VerifyOtp(ctx context.Context, userID uint, code string) (*AuthResult, error)
}

type authService struct {
	users  repository.UserRepository
	otp    OTPService
	hasher *hashutil.Hasher
}

// NewAuthService creates a new AuthService instance
func NewAuthService(users repository.UserRepository, otp OTPService, hasher *hashutil.Hasher) AuthService {
	return &authService{users: users, otp: otp, hasher: hasher}
}

// LoginPatient authenticates a patient by phone number alone. Patients carry
// no secret; this is a deliberate low-friction path, and the only login
// lookup allowed to report not-found explicitly.
func (s *authService) LoginPatient(ctx context.Context, phone string) (*AuthResult, error) {
	user, err := s.users.FindActiveByRoleAndPhone(ctx, model.RolePatient, phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.issue(user)
}

// Login authenticates a secret-bearing role. A missing user and a wrong
// password are indistinguishable in the result.
func (s *authService) Login(ctx context.Context, identifier, password, employeeID, role string) (*AuthResult, error) {
	user, err := s.lookupWithSecret(ctx, identifier, password, employeeID, role)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// LoginStage1 runs the same lookup and secret check as Login but, on
// success, issues an OTP challenge and returns only the user id.
func (s *authService) LoginStage1(ctx context.Context, identifier, password, employeeID string) (uint, error) {
	user, err := s.lookupWithSecret(ctx, identifier, password, employeeID, "")
	if err != nil {
		return 0, err
	}
	if _, err := s.otp.Issue(ctx, user.ID); err != nil {
		return 0, err
	}
	return user.ID, nil
}

// RequestPatientOtp issues an OTP challenge for a registered patient,
// identified by phone. Kept for the legacy patient OTP login flow.
func (s *authService) RequestPatientOtp(ctx context.Context, phone string) (uint, error) {
	user, err := s.users.FindByRoleAndPhone(ctx, model.RolePatient, phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	if _, err := s.otp.Issue(ctx, user.ID); err != nil {
		return 0, err
	}
	return user.ID, nil
}

// VerifyOtp completes the two-stage flow: on a valid code it re-fetches the
// identity and issues the bearer token.
func (s *authService) VerifyOtp(ctx context.Context, userID uint, code string) (*AuthResult, error) {
	ok, err := s.otp.Verify(ctx, userID, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrOtpInvalid
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.issue(user)
}

func (s *authService) lookupWithSecret(ctx context.Context, identifier, password, employeeID, role string) (*model.User, error) {
	user, err := s.users.FindByIdentifier(ctx, identifier, employeeID, role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.PasswordHash == nil || !s.hasher.Verify(password, *user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *authService) issue(user *model.User) (*AuthResult, error) {
	token, err := jwtutil.GenerateToken(user.ID, user.Role, user.Phone, emailOrEmpty(user))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}
