package service

import (
	"context"
	"errors"
	"fmt"

	"telemed-service/internal/model"

	"gorm.io/gorm"
)

// notFound mirrors the repository's wrapping of a missed lookup
func notFound() error {
	return fmt.Errorf("record missing: %w", gorm.ErrRecordNotFound)
}

// =============================================================================
// Mock UserRepository
// =============================================================================

type mockUserRepository struct {
	findByRoleAndPhoneFunc       func(ctx context.Context, role, phone string) (*model.User, error)
	findActiveByRoleAndPhoneFunc func(ctx context.Context, role, phone string) (*model.User, error)
	findByUniqueFieldsFunc       func(ctx context.Context, role, phone, email, employeeID string) (*model.User, error)
	findByIdentifierFunc         func(ctx context.Context, identifier, employeeID, role string) (*model.User, error)
	findByIDFunc                 func(ctx context.Context, id uint) (*model.User, error)
	createWithProfileFunc        func(ctx context.Context, user *model.User, profile model.Profile) error
	getProfileFunc               func(ctx context.Context, userID uint, role string) (model.Profile, error)

	createCalls int
	lookupCalls int
}

func (m *mockUserRepository) FindByRoleAndPhone(ctx context.Context, role, phone string) (*model.User, error) {
	m.lookupCalls++
	if m.findByRoleAndPhoneFunc != nil {
		return m.findByRoleAndPhoneFunc(ctx, role, phone)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) FindActiveByRoleAndPhone(ctx context.Context, role, phone string) (*model.User, error) {
	m.lookupCalls++
	if m.findActiveByRoleAndPhoneFunc != nil {
		return m.findActiveByRoleAndPhoneFunc(ctx, role, phone)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) FindByUniqueFields(ctx context.Context, role, phone, email, employeeID string) (*model.User, error) {
	m.lookupCalls++
	if m.findByUniqueFieldsFunc != nil {
		return m.findByUniqueFieldsFunc(ctx, role, phone, email, employeeID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) FindByIdentifier(ctx context.Context, identifier, employeeID, role string) (*model.User, error) {
	m.lookupCalls++
	if m.findByIdentifierFunc != nil {
		return m.findByIdentifierFunc(ctx, identifier, employeeID, role)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	m.lookupCalls++
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) CreateWithProfile(ctx context.Context, user *model.User, profile model.Profile) error {
	m.createCalls++
	if m.createWithProfileFunc != nil {
		return m.createWithProfileFunc(ctx, user, profile)
	}
	return errors.New("not implemented")
}

func (m *mockUserRepository) GetProfile(ctx context.Context, userID uint, role string) (model.Profile, error) {
	m.lookupCalls++
	if m.getProfileFunc != nil {
		return m.getProfileFunc(ctx, userID, role)
	}
	return nil, errors.New("not implemented")
}

// =============================================================================
// Mock OtpRepository
// =============================================================================

type mockOtpRepository struct {
	createFunc     func(ctx context.Context, otp *model.Otp) error
	findLatestFunc func(ctx context.Context, userID uint, code string) (*model.Otp, error)
	markUsedFunc   func(ctx context.Context, id uint) error

	markUsedCalls int
}

func (m *mockOtpRepository) Create(ctx context.Context, otp *model.Otp) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, otp)
	}
	return errors.New("not implemented")
}

func (m *mockOtpRepository) FindLatestByUserAndCode(ctx context.Context, userID uint, code string) (*model.Otp, error) {
	if m.findLatestFunc != nil {
		return m.findLatestFunc(ctx, userID, code)
	}
	return nil, errors.New("not implemented")
}

func (m *mockOtpRepository) MarkUsed(ctx context.Context, id uint) error {
	m.markUsedCalls++
	if m.markUsedFunc != nil {
		return m.markUsedFunc(ctx, id)
	}
	return errors.New("not implemented")
}

// =============================================================================
// Mock OTPService (for AuthService tests)
// =============================================================================

type mockOTPService struct {
	issueFunc  func(ctx context.Context, userID uint) (string, error)
	verifyFunc func(ctx context.Context, userID uint, code string) (bool, error)
}

func (m *mockOTPService) Issue(ctx context.Context, userID uint) (string, error) {
	if m.issueFunc != nil {
		return m.issueFunc(ctx, userID)
	}
	return "", errors.New("not implemented")
}

func (m *mockOTPService) Verify(ctx context.Context, userID uint, code string) (bool, error) {
	if m.verifyFunc != nil {
		return m.verifyFunc(ctx, userID, code)
	}
	return false, errors.New("not implemented")
}
