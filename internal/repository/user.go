// Package repository provides the data access layer for the telemedicine
// auth service.
package repository

import (
	"context"
	"errors"
	"fmt"

	"telemed-service/internal/model"

	"gorm.io/gorm"
)

// ErrDuplicateIdentity is returned when an insert or lookup collides with an
// existing identity on one of the uniqueness keys (phone+role, email+role,
// employee id). The transactional create translates unique-key violations
// here as well, so a racing registration loses with the same outcome as the
// advisory pre-check.
var ErrDuplicateIdentity = errors.New("identity already exists")

// UserRepository defines the credential store contract: identity lookups,
// the atomic identity+profile create, and the role-dispatched profile read.
type UserRepository interface {
	FindByRoleAndPhone(ctx context.Context, role, phone string) (*model.User, error)
	FindActiveByRoleAndPhone(ctx context.Context, role, phone string) (*model.User, error)
	FindByUniqueFields(ctx context.Context, role, phone, email, employeeID string) (*model.User, error)
	FindByIdentifier(ctx context.Context, identifier, employeeID, role string) (*model.User, error)
	FindByID(ctx context.Context, id uint) (*model.User, error)
	CreateWithProfile(ctx context.Context, user *model.User, profile model.Profile) error
	GetProfile(ctx context.Context, userID uint, role string) (model.Profile, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository backed by the given handle
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByRoleAndPhone(ctx context.Context, role, phone string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("phone = ? AND role = ?", phone, role).First(&user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find user by phone and role %s: %w", role, err)
	}
	return &user, nil
}

func (r *userRepository) FindActiveByRoleAndPhone(ctx context.Context, role, phone string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("phone = ? AND role = ? AND is_active = ?", phone, role, true).
		First(&user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find active user by phone and role %s: %w", role, err)
	}
	return &user, nil
}

// FindByUniqueFields is the registration pre-check lookup for secret-bearing
// roles: any identity of the same role matching the email, phone or employee
// id counts as a duplicate.
func (r *userRepository) FindByUniqueFields(ctx context.Context, role, phone, email, employeeID string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("(email = ? OR phone = ? OR employee_id = ?) AND role = ?", email, phone, employeeID, role).
		First(&user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find user by unique fields for role %s: %w", role, err)
	}
	return &user, nil
}

// FindByIdentifier is the login lookup: identifier matches either email or
// phone, combined with the employee id. An empty role matches any role
// (used by the two-stage login's first step).
func (r *userRepository) FindByIdentifier(ctx context.Context, identifier, employeeID, role string) (*model.User, error) {
	var user model.User
	q := r.db.WithContext(ctx).Where("(email = ? OR phone = ?) AND employee_id = ?", identifier, identifier, employeeID)
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if err := q.First(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to find user by identifier: %w", err)
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, fmt.Errorf("failed to find user by id %d: %w", id, err)
	}
	return &user, nil
}

// CreateWithProfile inserts the identity and its role profile as one
// transaction. Either both rows commit or neither does; a unique-key
// violation anywhere in the transaction surfaces as ErrDuplicateIdentity.
func (r *userRepository) CreateWithProfile(ctx context.Context, user *model.User, profile model.Profile) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		// The generated id is known only now; derived fields (medical
		// record number) hang off it via the profile's BeforeCreate hook.
		profile.BindUser(user)
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateIdentity
		}
		return fmt.Errorf("failed to create identity with profile: %w", err)
	}
	return nil
}

// GetProfile loads the role-specific profile row for a user. This is the
// single role-dispatch point for profile resolution.
func (r *userRepository) GetProfile(ctx context.Context, userID uint, role string) (model.Profile, error) {
	var profile model.Profile
	switch role {
	case model.RolePatient:
		profile = &model.Patient{}
	case model.RoleDoctor:
		profile = &model.Doctor{}
	case model.RoleHealthWorker:
		profile = &model.HealthWorker{}
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}

	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(profile).Error; err != nil {
		return nil, fmt.Errorf("failed to load %s profile for user %d: %w", role, userID, err)
	}
	return profile, nil
}
