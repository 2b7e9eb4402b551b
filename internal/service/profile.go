package service

import (
	"context"
	"errors"

	"telemed-service/internal/model"
	"telemed-service/internal/repository"

	"gorm.io/gorm"
)

// ProfileService resolves a verified token's claims to the identity and its
// role-specific profile.
type ProfileService interface {
	Resolve(ctx context.Context, userID uint) (*model.User, model.Profile, error)
}

type profileService struct {
	users repository.UserRepository
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(users repository.UserRepository) ProfileService {
	return &profileService{users: users}
}

// Resolve loads the user by id, then dispatches on the stored role to load
// the matching profile. A token can outlive a deleted identity, so a missing
// user is a normal not-found; a missing profile for an existing user is not.
func (s *profileService) Resolve(ctx context.Context, userID uint) (*model.User, model.Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	profile, err := s.users.GetProfile(ctx, user.ID, user.Role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrProfileMissing
		}
		return nil, nil, err
	}
	return user, profile, nil
}
