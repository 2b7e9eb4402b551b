package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"telemed-service/internal/model"
	"telemed-service/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OTPService issues and verifies short-lived, single-use numeric challenges
type OTPService interface {
	Issue(ctx context.Context, userID uint) (string, error)
	Verify(ctx context.Context, userID uint, code string) (bool, error)
}

type otpService struct {
	otps repository.OtpRepository
	ttl  time.Duration
	log  *zap.Logger
}

// NewOTPService creates an OTPService with the given code lifetime
func NewOTPService(otps repository.OtpRepository, ttl time.Duration, log *zap.Logger) OTPService {
	return &otpService{otps: otps, ttl: ttl, log: log}
}

// generateCode draws a uniformly random code in [100000, 999999]
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func (s *otpService) Issue(ctx context.Context, userID uint) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}

	otp := &model.Otp{
		UserID:    userID,
		Code:      code,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.otps.Create(ctx, otp); err != nil {
		return "", err
	}

	// Delivery (SMS) is out of scope; surfaced at debug level for testing.
	s.log.Debug("One-time code issued",
		zap.Uint("user_id", userID),
		zap.String("code", code))

	return code, nil
}

// Verify checks the most recently issued matching code for the user. It
// returns false for a missing, already used or expired code. Marking the
// code used is the last step on the success path so a storage failure can
// never leave a code consumed without the caller seeing success.
func (s *otpService) Verify(ctx context.Context, userID uint, code string) (bool, error) {
	otp, err := s.otps.FindLatestByUserAndCode(ctx, userID, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if otp.Used {
		return false, nil
	}
	if otp.IsExpired() {
		return false, nil
	}
	if err := s.otps.MarkUsed(ctx, otp.ID); err != nil {
		return false, err
	}
	return true, nil
}
