package repository

import (
	"context"
	"fmt"

	"telemed-service/internal/model"

	"gorm.io/gorm"
)

// OtpRepository persists one-time-passcode challenges. Multiple outstanding
// codes per user are permitted; verification only ever consults the most
// recently issued matching row.
type OtpRepository interface {
	Create(ctx context.Context, otp *model.Otp) error
	FindLatestByUserAndCode(ctx context.Context, userID uint, code string) (*model.Otp, error)
	MarkUsed(ctx context.Context, id uint) error
}

type otpRepository struct {
	db *gorm.DB
}

// NewOtpRepository creates a new OtpRepository backed by the given handle
func NewOtpRepository(db *gorm.DB) OtpRepository {
	return &otpRepository{db: db}
}

func (r *otpRepository) Create(ctx context.Context, otp *model.Otp) error {
	if err := r.db.WithContext(ctx).Create(otp).Error; err != nil {
		return fmt.Errorf("failed to store otp for user %d: %w", otp.UserID, err)
	}
	return nil
}

func (r *otpRepository) FindLatestByUserAndCode(ctx context.Context, userID uint, code string) (*model.Otp, error) {
	var otp model.Otp
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND code = ?", userID, code).
		Order("id DESC").
		First(&otp).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find otp for user %d: %w", userID, err)
	}
	return &otp, nil
}

func (r *otpRepository) MarkUsed(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Model(&model.Otp{}).Where("id = ?", id).Update("used", true).Error; err != nil {
		return fmt.Errorf("failed to mark otp %d used: %w", id, err)
	}
	return nil
}
