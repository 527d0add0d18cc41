package coderepo

import (
	"context"
	"errors"
	"time"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/model/otp"
	"moving/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormOneTimeCodeRepository struct {
	db *gorm.DB
}

func NewGormOneTimeCodeRepository(db *gorm.DB) *GormOneTimeCodeRepository {
	return &GormOneTimeCodeRepository{db: db}
}

func (r *GormOneTimeCodeRepository) Add(ctx context.Context, aggregate *otp.OneTimeCode) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update stores the verification state. The code itself never changes.
func (r *GormOneTimeCodeRepository) Update(ctx context.Context, aggregate *otp.OneTimeCode) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OneTimeCodeDTO{}).
		Where("request_id = ?", dto.RequestID).
		Select("consumed_at", "attempts").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("one-time code", aggregate.RequestID())
	}
	return nil
}

func (r *GormOneTimeCodeRepository) GetForUpdate(ctx context.Context, requestID kernel.UUID) (*otp.OneTimeCode, error) {
	var dto OneTimeCodeDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "request_id = ?", requestID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("one-time code", requestID)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOneTimeCodeRepository) DeleteUnusable(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ? OR consumed_at IS NOT NULL OR attempts >= ?", now, otp.MaxAttempts).
		Delete(&OneTimeCodeDTO{})
	return result.RowsAffected, result.Error
}
