package userrepo

import (
	"context"
	"errors"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/model/user"
	"moving/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Add(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormUserRepository) Update(ctx context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&UserDTO{}).
		Where("id = ?", dto.ID).
		Select("first_name", "last_name", "vehicle_model", "plate_number", "worker_count", "driver_status").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("user", aggregate.ID())
	}
	return nil
}

func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	return r.first(r.db.WithContext(ctx), "id = ?", id.Bytes(), id)
}

func (r *GormUserRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*user.User, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), "id = ?", id.Bytes(), id)
}

func (r *GormUserRepository) GetByPhone(ctx context.Context, phone kernel.Phone) (*user.User, error) {
	return r.first(r.db.WithContext(ctx), "phone = ?", phone.String(), phone)
}

func (r *GormUserRepository) first(db *gorm.DB, where string, arg any, key any) (*user.User, error) {
	var dto UserDTO
	if err := db.First(&dto, where, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", key)
		}
		return nil, err
	}

	return toDomain(dto)
}
