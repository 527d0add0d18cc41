package guestorderrepo

import (
	"context"
	"errors"
	"time"

	"moving/internal/core/domain/model/guestorder"
	"moving/internal/core/domain/model/kernel"
	"moving/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormGuestOrderRepository struct {
	db *gorm.DB
}

func NewGormGuestOrderRepository(db *gorm.DB) *GormGuestOrderRepository {
	return &GormGuestOrderRepository{db: db}
}

func (r *GormGuestOrderRepository) Add(ctx context.Context, aggregate *guestorder.GuestOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormGuestOrderRepository) Update(ctx context.Context, aggregate *guestorder.GuestOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&GuestOrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("guest order", aggregate.ID())
	}
	return nil
}

func (r *GormGuestOrderRepository) Get(ctx context.Context, id kernel.UUID) (*guestorder.GuestOrder, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormGuestOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*guestorder.GuestOrder, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormGuestOrderRepository) get(db *gorm.DB, id kernel.UUID) (*guestorder.GuestOrder, error) {
	var dto GuestOrderDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("guest order", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormGuestOrderRepository) DeleteAbandoned(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("reconciled_at IS NULL AND updated_at < ?", cutoff).
		Delete(&GuestOrderDTO{})
	return result.RowsAffected, result.Error
}
