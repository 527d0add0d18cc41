package catalogrepo

import (
	"context"
	"errors"

	"moving/internal/core/domain/model/catalog"
	"moving/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormPricingFactorRepository struct {
	db *gorm.DB
}

func NewGormPricingFactorRepository(db *gorm.DB) *GormPricingFactorRepository {
	return &GormPricingFactorRepository{db: db}
}

func (r *GormPricingFactorRepository) Add(ctx context.Context, aggregate *catalog.PricingFactor) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := factorFromDomain(aggregate)
	dto.ID = 0
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	return aggregate.BindID(dto.ID)
}

// Update writes every column so that deactivation (active=false) is stored.
func (r *GormPricingFactorRepository) Update(ctx context.Context, aggregate *catalog.PricingFactor) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := factorFromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&PricingFactorDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("pricing factor", dto.ID)
	}
	return nil
}

func (r *GormPricingFactorRepository) Get(ctx context.Context, id int64) (*catalog.PricingFactor, error) {
	var dto PricingFactorDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pricing factor", id)
		}
		return nil, err
	}
	return factorToDomain(dto), nil
}

func (r *GormPricingFactorRepository) FindByIDs(ctx context.Context, ids []int64) ([]*catalog.PricingFactor, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var dtos []PricingFactorDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	factors := make([]*catalog.PricingFactor, 0, len(dtos))
	for _, dto := range dtos {
		factors = append(factors, factorToDomain(dto))
	}
	return factors, nil
}
