package catalogrepo

import (
	"context"
	"errors"

	"moving/internal/core/domain/model/catalog"
	"moving/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormPackagingProductRepository struct {
	db *gorm.DB
}

func NewGormPackagingProductRepository(db *gorm.DB) *GormPackagingProductRepository {
	return &GormPackagingProductRepository{db: db}
}

func (r *GormPackagingProductRepository) Add(ctx context.Context, aggregate *catalog.PackagingProduct) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := productFromDomain(aggregate)
	dto.ID = 0
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	return aggregate.BindID(dto.ID)
}

func (r *GormPackagingProductRepository) Update(ctx context.Context, aggregate *catalog.PackagingProduct) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := productFromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&PackagingProductDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("packaging product", dto.ID)
	}
	return nil
}

func (r *GormPackagingProductRepository) Get(ctx context.Context, id int64) (*catalog.PackagingProduct, error) {
	var dto PackagingProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("packaging product", id)
		}
		return nil, err
	}
	return productToDomain(dto), nil
}

func (r *GormPackagingProductRepository) FindByIDs(ctx context.Context, ids []int64) ([]*catalog.PackagingProduct, error) {
	return r.find(r.db.WithContext(ctx), ids)
}

// FindByIDsForUpdate locks the rows in id order.
func (r *GormPackagingProductRepository) FindByIDsForUpdate(ctx context.Context, ids []int64) ([]*catalog.PackagingProduct, error) {
	return r.find(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), ids)
}

func (r *GormPackagingProductRepository) find(db *gorm.DB, ids []int64) ([]*catalog.PackagingProduct, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var dtos []PackagingProductDTO
	if err := db.Where("id IN ?", ids).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	products := make([]*catalog.PackagingProduct, 0, len(dtos))
	for _, dto := range dtos {
		products = append(products, productToDomain(dto))
	}
	return products, nil
}
