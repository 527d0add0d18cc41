package ticketrepo

import (
	"context"
	"errors"

	"moving/internal/core/domain/model/ticket"
	"moving/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormTicketRepository struct {
	db *gorm.DB
}

func NewGormTicketRepository(db *gorm.DB) *GormTicketRepository {
	return &GormTicketRepository{db: db}
}

func (r *GormTicketRepository) Add(ctx context.Context, aggregate *ticket.Ticket) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.ID = 0
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	return aggregate.BindID(dto.ID)
}

// Update rewrites the ticket header and inserts messages that are not stored
// yet. Stored messages are never changed.
func (r *GormTicketRepository) Update(ctx context.Context, aggregate *ticket.Ticket) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&TicketDTO{}).
		Where("id = ?", dto.ID).
		Select("status", "priority", "updated_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("ticket", dto.ID)
	}

	if len(dto.Messages) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto.Messages).Error
}

func (r *GormTicketRepository) Get(ctx context.Context, id int64) (*ticket.Ticket, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormTicketRepository) GetForUpdate(ctx context.Context, id int64) (*ticket.Ticket, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormTicketRepository) get(db *gorm.DB, id int64) (*ticket.Ticket, error) {
	var dto TicketDTO
	err := db.Preload("Messages", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("seq")
	}).First(&dto, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("ticket", id)
		}
		return nil, err
	}

	return toDomain(dto)
}
