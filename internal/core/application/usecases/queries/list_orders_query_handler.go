package queries

import (
	"context"
	"strings"

	"moving/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		where []string
		args  []any
	)
	actor := query.Actor()
	switch actor.Role {
	case kernel.RoleCustomer:
		where = append(where, "customer_id = ?")
		args = append(args, actor.UserID.Bytes())
	case kernel.RoleDriver:
		where = append(where, "driver_id = ?")
		args = append(args, actor.UserID.Bytes())
	case kernel.RoleAdmin, kernel.RoleUnknown:
	}
	if query.Status() != nil {
		where = append(where, "status = ?")
		args = append(args, int(*query.Status()))
	}

	sql := selectOrderColumns
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}
	sql += " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, query.Limit(), query.Offset())

	var rows []orderRow
	if err := h.db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	orders := make([]OrderSummary, 0, len(rows))
	for _, row := range rows {
		summary, err := row.summary()
		if err != nil {
			return nil, err
		}
		orders = append(orders, summary)
	}
	return orders, nil
}
