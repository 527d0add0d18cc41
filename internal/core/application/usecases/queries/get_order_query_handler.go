package queries

import (
	"context"
	"fmt"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/model/order"
	"moving/internal/pkg/errs"

	"gorm.io/gorm"
)

const selectOrderColumns = `
	SELECT
		id,
		tracking_code,
		customer_id,
		driver_id,
		service_type,
		status,
		final_price,
		surcharges,
		scheduled_at,
		created_at,
		guest_order_id
	FROM orders`

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns ObjectNotFoundError when no order matches and
// AccessDeniedError when the actor is not a party to the order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	db := h.db.WithContext(ctx)

	var (
		rows []orderRow
		key  any
		err  error
	)
	if query.ID() > 0 {
		key = query.ID()
		err = db.Raw(selectOrderColumns+` WHERE id = ?`, query.ID()).Scan(&rows).Error
	} else {
		key = query.TrackingCode().String()
		err = db.Raw(selectOrderColumns+` WHERE tracking_code = ?`, query.TrackingCode().String()).Scan(&rows).Error
	}
	if err != nil {
		return OrderView{}, err
	}
	if len(rows) == 0 {
		return OrderView{}, errs.NewObjectNotFoundError("order", key)
	}
	row := rows[0]

	summary, err := row.summary()
	if err != nil {
		return OrderView{}, err
	}

	actor := query.Actor()
	if !actor.IsAdmin() && !actor.Is(summary.CustomerID) && !actor.Is(summary.DriverID) {
		return OrderView{}, errs.NewAccessDeniedError(fmt.Sprintf("read order %d", summary.ID))
	}

	view := OrderView{OrderSummary: summary, Surcharges: row.Surcharges}
	if view.GuestOrderID, err = optionalUUID(row.GuestOrderID); err != nil {
		return OrderView{}, err
	}
	if view.Surcharges == nil {
		view.Surcharges = []SurchargeView{}
	}

	if err = h.loadAddresses(db, &view); err != nil {
		return OrderView{}, err
	}
	if view.Items, err = h.loadItems(db, view.ID); err != nil {
		return OrderView{}, err
	}

	return view, nil
}

func (h GetOrderQueryHandler) loadAddresses(db *gorm.DB, view *OrderView) error {
	var addresses []struct {
		Kind        int
		Line        string
		Lat         float64
		Lng         float64
		Floor       int
		HasElevator bool
	}
	err := db.Raw(`
		SELECT kind, line, lat, lng, floor, has_elevator
		FROM order_addresses
		WHERE order_id = ?
		ORDER BY kind
	`, view.ID).Scan(&addresses).Error
	if err != nil {
		return err
	}

	for _, a := range addresses {
		addr := &AddressView{
			Kind:        order.AddressKind(a.Kind),
			Line:        a.Line,
			Lat:         a.Lat,
			Lng:         a.Lng,
			Floor:       a.Floor,
			HasElevator: a.HasElevator,
		}
		if addr.Kind == order.AddressOrigin {
			view.Origin = addr
		} else {
			view.Destination = addr
		}
	}
	return nil
}

func (h GetOrderQueryHandler) loadItems(db *gorm.DB, orderID int64) ([]ItemView, error) {
	rows, err := db.Raw(`
		SELECT product_id, name, quantity, unit_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]ItemView, 0)
	for rows.Next() {
		var item ItemView
		var unitPrice int64
		if err = rows.Scan(&item.ProductID, &item.Name, &item.Quantity, &unitPrice); err != nil {
			return nil, err
		}
		item.UnitPrice = kernel.Money(unitPrice)
		if item.TotalPrice, err = item.UnitPrice.Mul(item.Quantity); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
