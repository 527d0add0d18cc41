package http

import (
	"time"

	"moving/internal/core/application/usecases/queries"
	"moving/internal/core/domain/model/catalog"
	"moving/internal/core/domain/model/kernel"
	"moving/internal/core/domain/model/user"
	"moving/internal/core/domain/services"
)

type AddressResponse struct {
	Kind        string  `json:"kind"`
	Line        string  `json:"line"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Floor       int     `json:"floor"`
	HasElevator bool    `json:"has_elevator"`
}

type ItemResponse struct {
	ProductID  int64  `json:"product_id"`
	Name       string `json:"name"`
	Quantity   int64  `json:"quantity"`
	UnitPrice  int64  `json:"unit_price"`
	TotalPrice int64  `json:"total_price"`
}

type OrderSummaryResponse struct {
	ID           int64      `json:"id"`
	TrackingCode string     `json:"tracking_code"`
	CustomerID   *string    `json:"customer_id,omitempty"`
	DriverID     *string    `json:"driver_id,omitempty"`
	ServiceType  string     `json:"service_type"`
	Status       string     `json:"status"`
	FinalPrice   int64      `json:"final_price"`
	ScheduledAt  *time.Time `json:"scheduled_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type OrderResponse struct {
	OrderSummaryResponse
	GuestOrderID *string                 `json:"guest_order_id,omitempty"`
	Origin       *AddressResponse        `json:"origin,omitempty"`
	Destination  *AddressResponse        `json:"destination"`
	Items        []ItemResponse          `json:"items"`
	Surcharges   []queries.SurchargeView `json:"surcharges"`
}

type GuestOrderResponse struct {
	ID           string                  `json:"id"`
	ServiceType  string                  `json:"service_type"`
	Origin       *AddressResponse        `json:"origin,omitempty"`
	Destination  *AddressResponse        `json:"destination,omitempty"`
	Workers      int                     `json:"workers"`
	WalkDistance int                     `json:"walk_distance"`
	HeavyItems   []queries.SelectionView `json:"heavy_items"`
	FactorIDs    []int64                 `json:"factor_ids"`
	Cart         []queries.SelectionView `json:"cart"`
	ScheduledAt  *time.Time              `json:"scheduled_at,omitempty"`
	DraftPrice   int64                   `json:"draft_price"`
	UpdatedAt    time.Time               `json:"updated_at"`
	ReconciledAt *time.Time              `json:"reconciled_at,omitempty"`
	OrderID      *int64                  `json:"order_id,omitempty"`
}

type ComponentResponse struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	RefID     int64  `json:"ref_id,omitempty"`
	Quantity  int64  `json:"quantity,omitempty"`
	UnitPrice int64  `json:"unit_price"`
	Amount    int64  `json:"amount"`
}

type QuoteResponse struct {
	Components []ComponentResponse `json:"components"`
	Total      int64               `json:"total"`
}

type UserResponse struct {
	ID           string           `json:"id"`
	Phone        string           `json:"phone"`
	Role         string           `json:"role"`
	FirstName    string           `json:"first_name"`
	LastName     string           `json:"last_name"`
	Vehicle      *VehicleResponse `json:"vehicle,omitempty"`
	DriverStatus string           `json:"driver_status,omitempty"`
}

type VehicleResponse struct {
	Model       string `json:"model"`
	PlateNumber string `json:"plate_number"`
	WorkerCount int    `json:"worker_count"`
}

type PricingFactorResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	ServiceType string `json:"service_type"`
	Price       int64  `json:"price"`
	Unit        string `json:"unit"`
	Active      bool   `json:"active"`
}

type PackagingProductResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    int64  `json:"price"`
	Stock    int64  `json:"stock"`
	Active   bool   `json:"active"`
}

type TicketSummaryResponse struct {
	ID        int64     `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Subject   string    `json:"subject"`
	Status    string    `json:"status"`
	Priority  string    `json:"priority"`
	OrderID   *int64    `json:"order_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TicketMessageResponse struct {
	Seq      int       `json:"seq"`
	SenderID string    `json:"sender_id"`
	Body     string    `json:"body"`
	IsAdmin  bool      `json:"is_admin"`
	SentAt   time.Time `json:"sent_at"`
}

type TicketResponse struct {
	TicketSummaryResponse
	Messages []TicketMessageResponse `json:"messages"`
}

func uuidString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func newAddressResponse(v *queries.AddressView) *AddressResponse {
	if v == nil {
		return nil
	}
	return &AddressResponse{
		Kind:        v.Kind.String(),
		Line:        v.Line,
		Lat:         v.Lat,
		Lng:         v.Lng,
		Floor:       v.Floor,
		HasElevator: v.HasElevator,
	}
}

func newOrderSummaryResponse(v queries.OrderSummary) OrderSummaryResponse {
	return OrderSummaryResponse{
		ID:           v.ID,
		TrackingCode: v.TrackingCode,
		CustomerID:   uuidString(v.CustomerID),
		DriverID:     uuidString(v.DriverID),
		ServiceType:  v.ServiceType.String(),
		Status:       v.Status.String(),
		FinalPrice:   v.FinalPrice.Int64(),
		ScheduledAt:  v.ScheduledAt,
		CreatedAt:    v.CreatedAt,
	}
}

func newOrderSummariesResponse(in []queries.OrderSummary) []OrderSummaryResponse {
	out := make([]OrderSummaryResponse, 0, len(in))
	for _, v := range in {
		out = append(out, newOrderSummaryResponse(v))
	}
	return out
}

func newOrderResponse(v queries.OrderView) OrderResponse {
	items := make([]ItemResponse, 0, len(v.Items))
	for _, it := range v.Items {
		items = append(items, ItemResponse{
			ProductID:  it.ProductID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice.Int64(),
			TotalPrice: it.TotalPrice.Int64(),
		})
	}
	surcharges := v.Surcharges
	if surcharges == nil {
		surcharges = []queries.SurchargeView{}
	}

	return OrderResponse{
		OrderSummaryResponse: newOrderSummaryResponse(v.OrderSummary),
		GuestOrderID:         uuidString(v.GuestOrderID),
		Origin:               newAddressResponse(v.Origin),
		Destination:          newAddressResponse(v.Destination),
		Items:                items,
		Surcharges:           surcharges,
	}
}

func newGuestOrderResponse(v queries.GuestOrderView) GuestOrderResponse {
	return GuestOrderResponse{
		ID:           v.ID.String(),
		ServiceType:  v.ServiceType.String(),
		Origin:       newAddressResponse(v.Origin),
		Destination:  newAddressResponse(v.Destination),
		Workers:      v.Workers,
		WalkDistance: v.WalkDistance,
		HeavyItems:   v.HeavyItems,
		FactorIDs:    v.FactorIDs,
		Cart:         v.Cart,
		ScheduledAt:  v.ScheduledAt,
		DraftPrice:   v.DraftPrice.Int64(),
		UpdatedAt:    v.UpdatedAt,
		ReconciledAt: v.ReconciledAt,
		OrderID:      v.OrderID,
	}
}

func newQuoteResponse(q services.Quote) QuoteResponse {
	out := QuoteResponse{Components: make([]ComponentResponse, 0, len(q.Components)), Total: q.Total.Int64()}
	for _, c := range q.Components {
		out.Components = append(out.Components, ComponentResponse{
			Code:      c.Code,
			Name:      c.Name,
			RefID:     c.RefID,
			Quantity:  c.Quantity,
			UnitPrice: c.UnitPrice.Int64(),
			Amount:    c.Amount.Int64(),
		})
	}
	return out
}

func newUserResponse(u *user.User) UserResponse {
	out := UserResponse{
		ID:        u.ID().String(),
		Phone:     u.Phone().String(),
		Role:      u.Role().String(),
		FirstName: u.FirstName(),
		LastName:  u.LastName(),
	}
	if d := u.Driver(); d != nil {
		v := d.Vehicle()
		out.Vehicle = &VehicleResponse{Model: v.Model, PlateNumber: v.PlateNumber, WorkerCount: v.WorkerCount}
		out.DriverStatus = d.Status().String()
	}
	return out
}

func newPricingFactorResponse(v queries.PricingFactorView) PricingFactorResponse {
	return PricingFactorResponse{
		ID:          v.ID,
		Name:        v.Name,
		Category:    v.Category.String(),
		ServiceType: v.ServiceType.String(),
		Price:       v.Price.Int64(),
		Unit:        v.Unit,
		Active:      v.Active,
	}
}

func pricingFactorFromDomain(f *catalog.PricingFactor) PricingFactorResponse {
	return newPricingFactorResponse(queries.PricingFactorView{
		ID:          f.ID(),
		Name:        f.Name(),
		Category:    f.Category(),
		ServiceType: f.ServiceType(),
		Price:       f.Price(),
		Unit:        f.Unit(),
		Active:      f.IsActive(),
	})
}

func newPackagingProductResponse(v queries.PackagingProductView) PackagingProductResponse {
	return PackagingProductResponse{
		ID:       v.ID,
		Name:     v.Name,
		Category: v.Category,
		Price:    v.Price.Int64(),
		Stock:    v.Stock,
		Active:   v.Active,
	}
}

func packagingProductFromDomain(p *catalog.PackagingProduct) PackagingProductResponse {
	return PackagingProductResponse{
		ID:       p.ID(),
		Name:     p.Name(),
		Category: p.Category(),
		Price:    p.Price().Int64(),
		Stock:    p.Stock(),
		Active:   p.IsActive(),
	}
}

func newTicketSummaryResponse(v queries.TicketSummary) TicketSummaryResponse {
	return TicketSummaryResponse{
		ID:        v.ID,
		OwnerID:   v.OwnerID.String(),
		Subject:   v.Subject,
		Status:    v.Status.String(),
		Priority:  v.Priority.String(),
		OrderID:   v.OrderID,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

func newTicketResponse(v queries.TicketView) TicketResponse {
	msgs := make([]TicketMessageResponse, 0, len(v.Messages))
	for _, m := range v.Messages {
		msgs = append(msgs, TicketMessageResponse{
			Seq:      m.Seq,
			SenderID: m.SenderID.String(),
			Body:     m.Body,
			IsAdmin:  m.IsAdmin,
			SentAt:   m.SentAt,
		})
	}
	return TicketResponse{TicketSummaryResponse: newTicketSummaryResponse(v.TicketSummary), Messages: msgs}
}
